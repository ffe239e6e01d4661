package report

import (
	"github.com/AngelCh415/digmar-dash/internal/models"
)

const Title = "Digital Marketing Dashboard"

type KPICard struct {
	Label string
	Value string
}

type Table struct {
	Headers []string
	Rows    [][]string
}

var campaignHeaders = []string{
	"campaign_name", "impressions", "clicks", "cost", "conversions", "revenue",
	"CTR", "CPC", "CR", "ROI",
}

var rowHeaders = append([]string{"date"}, campaignHeaders...)

// KPIStrip is the summary row: the five totals followed by the overall ratios.
func (f Formatter) KPIStrip(k models.KPISet) []KPICard {
	return []KPICard{
		{Label: "Total Impressions", Value: f.Count(k.TotalImpressions)},
		{Label: "Total Clicks", Value: f.Count(k.TotalClicks)},
		{Label: "Total Cost", Value: f.Money(k.TotalCost)},
		{Label: "Total Conversions", Value: f.Count(k.TotalConversions)},
		{Label: "Total Revenue", Value: f.Money(k.TotalRevenue)},
		{Label: "CTR", Value: f.Percent(k.OverallCTR)},
		{Label: "Conversion Rate", Value: f.Percent(k.OverallConversion)},
		{Label: "ROI", Value: f.Percent(k.OverallROI)},
	}
}

func (f Formatter) ratioCells(r models.Ratios) []string {
	return []string{f.Percent(r.CTR), f.MoneyRatio(r.CPC), f.Percent(r.CR), f.Percent(r.ROI)}
}

func (f Formatter) CampaignTable(aggs []models.CampaignAggregate) Table {
	t := Table{Headers: campaignHeaders, Rows: make([][]string, 0, len(aggs))}
	for _, a := range aggs {
		row := []string{
			a.CampaignName,
			f.Plain(a.Impressions),
			f.Plain(a.Clicks),
			f.Money(a.Cost),
			f.Plain(a.Conversions),
			f.Money(a.Revenue),
		}
		t.Rows = append(t.Rows, append(row, f.ratioCells(a.Ratios)...))
	}
	return t
}

func (f Formatter) RowTable(rows []models.EnrichedRow) Table {
	t := Table{Headers: rowHeaders, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		row := []string{
			r.Date,
			r.CampaignName,
			f.Plain(r.Impressions),
			f.Plain(r.Clicks),
			f.Money(r.Cost),
			f.Plain(r.Conversions),
			f.Money(r.Revenue),
		}
		t.Rows = append(t.Rows, append(row, f.ratioCells(r.Ratios)...))
	}
	return t
}

// Dashboard is everything the page template needs. With Ready false only
// Info or Error is shown.
type Dashboard struct {
	Title    string
	Ready    bool
	Info     string
	Error    string
	Missing  []string
	KPIs     []KPICard
	Table    Table
	Detail   Table
	Charts   []Chart
	Filename string
}

const (
	InfoUpload    = "Upload a digital marketing CSV file to start the analysis."
	ErrBadFormat  = "CSV format does not match. Check the column names."
	ErrParseInput = "CSV could not be parsed."
)

func (f Formatter) Awaiting() Dashboard {
	return Dashboard{Title: Title, Info: InfoUpload}
}

func (f Formatter) Rejected(msg string, missing []string) Dashboard {
	return Dashboard{Title: Title, Error: msg, Missing: missing}
}

func (f Formatter) Build(res *models.Result, filename string) Dashboard {
	return Dashboard{
		Title:    Title,
		Ready:    true,
		KPIs:     f.KPIStrip(res.KPI),
		Table:    f.CampaignTable(res.Campaigns),
		Detail:   f.RowTable(res.Rows),
		Charts:   f.Charts(res.Campaigns),
		Filename: filename,
	}
}
