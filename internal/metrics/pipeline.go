package metrics

import (
	"sort"

	"github.com/AngelCh415/digmar-dash/internal/models"
)

// Derive computes CTR, CPC, CR and ROI from raw totals. Denominators are not
// guarded: a zero yields NaN or ±Inf.
func Derive(t models.Totals) models.Ratios {
	impressions := float64(t.Impressions)
	clicks := float64(t.Clicks)
	return models.Ratios{
		CTR: models.Ratio(clicks / impressions),
		CPC: models.Ratio(t.Cost / clicks),
		CR:  models.Ratio(float64(t.Conversions) / clicks),
		ROI: models.Ratio((t.Revenue - t.Cost) / t.Cost),
	}
}

func totalsOf(r models.InputRecord) models.Totals {
	var t models.Totals
	t.Add(r)
	return t
}

// EnrichRow derives the four ratios from the row's own fields.
func EnrichRow(r models.InputRecord) models.EnrichedRow {
	return models.EnrichedRow{
		Date:         r.Date,
		CampaignName: r.CampaignName,
		Impressions:  r.Impressions,
		Clicks:       r.Clicks,
		Cost:         r.Cost,
		Conversions:  r.Conversions,
		Revenue:      r.Revenue,
		Ratios:       Derive(totalsOf(r)),
	}
}

// Enrich keeps input order.
func Enrich(records []models.InputRecord) []models.EnrichedRow {
	out := make([]models.EnrichedRow, 0, len(records))
	for _, r := range records {
		out = append(out, EnrichRow(r))
	}
	return out
}

// Aggregate sums the raw fields per campaign_name and derives the ratios from
// the sums, never from row ratios. Groups are sorted by name, byte-wise.
func Aggregate(rows []models.EnrichedRow) []models.CampaignAggregate {
	sums := make(map[string]*models.Totals)
	var names []string
	for _, r := range rows {
		t, ok := sums[r.CampaignName]
		if !ok {
			t = &models.Totals{}
			sums[r.CampaignName] = t
			names = append(names, r.CampaignName)
		}
		t.Add(r.Input())
	}
	sort.Strings(names)

	out := make([]models.CampaignAggregate, 0, len(names))
	for _, n := range names {
		t := *sums[n]
		out = append(out, models.CampaignAggregate{
			CampaignName: n,
			Totals:       t,
			Ratios:       Derive(t),
		})
	}
	return out
}

// Reduce sums every row and derives the overall ratios from the totals.
func Reduce(rows []models.EnrichedRow) models.KPISet {
	var t models.Totals
	for _, r := range rows {
		t.Add(r.Input())
	}
	d := Derive(t)
	return models.KPISet{
		TotalImpressions:  t.Impressions,
		TotalClicks:       t.Clicks,
		TotalCost:         t.Cost,
		TotalConversions:  t.Conversions,
		TotalRevenue:      t.Revenue,
		OverallCTR:        d.CTR,
		OverallConversion: d.CR,
		OverallROI:        d.ROI,
	}
}

// Run is the whole transform over an already validated table.
func Run(records []models.InputRecord) *models.Result {
	rows := Enrich(records)
	return &models.Result{
		Rows:      rows,
		Campaigns: Aggregate(rows),
		KPI:       Reduce(rows),
	}
}
