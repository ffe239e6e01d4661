package models

import (
	"encoding/json"
	"math"
)

// Required CSV columns. Order is the one used when reporting missing columns.
var RequiredColumns = []string{
	"date", "campaign_name", "impressions",
	"clicks", "cost", "conversions", "revenue",
}

type InputRecord struct {
	Date         string
	CampaignName string
	Impressions  int64
	Clicks       int64
	Cost         float64
	Conversions  int64
	Revenue      float64
}

// Ratio is a derived metric. Division is never guarded, so a zero
// denominator yields NaN or ±Inf; Defined reports whether the value is finite.
type Ratio float64

func (r Ratio) Defined() bool {
	f := float64(r)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (r Ratio) Float() float64 { return float64(r) }

// MarshalJSON writes undefined ratios as null; encoding/json rejects NaN and Inf.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(r))
}

// Ratios holds the four derived metrics shared by rows, aggregates and KPIs.
type Ratios struct {
	CTR Ratio `json:"ctr"`
	CPC Ratio `json:"cpc"`
	CR  Ratio `json:"cr"`
	ROI Ratio `json:"roi"`
}

type EnrichedRow struct {
	Date         string  `json:"date"`
	CampaignName string  `json:"campaign_name"`
	Impressions  int64   `json:"impressions"`
	Clicks       int64   `json:"clicks"`
	Cost         float64 `json:"cost"`
	Conversions  int64   `json:"conversions"`
	Revenue      float64 `json:"revenue"`
	Ratios
}

// Input drops the derived fields.
func (r EnrichedRow) Input() InputRecord {
	return InputRecord{
		Date:         r.Date,
		CampaignName: r.CampaignName,
		Impressions:  r.Impressions,
		Clicks:       r.Clicks,
		Cost:         r.Cost,
		Conversions:  r.Conversions,
		Revenue:      r.Revenue,
	}
}

// Totals are the five summable raw fields.
type Totals struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Cost        float64 `json:"cost"`
	Conversions int64   `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

func (t *Totals) Add(r InputRecord) {
	t.Impressions += r.Impressions
	t.Clicks += r.Clicks
	t.Cost += r.Cost
	t.Conversions += r.Conversions
	t.Revenue += r.Revenue
}

type CampaignAggregate struct {
	CampaignName string `json:"campaign_name"`
	Totals
	Ratios
}

// KPISet is the global summary shown in the KPI strip. Overall ratios are
// derived from the totals, never averaged from rows.
type KPISet struct {
	TotalImpressions  int64   `json:"total_impressions"`
	TotalClicks       int64   `json:"total_clicks"`
	TotalCost         float64 `json:"total_cost"`
	TotalConversions  int64   `json:"total_conversions"`
	TotalRevenue      float64 `json:"total_revenue"`
	OverallCTR        Ratio   `json:"overall_ctr"`
	OverallConversion Ratio   `json:"overall_conversion_rate"`
	OverallROI        Ratio   `json:"overall_roi"`
}

// Result is one full pipeline run.
type Result struct {
	Rows      []EnrichedRow       `json:"rows"`
	Campaigns []CampaignAggregate `json:"campaigns"`
	KPI       KPISet              `json:"kpi"`
}
