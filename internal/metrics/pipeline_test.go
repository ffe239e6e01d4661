package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/digmar-dash/internal/models"
)

func scenario() []models.InputRecord {
	return []models.InputRecord{
		{Date: "2025-08-01", CampaignName: "A", Impressions: 100, Clicks: 10, Cost: 50, Conversions: 2, Revenue: 200},
		{Date: "2025-08-02", CampaignName: "A", Impressions: 200, Clicks: 20, Cost: 100, Conversions: 4, Revenue: 400},
		{Date: "2025-08-01", CampaignName: "B", Impressions: 50, Clicks: 5, Cost: 25, Conversions: 1, Revenue: 50},
	}
}

func TestRunScenario(t *testing.T) {
	res := Run(scenario())

	require.Len(t, res.Campaigns, 2)
	assert.Equal(t, models.CampaignAggregate{
		CampaignName: "A",
		Totals:       models.Totals{Impressions: 300, Clicks: 30, Cost: 150, Conversions: 6, Revenue: 600},
		Ratios:       models.Ratios{CTR: 0.1, CPC: 5, CR: 0.2, ROI: 3},
	}, res.Campaigns[0])
	assert.Equal(t, models.CampaignAggregate{
		CampaignName: "B",
		Totals:       models.Totals{Impressions: 50, Clicks: 5, Cost: 25, Conversions: 1, Revenue: 50},
		Ratios:       models.Ratios{CTR: 0.1, CPC: 5, CR: 0.2, ROI: 1},
	}, res.Campaigns[1])

	k := res.KPI
	assert.Equal(t, int64(350), k.TotalImpressions)
	assert.Equal(t, int64(35), k.TotalClicks)
	assert.Equal(t, 175.0, k.TotalCost)
	assert.Equal(t, int64(7), k.TotalConversions)
	assert.Equal(t, 650.0, k.TotalRevenue)
	assert.InDelta(t, 0.1, k.OverallCTR.Float(), 1e-12)
	assert.InDelta(t, 0.2, k.OverallConversion.Float(), 1e-12)
	assert.InDelta(t, 2.714285714, k.OverallROI.Float(), 1e-9)
}

func TestEnrichRowUsesOwnFields(t *testing.T) {
	in := scenario()
	rows := Enrich(in)
	require.Len(t, rows, len(in))
	for i, r := range rows {
		src := in[i]
		assert.Equal(t, src, r.Input())
		assert.Equal(t, float64(src.Clicks)/float64(src.Impressions), r.CTR.Float())
		assert.Equal(t, src.Cost/float64(src.Clicks), r.CPC.Float())
		assert.Equal(t, float64(src.Conversions)/float64(src.Clicks), r.CR.Float())
		assert.Equal(t, (src.Revenue-src.Cost)/src.Cost, r.ROI.Float())
	}
}

func TestAggregateIsTotalsFirst(t *testing.T) {
	rows := Enrich([]models.InputRecord{
		{CampaignName: "X", Impressions: 1000, Clicks: 10, Cost: 10, Conversions: 1, Revenue: 5},
		{CampaignName: "X", Impressions: 10, Clicks: 5, Cost: 1, Conversions: 5, Revenue: 10},
	})
	require.NotEqual(t, rows[0].CTR, rows[1].CTR)

	aggs := Aggregate(rows)
	require.Len(t, aggs, 1)
	a := aggs[0]

	assert.Equal(t, 15.0/1010.0, a.CTR.Float())
	assert.NotEqual(t, (rows[0].CTR.Float()+rows[1].CTR.Float())/2, a.CTR.Float())
	assert.Equal(t, 11.0/15.0, a.CPC.Float())
	assert.Equal(t, 6.0/15.0, a.CR.Float())
	assert.Equal(t, (15.0-11.0)/11.0, a.ROI.Float())
}

func TestAggregateGroupsOncePerNameSorted(t *testing.T) {
	rows := Enrich([]models.InputRecord{
		{CampaignName: "beta", Impressions: 1, Clicks: 1, Cost: 1},
		{CampaignName: "Alpha", Impressions: 1, Clicks: 1, Cost: 1},
		{CampaignName: "beta", Impressions: 1, Clicks: 1, Cost: 1},
		{CampaignName: "alpha", Impressions: 1, Clicks: 1, Cost: 1},
		{CampaignName: "", Impressions: 1, Clicks: 1, Cost: 1},
	})
	aggs := Aggregate(rows)

	var names []string
	for _, a := range aggs {
		names = append(names, a.CampaignName)
	}
	assert.Equal(t, []string{"", "Alpha", "alpha", "beta"}, names)
	assert.Equal(t, int64(2), aggs[3].Impressions)
}

func TestAggregateTotalsMatchKPI(t *testing.T) {
	in := append(scenario(),
		models.InputRecord{CampaignName: "C", Impressions: 7, Clicks: 0, Cost: 0, Conversions: 0, Revenue: 3},
		models.InputRecord{CampaignName: "B", Impressions: 1, Clicks: 1, Cost: 2, Conversions: 1, Revenue: -4},
	)
	res := Run(in)

	var sum models.Totals
	for _, a := range res.Campaigns {
		sum.Impressions += a.Impressions
		sum.Clicks += a.Clicks
		sum.Cost += a.Cost
		sum.Conversions += a.Conversions
		sum.Revenue += a.Revenue
	}
	assert.Equal(t, res.KPI.TotalImpressions, sum.Impressions)
	assert.Equal(t, res.KPI.TotalClicks, sum.Clicks)
	assert.Equal(t, res.KPI.TotalCost, sum.Cost)
	assert.Equal(t, res.KPI.TotalConversions, sum.Conversions)
	assert.Equal(t, res.KPI.TotalRevenue, sum.Revenue)
}

func TestRunIsIdempotent(t *testing.T) {
	in := append(scenario(), models.InputRecord{CampaignName: "Z", Impressions: 3, Clicks: 1, Cost: 0.1, Conversions: 0, Revenue: 0.3})
	a, b := Run(in), Run(in)
	assert.Equal(t, a, b)
	assert.NotSame(t, &a.Rows[0], &b.Rows[0])
}

func TestDeriveDivisionByZero(t *testing.T) {
	d := Derive(models.Totals{})
	for _, r := range []models.Ratio{d.CTR, d.CPC, d.CR, d.ROI} {
		assert.True(t, math.IsNaN(r.Float()))
		assert.False(t, r.Defined())
	}

	d = Derive(models.Totals{Impressions: 0, Clicks: 5, Cost: 0, Conversions: 1, Revenue: 10})
	assert.True(t, math.IsInf(d.CTR.Float(), 1))
	assert.Equal(t, 0.0, d.CPC.Float())
	assert.True(t, d.CR.Defined())
	assert.True(t, math.IsInf(d.ROI.Float(), 1))

	d = Derive(models.Totals{Clicks: 0, Cost: 0, Revenue: -1})
	assert.True(t, math.IsInf(d.ROI.Float(), -1))
}

func TestRunEmpty(t *testing.T) {
	res := Run(nil)
	assert.Empty(t, res.Rows)
	assert.Empty(t, res.Campaigns)
	assert.Zero(t, res.KPI.TotalImpressions)
	assert.False(t, res.KPI.OverallCTR.Defined())
}
