package report

import (
	"math"

	"github.com/AngelCh415/digmar-dash/internal/models"
)

// fixture is the result for rows A(100/10/50/2/200), A(200/20/100/4/400),
// B(50/5/25/1/50) plus a campaign Z with no impressions, clicks or cost.
func fixture() *models.Result {
	nan := models.Ratio(math.NaN())
	return &models.Result{
		Rows: []models.EnrichedRow{
			{Date: "2025-08-01", CampaignName: "A", Impressions: 100, Clicks: 10, Cost: 50, Conversions: 2, Revenue: 200,
				Ratios: models.Ratios{CTR: 0.1, CPC: 5, CR: 0.2, ROI: 3}},
			{Date: "2025-08-03", CampaignName: "Z", Revenue: 0,
				Ratios: models.Ratios{CTR: nan, CPC: nan, CR: nan, ROI: nan}},
		},
		Campaigns: []models.CampaignAggregate{
			{CampaignName: "A", Totals: models.Totals{Impressions: 300, Clicks: 30, Cost: 150, Conversions: 6, Revenue: 600},
				Ratios: models.Ratios{CTR: 0.1, CPC: 5, CR: 0.2, ROI: 3}},
			{CampaignName: "B", Totals: models.Totals{Impressions: 50, Clicks: 5, Cost: 25, Conversions: 1, Revenue: 50},
				Ratios: models.Ratios{CTR: 0.1, CPC: 5, CR: 0.2, ROI: 1}},
			{CampaignName: "Z", Ratios: models.Ratios{CTR: nan, CPC: nan, CR: nan, ROI: nan}},
		},
		KPI: models.KPISet{
			TotalImpressions: 350, TotalClicks: 35, TotalCost: 175, TotalConversions: 7, TotalRevenue: 650,
			OverallCTR: 0.1, OverallConversion: 0.2, OverallROI: models.Ratio(475.0 / 175.0),
		},
	}
}
