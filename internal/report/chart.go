package report

import (
	"github.com/AngelCh415/digmar-dash/internal/models"
)

const (
	chartHeight = 240.0
	chartPad    = 24.0
	barWidth    = 48.0
	barGap      = 24.0
)

// Bar is one campaign in a chart, already laid out in SVG user units.
// Undefined bars have zero height and show Undefined as label.
type Bar struct {
	Label   string
	Value   float64
	Defined bool
	Display string
	X, Y    float64
	W, H    float64
}

type Chart struct {
	Title  string
	Metric string
	Bars   []Bar
	Width  float64
	Height float64
	ZeroY  float64
}

// Charts returns the CTR and ROI bar charts keyed by campaign, in table order.
func (f Formatter) Charts(aggs []models.CampaignAggregate) []Chart {
	return []Chart{
		f.barChart("CTR per Campaign", "CTR", aggs, func(a models.CampaignAggregate) models.Ratio { return a.CTR }),
		f.barChart("ROI per Campaign", "ROI", aggs, func(a models.CampaignAggregate) models.Ratio { return a.ROI }),
	}
}

func (f Formatter) barChart(title, metric string, aggs []models.CampaignAggregate, pick func(models.CampaignAggregate) models.Ratio) Chart {
	bars := make([]Bar, 0, len(aggs))
	lo, hi := 0.0, 0.0
	for _, a := range aggs {
		r := pick(a)
		b := Bar{Label: a.CampaignName, Defined: r.Defined(), Display: f.Percent(r)}
		if b.Defined {
			b.Value = r.Float()
			lo, hi = min(lo, b.Value), max(hi, b.Value)
		}
		bars = append(bars, b)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	scale := chartHeight / span
	zero := chartPad + hi*scale

	for i := range bars {
		b := &bars[i]
		b.X = chartPad + float64(i)*(barWidth+barGap)
		b.W = barWidth
		b.Y = zero
		if !b.Defined {
			continue
		}
		if b.Value >= 0 {
			b.H = b.Value * scale
			b.Y = zero - b.H
		} else {
			b.H = -b.Value * scale
		}
	}
	width := 2*chartPad + float64(len(bars))*(barWidth+barGap)
	return Chart{
		Title:  title,
		Metric: metric,
		Bars:   bars,
		Width:  max(width, 2*chartPad+barWidth),
		Height: chartHeight + 2*chartPad + 40,
		ZeroY:  zero,
	}
}
