package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "digmar"

// Pipeline implements metrics.Observer on a private registry.
type Pipeline struct {
	reg        *prometheus.Registry
	runs       prometheus.Counter
	rejections *prometheus.CounterVec
	rows       prometheus.Histogram
	campaigns  prometheus.Histogram
	duration   prometheus.Histogram
}

func NewPipeline() *Pipeline {
	p := &Pipeline{
		reg: prometheus.NewRegistry(),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Completed pipeline runs.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_rejections_total",
			Help:      "Loads rejected before metric computation, by reason.",
		}, []string{"reason"}),
		rows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_rows",
			Help:      "Input rows per run.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		campaigns: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_campaigns",
			Help:      "Distinct campaigns per run.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Time spent computing metrics, parsing excluded.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	p.reg.MustRegister(p.runs, p.rejections, p.rows, p.campaigns, p.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return p
}

func (p *Pipeline) ObserveRun(rows, campaigns int, d time.Duration) {
	p.runs.Inc()
	p.rows.Observe(float64(rows))
	p.campaigns.Observe(float64(campaigns))
	p.duration.Observe(d.Seconds())
}

func (p *Pipeline) ObserveRejection(reason string) {
	p.rejections.WithLabelValues(reason).Inc()
}

func (p *Pipeline) Registry() *prometheus.Registry { return p.reg }

func (p *Pipeline) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{Registry: p.reg})
}
