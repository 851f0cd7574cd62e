package summarizer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	summaryLength = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fijinews_summary_length_characters",
		Help:    "Summary length in runes by backend",
		Buckets: []float64{100, 300, 500, 700, 900, 1100, 1500, 2000},
	}, []string{"backend"})

	summaryOverLimit = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fijinews_summary_limit_exceeded_total",
		Help: "Summaries longer than the configured character limit by backend",
	}, []string{"backend"})

	summaryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fijinews_summarization_duration_seconds",
		Help:    "Remote summarization latency by backend",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	}, []string{"backend"})
)

// backendMetrics is the summarizer metric set bound to one backend label.
type backendMetrics struct {
	length    prometheus.Observer
	overLimit prometheus.Counter
	duration  prometheus.Observer
}

func metricsFor(backend string) backendMetrics {
	return backendMetrics{
		length:    summaryLength.WithLabelValues(backend),
		overLimit: summaryOverLimit.WithLabelValues(backend),
		duration:  summaryDuration.WithLabelValues(backend),
	}
}

func (m backendMetrics) observe(length int, withinLimit bool, d time.Duration) {
	m.length.Observe(float64(length))
	m.duration.Observe(d.Seconds())
	if !withinLimit {
		m.overLimit.Inc()
	}
}
