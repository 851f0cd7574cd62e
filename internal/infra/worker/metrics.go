package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fiji-news/pkg/config"
)

// WorkerMetrics tracks configuration fallbacks and pipeline runs.
// Metrics register with the default registry on creation, so create one
// instance per process.
type WorkerMetrics struct {
	Config *config.LoadMetrics

	JobRunsTotal         *prometheus.CounterVec
	JobDurationSeconds   prometheus.Histogram
	ArticlesStoredTotal  prometheus.Counter
	LastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates and registers the worker metrics.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		Config: config.NewLoadMetrics("worker"),

		JobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_job_runs_total",
			Help: "Pipeline runs by status (started/success/failure)",
		}, []string{"status"}),

		JobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of pipeline runs in seconds",
			Buckets: []float64{5, 30, 60, 300, 900, 1800, 3600},
		}),

		ArticlesStoredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_articles_stored_total",
			Help: "Articles persisted by successful pipeline runs",
		}),

		LastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful pipeline run",
		}),
	}
}

// RecordJobRun counts a run with the given status.
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes a run duration in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.JobDurationSeconds.Observe(seconds)
}

// RecordArticlesStored adds the number of articles a run persisted.
func (m *WorkerMetrics) RecordArticlesStored(count int) {
	m.ArticlesStoredTotal.Add(float64(count))
}

// RecordLastSuccess stamps the current time as the last success.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.LastSuccessTimestamp.SetToCurrentTime()
}
