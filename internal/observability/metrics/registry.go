// Package metrics provides centralized Prometheus metrics for the news pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Harvest metrics track source crawling and article extraction
var (
	// ArticlesHarvestedTotal counts accepted articles per source
	ArticlesHarvestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fijinews_articles_harvested_total",
			Help: "Total number of articles accepted by the harvester",
		},
		[]string{"source"},
	)

	// ArticlesRejectedTotal counts candidate articles dropped by the quality filters
	ArticlesRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fijinews_articles_rejected_total",
			Help: "Total number of candidate articles rejected",
		},
		[]string{"source", "reason"}, // reason: too_short, not_relevant, fetch_error
	)

	// SourceErrorsTotal counts listing or feed failures per source
	SourceErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fijinews_source_errors_total",
			Help: "Total number of sources that failed during link discovery",
		},
		[]string{"source"},
	)

	// SourceHarvestDuration measures the time spent on one source
	SourceHarvestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fijinews_source_harvest_duration_seconds",
			Help:    "Time taken to harvest a single source",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"source"},
	)

	// HarvestDuration measures a full harvest across all sources
	HarvestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fijinews_harvest_duration_seconds",
			Help:    "Time taken by a full harvest",
			Buckets: prometheus.ExponentialBuckets(5, 2, 10),
		},
	)

	// ExtractionDuration measures article download and readability extraction
	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fijinews_extraction_duration_seconds",
			Help:    "Time taken to download and extract one article",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// ExtractionSize measures extracted body size in bytes
	ExtractionSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "fijinews_extraction_size_bytes",
			Help: "Extracted article body size in bytes",
			Buckets: []float64{
				100, 200, 400, 800, 1600, 3200, 6400, 12800,
				25600, 51200, 102400, 204800,
			},
		},
	)

	// ArticlesSummarizedTotal counts article summaries by outcome
	ArticlesSummarizedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fijinews_articles_summarized_total",
			Help: "Total number of article summaries produced",
		},
		[]string{"status"}, // status: success, fallback
	)
)

// Analysis metrics track classification and trend analysis
var (
	// ArticlesClassifiedTotal counts classified articles per category
	ArticlesClassifiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fijinews_articles_classified_total",
			Help: "Total number of articles assigned to each category",
		},
		[]string{"category"},
	)

	// ThreatsDetectedTotal counts threat records produced by trend analysis
	ThreatsDetectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fijinews_threats_detected_total",
			Help: "Total number of articles flagged as emerging threats",
		},
	)

	// ReportsGeneratedTotal counts generated reports by kind
	ReportsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fijinews_reports_generated_total",
			Help: "Total number of summaries and analyses generated",
		},
		[]string{"kind"}, // kind: summary, analysis
	)
)

// Narration metrics track text-to-speech attempts
var (
	// NarrationsTotal counts synthesis attempts per engine and result
	NarrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fijinews_narrations_total",
			Help: "Total number of speech synthesis attempts",
		},
		[]string{"engine", "result"},
	)

	// NarrationDuration measures synthesis latency per engine
	NarrationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fijinews_narration_duration_seconds",
			Help:    "Time taken to synthesize audio",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"engine"},
	)
)
