package metrics

import (
	"time"
)

// RecordArticleHarvested records one accepted article for a source.
func RecordArticleHarvested(source string) {
	ArticlesHarvestedTotal.WithLabelValues(source).Inc()
}

// RecordArticleRejected records a candidate article dropped for the given reason.
func RecordArticleRejected(source, reason string) {
	ArticlesRejectedTotal.WithLabelValues(source, reason).Inc()
}

// RecordSourceError records a failed link discovery for a source.
func RecordSourceError(source string) {
	SourceErrorsTotal.WithLabelValues(source).Inc()
}

// RecordSourceHarvest records how long one source took.
func RecordSourceHarvest(source string, duration time.Duration) {
	SourceHarvestDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordHarvest records the duration of a full harvest.
func RecordHarvest(duration time.Duration) {
	HarvestDuration.Observe(duration.Seconds())
}

// RecordExtraction records a successful article extraction.
//
// Example:
//
//	start := time.Now()
//	page, err := extractor.Extract(ctx, url)
//	if err == nil {
//	    RecordExtraction(time.Since(start), len(page.Text))
//	}
func RecordExtraction(duration time.Duration, size int) {
	ExtractionDuration.Observe(duration.Seconds())
	ExtractionSize.Observe(float64(size))
}

// RecordArticleSummarized records whether the configured summarizer produced the
// summary or the extractive fallback was used.
func RecordArticleSummarized(success bool) {
	status := "success"
	if !success {
		status = "fallback"
	}
	ArticlesSummarizedTotal.WithLabelValues(status).Inc()
}

// RecordClassification records one article assigned to category.
func RecordClassification(category string) {
	ArticlesClassifiedTotal.WithLabelValues(category).Inc()
}

// RecordThreats adds n detected threat records.
func RecordThreats(n int) {
	if n > 0 {
		ThreatsDetectedTotal.Add(float64(n))
	}
}

// RecordReport records a generated report of the given kind ("summary" or "analysis").
func RecordReport(kind string) {
	ReportsGeneratedTotal.WithLabelValues(kind).Inc()
}

// RecordNarration records one synthesis attempt.
func RecordNarration(engine string, success bool, duration time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	NarrationsTotal.WithLabelValues(engine, result).Inc()
	NarrationDuration.WithLabelValues(engine).Observe(duration.Seconds())
}
