// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the pipeline metrics:
//   - Harvest metrics (accepted and rejected articles, source failures, durations)
//   - Analysis metrics (classification counts, detected threats, reports)
//   - Narration metrics (attempts and latency per speech engine)
//
// HTTP request metrics live next to the HTTP middleware in internal/handler/http.
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint.
//
// Example usage:
//
//	import "fiji-news/internal/observability/metrics"
//
//	func harvestSource(name string) {
//	    start := time.Now()
//	    // ... fetch listing, extract articles ...
//	    metrics.RecordArticleHarvested(name)
//	    metrics.RecordSourceHarvest(name, time.Since(start))
//	}
package metrics
