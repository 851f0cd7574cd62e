// Package observability groups the logging, metrics and tracing helpers
// shared by the API server, the worker and the CLI.
//
//   - logging: slog construction and request-scoped loggers
//   - metrics: Prometheus collectors for harvests, analysis and narration
//   - tracing: OpenTelemetry provider setup and HTTP server spans
package observability
