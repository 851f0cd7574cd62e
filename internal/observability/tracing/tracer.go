// Package tracing installs the OpenTelemetry tracer provider and creates a
// server span for every API request.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "fiji-news"

// GetTracer returns the tracer used for fiji-news spans. It resolves the
// global provider on each call so a provider installed later takes effect.
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Init installs an SDK tracer provider that samples every span, plus the W3C
// trace-context propagator. Extra span processors (exporters) may be passed.
// The returned function flushes and shuts the provider down.
func Init(serviceName, version string, processors ...sdktrace.SpanProcessor) func(context.Context) error {
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	)
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}
