package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func installExporter(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	prev := otel.GetTracerProvider()
	shutdown := Init("fiji-news-test", "test", sdktrace.NewSimpleSpanProcessor(exporter))
	t.Cleanup(func() {
		_ = shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value
	}
	return m
}

func TestMiddleware_RecordsServerSpan(t *testing.T) {
	exporter := installExporter(t)

	var inner trace.SpanContext
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = trace.SpanFromContext(r.Context()).SpanContext()
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audio/audio_20240517_093005.mp3", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "GET /audio/:filename", span.Name)
	assert.Equal(t, trace.SpanKindServer, span.SpanKind)

	attrs := attrMap(span.Attributes)
	assert.Equal(t, int64(404), attrs["http.status_code"].AsInt64())
	assert.Equal(t, "/audio/audio_20240517_093005.mp3", attrs["http.path"].AsString())
	assert.Equal(t, codes.Unset, span.Status.Code)

	assert.True(t, inner.IsValid())
	assert.Equal(t, inner.TraceID().String(), rec.Header().Get(TraceIDHeader))
}

func TestMiddleware_MarksServerErrors(t *testing.T) {
	exporter := installExporter(t)

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/harvest_news", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.True(t, attrMap(spans[0].Attributes)["error"].AsBool())
}

func TestMiddleware_ContinuesIncomingTrace(t *testing.T) {
	exporter := installExporter(t)

	h := Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/get_news_files", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext.TraceID().String())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", rec.Header().Get(TraceIDHeader))
}
