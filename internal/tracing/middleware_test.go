package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTestTracer creates a test tracer with an in-memory exporter.
func setupTestTracer(t *testing.T) (trace.Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	return provider.Tracer("test-tracer"), exporter
}

// getAttributeValue extracts an attribute value from a span.
func getAttributeValue(span tracetest.SpanStub, key string) (attribute.Value, bool) {
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			return attr.Value, true
		}
	}
	return attribute.Value{}, false
}

func newRouter(tracer trace.Tracer) *chi.Mux {
	r := chi.NewRouter()
	r.Use(Middleware(tracer))
	r.Get("/requirements/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func TestMiddleware_NilTracer_ReturnsPassThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Trace-Id"))
}

func TestMiddleware_NamesSpanByRoutePattern(t *testing.T) {
	tracer, exporter := setupTestTracer(t)

	rec := httptest.NewRecorder()
	newRouter(tracer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/requirements/mail", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]

	assert.Equal(t, "http GET /requirements/{id}", span.Name)
	assert.Equal(t, trace.SpanKindServer, span.SpanKind)

	route, ok := getAttributeValue(span, AttrHTTPRoute)
	require.True(t, ok)
	assert.Equal(t, "/requirements/{id}", route.AsString())

	status, ok := getAttributeValue(span, AttrHTTPStatus)
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusNotFound), status.AsInt64())

	assert.Equal(t, span.SpanContext.TraceID().String(), rec.Header().Get("X-Trace-Id"))
	assert.NotEqual(t, codes.Error, span.Status.Code, "4xx is not a server error")
}

func TestMiddleware_ServerErrorSetsStatus(t *testing.T) {
	tracer, exporter := setupTestTracer(t)

	rec := httptest.NewRecorder()
	newRouter(tracer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	tracer, exporter := setupTestTracer(t)

	rec := httptest.NewRecorder()
	newRouter(tracer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	status, ok := getAttributeValue(spans[0], AttrHTTPStatus)
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusOK), status.AsInt64())
}
