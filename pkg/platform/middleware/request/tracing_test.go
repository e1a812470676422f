package request

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var traceID string
	handler := RequestID(Tracing("test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceID(r)
		w.WriteHeader(http.StatusNoContent)
	})))

	t.Run("records a span named after the route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/profiles/p-1/access", nil)
		req.Header.Set("X-Request-ID", "req-42")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "POST /profiles/p-1/access", spans[0].Name())
		assert.Equal(t, spans[0].SpanContext().TraceID().String(), traceID)

		var found bool
		for _, attr := range spans[0].Attributes() {
			if attr.Key == "request.id" {
				found = true
				assert.Equal(t, "req-42", attr.Value.AsString())
			}
		}
		assert.True(t, found)
	})

	t.Run("skips probes", func(t *testing.T) {
		before := len(recorder.Ended())
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Len(t, recorder.Ended(), before)
		assert.Empty(t, traceID)
	})
}
