package observability_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boddenberg/smart-gastos-api/internal/domain"
	"github.com/boddenberg/smart-gastos-api/internal/infra/observability"
	"github.com/go-chi/chi/v5"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func seriesCount(t *testing.T, m *observability.Metrics, name string) int {
	t.Helper()
	families, err := m.Registry.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return len(f.GetMetric())
		}
	}
	return 0
}

func TestNewMetrics_Twice(t *testing.T) {
	// Private registries mean repeated construction must not panic.
	assert.NotPanics(t, func() {
		observability.NewMetrics()
		observability.NewMetrics()
	})
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, observability.ClassSuccess, observability.StatusClass(200))
	assert.Equal(t, observability.ClassSuccess, observability.StatusClass(304))
	assert.Equal(t, observability.ClassClientError, observability.StatusClass(404))
	assert.Equal(t, observability.ClassServerError, observability.StatusClass(500))
}

func TestMetrics_RequestSnapshot(t *testing.T) {
	m := observability.NewMetrics()
	m.RecordRequest("/api/expenses", http.MethodPost, 201, time.Millisecond)
	m.RecordRequest("/api/expenses", http.MethodPost, 400, time.Millisecond)
	m.RecordRequest("/api/expenses", http.MethodPost, 400, time.Millisecond)
	m.RecordRequest("/api/dashboard", http.MethodGet, 500, time.Millisecond)

	assert.Equal(t, domain.RequestCounts{Success: 1, ClientError: 2, ServerError: 1}, m.RequestSnapshot())
}

func TestMetrics_MutationsAndGauges(t *testing.T) {
	m := observability.NewMetrics()
	m.IncrMutation("expense", "create")
	m.IncrMutation("expense", "create")
	m.SetRecordCounts(domain.RecordCounts{Expenses: 7, Budgets: 1, Subscriptions: 6})

	assert.Equal(t, 2.0, m.MutationCount("expense", "create"))
	assert.Equal(t, 0.0, m.MutationCount("budget", "upsert"))

	assert.Equal(t, 3, seriesCount(t, m, "smartgastos_records"))
}

func TestMetrics_Middleware(t *testing.T) {
	m := observability.NewMetrics()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/expenses/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/expenses/abc", nil))

	assert.Equal(t, int64(1), m.RequestSnapshot().ClientError)
	assert.Equal(t, 1, seriesCount(t, m, "smartgastos_http_request_duration_seconds"))
}

func TestZapLoggerMiddleware_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	r := chi.NewRouter()
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/bad", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadRequest) })
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) })

	for _, p := range []string{"/ok", "/bad", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "/bad", entries[1].ContextMap()["route"])
	assert.Equal(t, "api call", entries[0].Message)
}

func TestTracingMiddleware_ContinuesCallerTrace(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	var got trace.SpanContext
	h := observability.TracingMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = trace.SpanContextFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", got.TraceID().String())
	assert.True(t, got.IsRemote())
}

func TestNewLogger_Levels(t *testing.T) {
	assert.True(t, observability.NewLogger("debug").Core().Enabled(zapcore.DebugLevel))
	assert.False(t, observability.NewLogger("info").Core().Enabled(zapcore.DebugLevel))
	assert.False(t, observability.NewLogger("bogus").Core().Enabled(zapcore.DebugLevel))
	assert.False(t, observability.NewLogger("warn").Core().Enabled(zapcore.InfoLevel))
}

func TestInitTracer_NoEndpoint(t *testing.T) {
	shutdown, err := observability.InitTracer("", "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
