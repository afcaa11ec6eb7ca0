package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/boddenberg/smart-gastos-api/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Status classes used as the label of the requests counter.
const (
	ClassSuccess     = "success"
	ClassClientError = "client_error"
	ClassServerError = "server_error"
)

// Metrics holds all Prometheus metrics for the API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	storeMutations  *prometheus.CounterVec
	records         *prometheus.GaugeVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "smartgastos_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route and method.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method", "code"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartgastos_http_requests_total",
				Help: "Total HTTP requests served, by status class.",
			},
			[]string{"class"},
		),
		storeMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartgastos_store_mutations_total",
				Help: "Total record store mutations by entity and operation.",
			},
			[]string{"entity", "op"},
		),
		records: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "smartgastos_records",
				Help: "Current number of stored records by entity.",
			},
			[]string{"entity"},
		),
	}
}

// RecordRequest records one served request.
func (m *Metrics) RecordRequest(route, method string, status int, d time.Duration) {
	m.requestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(d.Seconds())
	m.requestsTotal.WithLabelValues(StatusClass(status)).Inc()
}

// IncrMutation counts a store mutation, e.g. ("expense", "create").
func (m *Metrics) IncrMutation(entity, op string) {
	m.storeMutations.WithLabelValues(entity, op).Inc()
}

// SetRecordCounts publishes the current collection sizes.
func (m *Metrics) SetRecordCounts(c domain.RecordCounts) {
	m.records.WithLabelValues("expense").Set(float64(c.Expenses))
	m.records.WithLabelValues("budget").Set(float64(c.Budgets))
	m.records.WithLabelValues("subscription").Set(float64(c.Subscriptions))
}

// RequestSnapshot returns the cumulative request counts by status class.
func (m *Metrics) RequestSnapshot() domain.RequestCounts {
	return domain.RequestCounts{
		Success:     int64(getCounterValue(m.requestsTotal, ClassSuccess)),
		ClientError: int64(getCounterValue(m.requestsTotal, ClassClientError)),
		ServerError: int64(getCounterValue(m.requestsTotal, ClassServerError)),
	}
}

// MutationCount returns the current value of a store mutation counter.
func (m *Metrics) MutationCount(entity, op string) float64 {
	return getCounterValue(m.storeMutations, entity, op)
}

// Middleware observes duration and status class of every request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.RecordRequest(RoutePattern(r), r.Method, status, time.Since(start))
		}()

		next.ServeHTTP(ww, r)
	})
}

// StatusClass maps an HTTP status to its counter label.
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return ClassServerError
	case status >= 400:
		return ClassClientError
	default:
		return ClassSuccess
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for the given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
