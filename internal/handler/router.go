package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/boddenberg/smart-gastos-api/internal/infra/observability"
	"github.com/boddenberg/smart-gastos-api/internal/infra/resilience"
	"github.com/boddenberg/smart-gastos-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// DefaultQueueWait is how long a request waits for a free slot before a 503.
const DefaultQueueWait = 2 * time.Second

// Options tunes the router.
type Options struct {
	// FrontendURL is the only origin allowed by CORS.
	FrontendURL string
	// Development attaches error messages to 500 responses.
	Development bool
	// MaxConcurrency caps in-flight /api requests.
	MaxConcurrency int
	// QueueWait defaults to DefaultQueueWait.
	QueueWait time.Duration
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svc *service.FinanceService, opts Options, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	if opts.QueueWait <= 0 {
		opts.QueueWait = DefaultQueueWait
	}

	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(metrics.Middleware)
	r.Use(observability.TracingMiddleware)
	r.Use(ErrorDetailMiddleware(opts.Development))
	r.Use(RecoverMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Heartbeat("/ping"))

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(notFoundHandler)

	// --- Operational endpoints ---
	r.Get("/health", healthHandler(svc))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	bulkhead := resilience.NewBulkhead(opts.MaxConcurrency)
	busy := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Warn("request rejected, server busy",
			zap.String("path", r.URL.Path),
			zap.Int("capacity", bulkhead.Capacity()),
		)
		writeError(w, http.StatusServiceUnavailable, "server is busy, try again later")
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(bulkhead.Middleware(opts.QueueWait, busy))

		// =============================================
		// Dashboard & budgets
		// =============================================
		r.Get("/dashboard", dashboardHandler(svc, logger))
		r.Get("/dashboard/display", displayDashboardHandler(svc, logger))
		r.Get("/budget", getBudgetHandler(svc, logger))
		r.Post("/budget", setBudgetHandler(svc, logger))
		r.Get("/categories/summary", categorySummaryHandler(svc, logger))

		// =============================================
		// Expenses
		// =============================================
		r.Post("/expenses", addExpenseHandler(svc, logger))
		r.Get("/expenses/recent", recentExpensesHandler(svc, logger))
		r.Put("/expenses/{id}", updateExpenseHandler(svc, logger))
		r.Delete("/expenses/{id}", deleteExpenseHandler(svc, logger))

		// =============================================
		// Subscriptions
		// =============================================
		r.Get("/subscriptions", listSubscriptionsHandler(svc, logger))
		r.Post("/subscriptions", addSubscriptionHandler(svc, logger))
		r.Get("/subscriptions/active", activeSubscriptionsHandler(svc, logger))
		r.Get("/subscriptions/total-cost", subscriptionsTotalCostHandler(svc, logger))
		r.Get("/subscriptions/analytics", subscriptionAnalyticsHandler(svc, logger))
		r.Get("/subscriptions/{id}", getSubscriptionHandler(svc, logger))
		r.Put("/subscriptions/{id}", updateSubscriptionHandler(svc, logger))
		r.Delete("/subscriptions/{id}", deleteSubscriptionHandler(svc, logger))
		r.Post("/subscriptions/{id}/toggle", toggleSubscriptionHandler(svc, logger))

		// =============================================
		// History
		// =============================================
		r.Get("/history/expenses", historyExpensesHandler(svc, logger))
		r.Get("/history/stats", historyStatsHandler(svc, logger))
		r.Get("/history/period", historyPeriodHandler(svc, logger))

		// =============================================
		// Reports
		// =============================================
		r.Get("/reports/data", reportsDataHandler(svc, logger))
		r.Get("/reports/comparison", reportsComparisonHandler(svc, logger))
		r.Get("/reports/trends", reportsTrendsHandler(svc, logger))
		r.Get("/reports/category", categoryReportHandler(svc, logger))

		// =============================================
		// Alerts
		// =============================================
		r.Get("/alerts", alertsHandler(svc, logger))
	})

	return r
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path))
}
