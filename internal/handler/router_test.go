package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/boddenberg/smart-gastos-api/internal/domain"
	"github.com/boddenberg/smart-gastos-api/internal/handler"
	"github.com/boddenberg/smart-gastos-api/internal/infra/memstore"
	"github.com/boddenberg/smart-gastos-api/internal/infra/observability"
	"github.com/boddenberg/smart-gastos-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testOrigin = "http://localhost:3000"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func newRouter(t *testing.T, seed bool) http.Handler {
	t.Helper()
	store := memstore.New()
	if seed {
		require.NoError(t, memstore.Seed(context.Background(), store, zap.NewNop()))
	}
	metrics := observability.NewMetrics()
	clock := func() time.Time { return time.Date(2025, 10, 24, 12, 0, 0, 0, time.UTC) }
	svc := service.NewFinanceService(store, metrics, zap.NewNop(), service.WithClock(clock))
	return handler.NewRouter(svc, handler.Options{
		FrontendURL:    testOrigin,
		Development:    true,
		MaxConcurrency: 10,
	}, metrics, zap.NewNop())
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func dataAs[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

// ============================================================
// Operational endpoints
// ============================================================

func TestHealth(t *testing.T) {
	router := newRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var h domain.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.True(t, h.Success)
	assert.Equal(t, "Smart Gastos API is running", h.Message)
	assert.Equal(t, "2025-10-24T12:00:00Z", h.Timestamp)
	assert.Equal(t, 7, h.Records.Expenses)
}

func TestReadyz(t *testing.T) {
	router := newRouter(t, false)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestPing(t *testing.T) {
	router := newRouter(t, false)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	router := newRouter(t, false)
	do(t, router, http.MethodGet, "/api/dashboard?month=2025-10", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "smartgastos_http_requests_total")
	assert.Contains(t, rec.Body.String(), `route="/api/dashboard"`)
}

func TestHealth_CountsRequests(t *testing.T) {
	router := newRouter(t, false)
	do(t, router, http.MethodGet, "/api/dashboard", "")
	do(t, router, http.MethodGet, "/api/nope", "")

	rec, _ := do(t, router, http.MethodGet, "/health", "")
	var h domain.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, int64(1), h.Requests.Success)
	assert.Equal(t, int64(1), h.Requests.ClientError)
}

func TestNotFound(t *testing.T) {
	router := newRouter(t, false)

	rec, env := do(t, router, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Route GET /api/nope not found", env.Error)

	rec, env = do(t, router, http.MethodPatch, "/api/expenses/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route PATCH /api/expenses/abc not found", env.Error)
}

func TestCORS_Preflight(t *testing.T) {
	router := newRouter(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/api/dashboard", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

// ============================================================
// Dashboard & budgets
// ============================================================

func TestDashboard(t *testing.T) {
	router := newRouter(t, true)

	rec, env := do(t, router, http.MethodGet, "/api/dashboard?month=2025-10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	d := dataAs[domain.Dashboard](t, env)
	assert.InDelta(t, 910.30, d.TotalSpent, 1e-9)
	assert.InDelta(t, 2089.70, d.Remaining, 1e-9)
	assert.Len(t, d.CategoryChart, 8)

	rec, env = do(t, router, http.MethodGet, "/api/dashboard?month=10-2025", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error, "month")
}

func TestDisplayDashboard(t *testing.T) {
	router := newRouter(t, true)

	rec, env := do(t, router, http.MethodGet, "/api/dashboard/display?month=2025-10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	v := dataAs[domain.DisplayDashboard](t, env)
	assert.Equal(t, "R$ 910,30", v.FormattedSpent)
	require.NotEmpty(t, v.RecentExpenses)
	assert.Equal(t, 1, v.RecentExpenses[0].ID)
}

func TestBudget(t *testing.T) {
	router := newRouter(t, false)

	rec, env := do(t, router, http.MethodGet, "/api/budget?month=2025-11", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, env.Error, "budget not found")

	rec, env = do(t, router, http.MethodPost, "/api/budget", `{"month":"2025-11","totalBudget":2500}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Budget saved", env.Message)

	rec, env = do(t, router, http.MethodGet, "/api/budget?month=2025-11", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2500.0, dataAs[domain.Budget](t, env).TotalBudget)

	rec, env = do(t, router, http.MethodPost, "/api/budget", `{"month":"2025-13","totalBudget":2500}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error, "month")
}

// ============================================================
// Expenses
// ============================================================

func TestExpenses_Lifecycle(t *testing.T) {
	router := newRouter(t, false)

	rec, env := do(t, router, http.MethodPost, "/api/expenses", `{"amount":42.5,"description":"Padaria","category":"Alimentação","date":"2025-10-03"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	created := dataAs[domain.Expense](t, env)
	require.NotEmpty(t, created.ID)

	rec, env = do(t, router, http.MethodPut, "/api/expenses/"+created.ID, `{"amount":50}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := dataAs[domain.Expense](t, env)
	assert.Equal(t, 50.0, updated.Amount)
	assert.Equal(t, "Padaria", updated.Description)

	rec, env = do(t, router, http.MethodGet, "/api/expenses/recent?month=2025-10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, dataAs[[]domain.Expense](t, env), 1)

	rec, env = do(t, router, http.MethodDelete, "/api/expenses/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Expense deleted", env.Message)

	rec, _ = do(t, router, http.MethodDelete, "/api/expenses/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = do(t, router, http.MethodPut, "/api/expenses/"+created.ID, `{"amount":10}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExpenses_BadInput(t *testing.T) {
	router := newRouter(t, false)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "request body is required"},
		{"malformed", `{"amount":`, "invalid JSON body"},
		{"zero amount", `{"amount":0,"description":"x","category":"c","date":"2025-10-01"}`, "amount"},
		{"bad date", `{"amount":1,"description":"x","category":"c","date":"01/10/2025"}`, "date"},
		{"blank description", `{"amount":1,"description":"  ","category":"c","date":"2025-10-01"}`, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var env envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.False(t, env.Success)
			assert.Contains(t, env.Error, tt.want)
		})
	}
}

// ============================================================
// Subscriptions
// ============================================================

func TestSubscriptions_Lifecycle(t *testing.T) {
	router := newRouter(t, false)

	rec, env := do(t, router, http.MethodPost, "/api/subscriptions", `{"name":"Netflix","category":"Entretenimento","amount":29.9,"nextPayment":"2025-10-06"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	sub := dataAs[domain.Subscription](t, env)
	assert.Equal(t, domain.StatusActive, sub.Status)

	rec, env = do(t, router, http.MethodGet, "/api/subscriptions/total-cost", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]float64{"totalCost": 29.9}, dataAs[map[string]float64](t, env))

	rec, env = do(t, router, http.MethodGet, "/api/categories/summary?month=2025-10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, dataAs[[]domain.CategorySummary](t, env), 1)

	rec, env = do(t, router, http.MethodPost, "/api/subscriptions/"+sub.ID+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.StatusCancelled, dataAs[domain.Subscription](t, env).Status)

	rec, env = do(t, router, http.MethodGet, "/api/subscriptions/active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, dataAs[[]domain.Subscription](t, env))

	rec, env = do(t, router, http.MethodGet, "/api/categories/summary?month=2025-10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, dataAs[[]domain.CategorySummary](t, env))

	rec, env = do(t, router, http.MethodPut, "/api/subscriptions/"+sub.ID, `{"status":"Paused"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error, "status")

	rec, _ = do(t, router, http.MethodGet, "/api/subscriptions/"+sub.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, router, http.MethodDelete, "/api/subscriptions/"+sub.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, router, http.MethodGet, "/api/subscriptions/"+sub.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscriptionAnalytics(t *testing.T) {
	router := newRouter(t, true)

	rec, env := do(t, router, http.MethodGet, "/api/subscriptions/analytics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	a := dataAs[domain.SubscriptionAnalytics](t, env)
	assert.Equal(t, 6, a.ActiveCount)
	assert.InDelta(t, 244.40, a.TotalMonthly, 1e-9)
	assert.InDelta(t, 244.40*12, a.AnnualProjection, 1e-6)
}

// ============================================================
// History & reports
// ============================================================

func TestHistory(t *testing.T) {
	router := newRouter(t, true)

	rec, env := do(t, router, http.MethodGet, "/api/history/expenses?category=all&page=2&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := dataAs[domain.ExpensePage](t, env)
	assert.Equal(t, domain.Pagination{Page: 2, Limit: 5, Total: 13, TotalPages: 3}, page.Pagination)
	assert.Len(t, page.Expenses, 5)

	rec, env = do(t, router, http.MethodGet, "/api/history/expenses?page=9223372036854775807&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page = dataAs[domain.ExpensePage](t, env)
	assert.Empty(t, page.Expenses)
	assert.Equal(t, 7, page.Pagination.TotalPages)

	rec, env = do(t, router, http.MethodGet, "/api/history/expenses?page=abc&limit=-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page = dataAs[domain.ExpensePage](t, env)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 50, page.Pagination.Limit)

	rec, env = do(t, router, http.MethodGet, "/api/history/stats?startDate=2025-10-20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 8, dataAs[domain.HistoryStats](t, env).TotalExpenses)

	rec, env = do(t, router, http.MethodGet, "/api/history/period?period=day", "")
	require.Equal(t, http.StatusOK, rec.Code)
	series := dataAs[[]domain.PeriodAmount](t, env)
	require.NotEmpty(t, series)
	assert.Equal(t, "2025-10-06", series[0].Period)

	rec, _ = do(t, router, http.MethodGet, "/api/history/period?period=fortnight", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReports(t *testing.T) {
	router := newRouter(t, true)

	rec, env := do(t, router, http.MethodGet, "/api/reports/data", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataAs[domain.ReportsData](t, env)
	assert.Equal(t, 13, data.Summary.TotalExpenses)
	assert.LessOrEqual(t, len(data.TopCategories), 5)
	assert.LessOrEqual(t, len(data.RecentExpenses), 10)

	rec, env = do(t, router, http.MethodGet, "/api/reports/comparison?period1Start=2025-09-01&period1End=2025-09-30&period2Start=2025-10-01&period2End=2025-10-31", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cmp := dataAs[domain.PeriodComparison](t, env)
	assert.Zero(t, cmp.Comparison.TotalAmountChange)
	assert.Equal(t, 13, cmp.Comparison.ExpensesDifference)

	rec, _ = do(t, router, http.MethodGet, "/api/reports/comparison?period1Start=2025-09-01", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, router, http.MethodGet, "/api/reports/trends", "")
	require.Equal(t, http.StatusOK, rec.Code)
	trends := dataAs[domain.Trends](t, env)
	assert.Equal(t, 6, trends.MonthsAnalyzed)
	assert.Equal(t, domain.TrendStable, trends.TrendDirection)

	for _, bad := range []string{"abc", "0", "-2"} {
		rec, _ = do(t, router, http.MethodGet, "/api/reports/trends?months="+bad, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}

	rec, env = do(t, router, http.MethodGet, "/api/reports/category?category=Sa%C3%BAde", "")
	require.Equal(t, http.StatusOK, rec.Code)
	report := dataAs[domain.CategoryReport](t, env)
	assert.Equal(t, 2, report.Summary.TotalCount)

	rec, _ = do(t, router, http.MethodGet, "/api/reports/category", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================
// Alerts
// ============================================================

func TestAlerts(t *testing.T) {
	router := newRouter(t, true)

	rec, env := do(t, router, http.MethodGet, "/api/alerts?month=2025-10&today=2025-10-20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	alerts := dataAs[[]domain.Alert](t, env)
	require.NotEmpty(t, alerts)
	for _, a := range alerts {
		assert.Equal(t, "2025-10-20", a.Date)
	}

	rec, _ = do(t, router, http.MethodGet, "/api/alerts?today=tomorrow", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================
// Middleware
// ============================================================

func TestRecoverMiddleware(t *testing.T) {
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	for _, expose := range []bool{true, false} {
		h := handler.ErrorDetailMiddleware(expose)(handler.RecoverMiddleware(zap.NewNop())(boom))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, "internal server error", env.Error)
		if expose {
			assert.Equal(t, "panic: boom", env.Message)
		} else {
			assert.Empty(t, env.Message)
		}
	}
}
