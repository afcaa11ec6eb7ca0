package handler

import (
	"net/http"

	"github.com/boddenberg/smart-gastos-api/internal/domain"
	"github.com/boddenberg/smart-gastos-api/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// History Handlers
// ============================================================

func historyExpensesHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/history/expenses")
		defer span.End()

		q := r.URL.Query()
		page, limit := parsePagination(r)
		result, err := svc.HistoryExpenses(ctx, domain.HistoryQuery{
			StartDate: q.Get("startDate"),
			EndDate:   q.Get("endDate"),
			Category:  q.Get("category"),
			Search:    q.Get("search"),
			Page:      page,
			Limit:     limit,
		})
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, result)
	}
}

func historyStatsHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/history/stats")
		defer span.End()

		stats, err := svc.HistoryStats(ctx, dateRange(r, "startDate", "endDate"))
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, stats)
	}
}

func historyPeriodHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/history/period")
		defer span.End()
		period := r.URL.Query().Get("period")
		span.SetAttributes(attribute.String("period", period))

		series, err := svc.HistoryPeriod(ctx, domain.Granularity(period), dateRange(r, "startDate", "endDate"))
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, series)
	}
}
