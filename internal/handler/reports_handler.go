package handler

import (
	"net/http"
	"strconv"

	"github.com/boddenberg/smart-gastos-api/internal/domain"
	"github.com/boddenberg/smart-gastos-api/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Report Handlers
// ============================================================

func reportsDataHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/reports/data")
		defer span.End()

		data, err := svc.ReportsData(ctx, dateRange(r, "startDate", "endDate"))
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, data)
	}
}

func reportsComparisonHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/reports/comparison")
		defer span.End()

		cmp, err := svc.CompareReports(ctx,
			dateRange(r, "period1Start", "period1End"),
			dateRange(r, "period2Start", "period2End"),
		)
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, cmp)
	}
}

func reportsTrendsHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/reports/trends")
		defer span.End()

		months := service.DefaultTrendMonths
		if v := r.URL.Query().Get("months"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				handleServiceError(w, r, &domain.ErrValidation{Field: "months", Message: "must be a positive integer"}, logger)
				return
			}
			months = n
		}

		trends, err := svc.Trends(ctx, months)
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, trends)
	}
}

func categoryReportHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/reports/category")
		defer span.End()

		report, err := svc.CategoryReport(ctx, r.URL.Query().Get("category"), dateRange(r, "startDate", "endDate"))
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, report)
	}
}
