package handler

import (
	"net/http"

	"github.com/boddenberg/smart-gastos-api/internal/domain"
	"github.com/boddenberg/smart-gastos-api/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Dashboard & Budget Handlers
// ============================================================

func dashboardHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/dashboard")
		defer span.End()
		month := r.URL.Query().Get("month")
		span.SetAttributes(attribute.String("month", month))

		d, err := svc.Dashboard(ctx, month)
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, d)
	}
}

func displayDashboardHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/dashboard/display")
		defer span.End()

		view, err := svc.DisplayDashboard(ctx, r.URL.Query().Get("month"))
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, view)
	}
}

func getBudgetHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/budget")
		defer span.End()

		b, err := svc.GetBudget(ctx, r.URL.Query().Get("month"))
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, b)
	}
}

func setBudgetHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/budget")
		defer span.End()

		var in domain.BudgetInput
		if err := decodeJSON(w, r, &in); err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		b, err := svc.SetBudget(ctx, in)
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccessMessage(w, b, "Budget saved")
	}
}

func categorySummaryHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/categories/summary")
		defer span.End()

		summary, err := svc.CategorySummary(ctx, r.URL.Query().Get("month"))
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, summary)
	}
}
