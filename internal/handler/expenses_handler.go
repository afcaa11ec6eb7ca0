package handler

import (
	"net/http"

	"github.com/boddenberg/smart-gastos-api/internal/domain"
	"github.com/boddenberg/smart-gastos-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Expense Handlers
// ============================================================

func addExpenseHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/expenses")
		defer span.End()

		var in domain.ExpenseInput
		if err := decodeJSON(w, r, &in); err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		e, err := svc.AddExpense(ctx, in)
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccessMessage(w, e, "Expense added")
	}
}

func recentExpensesHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/expenses/recent")
		defer span.End()

		expenses, err := svc.RecentExpenses(ctx, r.URL.Query().Get("month"))
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, expenses)
	}
}

func updateExpenseHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /api/expenses/{id}")
		defer span.End()

		var patch domain.ExpensePatch
		if err := decodeJSON(w, r, &patch); err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		e, err := svc.UpdateExpense(ctx, chi.URLParam(r, "id"), patch)
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccessMessage(w, e, "Expense updated")
	}
}

func deleteExpenseHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /api/expenses/{id}")
		defer span.End()

		if err := svc.DeleteExpense(ctx, chi.URLParam(r, "id")); err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccessMessage(w, nil, "Expense deleted")
	}
}
