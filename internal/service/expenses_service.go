package service

import (
	"context"
	"fmt"

	"github.com/boddenberg/smart-gastos-api/internal/domain"
	"github.com/boddenberg/smart-gastos-api/internal/validate"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AddExpense validates and stores a new expense.
func (s *FinanceService) AddExpense(ctx context.Context, in domain.ExpenseInput) (*domain.Expense, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.AddExpense")
	defer span.End()

	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	e, err := s.store.AddExpense(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("add expense: %w", err)
	}
	span.SetAttributes(attribute.String("expense.id", e.ID))
	s.recordMutation(ctx, "expense", "create")
	s.logger.Info("expense added",
		zap.String("expense_id", e.ID),
		zap.String("category", e.Category),
		zap.String("month", domain.MonthOf(e.Date)),
	)
	return &e, nil
}

// UpdateExpense applies a partial patch to an expense.
func (s *FinanceService) UpdateExpense(ctx context.Context, id string, patch domain.ExpensePatch) (*domain.Expense, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.UpdateExpense")
	defer span.End()
	span.SetAttributes(attribute.String("expense.id", id))

	if id == "" {
		return nil, &domain.ErrValidation{Field: "id", Message: "is required"}
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}

	e, ok, err := s.store.UpdateExpense(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "expense", ID: id}
	}
	s.recordMutation(ctx, "expense", "update")
	s.logger.Info("expense updated", zap.String("expense_id", id))
	return &e, nil
}

// DeleteExpense removes an expense or returns ErrNotFound.
func (s *FinanceService) DeleteExpense(ctx context.Context, id string) error {
	ctx, span := financeTracer.Start(ctx, "FinanceService.DeleteExpense")
	defer span.End()
	span.SetAttributes(attribute.String("expense.id", id))

	if id == "" {
		return &domain.ErrValidation{Field: "id", Message: "is required"}
	}

	ok, err := s.store.DeleteExpense(ctx, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if !ok {
		return &domain.ErrNotFound{Resource: "expense", ID: id}
	}
	s.recordMutation(ctx, "expense", "delete")
	s.logger.Info("expense deleted", zap.String("expense_id", id))
	return nil
}
