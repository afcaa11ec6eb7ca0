package service

import (
	"context"
	"fmt"

	"github.com/boddenberg/smart-gastos-api/internal/aggregate"
	"github.com/boddenberg/smart-gastos-api/internal/domain"
	"github.com/boddenberg/smart-gastos-api/internal/present"
	"github.com/boddenberg/smart-gastos-api/internal/validate"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ============================================================
// Dashboard
// ============================================================

// Dashboard builds the month view. Budget, month expenses and active
// subscriptions are loaded concurrently from store snapshots.
func (s *FinanceService) Dashboard(ctx context.Context, month string) (*domain.Dashboard, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.Dashboard")
	defer span.End()

	month, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("month", month))

	var (
		budget   *domain.Budget
		expenses []domain.Expense
		subs     []domain.Subscription
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.store.BudgetByMonth(gCtx, month)
		if err != nil {
			return fmt.Errorf("budget: %w", err)
		}
		budget = b
		return nil
	})
	g.Go(func() error {
		e, err := s.store.ExpensesByMonth(gCtx, month)
		if err != nil {
			return fmt.Errorf("expenses: %w", err)
		}
		expenses = e
		return nil
	})
	g.Go(func() error {
		sub, err := s.store.ActiveSubscriptions(gCtx)
		if err != nil {
			return fmt.Errorf("subscriptions: %w", err)
		}
		subs = sub
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("dashboard load failed", zap.String("month", month), zap.Error(err))
		return nil, spanFailure(ctx, err)
	}

	all := append(expenses, s.monthVirtual(subs, month)...)
	totalSpent := aggregate.Total(all)

	var remaining float64
	if budget != nil {
		remaining = budget.TotalBudget - totalSpent
	}

	return &domain.Dashboard{
		Budget:         budget,
		TotalSpent:     totalSpent,
		Remaining:      remaining,
		Expenses:       all,
		CategoryChart:  aggregate.CategorySummary(all),
		RecentExpenses: aggregate.SortByDateDesc(all),
	}, nil
}

// DisplayDashboard returns the month view shaped for display.
func (s *FinanceService) DisplayDashboard(ctx context.Context, month string) (*domain.DisplayDashboard, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.DisplayDashboard")
	defer span.End()

	month, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	d, err := s.Dashboard(ctx, month)
	if err != nil {
		return nil, err
	}
	view := present.DisplayDashboard(month, *d)
	return &view, nil
}

// RecentExpenses lists the month's expenses, virtual ones included, newest first.
func (s *FinanceService) RecentExpenses(ctx context.Context, month string) ([]domain.Expense, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.RecentExpenses")
	defer span.End()

	month, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	all, err := s.monthExpenses(ctx, month)
	if err != nil {
		return nil, err
	}
	return aggregate.SortByDateDesc(all), nil
}

// CategorySummary groups the month's expenses, virtual ones included, by category.
func (s *FinanceService) CategorySummary(ctx context.Context, month string) ([]domain.CategorySummary, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.CategorySummary")
	defer span.End()

	month, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	all, err := s.monthExpenses(ctx, month)
	if err != nil {
		return nil, err
	}
	return aggregate.CategorySummary(all), nil
}

// ============================================================
// Budgets
// ============================================================

// SetBudget creates or replaces the budget of a month.
func (s *FinanceService) SetBudget(ctx context.Context, in domain.BudgetInput) (*domain.Budget, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.SetBudget")
	defer span.End()

	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	b, err := s.store.SetBudget(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("set budget: %w", err)
	}
	s.recordMutation(ctx, "budget", "upsert")
	s.logger.Info("budget set",
		zap.String("month", b.Month),
		zap.Float64("total_budget", b.TotalBudget),
	)
	return &b, nil
}

// GetBudget returns the budget of a month or ErrNotFound.
func (s *FinanceService) GetBudget(ctx context.Context, month string) (*domain.Budget, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.GetBudget")
	defer span.End()

	month, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	b, err := s.store.BudgetByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("budget by month: %w", err)
	}
	if b == nil {
		return nil, &domain.ErrNotFound{Resource: "budget", ID: month}
	}
	return b, nil
}
