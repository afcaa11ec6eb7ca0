package service

import (
	"context"

	"github.com/boddenberg/smart-gastos-api/internal/aggregate"
	"github.com/boddenberg/smart-gastos-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// DefaultTrendMonths is the trend window when none is requested.
const DefaultTrendMonths = 6

func (s *FinanceService) ReportsData(ctx context.Context, r domain.DateRange) (*domain.ReportsData, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.ReportsData")
	defer span.End()

	all, err := s.allExpenses(ctx)
	if err != nil {
		return nil, err
	}
	data := aggregate.ReportsData(aggregate.InRange(all, r))
	return &data, nil
}

// CompareReports compares two inclusive ranges. All four bounds are required.
func (s *FinanceService) CompareReports(ctx context.Context, previous, current domain.DateRange) (*domain.PeriodComparison, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.CompareReports")
	defer span.End()

	if previous.Start == "" || previous.End == "" || current.Start == "" || current.End == "" {
		return nil, &domain.ErrValidation{Message: "period1Start, period1End, period2Start and period2End are required"}
	}

	all, err := s.allExpenses(ctx)
	if err != nil {
		return nil, err
	}
	cmp := aggregate.ComparePeriods(all, previous, current)
	return &cmp, nil
}

// Trends returns the last months of monthly totals. months must be positive.
func (s *FinanceService) Trends(ctx context.Context, months int) (*domain.Trends, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.Trends")
	defer span.End()

	if months < 1 {
		return nil, &domain.ErrValidation{Field: "months", Message: "must be a positive integer"}
	}
	span.SetAttributes(attribute.Int("months", months))

	all, err := s.allExpenses(ctx)
	if err != nil {
		return nil, err
	}
	trends := aggregate.MonthlyTrends(all, months)
	return &trends, nil
}

// CategoryReport describes one category (exact match) within an optional range.
func (s *FinanceService) CategoryReport(ctx context.Context, category string, r domain.DateRange) (*domain.CategoryReport, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.CategoryReport")
	defer span.End()

	if category == "" {
		return nil, &domain.ErrValidation{Field: "category", Message: "is required"}
	}
	span.SetAttributes(attribute.String("category", category))

	all, err := s.allExpenses(ctx)
	if err != nil {
		return nil, err
	}
	report := aggregate.CategoryReport(all, category, r)
	return &report, nil
}
