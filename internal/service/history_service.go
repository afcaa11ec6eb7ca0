package service

import (
	"context"

	"github.com/boddenberg/smart-gastos-api/internal/aggregate"
	"github.com/boddenberg/smart-gastos-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// Pagination defaults for the history listing.
const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// HistoryExpenses filters the combined history, sorts it newest first and
// returns one page of it.
func (s *FinanceService) HistoryExpenses(ctx context.Context, q domain.HistoryQuery) (*domain.ExpensePage, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.HistoryExpenses")
	defer span.End()

	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	span.SetAttributes(attribute.Int("page", q.Page), attribute.Int("limit", q.Limit))

	all, err := s.allExpenses(ctx)
	if err != nil {
		return nil, err
	}

	filtered := aggregate.Filter(all, aggregate.Query{
		StartDate:     q.StartDate,
		EndDate:       q.EndDate,
		Category:      q.Category,
		CategoryMatch: aggregate.MatchContains,
		Search:        q.Search,
	})
	page := aggregate.Paginate(aggregate.SortByDateDesc(filtered), q.Page, q.Limit)
	return &page, nil
}

// HistoryStats summarises the combined history within an optional range.
func (s *FinanceService) HistoryStats(ctx context.Context, r domain.DateRange) (*domain.HistoryStats, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.HistoryStats")
	defer span.End()

	all, err := s.allExpenses(ctx)
	if err != nil {
		return nil, err
	}
	stats := aggregate.HistoryStats(aggregate.InRange(all, r))
	return &stats, nil
}

// HistoryPeriod buckets the combined history by granularity. An empty
// granularity means month.
func (s *FinanceService) HistoryPeriod(ctx context.Context, g domain.Granularity, r domain.DateRange) ([]domain.PeriodAmount, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.HistoryPeriod")
	defer span.End()

	if g == "" {
		g = domain.GranularityMonth
	}
	if !g.Valid() {
		return nil, &domain.ErrValidation{Field: "period", Message: "must be one of day, week, month, year"}
	}
	span.SetAttributes(attribute.String("period", string(g)))

	all, err := s.allExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.PeriodSeries(aggregate.InRange(all, r), g), nil
}
