// Package service provides the business logic layer (use cases).
// FinanceService handles budgets, expenses, subscriptions, history,
// reports and alerts on top of the record store.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/boddenberg/smart-gastos-api/internal/aggregate"
	"github.com/boddenberg/smart-gastos-api/internal/domain"
	"github.com/boddenberg/smart-gastos-api/internal/infra/observability"
	"github.com/boddenberg/smart-gastos-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var financeTracer = otel.Tracer("service/finance")

const (
	monthLayout = "2006-01"
	dateLayout  = "2006-01-02"
)

// FinanceService orchestrates every use case over the in-memory record store.
type FinanceService struct {
	store   port.RecordStore
	metrics *observability.Metrics
	logger  *zap.Logger

	strictScope bool
	now         func() time.Time
}

// Option customises a FinanceService.
type Option func(*FinanceService)

// WithStrictSubscriptionScope keeps only the virtual expenses whose payment
// date falls in the requested month on month views.
func WithStrictSubscriptionScope(strict bool) Option {
	return func(s *FinanceService) { s.strictScope = strict }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *FinanceService) { s.now = now }
}

// NewFinanceService creates a new finance service.
func NewFinanceService(store port.RecordStore, metrics *observability.Metrics, logger *zap.Logger, opts ...Option) *FinanceService {
	s := &FinanceService{store: store, metrics: metrics, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Health reports liveness together with record and request counts.
func (s *FinanceService) Health(ctx context.Context) domain.HealthStatus {
	return domain.HealthStatus{
		Success:   true,
		Message:   "Smart Gastos API is running",
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Records:   s.store.Counts(ctx),
		Requests:  s.metrics.RequestSnapshot(),
	}
}

// ============================================================
// Helpers
// ============================================================

// resolveMonth defaults an empty month to the current UTC month and rejects
// anything that is not YYYY-MM.
func (s *FinanceService) resolveMonth(month string) (string, error) {
	if month == "" {
		return s.now().UTC().Format(monthLayout), nil
	}
	if _, err := time.Parse(monthLayout, month); err != nil {
		return "", &domain.ErrValidation{Field: "month", Message: "must be in YYYY-MM format"}
	}
	return month, nil
}

// resolveDay defaults an empty day to today (UTC) and rejects anything that
// is not YYYY-MM-DD.
func (s *FinanceService) resolveDay(field, day string) (string, error) {
	if day == "" {
		return s.now().UTC().Format(dateLayout), nil
	}
	if _, err := time.Parse(dateLayout, day); err != nil {
		return "", &domain.ErrValidation{Field: field, Message: "must be in YYYY-MM-DD format"}
	}
	return day, nil
}

// spanFailure marks the span carried by ctx as failed and returns err.
func spanFailure(ctx context.Context, err error) error {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// recordMutation counts a mutation and refreshes the record gauges.
func (s *FinanceService) recordMutation(ctx context.Context, entity, op string) {
	s.metrics.IncrMutation(entity, op)
	s.metrics.SetRecordCounts(s.store.Counts(ctx))
}

// allExpenses returns every real expense followed by the virtual expenses of
// the active subscriptions.
func (s *FinanceService) allExpenses(ctx context.Context) ([]domain.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, spanFailure(ctx, fmt.Errorf("list expenses: %w", err))
	}
	subs, err := s.store.ActiveSubscriptions(ctx)
	if err != nil {
		return nil, spanFailure(ctx, fmt.Errorf("active subscriptions: %w", err))
	}
	return aggregate.Combine(expenses, subs), nil
}

// monthVirtual materialises the active subscriptions for a month view.
// Unless strict scope is on, payment dates outside the month are kept.
func (s *FinanceService) monthVirtual(subs []domain.Subscription, month string) []domain.Expense {
	virtual := aggregate.MaterializeSubscriptions(subs)
	if s.strictScope {
		return aggregate.InMonth(virtual, month)
	}
	return virtual
}

// monthExpenses returns the month's real expenses followed by its virtual ones.
func (s *FinanceService) monthExpenses(ctx context.Context, month string) ([]domain.Expense, error) {
	expenses, err := s.store.ExpensesByMonth(ctx, month)
	if err != nil {
		return nil, spanFailure(ctx, fmt.Errorf("expenses by month: %w", err))
	}
	subs, err := s.store.ActiveSubscriptions(ctx)
	if err != nil {
		return nil, spanFailure(ctx, fmt.Errorf("active subscriptions: %w", err))
	}
	return append(expenses, s.monthVirtual(subs, month)...), nil
}
