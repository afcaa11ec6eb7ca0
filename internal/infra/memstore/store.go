// Package memstore is the in-memory record store. It keeps expenses, budgets
// and subscriptions in process memory; nothing survives a restart.
package memstore

import (
	"context"
	"sync"

	"github.com/boddenberg/smart-gastos-api/internal/domain"

	"github.com/google/uuid"
)

// Store implements port.RecordStore. All methods are safe for concurrent use
// and return copies, so callers may aggregate over the results freely.
type Store struct {
	mu            sync.RWMutex
	expenses      []domain.Expense
	budgets       []domain.Budget
	subscriptions []domain.Subscription
	newID         func() string
}

// Option customises a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator, mostly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ============================================================
// Expenses
// ============================================================

func (s *Store) AddExpense(ctx context.Context, in domain.ExpenseInput) (domain.Expense, error) {
	if err := ctx.Err(); err != nil {
		return domain.Expense{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e := domain.Expense{
		ID:          s.newID(),
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
		Date:        in.Date,
	}
	s.expenses = append(s.expenses, e)
	return e, nil
}

func (s *Store) UpdateExpense(ctx context.Context, id string, patch domain.ExpensePatch) (domain.Expense, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Expense{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.expenses {
		if s.expenses[i].ID != id {
			continue
		}
		e := &s.expenses[i]
		if patch.Amount != nil {
			e.Amount = *patch.Amount
		}
		if patch.Description != nil {
			e.Description = *patch.Description
		}
		if patch.Category != nil {
			e.Category = *patch.Category
		}
		if patch.Date != nil {
			e.Date = *patch.Date
		}
		return *e, true, nil
	}
	return domain.Expense{}, false, nil
}

// DeleteExpense removes the first expense with the given id.
func (s *Store) DeleteExpense(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out, nil
}

// ExpensesByMonth matches on the first seven characters of the date.
// Dates shorter than that never match.
func (s *Store) ExpensesByMonth(ctx context.Context, month string) ([]domain.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Expense, 0)
	for _, e := range s.expenses {
		if domain.MonthOf(e.Date) == month {
			out = append(out, e)
		}
	}
	return out, nil
}

// ============================================================
// Budgets
// ============================================================

// SetBudget upserts by month: an existing budget is updated in place.
func (s *Store) SetBudget(ctx context.Context, in domain.BudgetInput) (domain.Budget, error) {
	if err := ctx.Err(); err != nil {
		return domain.Budget{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.budgets {
		if s.budgets[i].Month == in.Month {
			s.budgets[i].TotalBudget = in.TotalBudget
			return s.budgets[i], nil
		}
	}
	b := domain.Budget{ID: s.newID(), Month: in.Month, TotalBudget: in.TotalBudget}
	s.budgets = append(s.budgets, b)
	return b, nil
}

// BudgetByMonth returns nil when no budget exists for the month.
func (s *Store) BudgetByMonth(ctx context.Context, month string) (*domain.Budget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.budgets {
		if b.Month == month {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

// ============================================================
// Subscriptions
// ============================================================

func (s *Store) AddSubscription(ctx context.Context, in domain.SubscriptionInput) (domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return domain.Subscription{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	status := in.Status
	if status == "" {
		status = domain.StatusActive
	}
	sub := domain.Subscription{
		ID:          s.newID(),
		Name:        in.Name,
		Category:    in.Category,
		Amount:      in.Amount,
		NextPayment: in.NextPayment,
		Status:      status,
	}
	s.subscriptions = append(s.subscriptions, sub)
	return sub, nil
}

func (s *Store) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Subscription, len(s.subscriptions))
	copy(out, s.subscriptions)
	return out, nil
}

// SubscriptionByID returns nil when the id is unknown.
func (s *Store) SubscriptionByID(ctx context.Context, id string) (*domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.subscriptions {
		if sub.ID == id {
			found := sub
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateSubscription(ctx context.Context, id string, patch domain.SubscriptionPatch) (domain.Subscription, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Subscription{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subscriptions {
		if s.subscriptions[i].ID != id {
			continue
		}
		sub := &s.subscriptions[i]
		if patch.Name != nil {
			sub.Name = *patch.Name
		}
		if patch.Category != nil {
			sub.Category = *patch.Category
		}
		if patch.Amount != nil {
			sub.Amount = *patch.Amount
		}
		if patch.NextPayment != nil {
			sub.NextPayment = *patch.NextPayment
		}
		if patch.Status != nil {
			sub.Status = *patch.Status
		}
		return *sub, true, nil
	}
	return domain.Subscription{}, false, nil
}

// ToggleSubscription flips the status under the write lock: Active becomes
// Cancelled, anything else becomes Active.
func (s *Store) ToggleSubscription(ctx context.Context, id string) (domain.Subscription, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Subscription{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subscriptions {
		if s.subscriptions[i].ID == id {
			s.subscriptions[i].Status = s.subscriptions[i].Status.Toggled()
			return s.subscriptions[i], true, nil
		}
	}
	return domain.Subscription{}, false, nil
}

func (s *Store) DeleteSubscription(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subscriptions {
		if s.subscriptions[i].ID == id {
			s.subscriptions = append(s.subscriptions[:i], s.subscriptions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ActiveSubscriptions returns subscriptions whose status is Active, in insertion order.
func (s *Store) ActiveSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Subscription, 0)
	for _, sub := range s.subscriptions {
		if sub.Status == domain.StatusActive {
			out = append(out, sub)
		}
	}
	return out, nil
}

// Counts reports the size of each collection.
func (s *Store) Counts(_ context.Context) domain.RecordCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.RecordCounts{
		Expenses:      len(s.expenses),
		Budgets:       len(s.budgets),
		Subscriptions: len(s.subscriptions),
	}
}
