// Package port defines the interfaces (ports) for the record store.
// Following hexagonal architecture, these ports decouple the service
// layer from the concrete in-memory implementation.
package port

import (
	"context"

	"github.com/boddenberg/smart-gastos-api/internal/domain"
)

// ExpenseStore holds expense records.
type ExpenseStore interface {
	AddExpense(ctx context.Context, in domain.ExpenseInput) (domain.Expense, error)
	UpdateExpense(ctx context.Context, id string, patch domain.ExpensePatch) (domain.Expense, bool, error)
	DeleteExpense(ctx context.Context, id string) (bool, error)
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	ExpensesByMonth(ctx context.Context, month string) ([]domain.Expense, error)
}

// BudgetStore holds one budget per month.
type BudgetStore interface {
	SetBudget(ctx context.Context, in domain.BudgetInput) (domain.Budget, error)
	BudgetByMonth(ctx context.Context, month string) (*domain.Budget, error)
}

// SubscriptionStore holds subscription records.
type SubscriptionStore interface {
	AddSubscription(ctx context.Context, in domain.SubscriptionInput) (domain.Subscription, error)
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)
	SubscriptionByID(ctx context.Context, id string) (*domain.Subscription, error)
	UpdateSubscription(ctx context.Context, id string, patch domain.SubscriptionPatch) (domain.Subscription, bool, error)
	ToggleSubscription(ctx context.Context, id string) (domain.Subscription, bool, error)
	DeleteSubscription(ctx context.Context, id string) (bool, error)
	ActiveSubscriptions(ctx context.Context) ([]domain.Subscription, error)
}

// RecordStore is the full record store used by the services.
// Lookups report "not found" through a nil pointer or false, never an error.
type RecordStore interface {
	ExpenseStore
	BudgetStore
	SubscriptionStore
	Counts(ctx context.Context) domain.RecordCounts
}
