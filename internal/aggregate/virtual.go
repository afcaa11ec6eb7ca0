package aggregate

import (
	"strings"

	"github.com/boddenberg/smart-gastos-api/internal/domain"
)

const (
	// VirtualIDPrefix marks expenses materialized from subscriptions.
	VirtualIDPrefix = "sub-"

	virtualDescriptionPrefix = "Subscription "
)

// MaterializeSubscriptions maps every Active subscription to a virtual expense
// dated on its next payment. Non-active subscriptions are skipped. The result is
// derived fresh on each call and never stored.
func MaterializeSubscriptions(subs []domain.Subscription) []domain.Expense {
	out := make([]domain.Expense, 0, len(subs))
	for _, s := range subs {
		if s.Status != domain.StatusActive {
			continue
		}
		out = append(out, domain.Expense{
			ID:          VirtualIDPrefix + s.ID,
			Description: virtualDescriptionPrefix + s.Name,
			Category:    s.Category,
			Amount:      s.Amount,
			Date:        s.NextPayment,
		})
	}
	return out
}

// IsVirtual reports whether an expense was materialized from a subscription.
func IsVirtual(e domain.Expense) bool {
	return strings.HasPrefix(e.ID, VirtualIDPrefix)
}

// Combine appends the virtual expenses of subs after the real expenses.
func Combine(expenses []domain.Expense, subs []domain.Subscription) []domain.Expense {
	virtual := MaterializeSubscriptions(subs)
	out := make([]domain.Expense, 0, len(expenses)+len(virtual))
	out = append(out, expenses...)
	return append(out, virtual...)
}

// InMonth keeps the expenses whose date falls in month by string prefix.
func InMonth(expenses []domain.Expense, month string) []domain.Expense {
	out := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if domain.MonthOf(e.Date) == month {
			out = append(out, e)
		}
	}
	return out
}
