package present

import (
	"github.com/boddenberg/smart-gastos-api/internal/domain"
)

// Expenses converts expenses to their display form, numbering them with m.
func Expenses(m *IDMapper, expenses []domain.Expense) []domain.DisplayExpense {
	out := make([]domain.DisplayExpense, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, domain.DisplayExpense{
			ID:              m.ID(e.ID),
			SourceID:        e.ID,
			Description:     e.Description,
			Category:        e.Category,
			Amount:          e.Amount,
			FormattedAmount: FormatCurrency(e.Amount),
			Date:            e.Date,
		})
	}
	return out
}

// Categories converts a category summary into chart slices.
func Categories(summary []domain.CategorySummary) []domain.DisplayCategory {
	out := make([]domain.DisplayCategory, 0, len(summary))
	for _, s := range summary {
		out = append(out, domain.DisplayCategory{
			Name:       s.Category,
			Value:      s.TotalSpent,
			Color:      CategoryColor(s.Category),
			Percentage: FormatPercent(s.Percentage),
		})
	}
	return out
}

// DisplayDashboard shapes a month dashboard for display. A missing budget is shown as zero.
// Numeric ids are assigned per call in list order; SourceID is the stable store id.
func DisplayDashboard(month string, d domain.Dashboard) domain.DisplayDashboard {
	var budget float64
	if d.Budget != nil {
		budget = d.Budget.TotalBudget
	}
	return domain.DisplayDashboard{
		Month:              month,
		Budget:             budget,
		Spent:              d.TotalSpent,
		Remaining:          d.Remaining,
		FormattedBudget:    FormatCurrency(budget),
		FormattedSpent:     FormatCurrency(d.TotalSpent),
		FormattedRemaining: FormatCurrency(d.Remaining),
		Categories:         Categories(d.CategoryChart),
		RecentExpenses:     Expenses(NewIDMapper(), d.RecentExpenses),
	}
}
