package aggregate

import (
	"sort"
	"strings"

	"github.com/boddenberg/smart-gastos-api/internal/domain"

	"github.com/shopspring/decimal"
)

// bucket accumulates the amount and count of one group key.
type bucket struct {
	key   string
	sum   decimal.Decimal
	count int
}

// groupBy accumulates expenses into buckets keyed by keyOf, in first-seen
// order. Expenses whose key is empty are skipped.
func groupBy(expenses []domain.Expense, keyOf func(domain.Expense) string) []*bucket {
	index := make(map[string]*bucket)
	var order []*bucket
	for _, e := range expenses {
		k := keyOf(e)
		if k == "" {
			continue
		}
		b, ok := index[k]
		if !ok {
			b = &bucket{key: k, sum: decimal.Zero}
			index[k] = b
			order = append(order, b)
		}
		b.sum = b.sum.Add(decimal.NewFromFloat(e.Amount))
		b.count++
	}
	return order
}

// uncategorized collects expenses with a blank category so category shares
// still add up to the grand total.
const uncategorized = "Outros"

func byCategory(e domain.Expense) string {
	if strings.TrimSpace(e.Category) == "" {
		return uncategorized
	}
	return e.Category
}

func byMonth(e domain.Expense) string { return domain.MonthOf(e.Date) }

// sortBySumDesc orders buckets by descending sum; ties keep first-seen order.
func sortBySumDesc(buckets []*bucket) {
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].sum.GreaterThan(buckets[j].sum)
	})
}

// sortByKeyAsc orders buckets by ascending key.
func sortByKeyAsc(buckets []*bucket) {
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].key < buckets[j].key
	})
}

// CategorySummary groups expenses by category and returns one entry per
// category sorted by total spent, largest first. Percentages are shares of the
// grand total and are zero when nothing was spent.
func CategorySummary(expenses []domain.Expense) []domain.CategorySummary {
	grand := total(expenses)
	buckets := groupBy(expenses, byCategory)
	sortBySumDesc(buckets)

	out := make([]domain.CategorySummary, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.CategorySummary{
			Category:     b.key,
			TotalSpent:   toFloat(b.sum),
			Percentage:   share(b.sum, grand),
			ExpenseCount: b.count,
		})
	}
	return out
}

// CategoryStats is CategorySummary in the shape used by history and reports.
func CategoryStats(expenses []domain.Expense) []domain.CategoryStat {
	summary := CategorySummary(expenses)
	out := make([]domain.CategoryStat, 0, len(summary))
	for _, s := range summary {
		out = append(out, domain.CategoryStat{
			Category:   s.Category,
			Amount:     s.TotalSpent,
			Count:      s.ExpenseCount,
			Percentage: s.Percentage,
		})
	}
	return out
}

// CategoryTotals returns the summed amount per category.
func CategoryTotals(expenses []domain.Expense) map[string]float64 {
	out := make(map[string]float64)
	for _, b := range groupBy(expenses, byCategory) {
		out[b.key] = toFloat(b.sum)
	}
	return out
}

// MonthlyAmounts groups expenses by YYYY-MM and returns the buckets in
// ascending month order.
func MonthlyAmounts(expenses []domain.Expense) []domain.MonthAmount {
	buckets := groupBy(expenses, byMonth)
	sortByKeyAsc(buckets)

	out := make([]domain.MonthAmount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.MonthAmount{Month: b.key, Amount: toFloat(b.sum), Count: b.count})
	}
	return out
}

// Totals returns count, sum and mean of expenses.
func Totals(expenses []domain.Expense) domain.TotalsSummary {
	sum := total(expenses)
	return domain.TotalsSummary{
		TotalExpenses: len(expenses),
		TotalAmount:   toFloat(sum),
		AverageAmount: toFloat(average(sum, len(expenses))),
	}
}

// HistoryStats summarises expenses for the history view.
func HistoryStats(expenses []domain.Expense) domain.HistoryStats {
	t := Totals(expenses)
	return domain.HistoryStats{
		TotalExpenses:   t.TotalExpenses,
		TotalAmount:     t.TotalAmount,
		AverageAmount:   t.AverageAmount,
		CategorySummary: CategoryStats(expenses),
		MonthlyData:     MonthlyAmounts(expenses),
	}
}

// SubscriptionAnalytics summarises the active subscriptions in subs.
func SubscriptionAnalytics(subs []domain.Subscription) domain.SubscriptionAnalytics {
	active := MaterializeSubscriptions(subs)
	monthly := total(active)
	return domain.SubscriptionAnalytics{
		TotalMonthly:      toFloat(monthly),
		ActiveCount:       len(active),
		AverageCost:       toFloat(average(monthly, len(active))),
		CategoryBreakdown: CategoryTotals(active),
		AnnualProjection:  toFloat(monthly.Mul(decimal.NewFromInt(12))),
	}
}
