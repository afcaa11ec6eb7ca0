package aggregate

import (
	"github.com/boddenberg/smart-gastos-api/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	topCategoriesLimit  = 5
	recentReportLimit   = 10
	categoryReportLimit = 50
	notAvailable        = "N/A"
)

// ReportsData builds the overview report for expenses.
func ReportsData(expenses []domain.Expense) domain.ReportsData {
	stats := CategoryStats(expenses)
	top := stats
	if len(top) > topCategoriesLimit {
		top = top[:topCategoriesLimit]
	}
	return domain.ReportsData{
		Summary:         Totals(expenses),
		CategorySummary: stats,
		MonthlyStats:    MonthlyAmounts(expenses),
		TopCategories:   append([]domain.CategoryStat{}, top...),
		RecentExpenses:  Top(SortByDateDesc(expenses), recentReportLimit),
	}
}

// PeriodStatsFor describes the expenses inside the inclusive range r.
func PeriodStatsFor(expenses []domain.Expense, r domain.DateRange) domain.PeriodStats {
	in := InRange(expenses, r)
	t := Totals(in)
	return domain.PeriodStats{
		TotalExpenses:     t.TotalExpenses,
		TotalAmount:       t.TotalAmount,
		AverageAmount:     t.AverageAmount,
		CategoryBreakdown: CategoryTotals(in),
		StartDate:         r.Start,
		EndDate:           r.End,
	}
}

// ComparePeriods buckets expenses into previous and current independently.
// Overlapping ranges count a record in both. Percent changes are zero when the
// previous value is zero.
func ComparePeriods(expenses []domain.Expense, previous, current domain.DateRange) domain.PeriodComparison {
	prevIn := InRange(expenses, previous)
	curIn := InRange(expenses, current)
	prevSum, curSum := total(prevIn), total(curIn)

	p1 := PeriodStatsFor(expenses, previous)
	p2 := PeriodStatsFor(expenses, current)
	return domain.PeriodComparison{
		Period1: p1,
		Period2: p2,
		Comparison: domain.ComparisonDelta{
			TotalAmountChange:   percentChange(prevSum, curSum),
			TotalExpensesChange: percentChange(intDecimal(len(prevIn)), intDecimal(len(curIn))),
			AmountDifference:    toFloat(curSum.Sub(prevSum)),
			ExpensesDifference:  len(curIn) - len(prevIn),
		},
	}
}

// Direction compares only the first and last points of a series: increasing
// when the last total is larger, decreasing when smaller, stable otherwise or
// when fewer than two points exist.
func Direction(series []domain.MonthTrend) domain.TrendDirection {
	if len(series) < 2 {
		return domain.TrendStable
	}
	first, last := series[0].TotalAmount, series[len(series)-1].TotalAmount
	switch {
	case last > first:
		return domain.TrendIncreasing
	case last < first:
		return domain.TrendDecreasing
	}
	return domain.TrendStable
}

// MonthlyTrends groups expenses by month and keeps the last months buckets.
func MonthlyTrends(expenses []domain.Expense, months int) domain.Trends {
	buckets := groupBy(expenses, byMonth)
	sortByKeyAsc(buckets)
	if months > 0 && len(buckets) > months {
		buckets = buckets[len(buckets)-months:]
	}

	// Per-month category totals are needed only for the kept months.
	kept := make(map[string]bool, len(buckets))
	for _, b := range buckets {
		kept[b.key] = true
	}
	byMonthExpenses := make(map[string][]domain.Expense, len(buckets))
	for _, e := range expenses {
		if m := domain.MonthOf(e.Date); kept[m] {
			byMonthExpenses[m] = append(byMonthExpenses[m], e)
		}
	}

	series := make([]domain.MonthTrend, 0, len(buckets))
	sum := decimal.Zero
	for _, b := range buckets {
		series = append(series, domain.MonthTrend{
			Month:         b.key,
			TotalAmount:   toFloat(b.sum),
			TotalCount:    b.count,
			AverageAmount: toFloat(average(b.sum, b.count)),
			Categories:    CategoryTotals(byMonthExpenses[b.key]),
		})
		sum = sum.Add(b.sum)
	}

	return domain.Trends{
		Trends:                 series,
		TrendDirection:         Direction(series),
		AverageMonthlySpending: toFloat(average(sum, len(series))),
		MonthsAnalyzed:         months,
	}
}

// CategoryReport describes one category, matched exactly, within an optional
// inclusive range. Missing range bounds are reported as "N/A".
func CategoryReport(expenses []domain.Expense, category string, r domain.DateRange) domain.CategoryReport {
	in := Filter(expenses, Query{
		StartDate:     r.Start,
		EndDate:       r.End,
		Category:      category,
		CategoryMatch: MatchExact,
	})
	t := Totals(in)

	summary := domain.CategoryReportSummary{
		TotalAmount:   t.TotalAmount,
		TotalCount:    t.TotalExpenses,
		AverageAmount: t.AverageAmount,
		StartDate:     orNotAvailable(r.Start),
		EndDate:       orNotAvailable(r.End),
	}
	return domain.CategoryReport{
		Category:     category,
		Summary:      summary,
		MonthlyStats: MonthlyAmounts(in),
		Expenses:     Top(SortByDateDesc(in), categoryReportLimit),
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
