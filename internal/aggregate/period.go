package aggregate

import (
	"time"

	"github.com/boddenberg/smart-gastos-api/internal/domain"
)

const dateLayout = "2006-01-02"

// WeekStart returns the Sunday that starts the week of date, as YYYY-MM-DD.
// Weeks start on Sunday, not on the ISO Monday. ok is false when date does not
// begin with a YYYY-MM-DD day.
func WeekStart(date string) (string, bool) {
	if len(date) < len(dateLayout) {
		return "", false
	}
	t, err := time.ParseInLocation(dateLayout, date[:len(dateLayout)], time.UTC)
	if err != nil {
		return "", false
	}
	return t.AddDate(0, 0, -int(t.Weekday())).Format(dateLayout), true
}

// PeriodKey returns the bucket key of date under granularity g: the full date
// for day, the Sunday week start for week, YYYY-MM for month and YYYY for year.
// An empty key means the date cannot be bucketed.
func PeriodKey(date string, g domain.Granularity) string {
	switch g {
	case domain.GranularityDay:
		return date
	case domain.GranularityWeek:
		k, _ := WeekStart(date)
		return k
	case domain.GranularityYear:
		return domain.YearOf(date)
	default:
		return domain.MonthOf(date)
	}
}

// PeriodSeries groups expenses by period key and returns the buckets in
// ascending key order.
func PeriodSeries(expenses []domain.Expense, g domain.Granularity) []domain.PeriodAmount {
	buckets := groupBy(expenses, func(e domain.Expense) string { return PeriodKey(e.Date, g) })
	sortByKeyAsc(buckets)

	out := make([]domain.PeriodAmount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.PeriodAmount{Period: b.key, Amount: toFloat(b.sum)})
	}
	return out
}
