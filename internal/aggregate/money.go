// Package aggregate turns expense and subscription records into summaries,
// listings, period series, trends and comparisons. Every function is pure:
// it reads the slices it is given and returns new ones.
package aggregate

import (
	"github.com/boddenberg/smart-gastos-api/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// total sums the amounts of expenses as a decimal so two-decimal values do not drift.
func total(expenses []domain.Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(decimal.NewFromFloat(e.Amount))
	}
	return sum
}

// Total returns the summed amount of expenses.
func Total(expenses []domain.Expense) float64 {
	return toFloat(total(expenses))
}

// average returns sum/n, or zero when n is zero.
func average(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(intDecimal(n))
}

// share returns part/whole*100, or zero when whole is not positive.
func share(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return toFloat(part.Div(whole).Mul(hundred))
}

// percentChange returns (current-previous)/previous*100, or zero when previous is not positive.
func percentChange(previous, current decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}
	return toFloat(current.Sub(previous).Div(previous).Mul(hundred))
}

func intDecimal(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
