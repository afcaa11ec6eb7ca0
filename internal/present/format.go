// Package present shapes aggregation output for the client: pt-BR currency
// strings, chart colors and numeric display ids.
package present

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

const currencyPrefix = "R$ "

// FormatCurrency renders v with two decimals, "." thousands and "," decimal
// separators, e.g. 1234.5 → "R$ 1.234,50" and -3 → "-R$ 3,00".
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-" + currencyPrefix + humanize.FormatFloat("#.###,##", -v)
	}
	return currencyPrefix + humanize.FormatFloat("#.###,##", v)
}

// FormatPercent renders a percentage with one decimal, e.g. 85.714 → "85.7%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
