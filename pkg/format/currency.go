// Package format renders decimal amounts for display.
package format

import (
	"fmt"

	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount decimal.Decimal) string {
	rounded := amount.Round(constants.DecimalPlaces)
	formatted := formatPositiveCurrency(rounded.Abs())
	if rounded.IsNegative() {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent renders a percentage with one decimal place, or "n/a" when p is nil.
func Percent(p *decimal.Decimal) string {
	if p == nil {
		return "n/a"
	}
	return p.StringFixed(1) + "%"
}

// formatPositiveCurrency expects a non-negative value already rounded to cents.
func formatPositiveCurrency(value decimal.Decimal) string {
	whole := value.Truncate(0)
	cents := value.Sub(whole).Shift(constants.DecimalPlaces).IntPart()
	return printer.Sprintf("%d", whole.IntPart()) + fmt.Sprintf(".%02d", cents)
}
