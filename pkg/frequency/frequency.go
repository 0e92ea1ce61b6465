// Package frequency normalizes periodic amounts to their monthly equivalent.
package frequency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/shopspring/decimal"
)

// Frequency is the periodicity attached to an income or expense amount.
type Frequency string

// Supported frequencies.
const (
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
	Annually Frequency = "annually"
)

// ErrInvalidFrequency is returned for a periodicity outside the supported set.
var ErrInvalidFrequency = errors.New("invalid frequency")

var (
	monthsPerYear   = decimal.NewFromInt(constants.MonthsPerYear)
	weeksPerYear    = decimal.NewFromInt(constants.WeeksPerYear)
	biweeklyPerYear = decimal.NewFromInt(constants.BiweeklyPeriodsPerYear)
)

// All returns the supported frequencies in display order.
func All() []Frequency {
	return []Frequency{Weekly, Biweekly, Monthly, Annually}
}

// Parse converts a user supplied string into a Frequency. Matching ignores
// case and surrounding whitespace.
func Parse(value string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(value)))
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

// Validate reports whether f is one of the supported frequencies.
func (f Frequency) Validate() error {
	switch f {
	case Weekly, Biweekly, Monthly, Annually:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidFrequency, string(f))
}

// ToMonthly converts amount, paid at frequency f, into a monthly equivalent.
func ToMonthly(amount decimal.Decimal, f Frequency) (decimal.Decimal, error) {
	switch f {
	case Weekly:
		return amount.Mul(weeksPerYear).Div(monthsPerYear), nil
	case Biweekly:
		return amount.Mul(biweeklyPerYear).Div(monthsPerYear), nil
	case Monthly:
		return amount, nil
	case Annually:
		return amount.Div(monthsPerYear), nil
	}
	return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidFrequency, string(f))
}
