// Package mathutil provides common mathematical utility functions for
// decimal currency values.
package mathutil

import (
	"fmt"

	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/shopspring/decimal"
)

var (
	hundred           = decimal.NewFromFloat(constants.PercentageMultiplier)
	currencyTolerance = decimal.NewFromFloat(constants.CurrencyTolerance)
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.DecimalPlaces)
}

// IsZero checks if a value is effectively zero (within one cent)
func IsZero(val decimal.Decimal) bool {
	return val.Abs().LessThanOrEqual(currencyTolerance)
}

// IsPositive checks if a value is positive (greater than tolerance)
func IsPositive(val decimal.Decimal) bool {
	return val.GreaterThan(currencyTolerance)
}

// IsNegative checks if a value is negative (less than negative tolerance)
func IsNegative(val decimal.Decimal) bool {
	return val.LessThan(currencyTolerance.Neg())
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2 decimal.Decimal, tolerance float64) bool {
	return val1.Sub(val2).Abs().LessThanOrEqual(decimal.NewFromFloat(tolerance))
}

// Min returns the minimum of two values
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the maximum of two values
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Percentage calculates what percentage value is of total. The second return
// value is false when total is zero and the percentage is undefined.
func Percentage(value, total decimal.Decimal) (decimal.Decimal, bool) {
	if total.IsZero() {
		return decimal.Zero, false
	}
	return value.Div(total).Mul(hundred), true
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage decimal.Decimal) decimal.Decimal {
	return value.Mul(percentage).Div(hundred)
}

// PercentToRate converts a percentage such as 6 into the rate 0.06.
func PercentToRate(percentage decimal.Decimal) decimal.Decimal {
	return percentage.Div(hundred)
}

// Pow raises base to an integer exponent in decimal arithmetic, keeping
// constants.PowPrecision decimal places. A zero base with a negative exponent
// returns an error.
func Pow(base decimal.Decimal, exponent int) (decimal.Decimal, error) {
	result, err := base.PowWithPrecision(decimal.NewFromInt(int64(exponent)), constants.PowPrecision)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to raise %s to %d: %w", base, exponent, err)
	}
	return result.Round(constants.PowPrecision), nil
}
