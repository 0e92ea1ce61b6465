// Package loans provides loan qualification and amortization utilities.
package loans

import (
	"errors"
	"fmt"

	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/iwvelando/canfin/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// ErrInvalidTerm is returned for a negative loan term.
	ErrInvalidTerm = errors.New("invalid loan term")

	// ErrUndefinedRatio is returned when a ratio is requested against a
	// zero denominator, e.g. TDSR with no income.
	ErrUndefinedRatio = errors.New("ratio undefined for zero income")

	// ErrInvalidRate is returned for an interest rate the annuity formulas
	// cannot use, e.g. a negative one.
	ErrInvalidRate = errors.New("invalid interest rate")

	// ErrInvalidPrincipalReduction is returned for an unknown reduction mode.
	ErrInvalidPrincipalReduction = errors.New("invalid principal reduction mode")

	one           = decimal.NewFromInt(1)
	monthsPerYear = decimal.NewFromInt(constants.MonthsPerYear)
)

// Payment holds the values for a given monthly payment.
type Payment struct {
	Month              int
	Payment            decimal.Decimal
	Principal          decimal.Decimal
	Interest           decimal.Decimal
	RemainingPrincipal decimal.Decimal
}

// Snapshot is the state of a loan at the end of a year of payments.
type Snapshot struct {
	Year             int             `json:"year"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
}

// MonthlyRate converts an annual percentage rate into a periodic monthly rate.
func MonthlyRate(annualInterestRate decimal.Decimal) decimal.Decimal {
	return mathutil.PercentToRate(annualInterestRate).Div(monthsPerYear)
}

// TermMonths converts a term in years into a number of monthly payments.
func TermMonths(termYears int) (int, error) {
	if termYears < 0 {
		return 0, fmt.Errorf("%w: %d years", ErrInvalidTerm, termYears)
	}
	return termYears * constants.MonthsPerYear, nil
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
// A monthly rate that rounds to zero falls back to straight division by the
// term. Negative rates return ErrInvalidRate.
func CalculateMonthlyPayment(principal, downPayment, annualInterestRate decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if err := checkRate(annualInterestRate); err != nil {
		return decimal.Zero, err
	}
	if termMonths <= 0 {
		return decimal.Zero, nil
	}
	financed := principal.Sub(downPayment)
	n := decimal.NewFromInt(int64(termMonths))

	periodicInterestRate := MonthlyRate(annualInterestRate)
	if periodicInterestRate.IsZero() {
		// For zero interest, simply divide the principal by term
		return financed.Div(n), nil
	}

	power, err := growthFactor(periodicInterestRate, termMonths)
	if err != nil {
		return decimal.Zero, err
	}
	excess := power.Sub(one)
	if excess.IsZero() {
		return financed.Div(n), nil
	}
	return financed.Mul(periodicInterestRate).Mul(power).Div(excess), nil
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate decimal.Decimal) decimal.Decimal {
	return remainingPrincipal.Mul(MonthlyRate(annualInterestRate)).Round(constants.RatePrecision)
}

// MaxPrincipal returns the largest principal that maxMonthlyPayment can
// amortize over termMonths at annualInterestRate. A negative affordable
// payment yields zero. Negative rates return ErrInvalidRate.
func MaxPrincipal(maxMonthlyPayment, annualInterestRate decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if err := checkRate(annualInterestRate); err != nil {
		return decimal.Zero, err
	}
	if termMonths <= 0 {
		return decimal.Zero, nil
	}

	n := decimal.NewFromInt(int64(termMonths))
	principal := maxMonthlyPayment.Mul(n)
	if r := MonthlyRate(annualInterestRate); !r.IsZero() {
		factor, err := growthFactor(r, -termMonths)
		if err != nil {
			return decimal.Zero, err
		}
		if discount := one.Sub(factor); !discount.IsZero() {
			principal = maxMonthlyPayment.Mul(discount).Div(r)
		}
	}
	return mathutil.Max(decimal.Zero, principal), nil
}

func checkRate(annualInterestRate decimal.Decimal) error {
	if annualInterestRate.IsNegative() {
		return fmt.Errorf("%w: %s%% is negative", ErrInvalidRate, annualInterestRate)
	}
	return nil
}

// growthFactor returns (1 + r)^months.
func growthFactor(r decimal.Decimal, months int) (decimal.Decimal, error) {
	factor, err := mathutil.Pow(one.Add(r), months)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidRate, err)
	}
	return factor, nil
}

// TDSR returns total monthly debt as a percentage of total monthly income.
func TDSR(totalMonthlyDebt, totalMonthlyIncome decimal.Decimal) (decimal.Decimal, error) {
	ratio, ok := mathutil.Percentage(totalMonthlyDebt, totalMonthlyIncome)
	if !ok {
		return decimal.Zero, ErrUndefinedRatio
	}
	return ratio, nil
}

// LoanPrincipal applies a down payment to the maximum loan. The clamped mode
// returns max(0, maxLoan - downPayment). The legacy mode reproduces
// min(maxLoan, maxLoan - downPayment), which ignores a negative down payment
// and can go below zero.
func LoanPrincipal(maxLoan, downPayment decimal.Decimal, mode string) (decimal.Decimal, error) {
	reduced := maxLoan.Sub(downPayment)
	switch mode {
	case constants.PrincipalReductionClamped, "":
		return mathutil.Max(decimal.Zero, reduced), nil
	case constants.PrincipalReductionLegacy:
		return mathutil.Min(maxLoan, reduced), nil
	}
	return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrincipalReduction, mode)
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateMonthlySchedule returns every monthly payment of a fixed-payment
// loan, in order.
func (g *AmortizationScheduleGenerator) GenerateMonthlySchedule(principal, annualInterestRate decimal.Decimal, termMonths int) ([]Payment, error) {
	if termMonths < 0 {
		return nil, fmt.Errorf("%w: %d months", ErrInvalidTerm, termMonths)
	}

	monthlyPayment, err := CalculateMonthlyPayment(principal, decimal.Zero, annualInterestRate, termMonths)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("generating amortization schedule",
		zap.String("op", "loans.GenerateMonthlySchedule"),
		zap.String("principal", principal.StringFixed(constants.DecimalPlaces)),
		zap.String("payment", monthlyPayment.StringFixed(constants.DecimalPlaces)),
		zap.Int("termMonths", termMonths),
	)

	schedule := make([]Payment, 0, termMonths)
	balance := principal
	for month := 1; month <= termMonths; month++ {
		interest := CalculateInterestPayment(balance, annualInterestRate)
		principalPaid := monthlyPayment.Sub(interest)
		balance = balance.Sub(principalPaid)

		schedule = append(schedule, Payment{
			Month:              month,
			Payment:            monthlyPayment,
			Principal:          principalPaid,
			Interest:           interest,
			RemainingPrincipal: balance,
		})
	}

	return schedule, nil
}

// GenerateSchedule returns one snapshot per completed year of payments.
// Remaining balances are floored at zero and rounded to cents.
func (g *AmortizationScheduleGenerator) GenerateSchedule(principal, annualInterestRate decimal.Decimal, termYears int) ([]Snapshot, error) {
	termMonths, err := TermMonths(termYears)
	if err != nil {
		return nil, err
	}

	payments, err := g.GenerateMonthlySchedule(principal, annualInterestRate, termMonths)
	if err != nil {
		return nil, err
	}

	snapshots := make([]Snapshot, 0, termYears)
	for _, p := range payments {
		if p.Month%constants.MonthsPerYear != 0 {
			continue
		}
		snapshots = append(snapshots, Snapshot{
			Year:             p.Month / constants.MonthsPerYear,
			RemainingBalance: mathutil.Round(mathutil.Max(decimal.Zero, p.RemainingPrincipal)),
			TotalPaid:        mathutil.Round(p.Payment.Mul(decimal.NewFromInt(int64(p.Month)))),
		})
	}
	return snapshots, nil
}
