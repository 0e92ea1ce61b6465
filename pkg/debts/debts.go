// Package debts models existing debt obligations and resolves each one to the
// monthly payment it commits the borrower to.
package debts

import (
	"errors"
	"fmt"

	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/shopspring/decimal"
)

// Kind is the tag that identifies a debt variant on the wire.
type Kind string

// Debt kinds.
const (
	KindFixedLoan       Kind = "fixed-loan"
	KindCreditCard      Kind = "credit-card"
	KindRevolvingCredit Kind = "revolving-credit"
	KindMortgage        Kind = "mortgage"
)

// PaymentPolicy controls how a revolving credit line is repaid.
type PaymentPolicy string

// Revolving credit payment policies.
const (
	InterestOnly         PaymentPolicy = "interest-only"
	InterestAndPrincipal PaymentPolicy = "interest-and-principal"
)

// PaymentFrequency is how often a mortgage payment is made.
type PaymentFrequency string

// Mortgage payment frequencies.
const (
	PaymentWeekly              PaymentFrequency = "weekly"
	PaymentBiweekly            PaymentFrequency = "biweekly"
	PaymentMonthly             PaymentFrequency = "monthly"
	PaymentAcceleratedBiweekly PaymentFrequency = "accelerated-biweekly"
)

var (
	// ErrInvalidDebtVariant is returned for a debt that is not one of the
	// four known shapes, or whose variant specific enum is out of range.
	ErrInvalidDebtVariant = errors.New("invalid debt variant")

	monthsPerYear   = decimal.NewFromInt(constants.MonthsPerYear)
	weeksPerYear    = decimal.NewFromInt(constants.WeeksPerYear)
	biweeklyPerYear = decimal.NewFromInt(constants.BiweeklyPeriodsPerYear)
	hundred         = decimal.NewFromFloat(constants.PercentageMultiplier)
)

// Debt is implemented only by the variants in this package.
type Debt interface {
	Kind() Kind
	Label() string
	debt()
}

// FixedLoan is an installment loan with a stated monthly payment.
type FixedLoan struct {
	Description         string
	RemainingTermMonths int
	InterestRatePct     decimal.Decimal
	Balance             decimal.Decimal
	PaymentAmount       decimal.Decimal
}

// CreditCard is a card balance with a required minimum payment.
type CreditCard struct {
	Description     string
	CreditLimit     decimal.Decimal
	Balance         decimal.Decimal
	MinPayment      decimal.Decimal
	InterestRatePct decimal.Decimal
}

// RevolvingCredit is a line of credit repaid under a PaymentPolicy.
type RevolvingCredit struct {
	Description     string
	CreditLimit     decimal.Decimal
	Balance         decimal.Decimal
	MinPayment      decimal.Decimal
	InterestRatePct decimal.Decimal
	PaymentPolicy   PaymentPolicy
}

// Mortgage is an existing mortgage paid at PaymentFrequency.
type Mortgage struct {
	Description                 string
	RemainingAmortizationMonths int
	RemainingTermMonths         int
	InterestRatePct             decimal.Decimal
	Balance                     decimal.Decimal
	PaymentAmount               decimal.Decimal
	PaymentFrequency            PaymentFrequency
}

func (FixedLoan) Kind() Kind       { return KindFixedLoan }
func (CreditCard) Kind() Kind      { return KindCreditCard }
func (RevolvingCredit) Kind() Kind { return KindRevolvingCredit }
func (Mortgage) Kind() Kind        { return KindMortgage }

func (d FixedLoan) Label() string       { return d.Description }
func (d CreditCard) Label() string      { return d.Description }
func (d RevolvingCredit) Label() string { return d.Description }
func (d Mortgage) Label() string        { return d.Description }

func (FixedLoan) debt()       {}
func (CreditCard) debt()      {}
func (RevolvingCredit) debt() {}
func (Mortgage) debt()        {}

// ParseKind validates a wire tag.
func ParseKind(value string) (Kind, error) {
	switch k := Kind(value); k {
	case KindFixedLoan, KindCreditCard, KindRevolvingCredit, KindMortgage:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown type %q", ErrInvalidDebtVariant, value)
}

// ParsePaymentPolicy validates a revolving credit payment policy.
func ParsePaymentPolicy(value string) (PaymentPolicy, error) {
	switch p := PaymentPolicy(value); p {
	case InterestOnly, InterestAndPrincipal:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown payment policy %q", ErrInvalidDebtVariant, value)
}

// ParsePaymentFrequency validates a mortgage payment frequency.
func ParsePaymentFrequency(value string) (PaymentFrequency, error) {
	switch f := PaymentFrequency(value); f {
	case PaymentWeekly, PaymentBiweekly, PaymentMonthly, PaymentAcceleratedBiweekly:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown payment frequency %q", ErrInvalidDebtVariant, value)
}

// MonthlyPayment returns the monthly obligation for a debt.
//
// Fixed loans and credit cards contribute their stated payment verbatim.
// Interest-only revolving credit contributes one month of interest on the
// balance. Mortgage payments are converted to a monthly equivalent; an
// accelerated biweekly payment uses the ordinary biweekly factor.
func MonthlyPayment(d Debt) (decimal.Decimal, error) {
	switch v := d.(type) {
	case FixedLoan:
		return v.PaymentAmount, nil
	case CreditCard:
		return v.MinPayment, nil
	case RevolvingCredit:
		switch v.PaymentPolicy {
		case InterestOnly:
			return v.Balance.Mul(v.InterestRatePct).Div(hundred).Div(monthsPerYear), nil
		case InterestAndPrincipal:
			return v.MinPayment, nil
		}
		return decimal.Zero, fmt.Errorf("%w: revolving credit %q has payment policy %q",
			ErrInvalidDebtVariant, v.Description, v.PaymentPolicy)
	case Mortgage:
		switch v.PaymentFrequency {
		case PaymentWeekly:
			return v.PaymentAmount.Mul(weeksPerYear).Div(monthsPerYear), nil
		case PaymentBiweekly, PaymentAcceleratedBiweekly:
			return v.PaymentAmount.Mul(biweeklyPerYear).Div(monthsPerYear), nil
		case PaymentMonthly:
			return v.PaymentAmount, nil
		}
		return decimal.Zero, fmt.Errorf("%w: mortgage %q has payment frequency %q",
			ErrInvalidDebtVariant, v.Description, v.PaymentFrequency)
	}
	return decimal.Zero, fmt.Errorf("%w: %T", ErrInvalidDebtVariant, d)
}

// TotalMonthlyPayment sums MonthlyPayment over every debt.
func TotalMonthlyPayment(list []Debt) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, d := range list {
		payment, err := MonthlyPayment(d)
		if err != nil {
			return decimal.Zero, fmt.Errorf("debt %d: %w", i, err)
		}
		total = total.Add(payment)
	}
	return total, nil
}
