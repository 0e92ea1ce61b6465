// Package calculator computes net worth, monthly budget balance and loan
// qualification from a snapshot of user-entered records. Every computation is
// a pure function of its input; a Calculator carries only a logger and the
// lending policy.
package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/canfin/pkg/debts"
	"github.com/iwvelando/canfin/pkg/frequency"
	"github.com/shopspring/decimal"
)

// IncomeRecord is one source of income.
type IncomeRecord struct {
	Source    string
	Amount    decimal.Decimal
	Frequency frequency.Frequency
}

// ExpenseClass describes whether an expense is fixed or variable. It affects
// only the classification breakdown, never the monthly amount.
type ExpenseClass string

// Expense classes.
const (
	Fixed    ExpenseClass = "fixed"
	Variable ExpenseClass = "variable"
)

// ExpenseRecord is one recurring expense.
type ExpenseRecord struct {
	Category  string
	Amount    decimal.Decimal
	Class     ExpenseClass
	Frequency frequency.Frequency
}

// AssetRecord is a point-in-time asset value.
type AssetRecord struct {
	Type        string
	Value       decimal.Decimal
	Description string
}

// LiabilityRecord is a point-in-time liability value.
type LiabilityRecord struct {
	Type        string
	Value       decimal.Decimal
	Description string
}

// LoanType is the kind of loan being applied for.
type LoanType string

// Loan types.
const (
	Personal LoanType = "personal"
	Mortgage LoanType = "mortgage"
	HELOC    LoanType = "heloc"
)

// LoanApplication is the input to a loan qualification. DownPayment is only
// applied when Type is Mortgage.
type LoanApplication struct {
	Type            LoanType
	Incomes         []IncomeRecord
	Debts           []debts.Debt
	DownPayment     decimal.Decimal
	TermYears       int
	InterestRatePct decimal.Decimal
}

var (
	// ErrInvalidExpenseClass is returned for a classification other than
	// fixed or variable.
	ErrInvalidExpenseClass = errors.New("invalid expense classification")

	// ErrInvalidLoanType is returned for a loan type other than personal,
	// mortgage or heloc.
	ErrInvalidLoanType = errors.New("invalid loan type")
)

// ParseExpenseClass validates an expense classification.
func ParseExpenseClass(value string) (ExpenseClass, error) {
	switch c := ExpenseClass(strings.ToLower(strings.TrimSpace(value))); c {
	case Fixed, Variable:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidExpenseClass, value)
}

// ParseLoanType validates a loan type.
func ParseLoanType(value string) (LoanType, error) {
	switch t := LoanType(strings.ToLower(strings.TrimSpace(value))); t {
	case Personal, Mortgage, HELOC:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLoanType, value)
}

func incomeAmount(r IncomeRecord) decimal.Decimal          { return r.Amount }
func incomeFrequency(r IncomeRecord) frequency.Frequency   { return r.Frequency }
func expenseAmount(r ExpenseRecord) decimal.Decimal        { return r.Amount }
func expenseFrequency(r ExpenseRecord) frequency.Frequency { return r.Frequency }
func expenseCategory(r ExpenseRecord) string               { return r.Category }
func expenseClass(r ExpenseRecord) string                  { return string(r.Class) }
func assetValue(r AssetRecord) decimal.Decimal             { return r.Value }
func assetType(r AssetRecord) string                       { return r.Type }
func liabilityValue(r LiabilityRecord) decimal.Decimal     { return r.Value }
func liabilityType(r LiabilityRecord) string               { return r.Type }
