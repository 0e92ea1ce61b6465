package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/canfin/internal/calculator"
	"github.com/iwvelando/canfin/pkg/debts"
	"github.com/iwvelando/canfin/pkg/frequency"
	"github.com/shopspring/decimal"
)

// ToPolicy converts the policy section into a calculator.Policy.
func (c *Configuration) ToPolicy() calculator.Policy {
	return calculator.Policy{
		TDSRCeiling:        decimal.NewFromFloat(c.Policy.TDSRCeiling),
		MinimumDownPayment: decimal.NewFromFloat(c.Policy.MinimumDownPayment),
		PrincipalReduction: c.Policy.PrincipalReduction,
	}
}

// ToAssets converts the configured assets.
func (c *Configuration) ToAssets() []calculator.AssetRecord {
	records := make([]calculator.AssetRecord, 0, len(c.Assets))
	for _, a := range c.Assets {
		records = append(records, calculator.AssetRecord{
			Type:        a.Type,
			Value:       decimal.NewFromFloat(a.Value),
			Description: a.Description,
		})
	}
	return records
}

// ToLiabilities converts the configured liabilities.
func (c *Configuration) ToLiabilities() []calculator.LiabilityRecord {
	records := make([]calculator.LiabilityRecord, 0, len(c.Liabilities))
	for _, l := range c.Liabilities {
		records = append(records, calculator.LiabilityRecord{
			Type:        l.Type,
			Value:       decimal.NewFromFloat(l.Value),
			Description: l.Description,
		})
	}
	return records
}

// ToIncomes converts the configured incomes, validating each frequency.
func (c *Configuration) ToIncomes() ([]calculator.IncomeRecord, error) {
	records := make([]calculator.IncomeRecord, 0, len(c.Incomes))
	for i, inc := range c.Incomes {
		f, err := parseFrequency(inc.Frequency)
		if err != nil {
			return nil, fmt.Errorf("income #%d (%s): %w", i+1, inc.Source, err)
		}
		records = append(records, calculator.IncomeRecord{
			Source:    inc.Source,
			Amount:    decimal.NewFromFloat(inc.Amount),
			Frequency: f,
		})
	}
	return records, nil
}

// ToExpenses converts the configured expenses, validating frequency and
// classification.
func (c *Configuration) ToExpenses() ([]calculator.ExpenseRecord, error) {
	records := make([]calculator.ExpenseRecord, 0, len(c.Expenses))
	for i, e := range c.Expenses {
		f, err := parseFrequency(e.Frequency)
		if err != nil {
			return nil, fmt.Errorf("expense #%d (%s): %w", i+1, e.Category, err)
		}
		class := calculator.Fixed
		if strings.TrimSpace(e.Classification) != "" {
			class, err = calculator.ParseExpenseClass(e.Classification)
			if err != nil {
				return nil, fmt.Errorf("expense #%d (%s): %w", i+1, e.Category, err)
			}
		}
		records = append(records, calculator.ExpenseRecord{
			Category:  e.Category,
			Amount:    decimal.NewFromFloat(e.Amount),
			Class:     class,
			Frequency: f,
		})
	}
	return records, nil
}

// ToDebts converts the configured debts into their variants.
func (c *Configuration) ToDebts() ([]debts.Debt, error) {
	result := make([]debts.Debt, 0, len(c.Debts))
	for i, d := range c.Debts {
		converted, err := d.ToDebt()
		if err != nil {
			return nil, fmt.Errorf("debt #%d (%s): %w", i+1, d.Description, err)
		}
		result = append(result, converted)
	}
	return result, nil
}

// ToDebt builds the debt variant selected by Type.
func (d Debt) ToDebt() (debts.Debt, error) {
	kind, err := debts.ParseKind(d.Type)
	if err != nil {
		return nil, err
	}

	switch kind {
	case debts.KindFixedLoan:
		return debts.FixedLoan{
			Description:         d.Description,
			RemainingTermMonths: d.RemainingTermMonths,
			InterestRatePct:     decimal.NewFromFloat(d.InterestRate),
			Balance:             decimal.NewFromFloat(d.Balance),
			PaymentAmount:       decimal.NewFromFloat(d.PaymentAmount),
		}, nil
	case debts.KindCreditCard:
		return debts.CreditCard{
			Description:     d.Description,
			CreditLimit:     decimal.NewFromFloat(d.CreditLimit),
			Balance:         decimal.NewFromFloat(d.Balance),
			MinPayment:      decimal.NewFromFloat(d.MinPayment),
			InterestRatePct: decimal.NewFromFloat(d.InterestRate),
		}, nil
	case debts.KindRevolvingCredit:
		policy, err := debts.ParsePaymentPolicy(d.PaymentPolicy)
		if err != nil {
			return nil, err
		}
		return debts.RevolvingCredit{
			Description:     d.Description,
			CreditLimit:     decimal.NewFromFloat(d.CreditLimit),
			Balance:         decimal.NewFromFloat(d.Balance),
			MinPayment:      decimal.NewFromFloat(d.MinPayment),
			InterestRatePct: decimal.NewFromFloat(d.InterestRate),
			PaymentPolicy:   policy,
		}, nil
	case debts.KindMortgage:
		pf, err := debts.ParsePaymentFrequency(d.PaymentFrequency)
		if err != nil {
			return nil, err
		}
		return debts.Mortgage{
			Description:                 d.Description,
			RemainingAmortizationMonths: d.RemainingAmortizationMonths,
			RemainingTermMonths:         d.RemainingTermMonths,
			InterestRatePct:             decimal.NewFromFloat(d.InterestRate),
			Balance:                     decimal.NewFromFloat(d.Balance),
			PaymentAmount:               decimal.NewFromFloat(d.PaymentAmount),
			PaymentFrequency:            pf,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", debts.ErrInvalidDebtVariant, d.Type)
}

// ToLoanApplication assembles the loan application from the loan section and
// the top-level incomes and debts.
func (c *Configuration) ToLoanApplication() (calculator.LoanApplication, error) {
	loanType, err := calculator.ParseLoanType(c.Loan.Type)
	if err != nil {
		return calculator.LoanApplication{}, err
	}
	incomes, err := c.ToIncomes()
	if err != nil {
		return calculator.LoanApplication{}, err
	}
	existing, err := c.ToDebts()
	if err != nil {
		return calculator.LoanApplication{}, err
	}
	return calculator.LoanApplication{
		Type:            loanType,
		Incomes:         incomes,
		Debts:           existing,
		DownPayment:     decimal.NewFromFloat(c.Loan.DownPayment),
		TermYears:       c.Loan.TermYears,
		InterestRatePct: decimal.NewFromFloat(c.Loan.InterestRate),
	}, nil
}

func parseFrequency(value string) (frequency.Frequency, error) {
	if strings.TrimSpace(value) == "" {
		return frequency.Monthly, nil
	}
	return frequency.Parse(value)
}
