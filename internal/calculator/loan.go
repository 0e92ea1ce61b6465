package calculator

import (
	"errors"
	"fmt"

	"github.com/iwvelando/canfin/pkg/aggregate"
	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/iwvelando/canfin/pkg/debts"
	"github.com/iwvelando/canfin/pkg/loans"
	"github.com/iwvelando/canfin/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Ratio is a percentage that may be undefined, e.g. TDSR with no income.
type Ratio struct {
	Percent decimal.Decimal `json:"percent"`
	Defined bool            `json:"defined"`
}

// String renders the ratio with one decimal place, or "undefined".
func (r Ratio) String() string {
	if !r.Defined {
		return "undefined"
	}
	return r.Percent.StringFixed(1) + "%"
}

// Qualification is the result of a loan qualification.
type Qualification struct {
	LoanType           LoanType        `json:"loanType"`
	TotalMonthlyIncome decimal.Decimal `json:"totalMonthlyIncome"`
	TotalMonthlyDebt   decimal.Decimal `json:"totalMonthlyDebt"`
	MaxMonthlyPayment  decimal.Decimal `json:"maxMonthlyPayment"`
	MaxLoan            decimal.Decimal `json:"maxLoan"`
	TDSR               Ratio           `json:"tdsr"`
	// ExceedsCeiling is set when existing debt alone is above the policy
	// ceiling.
	ExceedsCeiling bool `json:"exceedsCeiling"`
	// RequiredDownPayment is set for mortgages only.
	RequiredDownPayment *decimal.Decimal `json:"requiredDownPayment,omitempty"`
	LoanPrincipal       decimal.Decimal  `json:"loanPrincipal"`
	MonthlyPayment      decimal.Decimal  `json:"monthlyPayment"`
	Schedule            []loans.Snapshot `json:"schedule"`
}

// Qualify computes the maximum loan the application can carry under the
// policy's TDSR ceiling and the amortization schedule for that loan.
func (c *Calculator) Qualify(app LoanApplication) (Qualification, error) {
	loanType, err := ParseLoanType(string(app.Type))
	if err != nil {
		return Qualification{}, err
	}
	app.Type = loanType

	termMonths, err := loans.TermMonths(app.TermYears)
	if err != nil {
		return Qualification{}, err
	}

	totalIncome, err := aggregate.SumMonthly(app.Incomes, incomeAmount, incomeFrequency)
	if err != nil {
		return Qualification{}, fmt.Errorf("failed to total incomes: %w", err)
	}

	totalDebt, err := debts.TotalMonthlyPayment(app.Debts)
	if err != nil {
		return Qualification{}, fmt.Errorf("failed to total debt payments: %w", err)
	}

	maxMonthlyPayment := mathutil.ApplyPercentage(totalIncome, c.policy.TDSRCeiling).Sub(totalDebt)
	maxLoan, err := loans.MaxPrincipal(maxMonthlyPayment, app.InterestRatePct, termMonths)
	if err != nil {
		return Qualification{}, err
	}

	q := Qualification{
		LoanType:           app.Type,
		TotalMonthlyIncome: mathutil.Round(totalIncome),
		TotalMonthlyDebt:   mathutil.Round(totalDebt),
		MaxMonthlyPayment:  mathutil.Round(maxMonthlyPayment),
		MaxLoan:            mathutil.Round(maxLoan),
	}

	tdsr, err := loans.TDSR(totalDebt, totalIncome)
	switch {
	case err == nil:
		q.TDSR = Ratio{Percent: mathutil.Round(tdsr), Defined: true}
		q.ExceedsCeiling = tdsr.GreaterThan(c.policy.TDSRCeiling)
	case errors.Is(err, loans.ErrUndefinedRatio):
		c.logger.Debug("TDSR undefined without income",
			zap.String("op", "calculator.Qualify"),
		)
	default:
		return Qualification{}, err
	}

	principal := maxLoan
	if app.Type == Mortgage {
		required := mathutil.Round(mathutil.ApplyPercentage(maxLoan, c.policy.MinimumDownPayment))
		q.RequiredDownPayment = &required

		principal, err = loans.LoanPrincipal(maxLoan, app.DownPayment, c.policy.PrincipalReduction)
		if err != nil {
			return Qualification{}, err
		}
	} else if !app.DownPayment.IsZero() {
		c.logger.Warn("ignoring down payment for non-mortgage loan",
			zap.String("op", "calculator.Qualify"),
			zap.String("loanType", string(app.Type)),
		)
	}

	generator := loans.NewAmortizationScheduleGenerator(c.logger)
	schedule, err := generator.GenerateSchedule(principal, app.InterestRatePct, app.TermYears)
	if err != nil {
		return Qualification{}, err
	}

	monthlyPayment, err := loans.CalculateMonthlyPayment(principal, decimal.Zero, app.InterestRatePct, termMonths)
	if err != nil {
		return Qualification{}, err
	}

	q.LoanPrincipal = mathutil.Round(principal)
	q.MonthlyPayment = mathutil.Round(monthlyPayment)
	q.Schedule = schedule

	c.logger.Debug("loan qualification computed",
		zap.String("op", "calculator.Qualify"),
		zap.String("loanType", string(app.Type)),
		zap.String("maxLoan", q.MaxLoan.StringFixed(constants.DecimalPlaces)),
		zap.Stringer("tdsr", q.TDSR),
		zap.Int("years", len(schedule)),
	)
	return q, nil
}
