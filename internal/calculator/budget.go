package calculator

import (
	"fmt"

	"github.com/iwvelando/canfin/pkg/aggregate"
	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/iwvelando/canfin/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BudgetSummary is the result of a monthly budget calculation.
type BudgetSummary struct {
	TotalMonthlyIncome   decimal.Decimal   `json:"totalMonthlyIncome"`
	TotalMonthlyExpenses decimal.Decimal   `json:"totalMonthlyExpenses"`
	MonthlyBalance       decimal.Decimal   `json:"monthlyBalance"`
	ByCategory           []aggregate.Group `json:"byCategory"`
	ByClassification     []aggregate.Group `json:"byClassification"`
}

// Budget normalizes incomes and expenses to monthly figures and reports the
// balance along with expense breakdowns. The balance may be negative.
func (c *Calculator) Budget(incomes []IncomeRecord, expenses []ExpenseRecord) (BudgetSummary, error) {
	totalIncome, err := aggregate.SumMonthly(incomes, incomeAmount, incomeFrequency)
	if err != nil {
		return BudgetSummary{}, fmt.Errorf("failed to total incomes: %w", err)
	}

	totalExpenses, err := aggregate.SumMonthly(expenses, expenseAmount, expenseFrequency)
	if err != nil {
		return BudgetSummary{}, fmt.Errorf("failed to total expenses: %w", err)
	}

	byCategory, err := aggregate.GroupedMonthly(expenses, expenseCategory, expenseAmount, expenseFrequency)
	if err != nil {
		return BudgetSummary{}, fmt.Errorf("failed to group expenses by category: %w", err)
	}

	byClass, err := aggregate.GroupedMonthly(expenses, expenseClass, expenseAmount, expenseFrequency)
	if err != nil {
		return BudgetSummary{}, fmt.Errorf("failed to group expenses by classification: %w", err)
	}

	summary := BudgetSummary{
		TotalMonthlyIncome:   mathutil.Round(totalIncome),
		TotalMonthlyExpenses: mathutil.Round(totalExpenses),
		MonthlyBalance:       mathutil.Round(totalIncome.Sub(totalExpenses)),
		ByCategory:           roundGroups(byCategory),
		ByClassification:     roundGroups(byClass),
	}

	if summary.MonthlyBalance.IsNegative() {
		c.logger.Info("monthly expenses exceed income",
			zap.String("op", "calculator.Budget"),
			zap.String("balance", summary.MonthlyBalance.StringFixed(constants.DecimalPlaces)),
		)
	}
	c.logger.Debug("budget computed",
		zap.String("op", "calculator.Budget"),
		zap.Int("incomes", len(incomes)),
		zap.Int("expenses", len(expenses)),
		zap.Int("categories", len(summary.ByCategory)),
	)
	return summary, nil
}
