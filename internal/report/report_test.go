package report

import (
	"testing"

	"github.com/iwvelando/canfin/internal/calculator"
	"github.com/iwvelando/canfin/internal/config"
	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/iwvelando/canfin/pkg/mathutil"
	"github.com/iwvelando/canfin/pkg/testutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func loadExample(t *testing.T) (*calculator.Calculator, *config.Configuration) {
	t.Helper()
	cfg, err := config.LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	calc, err := calculator.New(zap.NewNop(), cfg.ToPolicy())
	if err != nil {
		t.Fatalf("calculator.New() error = %v", err)
	}
	return calc, cfg
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildAllSections(t *testing.T) {
	calc, cfg := loadExample(t)

	r, err := Build(calc, cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if r.NetWorth == nil || r.Budget == nil || r.Qualification == nil {
		t.Fatalf("expected all sections, got %+v", r)
	}

	if !r.NetWorth.NetWorth.Equal(money("45000")) {
		t.Errorf("NetWorth = %s, expected 45000", r.NetWorth.NetWorth)
	}
	if !r.Budget.TotalMonthlyIncome.Equal(money("5300")) {
		t.Errorf("TotalMonthlyIncome = %s, expected 5300", r.Budget.TotalMonthlyIncome)
	}
	if !r.Budget.TotalMonthlyExpenses.Equal(money("2650")) {
		t.Errorf("TotalMonthlyExpenses = %s, expected 2650", r.Budget.TotalMonthlyExpenses)
	}
	if g := testutil.FindGroup(r.Budget.ByCategory, "Groceries"); g == nil || !g.Amount.Equal(money("650")) {
		t.Errorf("expected Groceries of 650, got %+v", g)
	}

	q := r.Qualification
	if !q.TotalMonthlyDebt.Equal(money("443.33")) {
		t.Errorf("TotalMonthlyDebt = %s, expected 443.33", q.TotalMonthlyDebt)
	}
	if !q.MaxMonthlyPayment.Equal(money("1676.67")) {
		t.Errorf("MaxMonthlyPayment = %s, expected 1676.67", q.MaxMonthlyPayment)
	}
	if !q.TDSR.Defined || !q.TDSR.Percent.Equal(money("8.36")) {
		t.Errorf("TDSR = %+v, expected 8.36", q.TDSR)
	}
	if q.RequiredDownPayment == nil {
		t.Fatal("expected a required down payment for a mortgage")
	}
	if !mathutil.WithinTolerance(*q.RequiredDownPayment, q.MaxLoan.Mul(money("0.05")), constants.CurrencyTolerance) {
		t.Errorf("RequiredDownPayment = %s, expected 5%% of %s", q.RequiredDownPayment, q.MaxLoan)
	}
	if !mathutil.WithinTolerance(q.LoanPrincipal, q.MaxLoan.Sub(money("25000")), constants.CurrencyTolerance) {
		t.Errorf("LoanPrincipal = %s, expected max loan less 25000", q.LoanPrincipal)
	}
	if len(q.Schedule) != 25 {
		t.Errorf("expected 25 snapshots, got %d", len(q.Schedule))
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", r.Warnings)
	}
}

func TestBuildSelectedSection(t *testing.T) {
	calc, cfg := loadExample(t)

	r, err := Build(calc, cfg, Budget)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if r.Budget == nil {
		t.Fatal("expected budget section")
	}
	if r.NetWorth != nil || r.Qualification != nil {
		t.Error("expected only the budget section")
	}

	if _, err := Build(calc, cfg, Section("taxes")); err == nil {
		t.Error("expected error for unknown section")
	}
}

func TestBuildPropagatesErrors(t *testing.T) {
	calc, cfg := loadExample(t)
	cfg.Debts = append(cfg.Debts, config.Debt{Type: "payday"})

	if _, err := Build(calc, cfg, Loan); err == nil {
		t.Error("expected error for an unknown debt type")
	}
	if _, err := Build(calc, cfg, NetWorth, Budget); err != nil {
		t.Errorf("sections without debts should still build, got %v", err)
	}
}
