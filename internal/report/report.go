// Package report runs every calculator over a loaded configuration.
package report

import (
	"fmt"

	"github.com/iwvelando/canfin/internal/calculator"
	"github.com/iwvelando/canfin/internal/config"
	"github.com/iwvelando/canfin/pkg/output"
)

// Section selects which calculators Build runs.
type Section string

// Report sections.
const (
	NetWorth Section = "networth"
	Budget   Section = "budget"
	Loan     Section = "loan"
)

// AllSections lists every section in display order.
func AllSections() []Section {
	return []Section{NetWorth, Budget, Loan}
}

// Build runs the calculators for the requested sections, or all of them when
// none are given. Configuration warnings are attached to the report.
func Build(calc *calculator.Calculator, cfg *config.Configuration, sections ...Section) (output.Report, error) {
	if len(sections) == 0 {
		sections = AllSections()
	}

	r := output.Report{Warnings: cfg.ValidateConfiguration()}
	for _, section := range sections {
		switch section {
		case NetWorth:
			summary := calc.NetWorth(cfg.ToAssets(), cfg.ToLiabilities())
			r.NetWorth = &summary
		case Budget:
			incomes, err := cfg.ToIncomes()
			if err != nil {
				return output.Report{}, err
			}
			expenses, err := cfg.ToExpenses()
			if err != nil {
				return output.Report{}, err
			}
			summary, err := calc.Budget(incomes, expenses)
			if err != nil {
				return output.Report{}, err
			}
			r.Budget = &summary
		case Loan:
			app, err := cfg.ToLoanApplication()
			if err != nil {
				return output.Report{}, err
			}
			q, err := calc.Qualify(app)
			if err != nil {
				return output.Report{}, err
			}
			r.Qualification = &q
		default:
			return output.Report{}, fmt.Errorf("unknown report section %q", section)
		}
	}
	return r, nil
}
