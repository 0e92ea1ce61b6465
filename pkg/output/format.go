// Package output provides utilities for formatting and displaying calculation
// results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/iwvelando/canfin/internal/calculator"
	"github.com/iwvelando/canfin/pkg/aggregate"
	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/iwvelando/canfin/pkg/format"
	"github.com/shopspring/decimal"
)

// Report groups the results of one run. Sections left nil are not rendered.
type Report struct {
	NetWorth      *calculator.NetWorthSummary `json:"netWorth,omitempty"`
	Budget        *calculator.BudgetSummary   `json:"budget,omitempty"`
	Qualification *calculator.Qualification   `json:"qualification,omitempty"`
	Warnings      []string                    `json:"warnings,omitempty"`
}

var (
	colorAccent = lipgloss.Color("#3AA99F")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	labelStyle = lipgloss.NewStyle().
			Width(26)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorOrange)

	negativeStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, report Report) {
	if report.NetWorth != nil {
		nw := report.NetWorth
		writeSection(w, "Net Worth")
		writeLine(w, "Total assets", format.Currency(nw.TotalAssets))
		writeLine(w, "Total liabilities", format.Currency(nw.TotalLiabilities))
		writeLine(w, "Net worth", money(nw.NetWorth))
		writeGroups(w, "Assets by type", nw.AssetsByType)
		writeGroups(w, "Liabilities by type", nw.LiabilitiesByType)
		fmt.Fprintln(w)
	}

	if report.Budget != nil {
		b := report.Budget
		writeSection(w, "Monthly Budget")
		writeLine(w, "Total monthly income", format.Currency(b.TotalMonthlyIncome))
		writeLine(w, "Total monthly expenses", format.Currency(b.TotalMonthlyExpenses))
		writeLine(w, "Monthly balance", money(b.MonthlyBalance))
		writeGroups(w, "Expenses by category", b.ByCategory)
		writeGroups(w, "Expenses by classification", b.ByClassification)
		fmt.Fprintln(w)
	}

	if report.Qualification != nil {
		q := report.Qualification
		writeSection(w, "Loan Qualification ("+string(q.LoanType)+")")
		writeLine(w, "Total monthly income", format.Currency(q.TotalMonthlyIncome))
		writeLine(w, "Total monthly debt", format.Currency(q.TotalMonthlyDebt))
		writeLine(w, "Max monthly payment", money(q.MaxMonthlyPayment))
		writeLine(w, "Max loan", format.Currency(q.MaxLoan))
		tdsr := q.TDSR.String()
		if q.ExceedsCeiling {
			tdsr = warnStyle.Render(tdsr + " (exceeds ceiling)")
		}
		writeLine(w, "TDSR", tdsr)
		if q.RequiredDownPayment != nil {
			writeLine(w, "Required down payment", format.Currency(*q.RequiredDownPayment))
		}
		writeLine(w, "Loan principal", format.Currency(q.LoanPrincipal))
		writeLine(w, "Monthly payment", format.Currency(q.MonthlyPayment))

		if len(q.Schedule) > 0 {
			fmt.Fprintf(w, "  Year | Remaining Balance | Total Paid\n")
			fmt.Fprintf(w, "  ____ | _________________ | __________\n")
			for _, s := range q.Schedule {
				fmt.Fprintf(w, "  %4d | %17s | %s\n",
					s.Year, format.Currency(s.RemainingBalance), format.Currency(s.TotalPaid))
			}
		}
		fmt.Fprintln(w)
	}

	for _, warning := range report.Warnings {
		fmt.Fprintln(w, warnStyle.Render("warning: "+warning))
	}
}

func writeSection(w io.Writer, title string) {
	fmt.Fprintf(w, "--- %s ---\n", sectionStyle.Render(title))
}

func writeLine(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(label+":"), value)
}

func writeGroups(w io.Writer, title string, groups []aggregate.Group) {
	if len(groups) == 0 {
		return
	}
	fmt.Fprintf(w, "%s\n", title+":")
	for _, g := range groups {
		fmt.Fprintf(w, "  %s %s (%s)\n", labelStyle.Render(g.Key), format.Currency(g.Amount), format.Percent(g.Percentage))
	}
}

func money(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return negativeStyle.Render(format.Currency(amount))
	}
	return format.Currency(amount)
}

// CsvFormat writes the report as comma-separated values with the columns
// section, item, amount and percentage.
func CsvFormat(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"section", "item", "amount", "percentage"}); err != nil {
		return err
	}

	for _, row := range csvRows(report) {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString renders the report as CSV into a string.
func CsvString(report Report) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, report); err != nil {
		return ""
	}
	return buf.String()
}

func csvRows(report Report) [][]string {
	var rows [][]string
	amount := func(d decimal.Decimal) string { return d.StringFixed(constants.DecimalPlaces) }
	percent := func(p *decimal.Decimal) string {
		if p == nil {
			return ""
		}
		return p.StringFixed(constants.DecimalPlaces)
	}
	groups := func(section string, gs []aggregate.Group) {
		for _, g := range gs {
			rows = append(rows, []string{section, g.Key, amount(g.Amount), percent(g.Percentage)})
		}
	}

	if nw := report.NetWorth; nw != nil {
		rows = append(rows,
			[]string{"networth", "total assets", amount(nw.TotalAssets), ""},
			[]string{"networth", "total liabilities", amount(nw.TotalLiabilities), ""},
			[]string{"networth", "net worth", amount(nw.NetWorth), ""},
		)
		groups("networth.assets", nw.AssetsByType)
		groups("networth.liabilities", nw.LiabilitiesByType)
	}

	if b := report.Budget; b != nil {
		rows = append(rows,
			[]string{"budget", "total monthly income", amount(b.TotalMonthlyIncome), ""},
			[]string{"budget", "total monthly expenses", amount(b.TotalMonthlyExpenses), ""},
			[]string{"budget", "monthly balance", amount(b.MonthlyBalance), ""},
		)
		groups("budget.category", b.ByCategory)
		groups("budget.classification", b.ByClassification)
	}

	if q := report.Qualification; q != nil {
		tdsr := ""
		if q.TDSR.Defined {
			tdsr = q.TDSR.Percent.StringFixed(constants.DecimalPlaces)
		}
		rows = append(rows,
			[]string{"loan", "total monthly income", amount(q.TotalMonthlyIncome), ""},
			[]string{"loan", "total monthly debt", amount(q.TotalMonthlyDebt), tdsr},
			[]string{"loan", "max monthly payment", amount(q.MaxMonthlyPayment), ""},
			[]string{"loan", "max loan", amount(q.MaxLoan), ""},
		)
		if q.RequiredDownPayment != nil {
			rows = append(rows, []string{"loan", "required down payment", amount(*q.RequiredDownPayment), ""})
		}
		rows = append(rows,
			[]string{"loan", "loan principal", amount(q.LoanPrincipal), ""},
			[]string{"loan", "monthly payment", amount(q.MonthlyPayment), ""},
		)
		for _, s := range q.Schedule {
			year := fmt.Sprintf("year %d", s.Year)
			rows = append(rows,
				[]string{"loan.schedule", year, amount(s.RemainingBalance), ""},
				[]string{"loan.schedule.paid", year, amount(s.TotalPaid), ""},
			)
		}
	}
	return rows
}
