package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/pkg/money"
)

// ConsoleFormatter renders the full report for a terminal
type ConsoleFormatter struct {
	// Verbose adds the slab breakdown of both regimes
	Verbose bool
}

func (c ConsoleFormatter) Name() string {
	if c.Verbose {
		return "console-verbose"
	}
	return "console"
}

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	table := &compare.TableFormatter{}

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintf(&buf, "INCOME TAX REPORT  AY %s", report.AssessmentYear)
	if report.Taxpayer.Name != "" {
		fmt.Fprintf(&buf, "  %s", report.Taxpayer.Name)
	}
	fmt.Fprintln(&buf)
	if report.FinancialYear != "" {
		fmt.Fprintf(&buf, "Income earned in FY %s\n", report.FinancialYear)
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range report.Assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if report.Return != nil {
		writeReturn(&buf, report.Return)
	}
	if report.RegimeChoiceNote != "" {
		fmt.Fprintf(&buf, "Note: %s\n\n", report.RegimeChoiceNote)
	}

	if report.Comparison != nil {
		buf.WriteString(table.Format(report.Comparison))
		fmt.Fprintln(&buf)
		if c.Verbose {
			buf.WriteString(table.FormatSlabs(report.Comparison.Old))
			fmt.Fprintln(&buf)
			buf.WriteString(table.FormatSlabs(report.Comparison.New))
			fmt.Fprintln(&buf)
		}
	}

	if len(report.Scenarios) > 0 {
		WriteScenarios(&buf, report.Scenarios)
		fmt.Fprintln(&buf)
	}

	if len(report.Suggestions) > 0 {
		WriteSuggestions(&buf, report.Suggestions)
		fmt.Fprintln(&buf)
	}

	if report.Compliance != nil {
		WriteCompliance(&buf, report.Compliance)
	}

	return buf.Bytes(), nil
}

func writeReturn(buf *bytes.Buffer, ret *domain.TaxReturn) {
	fmt.Fprintln(buf, "TAX RETURN")
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	fmt.Fprintf(buf, "Form:                %s\n", ret.Form)
	fmt.Fprintf(buf, "Status:              %s\n", ret.Status)
	fmt.Fprintf(buf, "Regime:              %s\n", ret.Regime)
	if ret.Computation != nil {
		fmt.Fprintf(buf, "Gross Total Income:  %s\n", money.FormatINR(ret.Computation.GrossTotalIncome))
		fmt.Fprintf(buf, "Taxable Income:      %s\n", money.FormatINR(ret.Computation.TaxableIncome))
		fmt.Fprintf(buf, "Net Tax Liability:   %s\n", money.FormatINR(ret.Computation.NetTaxLiability))
	}
	if s := ret.Settlement; s != nil {
		fmt.Fprintf(buf, "Taxes Paid:          %s\n", money.FormatINR(s.TotalTaxPaid))
		switch {
		case s.RefundDue.IsPositive():
			fmt.Fprintf(buf, "Refund Due:          %s\n", money.FormatINR(s.RefundDue))
		case s.AdditionalTaxPayable.IsPositive():
			fmt.Fprintf(buf, "Tax Payable:         %s\n", money.FormatINR(s.AdditionalTaxPayable))
		default:
			fmt.Fprintln(buf, "Settled:             nothing due either way")
		}
	}
	fmt.Fprintln(buf)
}

// WriteScenarios renders the income projection table
func WriteScenarios(buf *bytes.Buffer, scenarios []domain.ScenarioResult) {
	fmt.Fprintln(buf, "INCOME SCENARIOS")
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	fmt.Fprintf(buf, "%-8s %16s %16s %16s %14s %6s\n", "x", "Income", "Old Regime", "New Regime", "Savings", "Best")
	for _, s := range scenarios {
		fmt.Fprintf(buf, "%-8s %16s %16s %16s %14s %6s\n",
			s.Multiplier.String()+"x",
			money.FormatINRWhole(s.Income),
			money.FormatINRWhole(s.OldRegimeTax),
			money.FormatINRWhole(s.NewRegimeTax),
			money.FormatINRWhole(s.Savings),
			s.BestRegime)
	}
}

// WriteSuggestions renders the deduction headroom list
func WriteSuggestions(buf *bytes.Buffer, suggestions []domain.DeductionSuggestion) {
	fmt.Fprintln(buf, "DEDUCTION OPPORTUNITIES (old regime)")
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	for i, s := range suggestions {
		fmt.Fprintf(buf, "%d. %s: claim %s more (cap %s) to save %s [priority %d]\n",
			i+1, s.Description,
			money.FormatINRWhole(s.AdditionalRoom),
			money.FormatINRWhole(s.Cap),
			money.FormatINRWhole(s.TaxSaving),
			s.Priority)
	}
}

// WriteCompliance renders rule statuses, alerts and recommendations
func WriteCompliance(buf *bytes.Buffer, report *domain.ComplianceReport) {
	fmt.Fprintf(buf, "COMPLIANCE (as of %s)  score %d/100\n", report.AsOf.Format("2 Jan 2006"), report.Score)
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	if len(report.Statuses) == 0 {
		fmt.Fprintln(buf, "No obligations apply")
	}
	for _, s := range report.Statuses {
		line := fmt.Sprintf("%-10s %-45s %-9s %s", statusLabel(s), s.Name, "AY "+s.AssessmentYear, s.DueDate.Format("2006-01-02"))
		if s.PenaltyAmount.IsPositive() {
			line += "  penalty " + money.FormatINRWhole(s.PenaltyAmount)
		}
		fmt.Fprintln(buf, line)
	}
	if report.TotalPenalty.IsPositive() {
		fmt.Fprintf(buf, "Total penalty exposure: %s\n", money.FormatINRWhole(report.TotalPenalty))
	}

	if len(report.Alerts) > 0 {
		fmt.Fprintln(buf, "\nAlerts:")
		for _, a := range report.Alerts {
			fmt.Fprintf(buf, "  [%s] %s\n", strings.ToUpper(string(a.Severity)), a.Message)
		}
	}
	if len(report.Recommendations) > 0 {
		fmt.Fprintln(buf, "\nRecommendations:")
		for _, r := range report.Recommendations {
			fmt.Fprintf(buf, "  • %s\n", r)
		}
	}
}

func statusLabel(s domain.ComplianceStatus) string {
	if s.Satisfied {
		return "done"
	}
	return string(s.Status)
}
