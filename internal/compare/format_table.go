package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/pkg/money"
	"github.com/shopspring/decimal"
)

// TableFormatter formats a regime comparison as a console table
type TableFormatter struct{}

// Format generates a side-by-side table of both regimes
func (tf *TableFormatter) Format(c *domain.RegimeComparison) string {
	var sb strings.Builder

	sb.WriteString("INCOME TAX REGIME COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Assessment Year: %s\n\n", c.AssessmentYear))

	labelWidth := 32
	numWidth := 22

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "", numWidth, "Old Regime", numWidth, "New Regime"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	rows := []struct {
		label string
		value func(r *domain.TaxComputationResult) string
	}{
		{"Gross Total Income", func(r *domain.TaxComputationResult) string { return money.FormatINR(r.GrossTotalIncome) }},
		{"Standard Deduction", func(r *domain.TaxComputationResult) string { return money.FormatINR(r.StandardDeduction) }},
		{"Chapter VI-A / Other Deductions", func(r *domain.TaxComputationResult) string { return money.FormatINR(r.ResolvedDeductions.Total()) }},
		{"Taxable Income", func(r *domain.TaxComputationResult) string { return money.FormatINR(r.TaxableIncome) }},
		{"Tax on Slabs", func(r *domain.TaxComputationResult) string { return money.FormatINR(r.TaxBeforeCess) }},
		{"Health & Education Cess", func(r *domain.TaxComputationResult) string { return money.FormatINR(r.CessAmount) }},
		{"Rebate u/s 87A", func(r *domain.TaxComputationResult) string { return money.FormatINR(r.RebateApplied) }},
		{"Net Tax Liability", func(r *domain.TaxComputationResult) string { return money.FormatINR(r.NetTaxLiability) }},
		{"Effective Rate", func(r *domain.TaxComputationResult) string { return money.FormatRate(r.EffectiveTaxRate) }},
		{"Marginal Rate", func(r *domain.TaxComputationResult) string { return money.FormatRate(r.MarginalTaxRate) }},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, row.label,
			numWidth, row.value(c.Old), numWidth, row.value(c.New)))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("\nRecommended: %s regime", c.RecommendedRegime))
	if c.AbsoluteSavings.IsPositive() {
		sb.WriteString(fmt.Sprintf(" (saves %s, %s)", money.FormatINR(c.AbsoluteSavings), money.FormatPercentage(c.SavingsPercentage)))
	}
	sb.WriteString("\n")
	if c.BreakEvenIncome != nil {
		sb.WriteString(fmt.Sprintf("Break-even salary: %s\n", money.FormatINRWhole(*c.BreakEvenIncome)))
	}

	if len(c.Old.DisallowedSections) > 0 || len(c.New.DisallowedSections) > 0 {
		sb.WriteString("\nDisallowed deductions:\n")
		if len(c.Old.DisallowedSections) > 0 {
			sb.WriteString(fmt.Sprintf("  old: %v\n", c.Old.DisallowedSections))
		}
		if len(c.New.DisallowedSections) > 0 {
			sb.WriteString(fmt.Sprintf("  new: %v\n", c.New.DisallowedSections))
		}
	}

	if len(c.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i, rec := range c.Recommendations {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
	}

	return sb.String()
}

// FormatSlabs renders the slab breakdown of one regime
func (tf *TableFormatter) FormatSlabs(r *domain.TaxComputationResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s regime slab breakdown\n", strings.ToUpper(string(r.Regime))))
	sb.WriteString(fmt.Sprintf("%-28s %8s %18s %16s\n", "Band", "Rate", "Taxable", "Tax"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, s := range r.SlabBreakdown {
		sb.WriteString(fmt.Sprintf("%-28s %8s %18s %16s\n",
			bandLabel(s.Min, s.Max), money.FormatRate(s.Rate),
			money.FormatINR(s.TaxableAmount), money.FormatINR(s.TaxAmount)))
	}
	return sb.String()
}

func bandLabel(lo decimal.Decimal, hi *decimal.Decimal) string {
	if hi == nil {
		return "above " + money.FormatINRWhole(lo)
	}
	return money.FormatINRWhole(lo) + " - " + money.FormatINRWhole(*hi)
}
