package compare

import (
	"encoding/csv"
	"strings"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// CSVFormatter formats a regime comparison as CSV
type CSVFormatter struct{}

// Format generates one row per regime
func (cf *CSVFormatter) Format(c *domain.RegimeComparison) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Assessment Year",
		"Regime",
		"Gross Total Income",
		"Standard Deduction",
		"Deductions",
		"Taxable Income",
		"Tax Before Cess",
		"Cess",
		"Rebate",
		"Net Tax Liability",
		"Effective Rate",
		"Recommended",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, r := range []*domain.TaxComputationResult{c.Old, c.New} {
		if err := writer.Write(cf.formatRow(c, r)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(c *domain.RegimeComparison, r *domain.TaxComputationResult) []string {
	recommended := "no"
	if r.Regime == c.RecommendedRegime {
		recommended = "yes"
	}
	return []string{
		c.AssessmentYear,
		string(r.Regime),
		r.GrossTotalIncome.StringFixed(2),
		r.StandardDeduction.StringFixed(2),
		r.ResolvedDeductions.Total().StringFixed(2),
		r.TaxableIncome.StringFixed(2),
		r.TaxBeforeCess.StringFixed(2),
		r.CessAmount.StringFixed(2),
		r.RebateApplied.StringFixed(2),
		r.NetTaxLiability.StringFixed(2),
		r.EffectiveTaxRate.StringFixed(6),
		recommended,
	}
}
