package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Case is one taxpayer's inputs for an assessment year, as read from a case file
type Case struct {
	AssessmentYear string           `yaml:"assessment_year" json:"assessment_year"`
	Taxpayer       Profile          `yaml:"taxpayer" json:"taxpayer"`
	Income         IncomeProfile    `yaml:"income" json:"income"`
	Deductions     DeductionSet     `yaml:"deductions" json:"deductions"`
	Payments       Payments         `yaml:"payments" json:"payments"`
	Regime         RegimeID         `yaml:"regime,omitempty" json:"regime,omitempty"`
	GrossReceipts  decimal.Decimal  `yaml:"gross_receipts" json:"gross_receipts"`
	PriorReturns   []ReturnSummary  `yaml:"prior_returns,omitempty" json:"prior_returns,omitempty"`
	Scenarios      ScenarioSettings `yaml:"scenarios" json:"scenarios"`
}

// ScenarioSettings configures the income projection
type ScenarioSettings struct {
	Multipliers []decimal.Decimal `yaml:"multipliers" json:"multipliers"`
}

// NewReturn creates a draft tax return from the case
func (c *Case) NewReturn(now time.Time) *TaxReturn {
	ret := NewTaxReturn(c.AssessmentYear, c.Income, c.Deductions, c.Payments, now)
	ret.Regime = c.Regime
	return ret
}

// ComplianceReturns combines the current return's summary with prior years.
// Gross receipts on the case apply to the current year, and advance tax is
// only expected on the liability TDS does not cover.
func (c *Case) ComplianceReturns(current *TaxReturn) []ReturnSummary {
	summary := current.Summary()
	summary.GrossReceipts = c.GrossReceipts
	summary.AdvanceTaxPaid = c.Payments.AdvanceTaxPaid
	uncovered := decimal.Max(decimal.Zero, summary.TaxLiability.Sub(c.Payments.TDSDeducted))
	summary.EstimatedTax = &uncovered

	returns := make([]ReturnSummary, 0, len(c.PriorReturns)+1)
	returns = append(returns, summary)
	returns = append(returns, c.PriorReturns...)
	return returns
}

// Validate checks the case for malformed values
func (c *Case) Validate() error {
	if _, err := ParseAssessmentYear(c.AssessmentYear); err != nil {
		return err
	}
	switch c.Taxpayer.EntityType {
	case "", EntityIndividual, EntityBusiness:
	default:
		return fmt.Errorf("unknown entity type %q", c.Taxpayer.EntityType)
	}
	if c.Regime != "" {
		if _, err := ParseRegimeID(string(c.Regime)); err != nil {
			return err
		}
	}
	if err := c.Income.Validate(); err != nil {
		return err
	}
	if err := c.Deductions.Validate(); err != nil {
		return err
	}
	if err := ValidateAmount("payments.tds_deducted", c.Payments.TDSDeducted); err != nil {
		return err
	}
	if err := ValidateAmount("payments.advance_tax_paid", c.Payments.AdvanceTaxPaid); err != nil {
		return err
	}
	if err := ValidateAmount("gross_receipts", c.GrossReceipts); err != nil {
		return err
	}
	for i, r := range c.PriorReturns {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("prior return %d: %w", i, err)
		}
	}
	for i, m := range c.Scenarios.Multipliers {
		if !m.IsPositive() {
			return &InvalidAmountError{Field: fmt.Sprintf("scenarios.multipliers[%d]", i), Value: m.String(), Reason: "must be positive"}
		}
	}
	return nil
}
