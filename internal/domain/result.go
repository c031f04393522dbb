package domain

import (
	"github.com/shopspring/decimal"
)

// SlabTax is the tax attributable to one slab band
type SlabTax struct {
	Band          int              `json:"band"`
	Min           decimal.Decimal  `json:"min"`
	Max           *decimal.Decimal `json:"max,omitempty"`
	Rate          decimal.Decimal  `json:"rate"`
	TaxableAmount decimal.Decimal  `json:"taxable_amount"`
	TaxAmount     decimal.Decimal  `json:"tax_amount"`
}

// TaxComputationResult is the full computation of one regime for one income profile
type TaxComputationResult struct {
	Regime             RegimeID        `json:"regime"`
	AssessmentYear     string          `json:"assessment_year"`
	GrossTotalIncome   decimal.Decimal `json:"gross_total_income"`
	StandardDeduction  decimal.Decimal `json:"standard_deduction"`
	ResolvedDeductions DeductionSet    `json:"resolved_deductions"`
	DisallowedSections []Section       `json:"disallowed_sections,omitempty"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
	TaxableIncome      decimal.Decimal `json:"taxable_income"`
	SlabBreakdown      []SlabTax       `json:"slab_breakdown"`
	TaxBeforeCess      decimal.Decimal `json:"tax_before_cess"`
	CessAmount         decimal.Decimal `json:"cess_amount"`
	RebateApplied      decimal.Decimal `json:"rebate_applied"`
	NetTaxLiability    decimal.Decimal `json:"net_tax_liability"`
	EffectiveTaxRate   decimal.Decimal `json:"effective_tax_rate"`
	AverageTaxRate     decimal.Decimal `json:"average_tax_rate"`
	MarginalTaxRate    decimal.Decimal `json:"marginal_tax_rate"`
}

// RegimeComparison pairs both regimes' computations with the recommendation
type RegimeComparison struct {
	AssessmentYear    string                `json:"assessment_year"`
	Old               *TaxComputationResult `json:"old"`
	New               *TaxComputationResult `json:"new"`
	AbsoluteSavings   decimal.Decimal       `json:"absolute_savings"`
	SavingsPercentage decimal.Decimal       `json:"savings_percentage"`
	RecommendedRegime RegimeID              `json:"recommended_regime"`
	BreakEvenIncome   *decimal.Decimal      `json:"break_even_income,omitempty"`
	Recommendations   []string              `json:"recommendations,omitempty"`
}

// Result returns the computation for a regime, or nil
func (c *RegimeComparison) Result(id RegimeID) *TaxComputationResult {
	switch id {
	case RegimeOld:
		return c.Old
	case RegimeNew:
		return c.New
	}
	return nil
}

// Recommended returns the computation of the recommended regime
func (c *RegimeComparison) Recommended() *TaxComputationResult {
	return c.Result(c.RecommendedRegime)
}

// ScenarioResult is one row of an income-multiplier projection
type ScenarioResult struct {
	Multiplier   decimal.Decimal `json:"multiplier"`
	Income       decimal.Decimal `json:"income"`
	OldRegimeTax decimal.Decimal `json:"old_regime_tax"`
	NewRegimeTax decimal.Decimal `json:"new_regime_tax"`
	Savings      decimal.Decimal `json:"savings"`
	BestRegime   RegimeID        `json:"best_regime"`
}

// DeductionSuggestion describes unused headroom in a capped section
type DeductionSuggestion struct {
	Section        Section         `json:"section"`
	Description    string          `json:"description"`
	CurrentAmount  decimal.Decimal `json:"current_amount"`
	Cap            decimal.Decimal `json:"cap"`
	AdditionalRoom decimal.Decimal `json:"additional_room"`
	TaxSaving      decimal.Decimal `json:"tax_saving"`
	Priority       int             `json:"priority"`
}
