package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/regime"
	"github.com/shopspring/decimal"
)

// Engine runs tax computations against a regime registry
type Engine struct {
	Registry *regime.Registry
	Logger   Logger
	Now      func() time.Time
}

// NewEngine creates an engine over the given registry
func NewEngine(registry *regime.Registry) *Engine {
	return &Engine{
		Registry: registry,
		Logger:   NopLogger{},
		Now:      time.Now,
	}
}

// NewDefaultEngine creates an engine over the embedded slab tables
func NewDefaultEngine() (*Engine, error) {
	registry, err := regime.Default()
	if err != nil {
		return nil, err
	}
	return NewEngine(registry), nil
}

// SetLogger replaces the engine logger; nil installs a no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Compute looks up a regime and runs the full return computation under it
func (e *Engine) Compute(income domain.IncomeProfile, deductions domain.DeductionSet, id domain.RegimeID, assessmentYear string) (*domain.TaxComputationResult, error) {
	def, err := e.Registry.Get(id, assessmentYear)
	if err != nil {
		return nil, err
	}
	result, err := ComputeReturn(income, deductions, def)
	if err != nil {
		return nil, err
	}
	e.Logger.Debugf("computed %s regime for AY %s: taxable=%s net=%s",
		id, assessmentYear, result.TaxableIncome.StringFixed(2), result.NetTaxLiability.StringFixed(2))
	if len(result.DisallowedSections) > 0 {
		e.Logger.Infof("%s regime ignores deductions claimed under %v", id, result.DisallowedSections)
	}
	return result, nil
}

// CalculateReturn computes a tax return under its chosen regime, or under the
// cheaper regime when none is chosen, and records the result on the return.
func (e *Engine) CalculateReturn(ret *domain.TaxReturn) error {
	if ret.Locked() {
		return domain.ErrReturnLocked
	}
	oldDef, newDef, err := e.Registry.Pair(ret.AssessmentYear)
	if err != nil {
		return err
	}

	var result *domain.TaxComputationResult
	switch ret.Regime {
	case domain.RegimeOld:
		result, err = ComputeReturn(ret.Income, ret.Deductions, oldDef)
	case domain.RegimeNew:
		result, err = ComputeReturn(ret.Income, ret.Deductions, newDef)
	case "":
		result, err = e.cheaperRegime(ret.Income, ret.Deductions, oldDef, newDef)
	default:
		return &domain.UnknownRegimeError{Regime: ret.Regime, AssessmentYear: ret.AssessmentYear}
	}
	if err != nil {
		return fmt.Errorf("failed to calculate return %s: %w", ret.ID, err)
	}

	settlement, err := Settle(result.NetTaxLiability, ret.Payments)
	if err != nil {
		return err
	}
	e.Logger.Infof("return %s calculated under %s regime: net tax %s, refund %s, payable %s",
		ret.ID, result.Regime, result.NetTaxLiability.StringFixed(2),
		settlement.RefundDue.StringFixed(2), settlement.AdditionalTaxPayable.StringFixed(2))
	return ret.RecordComputation(result, settlement, e.Now())
}

func (e *Engine) cheaperRegime(income domain.IncomeProfile, deductions domain.DeductionSet, oldDef, newDef *domain.RegimeDefinition) (*domain.TaxComputationResult, error) {
	oldResult, err := ComputeReturn(income, deductions, oldDef)
	if err != nil {
		return nil, err
	}
	newResult, err := ComputeReturn(income, deductions, newDef)
	if err != nil {
		return nil, err
	}
	if PreferredRegime(oldResult.NetTaxLiability, newResult.NetTaxLiability, oldDef, newDef) == oldDef.ID {
		return oldResult, nil
	}
	return newResult, nil
}

// ComputeReturn runs the whole pipeline for one regime: gross income, standard
// deduction, resolved deductions, taxable income, slab tax and rates.
func ComputeReturn(income domain.IncomeProfile, deductions domain.DeductionSet, def *domain.RegimeDefinition) (*domain.TaxComputationResult, error) {
	if err := income.Validate(); err != nil {
		return nil, err
	}
	resolved, err := ResolveDeductions(deductions, def)
	if err != nil {
		return nil, err
	}

	gross := income.GrossTotalIncome()
	taxable := decimal.Max(decimal.Zero, gross.Sub(def.StandardDeduction).Sub(resolved.Total))

	tax, err := ComputeTax(taxable, def)
	if err != nil {
		return nil, err
	}

	return &domain.TaxComputationResult{
		Regime:             def.ID,
		AssessmentYear:     def.AssessmentYear,
		GrossTotalIncome:   gross,
		StandardDeduction:  def.StandardDeduction,
		ResolvedDeductions: resolved.Resolved,
		DisallowedSections: resolved.Disallowed,
		TotalDeductions:    resolved.Total,
		TaxableIncome:      taxable,
		SlabBreakdown:      tax.SlabBreakdown,
		TaxBeforeCess:      tax.TaxBeforeCess,
		CessAmount:         tax.CessAmount,
		RebateApplied:      tax.RebateApplied,
		NetTaxLiability:    tax.NetTaxLiability,
		EffectiveTaxRate:   ratio(tax.NetTaxLiability, gross),
		AverageTaxRate:     ratio(tax.NetTaxLiability, taxable),
		MarginalTaxRate:    tax.MarginalTaxRate,
	}, nil
}

// NetTax is ComputeReturn reduced to the net liability
func NetTax(income domain.IncomeProfile, deductions domain.DeductionSet, def *domain.RegimeDefinition) (decimal.Decimal, error) {
	result, err := ComputeReturn(income, deductions, def)
	if err != nil {
		return decimal.Zero, err
	}
	return result.NetTaxLiability, nil
}

// PreferredRegime picks the regime with the lower liability. Ties go to the
// regime that allows fewer deduction sections, then to the second regime.
func PreferredRegime(liabilityA, liabilityB decimal.Decimal, a, b *domain.RegimeDefinition) domain.RegimeID {
	switch liabilityA.Cmp(liabilityB) {
	case -1:
		return a.ID
	case 1:
		return b.ID
	}
	if len(a.DeductionCaps) < len(b.DeductionCaps) {
		return a.ID
	}
	return b.ID
}

func ratio(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator).Round(6)
}
