package compare

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/regime"
	"github.com/shopspring/decimal"
)

// CompareEngine compares the regimes registered for an assessment year
type CompareEngine struct {
	Registry *regime.Registry
	Solver   *breakeven.Solver
	Logger   calculation.Logger
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(registry *regime.Registry) *CompareEngine {
	return &CompareEngine{
		Registry: registry,
		Solver:   breakeven.NewDefaultSolver(),
		Logger:   calculation.NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil installs a no-op logger
func (ce *CompareEngine) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	ce.Logger = l
	if ce.Solver != nil {
		ce.Solver.Logger = l
	}
}

// Compare looks up both regimes for the assessment year and compares them
func (ce *CompareEngine) Compare(income domain.IncomeProfile, deductions domain.DeductionSet, assessmentYear string) (*domain.RegimeComparison, error) {
	oldRegime, newRegime, err := ce.Registry.Pair(assessmentYear)
	if err != nil {
		return nil, err
	}

	comparison, err := CompareRegimes(income, deductions, RegimePair{Old: oldRegime, New: newRegime}, assessmentYear, ce.Solver)
	if err != nil {
		return nil, fmt.Errorf("failed to compare regimes: %w", err)
	}

	ce.Logger.Infof("AY %s: old %s, new %s, recommended %s",
		assessmentYear,
		comparison.Old.NetTaxLiability.StringFixed(2),
		comparison.New.NetTaxLiability.StringFixed(2),
		comparison.RecommendedRegime)
	if comparison.BreakEvenIncome == nil {
		ce.Logger.Debugf("no break-even income within the scan range")
	}
	return comparison, nil
}

// CompareRegimes computes both regimes for the same inputs and derives savings,
// the recommendation and, when a solver is given, the break-even income.
func CompareRegimes(income domain.IncomeProfile, deductions domain.DeductionSet, regimes RegimePair, assessmentYear string, solver *breakeven.Solver) (*domain.RegimeComparison, error) {
	if err := regimes.Validate(assessmentYear); err != nil {
		return nil, err
	}

	oldResult, err := calculation.ComputeReturn(income, deductions, regimes.Old)
	if err != nil {
		return nil, err
	}
	newResult, err := calculation.ComputeReturn(income, deductions, regimes.New)
	if err != nil {
		return nil, err
	}

	comparison := &domain.RegimeComparison{
		AssessmentYear:    assessmentYear,
		Old:               oldResult,
		New:               newResult,
		AbsoluteSavings:   oldResult.NetTaxLiability.Sub(newResult.NetTaxLiability).Abs(),
		RecommendedRegime: calculation.PreferredRegime(oldResult.NetTaxLiability, newResult.NetTaxLiability, regimes.Old, regimes.New),
	}

	higher := decimal.Max(oldResult.NetTaxLiability, newResult.NetTaxLiability)
	if higher.IsPositive() {
		comparison.SavingsPercentage = comparison.AbsoluteSavings.Div(higher).Mul(decimal.NewFromInt(100)).Round(2)
	}

	if solver != nil {
		be, err := solver.FindBreakEven(breakeven.Request{Deductions: deductions, Old: regimes.Old, New: regimes.New})
		if err != nil {
			return nil, err
		}
		comparison.BreakEvenIncome = be.Income
	}

	comparison.Recommendations = GenerateRecommendations(comparison, deductions)
	return comparison, nil
}
