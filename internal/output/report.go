package output

import (
	"fmt"
	"os"
	"time"

	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/compliance"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/regime"
	"github.com/rgehrsitz/itrgo/pkg/money"
	"gopkg.in/yaml.v3"
)

// Report is everything itrgo derives from one case
type Report struct {
	GeneratedAt      time.Time                    `json:"generated_at"`
	Taxpayer         domain.Profile               `json:"taxpayer"`
	AssessmentYear   string                       `json:"assessment_year"`
	FinancialYear    string                       `json:"financial_year"`
	Assumptions      []string                     `json:"assumptions"`
	Return           *domain.TaxReturn            `json:"return"`
	Comparison       *domain.RegimeComparison     `json:"comparison"`
	BreakEven        *breakeven.Result            `json:"break_even,omitempty"`
	Scenarios        []domain.ScenarioResult      `json:"scenarios"`
	Suggestions      []domain.DeductionSuggestion `json:"suggestions"`
	Compliance       *domain.ComplianceReport     `json:"compliance"`
	RegimeChoiceNote string                       `json:"regime_choice_note,omitempty"`
}

// ReportGenerator runs every analysis over a case
type ReportGenerator struct {
	Registry *regime.Registry
	Solver   *breakeven.Solver
	Logger   calculation.Logger
	Now      func() time.Time
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(registry *regime.Registry) *ReportGenerator {
	return &ReportGenerator{
		Registry: registry,
		Solver:   breakeven.NewDefaultSolver(),
		Logger:   calculation.NopLogger{},
		Now:      time.Now,
	}
}

// SetLogger replaces the logger on the generator and the engines it drives
func (rg *ReportGenerator) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	rg.Logger = l
	if rg.Solver != nil {
		rg.Solver.Logger = l
	}
}

// Build computes the return, the regime comparison, scenarios, deduction
// suggestions and compliance status for a case as of a date.
func (rg *ReportGenerator) Build(c *domain.Case, asOf time.Time) (*Report, error) {
	ay, err := domain.ParseAssessmentYear(c.AssessmentYear)
	if err != nil {
		return nil, err
	}
	oldDef, newDef, err := rg.Registry.Pair(c.AssessmentYear)
	if err != nil {
		return nil, err
	}

	engine := calculation.NewEngine(rg.Registry)
	engine.SetLogger(rg.Logger)
	engine.Now = rg.Now

	ret := c.NewReturn(rg.Now())
	if err := engine.CalculateReturn(ret); err != nil {
		return nil, fmt.Errorf("failed to calculate return: %w", err)
	}

	comparison, err := compare.CompareRegimes(c.Income, c.Deductions, compare.RegimePair{Old: oldDef, New: newDef}, c.AssessmentYear, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compare regimes: %w", err)
	}

	var be *breakeven.Result
	if rg.Solver != nil {
		be, err = rg.Solver.FindBreakEven(breakeven.Request{Deductions: c.Deductions, Old: oldDef, New: newDef})
		if err != nil {
			return nil, err
		}
		comparison.BreakEvenIncome = be.Income
		comparison.Recommendations = compare.GenerateRecommendations(comparison, c.Deductions)
	}

	multipliers := c.Scenarios.Multipliers
	if len(multipliers) == 0 {
		multipliers = calculation.DefaultMultipliers
	}
	scenarios, err := calculation.ProjectScenarios(c.Income, c.Deductions, multipliers, oldDef, newDef)
	if err != nil {
		return nil, fmt.Errorf("failed to project scenarios: %w", err)
	}

	suggestions, err := calculation.SuggestDeductions(c.Income, c.Deductions, oldDef)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest deductions: %w", err)
	}

	evaluator := compliance.NewEvaluator()
	evaluator.Logger = rg.Logger
	status, err := evaluator.Evaluate(c.Taxpayer, c.ComplianceReturns(ret), asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate compliance: %w", err)
	}

	report := &Report{
		GeneratedAt:    rg.Now(),
		Taxpayer:       c.Taxpayer,
		AssessmentYear: c.AssessmentYear,
		FinancialYear:  ay.FinancialYear(),
		Assumptions:    Assumptions(oldDef, newDef),
		Return:         ret,
		Comparison:     comparison,
		BreakEven:      be,
		Scenarios:      scenarios,
		Suggestions:    suggestions,
		Compliance:     status,
	}
	if c.Regime != "" && c.Regime != comparison.RecommendedRegime {
		report.RegimeChoiceNote = fmt.Sprintf("The case opts for the %s regime, which costs %s more than the %s regime",
			c.Regime, money.FormatINR(comparison.AbsoluteSavings), comparison.RecommendedRegime)
	}

	rg.Logger.Infof("report built for AY %s: %s regime, net %s",
		c.AssessmentYear, ret.Regime, ret.Computation.NetTaxLiability.StringFixed(2))
	return report, nil
}

// SaveCase writes a case back out as YAML
func SaveCase(c *domain.Case, filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}
