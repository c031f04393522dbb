package compare

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/pkg/money"
	"github.com/shopspring/decimal"
)

// RegimePair is the two regimes being compared
type RegimePair struct {
	Old *domain.RegimeDefinition
	New *domain.RegimeDefinition
}

// Validate checks both regimes are present and belong to the assessment year
func (p RegimePair) Validate(assessmentYear string) error {
	if p.Old == nil {
		return &domain.UnknownRegimeError{Regime: domain.RegimeOld, AssessmentYear: assessmentYear}
	}
	if p.New == nil {
		return &domain.UnknownRegimeError{Regime: domain.RegimeNew, AssessmentYear: assessmentYear}
	}
	for _, def := range []*domain.RegimeDefinition{p.Old, p.New} {
		if def.AssessmentYear != assessmentYear {
			return &domain.UnknownAssessmentYearError{AssessmentYear: assessmentYear}
		}
	}
	return nil
}

var (
	significantSavings = decimal.NewFromInt(50000)
	largeDeductions    = decimal.NewFromInt(200000)
)

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(c *domain.RegimeComparison, claimed domain.DeductionSet) []string {
	recommendations := []string{}
	if c.Old == nil || c.New == nil {
		return recommendations
	}

	recommended := c.Recommended()
	other := c.New
	if c.RecommendedRegime == domain.RegimeNew {
		other = c.Old
	}

	if c.AbsoluteSavings.IsZero() {
		recommendations = append(recommendations,
			"Both regimes produce the same liability; the "+string(c.RecommendedRegime)+
				" regime needs fewer deduction proofs")
	} else {
		recommendations = append(recommendations, fmt.Sprintf(
			"Choose the %s regime: it saves %s (%s) compared with the %s regime",
			recommended.Regime, money.FormatINR(c.AbsoluteSavings),
			money.FormatPercentage(c.SavingsPercentage), other.Regime))
	}

	if c.AbsoluteSavings.GreaterThan(significantSavings) {
		recommendations = append(recommendations,
			"The difference is significant: declare the regime to your employer so TDS is deducted at the right rate")
	}

	switch c.RecommendedRegime {
	case domain.RegimeOld:
		sections := c.Old.ResolvedDeductions.Sections()
		if len(sections) > 0 {
			recommendations = append(recommendations, fmt.Sprintf(
				"Keep proofs for deductions under %v; the old regime advantage depends on them", sections))
		}
	case domain.RegimeNew:
		if claimed.Total().GreaterThan(largeDeductions) {
			recommendations = append(recommendations, fmt.Sprintf(
				"Deductions of %s do not offset the lower new regime rates at this income",
				money.FormatINR(claimed.Total())))
		}
	}

	if c.BreakEvenIncome != nil {
		recommendations = append(recommendations, fmt.Sprintf(
			"With these deductions the regimes cost the same at a salary of about %s",
			money.FormatINRWhole(*c.BreakEvenIncome)))
	}

	return recommendations
}
