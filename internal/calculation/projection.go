package calculation

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultMultipliers is the income sweep used when the caller supplies none
var DefaultMultipliers = []decimal.Decimal{
	decimal.NewFromFloat(0.5),
	decimal.NewFromFloat(0.75),
	decimal.NewFromInt(1),
	decimal.NewFromFloat(1.25),
	decimal.NewFromFloat(1.5),
	decimal.NewFromInt(2),
	decimal.NewFromInt(3),
}

// ProjectScenarios scales the primary income source by each multiplier and
// reports both regimes' liability at that income. Results follow the order of
// multipliers. Deduction claims are held fixed.
func ProjectScenarios(income domain.IncomeProfile, deductions domain.DeductionSet, multipliers []decimal.Decimal, oldDef, newDef *domain.RegimeDefinition) ([]domain.ScenarioResult, error) {
	if err := income.Validate(); err != nil {
		return nil, err
	}
	if err := deductions.Validate(); err != nil {
		return nil, err
	}

	source := income.PrimarySource()
	base := income.Amount(source)

	results := make([]domain.ScenarioResult, 0, len(multipliers))
	for i, m := range multipliers {
		if !m.IsPositive() {
			return nil, &domain.InvalidAmountError{
				Field:  fmt.Sprintf("multipliers[%d]", i),
				Value:  m.String(),
				Reason: "must be positive",
			}
		}

		scaled := income.WithAmount(source, base.Mul(m))
		oldTax, err := NetTax(scaled, deductions, oldDef)
		if err != nil {
			return nil, err
		}
		newTax, err := NetTax(scaled, deductions, newDef)
		if err != nil {
			return nil, err
		}

		results = append(results, domain.ScenarioResult{
			Multiplier:   m,
			Income:       scaled.GrossTotalIncome(),
			OldRegimeTax: oldTax,
			NewRegimeTax: newTax,
			Savings:      oldTax.Sub(newTax),
			BestRegime:   PreferredRegime(oldTax, newTax, oldDef, newDef),
		})
	}
	return results, nil
}
