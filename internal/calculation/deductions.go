package calculation

import (
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ResolvedDeductions is a claimed deduction set after regime eligibility and caps
type ResolvedDeductions struct {
	Resolved   domain.DeductionSet
	Disallowed []domain.Section
	Total      decimal.Decimal
}

// ResolveDeductions applies a regime's allowed sections and caps to raw claims.
// Sections the regime does not allow resolve to zero.
func ResolveDeductions(raw domain.DeductionSet, regime *domain.RegimeDefinition) (*ResolvedDeductions, error) {
	if err := raw.Validate(); err != nil {
		return nil, err
	}

	out := &ResolvedDeductions{
		Resolved: make(domain.DeductionSet, len(raw)),
		Total:    decimal.Zero,
	}
	for _, section := range raw.Sections() {
		claimed := raw[section]
		limit, allowed := regime.DeductionCap(section)

		var amount decimal.Decimal
		switch {
		case !allowed:
			amount = decimal.Zero
			if claimed.IsPositive() {
				out.Disallowed = append(out.Disallowed, section)
			}
		case limit != nil:
			amount = decimal.Min(claimed, *limit)
		default:
			amount = claimed
		}

		out.Resolved[section] = amount
		out.Total = out.Total.Add(amount)
	}
	return out, nil
}
