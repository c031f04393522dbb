package output

import (
	"fmt"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/pkg/money"
)

// Assumptions lists the modelling assumptions rendered in detailed outputs,
// taken from the regime tables in use.
func Assumptions(oldDef, newDef *domain.RegimeDefinition) []string {
	out := []string{
		fmt.Sprintf("Slab tables for assessment year %s", oldDef.AssessmentYear),
	}
	for _, def := range []*domain.RegimeDefinition{oldDef, newDef} {
		out = append(out, fmt.Sprintf("%s: standard deduction %s, cess %s, rebate up to %s when taxable income is at most %s",
			def.Name,
			money.FormatINRWhole(def.StandardDeduction),
			money.FormatRate(def.CessRate),
			money.FormatINRWhole(def.RebateCap),
			money.FormatINRWhole(def.RebateThreshold)))
	}
	out = append(out,
		"Surcharge, special-rate capital gains and set-off of losses are not modelled",
		"Scenario projections scale the primary income head and hold deductions fixed",
	)
	return out
}
