package calculation

import (
	"sort"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxSuggestions bounds the list SuggestDeductions returns
const MaxSuggestions = 5

var sectionPriority = map[domain.Section]int{
	domain.Section80C:             5,
	domain.Section80D:             4,
	domain.SectionHouseProperty:   4,
	domain.Section80E:             3,
	domain.Section80G:             2,
	domain.Section80TTA:           1,
	domain.SectionProfessionalTax: 1,
}

var (
	highSavingThreshold   = decimal.NewFromInt(10000)
	mediumSavingThreshold = decimal.NewFromInt(5000)
)

// SuggestDeductions lists capped sections with unused room under a regime and
// the tax that filling each one to its cap would save.
func SuggestDeductions(income domain.IncomeProfile, deductions domain.DeductionSet, def *domain.RegimeDefinition) ([]domain.DeductionSuggestion, error) {
	current, err := ComputeReturn(income, deductions, def)
	if err != nil {
		return nil, err
	}

	var suggestions []domain.DeductionSuggestion
	for _, section := range def.AllowedSections() {
		limit, _ := def.DeductionCap(section)
		if limit == nil {
			continue
		}
		claimed := current.ResolvedDeductions[section]
		room := limit.Sub(claimed)
		if !room.IsPositive() {
			continue
		}

		filled := deductions.Clone()
		filled[section] = *limit
		withRoomUsed, err := NetTax(income, filled, def)
		if err != nil {
			return nil, err
		}
		saving := current.NetTaxLiability.Sub(withRoomUsed)
		if !saving.IsPositive() {
			continue
		}

		suggestions = append(suggestions, domain.DeductionSuggestion{
			Section:        section,
			Description:    section.Description(),
			CurrentAmount:  claimed,
			Cap:            *limit,
			AdditionalRoom: room,
			TaxSaving:      saving,
			Priority:       suggestionPriority(section, saving),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Priority != suggestions[j].Priority {
			return suggestions[i].Priority > suggestions[j].Priority
		}
		return suggestions[i].TaxSaving.GreaterThan(suggestions[j].TaxSaving)
	})
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions, nil
}

func suggestionPriority(section domain.Section, saving decimal.Decimal) int {
	priority := sectionPriority[section]
	switch {
	case saving.GreaterThan(highSavingThreshold):
		priority += 2
	case saving.GreaterThan(mediumSavingThreshold):
		priority++
	}
	return priority
}
