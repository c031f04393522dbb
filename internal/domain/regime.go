package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RegimeID names a tax-rate regime
type RegimeID string

const (
	RegimeOld RegimeID = "old"
	RegimeNew RegimeID = "new"
)

// ParseRegimeID accepts "old" or "new"
func ParseRegimeID(s string) (RegimeID, error) {
	switch RegimeID(s) {
	case RegimeOld, RegimeNew:
		return RegimeID(s), nil
	}
	return "", fmt.Errorf("unknown regime %q (expected old or new)", s)
}

// SlabBand is a contiguous income range taxed at a single rate. A nil Max is unbounded.
type SlabBand struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the band has no upper limit
func (b SlabBand) Unbounded() bool {
	return b.Max == nil
}

// Contains reports whether income falls inside [Min, Max)
func (b SlabBand) Contains(income decimal.Decimal) bool {
	if income.LessThan(b.Min) {
		return false
	}
	return b.Unbounded() || income.LessThan(*b.Max)
}

// RegimeDefinition is the immutable slab table and allowance configuration of a
// regime for one assessment year.
type RegimeDefinition struct {
	ID                RegimeID                     `yaml:"id" json:"id"`
	AssessmentYear    string                       `yaml:"assessment_year" json:"assessment_year"`
	Name              string                       `yaml:"name" json:"name"`
	Slabs             []SlabBand                   `yaml:"slabs" json:"slabs"`
	CessRate          decimal.Decimal              `yaml:"cess_rate" json:"cess_rate"`
	StandardDeduction decimal.Decimal              `yaml:"standard_deduction" json:"standard_deduction"`
	RebateThreshold   decimal.Decimal              `yaml:"rebate_threshold" json:"rebate_threshold"`
	RebateCap         decimal.Decimal              `yaml:"rebate_cap" json:"rebate_cap"`
	DeductionCaps     map[Section]*decimal.Decimal `yaml:"deduction_caps" json:"deduction_caps"`
}

// DeductionCap reports whether a section is allowed and, if so, its cap.
// A nil cap on an allowed section means the section is uncapped.
func (r *RegimeDefinition) DeductionCap(section Section) (limit *decimal.Decimal, allowed bool) {
	limit, allowed = r.DeductionCaps[section]
	return limit, allowed
}

// AllowedSections returns the sections this regime permits, in display order
func (r *RegimeDefinition) AllowedSections() []Section {
	var sections []Section
	for _, section := range AllSections {
		if _, ok := r.DeductionCaps[section]; ok {
			sections = append(sections, section)
		}
	}
	return sections
}

// BandFor returns the index of the band containing income. Income above every
// finite bound falls into the last band.
func (r *RegimeDefinition) BandFor(income decimal.Decimal) int {
	for i, band := range r.Slabs {
		if band.Contains(income) {
			return i
		}
	}
	return len(r.Slabs) - 1
}

// Validate checks the slab table shape: bands start at zero, ascend without gaps
// or overlaps, and the top band is unbounded.
func (r *RegimeDefinition) Validate() error {
	fail := func(format string, args ...interface{}) error {
		return &MalformedRegimeDefinitionError{
			Regime:         r.ID,
			AssessmentYear: r.AssessmentYear,
			Reason:         fmt.Sprintf(format, args...),
		}
	}

	if r.ID == "" {
		return fail("regime id is required")
	}
	if _, err := ParseAssessmentYear(r.AssessmentYear); err != nil {
		return fail("%v", err)
	}
	if len(r.Slabs) == 0 {
		return fail("no slab bands defined")
	}
	if !r.Slabs[0].Min.IsZero() {
		return fail("first band starts at %s, expected 0", r.Slabs[0].Min)
	}

	for i, band := range r.Slabs {
		if band.Rate.IsNegative() {
			return fail("band %d has negative rate %s", i, band.Rate)
		}
		if i > 0 {
			prev := r.Slabs[i-1]
			if prev.Unbounded() {
				return fail("band %d follows the unbounded band %d", i, i-1)
			}
			if !band.Min.Equal(*prev.Max) {
				return fail("band %d starts at %s but band %d ends at %s", i, band.Min, i-1, prev.Max)
			}
		}
		if !band.Unbounded() && !band.Max.GreaterThan(band.Min) {
			return fail("band %d max %s is not above min %s", i, band.Max, band.Min)
		}
	}
	if !r.Slabs[len(r.Slabs)-1].Unbounded() {
		return fail("top band must be unbounded")
	}

	if r.CessRate.IsNegative() {
		return fail("cess rate %s is negative", r.CessRate)
	}
	for name, amount := range map[string]decimal.Decimal{
		"standard_deduction": r.StandardDeduction,
		"rebate_threshold":   r.RebateThreshold,
		"rebate_cap":         r.RebateCap,
	} {
		if amount.IsNegative() {
			return fail("%s %s is negative", name, amount)
		}
	}
	for section, limit := range r.DeductionCaps {
		if !section.Valid() {
			return fail("unknown deduction section %q", section)
		}
		if limit != nil && limit.IsNegative() {
			return fail("deduction cap for %s is negative", section)
		}
	}
	return nil
}
