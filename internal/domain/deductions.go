package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Section identifies a deduction section. The set is closed; see ParseSection.
type Section string

const (
	Section80C             Section = "80C"
	Section80D             Section = "80D"
	Section80E             Section = "80E"
	Section80G             Section = "80G"
	Section80TTA           Section = "80TTA"
	SectionHouseProperty   Section = "houseProperty"
	SectionProfessionalTax Section = "professionalTax"
	SectionOther           Section = "other"
)

// AllSections lists the recognised deduction sections in display order
var AllSections = []Section{
	Section80C,
	Section80D,
	Section80E,
	Section80G,
	Section80TTA,
	SectionHouseProperty,
	SectionProfessionalTax,
	SectionOther,
}

var sectionDescriptions = map[Section]string{
	Section80C:             "Life insurance, PPF, ELSS, principal repayment",
	Section80D:             "Health insurance premiums",
	Section80E:             "Interest on education loan",
	Section80G:             "Donations to approved funds",
	Section80TTA:           "Interest on savings accounts",
	SectionHouseProperty:   "Interest on housing loan",
	SectionProfessionalTax: "Professional tax paid",
	SectionOther:           "Other eligible deductions",
}

// ParseSection validates a section identifier
func ParseSection(s string) (Section, error) {
	section := Section(s)
	if !section.Valid() {
		return "", &UnknownDeductionSectionError{Section: s}
	}
	return section, nil
}

// Valid reports whether the section is part of the closed set
func (s Section) Valid() bool {
	_, ok := sectionDescriptions[s]
	return ok
}

// Description returns a short human-readable label
func (s Section) Description() string {
	return sectionDescriptions[s]
}

// DeductionSet maps deduction sections to claimed amounts
type DeductionSet map[Section]decimal.Decimal

// Total sums every section
func (d DeductionSet) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range d {
		total = total.Add(amount)
	}
	return total
}

// Sections returns the sections present, in AllSections order
func (d DeductionSet) Sections() []Section {
	sections := make([]Section, 0, len(d))
	for section := range d {
		sections = append(sections, section)
	}
	sort.Slice(sections, func(i, j int) bool {
		a, b := sectionIndex(sections[i]), sectionIndex(sections[j])
		if a != b {
			return a < b
		}
		return sections[i] < sections[j]
	})
	return sections
}

// Validate checks every key against the closed section set and rejects negative amounts
func (d DeductionSet) Validate() error {
	for _, section := range d.Sections() {
		if !section.Valid() {
			return &UnknownDeductionSectionError{Section: string(section)}
		}
		if err := ValidateAmount("deductions."+string(section), d[section]); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns an independent copy
func (d DeductionSet) Clone() DeductionSet {
	out := make(DeductionSet, len(d))
	for section, amount := range d {
		out[section] = amount
	}
	return out
}

func sectionIndex(s Section) int {
	for i, known := range AllSections {
		if known == s {
			return i
		}
	}
	return len(AllSections)
}
