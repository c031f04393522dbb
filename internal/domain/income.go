package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeProfile breaks gross income into the heads of income used on a return
type IncomeProfile struct {
	Salary                decimal.Decimal `yaml:"salary" json:"salary"`
	HouseProperty         decimal.Decimal `yaml:"house_property" json:"house_property"`
	Business              decimal.Decimal `yaml:"business" json:"business"`
	ShortTermCapitalGains decimal.Decimal `yaml:"short_term_capital_gains" json:"short_term_capital_gains"`
	LongTermCapitalGains  decimal.Decimal `yaml:"long_term_capital_gains" json:"long_term_capital_gains"`
	OtherSources          decimal.Decimal `yaml:"other_sources" json:"other_sources"`
}

// IncomeSource names a single head of income
type IncomeSource string

const (
	SourceSalary                IncomeSource = "salary"
	SourceHouseProperty         IncomeSource = "house_property"
	SourceBusiness              IncomeSource = "business"
	SourceShortTermCapitalGains IncomeSource = "short_term_capital_gains"
	SourceLongTermCapitalGains  IncomeSource = "long_term_capital_gains"
	SourceOtherSources          IncomeSource = "other_sources"
)

// IncomeSources lists every head of income in canonical order
var IncomeSources = []IncomeSource{
	SourceSalary,
	SourceHouseProperty,
	SourceBusiness,
	SourceShortTermCapitalGains,
	SourceLongTermCapitalGains,
	SourceOtherSources,
}

// Amount returns the value recorded for a source
func (p IncomeProfile) Amount(source IncomeSource) decimal.Decimal {
	switch source {
	case SourceSalary:
		return p.Salary
	case SourceHouseProperty:
		return p.HouseProperty
	case SourceBusiness:
		return p.Business
	case SourceShortTermCapitalGains:
		return p.ShortTermCapitalGains
	case SourceLongTermCapitalGains:
		return p.LongTermCapitalGains
	case SourceOtherSources:
		return p.OtherSources
	}
	return decimal.Zero
}

// WithAmount returns a copy of the profile with one source replaced
func (p IncomeProfile) WithAmount(source IncomeSource, amount decimal.Decimal) IncomeProfile {
	switch source {
	case SourceSalary:
		p.Salary = amount
	case SourceHouseProperty:
		p.HouseProperty = amount
	case SourceBusiness:
		p.Business = amount
	case SourceShortTermCapitalGains:
		p.ShortTermCapitalGains = amount
	case SourceLongTermCapitalGains:
		p.LongTermCapitalGains = amount
	case SourceOtherSources:
		p.OtherSources = amount
	}
	return p
}

// GrossTotalIncome sums every head of income
func (p IncomeProfile) GrossTotalIncome() decimal.Decimal {
	total := decimal.Zero
	for _, source := range IncomeSources {
		total = total.Add(p.Amount(source))
	}
	return total
}

// PrimarySource is the head of income scenarios scale: salary when present,
// otherwise the largest source.
func (p IncomeProfile) PrimarySource() IncomeSource {
	if p.Salary.IsPositive() {
		return SourceSalary
	}
	primary := SourceSalary
	largest := decimal.Zero
	for _, source := range IncomeSources {
		if amount := p.Amount(source); amount.GreaterThan(largest) {
			primary = source
			largest = amount
		}
	}
	return primary
}

// HasCapitalGains reports whether either capital gains head is non-zero
func (p IncomeProfile) HasCapitalGains() bool {
	return !p.ShortTermCapitalGains.IsZero() || !p.LongTermCapitalGains.IsZero()
}

// Validate rejects negative income heads
func (p IncomeProfile) Validate() error {
	for _, source := range IncomeSources {
		if err := ValidateAmount("income."+string(source), p.Amount(source)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAmount rejects negative monetary values
func ValidateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &InvalidAmountError{Field: field, Value: amount.String(), Reason: "must not be negative"}
	}
	return nil
}
