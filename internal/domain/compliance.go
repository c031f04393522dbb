package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityType distinguishes salaried individuals from businesses for compliance purposes
type EntityType string

const (
	EntityIndividual EntityType = "individual"
	EntityBusiness   EntityType = "business"
)

// Profile carries the taxpayer attributes compliance rules key off
type Profile struct {
	Name           string     `yaml:"name" json:"name"`
	EntityType     EntityType `yaml:"entity_type" json:"entity_type"`
	GSTRegistered  bool       `yaml:"gst_registered" json:"gst_registered"`
	HasTDSDeducted bool       `yaml:"has_tds_deducted" json:"has_tds_deducted"`
}

// ReturnSummary is the per-assessment-year view of a return used by compliance evaluation
type ReturnSummary struct {
	AssessmentYear   string           `yaml:"assessment_year" json:"assessment_year"`
	GrossTotalIncome decimal.Decimal  `yaml:"gross_total_income" json:"gross_total_income"`
	BusinessIncome   decimal.Decimal  `yaml:"business_income" json:"business_income"`
	GrossReceipts    decimal.Decimal  `yaml:"gross_receipts" json:"gross_receipts"`
	EstimatedTax     *decimal.Decimal `yaml:"estimated_tax,omitempty" json:"estimated_tax,omitempty"`
	TaxLiability     decimal.Decimal  `yaml:"tax_liability" json:"tax_liability"`
	AdvanceTaxPaid   decimal.Decimal  `yaml:"advance_tax_paid" json:"advance_tax_paid"`
	Filed            bool             `yaml:"filed" json:"filed"`
	Completed        []string         `yaml:"completed,omitempty" json:"completed,omitempty"`
}

// Liability returns the estimated tax when set, otherwise the computed liability.
// An explicit zero estimate means nothing is left for advance tax to cover.
func (r ReturnSummary) Liability() decimal.Decimal {
	if r.EstimatedTax != nil {
		return *r.EstimatedTax
	}
	return r.TaxLiability
}

// HasCompleted reports whether a rule has been marked as discharged
func (r ReturnSummary) HasCompleted(ruleID string) bool {
	for _, id := range r.Completed {
		if id == ruleID {
			return true
		}
	}
	return false
}

// Validate rejects a bad assessment year and negative amounts
func (r ReturnSummary) Validate() error {
	if _, err := ParseAssessmentYear(r.AssessmentYear); err != nil {
		return err
	}
	amounts := map[string]decimal.Decimal{
		"gross_total_income": r.GrossTotalIncome,
		"business_income":    r.BusinessIncome,
		"gross_receipts":     r.GrossReceipts,
		"tax_liability":      r.TaxLiability,
		"advance_tax_paid":   r.AdvanceTaxPaid,
	}
	if r.EstimatedTax != nil {
		amounts["estimated_tax"] = *r.EstimatedTax
	}
	for field, amount := range amounts {
		if err := ValidateAmount("return."+field, amount); err != nil {
			return err
		}
	}
	return nil
}

// Priority orders compliance rules and alerts
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	}
	return "unknown"
}

// Status is the evaluation outcome of a single rule
type Status string

const (
	StatusCompliant Status = "compliant"
	StatusDueSoon   Status = "due_soon"
	StatusOverdue   Status = "overdue"
)

// Severity grades an alert
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ComplianceStatus is the evaluation of one applicable rule for one assessment year
type ComplianceStatus struct {
	RuleID         string          `json:"rule_id"`
	Name           string          `json:"name"`
	AssessmentYear string          `json:"assessment_year"`
	Priority       Priority        `json:"priority"`
	Applicable     bool            `json:"applicable"`
	DueDate        time.Time       `json:"due_date"`
	DaysUntilDue   int             `json:"days_until_due"`
	DaysOverdue    int             `json:"days_overdue"`
	Status         Status          `json:"status"`
	Satisfied      bool            `json:"satisfied"`
	PenaltyAmount  decimal.Decimal `json:"penalty_amount"`
}

// Alert is a user-facing notice derived from a status
type Alert struct {
	RuleID       string    `json:"rule_id"`
	Severity     Severity  `json:"severity"`
	Priority     Priority  `json:"priority"`
	Message      string    `json:"message"`
	DueDate      time.Time `json:"due_date"`
	DaysUntilDue int       `json:"days_until_due"`
}

// ComplianceReport aggregates rule statuses, alerts and the overall score
type ComplianceReport struct {
	AsOf            time.Time          `json:"as_of"`
	Statuses        []ComplianceStatus `json:"statuses"`
	Alerts          []Alert            `json:"alerts"`
	Score           int                `json:"score"`
	TotalPenalty    decimal.Decimal    `json:"total_penalty"`
	Recommendations []string           `json:"recommendations,omitempty"`
}
