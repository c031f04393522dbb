package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnStatus tracks a tax return through preparation and filing
type ReturnStatus string

const (
	ReturnDraft        ReturnStatus = "draft"
	ReturnCalculated   ReturnStatus = "calculated"
	ReturnFiled        ReturnStatus = "filed"
	ReturnAcknowledged ReturnStatus = "acknowledged"
)

// ITRForm is the income-tax return form a filer uses
type ITRForm string

const (
	ITR1 ITRForm = "ITR-1"
	ITR2 ITRForm = "ITR-2"
	ITR3 ITRForm = "ITR-3"
	ITR4 ITRForm = "ITR-4"
)

var itr1IncomeLimit = decimal.NewFromInt(5000000)

// DefaultITRForm picks the simplest form the income heads allow
func DefaultITRForm(income IncomeProfile) ITRForm {
	switch {
	case income.Business.IsPositive():
		return ITR3
	case income.HasCapitalGains(), income.GrossTotalIncome().GreaterThan(itr1IncomeLimit):
		return ITR2
	default:
		return ITR1
	}
}

// Payments are taxes already paid against the year's liability
type Payments struct {
	TDSDeducted    decimal.Decimal `yaml:"tds_deducted" json:"tds_deducted"`
	AdvanceTaxPaid decimal.Decimal `yaml:"advance_tax_paid" json:"advance_tax_paid"`
}

// Total sums all payments
func (p Payments) Total() decimal.Decimal {
	return p.TDSDeducted.Add(p.AdvanceTaxPaid)
}

// Settlement is the balance between liability and payments. At most one of
// RefundDue and AdditionalTaxPayable is non-zero.
type Settlement struct {
	NetTaxLiability      decimal.Decimal `json:"net_tax_liability"`
	TotalTaxPaid         decimal.Decimal `json:"total_tax_paid"`
	RefundDue            decimal.Decimal `json:"refund_due"`
	AdditionalTaxPayable decimal.Decimal `json:"additional_tax_payable"`
}

// TaxReturn is the record a filer prepares for one assessment year
type TaxReturn struct {
	ID               string                `json:"id"`
	AssessmentYear   string                `json:"assessment_year"`
	Form             ITRForm               `json:"itr_form"`
	Status           ReturnStatus          `json:"status"`
	Income           IncomeProfile         `json:"income"`
	Deductions       DeductionSet          `json:"deductions"`
	Payments         Payments              `json:"payments"`
	Regime           RegimeID              `json:"regime,omitempty"`
	Computation      *TaxComputationResult `json:"computation,omitempty"`
	Settlement       *Settlement           `json:"settlement,omitempty"`
	AcknowledgmentNo string                `json:"acknowledgment_number,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
	FiledAt          *time.Time            `json:"filed_at,omitempty"`
	AcknowledgedAt   *time.Time            `json:"acknowledged_at,omitempty"`
}

// NewTaxReturn creates a draft return with a fresh identifier
func NewTaxReturn(ay string, income IncomeProfile, deductions DeductionSet, payments Payments, now time.Time) *TaxReturn {
	return &TaxReturn{
		ID:             uuid.NewString(),
		AssessmentYear: ay,
		Form:           DefaultITRForm(income),
		Status:         ReturnDraft,
		Income:         income,
		Deductions:     deductions.Clone(),
		Payments:       payments,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Locked reports whether the return can no longer be modified
func (r *TaxReturn) Locked() bool {
	return r.Status == ReturnFiled || r.Status == ReturnAcknowledged
}

// RecordComputation stores a computation and moves the return to calculated
func (r *TaxReturn) RecordComputation(result *TaxComputationResult, settlement *Settlement, now time.Time) error {
	if r.Locked() {
		return ErrReturnLocked
	}
	r.Regime = result.Regime
	r.Computation = result
	r.Settlement = settlement
	r.Status = ReturnCalculated
	r.UpdatedAt = now
	return nil
}

// MarkFiled moves a calculated return to filed
func (r *TaxReturn) MarkFiled(now time.Time) error {
	if r.Status != ReturnCalculated {
		return &InvalidTransitionError{From: r.Status, To: ReturnFiled}
	}
	r.Status = ReturnFiled
	r.FiledAt = &now
	r.UpdatedAt = now
	return nil
}

// Acknowledge records the acknowledgment number issued for a filed return
func (r *TaxReturn) Acknowledge(number string, now time.Time) error {
	if r.Status != ReturnFiled {
		return &InvalidTransitionError{From: r.Status, To: ReturnAcknowledged}
	}
	r.Status = ReturnAcknowledged
	r.AcknowledgmentNo = number
	r.AcknowledgedAt = &now
	r.UpdatedAt = now
	return nil
}

// Summary derives the compliance view of the return
func (r *TaxReturn) Summary() ReturnSummary {
	summary := ReturnSummary{
		AssessmentYear:   r.AssessmentYear,
		GrossTotalIncome: r.Income.GrossTotalIncome(),
		BusinessIncome:   r.Income.Business,
		AdvanceTaxPaid:   r.Payments.AdvanceTaxPaid,
		Filed:            r.Locked(),
	}
	if r.Computation != nil {
		summary.TaxLiability = r.Computation.NetTaxLiability
	}
	return summary
}
