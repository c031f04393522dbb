package compliance

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

func statusByID(t *testing.T, report *domain.ComplianceReport, id string) domain.ComplianceStatus {
	t.Helper()
	for _, s := range report.Statuses {
		if s.RuleID == id {
			return s
		}
	}
	t.Fatalf("no status for rule %s", id)
	return domain.ComplianceStatus{}
}

func TestEvaluate_AdvanceTaxDueSoon(t *testing.T) {
	// The 15% first installment is paid; without it Q1 (due 15 Jun) would also
	// be overdue and raise an error alert alongside the Q2 reminder.
	returns := []domain.ReturnSummary{{
		AssessmentYear: "2025-26",
		EstimatedTax:   decPtr(50000),
		AdvanceTaxPaid: dec(7500),
	}}

	report, err := Evaluate(domain.Profile{EntityType: domain.EntityIndividual}, returns, day(2024, time.September, 5))
	require.NoError(t, err)

	require.Len(t, report.Statuses, 4)

	q1 := statusByID(t, report, "advance_tax_q1")
	assert.True(t, q1.Satisfied)
	assert.Equal(t, domain.StatusCompliant, q1.Status)

	q2 := statusByID(t, report, "advance_tax_q2")
	assert.Equal(t, domain.StatusDueSoon, q2.Status)
	assert.Equal(t, 10, q2.DaysUntilDue)
	assert.Equal(t, day(2024, time.September, 15), q2.DueDate)
	assert.True(t, q2.PenaltyAmount.IsZero())

	require.Len(t, report.Alerts, 1)
	assert.Equal(t, domain.SeverityInfo, report.Alerts[0].Severity)
	assert.Equal(t, "advance_tax_q2", report.Alerts[0].RuleID)

	assert.Equal(t, 93, report.Score)
	require.Len(t, report.Recommendations, 1)
	assert.Contains(t, report.Recommendations[0], "Prepare")
}

func TestEvaluate_LateFilingFee(t *testing.T) {
	tests := []struct {
		name  string
		gross int64
		asOf  time.Time
		fee   int64
		score int
	}{
		{"small income", 400000, day(2024, time.August, 15), 1000, 30},
		{"within 90 days", 1200000, day(2024, time.August, 15), 5000, 30},
		{"after 90 days", 1200000, day(2024, time.December, 1), 10000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			returns := []domain.ReturnSummary{{AssessmentYear: "2024-25", GrossTotalIncome: dec(tt.gross)}}
			report, err := Evaluate(domain.Profile{}, returns, tt.asOf)
			require.NoError(t, err)

			require.Len(t, report.Statuses, 1)
			s := report.Statuses[0]
			assert.Equal(t, RuleITRFiling, s.RuleID)
			assert.Equal(t, domain.StatusOverdue, s.Status)
			assert.True(t, dec(tt.fee).Equal(s.PenaltyAmount), "penalty: %s", s.PenaltyAmount)
			assert.True(t, dec(tt.fee).Equal(report.TotalPenalty))
			assert.Equal(t, tt.score, report.Score)

			require.Len(t, report.Alerts, 1)
			assert.Equal(t, domain.SeverityError, report.Alerts[0].Severity)
			assert.Contains(t, report.Recommendations[0], "Urgent")
			assert.Contains(t, report.Recommendations[len(report.Recommendations)-1], "Compliance score")
		})
	}
}

func TestEvaluate_FiledReturnIsCompliant(t *testing.T) {
	returns := []domain.ReturnSummary{{AssessmentYear: "2024-25", GrossTotalIncome: dec(1200000), Filed: true}}
	report, err := Evaluate(domain.Profile{}, returns, day(2024, time.December, 1))
	require.NoError(t, err)

	s := statusByID(t, report, RuleITRFiling)
	assert.Equal(t, domain.StatusCompliant, s.Status)
	assert.Equal(t, 123, s.DaysOverdue)
	assert.True(t, s.PenaltyAmount.IsZero())
	assert.Empty(t, report.Alerts)
	assert.Equal(t, 100, report.Score)
	assert.Empty(t, report.Recommendations)
}

func TestEvaluate_AdvanceTaxCoveredByTDS(t *testing.T) {
	c := &domain.Case{
		AssessmentYear: "2024-25",
		Taxpayer:       domain.Profile{EntityType: domain.EntityIndividual},
		Income:         domain.IncomeProfile{Salary: dec(2000000)},
		Payments:       domain.Payments{TDSDeducted: dec(300000)},
	}
	ret := c.NewReturn(day(2024, time.June, 1))
	require.NoError(t, ret.RecordComputation(
		&domain.TaxComputationResult{Regime: domain.RegimeNew, NetTaxLiability: dec(280000)}, nil, day(2024, time.June, 1)))

	report, err := Evaluate(c.Taxpayer, c.ComplianceReturns(ret), day(2024, time.June, 1))
	require.NoError(t, err)

	for _, s := range report.Statuses {
		assert.NotContains(t, s.RuleID, "advance_tax", "TDS covers the whole liability")
	}
	assert.True(t, report.TotalPenalty.IsZero())
	assert.Equal(t, 100, report.Score)
}

func TestEvaluate_AdvanceTaxInterest(t *testing.T) {
	returns := []domain.ReturnSummary{{AssessmentYear: "2024-25", TaxLiability: dec(100000)}}
	report, err := Evaluate(domain.Profile{}, returns, day(2024, time.April, 15))
	require.NoError(t, err)

	want := map[string]int64{
		"advance_tax_q1": 1525,
		"advance_tax_q2": 3195,
		"advance_tax_q3": 3050,
		"advance_tax_q4": 1033,
	}
	require.Len(t, report.Statuses, len(want))
	for id, penalty := range want {
		s := statusByID(t, report, id)
		assert.Equal(t, domain.StatusOverdue, s.Status, id)
		assert.True(t, dec(penalty).Equal(s.PenaltyAmount), "%s penalty: %s", id, s.PenaltyAmount)
	}
	assert.True(t, dec(8803).Equal(report.TotalPenalty))
	assert.Equal(t, 0, report.Score)

	// q4 has high priority so it leads the alerts
	require.Len(t, report.Alerts, 4)
	assert.Equal(t, "advance_tax_q4", report.Alerts[0].RuleID)
	assert.Equal(t, "advance_tax_q1", report.Alerts[1].RuleID)
}

func TestEvaluate_BusinessObligations(t *testing.T) {
	profile := domain.Profile{Name: "Traders", EntityType: domain.EntityBusiness, GSTRegistered: true}
	returns := []domain.ReturnSummary{{
		AssessmentYear:   "2025-26",
		GrossTotalIncome: dec(2000000),
		BusinessIncome:   dec(500000),
		GrossReceipts:    dec(20000000),
		Filed:            true,
	}}

	report, err := Evaluate(profile, returns, day(2025, time.August, 10))
	require.NoError(t, err)
	require.Len(t, report.Statuses, 7)

	assert.True(t, dec(20000).Equal(statusByID(t, report, "tds_return_q1").PenaltyAmount))
	assert.True(t, dec(14200).Equal(statusByID(t, report, "tds_return_q4").PenaltyAmount))
	assert.True(t, dec(74200).Equal(report.TotalPenalty), "total: %s", report.TotalPenalty)

	gst := statusByID(t, report, RuleGSTReturn)
	assert.Equal(t, domain.StatusDueSoon, gst.Status)
	assert.Equal(t, 10, gst.DaysUntilDue)

	audit := statusByID(t, report, RuleTaxAudit)
	assert.Equal(t, domain.StatusCompliant, audit.Status)
	assert.Equal(t, 51, audit.DaysUntilDue)

	assert.Equal(t, 39, report.Score)

	require.Len(t, report.Alerts, 5)
	assert.Equal(t, RuleGSTReturn, report.Alerts[0].RuleID, "high priority first")
	assert.Equal(t, "tds_return_q1", report.Alerts[1].RuleID, "then most overdue")
	assert.Equal(t, "tds_return_q4", report.Alerts[4].RuleID)
}

func TestEvaluate_CompletedRules(t *testing.T) {
	profile := domain.Profile{HasTDSDeducted: true}
	returns := []domain.ReturnSummary{{
		AssessmentYear: "2025-26",
		Completed:      []string{"tds_return_q1", "tds_return_q2", "tds_return_q3", "tds_return_q4"},
	}}

	report, err := Evaluate(profile, returns, day(2025, time.August, 10))
	require.NoError(t, err)
	require.Len(t, report.Statuses, 4)
	for _, s := range report.Statuses {
		assert.True(t, s.Satisfied, s.RuleID)
	}
	assert.True(t, report.TotalPenalty.IsZero())
	assert.Equal(t, 100, report.Score)
}

func TestEvaluate_NoApplicableRules(t *testing.T) {
	report, err := Evaluate(domain.Profile{}, nil, day(2024, time.September, 5))
	require.NoError(t, err)
	assert.Empty(t, report.Statuses)
	assert.Empty(t, report.Alerts)
	assert.Equal(t, 100, report.Score)
}

func TestEvaluate_MultipleYears(t *testing.T) {
	profile := domain.Profile{GSTRegistered: true}
	returns := []domain.ReturnSummary{
		{AssessmentYear: "2025-26", GrossTotalIncome: dec(900000)},
		{AssessmentYear: "2024-25", GrossTotalIncome: dec(900000), Filed: true},
		{AssessmentYear: "2025-26", GrossTotalIncome: dec(1)},
	}

	report, err := Evaluate(profile, returns, day(2025, time.July, 1))
	require.NoError(t, err)

	// one filing status per year plus a single GST status
	require.Len(t, report.Statuses, 3)
	assert.Equal(t, "2024-25", report.Statuses[0].AssessmentYear)
	assert.Equal(t, "2025-26", report.Statuses[1].AssessmentYear)
	assert.Equal(t, RuleGSTReturn, report.Statuses[2].RuleID)
	assert.Equal(t, 30, report.Statuses[1].DaysUntilDue)
}

func TestEvaluate_InvalidReturn(t *testing.T) {
	_, err := Evaluate(domain.Profile{}, []domain.ReturnSummary{{AssessmentYear: "2025"}}, time.Now())
	require.Error(t, err)

	_, err = Evaluate(domain.Profile{}, []domain.ReturnSummary{{AssessmentYear: "2025-26", AdvanceTaxPaid: dec(-5)}}, time.Now())
	var amountErr *domain.InvalidAmountError
	require.True(t, errors.As(err, &amountErr))
	assert.Equal(t, "return.advance_tax_paid", amountErr.Field)
}

func TestEvaluate_CustomRules(t *testing.T) {
	rule := Rule{
		ID:       "board_meeting",
		Name:     "Board meeting",
		Priority: domain.PriorityLow,
		DueDate: func(ctx Context) time.Time {
			return ctx.AsOf.AddDate(0, 0, 3)
		},
	}

	report, err := NewEvaluator(rule).Evaluate(domain.Profile{}, nil, day(2024, time.May, 1))
	require.NoError(t, err)
	require.Len(t, report.Alerts, 1)
	assert.Equal(t, domain.SeverityWarning, report.Alerts[0].Severity)
	assert.Equal(t, 3, report.Alerts[0].DaysUntilDue)
}

func TestDaysUntil_RoundsUp(t *testing.T) {
	due := day(2024, time.September, 15)
	assert.Equal(t, 10, daysUntil(due, day(2024, time.September, 5)))
	assert.Equal(t, 10, daysUntil(due, day(2024, time.September, 5).Add(6*time.Hour)))
	assert.Equal(t, 0, daysUntil(due, due))
	assert.Equal(t, -1, daysUntil(due, day(2024, time.September, 16)))
}
