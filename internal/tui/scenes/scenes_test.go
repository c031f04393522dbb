package scenes

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/output"
	"github.com/rgehrsitz/itrgo/internal/regime"
	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
)

var asOf = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func testCase() *domain.Case {
	return &domain.Case{
		AssessmentYear: "2024-25",
		Taxpayer:       domain.Profile{Name: "Asha Rao", EntityType: domain.EntityIndividual},
		Income:         domain.IncomeProfile{Salary: decimal.NewFromInt(1200000)},
		Deductions:     domain.DeductionSet{domain.Section80C: decimal.NewFromInt(150000)},
		Payments:       domain.Payments{TDSDeducted: decimal.NewFromInt(60000)},
	}
}

func testReport(t *testing.T) *output.Report {
	t.Helper()
	registry, err := regime.Default()
	require.NoError(t, err)
	report, err := output.NewReportGenerator(registry).Build(testCase(), asOf)
	require.NoError(t, err)
	return report
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHomeModel_View(t *testing.T) {
	m := NewHomeModel()
	assert.Contains(t, m.View(), "Loading case")

	m.SetReport(testReport(t))
	m.SetSize(160, 40)
	view := m.View()
	assert.Contains(t, view, "Asha Rao")
	assert.Contains(t, view, "OLD regime")
	assert.Contains(t, view, "NEW regime")
	assert.Contains(t, view, "₹35,100")
	assert.Contains(t, view, "Recommendations")
}

func TestCompareModel(t *testing.T) {
	m := NewCompareModel()
	assert.Contains(t, m.View(), "No comparison yet")

	m.SetComparison(testReport(t).Comparison)
	assert.Equal(t, domain.RegimeOld, m.Focused())
	m, _ = m.Update(keyPress("tab"))
	assert.Equal(t, domain.RegimeNew, m.Focused())
	m, _ = m.Update(keyPress("tab"))
	assert.Equal(t, domain.RegimeOld, m.Focused())

	view := m.View()
	assert.Contains(t, view, "OLD REGIME")
	assert.Contains(t, view, "NEW REGIME  ✓ recommended")
	assert.Contains(t, view, "not allowed: 80C")
	assert.Contains(t, view, "₹81,900")
}

func TestScenariosModel(t *testing.T) {
	m := NewScenariosModel()
	assert.Nil(t, m.Selected())
	assert.Contains(t, m.View(), "No scenarios projected")

	report := testReport(t)
	m.SetScenarios(report.Scenarios)
	require.NotNil(t, m.Selected())
	assert.True(t, m.Selected().Multiplier.Equal(decimal.NewFromInt(1)))

	m, _ = m.Update(keyPress("g"))
	assert.True(t, m.Selected().Multiplier.Equal(decimal.RequireFromString("0.5")))
	m, _ = m.Update(keyPress("up"))
	assert.True(t, m.Selected().Multiplier.Equal(decimal.RequireFromString("0.5")))
	m, _ = m.Update(keyPress("G"))
	assert.True(t, m.Selected().Multiplier.Equal(decimal.NewFromInt(3)))

	assert.Contains(t, m.View(), "Tax liability by income")
}

func TestOptimizeModel(t *testing.T) {
	m := NewOptimizeModel()
	assert.Contains(t, m.View(), "Not computed")

	report := testReport(t)
	m.SetResults(report.Suggestions, report.BreakEven)
	view := m.View()
	assert.Contains(t, view, "Deduction headroom")
	assert.Contains(t, view, "80D")

	m.SetResults(nil, &breakeven.Result{ConvergenceInfo: "no crossing within 50 levels"})
	view = m.View()
	assert.Contains(t, view, "Every capped section is already claimed")
	assert.Contains(t, view, "No break-even found")
}

func TestComplianceModel(t *testing.T) {
	m := NewComplianceModel()
	assert.Contains(t, m.View(), "No compliance report")

	report := &domain.ComplianceReport{
		AsOf:  asOf,
		Score: 40,
		Statuses: []domain.ComplianceStatus{
			{RuleID: "itr_filing", Name: "Income tax return filing", AssessmentYear: "2024-25",
				DueDate: asOf, Status: domain.StatusOverdue, PenaltyAmount: decimal.NewFromInt(5000)},
			{RuleID: "tds_q1", Name: "TDS return Q1", AssessmentYear: "2024-25",
				DueDate: asOf, Status: domain.StatusCompliant, Satisfied: true},
		},
		Alerts:       []domain.Alert{{RuleID: "itr_filing", Severity: domain.SeverityError, Message: "ITR overdue"}},
		TotalPenalty: decimal.NewFromInt(5000),
	}
	m.SetReport(report)
	view := m.View()
	assert.Contains(t, view, "score 40/100")
	assert.Contains(t, view, "TDS return Q1")
	assert.Contains(t, view, "[ERROR] ITR overdue")
	assert.Contains(t, view, "₹5,000")

	m, _ = m.Update(keyPress("f"))
	assert.NotContains(t, m.View(), "TDS return Q1")
}

func TestParametersModel_Apply(t *testing.T) {
	c := testCase()
	m := NewParametersModel()
	m.SetCase(c)
	assert.False(t, m.Editing())

	m, _ = m.Update(keyPress("enter"))
	require.True(t, m.Editing())
	for range "1200000" {
		m, _ = m.Update(keyPress("backspace"))
	}
	for _, r := range "1500000" {
		m, _ = m.Update(keyPress(string(r)))
	}
	m, cmd := m.Update(keyPress("enter"))
	assert.False(t, m.Editing())
	assert.True(t, m.Modified())
	require.NotNil(t, cmd)

	msg, ok := cmd().(tuimsg.CaseEditedMsg)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(1500000).Equal(msg.Case.Income.Salary))
	assert.True(t, decimal.NewFromInt(150000).Equal(msg.Case.Deductions[domain.Section80C]))
	// the loaded case is untouched
	assert.True(t, decimal.NewFromInt(1200000).Equal(c.Income.Salary))
}

func TestParametersModel_InvalidInput(t *testing.T) {
	m := NewParametersModel()
	m.SetCase(testCase())

	m, _ = m.Update(keyPress("enter"))
	m, _ = m.Update(keyPress("x"))
	m, cmd := m.Update(keyPress("enter"))
	assert.Nil(t, cmd)
	assert.False(t, m.Modified())
	assert.Contains(t, m.View(), "is not a number")
}

func TestParametersModel_EscRestoresValue(t *testing.T) {
	m := NewParametersModel()
	m.SetCase(testCase())

	m, _ = m.Update(keyPress("enter"))
	m, _ = m.Update(keyPress("9"))
	m, _ = m.Update(keyPress("esc"))
	assert.False(t, m.Editing())
	assert.Equal(t, "1200000", m.inputs[0].Value())
}

func TestParametersModel_ZeroDeductionRemovesSection(t *testing.T) {
	c := testCase()
	m := NewParametersModel()
	m.SetCase(c)
	m.inputs[4].SetValue("0")

	cmd := m.apply()
	require.NotNil(t, cmd)
	msg := cmd().(tuimsg.CaseEditedMsg)
	_, present := msg.Case.Deductions[domain.Section80C]
	assert.False(t, present)
	_, present = c.Deductions[domain.Section80C]
	assert.True(t, present)
}
