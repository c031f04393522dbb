package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/itrgo/internal/output"
	"github.com/rgehrsitz/itrgo/internal/tui/components"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
	"github.com/rgehrsitz/itrgo/pkg/money"
)

// HomeModel is the dashboard: both regimes side by side, the recommendation
// and the settlement of the return.
type HomeModel struct {
	report *output.Report
	width  int
	height int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetReport replaces the report shown
func (m *HomeModel) SetReport(report *output.Report) {
	m.report = report
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update is a no-op; navigation is handled by the parent model
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	return m, nil
}

// View renders the dashboard
func (m *HomeModel) View() string {
	if m.report == nil || m.report.Comparison == nil {
		return tuistyles.BorderStyle.Render("Loading case...")
	}
	r := m.report
	c := r.Comparison

	var b strings.Builder
	header := fmt.Sprintf("Assessment Year %s", r.AssessmentYear)
	if r.Taxpayer.Name != "" {
		header = r.Taxpayer.Name + "  " + header
	}
	b.WriteString(tuistyles.TitleStyle.Render(header))
	b.WriteString("\n\n")

	cards := []*components.MetricCard{
		components.RegimeCard(c.Old, c.RecommendedRegime == c.Old.Regime),
		components.RegimeCard(c.New, c.RecommendedRegime == c.New.Regime),
		components.NewMetricCard("Savings", money.FormatINRWhole(c.AbsoluteSavings)).
			WithTrend(c.AbsoluteSavings.IsPositive(), money.FormatPercentage(c.SavingsPercentage)).
			WithDescription("with the " + string(c.RecommendedRegime) + " regime"),
	}
	breakEven := "not found"
	if c.BreakEvenIncome != nil {
		breakEven = money.FormatINRWhole(*c.BreakEvenIncome)
	}
	cards = append(cards, components.NewMetricCard("Break-even salary", breakEven).
		WithDescription("regimes cost the same"))

	columns := 4
	if m.width > 0 && m.width < 130 {
		columns = 2
	}
	b.WriteString(components.MetricGrid(cards, columns))
	b.WriteString("\n\n")

	if ret := r.Return; ret != nil && ret.Settlement != nil {
		s := ret.Settlement
		line := fmt.Sprintf("Return %s (%s, %s regime): paid %s, ", ret.Form, ret.Status, ret.Regime, money.FormatINRWhole(s.TotalTaxPaid))
		switch {
		case s.RefundDue.IsPositive():
			line += tuistyles.MetricPositiveStyle.Render("refund " + money.FormatINRWhole(s.RefundDue))
		case s.AdditionalTaxPayable.IsPositive():
			line += tuistyles.MetricNegativeStyle.Render("payable " + money.FormatINRWhole(s.AdditionalTaxPayable))
		default:
			line += "settled"
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if r.RegimeChoiceNote != "" {
		b.WriteString(tuistyles.WarningStyle.Render(r.RegimeChoiceNote))
		b.WriteString("\n")
	}

	if len(c.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Recommendations"))
		b.WriteString("\n")
		for _, rec := range c.Recommendations {
			b.WriteString("  • " + rec + "\n")
		}
	}
	return tuistyles.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}
