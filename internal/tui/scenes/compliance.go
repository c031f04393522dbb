package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
	"github.com/rgehrsitz/itrgo/pkg/money"
)

// ComplianceModel shows deadline statuses, alerts and the compliance score
type ComplianceModel struct {
	report      *domain.ComplianceReport
	pendingOnly bool
	width       int
	height      int
}

// NewComplianceModel creates a new compliance scene model
func NewComplianceModel() *ComplianceModel {
	return &ComplianceModel{}
}

// SetReport replaces the compliance report shown
func (m *ComplianceModel) SetReport(report *domain.ComplianceReport) {
	m.report = report
}

// SetSize updates the model dimensions
func (m *ComplianceModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update toggles hiding obligations that are already met
func (m *ComplianceModel) Update(msg tea.Msg) (*ComplianceModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, key.NewBinding(key.WithKeys("f"))) {
		m.pendingOnly = !m.pendingOnly
	}
	return m, nil
}

// View renders the scene
func (m *ComplianceModel) View() string {
	if m.report == nil {
		return tuistyles.BorderStyle.Render("No compliance report")
	}
	r := m.report

	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render(fmt.Sprintf("Compliance as of %s", r.AsOf.Format("2 Jan 2006"))))
	b.WriteString("   ")
	b.WriteString(scoreStyle(r.Score).Render(fmt.Sprintf("score %d/100", r.Score)))
	b.WriteString("\n\n")

	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-9s %-42s %-8s %-10s %10s", "Status", "Obligation", "AY", "Due", "Penalty")))
	b.WriteString("\n")
	shown := 0
	for _, s := range r.Statuses {
		if m.pendingOnly && s.Satisfied {
			continue
		}
		shown++
		penalty := ""
		if s.PenaltyAmount.IsPositive() {
			penalty = money.FormatINRWhole(s.PenaltyAmount)
		}
		line := fmt.Sprintf("%-9s %-42s %-8s %-10s %10s", statusText(s), s.Name, s.AssessmentYear, s.DueDate.Format("2006-01-02"), penalty)
		b.WriteString(statusStyle(s).Render(line))
		b.WriteString("\n")
	}
	if shown == 0 {
		b.WriteString(tuistyles.InfoStyle.Render("Nothing outstanding"))
		b.WriteString("\n")
	}
	if r.TotalPenalty.IsPositive() {
		b.WriteString(tuistyles.ErrorStyle.Render("Total penalty exposure " + money.FormatINRWhole(r.TotalPenalty)))
		b.WriteString("\n")
	}

	if len(r.Alerts) > 0 {
		b.WriteString("\n")
		for _, a := range r.Alerts {
			b.WriteString(severityStyle(a.Severity).Render(fmt.Sprintf("[%s] %s", strings.ToUpper(string(a.Severity)), a.Message)))
			b.WriteString("\n")
		}
	}
	if len(r.Recommendations) > 0 {
		b.WriteString("\n")
		for _, rec := range r.Recommendations {
			b.WriteString("  • " + rec + "\n")
		}
	}
	return tuistyles.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func statusText(s domain.ComplianceStatus) string {
	if s.Satisfied {
		return "done"
	}
	return strings.ReplaceAll(string(s.Status), "_", " ")
}

func statusStyle(s domain.ComplianceStatus) lipgloss.Style {
	switch {
	case s.Satisfied:
		return tuistyles.HelpDescStyle
	case s.Status == domain.StatusOverdue:
		return tuistyles.ErrorStyle
	case s.Status == domain.StatusDueSoon:
		return tuistyles.WarningStyle
	}
	return tuistyles.TableCellStyle
}

func severityStyle(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeverityError:
		return tuistyles.ErrorStyle
	case domain.SeverityWarning:
		return tuistyles.WarningStyle
	}
	return tuistyles.InfoStyle
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return tuistyles.MetricPositiveStyle
	case score >= 50:
		return tuistyles.WarningStyle
	}
	return tuistyles.MetricNegativeStyle
}
