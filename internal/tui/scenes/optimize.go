package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
	"github.com/rgehrsitz/itrgo/pkg/money"
)

// OptimizeModel lists old-regime deduction headroom and the break-even search
type OptimizeModel struct {
	suggestions []domain.DeductionSuggestion
	breakEven   *breakeven.Result
	selected    int
	showScan    bool
	width       int
	height      int
}

// NewOptimizeModel creates a new optimize scene model
func NewOptimizeModel() *OptimizeModel {
	return &OptimizeModel{}
}

// SetResults replaces the suggestions and break-even result shown
func (m *OptimizeModel) SetResults(suggestions []domain.DeductionSuggestion, result *breakeven.Result) {
	m.suggestions = suggestions
	m.breakEven = result
	if m.selected >= len(suggestions) {
		m.selected = 0
	}
}

// SetSize updates the model dimensions
func (m *OptimizeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update moves through the suggestions and toggles the scan table
func (m *OptimizeModel) Update(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.selected < len(m.suggestions)-1 {
				m.selected++
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("v"))):
			m.showScan = !m.showScan
		}
	}
	return m, nil
}

// View renders the scene
func (m *OptimizeModel) View() string {
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Deduction headroom (old regime)"))
	b.WriteString("\n\n")
	if len(m.suggestions) == 0 {
		b.WriteString(tuistyles.InfoStyle.Render("Every capped section is already claimed in full, or filling it saves no tax."))
		b.WriteString("\n")
	}
	for i, s := range m.suggestions {
		line := fmt.Sprintf("%-16s claim %s more, saves %s", s.Section, money.FormatINRWhole(s.AdditionalRoom), money.FormatINRWhole(s.TaxSaving))
		if i == m.selected {
			b.WriteString(tuistyles.SelectedItemStyle.Render("▸ " + line))
			b.WriteString("\n")
			b.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("    %s: %s of %s claimed, priority %d",
				s.Description, money.FormatINRWhole(s.CurrentAmount), money.FormatINRWhole(s.Cap), s.Priority)))
		} else {
			b.WriteString(tuistyles.UnselectedItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tuistyles.TitleStyle.Render("Break-even salary"))
	b.WriteString("\n\n")
	b.WriteString(m.renderBreakEven())
	return tuistyles.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *OptimizeModel) renderBreakEven() string {
	r := m.breakEven
	if r == nil {
		return tuistyles.InfoStyle.Render("Not computed")
	}

	var b strings.Builder
	if r.Converged && r.Income != nil {
		b.WriteString(tuistyles.MetricPositiveStyle.Render("Both regimes cost about the same at " + money.FormatINRWhole(*r.Income)))
	} else {
		b.WriteString(tuistyles.WarningStyle.Render("No break-even found"))
	}
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render(r.ConvergenceInfo))
	b.WriteString("\n")

	if !m.showScan {
		if len(r.Scan) > 0 {
			b.WriteString(tuistyles.HelpDescStyle.Render("press v to show every salary tested"))
		}
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%14s %12s %12s %12s", "Salary", "Old", "New", "Old - New")))
	b.WriteString("\n")
	for _, p := range r.Scan {
		line := fmt.Sprintf("%14s %12s %12s %12s", money.FormatINRWhole(p.Income), money.FormatINRWhole(p.OldTax),
			money.FormatINRWhole(p.NewTax), money.FormatINRWhole(p.Difference))
		if p.Skipped {
			line = tuistyles.HelpDescStyle.Render(line + "  skipped")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
