package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/components"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
	"github.com/rgehrsitz/itrgo/pkg/money"
)

var one = decimal.NewFromInt(1)

// ScenariosModel browses the income projection: a table of multipliers and a
// chart of both regimes' liability.
type ScenariosModel struct {
	scenarios     []domain.ScenarioResult
	selectedIndex int
	width         int
	height        int
}

// NewScenariosModel creates a new scenarios scene model
func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{}
}

// SetScenarios replaces the projection. The selection moves to the 1x row
// when there is one.
func (m *ScenariosModel) SetScenarios(scenarios []domain.ScenarioResult) {
	m.scenarios = scenarios
	m.selectedIndex = 0
	for i, s := range scenarios {
		if s.Multiplier.Equal(one) {
			m.selectedIndex = i
			break
		}
	}
}

// SetSize updates the scene dimensions
func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the highlighted scenario, or nil when there are none
func (m *ScenariosModel) Selected() *domain.ScenarioResult {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.scenarios) {
		return &m.scenarios[m.selectedIndex]
	}
	return nil
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.scenarios)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g"))):
		m.selectedIndex = 0
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("G"))):
		m.selectedIndex = max(0, len(m.scenarios)-1)
	}
	return m, nil
}

// View renders the table, the selected row's detail and the chart
func (m *ScenariosModel) View() string {
	if len(m.scenarios) == 0 {
		return tuistyles.BorderStyle.Render("No scenarios projected")
	}

	var table strings.Builder
	table.WriteString(tuistyles.TableHeaderStyle.Render(
		fmt.Sprintf("  %-6s %14s %12s %12s %6s", "x", "Income", "Old", "New", "Best")))
	table.WriteString("\n")
	for i, s := range m.scenarios {
		line := fmt.Sprintf("%-6s %14s %12s %12s %6s",
			s.Multiplier.String()+"x",
			money.FormatINRWhole(s.Income),
			money.Short(s.OldRegimeTax),
			money.Short(s.NewRegimeTax),
			s.BestRegime)
		if i == m.selectedIndex {
			table.WriteString(tuistyles.SelectedItemStyle.Render("▸ " + line))
		} else {
			table.WriteString(tuistyles.UnselectedItemStyle.Render("  " + line))
		}
		table.WriteString("\n")
	}

	if s := m.Selected(); s != nil {
		table.WriteString("\n")
		table.WriteString(fmt.Sprintf("At %s the %s regime saves %s",
			money.FormatINRWhole(s.Income), s.BestRegime, money.FormatINRWhole(s.Savings)))
	}

	chartWidth := 60
	if m.width > 0 {
		chartWidth = max(30, m.width-64)
	}
	chart := components.ScenarioChart(m.scenarios).WithSize(chartWidth, 12).Render()

	return lipgloss.JoinHorizontal(lipgloss.Top,
		tuistyles.BorderStyle.Render(table.String()),
		tuistyles.BorderStyle.Render(chart))
}
