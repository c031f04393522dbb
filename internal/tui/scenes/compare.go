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

// CompareModel shows how each regime arrives at its liability: deductions,
// the slab-by-slab tax, cess and rebate.
type CompareModel struct {
	comparison *domain.RegimeComparison
	focused    int // 0 old, 1 new
	width      int
	height     int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetComparison replaces the comparison shown
func (m *CompareModel) SetComparison(c *domain.RegimeComparison) {
	m.comparison = c
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focused returns the regime whose column is highlighted
func (m *CompareModel) Focused() domain.RegimeID {
	if m.focused == 0 {
		return domain.RegimeOld
	}
	return domain.RegimeNew
}

// Update moves the highlight between the two regimes
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("left", "tab"))) && m.focused == 1:
			m.focused = 0
		case key.Matches(msg, key.NewBinding(key.WithKeys("right", "tab"))) && m.focused == 0:
			m.focused = 1
		}
	}
	return m, nil
}

// View renders both regimes in columns
func (m *CompareModel) View() string {
	if m.comparison == nil {
		return tuistyles.BorderStyle.Render("No comparison yet")
	}
	width := 48
	if m.width > 0 && m.width/2-4 < width {
		width = max(30, m.width/2-4)
	}
	left := m.column(m.comparison.Old, m.focused == 0, width)
	right := m.column(m.comparison.New, m.focused == 1, width)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m *CompareModel) column(r *domain.TaxComputationResult, focused bool, width int) string {
	var b strings.Builder
	title := strings.ToUpper(string(r.Regime)) + " REGIME"
	if m.comparison.RecommendedRegime == r.Regime {
		title += "  ✓ recommended"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.RegimeColor(string(r.Regime))).Render(title))
	b.WriteString("\n\n")

	row := func(label string, amount string) {
		fmt.Fprintf(&b, "%-20s %14s\n", label, amount)
	}
	row("Gross income", money.FormatINRWhole(r.GrossTotalIncome))
	row("Standard deduction", money.FormatINRWhole(r.StandardDeduction))
	for _, s := range r.ResolvedDeductions.Sections() {
		row("  "+string(s), money.FormatINRWhole(r.ResolvedDeductions[s]))
	}
	if len(r.DisallowedSections) > 0 {
		names := make([]string, len(r.DisallowedSections))
		for i, s := range r.DisallowedSections {
			names[i] = string(s)
		}
		b.WriteString(tuistyles.WarningStyle.Render("  not allowed: "+strings.Join(names, ", ")) + "\n")
	}
	row("Taxable income", money.FormatINRWhole(r.TaxableIncome))
	b.WriteString("\n")

	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-22s %6s %12s", "Slab", "Rate", "Tax")))
	b.WriteString("\n")
	for _, slab := range r.SlabBreakdown {
		line := fmt.Sprintf("%-22s %6s %12s", slabLabel(slab), money.FormatRate(slab.Rate), money.FormatINRWhole(slab.TaxAmount))
		if slab.TaxableAmount.IsPositive() {
			b.WriteString(tuistyles.TableCellStyle.Render(line))
		} else {
			b.WriteString(tuistyles.HelpDescStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	row("Tax before cess", money.FormatINRWhole(r.TaxBeforeCess))
	row("Cess", money.FormatINRWhole(r.CessAmount))
	if r.RebateApplied.IsPositive() {
		row("Rebate 87A", "-"+money.FormatINRWhole(r.RebateApplied))
	}
	b.WriteString(tuistyles.TableHighlightStyle.Render(fmt.Sprintf("%-20s %14s", "Net liability", money.FormatINRWhole(r.NetTaxLiability))))
	b.WriteString("\n")
	row("Marginal rate", money.FormatRate(r.MarginalTaxRate))

	style := tuistyles.BorderStyle
	if focused {
		style = tuistyles.ActiveBorderStyle
	}
	return style.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func slabLabel(slab domain.SlabTax) string {
	if slab.Max == nil {
		return "above " + money.Short(slab.Min)
	}
	return money.Short(slab.Min) + " - " + money.Short(*slab.Max)
}
