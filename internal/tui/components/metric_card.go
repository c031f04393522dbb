package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
	"github.com/rgehrsitz/itrgo/pkg/money"
)

// MetricCard displays one figure with a label and optional trend and note
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
	Highlight   bool
}

// Trend is a change shown under the value, e.g. "▲ ₹35,100"
type Trend struct {
	IsPositive bool
	Change     string
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 30,
	}
}

// RegimeCard summarises one regime's computation. The recommended regime
// gets a highlighted border.
func RegimeCard(result *domain.TaxComputationResult, recommended bool) *MetricCard {
	card := NewMetricCard(strings.ToUpper(string(result.Regime))+" regime", money.FormatINRWhole(result.NetTaxLiability)).
		WithDescription(fmt.Sprintf("taxable %s, effective %s",
			money.Short(result.TaxableIncome), money.FormatRate(result.EffectiveTaxRate)))
	card.Highlight = recommended
	return card
}

// WithTrend adds a trend indicator to the metric card
func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{IsPositive: isPositive, Change: change}
	return m
}

// WithDescription adds a note under the value
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) body(sep string) string {
	var trend string
	if m.Trend != nil {
		style := tuistyles.MetricTrendStyle(m.Trend.IsPositive)
		trend = sep + style.Render(tuistyles.TrendIndicator(m.Trend.IsPositive)+" "+m.Trend.Change)
	}
	return tuistyles.MetricValueStyle.Render(m.Value) + trend
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + m.body("\n")
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	border := tuistyles.ColorBorder
	if m.Highlight {
		border = tuistyles.ColorSecondary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns a single unbordered line
func (m *MetricCard) RenderCompact() string {
	return tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + m.body(" ")
}

// MetricGrid lays cards out in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
