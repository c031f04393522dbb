// Package tuistyles holds the colour palette and lipgloss styles shared by the
// TUI scenes and components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itrgo/pkg/money"
)

var (
	ColorPrimary   = lipgloss.Color("#FF9933")
	ColorSecondary = lipgloss.Color("#138808")
	ColorAccent    = lipgloss.Color("#5B8DEF")
	ColorSuccess   = lipgloss.Color("#2ECC71")
	ColorWarning   = lipgloss.Color("#F1C40F")
	ColorDanger    = lipgloss.Color("#E74C3C")
	ColorInfo      = lipgloss.Color("#3498DB")

	ColorForeground = lipgloss.Color("#ECECEC")
	ColorMuted      = lipgloss.Color("#8A8A8A")
	ColorBorder     = lipgloss.Color("#4A4A4A")

	// Old regime is drawn in saffron, new regime in green
	ColorOldRegime = ColorPrimary
	ColorNewRegime = ColorSecondary
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(lipgloss.Color("#303030")).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	HelpKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder)

	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
)

// MetricTrendStyle picks the colour of a change indicator
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns the arrow shown next to a change
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders a whole-rupee amount with Indian grouping
func FormatCurrency(amount decimal.Decimal) string {
	return money.FormatINRWhole(amount)
}

// RegimeColor returns the colour used for a regime ID
func RegimeColor(id string) lipgloss.Color {
	if id == "old" {
		return ColorOldRegime
	}
	return ColorNewRegime
}
