package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
)

const yAxisWidth = 10

// DataSeries is one line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart plots one or more series on a character grid
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string
	Width      int
	Height     int
	ShowLegend bool
}

// NewASCIIChart creates an empty chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

// ScenarioChart plots old and new regime liability against the income
// multipliers of a projection.
func ScenarioChart(scenarios []domain.ScenarioResult) *ASCIIChart {
	oldTax := make([]float64, len(scenarios))
	newTax := make([]float64, len(scenarios))
	labels := make([]string, len(scenarios))
	for i, s := range scenarios {
		oldTax[i] = s.OldRegimeTax.InexactFloat64()
		newTax[i] = s.NewRegimeTax.InexactFloat64()
		labels[i] = s.Multiplier.String() + "x"
	}
	return NewASCIIChart("Tax liability by income").
		AddSeries("Old regime", oldTax, tuistyles.ColorOldRegime).
		AddSeries("New regime", newTax, tuistyles.ColorNewRegime).
		WithLabels(labels)
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// Render returns the chart as a multi-line string
func (c *ASCIIChart) Render() string {
	if c.empty() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(tuistyles.TitleStyle.Render(c.Title))
		b.WriteString("\n\n")
	}
	lo, hi := c.bounds()
	b.WriteString(c.renderGrid(lo, hi))
	if c.ShowLegend && len(c.Series) > 1 {
		b.WriteString("\n")
		b.WriteString(c.renderLegend())
	}
	return b.String()
}

func (c *ASCIIChart) empty() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// bounds returns the plotted range. Tax never goes below zero, so the axis
// starts at zero and a flat series still gets a visible range.
func (c *ASCIIChart) bounds() (float64, float64) {
	hi := 0.0
	for _, s := range c.Series {
		for _, p := range s.Points {
			hi = math.Max(hi, p)
		}
	}
	if hi == 0 {
		hi = 1
	}
	return 0, hi * 1.05
}

func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	chartWidth := c.Width - yAxisWidth - 3
	if chartWidth < 2 || c.Height < 2 {
		return ""
	}

	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", chartWidth))
	}

	for idx, s := range c.Series {
		char := seriesChar(idx)
		prevX, prevY := -1, -1
		for i, p := range s.Points {
			x := 0
			if len(s.Points) > 1 {
				x = int(float64(i) / float64(len(s.Points)-1) * float64(chartWidth-1))
			}
			y := c.Height - 1 - int((p-lo)/(hi-lo)*float64(c.Height-1))
			if prevX >= 0 {
				drawLine(grid, prevX, prevY, x, y, char)
			}
			if y >= 0 && y < c.Height {
				grid[y][x] = char
			}
			prevX, prevY = x, y
		}
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	var b strings.Builder
	for i, row := range grid {
		value := hi - float64(i)/float64(c.Height-1)*(hi-lo)
		b.WriteString(axis.Render(formatChartValue(value)))
		b.WriteString(" │ ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth))
	b.WriteString(" └")
	b.WriteString(strings.Repeat("─", chartWidth+1))
	b.WriteString("\n")
	if len(c.Labels) > 0 {
		b.WriteString(c.renderXAxisLabels(chartWidth))
		b.WriteString("\n")
	}
	return b.String()
}

// renderXAxisLabels places each label under its point, dropping labels that
// would overlap the previous one.
func (c *ASCIIChart) renderXAxisLabels(chartWidth int) string {
	line := []rune(strings.Repeat(" ", chartWidth+len(c.Labels[len(c.Labels)-1])))
	next := 0
	for i, label := range c.Labels {
		x := 0
		if len(c.Labels) > 1 {
			x = int(float64(i) / float64(len(c.Labels)-1) * float64(chartWidth-1))
		}
		if x < next {
			continue
		}
		copy(line[x:], []rune(label))
		next = x + len([]rune(label)) + 1
	}
	return strings.Repeat(" ", yAxisWidth+3) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.TrimRight(string(line), " "))
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))
		items = append(items, fmt.Sprintf("%s %s", symbol, s.Name))
	}
	return tuistyles.HelpDescStyle.Render("Legend: ") + strings.Join(items, " • ")
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine joins two grid cells with Bresenham's algorithm, leaving
// already-plotted cells alone.
func drawLine(grid [][]rune, x0, y0, x1, y1 int, char rune) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for x, y := x0, y0; ; {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			grid[y][x] = '·'
		}
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// formatChartValue labels the Y axis in crore, lakh or thousands of rupees
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1e7:
		return fmt.Sprintf("₹%.1fCr", value/1e7)
	case math.Abs(value) >= 1e5:
		return fmt.Sprintf("₹%.1fL", value/1e5)
	case math.Abs(value) >= 1e3:
		return fmt.Sprintf("₹%.0fK", value/1e3)
	}
	return fmt.Sprintf("₹%.0f", value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
