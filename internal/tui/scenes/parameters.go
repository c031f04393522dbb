package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
	"github.com/rgehrsitz/itrgo/internal/tui/tuistyles"
	"github.com/rgehrsitz/itrgo/pkg/money"
)

// parameter is one editable amount on the case
type parameter struct {
	label string
	get   func(c *domain.Case) decimal.Decimal
	set   func(c *domain.Case, v decimal.Decimal)
}

func incomeParameter(label string, source domain.IncomeSource) parameter {
	return parameter{
		label: label,
		get:   func(c *domain.Case) decimal.Decimal { return c.Income.Amount(source) },
		set:   func(c *domain.Case, v decimal.Decimal) { c.Income = c.Income.WithAmount(source, v) },
	}
}

func deductionParameter(section domain.Section) parameter {
	return parameter{
		label: "Deduction " + string(section),
		get:   func(c *domain.Case) decimal.Decimal { return c.Deductions[section] },
		set: func(c *domain.Case, v decimal.Decimal) {
			if v.IsZero() {
				delete(c.Deductions, section)
				return
			}
			c.Deductions[section] = v
		},
	}
}

var parameters = []parameter{
	incomeParameter("Salary", domain.SourceSalary),
	incomeParameter("House property income", domain.SourceHouseProperty),
	incomeParameter("Business income", domain.SourceBusiness),
	incomeParameter("Other sources", domain.SourceOtherSources),
	deductionParameter(domain.Section80C),
	deductionParameter(domain.Section80D),
	deductionParameter(domain.SectionHouseProperty),
}

// ParametersModel edits the case's income and main deductions. Enter applies
// the values and asks the parent to rebuild the report.
type ParametersModel struct {
	c        *domain.Case
	inputs   []textinput.Model
	focused  int
	editing  bool
	err      error
	modified bool
	width    int
	height   int
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel() *ParametersModel {
	inputs := make([]textinput.Model, len(parameters))
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = "0"
		ti.CharLimit = 12
		ti.Width = 16
		ti.Cursor.SetMode(cursor.CursorStatic)
		inputs[i] = ti
	}
	return &ParametersModel{inputs: inputs}
}

// SetCase loads the case's current values into the inputs
func (m *ParametersModel) SetCase(c *domain.Case) {
	m.c = c
	for i, p := range parameters {
		m.inputs[i].SetValue(p.get(c).String())
	}
	m.err = nil
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Editing reports whether an input has focus, in which case global shortcuts
// must not consume keystrokes.
func (m *ParametersModel) Editing() bool {
	return m.editing
}

// Modified reports whether edits have been applied since the case was loaded
func (m *ParametersModel) Modified() bool {
	return m.modified
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if !m.editing {
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
			m.move(-1)
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
			m.move(1)
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter", "i"))):
			m.editing = true
			return m, m.inputs[m.focused].Focus()
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("esc"))):
		m.stopEditing()
		if m.c != nil {
			m.inputs[m.focused].SetValue(parameters[m.focused].get(m.c).String())
		}
		return m, nil
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("tab", "shift+tab"))):
		m.stopEditing()
		if keyMsg.String() == "tab" {
			m.move(1)
		} else {
			m.move(-1)
		}
		m.editing = true
		return m, m.inputs[m.focused].Focus()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		m.stopEditing()
		return m, m.apply()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *ParametersModel) move(delta int) {
	m.focused = (m.focused + delta + len(m.inputs)) % len(m.inputs)
}

func (m *ParametersModel) stopEditing() {
	m.editing = false
	m.inputs[m.focused].Blur()
}

// apply validates every input and, when they all parse, emits an edited copy
// of the case. The loaded case is never mutated.
func (m *ParametersModel) apply() tea.Cmd {
	if m.c == nil {
		return nil
	}
	edited := *m.c
	edited.Deductions = m.c.Deductions.Clone()

	for i, p := range parameters {
		raw := strings.ReplaceAll(strings.TrimSpace(m.inputs[i].Value()), ",", "")
		if raw == "" {
			raw = "0"
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			m.err = fmt.Errorf("%s: %q is not a number", p.label, m.inputs[i].Value())
			return nil
		}
		if err := domain.ValidateAmount(p.label, v); err != nil {
			m.err = err
			return nil
		}
		p.set(&edited, v)
	}
	m.err = nil
	m.modified = true
	return func() tea.Msg { return tuimsg.CaseEditedMsg{Case: &edited} }
}

// View renders the inputs
func (m *ParametersModel) View() string {
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Edit case"))
	b.WriteString("\n\n")
	for i, p := range parameters {
		label := fmt.Sprintf("%-24s", p.label)
		if i == m.focused {
			label = tuistyles.SelectedItemStyle.Render("▸ " + label)
		} else {
			label = tuistyles.UnselectedItemStyle.Render("  " + label)
		}
		b.WriteString(label + " " + m.inputs[i].View())
		if m.c != nil && !(m.editing && i == m.focused) {
			b.WriteString(tuistyles.HelpDescStyle.Render("  " + money.FormatINRWhole(p.get(m.c))))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(tuistyles.ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if m.editing {
		b.WriteString(tuistyles.HelpDescStyle.Render("enter apply • tab next field • esc cancel"))
	} else {
		b.WriteString(tuistyles.HelpDescStyle.Render("↑/↓ choose • enter edit • ctrl+s save case"))
	}
	return tuistyles.BorderStyle.Render(b.String())
}
