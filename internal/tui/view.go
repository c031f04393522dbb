package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneScenarios:
		content = m.scenariosModel.View()
	case SceneOptimize:
		content = m.optimizeModel.View()
	case SceneCompliance:
		content = m.complianceModel.View()
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with the title bar and status bar
func (m Model) renderApp(content string) string {
	body := lipgloss.NewStyle().Height(max(1, m.height-4)).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTitleBar(), body, m.renderStatusBar())
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("ITRGO - Income Tax Regime Planner")
	crumb := m.currentScene.String()
	if m.report != nil {
		crumb = fmt.Sprintf("%s / AY %s (FY %s)", crumb, m.report.AssessmentYear, m.report.FinancialYear)
		if m.parametersModel.Modified() {
			crumb += " (edited)"
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

func (m Model) renderStatusBar() string {
	var shortcuts []string
	for _, b := range keys.statusBindings() {
		shortcuts = append(shortcuts, StatusKeyStyle.Render(b.Help().Key)+" "+b.Help().Desc)
	}
	text := strings.Join(shortcuts, " • ")
	if m.status != "" {
		spacer := strings.Repeat(" ", max(1, m.width-lipgloss.Width(text)-lipgloss.Width(m.status)-4))
		text += spacer + SubtitleStyle.Render(m.status)
	}
	return StatusBarStyle.Width(m.width).Render(text)
}

func renderHelp() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n\n")
	line := func(k, desc string) {
		b.WriteString(HelpKeyStyle.Render(fmt.Sprintf("  %-12s", k)))
		b.WriteString(HelpDescStyle.Render(desc))
		b.WriteString("\n")
	}
	for _, binding := range []key.Binding{keys.Home, keys.Compare, keys.Scenarios, keys.Optimize, keys.Compliance, keys.Edit} {
		line(strings.Join(binding.Keys(), "/"), binding.Help().Desc)
	}
	line("ctrl+s", "save the case, with edits, next to the loaded file")
	line("r", "reload the case file")
	line("esc", "back")
	line("q/ctrl+c", "quit")

	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("Within scenes"))
	b.WriteString("\n\n")
	line("tab ←/→", "compare: switch regime")
	line("↑/↓ g/G", "scenarios: move through multipliers")
	line("v", "optimize: show every salary tested for break-even")
	line("f", "compliance: hide obligations already met")
	line("enter", "edit: change the selected amount, enter again to recalculate")
	return BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}
