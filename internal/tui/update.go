package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeScenes()
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case tuimsg.ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tuimsg.ReportReadyMsg:
		m.loading = false
		m.err = nil
		m.c = msg.Case
		m.report = msg.Report
		m.homeModel.SetReport(msg.Report)
		m.compareModel.SetComparison(msg.Report.Comparison)
		m.scenariosModel.SetScenarios(msg.Report.Scenarios)
		m.optimizeModel.SetResults(msg.Report.Suggestions, msg.Report.BreakEven)
		m.complianceModel.SetReport(msg.Report.Compliance)
		m.parametersModel.SetCase(msg.Case)
		return m, nil

	case tuimsg.CaseEditedMsg:
		m.loading = true
		m.loadingMessage = "Recalculating..."
		return m, buildReportCmd(m.generator, msg.Case, m.asOf)

	case tuimsg.SaveCaseMsg:
		if m.c == nil {
			return m, nil
		}
		return m, saveCaseCmd(m.c, msg.Filename)

	case tuimsg.SaveCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.status = "Saved " + msg.Filename
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: scene} }
}

// handleKeyPress processes keyboard input. While an input on the edit scene
// has focus every key except ctrl+c goes to that input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.err != nil {
		m.err = nil
		return m, nil
	}
	if m.currentScene == SceneParameters && m.parametersModel.Editing() {
		return m.updateCurrentScene(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		if m.currentScene == SceneHome {
			return m, nil
		}
		target := SceneHome
		if m.previousScene != m.currentScene && m.previousScene != SceneHelp {
			target = m.previousScene
		}
		return m, navigate(target)

	case key.Matches(msg, keys.Save):
		filename := editedPath(m.casePath)
		return m, func() tea.Msg { return tuimsg.SaveCaseMsg{Filename: filename} }

	case key.Matches(msg, keys.Reload):
		m.loading = true
		m.loadingMessage = "Reloading " + m.casePath
		return m, loadCaseCmd(m.parser, m.generator, m.casePath, m.asOf)
	}

	for _, nav := range keys.navigation() {
		if key.Matches(msg, nav.binding) && nav.scene != m.currentScene {
			return m, navigate(nav.scene)
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	case SceneOptimize:
		m.optimizeModel, cmd = m.optimizeModel.Update(msg)
	case SceneCompliance:
		m.complianceModel, cmd = m.complianceModel.Update(msg)
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	}
	return m, cmd
}

func (m Model) resizeScenes() {
	h := m.height - 4
	m.homeModel.SetSize(m.width, h)
	m.compareModel.SetSize(m.width, h)
	m.scenariosModel.SetSize(m.width, h)
	m.optimizeModel.SetSize(m.width, h)
	m.complianceModel.SetSize(m.width, h)
	m.parametersModel.SetSize(m.width, h)
}
