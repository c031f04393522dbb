package tui

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneCompare
	SceneScenarios
	SceneOptimize
	SceneCompliance
	SceneParameters
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneCompare:
		return "Compare"
	case SceneScenarios:
		return "Scenarios"
	case SceneOptimize:
		return "Optimize"
	case SceneCompliance:
		return "Compliance"
	case SceneParameters:
		return "Edit"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// statusMsg shows a transient line in the status bar
type statusMsg string
