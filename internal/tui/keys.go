package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Back       key.Binding
	Home       key.Binding
	Compare    key.Binding
	Scenarios  key.Binding
	Optimize   key.Binding
	Compliance key.Binding
	Edit       key.Binding
	Save       key.Binding
	Reload     key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Home:       key.NewBinding(key.WithKeys("h", "1"), key.WithHelp("h", "home")),
	Compare:    key.NewBinding(key.WithKeys("c", "2"), key.WithHelp("c", "compare")),
	Scenarios:  key.NewBinding(key.WithKeys("s", "3"), key.WithHelp("s", "scenarios")),
	Optimize:   key.NewBinding(key.WithKeys("o", "4"), key.WithHelp("o", "optimize")),
	Compliance: key.NewBinding(key.WithKeys("a", "5"), key.WithHelp("a", "compliance")),
	Edit:       key.NewBinding(key.WithKeys("e", "6"), key.WithHelp("e", "edit")),
	Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save case")),
	Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
}

// statusBindings are shown in the status bar, in order
func (k keyMap) statusBindings() []key.Binding {
	return []key.Binding{k.Home, k.Compare, k.Scenarios, k.Optimize, k.Compliance, k.Edit, k.Save, k.Help, k.Quit}
}

// navigation pairs each scene shortcut with its scene
func (k keyMap) navigation() []struct {
	binding key.Binding
	scene   Scene
} {
	return []struct {
		binding key.Binding
		scene   Scene
	}{
		{k.Home, SceneHome},
		{k.Compare, SceneCompare},
		{k.Scenarios, SceneScenarios},
		{k.Optimize, SceneOptimize},
		{k.Compliance, SceneCompliance},
		{k.Edit, SceneParameters},
		{k.Help, SceneHelp},
	}
}
