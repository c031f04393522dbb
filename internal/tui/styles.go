package tui

import "github.com/rgehrsitz/itrgo/internal/tui/tuistyles"

// Styles used by the frame around the scenes
var (
	TitleStyle     = tuistyles.TitleStyle
	SubtitleStyle  = tuistyles.SubtitleStyle
	StatusBarStyle = tuistyles.StatusBarStyle
	StatusKeyStyle = tuistyles.StatusKeyStyle
	BorderStyle    = tuistyles.BorderStyle
	HelpKeyStyle   = tuistyles.HelpKeyStyle
	HelpDescStyle  = tuistyles.HelpDescStyle
	ErrorStyle     = tuistyles.ErrorStyle
	InfoStyle      = tuistyles.InfoStyle
)
