// Package tuimsg defines the messages exchanged between the TUI model and its
// scenes.
package tuimsg

import (
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/output"
)

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ReportReadyMsg carries a freshly built report for the case it was built from
type ReportReadyMsg struct {
	Case   *domain.Case
	Report *output.Report
}

// CaseEditedMsg asks for the report to be rebuilt from edited inputs
type CaseEditedMsg struct {
	Case *domain.Case
}

// SaveCaseMsg asks for the current case to be written to disk
type SaveCaseMsg struct {
	Filename string
}

// SaveCompleteMsg signals a save operation has finished
type SaveCompleteMsg struct {
	Filename string
	Err      error
}
