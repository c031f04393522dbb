package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/output"
	"github.com/rgehrsitz/itrgo/internal/regime"
	"github.com/rgehrsitz/itrgo/internal/tui/scenes"
	"github.com/rgehrsitz/itrgo/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	casePath  string
	asOf      time.Time
	parser    *config.InputParser
	generator *output.ReportGenerator

	c      *domain.Case
	report *output.Report

	homeModel       *scenes.HomeModel
	compareModel    *scenes.CompareModel
	scenariosModel  *scenes.ScenariosModel
	optimizeModel   *scenes.OptimizeModel
	complianceModel *scenes.ComplianceModel
	parametersModel *scenes.ParametersModel

	err            error
	loading        bool
	loadingMessage string
	status         string
}

// NewModel creates the application model for a case file. Compliance is
// evaluated as of asOf.
func NewModel(casePath string, registry *regime.Registry, asOf time.Time, logger calculation.Logger) Model {
	generator := output.NewReportGenerator(registry)
	generator.SetLogger(logger)
	return Model{
		currentScene:    SceneHome,
		casePath:        casePath,
		asOf:            asOf,
		parser:          config.NewInputParser(registry),
		generator:       generator,
		homeModel:       scenes.NewHomeModel(),
		compareModel:    scenes.NewCompareModel(),
		scenariosModel:  scenes.NewScenariosModel(),
		optimizeModel:   scenes.NewOptimizeModel(),
		complianceModel: scenes.NewComplianceModel(),
		parametersModel: scenes.NewParametersModel(),
		width:           80,
		height:          24,
		loading:         true,
		loadingMessage:  "Loading " + casePath,
	}
}

// Init loads the case file
func (m Model) Init() tea.Cmd {
	return loadCaseCmd(m.parser, m.generator, m.casePath, m.asOf)
}

// Case returns the case currently shown, including applied edits
func (m Model) Case() *domain.Case {
	return m.c
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

func loadCaseCmd(parser *config.InputParser, generator *output.ReportGenerator, path string, asOf time.Time) tea.Cmd {
	return func() tea.Msg {
		c, err := parser.LoadFromFile(path)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return buildReport(generator, c, asOf)
	}
}

func buildReportCmd(generator *output.ReportGenerator, c *domain.Case, asOf time.Time) tea.Cmd {
	return func() tea.Msg {
		if err := c.Validate(); err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return buildReport(generator, c, asOf)
	}
}

func buildReport(generator *output.ReportGenerator, c *domain.Case, asOf time.Time) tea.Msg {
	report, err := generator.Build(c, asOf)
	if err != nil {
		return tuimsg.ErrorMsg{Err: fmt.Errorf("failed to build report: %w", err)}
	}
	return tuimsg.ReportReadyMsg{Case: c, Report: report}
}

func saveCaseCmd(c *domain.Case, filename string) tea.Cmd {
	return func() tea.Msg {
		return tuimsg.SaveCompleteMsg{Filename: filename, Err: output.SaveCase(c, filename)}
	}
}

// editedPath is where edits are saved: next to the loaded file, which is
// never overwritten.
func editedPath(casePath string) string {
	ext := filepath.Ext(casePath)
	return strings.TrimSuffix(casePath, ext) + "-edited.yaml"
}
