package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/adtyap26/ddsgen/internal/config"
	"github.com/adtyap26/ddsgen/internal/output"
	"github.com/adtyap26/ddsgen/internal/placement"
)

// Stage defines the current view/state of the wizard.
type Stage int

const (
	AskParams Stage = iota
	ShowPlan
	ShowWritten
	ShowError // A write failed
)

// Options configures the wizard. Defaults prefill the input fields.
type Options struct {
	Fs        afero.Fs
	Template  string // Template text, already loaded
	OutputDir string
	Seed      uint64
	Defaults  config.DeploymentConfig
}

// Model holds the state for the TUI application. Exported for use by the CLI.
type Model struct {
	stage         Stage
	opts          Options
	inputs        []textinput.Model
	focused       int
	err           error // Validation or write error
	width, height int   // Terminal size

	// Parameters gathered from the inputs
	cfg  config.DeploymentConfig
	seed uint64

	// Results
	plan     *placement.Plan
	manifest *output.Manifest
}

// NewModel creates the initial state of the wizard, with the input fields
// prefilled from opts.Defaults.
func NewModel(opts Options) Model {
	if opts.OutputDir == "" {
		opts.OutputDir = output.DefaultDir
	}
	m := Model{
		stage: AskParams,
		opts:  opts,
		seed:  opts.Seed,
	}
	m.setupInputs(opts.Defaults)
	return m
}

// Init initializes the TUI model. Required by Bubble Tea.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Stage reports which screen the wizard is on.
func (m Model) Stage() Stage { return m.stage }

// Plan returns the previewed allocation, if one was built.
func (m Model) Plan() *placement.Plan { return m.plan }
