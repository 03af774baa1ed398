package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adtyap26/ddsgen/internal/generator"
	"github.com/adtyap26/ddsgen/internal/output"
	"github.com/adtyap26/ddsgen/internal/placement"
	"github.com/adtyap26/ddsgen/internal/topics"
)

// writtenMsg reports the outcome of writing the previewed plan.
type writtenMsg struct {
	manifest *output.Manifest
	err      error
}

// Update handles messages and updates the TUI model. Required by Bubble Tea.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case writtenMsg:
		if msg.err != nil {
			m.err = msg.err
			m.stage = ShowError
		} else {
			m.manifest = msg.manifest
			m.stage = ShowWritten
		}
		return m, nil

	case tea.KeyMsg:
		switch m.stage {
		// --- Parameter form ---
		case AskParams:
			switch msg.Type {
			case tea.KeyCtrlC, tea.KeyEsc:
				return m, tea.Quit

			case tea.KeyEnter:
				if m.focused == len(m.inputs)-1 {
					if err := m.parseAndValidateInputs(); err != nil {
						m.err = err
					} else {
						m.err = nil
						m.buildPlan()
					}
				} else {
					cmds = append(cmds, m.focus((m.focused+1)%len(m.inputs)))
				}
				// Keep Enter away from the text inputs
				return m, tea.Batch(cmds...)

			case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
				next := m.focused + 1
				if s := msg.String(); s == "up" || s == "shift+tab" {
					next = m.focused - 1
				}
				// Wrap focus around
				if next >= len(m.inputs) {
					next = 0
				} else if next < 0 {
					next = len(m.inputs) - 1
				}
				cmds = append(cmds, m.focus(next))
			}

		// --- Preview ---
		case ShowPlan:
			switch msg.String() {
			case "w":
				return m, m.writePlan()
			case "r":
				m.seed = topics.NewRand(m.seed).Uint64() // Derive the next seed
				m.buildPlan()
				return m, nil
			case "enter":
				m.stage = AskParams // Back to editing, values kept
				return m, textinput.Blink
			case "esc", "ctrl+c":
				return m, tea.Quit
			}

		// --- Results ---
		case ShowWritten, ShowError:
			switch msg.Type {
			case tea.KeyEnter:
				m.err = nil
				m.stage = AskParams
				return m, textinput.Blink
			case tea.KeyEsc, tea.KeyCtrlC:
				return m, tea.Quit
			}
		}
	}

	// Inputs only take keys while the form is shown
	if m.stage == AskParams {
		for i := range m.inputs {
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// buildPlan previews the allocation for the current parameters and seed.
// A failure (for example a quota larger than the pool) stays on the form.
func (m *Model) buildPlan() {
	plan, err := placement.BuildPlan(topics.NewRand(m.seed), m.cfg)
	if err != nil {
		m.err = err
		m.stage = AskParams
		return
	}
	m.plan = plan
	m.stage = ShowPlan
}

// writePlan writes the node files for the current parameters and seed. The
// same seed is used as for the preview, so the files match what was shown.
func (m Model) writePlan() tea.Cmd {
	cfg, seed, opts := m.cfg, m.seed, m.opts
	return func() tea.Msg {
		sink, err := output.NewDirSink(opts.Fs, opts.OutputDir)
		if err != nil {
			return writtenMsg{err: err}
		}
		manifest, err := generator.New(cfg, opts.Template, topics.NewRand(seed), seed, sink, nil).Run()
		return writtenMsg{manifest: manifest, err: err}
	}
}
