package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adtyap26/ddsgen/internal/config"
)

// fieldKind decides how an input is validated and parsed.
type fieldKind int

const (
	textField fieldKind = iota
	intField
	floatField
)

// field describes one input of the parameter form.
type field struct {
	label       string
	placeholder string
	kind        fieldKind
}

// Fields in display order. parseAndValidateInputs relies on this order.
var fields = []field{
	{"Node addresses (comma separated):", "10.0.0.1,10.0.0.2,10.0.0.3", textField},
	{"Leader address:", "10.0.0.1", textField},
	{"RDMA provider:", "sockets", textField},
	{"RDMA domain:", "lo", textField},
	{"Min replication factor:", "1", intField},
	{"Replicas (including leader):", "2", intField},
	{"Topics in pool:", "100", intField},
	{"Consumers per replica:", "10", intField},
	{"Producers per client:", "5", intField},
	{"Message frequency (Hz):", "1.0", floatField},
}

// setupInputs builds the text inputs, prefilled from defaults where set.
func (m *Model) setupInputs(defaults config.DeploymentConfig) {
	values := []string{
		strings.Join(defaults.NodeAddresses, ","),
		defaults.LeaderAddress,
		defaults.RDMAProvider,
		defaults.RDMADomain,
		intValue(defaults.MinRepFactor),
		intValue(defaults.NumReplicas),
		intValue(defaults.NumTopics),
		intValue(defaults.NumConsumersPerReplica),
		intValue(defaults.NumProducersPerClient),
		floatValue(defaults.MessageFreqHz),
	}

	m.inputs = make([]textinput.Model, len(fields))
	m.focused = 0
	for i, f := range fields {
		in := textinput.New()
		in.Cursor.Style = CursorStyle
		in.Placeholder = f.placeholder
		switch f.kind {
		case intField:
			in.CharLimit = 6
			in.Validate = isNumber
		case floatField:
			in.CharLimit = 8
			in.Validate = isDecimal
		}
		in.SetValue(values[i])
		m.inputs[i] = in
	}
	m.focus(0)
}

// focus moves focus to input i and returns the command of the focused input.
func (m *Model) focus(i int) tea.Cmd {
	var cmd tea.Cmd
	m.focused = i
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
			m.inputs[j].PromptStyle = FocusedStyle
			m.inputs[j].TextStyle = FocusedStyle
		} else {
			m.inputs[j].Blur()
			m.inputs[j].PromptStyle = NoStyle
			m.inputs[j].TextStyle = NoStyle
		}
	}
	return cmd
}

func intValue(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func floatValue(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// isNumber is a validation function for textinput, ensuring input is numeric.
func isNumber(s string) error {
	if s == "" {
		return nil // Allow empty while typing
	}
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

// isDecimal accepts partial decimals such as "1." while typing.
func isDecimal(s string) error {
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.TrimSuffix(s, "."), 64); err != nil {
		return fmt.Errorf("must be a decimal number")
	}
	return nil
}

// parseAndValidateInputs reads every input into m.cfg and checks the result.
func (m *Model) parseAndValidateInputs() error {
	var cfg config.DeploymentConfig
	ints := make([]int, 0, 5)

	for i, f := range fields {
		v := strings.TrimSpace(m.inputs[i].Value())
		if v == "" {
			return fmt.Errorf("input for '%s' cannot be empty", strings.TrimSuffix(f.label, ":"))
		}
		switch f.kind {
		case intField:
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid number for '%s': %w", strings.TrimSuffix(f.label, ":"), err)
			}
			ints = append(ints, n)
		case floatField:
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid number for '%s': %w", strings.TrimSuffix(f.label, ":"), err)
			}
			cfg.MessageFreqHz = x
		}
	}

	cfg.NodeAddresses = config.ParseAddresses(m.inputs[0].Value())
	cfg.LeaderAddress = strings.TrimSpace(m.inputs[1].Value())
	cfg.RDMAProvider = strings.TrimSpace(m.inputs[2].Value())
	cfg.RDMADomain = strings.TrimSpace(m.inputs[3].Value())
	cfg.MinRepFactor = ints[0]
	cfg.NumReplicas = ints[1]
	cfg.NumTopics = ints[2]
	cfg.NumConsumersPerReplica = ints[3]
	cfg.NumProducersPerClient = ints[4]

	if err := cfg.Validate(); err != nil {
		return err
	}
	m.cfg = cfg
	return nil
}
