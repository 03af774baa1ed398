package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adtyap26/ddsgen/internal/config"
	"github.com/adtyap26/ddsgen/internal/output"
	"github.com/adtyap26/ddsgen/internal/placement"
)

// shortTopic is how many hex digits of a topic the preview shows.
const shortTopic = 8

// View renders the UI based on the current model state. Required by Bubble Tea.
func (m Model) View() string {
	var b strings.Builder

	// --- Title ---
	b.WriteString(TitleStyle.Render("DDS Demo Cluster Configuration"))
	b.WriteString("\n\n")

	switch m.stage {
	case AskParams:
		b.WriteString("Enter Deployment Parameters:\n\n")
		for i := range m.inputs {
			b.WriteString(fields[i].label + "\n")
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n")
		}

		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("Use Tab/Shift+Tab or Up/Down to navigate. Enter on the last field to preview. Ctrl+C to quit."))

	case ShowPlan:
		b.WriteString(fmt.Sprintf("Cluster Preview (seed %d):\n\n", m.seed))
		b.WriteString(m.renderPlan(m.plan))

		// --- Legend ---
		b.WriteString("\nLegend: ")
		b.WriteString(LeaderStyle.Render("Leader"))
		b.WriteString("  ")
		b.WriteString(ReplicaStyle.Render("Replica (consumer)"))
		b.WriteString("  ")
		b.WriteString(ClientStyle.Render("Client (producer)"))
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render(fmt.Sprintf("[w] write to %s  [r] reseed  [Enter] edit  [Esc] quit", m.opts.OutputDir)))

	case ShowWritten:
		b.WriteString(SuccessStyle.Render(fmt.Sprintf("Wrote %d node configurations to %s", len(m.manifest.Nodes), m.opts.OutputDir)))
		b.WriteString("\n\n")
		for _, e := range m.manifest.Nodes {
			b.WriteString(fmt.Sprintf("  %s  %s\n", RoleStyle(e.Role).Render(e.Artifact), e.Address))
		}
		b.WriteString(fmt.Sprintf("\nRun %s, seed %d\n\n", m.manifest.RunID, m.manifest.Seed))
		b.WriteString(HelpStyle.Render("(Press Enter to edit parameters. Esc to quit)"))

	case ShowError:
		errMsg := "An unexpected error occurred."
		if m.err != nil {
			errMsg = m.err.Error()
		}
		b.WriteString(ErrorStyle.Render("Error: " + errMsg))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("Files written before the failure are left in " + m.opts.OutputDir + "."))
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("(Press Enter to edit parameters. Esc to quit)"))
	}

	return b.String()
}

// renderPlan lays the node boxes out in rows that fit the terminal width.
func (m Model) renderPlan(plan *placement.Plan) string {
	if plan == nil {
		return ""
	}

	perRow := 4
	if m.width > 0 {
		perRow = max(1, m.width/28)
	}

	var rows []string
	var row []string
	for _, np := range plan.Nodes {
		row = append(row, NodeBoxStyle.Render(nodeBox(np)))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	unused := 0
	for _, n := range plan.Usage() {
		if n == 0 {
			unused++
		}
	}
	summary := fmt.Sprintf("%d leader, %d replicas, %d clients; %d of %d topics unused\n",
		plan.Count(config.Leader), plan.Count(config.Replica), plan.Count(config.Client), unused, len(plan.Pool))

	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n" + summary
}

// nodeBox renders the contents of one node's box.
func nodeBox(np placement.NodePlan) string {
	var b strings.Builder
	style := RoleStyle(np.Node.Role)
	b.WriteString(HeaderStyle.Render(output.ArtifactName(np.Node)))
	b.WriteString(" " + style.Render(string(np.Node.Role)) + "\n")
	b.WriteString(np.Node.Address + "\n")
	if len(np.Topics) == 0 {
		b.WriteString(HelpStyle.Render("  (no topics)"))
		return b.String()
	}
	for i, t := range np.Topics {
		s := string(t)
		if len(s) > shortTopic {
			s = s[:shortTopic]
		}
		b.WriteString(style.Render(" " + s))
		if i < len(np.Topics)-1 && (i+1)%2 == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
