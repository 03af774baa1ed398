package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/adtyap26/ddsgen/internal/config"
	"github.com/adtyap26/ddsgen/internal/output"
	"github.com/adtyap26/ddsgen/internal/placement"
	"github.com/adtyap26/ddsgen/internal/topics"
	"github.com/adtyap26/ddsgen/internal/tui"
)

func (a *app) newPlanCommand() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "plan [input]",
		Short: "Show the role and topic allocation without writing anything",
		Long: `Computes the same allocation generate would write for the given seed and
prints it. Run generate with the printed seed to write exactly this plan.`,
		Args: cobra.MaximumNArgs(1),
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile(a.fs, inputPath(args))
		if err != nil {
			return err
		}
		runSeed := a.resolveSeed(seed)
		plan, err := placement.BuildPlan(topics.NewRand(runSeed), cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(a.stdout, formatPlan(plan, runSeed))
		return nil
	}

	BindOptions(newViper(), cmd, []Opt{
		NewOpt(&seed, "seed", uint64(0), "random seed; 0 picks one from the clock"),
	})
	return cmd
}

// formatPlan renders the node table followed by every node's topic list.
func formatPlan(plan *placement.Plan, seed uint64) string {
	rows := make([][]string, 0, len(plan.Nodes))
	for _, np := range plan.Nodes {
		rows = append(rows, []string{
			output.ArtifactName(np.Node),
			strconv.Itoa(np.Node.ID),
			string(np.Node.Role),
			np.Node.Address,
			strconv.Itoa(len(np.Topics)),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ARTIFACT", "ID", "ROLE", "ADDRESS", "TOPICS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Inherit(tui.HeaderStyle)
			}
			if col == 2 {
				return style.Inherit(tui.RoleStyle(plan.Nodes[row].Node.Role))
			}
			return style
		})

	unused := 0
	for _, n := range plan.Usage() {
		if n == 0 {
			unused++
		}
	}

	s := fmt.Sprintf("Seed %d, %d topics in pool, %d unused\n", seed, len(plan.Pool), unused)
	s += t.Render() + "\n"
	for _, np := range plan.Nodes {
		s += fmt.Sprintf("%s: %s\n", output.ArtifactName(np.Node), topics.Join(np.Topics))
	}
	return s
}
