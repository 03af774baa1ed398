package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/adtyap26/ddsgen/internal/config"
	"github.com/adtyap26/ddsgen/internal/output"
	"github.com/adtyap26/ddsgen/internal/tui"
)

func (a *app) newInteractiveCommand() *cobra.Command {
	var (
		templatePath string
		outputDir    string
		seed         uint64
	)

	cmd := &cobra.Command{
		Use:   "interactive [input]",
		Short: "Enter parameters, preview the cluster and write it from a terminal UI",
		Long: `Starts a terminal wizard. The fields are prefilled from the input file when
it exists (default ` + DefaultInput + `).`,
		Args: cobra.MaximumNArgs(1),
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts, err := a.interactiveOptions(args, templatePath, outputDir, seed)
		if err != nil {
			return err
		}
		// Logging stays off here; it would draw over the alt screen.
		p := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return errors.Wrap(err, "running terminal UI")
		}
		return nil
	}

	BindOptions(newViper(), cmd, []Opt{
		NewOpt(&templatePath, "template", DefaultTemplate, "node configuration template"),
		NewOpt(&outputDir, "output-dir", output.DefaultDir, "directory the node configurations are written to"),
		NewOpt(&seed, "seed", uint64(0), "random seed; 0 picks one from the clock"),
	})
	return cmd
}

// interactiveOptions prepares the wizard. An explicitly named input file must
// load; the default one is optional. Invalid values still prefill the form so
// they can be corrected there.
func (a *app) interactiveOptions(args []string, templatePath, outputDir string, seed uint64) (tui.Options, error) {
	tmpl, err := a.loadTemplate(templatePath)
	if err != nil {
		return tui.Options{}, err
	}

	path := inputPath(args)
	defaults := config.DeploymentConfig{MessageFreqHz: config.DefaultMessageFreqHz}
	exists, err := afero.Exists(a.fs, path)
	if err != nil {
		return tui.Options{}, errors.Wrapf(err, "checking %s", path)
	}
	switch {
	case exists:
		cfg, err := config.LoadFile(a.fs, path)
		if err != nil && !errors.Is(err, config.ErrInvalidParameter) {
			return tui.Options{}, err
		}
		defaults = cfg
	case len(args) > 0:
		return tui.Options{}, errors.Errorf("cannot open configuration input file %s", path)
	}

	return tui.Options{
		Fs:        a.fs,
		Template:  tmpl,
		OutputDir: outputDir,
		Seed:      a.resolveSeed(seed),
		Defaults:  defaults,
	}, nil
}
