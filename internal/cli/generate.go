package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adtyap26/ddsgen/internal/generator"
	"github.com/adtyap26/ddsgen/internal/logger"
	"github.com/adtyap26/ddsgen/internal/output"
	"github.com/adtyap26/ddsgen/internal/topics"
)

func (a *app) newGenerateCommand() *cobra.Command {
	var (
		templatePath string
		outputDir    string
		seed         uint64
		withManifest bool
	)

	cmd := &cobra.Command{
		Use:   "generate [input]",
		Short: "Write one configuration file per node",
		Long: `Reads the deployment parameters (default ` + DefaultInput + `) and the node
template, then writes replica.<id> and client.<id> files into the output
directory. A failure part way through leaves the files already written.`,
		Args: cobra.MaximumNArgs(1),
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		log := logger.New(a.stderr, a.logLevel)
		defer func() { _ = log.Sync() }()

		cfg, tmpl, err := a.loadInputs(inputPath(args), templatePath)
		if err != nil {
			return err
		}

		runSeed := a.resolveSeed(seed)
		sink, err := output.NewDirSink(a.fs, outputDir)
		if err != nil {
			return err
		}

		g := generator.New(cfg, tmpl, topics.NewRand(runSeed), runSeed, sink, log)
		if !withManifest {
			g.DisableManifest()
		}
		m, err := g.Run()
		if err != nil {
			log.Error("Generation failed, files written so far are left in place",
				zap.String("dir", outputDir), zap.Error(err))
			return err
		}

		fmt.Fprintf(a.stdout, "Wrote %d node configurations to %s (seed %d)\n", len(m.Nodes), outputDir, runSeed)
		return nil
	}

	BindOptions(newViper(), cmd, []Opt{
		NewOpt(&templatePath, "template", DefaultTemplate, "node configuration template"),
		NewOpt(&outputDir, "output-dir", output.DefaultDir, "directory the node configurations are written to"),
		NewOpt(&seed, "seed", uint64(0), "random seed; 0 picks one from the clock"),
		NewOpt(&withManifest, "manifest", true, "also write "+output.ManifestName),
	})
	return cmd
}
