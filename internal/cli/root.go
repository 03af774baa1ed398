package cli

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/adtyap26/ddsgen/internal/config"
)

// Default file names, matching the layout of the demo deployment directory.
const (
	DefaultInput    = "dds-cfg.in"
	DefaultTemplate = "dpods-cfg.in"
)

// app carries what every subcommand shares.
type app struct {
	fs       afero.Fs
	stdout   io.Writer
	stderr   io.Writer
	logLevel zapcore.Level
	now      func() time.Time
}

// NewRootCommand builds the ddsgen command tree. All file access goes
// through fs.
func NewRootCommand(fs afero.Fs, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		fs:     fs,
		stdout: stdout,
		stderr: stderr,
		now:    time.Now,
	}

	cmd := &cobra.Command{
		Use:           "ddsgen",
		Short:         "Generate per-node configuration files for the DDS demo cluster",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	LevelVar(cmd.PersistentFlags(), &a.logLevel, "log-level", zapcore.InfoLevel, "log level: debug, info, warn, error")

	cmd.AddCommand(
		a.newGenerateCommand(),
		a.newPlanCommand(),
		a.newInteractiveCommand(),
	)
	return cmd
}

// Execute runs the command tree against the real filesystem and terminal.
func Execute() error {
	return NewRootCommand(afero.NewOsFs(), os.Stdout, os.Stderr).Execute()
}

func inputPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return DefaultInput
}

// resolveSeed picks a time based seed when none was given.
func (a *app) resolveSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(a.now().UnixNano())
}

func (a *app) loadTemplate(path string) (string, error) {
	b, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return "", errors.Wrapf(err, "cannot read template %s", path)
	}
	return string(b), nil
}

func (a *app) loadInputs(input, templatePath string) (config.DeploymentConfig, string, error) {
	cfg, err := config.LoadFile(a.fs, input)
	if err != nil {
		return cfg, "", err
	}
	tmpl, err := a.loadTemplate(templatePath)
	if err != nil {
		return cfg, "", err
	}
	return cfg, tmpl, nil
}
