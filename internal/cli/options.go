package cli

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended (upper-cased) to every option's environment variable.
const EnvPrefix = "ddsgen"

// Opt is a single command-line option
type Opt struct {
	DestP   interface{} // pointer to the destination
	Flag    string
	Default interface{}
	Desc    string
}

// NewOpt creates a new command line option.
func NewOpt(destP interface{}, flag string, dflt interface{}, desc string) Opt {
	return Opt{
		DestP:   destP,
		Flag:    flag,
		Default: dflt,
		Desc:    desc,
	}
}

// newViper returns a viper instance reading DDSGEN_* environment variables,
// with "-" in flag names mapped to "_".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(strings.ToUpper(EnvPrefix))
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	return v
}

// BindOptions adds opts to the command and registers them with v. The
// destination takes the environment value now; an explicit flag overrides it
// when cobra parses the command line. An environment value that does not
// convert fails the command before it runs, unless the flag was given.
func BindOptions(v *viper.Viper, cmd *cobra.Command, opts []Opt) {
	bad := map[string]error{}
	for _, o := range opts {
		var err error
		switch destP := o.DestP.(type) {
		case *string:
			var d string
			if o.Default != nil {
				d = o.Default.(string)
			}
			cmd.Flags().StringVar(destP, o.Flag, d, o.Desc)
			mustBindPFlag(v, o.Flag, cmd)
			*destP = v.GetString(o.Flag)
		case *int:
			var d int
			if o.Default != nil {
				d = o.Default.(int)
			}
			cmd.Flags().IntVar(destP, o.Flag, d, o.Desc)
			mustBindPFlag(v, o.Flag, cmd)
			*destP, err = cast.ToIntE(v.Get(o.Flag))
		case *uint64:
			var d uint64
			if o.Default != nil {
				d = o.Default.(uint64)
			}
			cmd.Flags().Uint64Var(destP, o.Flag, d, o.Desc)
			mustBindPFlag(v, o.Flag, cmd)
			*destP, err = cast.ToUint64E(v.Get(o.Flag))
		case *bool:
			var d bool
			if o.Default != nil {
				d = o.Default.(bool)
			}
			cmd.Flags().BoolVar(destP, o.Flag, d, o.Desc)
			mustBindPFlag(v, o.Flag, cmd)
			*destP, err = cast.ToBoolE(v.Get(o.Flag))
		default:
			panic(fmt.Errorf("unknown destination type %T", o.DestP))
		}
		if err != nil {
			bad[o.Flag] = errors.Wrapf(err, "invalid value for %s from $%s", o.Flag, envName(o.Flag))
		}
	}
	if len(bad) == 0 {
		return
	}

	prev := cmd.PreRunE
	cmd.PreRunE = func(c *cobra.Command, args []string) error {
		var result *multierror.Error
		for _, o := range opts {
			if err, ok := bad[o.Flag]; ok && !c.Flags().Changed(o.Flag) {
				result = multierror.Append(result, err)
			}
		}
		if err := result.ErrorOrNil(); err != nil {
			return err
		}
		if prev != nil {
			return prev(c, args)
		}
		return nil
	}
}

// envName is the environment variable newViper reads for flag.
func envName(flag string) string {
	return strings.ToUpper(EnvPrefix + "_" + strings.ReplaceAll(flag, "-", "_"))
}

func mustBindPFlag(v *viper.Viper, key string, cmd *cobra.Command) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
		panic(err)
	}
}
