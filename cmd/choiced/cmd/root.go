package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cosmossdk.io/log"
	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/choice-exchange/choice/api"
	"github.com/choice-exchange/choice/app"
)

const (
	envPrefix = "CHOICE"

	flagHome     = "home"
	flagConfig   = "config"
	flagLogLevel = "log-level"

	configFileName = "devnet.yaml"
)

// options carries the persistent settings every subcommand reads.
type options struct {
	v *viper.Viper
}

// NewRootCmd creates the choiced root command. It is called once in main.
func NewRootCmd() *cobra.Command {
	app.SetConfig()

	opts := &options{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "choiced",
		Short: "Choice exchange devnet and tooling",
		Long: `choiced runs a local devnet of the choice exchange contracts behind an HTTP
gateway, and carries offline tooling for the constant-product pool math.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
			return opts.bind(cmd)
		},
	}

	rootCmd.PersistentFlags().String(flagHome, app.DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(flagConfig, "", "config file (default is <home>/config/devnet.yaml)")
	rootCmd.PersistentFlags().String(flagLogLevel, "info", "log level (trace|debug|info|warn|error)")

	rootCmd.AddCommand(
		QuoteCmd(),
		DevnetCmd(opts),
		VersionCmd(),
	)

	return rootCmd
}

// bind ties viper to the command flags and the CHOICE_ environment.
func (o *options) bind(cmd *cobra.Command) error {
	o.v.SetEnvPrefix(envPrefix)
	o.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	o.v.AutomaticEnv()
	return o.v.BindPFlags(cmd.Flags())
}

func (o *options) home() string {
	return o.v.GetString(flagHome)
}

func (o *options) configPath() string {
	if path := o.v.GetString(flagConfig); path != "" {
		return path
	}
	return filepath.Join(o.home(), "config", configFileName)
}

func (o *options) logger(out io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(o.v.GetString(flagLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", flagLogLevel, err)
	}
	return log.NewLogger(out, log.LevelOption(level)), nil
}

// loadConfig reads the devnet config file. Any key can be overridden from
// the environment, e.g. CHOICE_API_PORT.
func (o *options) loadConfig() (app.Config, error) {
	path := o.configPath()

	fv := viper.New()
	fv.SetConfigFile(path)
	fv.SetConfigType("yaml")
	fv.SetEnvPrefix(envPrefix)
	fv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	fv.AutomaticEnv()

	if err := fv.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return app.Config{}, fmt.Errorf("%s not found, run `choiced devnet init` first", path)
		}
		return app.Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg app.Config
	if err := fv.Unmarshal(&cfg, viper.DecodeHook(configDecodeHook())); err != nil {
		return app.Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if cfg.API == nil {
		cfg.API = api.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return app.Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// configDecodeHook extends viper's default hooks with RFC 3339 timestamps.
func configDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}
