package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// execute runs choiced with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	rootCmd := NewRootCmd()
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOptions_ConfigPath(t *testing.T) {
	opts := &options{v: viper.New()}
	opts.v.Set(flagHome, "/tmp/choice")
	require.Equal(t, "/tmp/choice/config/devnet.yaml", opts.configPath())

	opts.v.Set(flagConfig, "/etc/choice.yaml")
	require.Equal(t, "/etc/choice.yaml", opts.configPath())
}

func TestOptions_Logger(t *testing.T) {
	opts := &options{v: viper.New()}

	opts.v.Set(flagLogLevel, "debug")
	logger, err := opts.logger(new(bytes.Buffer))
	require.NoError(t, err)
	require.NotNil(t, logger)

	opts.v.Set(flagLogLevel, "loud")
	_, err = opts.logger(new(bytes.Buffer))
	require.Error(t, err)
}

func TestRootCmd_HomeFromEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CHOICE_HOME", home)

	out, err := execute(t, "devnet", "init")
	require.NoError(t, err)
	require.Contains(t, out, home)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "crates.io:choice-pair")
	require.Contains(t, out, "crates.io:choice-factory")
	require.Contains(t, out, "crates.io:cw20-adapter")
}
