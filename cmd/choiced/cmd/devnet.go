package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/choice-exchange/choice/api"
	"github.com/choice-exchange/choice/api/health"
	"github.com/choice-exchange/choice/app"
	"github.com/choice-exchange/choice/app/telemetry"
)

const (
	flagForce     = "force"
	flagChainID   = "chain-id"
	flagBlockTime = "block-time"

	defaultBlockTime = 5 * time.Second
)

// DevnetCmd groups the local devnet commands.
func DevnetCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devnet",
		Short: "Run a local devnet of the exchange contracts",
	}
	cmd.AddCommand(
		devnetInitCmd(opts),
		devnetStartCmd(opts),
	)
	return cmd
}

func devnetInitCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default devnet config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool(flagForce)
			chainID, _ := cmd.Flags().GetString(flagChainID)

			path := opts.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --%s to overwrite", path, flagForce)
			}

			cfg := app.DefaultConfig()
			if chainID != "" {
				cfg.Genesis.ChainID = chainID
				cfg.Telemetry.ChainID = chainID
			}
			if err := writeConfig(path, cfg); err != nil {
				return err
			}
			cmd.Printf("wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().Bool(flagForce, false, "overwrite an existing config")
	cmd.Flags().String(flagChainID, "", "chain id (default "+app.DefaultChainID+")")
	return cmd
}

func writeConfig(path string, cfg app.Config) error {
	bz, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, bz, 0o600)
}

func devnetStartCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Deploy the genesis contracts and serve the gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			blockTime, _ := cmd.Flags().GetDuration(flagBlockTime)
			if blockTime <= 0 {
				return fmt.Errorf("--%s must be positive", flagBlockTime)
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			provider, err := telemetry.NewProvider(cfg.Telemetry)
			if err != nil {
				return fmt.Errorf("telemetry: %w", err)
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := provider.Shutdown(shutdownCtx); err != nil {
					logger.Error("telemetry shutdown failed", "error", err)
				}
			}()

			choiceApp, err := app.NewChoiceApp(logger, cfg.Genesis, app.WithMeter(provider.Meter()))
			if err != nil {
				return fmt.Errorf("genesis: %w", err)
			}

			server, err := api.NewServer(choiceApp, cfg.API, logger)
			if err != nil {
				return err
			}
			if cfg.Telemetry.Enabled {
				server.RegisterHealthCheck(health.TelemetryCheck(provider.HealthCheck))
			}

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return server.Start(ctx)
			})
			g.Go(func() error {
				return produceBlocks(ctx, choiceApp, blockTime, provider.Tracer())
			})
			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Info("devnet stopped", "height", choiceApp.Height())
			return nil
		},
	}
	cmd.Flags().Duration(flagBlockTime, defaultBlockTime, "interval between committed blocks")
	return cmd
}

// produceBlocks commits a block every interval until ctx is done. Each
// commit is traced.
func produceBlocks(ctx context.Context, a *app.ChoiceApp, interval time.Duration, tracer trace.Tracer) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_, span := tracer.Start(ctx, "block.commit")
			id := a.AdvanceBlock(interval)
			span.SetAttributes(attribute.Int64("block.version", id.Version))
			span.End()
		}
	}
}
