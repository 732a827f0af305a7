// Package cli wires the custodyctl command tree. Every subcommand runs
// against a Runtime built once per invocation from config files and flags.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vaultline-hq/vaultline-go/internal/app"
	"github.com/vaultline-hq/vaultline-go/internal/config"
	"github.com/vaultline-hq/vaultline-go/internal/logger"
	"github.com/vaultline-hq/vaultline-go/internal/metrics"
	"github.com/vaultline-hq/vaultline-go/pkg/custody"
)

var (
	runtime *app.Runtime
	envFlag string
)

// NewRootCmd builds the custodyctl command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "custodyctl",
		Short:         "Operator CLI for the Vaultline custody orchestrator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if envFlag != "" {
				cfg.Environment = envFlag
			}

			log, err := logger.Init(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			rt, err := app.NewRuntime(cmd.Context(), cfg, log, metrics.NewClientMetrics(nil))
			if err != nil {
				return fmt.Errorf("init runtime: %w", err)
			}
			runtime = rt
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			defer logger.Close()
			if runtime != nil {
				return runtime.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&envFlag, "env", "", "orchestrator environment profile id")

	cmd.AddCommand(
		newWalletCmd(),
		newUserCmd(),
		newNonceCmd(),
		newGasPriceCmd(),
		newTxCmd(),
		newHistoryCmd(),
	)

	return cmd
}

// Execute runs the CLI until completion or interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
	}
	return err
}

// describeError adds an operator hint for the classifiable custody failures.
func describeError(err error) string {
	switch {
	case custody.IsAuthError(err):
		return fmt.Sprintf("error: %v (authentication failed; check the API key)", err)
	case custody.IsNotFound(err):
		return fmt.Sprintf("error: %v (resource not found)", err)
	case custody.IsNetworkError(err):
		return fmt.Sprintf("error: %v (orchestrator unreachable)", err)
	default:
		return fmt.Sprintf("error: %v", err)
	}
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
