package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/vigil"
	"github.com/aretw0/vigil/internal/config"
	"github.com/aretw0/vigil/internal/logging"
	"github.com/aretw0/vigil/pkg/domain"
	"github.com/aretw0/vigil/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vigil",
	Short: "Vigil monitors multi-agent workflows",
	Long: `Vigil tracks workflows, their phases and the agents working on them,
and derives metrics, bottleneck alerts, delivery predictions and risks.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		level, err := logging.ParseLevel(loaded.LogLevel)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = logging.New(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the vigil configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

// monitorOptions turns the loaded configuration into Monitor options.
// A non-nil reg also gets the transition counters. hooks run after the logging hooks.
func monitorOptions(reg prometheus.Registerer, hooks ...domain.LifecycleHooks) ([]vigil.Option, error) {
	var transitions *observability.Transitions
	if reg != nil {
		var err error
		transitions, err = observability.NewTransitions(reg)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	all := append([]domain.LifecycleHooks{observability.Hooks(logger, transitions)}, hooks...)
	return []vigil.Option{
		vigil.WithLogger(logger),
		vigil.WithThresholds(cfg.Thresholds),
		vigil.WithCountingPolicy(cfg.Policy()),
		vigil.WithLifecycleHooks(domain.ComposeHooks(all...)),
	}, nil
}
