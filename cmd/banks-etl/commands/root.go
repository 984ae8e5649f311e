package commands

import (
	"context"
	"fmt"
	"log/slog"

	"banks-etl/internal/config"
	"banks-etl/lib/serviceutil"
	"banks-etl/lib/telemetry"

	"github.com/spf13/cobra"
)

var configPath *string
var logLevel *string

var rootCmd = &cobra.Command{
	Use:          "banks-etl",
	Short:        "banks-etl extracts the largest banks table, converts market caps and loads them into csv and sqlite.",
	SilenceUsage: true,
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "", "Path to a config.json5, by default it is searched for upwards from the working directory.")
	logLevel = rootCmd.PersistentFlags().String("log-level", "", "Overrides log_level from the config (debug, info, warn, error).")
}

// loadConfig reads the config and sets up logging and telemetry from it.
// The returned function flushes telemetry.
func loadConfig(ctx context.Context) (config.Config, func(), error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to read config: %w", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	telemetry.InitSlog(cfg.LogLevel, cfg.LogFormat)

	tel, err := telemetry.Setup(ctx, "banks-etl", cfg.Telemetry)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}
	return cfg, func() {
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	}, nil
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		serviceutil.Fatal("banks-etl failed", err)
	}
}
