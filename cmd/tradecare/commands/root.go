package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/tradecare/backend/pkg/config"
)

var (
	// Global flags
	env     string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tradecare",
	Short: "TradeCare - BTC hourly data validation and prediction demo",
	Long: `TradeCare Unified CLI

Fetches the hourly BTC OHLCV feed, validates it before anything consumes it,
and serves the dashboard API with the prediction demo.

Usage:
  go run ./cmd/tradecare [command]

Examples:
  go run ./cmd/tradecare validate
  go run ./cmd/tradecare api
  go run ./cmd/tradecare scheduler start
  go run ./cmd/tradecare predict --rsi 72 --return-4h 1.5`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logs on stderr)")
}

// loadConfig reads the environment and applies the global flags
func loadConfig() (*config.Config, error) {
	if env != "" {
		os.Setenv("ENV", env)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}
