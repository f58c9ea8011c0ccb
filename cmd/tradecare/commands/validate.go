package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/tradecare/backend/internal/realtime"
	"github.com/wonny/tradecare/backend/internal/s0_data/quality"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Fetch and validate the raw dataset once",
	Long: `Downloads the hourly BTC OHLCV feed and runs every security check over it.

Checks, in order:
  1. Data structure    - exact column names and order
  2. String columns    - dangerous characters, date format, hour range
  3. Price ranges      - every price within the configured bounds
  4. Completeness      - minimum row count
  5. Timestamps        - no timestamp before the Bitcoin genesis window

The first failing check stops the run and the command exits non-zero.

Example:
  go run ./cmd/tradecare validate
  go run ./cmd/tradecare validate --url https://example.com/btc.csv --min-rows 1000`,
	RunE: runValidate,
}

var (
	validateURL     string
	validateMinRows int
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateURL, "url", "", "dataset URL (default DATASET_URL)")
	validateCmd.Flags().IntVar(&validateMinRows, "min-rows", 0, "minimum row count (default VALIDATION_MIN_ROWS)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if validateURL != "" {
		cfg.Dataset.URL = validateURL
	}
	if validateMinRows > 0 {
		cfg.Validation.MinRows = validateMinRows
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	a.withSink(realtime.NewConsoleSink(cmd.OutOrStdout()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := a.service.Refresh(ctx)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintf(cmd.OutOrStdout(), "❌ Validation failed at %s (%s)\n", stageOrUnknown(err), kindOrUnknown(err))
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n✅ Run %s validated in %s\n", result.Run.ID, result.Run.Duration)
	return nil
}

func stageOrUnknown(err error) string {
	if s := quality.StageOf(err); s != "" {
		return string(s)
	}
	return "unknown stage"
}

func kindOrUnknown(err error) string {
	if k := quality.KindOf(err); k != "" {
		return string(k)
	}
	return "unexpected error"
}
