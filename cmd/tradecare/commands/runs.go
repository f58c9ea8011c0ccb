package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted validation runs",
	Long: `Lists the most recent validation runs stored in the database.
Requires DATABASE_URL.

Example:
  go run ./cmd/tradecare runs --limit 10`,
	RunE: runRuns,
}

var runsLimit int

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "number of runs to show")
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.Database.Enabled() {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.repo == nil {
		return fmt.Errorf("database unavailable")
	}

	runs, err := a.repo.ListRuns(context.Background(), runsLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	printSection(fmt.Sprintf("Validation runs (%d)", len(runs)))
	if len(runs) == 0 {
		fmt.Println("  (none)")
		return nil
	}

	for _, r := range runs {
		mark := "✅"
		detail := fmt.Sprintf("%d rows, %s ~ %s", r.RowCount, r.FirstDate, r.LastDate)
		if !r.Succeeded() {
			mark = "❌"
			detail = fmt.Sprintf("%s at %s", r.ErrorKind, r.FailedStage)
		}
		fmt.Printf("  %s %s  %s  %-8s %s\n", mark, r.StartedAt.Format("2006-01-02 15:04:05"), shortID(r.ID), r.Duration.Round(time.Millisecond), detail)
	}

	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
