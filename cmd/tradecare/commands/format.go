package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/wonny/tradecare/backend/pkg/config"
	"github.com/wonny/tradecare/backend/pkg/logger"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// printSection prints a titled section divider
func printSection(title string) {
	fmt.Println()
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  %s\n", title)
	fmt.Println("───────────────────────────────────────────────────────────")
}

// newCLILogger logs to stderr, and only with --verbose
func newCLILogger(cfg *config.Config) *logger.Logger {
	var w io.Writer = io.Discard
	if verbose {
		w = os.Stderr
	}
	return logger.NewWithWriter(cfg, w)
}
