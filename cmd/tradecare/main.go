package main

import (
	"os"

	"github.com/wonny/tradecare/backend/cmd/tradecare/commands"
)

// main is the entry point for the TradeCare CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/tradecare [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
