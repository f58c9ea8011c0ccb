package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/tradecare/backend/internal/api"
	"github.com/wonny/tradecare/backend/internal/api/handlers"
	"github.com/wonny/tradecare/backend/internal/realtime"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server behind the dashboard.

Endpoints:
  GET  /health                - Health check
  GET  /metrics               - Prometheus metrics (METRICS_ENABLED)
  GET  /ws/status             - Live validation status lines (websocket)
  POST /api/data/validate     - Fetch and validate the dataset
  GET  /api/data/info         - Summary of the last validated dataset
  GET  /api/data/runs         - Validation run history
  GET  /api/models            - Model artifact status
  POST /api/predict           - Prediction demo
  GET  /api/pages             - Dashboard navigation
  GET  /api/pages/{slug}      - Dashboard page

Example:
  go run ./cmd/tradecare api
  go run ./cmd/tradecare api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== TradeCare API Server ===")

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Wire dependencies
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	log := a.log
	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Live status feed
	hub := realtime.NewHub(log)
	defer hub.Close()
	a.withSink(hub)

	// 4. Create handlers and router
	router := api.NewRouter(api.Handlers{
		Data:     handlers.NewDataHandler(a.service, log),
		Forecast: handlers.NewForecastHandler(a.predictor, a.store, log),
		Pages:    handlers.NewPagesHandler(),
		Status:   hub,
		Health:   a.healthChecks(),
	}, cfg, log)

	// 5. Create server
	server := api.New(cfg, log, router)

	// 6. Serve until interrupted, then drain
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ready := make(chan string, 1)
	go func() {
		if addr, ok := <-ready; ok {
			fmt.Printf("\n✅ Server running on http://%s\n", addr)
			fmt.Println("\nPress Ctrl+C to stop")
		}
	}()

	err = server.Run(ctx, ready)
	close(ready)
	return err
}
