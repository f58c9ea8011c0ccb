package httputil_test

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/tradecare/backend/pkg/config"
	"github.com/wonny/tradecare/backend/pkg/httputil"
	"github.com/wonny/tradecare/backend/pkg/logger"
)

// Example_withRetry demonstrates retry configuration
func Example_withRetry() {
	cfg := &config.Config{
		Env:      "production",
		LogLevel: "info",
		Dataset: config.DatasetConfig{
			URL:          config.DefaultDatasetURL,
			FetchTimeout: 30 * time.Second,
		},
	}
	log := logger.New(cfg)

	// 3 retries, 2s initial delay
	client := httputil.New(cfg, log).WithRetry(3, 2*time.Second)

	resp, err := client.Get(context.Background(), cfg.Dataset.URL)
	if err != nil {
		fmt.Printf("Request failed after retries: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Printf("Status: %d\n", resp.StatusCode)
}
