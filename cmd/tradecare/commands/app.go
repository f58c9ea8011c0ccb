package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/wonny/tradecare/backend/internal/api"
	"github.com/wonny/tradecare/backend/internal/contracts"
	"github.com/wonny/tradecare/backend/internal/external/github"
	"github.com/wonny/tradecare/backend/internal/forecast"
	"github.com/wonny/tradecare/backend/internal/s0_data"
	"github.com/wonny/tradecare/backend/internal/s0_data/collector"
	"github.com/wonny/tradecare/backend/internal/s0_data/fetcher"
	"github.com/wonny/tradecare/backend/internal/s0_data/quality"
	"github.com/wonny/tradecare/backend/pkg/config"
	"github.com/wonny/tradecare/backend/pkg/database"
	"github.com/wonny/tradecare/backend/pkg/httputil"
	"github.com/wonny/tradecare/backend/pkg/logger"
	"github.com/wonny/tradecare/backend/pkg/redis"
)

// app holds the wired dependencies shared by the commands
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	db        *database.DB // nil without DATABASE_URL
	repo      *s0_data.Repository
	redis     *redis.Client
	collector *collector.Collector
	service   *s0_data.Service
	store     *forecast.Store
	predictor *forecast.Predictor
}

// newApp wires config into the pipeline and its optional storage.
// Missing DB or Redis degrade to in-memory behaviour.
func newApp(cfg *config.Config) (*app, error) {
	// Logs go to stderr so stdout keeps only the status lines
	log := logger.NewWithWriter(cfg, os.Stderr)

	a := &app{cfg: cfg, log: log}

	// 1. Redis (optional)
	rc, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
		rc, _ = redis.New(&config.Config{})
	}
	a.redis = rc

	// 2. HTTP client with upstream budget
	httpClient := httputil.New(cfg, log)
	if rc.Enabled() {
		httpClient.WithRateLimiter(
			redis.NewRateLimiter(rc, "tradecare"),
			redis.UpstreamRateLimit(cfg.Dataset.RateLimit, cfg.Dataset.RateWindow),
		)
	}

	// 3. Pipeline
	gh := github.NewClient(httpClient, log)
	f := fetcher.New(gh, cfg.Dataset.URL, log)
	gate := quality.NewGate(quality.NewThresholds(cfg.Validation))
	a.collector = collector.NewCollector(f, gate, log)

	// 4. Refresh service
	a.service = s0_data.NewService(a.collector, log)
	if rc.Enabled() {
		a.service.WithCache(redis.NewCache(rc, "tradecare"))
	}

	// 5. Database (optional)
	db, err := database.New(cfg)
	switch {
	case errors.Is(err, database.ErrNotConfigured):
		log.Debug("DATABASE_URL not set, run history kept in memory")
	case err != nil:
		log.WithError(err).Warn("Database unavailable, run history kept in memory")
	default:
		a.db = db
		a.repo = s0_data.NewRepository(db.Pool)
		if err := a.repo.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		a.service.WithRepository(a.repo)
	}

	// 6. Prediction demo
	a.store = forecast.NewStore(cfg.ModelsDir)
	a.predictor = forecast.NewPredictor(a.store, log)

	return a, nil
}

// healthChecks reports the optional backing stores on /health
func (a *app) healthChecks() []api.HealthCheck {
	return []api.HealthCheck{
		{
			Name:    "database",
			Enabled: a.db != nil,
			Check:   func(ctx context.Context) error { return a.db.Ping(ctx) },
		},
		{
			Name:    "redis",
			Enabled: a.redis != nil && a.redis.Enabled(),
			Check:   a.redis.Ping,
		},
	}
}

// withSink forwards every run's status lines to sink
func (a *app) withSink(sink contracts.StatusSink) *app {
	a.service.WithSink(sink)
	return a
}

// Close releases the database and Redis connections
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		a.redis.Close()
	}
}
