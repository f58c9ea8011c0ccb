package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/wonny/tradecare/backend/internal/api/handlers"
	"github.com/wonny/tradecare/backend/pkg/config"
	"github.com/wonny/tradecare/backend/pkg/logger"
	"github.com/wonny/tradecare/backend/pkg/metrics"
)

// Handlers bundles every endpoint group of the API
type Handlers struct {
	Data     *handlers.DataHandler
	Forecast *handlers.ForecastHandler
	Pages    *handlers.PagesHandler
	Status   http.Handler // websocket status feed, optional
	Health   []HealthCheck
}

// HealthCheck probes one optional dependency (database, redis)
type HealthCheck struct {
	Name    string
	Enabled bool
	Check   func(ctx context.Context) error
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, cfg *config.Config, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler(h.Health)).Methods("GET")

	if cfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler()).Methods("GET")
	}
	if h.Status != nil {
		r.Handle("/ws/status", h.Status).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()

	// Data endpoints
	validate := http.Handler(http.HandlerFunc(h.Data.Validate))
	if cfg.APIRateLimit > 0 {
		burst := cfg.APIRateBurst
		if burst < 1 {
			burst = 1
		}
		validate = rateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.APIRateLimit), burst))(validate)
	}
	api.Handle("/data/validate", validate).Methods("POST")
	api.HandleFunc("/data/info", h.Data.GetInfo).Methods("GET")
	api.HandleFunc("/data/runs", h.Data.GetRuns).Methods("GET")

	// Model endpoints
	api.HandleFunc("/models", h.Forecast.GetModels).Methods("GET")
	api.HandleFunc("/predict", h.Forecast.Predict).Methods("POST")

	// Dashboard pages
	api.HandleFunc("/pages", h.Pages.List).Methods("GET")
	api.HandleFunc("/pages/{slug}", h.Pages.Get).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status.
// A failing enabled dependency turns the answer into 503 "degraded".
func healthCheckHandler(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		deps := make(map[string]string, len(checks))
		for _, c := range checks {
			switch {
			case !c.Enabled:
				deps[c.Name] = "disabled"
			case c.Check(ctx) != nil:
				deps[c.Name] = "unavailable"
				status = "degraded"
				code = http.StatusServiceUnavailable
			default:
				deps[c.Name] = "ok"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":       status,
			"service":      "tradecare-api",
			"dependencies": deps,
		})
	}
}
