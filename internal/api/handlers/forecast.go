package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/tradecare/backend/internal/forecast"
	"github.com/wonny/tradecare/backend/pkg/logger"
)

// ArtifactStatus reports which model artifacts are present
type ArtifactStatus interface {
	Dir() string
	Status() map[string]bool
	LoadModels() (*forecast.Models, error)
}

// ForecastHandler serves the prediction demo
type ForecastHandler struct {
	predictor *forecast.Predictor
	store     ArtifactStatus
	logger    *logger.Logger
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(predictor *forecast.Predictor, store ArtifactStatus, log *logger.Logger) *ForecastHandler {
	return &ForecastHandler{
		predictor: predictor,
		store:     store,
		logger:    log,
	}
}

// GetModels reports artifact presence and whether the models load
// GET /api/models
func (h *ForecastHandler) GetModels(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"models_dir": h.store.Dir(),
		"artifacts":  h.store.Status(),
		"loaded":     true,
	}

	if _, err := h.store.LoadModels(); err != nil {
		resp["loaded"] = false
		resp["error"] = err.Error()
		respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Predict runs both models on a market input.
// Omitted fields take the form defaults.
// POST /api/predict
func (h *ForecastHandler) Predict(w http.ResponseWriter, r *http.Request) {
	in := forecast.DefaultMarketInput()
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pred, err := h.predictor.Predict(in)
	if err != nil {
		var inputErr *forecast.InputError
		switch {
		case errors.As(err, &inputErr):
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "Invalid market input",
				"fields": inputErr.Fields,
			})
		case errors.Is(err, forecast.ErrArtifactNotFound):
			respondError(w, http.StatusServiceUnavailable, "Models not loaded. Please ensure model files exist in "+h.store.Dir())
		default:
			h.logger.WithError(err).Error("Prediction failed")
			respondError(w, http.StatusServiceUnavailable, "Models could not be loaded")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"input":      in,
		"prediction": pred,
		"disclaimer": "Educational demonstration only. Predictions have no statistical reliability.",
	})
}
