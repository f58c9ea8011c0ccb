package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/wonny/tradecare/backend/internal/contracts"
	"github.com/wonny/tradecare/backend/internal/s0_data"
	"github.com/wonny/tradecare/backend/internal/s0_data/quality"
	"github.com/wonny/tradecare/backend/pkg/logger"
)

// Refresher is the dataset refresh service
type Refresher interface {
	Refresh(ctx context.Context) (*s0_data.RefreshResult, error)
	LatestInfo(ctx context.Context) (*contracts.DatasetInfo, bool)
	Runs(ctx context.Context, limit int) ([]*contracts.ValidationRun, error)
}

// DataHandler handles data-related API endpoints
// ⭐ SSOT: 데이터 API 핸들러는 이 구조체에서만
type DataHandler struct {
	service Refresher
	logger  *logger.Logger
}

// NewDataHandler creates a new data handler
func NewDataHandler(service Refresher, log *logger.Logger) *DataHandler {
	return &DataHandler{
		service: service,
		logger:  log,
	}
}

// ValidateResponse is the body of POST /api/data/validate
type ValidateResponse struct {
	Status string                   `json:"status"`
	Run    *contracts.ValidationRun `json:"run"`
	Info   *contracts.DatasetInfo   `json:"info,omitempty"`
	Error  string                   `json:"error,omitempty"`
	Kind   string                   `json:"kind,omitempty"`
	Stage  string                   `json:"stage,omitempty"`
}

// Validate fetches and validates the dataset once
// POST /api/data/validate
func (h *DataHandler) Validate(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Refresh(r.Context())
	if err != nil {
		status := StatusForValidation(err)
		resp := ValidateResponse{
			Status: string(contracts.RunFailed),
			Error:  err.Error(),
			Kind:   string(quality.KindOf(err)),
			Stage:  string(quality.StageOf(err)),
		}
		if result != nil {
			resp.Run = result.Run
		}
		if status == http.StatusInternalServerError {
			h.logger.WithError(err).Error("Validation run failed unexpectedly")
		}
		respondJSON(w, status, resp)
		return
	}

	respondJSON(w, http.StatusOK, ValidateResponse{
		Status: string(contracts.RunValidated),
		Run:    result.Run,
		Info:   result.Info,
	})
}

// GetInfo returns the summary of the last validated dataset
// GET /api/data/info
func (h *DataHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	info, ok := h.service.LatestInfo(r.Context())
	if !ok {
		respondError(w, http.StatusNotFound, "No validated dataset yet")
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// GetRuns returns recent validation runs
// GET /api/data/runs?limit=20
func (h *DataHandler) GetRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 500 {
			respondError(w, http.StatusBadRequest, "Invalid 'limit' (expected 1-500)")
			return
		}
		limit = n
	}

	runs, err := h.service.Runs(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list validation runs")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve validation runs")
		return
	}
	if runs == nil {
		runs = []*contracts.ValidationRun{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// StatusForValidation maps a pipeline error to an HTTP status
func StatusForValidation(err error) int {
	switch quality.KindOf(err) {
	case quality.KindFetch:
		return http.StatusBadGateway
	case "":
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}
