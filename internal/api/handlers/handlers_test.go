package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradecare/backend/internal/contracts"
	"github.com/wonny/tradecare/backend/internal/dashboard"
	"github.com/wonny/tradecare/backend/internal/forecast"
	"github.com/wonny/tradecare/backend/internal/s0_data"
	"github.com/wonny/tradecare/backend/internal/s0_data/quality"
	"github.com/wonny/tradecare/backend/pkg/logger"
)

type fakeRefresher struct {
	result *s0_data.RefreshResult
	err    error
	info   *contracts.DatasetInfo
	runs   []*contracts.ValidationRun
	limit  int
}

func (f *fakeRefresher) Refresh(ctx context.Context) (*s0_data.RefreshResult, error) {
	return f.result, f.err
}

func (f *fakeRefresher) LatestInfo(ctx context.Context) (*contracts.DatasetInfo, bool) {
	return f.info, f.info != nil
}

func (f *fakeRefresher) Runs(ctx context.Context, limit int) ([]*contracts.ValidationRun, error) {
	f.limit = limit
	return f.runs, f.err
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestStatusForValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"fetch", &quality.ValidationError{Kind: quality.KindFetch}, http.StatusBadGateway},
		{"schema", &quality.ValidationError{Kind: quality.KindSchema}, http.StatusUnprocessableEntity},
		{"security", &quality.ValidationError{Kind: quality.KindSecurity}, http.StatusUnprocessableEntity},
		{"timestamp", &quality.ValidationError{Kind: quality.KindTimestamp}, http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForValidation(tt.err))
		})
	}
}

func TestDataHandler_Validate(t *testing.T) {
	t.Run("validated", func(t *testing.T) {
		svc := &fakeRefresher{result: &s0_data.RefreshResult{
			Run:  &contracts.ValidationRun{ID: "run-1", Status: contracts.RunValidated, RowCount: 96000},
			Info: &contracts.DatasetInfo{TotalRows: 96000, TotalColumns: 10},
		}}
		h := NewDataHandler(svc, logger.Nop())

		rec := httptest.NewRecorder()
		h.Validate(rec, httptest.NewRequest(http.MethodPost, "/api/data/validate", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "validated", body["status"])
		assert.NotNil(t, body["info"])
	})

	t.Run("range failure", func(t *testing.T) {
		err := &quality.ValidationError{
			Kind:    quality.KindRange,
			Stage:   contracts.StagePrices,
			Message: "Suspicious data: HIGH_PRICE contains values > $500,000 (max: $500,001.00)",
		}
		svc := &fakeRefresher{
			result: &s0_data.RefreshResult{Run: &contracts.ValidationRun{ID: "run-2", Status: contracts.RunFailed}},
			err:    err,
		}
		h := NewDataHandler(svc, logger.Nop())

		rec := httptest.NewRecorder()
		h.Validate(rec, httptest.NewRequest(http.MethodPost, "/api/data/validate", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "failed", body["status"])
		assert.Equal(t, "range_error", body["kind"])
		assert.Equal(t, "prices", body["stage"])
		assert.Contains(t, body["error"], "HIGH_PRICE")
		assert.NotNil(t, body["run"])
	})

	t.Run("fetch failure", func(t *testing.T) {
		svc := &fakeRefresher{err: &quality.ValidationError{
			Kind:    quality.KindFetch,
			Stage:   contracts.StageFetch,
			Message: "Failed to fetch data: unexpected status code: 404",
		}}
		h := NewDataHandler(svc, logger.Nop())

		rec := httptest.NewRecorder()
		h.Validate(rec, httptest.NewRequest(http.MethodPost, "/api/data/validate", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestDataHandler_GetInfo(t *testing.T) {
	h := NewDataHandler(&fakeRefresher{}, logger.Nop())
	rec := httptest.NewRecorder()
	h.GetInfo(rec, httptest.NewRequest(http.MethodGet, "/api/data/info", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	h = NewDataHandler(&fakeRefresher{info: &contracts.DatasetInfo{TotalRows: 42}}, logger.Nop())
	rec = httptest.NewRecorder()
	h.GetInfo(rec, httptest.NewRequest(http.MethodGet, "/api/data/info", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDataHandler_GetRuns(t *testing.T) {
	svc := &fakeRefresher{runs: []*contracts.ValidationRun{{ID: "a"}, {ID: "b"}}}
	h := NewDataHandler(svc, logger.Nop())

	rec := httptest.NewRecorder()
	h.GetRuns(rec, httptest.NewRequest(http.MethodGet, "/api/data/runs?limit=5", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, svc.limit)
	assert.Equal(t, float64(2), decode(t, rec)["count"])

	rec = httptest.NewRecorder()
	h.GetRuns(rec, httptest.NewRequest(http.MethodGet, "/api/data/runs", nil))
	assert.Equal(t, 20, svc.limit)

	for _, bad := range []string{"0", "-1", "501", "ten"} {
		rec = httptest.NewRecorder()
		h.GetRuns(rec, httptest.NewRequest(http.MethodGet, "/api/data/runs?limit="+bad, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
}

type fakeArtifacts struct {
	models *forecast.Models
	err    error
}

func (f fakeArtifacts) Dir() string { return "outputs/models" }

func (f fakeArtifacts) Status() map[string]bool {
	status := make(map[string]bool)
	for _, name := range forecast.RequiredArtifacts() {
		status[name] = f.err == nil
	}
	return status
}

func (f fakeArtifacts) LoadModels() (*forecast.Models, error) { return f.models, f.err }

func flatModels() *forecast.Models {
	n := len(forecast.FeatureNames())
	m := &forecast.Models{
		Regression:     forecast.LinearModel{Coefficients: make([]float64, n), Intercept: 0.01},
		Classification: forecast.LogisticModel{Coefficients: make([]float64, n)},
		Scaler:         forecast.StandardScaler{Mean: make([]float64, n), Scale: make([]float64, n)},
		FeatureNames:   forecast.FeatureNames(),
	}
	for i := range m.Scaler.Scale {
		m.Scaler.Scale[i] = 1
	}
	return m
}

func newForecastHandler(store fakeArtifacts) *ForecastHandler {
	return NewForecastHandler(forecast.NewPredictor(store, logger.Nop()), store, logger.Nop())
}

func TestForecastHandler_GetModels(t *testing.T) {
	rec := httptest.NewRecorder()
	newForecastHandler(fakeArtifacts{models: flatModels()}).GetModels(rec, httptest.NewRequest(http.MethodGet, "/api/models", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["loaded"])

	rec = httptest.NewRecorder()
	newForecastHandler(fakeArtifacts{err: forecast.ErrArtifactNotFound}).GetModels(rec, httptest.NewRequest(http.MethodGet, "/api/models", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, decode(t, rec)["loaded"])
}

func TestForecastHandler_Predict(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(`{}`))
		newForecastHandler(fakeArtifacts{models: flatModels()}).Predict(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		pred := body["prediction"].(map[string]interface{})
		assert.InDelta(t, 0.01, pred["expected_change"], 1e-9)
		assert.InDelta(t, 50500, pred["expected_price"], 1e-6)
		assert.InDelta(t, 0.5, pred["probability"], 1e-9)
		assert.Equal(t, "Medium Risk", pred["risk_level"])
	})

	t.Run("out of bounds", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(`{"rsi": 120}`))
		newForecastHandler(fakeArtifacts{models: flatModels()}).Predict(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec)["fields"], "rsi")
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(`{`))
		newForecastHandler(fakeArtifacts{models: flatModels()}).Predict(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("models missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(`{}`))
		newForecastHandler(fakeArtifacts{err: forecast.ErrArtifactNotFound}).Predict(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, decode(t, rec)["error"], "outputs/models")
	})
}

func TestPagesHandler(t *testing.T) {
	h := NewPagesHandler()

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/pages", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/pages/x", nil), map[string]string{"slug": dashboard.SlugStudy})
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dashboard.SlugStudy, decode(t, rec)["slug"])

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/pages/x", nil), map[string]string{"slug": "nope"})
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
