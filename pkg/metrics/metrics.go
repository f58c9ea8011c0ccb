package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ⭐ SSOT: 파이프라인 메트릭은 여기서만 정의
var (
	ValidationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradecare_validation_runs_total",
		Help: "Raw data validation runs by outcome and error kind",
	}, []string{"outcome", "kind"})

	ValidationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tradecare_validation_duration_seconds",
		Help:    "Duration of a full fetch and validate run",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	StageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradecare_validation_stage_failures_total",
		Help: "Validation failures by pipeline stage",
	}, []string{"stage"})

	DatasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tradecare_dataset_rows",
		Help: "Row count of the most recently validated dataset",
	})

	Predictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tradecare_predictions_total",
		Help: "Predictions served by risk level",
	}, []string{"risk_level"})
)

// ObserveValidation records the outcome of one pipeline run.
// kind and stage are empty on success.
func ObserveValidation(duration time.Duration, kind, stage string, rows int) {
	ValidationDuration.Observe(duration.Seconds())

	if kind == "" {
		ValidationRuns.WithLabelValues("validated", "none").Inc()
		DatasetRows.Set(float64(rows))
		return
	}

	ValidationRuns.WithLabelValues("failed", kind).Inc()
	if stage != "" {
		StageFailures.WithLabelValues(stage).Inc()
	}
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
