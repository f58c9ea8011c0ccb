package jobs

import (
	"context"

	"github.com/wonny/tradecare/backend/internal/s0_data"
	"github.com/wonny/tradecare/backend/pkg/logger"
)

// Refresher runs one fetch-and-validate pass
type Refresher interface {
	Refresh(ctx context.Context) (*s0_data.RefreshResult, error)
}

// DatasetValidationJob revalidates the upstream dataset periodically
// ⭐ SSOT: 데이터 재검증 스케줄은 이 Job에서만
type DatasetValidationJob struct {
	service  Refresher
	schedule string
	logger   *logger.Logger
}

// NewDatasetValidationJob creates a new validation job on a seconds-enabled cron schedule
func NewDatasetValidationJob(service Refresher, schedule string, log *logger.Logger) *DatasetValidationJob {
	return &DatasetValidationJob{
		service:  service,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *DatasetValidationJob) Name() string {
	return "dataset_validation"
}

// Schedule returns the cron schedule
func (j *DatasetValidationJob) Schedule() string {
	return j.schedule
}

// Run executes one validation run.
// A failed run is returned as the job error so it lands in the history.
func (j *DatasetValidationJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled dataset validation")

	result, err := j.service.Refresh(ctx)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id": result.Run.ID,
		"rows":   result.Run.RowCount,
	}).Info("Scheduled dataset validation completed")

	return nil
}
