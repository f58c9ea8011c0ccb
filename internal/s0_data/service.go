package s0_data

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/tradecare/backend/internal/contracts"
	"github.com/wonny/tradecare/backend/internal/s0_data/quality"
	"github.com/wonny/tradecare/backend/pkg/logger"
	"github.com/wonny/tradecare/backend/pkg/metrics"
	"github.com/wonny/tradecare/backend/pkg/redis"
)

// historySize is the number of runs kept in memory when no database is configured
const historySize = 50

// Pipeline is the fetch-and-validate entry point
type Pipeline interface {
	FetchAndValidate(ctx context.Context, sink contracts.StatusSink) (*contracts.Dataset, error)
}

// RefreshResult is the outcome of one Refresh
type RefreshResult struct {
	Run     *contracts.ValidationRun
	Dataset *contracts.Dataset     // nil unless validated
	Info    *contracts.DatasetInfo // nil unless validated
}

// Service wraps the pipeline with run bookkeeping: run IDs, persistence,
// caching of the latest dataset info and metrics.
// ⭐ SSOT: S0 데이터 갱신 진입점
type Service struct {
	pipeline Pipeline
	repo     contracts.RunRepository
	cache    *redis.Cache
	sink     contracts.StatusSink
	logger   *logger.Logger

	mu      sync.RWMutex
	latest  *contracts.DatasetInfo
	history []*contracts.ValidationRun
}

// NewService creates a refresh service around pipeline
func NewService(pipeline Pipeline, log *logger.Logger) *Service {
	return &Service{
		pipeline: pipeline,
		logger:   log.WithField("module", "s0_data"),
	}
}

// WithRepository persists runs and validated bars
func (s *Service) WithRepository(repo contracts.RunRepository) *Service {
	s.repo = repo
	return s
}

// WithCache caches the latest dataset info
func (s *Service) WithCache(cache *redis.Cache) *Service {
	s.cache = cache
	return s
}

// WithSink forwards status lines of every run
func (s *Service) WithSink(sink contracts.StatusSink) *Service {
	s.sink = sink
	return s
}

// Refresh runs the pipeline once and records the outcome.
// A pipeline failure is returned unchanged along with the failed run.
// Bookkeeping failures are logged and never fail the refresh.
func (s *Service) Refresh(ctx context.Context) (*RefreshResult, error) {
	run := &contracts.ValidationRun{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
	}
	if src, ok := s.pipeline.(interface{ Source() string }); ok {
		run.Source = src.Source()
	}

	log := s.logger.WithField("run_id", run.ID)
	log.Info("Validation run started")

	ds, err := s.pipeline.FetchAndValidate(ctx, runSink{id: run.ID, next: s.sink})

	run.FinishedAt = time.Now()
	run.Duration = run.FinishedAt.Sub(run.StartedAt)

	result := &RefreshResult{Run: run}

	if err != nil {
		run.Status = contracts.RunFailed
		run.FailedStage = quality.StageOf(err)
		run.ErrorKind = string(quality.KindOf(err))
		run.Message = err.Error()

		metrics.ObserveValidation(run.Duration, nonEmpty(run.ErrorKind, "unknown"), string(run.FailedStage), 0)
		s.record(ctx, run)

		log.WithError(err).WithFields(map[string]interface{}{
			"stage": run.FailedStage,
			"kind":  run.ErrorKind,
		}).Warn("Validation run failed")
		return result, err
	}

	run.Status = contracts.RunValidated
	run.RowCount = ds.Len()
	if ds.Source != "" {
		run.Source = ds.Source
	}
	result.Dataset = ds

	info, infoErr := quality.Describe(ds)
	if infoErr != nil {
		log.WithError(infoErr).Warn("Failed to describe dataset")
	} else {
		run.FirstDate = info.DateRange.First
		run.LastDate = info.DateRange.Last
		result.Info = info

		s.mu.Lock()
		s.latest = info
		s.mu.Unlock()

		if s.cache != nil {
			if err := s.cache.Set(ctx, redis.DatasetInfoKey(), info, redis.TTLLong); err != nil {
				log.WithError(err).Warn("Failed to cache dataset info")
			}
		}
	}

	metrics.ObserveValidation(run.Duration, "", "", run.RowCount)
	s.record(ctx, run)
	s.storeBars(ctx, ds, log)

	log.WithFields(map[string]interface{}{
		"rows":     run.RowCount,
		"duration": run.Duration,
	}).Info("Validation run completed")

	return result, nil
}

// record keeps the run in memory and in the repository when configured
func (s *Service) record(ctx context.Context, run *contracts.ValidationRun) {
	s.mu.Lock()
	s.history = append([]*contracts.ValidationRun{run}, s.history...)
	if len(s.history) > historySize {
		s.history = s.history[:historySize]
	}
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.SaveRun(ctx, run); err != nil {
			s.logger.WithError(err).WithField("run_id", run.ID).Warn("Failed to persist validation run")
		}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, redis.ValidationRunKey(run.ID), run, redis.TTLLong); err != nil {
			s.logger.WithError(err).WithField("run_id", run.ID).Debug("Failed to cache validation run")
		}
	}
}

func (s *Service) storeBars(ctx context.Context, ds *contracts.Dataset, log *logger.Logger) {
	if s.repo == nil {
		return
	}

	bars, err := ds.Bars()
	if err != nil {
		log.WithError(err).Warn("Validated dataset has unparsable rows, bars not stored")
		return
	}

	n, err := s.repo.ReplaceBars(ctx, bars)
	if err != nil {
		log.WithError(err).Warn("Failed to store hourly bars")
		return
	}
	log.WithField("bars", n).Debug("Hourly bars stored")
}

// LatestInfo returns the info of the last validated dataset, from memory or cache
func (s *Service) LatestInfo(ctx context.Context) (*contracts.DatasetInfo, bool) {
	s.mu.RLock()
	info := s.latest
	s.mu.RUnlock()
	if info != nil {
		return info, true
	}

	if s.cache == nil {
		return nil, false
	}

	var cached contracts.DatasetInfo
	found, err := s.cache.Get(ctx, redis.DatasetInfoKey(), &cached)
	if err != nil {
		s.logger.WithError(err).Debug("Dataset info cache read failed")
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &cached, true
}

// Runs returns recent runs, newest first, from the repository when configured
func (s *Service) Runs(ctx context.Context, limit int) ([]*contracts.ValidationRun, error) {
	if s.repo != nil {
		return s.repo.ListRuns(ctx, limit)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}
	out := make([]*contracts.ValidationRun, limit)
	copy(out, s.history[:limit])
	return out, nil
}

// runSink stamps events with the run ID before forwarding them
type runSink struct {
	id   string
	next contracts.StatusSink
}

func (r runSink) Emit(e contracts.StatusEvent) {
	if r.next == nil {
		return
	}
	e.RunID = r.id
	r.next.Emit(e)
}

func nonEmpty(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
