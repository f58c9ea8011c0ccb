package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wonny/tradecare/backend/internal/contracts"
	"github.com/wonny/tradecare/backend/internal/s0_data/quality"
	"github.com/wonny/tradecare/backend/pkg/logger"
)

const banner = "TradeCare Data Validation"

var separator = strings.Repeat("-", 60)

// Collector runs one fetch followed by the validation gate
// ⭐ SSOT: 수집 → 검증 파이프라인 오케스트레이션은 이 패키지에서만
type Collector struct {
	fetcher   contracts.DatasetFetcher
	validator contracts.DatasetValidator
	logger    *logger.Logger
}

// NewCollector creates a new Collector instance
func NewCollector(fetcher contracts.DatasetFetcher, validator contracts.DatasetValidator, log *logger.Logger) *Collector {
	return &Collector{
		fetcher:   fetcher,
		validator: validator,
		logger:    log.WithField("module", "collector"),
	}
}

// FetchAndValidate fetches the raw feed and runs every check over it.
// The first error of any stage is returned unchanged; on success the dataset
// is returned exactly as fetched. sink may be nil.
func (c *Collector) FetchAndValidate(ctx context.Context, sink contracts.StatusSink) (*contracts.Dataset, error) {
	start := time.Now()

	info(sink, contracts.StageFetch, separator)
	info(sink, contracts.StageFetch, banner)
	info(sink, contracts.StageFetch, separator)

	// 1. Fetch
	emit(sink, contracts.StageFetch, contracts.EventStarted, "Fetching data from GitHub...")
	if src := c.Source(); src != "" {
		info(sink, contracts.StageFetch, "URL: "+src)
	}

	ds, err := c.fetcher.Fetch(ctx)
	if err != nil {
		emit(sink, contracts.StageFetch, contracts.EventFailed, err.Error())
		c.logger.WithError(err).WithField("stage", contracts.StageFetch).Error("Dataset fetch failed")
		return nil, err
	}
	emit(sink, contracts.StageFetch, contracts.EventPassed,
		fmt.Sprintf("✓ Data fetched: %s rows & %d columns", quality.FormatCount(ds.Len()), len(ds.Columns)))

	// 2. Validate
	if err := c.validator.Validate(ds, sink); err != nil {
		c.logger.WithError(err).WithFields(map[string]interface{}{
			"stage": quality.StageOf(err),
			"kind":  quality.KindOf(err),
			"rows":  ds.Len(),
		}).Error("Dataset validation failed")
		return nil, err
	}

	// 3. Done
	first, last := dateBounds(ds)
	info(sink, contracts.StageValidated, separator)
	emit(sink, contracts.StageValidated, contracts.EventPassed, "All validation checks passed!")
	info(sink, contracts.StageValidated,
		fmt.Sprintf("Data ready: %s rows from %s to %s", quality.FormatCount(ds.Len()), first, last))
	info(sink, contracts.StageValidated, separator)

	c.logger.WithFields(map[string]interface{}{
		"rows":     ds.Len(),
		"first":    first,
		"last":     last,
		"duration": time.Since(start),
	}).Info("Dataset validated")

	return ds, nil
}

// Source returns the fetcher's source location, if it exposes one
func (c *Collector) Source() string {
	if src, ok := c.fetcher.(interface{ URL() string }); ok {
		return src.URL()
	}
	return ""
}

func dateBounds(ds *contracts.Dataset) (string, string) {
	dates, err := ds.Values(contracts.ColDateStr)
	if err != nil || len(dates) == 0 {
		return "", ""
	}
	return dates[0], dates[len(dates)-1]
}

func info(sink contracts.StatusSink, stage contracts.Stage, msg string) {
	emit(sink, stage, contracts.EventInfo, msg)
}

func emit(sink contracts.StatusSink, stage contracts.Stage, state contracts.EventState, msg string) {
	if sink == nil {
		return
	}
	sink.Emit(contracts.StatusEvent{
		Time:    time.Now(),
		Stage:   stage,
		State:   state,
		Message: msg,
	})
}
