package fetcher

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/wonny/tradecare/backend/internal/contracts"
	"github.com/wonny/tradecare/backend/internal/s0_data/quality"
	"github.com/wonny/tradecare/backend/pkg/logger"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Downloader retrieves a raw CSV document
type Downloader interface {
	FetchCSV(ctx context.Context, url string) ([]byte, error)
}

// Fetcher downloads and parses the raw hourly feed.
// It implements contracts.DatasetFetcher.
type Fetcher struct {
	downloader Downloader
	url        string
	logger     *logger.Logger
}

// New creates a fetcher bound to a fixed source URL
func New(downloader Downloader, url string, log *logger.Logger) *Fetcher {
	return &Fetcher{
		downloader: downloader,
		url:        url,
		logger:     log.WithField("module", "fetcher"),
	}
}

// URL returns the configured source location
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch performs one retrieval. Every failure is a quality.KindFetch error
// carrying the cause; no partial dataset is ever returned.
func (f *Fetcher) Fetch(ctx context.Context) (*contracts.Dataset, error) {
	start := time.Now()

	body, err := f.downloader.FetchCSV(ctx, f.url)
	if err != nil {
		return nil, fetchError(err)
	}

	ds, err := Parse(body)
	if err != nil {
		return nil, fetchError(err)
	}
	ds.Source = f.url
	ds.FetchedAt = time.Now()

	f.logger.WithFields(map[string]interface{}{
		"rows":     ds.Len(),
		"columns":  len(ds.Columns),
		"duration": time.Since(start),
	}).Info("Dataset fetched")

	return ds, nil
}

// Parse turns a CSV payload (header row, then records) into a Dataset.
// Header names are kept exactly as sent so structure checks see upstream drift.
func Parse(payload []byte) (*contracts.Dataset, error) {
	payload = bytes.TrimPrefix(payload, utf8BOM)

	r := csv.NewReader(bytes.NewReader(payload))
	r.ReuseRecord = false
	// Stray quotes stay in the cell so the string checks classify them
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("no columns to parse from file")
	}
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse records: %w", err)
		}
		records = append(records, rec)
	}

	return &contracts.Dataset{
		Columns: header,
		Records: records,
	}, nil
}

func fetchError(err error) error {
	return &quality.ValidationError{
		Kind:    quality.KindFetch,
		Stage:   contracts.StageFetch,
		Message: fmt.Sprintf("Failed to fetch data: %v", err),
		Err:     err,
	}
}
