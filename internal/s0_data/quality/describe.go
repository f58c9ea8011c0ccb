package quality

import (
	"fmt"
	"math"
	"time"

	"github.com/wonny/tradecare/backend/internal/contracts"
)

// Describe summarises a dataset for display.
// It expects a dataset that already passed the gate.
func Describe(ds *contracts.Dataset) (*contracts.DatasetInfo, error) {
	info := &contracts.DatasetInfo{
		TotalRows:    ds.Len(),
		TotalColumns: len(ds.Columns),
		Columns:      append([]string(nil), ds.Columns...),
		MemoryBytes:  memoryUsage(ds),
		FetchedAt:    ds.FetchedAt,
	}
	if info.FetchedAt.IsZero() {
		info.FetchedAt = time.Now()
	}

	dates, err := ds.Values(contracts.ColDateStr)
	if err != nil {
		return nil, fmt.Errorf("describe dataset: %w", err)
	}
	if len(dates) > 0 {
		info.DateRange = contracts.DateRange{First: dates[0], Last: dates[len(dates)-1]}
	}

	closes, err := ds.Values(contracts.ColClosePrice)
	if err != nil {
		return nil, fmt.Errorf("describe dataset: %w", err)
	}

	parsed, firstBad := parseNumbers(closes, true)
	if firstBad >= 0 {
		return nil, fmt.Errorf("describe dataset: non-numeric %s at row %d", contracts.ColClosePrice, firstBad)
	}

	if minVal, maxVal, ok := minMax(parsed); ok {
		sum, n := 0.0, 0
		for _, v := range parsed {
			if !math.IsNaN(v) {
				sum += v
				n++
			}
		}
		info.PriceRange = contracts.PriceRange{Min: minVal, Max: maxVal, Mean: sum / float64(n)}
	}

	return info, nil
}

// memoryUsage approximates the in-memory size of the records:
// a string header per cell plus its bytes, and a slice header per row
func memoryUsage(ds *contracts.Dataset) int64 {
	const stringHeader, sliceHeader = 16, 24

	var total int64
	for _, c := range ds.Columns {
		total += stringHeader + int64(len(c))
	}
	for _, rec := range ds.Records {
		total += sliceHeader
		for _, cell := range rec {
			total += stringHeader + int64(len(cell))
		}
	}
	return total
}
