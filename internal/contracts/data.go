package contracts

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Column names of the raw hourly BTC feed
const (
	ColTimeUnix   = "TIME_UNIX"
	ColDateStr    = "DATE_STR"
	ColHourStr    = "HOUR_STR"
	ColOpenPrice  = "OPEN_PRICE"
	ColHighPrice  = "HIGH_PRICE"
	ColClosePrice = "CLOSE_PRICE"
	ColLowPrice   = "LOW_PRICE"
	ColVolumeFrom = "VOLUME_FROM"
	ColVolumeTo   = "VOLUME_TO"
)

// ExpectedColumns returns the schema contract of the raw feed, in upstream order.
// A new slice is returned on every call.
// ⭐ SSOT: 원시 데이터 스키마는 여기서만 정의
func ExpectedColumns() []string {
	return []string{
		ColTimeUnix, ColDateStr, ColHourStr,
		ColOpenPrice, ColHighPrice, ColClosePrice, ColLowPrice,
		ColVolumeFrom, ColVolumeTo,
	}
}

// PriceColumns returns the price columns in the order they are range-checked
func PriceColumns() []string {
	return []string{ColOpenPrice, ColHighPrice, ColLowPrice, ColClosePrice}
}

// Dataset is the raw tabular payload exactly as parsed from the feed.
// Cells stay as text so that every check sees what the upstream sent.
// Validators never mutate a Dataset.
type Dataset struct {
	Columns   []string   `json:"columns"`
	Records   [][]string `json:"-"`
	Source    string     `json:"source"`
	FetchedAt time.Time  `json:"fetched_at"`
}

// Len returns the number of data rows (header excluded)
func (d *Dataset) Len() int {
	return len(d.Records)
}

// ColumnIndex returns the position of name, or -1
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Values returns all cells of a column in row order
func (d *Dataset) Values(name string) ([]string, error) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %s not present", name)
	}

	values := make([]string, len(d.Records))
	for i, rec := range d.Records {
		if idx >= len(rec) {
			return nil, fmt.Errorf("row %d has %d fields, column %s missing", i, len(rec), name)
		}
		values[i] = rec[idx]
	}
	return values, nil
}

// Bars converts the records into typed hourly bars.
// The dataset must carry every expected column; numeric cells must parse.
func (d *Dataset) Bars() ([]HourlyBar, error) {
	idx := make(map[string]int, len(d.Columns))
	for _, col := range ExpectedColumns() {
		i := d.ColumnIndex(col)
		if i < 0 {
			return nil, fmt.Errorf("column %s not present", col)
		}
		idx[col] = i
	}

	bars := make([]HourlyBar, 0, len(d.Records))
	for row, rec := range d.Records {
		if len(rec) != len(d.Columns) {
			return nil, fmt.Errorf("row %d has %d fields, expected %d", row, len(rec), len(d.Columns))
		}

		var bar HourlyBar
		var err error

		ts, err := strconv.ParseFloat(strings.TrimSpace(rec[idx[ColTimeUnix]]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", row, ColTimeUnix, err)
		}
		bar.TimeUnix = int64(ts)
		bar.Date = rec[idx[ColDateStr]]
		bar.Hour = rec[idx[ColHourStr]]

		fields := []struct {
			col string
			dst *float64
		}{
			{ColOpenPrice, &bar.Open},
			{ColHighPrice, &bar.High},
			{ColClosePrice, &bar.Close},
			{ColLowPrice, &bar.Low},
			{ColVolumeFrom, &bar.VolumeFrom},
			{ColVolumeTo, &bar.VolumeTo},
		}
		for _, f := range fields {
			*f.dst, err = strconv.ParseFloat(strings.TrimSpace(rec[idx[f.col]]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %s: %w", row, f.col, err)
			}
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

// HourlyBar is one typed OHLCV row of the feed
type HourlyBar struct {
	TimeUnix   int64   `json:"time_unix"`
	Date       string  `json:"date_str"`
	Hour       string  `json:"hour_str"`
	Open       float64 `json:"open_price"`
	High       float64 `json:"high_price"`
	Low        float64 `json:"low_price"`
	Close      float64 `json:"close_price"`
	VolumeFrom float64 `json:"volume_from"`
	VolumeTo   float64 `json:"volume_to"`
}

// DatasetInfo summarises a validated dataset for the dashboard
type DatasetInfo struct {
	TotalRows    int        `json:"total_rows"`
	TotalColumns int        `json:"total_columns"`
	Columns      []string   `json:"columns"`
	DateRange    DateRange  `json:"date_range"`
	PriceRange   PriceRange `json:"price_range"`
	MemoryBytes  int64      `json:"memory_bytes"`
	FetchedAt    time.Time  `json:"fetched_at"`
}

// DateRange is the first and last DATE_STR in row order
type DateRange struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// PriceRange holds CLOSE_PRICE statistics
type PriceRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}
