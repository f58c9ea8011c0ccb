package quality

import (
	"github.com/wonny/tradecare/backend/internal/contracts"
	"github.com/wonny/tradecare/backend/pkg/config"
)

// Default thresholds of the raw hourly feed
const (
	DefaultMinRows      = 96000      // ~ Nov 2014 to present
	DefaultMinTimestamp = 1416031200 // 2014-11-15
	DefaultMaxPrice     = 500000.0
	DefaultMinPrice     = 0.0
)

// deniedChars are rejected anywhere in the textual columns, scanned in this order
const deniedChars = "<>;&|$`\\\"'()"

// Thresholds is the immutable configuration of the gate.
// Build it once at startup and pass it to NewGate.
type Thresholds struct {
	ExpectedColumns []string
	MinRows         int
	MinTimestamp    int64
	MaxPrice        float64
	MinPrice        float64
}

// DefaultThresholds returns the production thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		ExpectedColumns: contracts.ExpectedColumns(),
		MinRows:         DefaultMinRows,
		MinTimestamp:    DefaultMinTimestamp,
		MaxPrice:        DefaultMaxPrice,
		MinPrice:        DefaultMinPrice,
	}
}

// NewThresholds builds thresholds from the validation config
func NewThresholds(cfg config.ValidationConfig) Thresholds {
	t := DefaultThresholds()
	t.MinRows = cfg.MinRows
	t.MinTimestamp = cfg.MinTimestamp
	t.MaxPrice = cfg.MaxPrice
	t.MinPrice = cfg.MinPrice
	return t
}

// expected returns a private copy of the column contract
func (t Thresholds) expected() []string {
	if len(t.ExpectedColumns) == 0 {
		return contracts.ExpectedColumns()
	}
	cols := make([]string, len(t.ExpectedColumns))
	copy(cols, t.ExpectedColumns)
	return cols
}
