package quality

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/tradecare/backend/internal/contracts"
)

var (
	safeColumnPattern = regexp.MustCompile(`^[A-Z_]+$`)
	datePattern       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Gate runs the raw data integrity checks in a fixed order.
// Checks are pure predicates: a Gate never mutates the dataset it inspects.
// ⭐ SSOT: 원시 데이터 검증 게이트
type Gate struct {
	thresholds Thresholds
}

// NewGate creates a gate bound to the given thresholds
func NewGate(t Thresholds) *Gate {
	t.ExpectedColumns = t.expected()
	return &Gate{thresholds: t}
}

// Thresholds returns a copy of the gate configuration
func (g *Gate) Thresholds() Thresholds {
	t := g.thresholds
	t.ExpectedColumns = g.thresholds.expected()
	return t
}

// check is one stage of the gate
type check struct {
	stage contracts.Stage
	start string
	run   func(ds *contracts.Dataset) ([]string, error)
}

func (g *Gate) checks() []check {
	return []check{
		{contracts.StageStructure, "Validating data structure...", g.checkStructure},
		{contracts.StageStrings, "Validating string data safety...", g.checkStrings},
		{contracts.StagePrices, "Validating price ranges...", g.checkPrices},
		{contracts.StageCompleteness, "Validating data completeness...", g.checkCompleteness},
		{contracts.StageTimestamps, "Validating timestamps...", g.checkTimestamps},
	}
}

// Validate runs structure, strings, prices, completeness and timestamps in that order.
// The first failure is returned as is; later stages do not run.
// sink may be nil.
func (g *Gate) Validate(ds *contracts.Dataset, sink contracts.StatusSink) error {
	for _, c := range g.checks() {
		emit(sink, c.stage, contracts.EventStarted, c.start)

		passed, err := c.run(ds)
		if err != nil {
			emit(sink, c.stage, contracts.EventFailed, err.Error())
			return err
		}

		for _, line := range passed {
			emit(sink, c.stage, contracts.EventPassed, line)
		}
	}
	return nil
}

// ValidateStructure checks exact column order and safe column names
func (g *Gate) ValidateStructure(ds *contracts.Dataset) error {
	_, err := g.checkStructure(ds)
	return err
}

// ValidateStrings checks DATE_STR and HOUR_STR content
func (g *Gate) ValidateStrings(ds *contracts.Dataset) error {
	_, err := g.checkStrings(ds)
	return err
}

// ValidatePrices checks every price column against [MinPrice, MaxPrice]
func (g *Gate) ValidatePrices(ds *contracts.Dataset) error {
	_, err := g.checkPrices(ds)
	return err
}

// ValidateCompleteness checks the row count against MinRows
func (g *Gate) ValidateCompleteness(ds *contracts.Dataset) error {
	_, err := g.checkCompleteness(ds)
	return err
}

// ValidateTimestamps checks the earliest TIME_UNIX against MinTimestamp
func (g *Gate) ValidateTimestamps(ds *contracts.Dataset) error {
	_, err := g.checkTimestamps(ds)
	return err
}

func (g *Gate) checkStructure(ds *contracts.Dataset) ([]string, error) {
	expected := g.thresholds.ExpectedColumns
	actual := ds.Columns

	if !equalColumns(expected, actual) {
		return nil, &ValidationError{
			Kind:  KindSchema,
			Stage: contracts.StageStructure,
			Message: fmt.Sprintf(
				"Data structure compromised!\nExpected columns: %s\nActual columns: %s\nMissing: %s\nExtra: %s",
				listString(expected), listString(actual),
				setString(difference(expected, actual)), setString(difference(actual, expected)),
			),
		}
	}

	for _, col := range actual {
		if !safeColumnPattern.MatchString(col) {
			return nil, &ValidationError{
				Kind:   KindSchema,
				Stage:  contracts.StageStructure,
				Column: col,
				Message: fmt.Sprintf(
					"Invalid column name detected: '%s'\nColumn names must contain only uppercase letters and underscores.\nPotential injection attack or data corruption.",
					col,
				),
			}
		}
	}

	return []string{
		fmt.Sprintf("✓ Column structure valid: %d columns present", len(expected)),
		"✓ Column names safe: only alphanumeric and underscores",
	}, nil
}

// checkStrings scans the denylist first so that a hostile value is always reported
// as a security failure, then the date shape, then the hour range.
func (g *Gate) checkStrings(ds *contracts.Dataset) ([]string, error) {
	dates, err := columnValues(ds, contracts.ColDateStr, contracts.StageStrings)
	if err != nil {
		return nil, err
	}
	hours, err := columnValues(ds, contracts.ColHourStr, contracts.StageStrings)
	if err != nil {
		return nil, err
	}

	// 1. Denylist
	for _, col := range []struct {
		name   string
		values []string
	}{{contracts.ColDateStr, dates}, {contracts.ColHourStr, hours}} {
		for _, ch := range deniedChars {
			for _, v := range col.values {
				if strings.ContainsRune(v, ch) {
					return nil, &ValidationError{
						Kind:   KindSecurity,
						Stage:  contracts.StageStrings,
						Column: col.name,
						Value:  v,
						Message: fmt.Sprintf(
							"Dangerous character '%c' detected in %s\nThis could indicate injection attack or data corruption.\nOnly safe alphanumeric characters and hyphens allowed.",
							ch, col.name,
						),
					}
				}
			}
		}
	}

	// 2. Date shape (YYYY-MM-DD, calendar validity not checked)
	invalid := 0
	sample := ""
	for _, v := range dates {
		if !datePattern.MatchString(v) {
			if invalid == 0 {
				sample = v
			}
			invalid++
		}
	}
	if invalid > 0 {
		return nil, &ValidationError{
			Kind:   KindFormat,
			Stage:  contracts.StageStrings,
			Column: contracts.ColDateStr,
			Value:  sample,
			Message: fmt.Sprintf(
				"Invalid DATE_STR format detected: '%s'\nExpected format: YYYY-MM-DD (e.g., 2024-11-21)\nFound %d invalid entries.\nPotential injection attack or data corruption.",
				sample, invalid,
			),
		}
	}

	// 3. Hour range, numeric coercion over all rows before the bounds
	parsed, firstBad := parseNumbers(hours, false)
	if firstBad >= 0 {
		return nil, hourError("Non-numeric values in HOUR_STR", hours[firstBad])
	}
	for i, h := range parsed {
		if h < 0 || h > 23 {
			return nil, hourError("Hour values outside 0-23 range", hours[i])
		}
	}

	return []string{"✓ String data validated: safe formats, no injection patterns"}, nil
}

func hourError(reason, sample string) error {
	return &ValidationError{
		Kind:   KindFormat,
		Stage:  contracts.StageStrings,
		Column: contracts.ColHourStr,
		Value:  sample,
		Message: fmt.Sprintf(
			"Invalid HOUR_STR values detected: %s\nExpected: integers 0-23\nPotential injection attack or data corruption.",
			reason,
		),
	}
}

func (g *Gate) checkPrices(ds *contracts.Dataset) ([]string, error) {
	for _, col := range contracts.PriceColumns() {
		values, err := columnValues(ds, col, contracts.StagePrices)
		if err != nil {
			return nil, err
		}

		parsed, firstBad := parseNumbers(values, true)
		if firstBad >= 0 {
			return nil, &ValidationError{
				Kind:    KindRange,
				Stage:   contracts.StagePrices,
				Column:  col,
				Value:   values[firstBad],
				Message: fmt.Sprintf("Invalid data: %s contains non-numeric values ('%s')", col, values[firstBad]),
			}
		}

		minVal, maxVal, ok := minMax(parsed)
		if !ok {
			continue
		}

		if minVal < g.thresholds.MinPrice {
			return nil, &ValidationError{
				Kind:    KindRange,
				Stage:   contracts.StagePrices,
				Column:  col,
				Value:   formatFloat(minVal),
				Message: fmt.Sprintf("Invalid data: %s contains negative values (min: %s)", col, formatFloat(minVal)),
			}
		}

		if maxVal > g.thresholds.MaxPrice {
			return nil, &ValidationError{
				Kind:   KindRange,
				Stage:  contracts.StagePrices,
				Column: col,
				Value:  formatFloat(maxVal),
				Message: fmt.Sprintf("Suspicious data: %s contains values > $%s (max: $%s)",
					col, formatAmount(g.thresholds.MaxPrice), formatMoney(maxVal)),
			}
		}
	}

	return []string{fmt.Sprintf("✓ Price ranges valid: all prices between $%s and $%s",
		formatAmount(g.thresholds.MinPrice), formatAmount(g.thresholds.MaxPrice))}, nil
}

func (g *Gate) checkCompleteness(ds *contracts.Dataset) ([]string, error) {
	rows := ds.Len()
	if rows < g.thresholds.MinRows {
		return nil, &ValidationError{
			Kind:  KindCompleteness,
			Stage: contracts.StageCompleteness,
			Value: strconv.Itoa(rows),
			Message: fmt.Sprintf("Dataset truncated: only %s rows.\nExpected at least %s rows (Nov 2014 - present)",
				formatInt(int64(rows)), formatInt(int64(g.thresholds.MinRows))),
		}
	}

	return []string{fmt.Sprintf("✓ Row count valid: %s rows (>= %s)",
		formatInt(int64(rows)), formatInt(int64(g.thresholds.MinRows)))}, nil
}

func (g *Gate) checkTimestamps(ds *contracts.Dataset) ([]string, error) {
	values, err := columnValues(ds, contracts.ColTimeUnix, contracts.StageTimestamps)
	if err != nil {
		return nil, err
	}

	parsed, firstBad := parseNumbers(values, true)
	if firstBad >= 0 {
		return nil, &ValidationError{
			Kind:    KindTimestamp,
			Stage:   contracts.StageTimestamps,
			Column:  contracts.ColTimeUnix,
			Value:   values[firstBad],
			Message: fmt.Sprintf("Invalid timestamps: non-numeric value '%s'", values[firstBad]),
		}
	}

	if minTS, _, ok := minMax(parsed); ok && minTS < float64(g.thresholds.MinTimestamp) {
		return nil, &ValidationError{
			Kind:   KindTimestamp,
			Stage:  contracts.StageTimestamps,
			Column: contracts.ColTimeUnix,
			Value:  formatFloat(minTS),
			Message: fmt.Sprintf("Invalid timestamps: earliest is %s\nExpected >= %d (Nov 2014)",
				formatFloat(minTS), g.thresholds.MinTimestamp),
		}
	}

	first := ""
	if dates, err := ds.Values(contracts.ColDateStr); err == nil && len(dates) > 0 {
		first = dates[0]
	}
	return []string{fmt.Sprintf("✓ Timestamps valid: starts from %s", first)}, nil
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

// columnValues reads a column, reporting a schema failure if it is absent.
// Only reachable when a check runs without the structure check before it.
func columnValues(ds *contracts.Dataset, col string, stage contracts.Stage) ([]string, error) {
	values, err := ds.Values(col)
	if err != nil {
		return nil, &ValidationError{
			Kind:    KindSchema,
			Stage:   stage,
			Column:  col,
			Message: fmt.Sprintf("Data structure compromised!\nMissing: {'%s'}", col),
			Err:     err,
		}
	}
	return values, nil
}

// parseNumbers coerces cells to float64.
// Empty and NaN cells become NaN; they are skipped as missing when skipMissing is set
// and count as non-numeric otherwise. firstBad is the first unparsable row, or -1.
func parseNumbers(values []string, skipMissing bool) ([]float64, int) {
	out := make([]float64, len(values))
	firstBad := -1

	for i, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			out[i] = math.NaN()
			if !skipMissing && firstBad < 0 {
				firstBad = i
			}
			continue
		}

		f, err := strconv.ParseFloat(v, 64)
		if err != nil || isHexFloat(v) || (math.IsNaN(f) && !skipMissing) {
			if firstBad < 0 {
				firstBad = i
			}
			out[i] = math.NaN()
			continue
		}
		out[i] = f
	}

	return out, firstBad
}

// isHexFloat reports hex notation ("0x1p3"), which ParseFloat accepts but a decimal feed never carries
func isHexFloat(v string) bool {
	v = strings.TrimLeft(v, "+-")
	return len(v) > 1 && v[0] == '0' && (v[1] == 'x' || v[1] == 'X')
}

// minMax ignores NaN; ok is false when no value is present
func minMax(values []float64) (minVal, maxVal float64, ok bool) {
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if !ok {
			minVal, maxVal, ok = v, v, true
			continue
		}
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal, ok
}

func equalColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// difference returns the members of a not in b, deduplicated, in a's order
func difference(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, v := range b {
		in[v] = struct{}{}
	}

	seen := make(map[string]struct{})
	var out []string
	for _, v := range a {
		if _, ok := in[v]; ok {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func listString(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = "'" + c + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func setString(cols []string) string {
	if len(cols) == 0 {
		return "set()"
	}
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = "'" + c + "'"
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}
