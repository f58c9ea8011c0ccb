package quality

import (
	"errors"

	"github.com/wonny/tradecare/backend/internal/contracts"
)

// Kind classifies a validation failure.
// A Kind is itself an error so callers can match with errors.Is(err, quality.KindSchema).
type Kind string

// Error kinds, one per failing check
const (
	KindFetch        Kind = "fetch_error"
	KindSchema       Kind = "schema_error"
	KindFormat       Kind = "format_error"
	KindSecurity     Kind = "security_error"
	KindRange        Kind = "range_error"
	KindCompleteness Kind = "completeness_error"
	KindTimestamp    Kind = "timestamp_error"
)

func (k Kind) Error() string {
	return string(k)
}

// ValidationError is the single error reported by a failing pipeline stage
type ValidationError struct {
	Kind    Kind
	Stage   contracts.Stage
	Column  string // offending column, if any
	Value   string // offending sample (first in row order), if any
	Message string
	Err     error // underlying cause (fetch failures)
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches the error against its Kind
func (e *ValidationError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind of a validation error, or "" for anything else
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return ""
}

// StageOf extracts the failing stage of a validation error, or ""
func StageOf(err error) contracts.Stage {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Stage
	}
	return ""
}
