package contracts

import "time"

// Stage identifies a step of the raw data validation pipeline
type Stage string

// Pipeline stages, in execution order
const (
	StageFetch        Stage = "fetch"
	StageStructure    Stage = "structure"
	StageStrings      Stage = "strings"
	StagePrices       Stage = "prices"
	StageCompleteness Stage = "completeness"
	StageTimestamps   Stage = "timestamps"
	StageValidated    Stage = "validated"
)

// EventState is the state carried by a status event
type EventState string

const (
	EventStarted EventState = "started"
	EventPassed  EventState = "passed"
	EventFailed  EventState = "failed"
	EventInfo    EventState = "info"
)

// StatusEvent is one human-readable progress line of a pipeline run.
// It is observational only; nothing should parse Message.
type StatusEvent struct {
	RunID   string     `json:"run_id,omitempty"`
	Time    time.Time  `json:"time"`
	Stage   Stage      `json:"stage"`
	State   EventState `json:"state"`
	Message string     `json:"message"`
}

// RunStatus is the terminal state of a validation run
type RunStatus string

const (
	RunValidated RunStatus = "validated"
	RunFailed    RunStatus = "failed"
)

// ValidationRun records one fetch-and-validate invocation
type ValidationRun struct {
	ID          string        `json:"id"`
	Source      string        `json:"source"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  time.Time     `json:"finished_at"`
	Duration    time.Duration `json:"duration"`
	Status      RunStatus     `json:"status"`
	FailedStage Stage         `json:"failed_stage,omitempty"`
	ErrorKind   string        `json:"error_kind,omitempty"`
	Message     string        `json:"message,omitempty"`
	RowCount    int           `json:"row_count"`
	FirstDate   string        `json:"first_date,omitempty"`
	LastDate    string        `json:"last_date,omitempty"`
}

// Succeeded reports whether the run ended validated
func (r *ValidationRun) Succeeded() bool {
	return r.Status == RunValidated
}
