package contracts

import "context"

// DatasetFetcher retrieves the raw feed
// ⭐ SSOT: 원시 데이터 수집 인터페이스
type DatasetFetcher interface {
	Fetch(ctx context.Context) (*Dataset, error)
}

// DatasetValidator runs every integrity check over a fetched dataset
// ⭐ SSOT: 원시 데이터 검증 인터페이스
type DatasetValidator interface {
	Validate(ds *Dataset, sink StatusSink) error
}

// StatusSink receives pipeline progress lines
type StatusSink interface {
	Emit(event StatusEvent)
}

// RunRepository persists validation history and validated bars
type RunRepository interface {
	SaveRun(ctx context.Context, run *ValidationRun) error
	ListRuns(ctx context.Context, limit int) ([]*ValidationRun, error)
	ReplaceBars(ctx context.Context, bars []HourlyBar) (int64, error)
}
