package s0_data

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/tradecare/backend/internal/contracts"
)

// Repository persists validation runs and the last validated bars.
// It implements contracts.RunRepository.
// ⭐ SSOT: 검증 이력/시간봉 저장소는 여기서만
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository instance
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Pool returns the underlying database pool
func (r *Repository) Pool() *pgxpool.Pool {
	return r.db
}

const schemaDDL = `
	CREATE SCHEMA IF NOT EXISTS data;

	CREATE TABLE IF NOT EXISTS data.validation_runs (
		id           TEXT PRIMARY KEY,
		source       TEXT NOT NULL,
		started_at   TIMESTAMPTZ NOT NULL,
		finished_at  TIMESTAMPTZ NOT NULL,
		duration_ms  BIGINT NOT NULL,
		status       TEXT NOT NULL,
		failed_stage TEXT,
		error_kind   TEXT,
		message      TEXT,
		row_count    INTEGER NOT NULL DEFAULT 0,
		first_date   TEXT,
		last_date    TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_validation_runs_started_at
		ON data.validation_runs (started_at DESC);

	CREATE TABLE IF NOT EXISTS data.hourly_bars (
		time_unix   BIGINT NOT NULL,
		date_str    TEXT NOT NULL,
		hour_str    TEXT NOT NULL,
		open_price  DOUBLE PRECISION NOT NULL,
		high_price  DOUBLE PRECISION NOT NULL,
		low_price   DOUBLE PRECISION NOT NULL,
		close_price DOUBLE PRECISION NOT NULL,
		volume_from DOUBLE PRECISION NOT NULL,
		volume_to   DOUBLE PRECISION NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_hourly_bars_time_unix
		ON data.hourly_bars (time_unix);
`

// EnsureSchema creates the tables used by the repository
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveRun upserts a validation run
func (r *Repository) SaveRun(ctx context.Context, run *contracts.ValidationRun) error {
	query := `
		INSERT INTO data.validation_runs (
			id, source, started_at, finished_at, duration_ms, status,
			failed_stage, error_kind, message, row_count, first_date, last_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			finished_at = EXCLUDED.finished_at,
			duration_ms = EXCLUDED.duration_ms,
			status = EXCLUDED.status,
			failed_stage = EXCLUDED.failed_stage,
			error_kind = EXCLUDED.error_kind,
			message = EXCLUDED.message,
			row_count = EXCLUDED.row_count,
			first_date = EXCLUDED.first_date,
			last_date = EXCLUDED.last_date
	`

	_, err := r.db.Exec(ctx, query,
		run.ID,
		run.Source,
		run.StartedAt,
		run.FinishedAt,
		run.Duration.Milliseconds(),
		string(run.Status),
		string(run.FailedStage),
		run.ErrorKind,
		run.Message,
		run.RowCount,
		run.FirstDate,
		run.LastDate,
	)
	if err != nil {
		return fmt.Errorf("insert validation run %s: %w", run.ID, err)
	}

	return nil
}

// ListRuns returns the most recent runs, newest first
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]*contracts.ValidationRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, source, started_at, finished_at, duration_ms, status,
			COALESCE(failed_stage, ''), COALESCE(error_kind, ''), COALESCE(message, ''),
			row_count, COALESCE(first_date, ''), COALESCE(last_date, '')
		FROM data.validation_runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query validation runs: %w", err)
	}
	defer rows.Close()

	var runs []*contracts.ValidationRun
	for rows.Next() {
		var (
			run        contracts.ValidationRun
			durationMS int64
			status     string
			stage      string
		)
		if err := rows.Scan(
			&run.ID, &run.Source, &run.StartedAt, &run.FinishedAt, &durationMS, &status,
			&stage, &run.ErrorKind, &run.Message, &run.RowCount, &run.FirstDate, &run.LastDate,
		); err != nil {
			return nil, fmt.Errorf("scan validation run: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		run.Status = contracts.RunStatus(status)
		run.FailedStage = contracts.Stage(stage)
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate validation runs: %w", err)
	}

	return runs, nil
}

// ReplaceBars swaps the stored bars for a freshly validated set in one transaction
func (r *Repository) ReplaceBars(ctx context.Context, bars []contracts.HourlyBar) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE data.hourly_bars`); err != nil {
		return 0, fmt.Errorf("truncate hourly bars: %w", err)
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"data", "hourly_bars"},
		[]string{"time_unix", "date_str", "hour_str", "open_price", "high_price",
			"low_price", "close_price", "volume_from", "volume_to"},
		pgx.CopyFromSlice(len(bars), func(i int) ([]any, error) {
			b := bars[i]
			return []any{b.TimeUnix, b.Date, b.Hour, b.Open, b.High, b.Low, b.Close, b.VolumeFrom, b.VolumeTo}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy hourly bars: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return copied, nil
}
