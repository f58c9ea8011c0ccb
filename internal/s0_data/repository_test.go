package s0_data

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradecare/backend/internal/contracts"
)

func TestRepository_Integration(t *testing.T) {
	connString := os.Getenv("DATABASE_URL")
	if testing.Short() || connString == "" {
		t.Skip("skipping integration test (DATABASE_URL not set)")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err, "database connection failed")
	defer pool.Close()

	repo := NewRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	run := &contracts.ValidationRun{
		ID:          uuid.New().String(),
		Source:      "https://example.com/btc.csv",
		StartedAt:   time.Now().Add(-time.Second),
		FinishedAt:  time.Now(),
		Duration:    time.Second,
		Status:      contracts.RunFailed,
		FailedStage: contracts.StagePrices,
		ErrorKind:   "range_error",
		Message:     "Suspicious data",
	}
	require.NoError(t, repo.SaveRun(ctx, run))

	runs, err := repo.ListRuns(ctx, 5)
	require.NoError(t, err)
	require.NotEmpty(t, runs)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, contracts.StagePrices, runs[0].FailedStage)
	assert.Equal(t, time.Second, runs[0].Duration)

	bars := []contracts.HourlyBar{
		{TimeUnix: 1577836800, Date: "2020-01-01", Hour: "0", Open: 1, High: 2, Low: 0.5, Close: 1.5, VolumeFrom: 10, VolumeTo: 15},
		{TimeUnix: 1577840400, Date: "2020-01-01", Hour: "1", Open: 1.5, High: 2, Low: 1, Close: 1.8, VolumeFrom: 11, VolumeTo: 19},
	}
	n, err := repo.ReplaceBars(ctx, bars)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
