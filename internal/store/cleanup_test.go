package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCleanupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.UpsertPoints(ctx, samplePoints("gen-batch-v1"))
	require.NoError(t, err)
	_, err = s.UpsertPoints(ctx, []PointRow{
		{NodeID: "p_x", Region: "Japan", Zone: "Izu", Area: "Atami", Name: "Old A", Method: "manual-import"},
		{NodeID: "p_y", Region: "Japan", Zone: "Izu", Area: "Atami", Name: "Old B", Method: "manual-import"},
		{NodeID: "p_z", Region: "Japan", Zone: "Izu", Area: "Atami", Name: "Old C", Method: "scraper-v0"},
	})
	require.NoError(t, err)
	return s
}

func TestCleanerDryRunByDefault(t *testing.T) {
	s := seedCleanupStore(t)

	report, err := NewCleaner(s, "gen-batch-v1", 500, false).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 2, report.Kept)
	assert.Equal(t, 3, report.Stale)
	assert.Zero(t, report.Deleted)

	// Nothing was removed.
	count, err := s.CountPoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestCleanerExecuteDeletesInBatches(t *testing.T) {
	s := seedCleanupStore(t)

	report, err := NewCleaner(s, "gen-batch-v1", 2, true).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, report.DryRun)
	assert.Equal(t, int64(3), report.Deleted)
	assert.Equal(t, 2, report.Batches)

	count, err := s.CountPoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCleanerNothingStale(t *testing.T) {
	s := newTestSQLite(t)
	_, err := s.UpsertPoints(context.Background(), samplePoints("gen-batch-v1"))
	require.NoError(t, err)

	report, err := NewCleaner(s, "gen-batch-v1", 500, true).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Stale)
	assert.Zero(t, report.Deleted)
	assert.Zero(t, report.Batches)
}
