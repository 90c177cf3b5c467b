package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatehq/fate-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testSnapshot(strategy, revision string) model.Snapshot {
	return model.Snapshot{
		Strategy: strategy,
		Revision: revision,
		Entries: []model.SnapshotEntry{
			{ToolID: "shakespeare", Rank: 1, Score: 96},
			{ToolID: "goose", Rank: 2, Score: 88},
			{ToolID: "lovable", Rank: 3, Score: 44},
		},
	}
}

func TestSQLite_Snapshot_SaveAndGet(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	saved, err := st.SaveSnapshot(ctx, testSnapshot("freedom", "abc123def456"))
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.False(t, saved.CreatedAt.IsZero())

	got, err := st.GetSnapshot(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "freedom", got.Strategy)
	assert.Equal(t, "abc123def456", got.Revision)
	require.Len(t, got.Entries, 3)
	assert.Equal(t, "shakespeare", got.Entries[0].ToolID)
	assert.Equal(t, 96, got.Entries[0].Score)
}

func TestSQLite_Snapshot_GetMissing(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetSnapshot(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_Snapshot_Latest(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.SaveSnapshot(ctx, testSnapshot("freedom", "rev-old"))
	require.NoError(t, err)
	newest, err := st.SaveSnapshot(ctx, testSnapshot("freedom", "rev-new"))
	require.NoError(t, err)
	_, err = st.SaveSnapshot(ctx, testSnapshot("ease", "rev-new"))
	require.NoError(t, err)

	got, err := st.LatestSnapshot(ctx, "freedom")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newest.ID, got.ID)
}

func TestSQLite_Snapshot_LatestMissing(t *testing.T) {
	st := newTestSQLiteStore(t)

	got, err := st.LatestSnapshot(context.Background(), "freedom")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_Snapshot_List(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for _, s := range []model.Snapshot{
		testSnapshot("freedom", "rev-1"),
		testSnapshot("freedom", "rev-2"),
		testSnapshot("balanced", "rev-2"),
	} {
		_, err := st.SaveSnapshot(ctx, s)
		require.NoError(t, err)
	}

	all, err := st.ListSnapshots(ctx, SnapshotFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	freedom, err := st.ListSnapshots(ctx, SnapshotFilter{Strategy: "freedom"})
	require.NoError(t, err)
	assert.Len(t, freedom, 2)

	rev2, err := st.ListSnapshots(ctx, SnapshotFilter{Revision: "rev-2"})
	require.NoError(t, err)
	assert.Len(t, rev2, 2)

	limited, err := st.ListSnapshots(ctx, SnapshotFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLite_Snapshot_Delete(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	saved, err := st.SaveSnapshot(ctx, testSnapshot("ease", "rev-1"))
	require.NoError(t, err)

	require.NoError(t, st.DeleteSnapshot(ctx, saved.ID))

	_, err = st.GetSnapshot(ctx, saved.ID)
	assert.Error(t, err)

	err = st.DeleteSnapshot(ctx, saved.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
