package histstore

import (
	"path/filepath"
	"testing"

	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteStore creates a throwaway SQLite store for a single test.
func newSQLiteStore(t *testing.T) *DBStore {
	t.Helper()
	store, err := NewDBStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestDBStoreRoundtrip(t *testing.T) {
	store := newSQLiteStore(t)

	for i := range 3 {
		require.NoError(t, store.Append(sampleSnapshot(i)))
	}

	snaps, err := store.Load()
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	for i, snap := range snaps {
		want := sampleSnapshot(i)
		assert.True(t, snap.Timestamp.Equal(want.Timestamp))
		assert.Equal(t, want.TotalFolders, snap.TotalFolders)
		assert.Equal(t, want.ProcessedCount, snap.ProcessedCount)
		assert.Equal(t, want.PendingCount, snap.PendingCount)
		assert.Equal(t, want.EmptyCount, snap.EmptyCount)
	}
}

// TestDBStoreLoadOrdering inserts out of order and expects ascending replay.
func TestDBStoreLoadOrdering(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.Append(sampleSnapshot(2)))
	require.NoError(t, store.Append(sampleSnapshot(0)))
	require.NoError(t, store.Append(sampleSnapshot(1)))

	snaps, err := store.Load()
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.True(t, snaps[0].Timestamp.Before(snaps[1].Timestamp))
	assert.True(t, snaps[1].Timestamp.Before(snaps[2].Timestamp))
}

func TestDBStoreDuplicateTimestamp(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.Append(sampleSnapshot(1)))
	assert.Error(t, store.Append(sampleSnapshot(1)))
}

func TestDBStoreClear(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.Append(sampleSnapshot(0)))
	require.NoError(t, store.Clear())

	snaps, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, snaps)

	// Table survives a clear, so appends keep working.
	assert.NoError(t, store.Append(sampleSnapshot(1)))
}

func TestDBStoreGetStatus(t *testing.T) {
	store := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalEntries)

	for i := range 2 {
		require.NoError(t, store.Append(sampleSnapshot(i)))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalEntries)
	assert.True(t, status.OldestEntryTime.Before(status.LastEntryTime))
}

func TestNewDBStoreUnsupportedBackend(t *testing.T) {
	_, err := NewDBStore(schema.JSONLBackend, "")
	assert.Error(t, err)
}
