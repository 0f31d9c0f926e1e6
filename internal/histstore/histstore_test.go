package histstore

import (
	"path/filepath"
	"testing"

	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreJSONL(t *testing.T) {
	store, err := NewStore(schema.JSONLBackend, filepath.Join(t.TempDir(), "h.jsonl"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.IsType(t, &LogStore{}, store)
}

func TestNewStoreSQLite(t *testing.T) {
	store, err := NewStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.IsType(t, &DBStore{}, store)
}

func TestNewStoreInvalidBackend(t *testing.T) {
	_, err := NewStore(schema.DatabaseBackend("cassandra"), "")
	assert.Error(t, err)
}

// TestNoneStore checks the in-memory-only backend accepts everything and
// replays nothing.
func TestNoneStore(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)

	require.NoError(t, store.Append(sampleSnapshot(1)))
	snaps, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, snaps)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.NoneBackend), status.Backend)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}
