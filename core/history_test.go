package core

import (
	"testing"
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// snapAt builds a valid snapshot at baseTime+offset with the given processed
// count out of ten folders.
func snapAt(offset time.Duration, processed int, names ...string) schema.Snapshot {
	return schema.Snapshot{
		Timestamp:      baseTime.Add(offset),
		TotalFolders:   10,
		ProcessedCount: processed,
		PendingCount:   10 - processed,
		CompletedNames: names,
	}
}

// emptyStore builds a mock store that loads nothing and accepts all appends.
func emptyStore(t *testing.T) *contract.MockHistoryStore {
	t.Helper()
	store := &contract.MockHistoryStore{}
	store.On("Load").Return(nil, nil)
	store.On("Append", mock.Anything).Return(nil)
	return store
}

func TestHistoryAppendOrdering(t *testing.T) {
	h := NewHistory(emptyStore(t), 100)

	require.NoError(t, h.Append(snapAt(0, 1)))
	require.NoError(t, h.Append(snapAt(time.Minute, 2)))

	// Same timestamp and earlier timestamp are both rejected.
	assert.ErrorIs(t, h.Append(snapAt(time.Minute, 3)), schema.ErrOutOfOrder)
	assert.ErrorIs(t, h.Append(snapAt(30*time.Second, 3)), schema.ErrOutOfOrder)

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, 2, latest.ProcessedCount)
	assert.Equal(t, 2, h.Len())
}

func TestHistoryAppendInvalidSnapshot(t *testing.T) {
	h := NewHistory(emptyStore(t), 100)

	bad := snapAt(0, 5)
	bad.PendingCount = 99
	assert.Error(t, h.Append(bad))
	assert.Zero(t, h.Len())
}

func TestHistoryRetentionLimit(t *testing.T) {
	h := NewHistory(emptyStore(t), 3)

	for i := range 5 {
		require.NoError(t, h.Append(snapAt(time.Duration(i)*time.Minute, i)))
	}

	assert.Equal(t, 3, h.Len())
	latest, _ := h.Latest()
	assert.Equal(t, 4, latest.ProcessedCount)
	// Oldest survivor is the third snapshot.
	oldest := h.RecentCount(3)[0]
	assert.Equal(t, 2, oldest.ProcessedCount)
}

func TestHistoryRecentWindow(t *testing.T) {
	h := NewHistory(emptyStore(t), 100)
	for i := range 5 {
		require.NoError(t, h.Append(snapAt(time.Duration(i)*time.Minute, i)))
	}
	now := baseTime.Add(4 * time.Minute)

	assert.Len(t, h.Recent(now, 2*time.Minute), 3)
	assert.Len(t, h.Recent(now, 10*time.Minute), 5)
	assert.Empty(t, h.Recent(now.Add(time.Hour), time.Minute))
}

func TestHistoryRecentCount(t *testing.T) {
	h := NewHistory(emptyStore(t), 100)
	for i := range 3 {
		require.NoError(t, h.Append(snapAt(time.Duration(i)*time.Minute, i)))
	}

	last2 := h.RecentCount(2)
	require.Len(t, last2, 2)
	assert.Equal(t, 1, last2[0].ProcessedCount)
	assert.Equal(t, 2, last2[1].ProcessedCount)

	assert.Len(t, h.RecentCount(99), 3)
	assert.Empty(t, h.RecentCount(0))
}

// TestHistoryLoadDropsOutOfOrder replays a persisted log with one regressed
// timestamp and expects only the monotone prefix semantics to survive.
func TestHistoryLoadDropsOutOfOrder(t *testing.T) {
	store := &contract.MockHistoryStore{}
	store.On("Load").Return([]schema.Snapshot{
		snapAt(0, 1),
		snapAt(2*time.Minute, 2),
		snapAt(time.Minute, 3), // out of order, dropped
		snapAt(3*time.Minute, 4),
	}, nil)

	h := NewHistory(store, 100)
	assert.Equal(t, 3, h.Len())
	latest, _ := h.Latest()
	assert.Equal(t, 4, latest.ProcessedCount)
}

func TestHistoryPersistFailureKeepsSnapshot(t *testing.T) {
	store := &contract.MockHistoryStore{}
	store.On("Load").Return(nil, nil)
	store.On("Append", mock.Anything).Return(assert.AnError)

	h := NewHistory(store, 100)
	err := h.Append(snapAt(0, 1))
	require.Error(t, err)
	assert.NotErrorIs(t, err, schema.ErrOutOfOrder)

	// The working set moved forward even though the write failed.
	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, 1, latest.ProcessedCount)
}

func TestHistoryRecentCompletions(t *testing.T) {
	h := NewHistory(emptyStore(t), 100)
	require.NoError(t, h.Append(snapAt(0, 1, "a")))
	require.NoError(t, h.Append(snapAt(time.Minute, 2, "a", "b")))
	require.NoError(t, h.Append(snapAt(2*time.Minute, 4, "a", "b", "c", "d")))

	// The first snapshot is the baseline; only later diffs become events.
	events := h.RecentCompletions(5)
	require.Len(t, events, 3)
	assert.Equal(t, "b", events[0].Name)
	assert.Equal(t, baseTime.Add(time.Minute), events[0].Timestamp)
	assert.Equal(t, "c", events[1].Name)
	assert.Equal(t, "d", events[2].Name)
	assert.Equal(t, baseTime.Add(2*time.Minute), events[2].Timestamp)

	// The cap keeps the newest events.
	capped := h.RecentCompletions(2)
	require.Len(t, capped, 2)
	assert.Equal(t, "c", capped[0].Name)
	assert.Equal(t, "d", capped[1].Name)

	assert.Nil(t, h.RecentCompletions(0))
}
