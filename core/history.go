package core

import (
	"fmt"
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
)

// History is the in-memory, append-only snapshot sequence. It owns ordering
// and retention; the backing store only appends records and replays them at
// startup. Snapshots are never edited in place.
type History struct {
	snaps []schema.Snapshot
	limit int
	store contract.HistoryStore
}

// NewHistory creates a history seeded from the store's persisted log. A log
// that cannot be read replays as empty; that is reported by the store, not
// escalated here.
func NewHistory(store contract.HistoryStore, limit int) *History {
	h := &History{limit: limit, store: store}
	snaps, err := store.Load()
	if err != nil {
		contract.LogWarn("starting with empty history", err)
		snaps = nil
	}
	// Replayed snapshots must be strictly increasing; drop any that are not.
	for _, snap := range snaps {
		if latest, ok := h.Latest(); ok && !snap.Timestamp.After(latest.Timestamp) {
			continue
		}
		h.snaps = append(h.snaps, snap)
	}
	h.trim()
	return h
}

// Append validates and stores one snapshot, then persists it. The in-memory
// append always wins: a persistence failure is returned for the caller to
// escalate for the cycle, but the snapshot stays in the working set so the
// analytics keep moving.
func (h *History) Append(snap schema.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("rejecting snapshot: %w", err)
	}
	if latest, ok := h.Latest(); ok && !snap.Timestamp.After(latest.Timestamp) {
		return fmt.Errorf("snapshot at %s is not newer than %s: %w",
			snap.Timestamp.Format(time.RFC3339), latest.Timestamp.Format(time.RFC3339), schema.ErrOutOfOrder)
	}
	h.snaps = append(h.snaps, snap)
	h.trim()

	if err := h.store.Append(snap); err != nil {
		return fmt.Errorf("snapshot kept in memory but not persisted: %w", err)
	}
	return nil
}

// Latest returns the most recent snapshot, if any.
func (h *History) Latest() (schema.Snapshot, bool) {
	if len(h.snaps) == 0 {
		return schema.Snapshot{}, false
	}
	return h.snaps[len(h.snaps)-1], true
}

// Len returns the number of snapshots in the working set.
func (h *History) Len() int { return len(h.snaps) }

// Recent returns the snapshots whose timestamp falls within [now-window, now],
// in order. An empty result is not an error.
func (h *History) Recent(now time.Time, window time.Duration) []schema.Snapshot {
	return h.between(now.Add(-window), now)
}

// RecentCount returns up to the n most recent snapshots, in order.
func (h *History) RecentCount(n int) []schema.Snapshot {
	if n <= 0 || len(h.snaps) == 0 {
		return nil
	}
	if n > len(h.snaps) {
		n = len(h.snaps)
	}
	out := make([]schema.Snapshot, n)
	copy(out, h.snaps[len(h.snaps)-n:])
	return out
}

// RecentCompletions reconstructs the trailing folder completions from
// adjacent snapshots, oldest first, up to limit events. The first snapshot
// is the baseline and contributes no events.
func (h *History) RecentCompletions(limit int) []schema.CompletionEvent {
	if limit <= 0 {
		return nil
	}
	var events []schema.CompletionEvent
	for i := 1; i < len(h.snaps); i++ {
		for _, name := range h.snaps[i].NewlyCompletedSince(h.snaps[i-1]) {
			events = append(events, schema.CompletionEvent{
				Name:      name,
				Timestamp: h.snaps[i].Timestamp,
			})
		}
	}
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events
}

// between returns snapshots with from <= timestamp <= to, in order.
func (h *History) between(from, to time.Time) []schema.Snapshot {
	var out []schema.Snapshot
	for _, snap := range h.snaps {
		if !snap.Timestamp.Before(from) && !snap.Timestamp.After(to) {
			out = append(out, snap)
		}
	}
	return out
}

// trim drops the oldest snapshots beyond the retention limit. Rate, trend and
// ETA only consume recent windows, so this never affects their correctness.
func (h *History) trim() {
	if h.limit <= 0 || len(h.snaps) <= h.limit {
		return
	}
	h.snaps = h.snaps[len(h.snaps)-h.limit:]
}
