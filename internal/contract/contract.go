// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/aaronvstory/photochop-progress-analyzer/schema"
)

// SnapshotProducer defines a single classification pass over the monitored
// directory's immediate subfolders. Implementations must be idempotent for an
// unchanged filesystem and free of side effects, so the analytics engine can
// be tested without touching a real directory tree.
type SnapshotProducer interface {
	// Scan classifies every immediate subfolder of basePath and returns the
	// per-folder detail plus the scan timestamp.
	Scan(ctx context.Context, basePath string) (schema.ScanResult, error)
}

// HistoryStore defines the persistence contract for the snapshot history.
// The in-memory history in core owns ordering and retention; stores only
// append records and replay them at startup.
type HistoryStore interface {
	// Append persists one snapshot. A failure here is escalated by the caller
	// as a hard failure for the cycle.
	Append(snap schema.Snapshot) error

	// Load replays the persisted log in ascending timestamp order. Corrupt or
	// trailing-partial records are discarded, never fatal; an empty history is
	// a valid result.
	Load() ([]schema.Snapshot, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all persisted snapshots.
	Clear() error

	// Close releases the underlying file handle or DB connection.
	Close() error
}
