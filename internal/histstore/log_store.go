package histstore

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
)

// LogStore is the default JSONL history backend: one snapshot per line,
// append-only. The format is deliberately trivial so that an interrupted
// write can only ever damage the trailing record, which the loader discards.
type LogStore struct {
	path string
}

var _ contract.HistoryStore = &LogStore{} // Compile-time check

// NewLogStore creates a JSONL store at the given path. The file is created
// lazily on first append.
func NewLogStore(path string) *LogStore {
	return &LogStore{path: path}
}

// Append writes one snapshot as a JSON line. The file is opened per call so
// a crash between cycles never leaves a dangling handle.
func (s *LogStore) Append(snap schema.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history log %q: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append to history log %q: %w", s.path, err)
	}
	return nil
}

// Load replays the log in file order. The first record that fails to parse or
// validate ends the replay: it and everything after it are discarded with a
// warning, so a truncated tail behaves exactly as if it were never written.
// A missing file is an empty history, not an error.
func (s *LogStore) Load() ([]schema.Snapshot, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		contract.LogWarn(fmt.Sprintf("cannot read history log %q, starting fresh", s.path), err)
		return nil, nil
	}
	defer func() { _ = f.Close() }()

	var snaps []schema.Snapshot
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var snap schema.Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			contract.LogWarn(fmt.Sprintf("discarding history log tail from line %d", line), err)
			break
		}
		if err := snap.Validate(); err != nil {
			contract.LogWarn(fmt.Sprintf("discarding history log tail from line %d", line), err)
			break
		}
		snaps = append(snaps, snap)
	}
	if err := scanner.Err(); err != nil {
		contract.LogWarn(fmt.Sprintf("stopped reading history log %q early", s.path), err)
	}
	return snaps, nil
}

// GetStatus returns status information about the log file.
func (s *LogStore) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{Backend: string(schema.JSONLBackend), Connected: true}

	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return status, nil
	}
	if err != nil {
		return status, fmt.Errorf("failed to stat history log %q: %w", s.path, err)
	}
	status.SizeBytes = info.Size()

	snaps, err := s.Load()
	if err != nil {
		return status, err
	}
	status.TotalEntries = len(snaps)
	if len(snaps) > 0 {
		status.OldestEntryTime = snaps[0].Timestamp
		status.LastEntryTime = snaps[len(snaps)-1].Timestamp
	}
	return status, nil
}

// Clear removes the log file; a missing file is fine.
func (s *LogStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove history log %q: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the file is opened per operation.
func (s *LogStore) Close() error { return nil }
