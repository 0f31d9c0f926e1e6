// Package schema has configs, models and shared values for all parts of photochop.
package schema

import (
	"fmt"
	"sort"
	"time"
)

// FolderStatus classifies a single monitored subfolder.
type FolderStatus string

// Folder classification values.
const (
	StatusProcessed FolderStatus = "processed" // At least one marker output file present
	StatusPending   FolderStatus = "pending"   // Files present but no marker output yet
	StatusEmpty     FolderStatus = "empty"     // No entries at all
)

// FolderInfo holds the per-folder detail collected during a scan.
// Only the aggregate counts and the processed names make it into a Snapshot;
// the rest is carried through to presentation (pending queue, recent activity).
type FolderInfo struct {
	Name          string       `json:"name"`
	Status        FolderStatus `json:"status"`
	MarkerFiles   int          `json:"marker_files"`   // Output files matching the marker prefix
	OriginalFiles int          `json:"original_files"` // Source images awaiting processing
	TotalFiles    int          `json:"total_files"`
}

// ScanResult is one full classification pass over the monitored directory.
// It is a pure function of the filesystem at the time of the scan.
type ScanResult struct {
	Timestamp time.Time    `json:"timestamp"`
	BasePath  string       `json:"base_path"`
	Folders   []FolderInfo `json:"folders"`
}

// Snapshot reduces a ScanResult to the counts the analytics engine consumes.
func (sr ScanResult) Snapshot() Snapshot {
	snap := Snapshot{Timestamp: sr.Timestamp}
	for _, f := range sr.Folders {
		snap.TotalFolders++
		switch f.Status {
		case StatusProcessed:
			snap.ProcessedCount++
			snap.CompletedNames = append(snap.CompletedNames, f.Name)
		case StatusEmpty:
			snap.EmptyCount++
		default:
			snap.PendingCount++
		}
	}
	sort.Strings(snap.CompletedNames)
	return snap
}

// Processed returns the folders currently classified as processed, in scan order.
func (sr ScanResult) Processed() []FolderInfo { return sr.byStatus(StatusProcessed) }

// Pending returns the folders still waiting on marker output, in scan order.
func (sr ScanResult) Pending() []FolderInfo { return sr.byStatus(StatusPending) }

func (sr ScanResult) byStatus(status FolderStatus) []FolderInfo {
	var out []FolderInfo
	for _, f := range sr.Folders {
		if f.Status == status {
			out = append(out, f)
		}
	}
	return out
}

// Snapshot is one timestamped observation of folder classification counts.
// Snapshots are immutable once constructed; progress is expressed by appending
// new snapshots to the history, never by editing past ones.
type Snapshot struct {
	Timestamp      time.Time `json:"timestamp"`
	TotalFolders   int       `json:"total_folders"`
	ProcessedCount int       `json:"processed_count"`
	PendingCount   int       `json:"pending_count"`
	EmptyCount     int       `json:"empty_count"`

	// CompletedNames lists the folders classified processed at this instant,
	// sorted, used to detect newly completed folders between snapshots.
	CompletedNames []string `json:"completed_names"`
}

// Validate checks the structural invariants of a snapshot.
func (s Snapshot) Validate() error {
	if s.Timestamp.IsZero() {
		return fmt.Errorf("snapshot has zero timestamp")
	}
	if s.TotalFolders < 0 || s.ProcessedCount < 0 || s.PendingCount < 0 || s.EmptyCount < 0 {
		return fmt.Errorf("snapshot has negative counts")
	}
	if sum := s.ProcessedCount + s.PendingCount + s.EmptyCount; sum != s.TotalFolders {
		return fmt.Errorf("snapshot counts do not add up: %d + %d + %d != %d",
			s.ProcessedCount, s.PendingCount, s.EmptyCount, s.TotalFolders)
	}
	return nil
}

// Remaining returns the number of folders not yet processed.
func (s Snapshot) Remaining() int {
	return s.TotalFolders - s.ProcessedCount
}

// ProgressPercent returns completion as a 0-100 percentage.
func (s Snapshot) ProgressPercent() float64 {
	if s.TotalFolders == 0 {
		return 0
	}
	return float64(s.ProcessedCount) / float64(s.TotalFolders) * 100
}

// NewlyCompletedSince returns the folder names present in this snapshot's
// completed set but absent from prev's, sorted. Folders that regressed
// (present in prev, absent here) do not appear; regressions surface through
// the rate calculator's anomaly flag instead.
func (s Snapshot) NewlyCompletedSince(prev Snapshot) []string {
	seen := make(map[string]bool, len(prev.CompletedNames))
	for _, name := range prev.CompletedNames {
		seen[name] = true
	}
	var fresh []string
	for _, name := range s.CompletedNames {
		if !seen[name] {
			fresh = append(fresh, name)
		}
	}
	sort.Strings(fresh)
	return fresh
}
