package schema

import "time"

// HistoryStatus represents the status of the persisted history store.
type HistoryStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	SizeBytes       int64     `json:"size_bytes"`
}
