// Package histstore persists the snapshot history across process runs.
package histstore

import (
	"fmt"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
)

// historyTable is the table name used by the SQL backends.
const historyTable = "photochop_history"

// NewStore builds a HistoryStore for the configured backend. For the JSONL
// backend connStr is the log file path; for SQLite it is the DB file path;
// for MySQL/PostgreSQL it is the server connection string. Empty file paths
// fall back to the defaults under the home directory.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	switch backend {
	case schema.JSONLBackend:
		path := connStr
		if path == "" {
			path = contract.GetHistoryFilePath()
		}
		return NewLogStore(path), nil

	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		return NewDBStore(backend, connStr)

	case schema.NoneBackend:
		return &noneStore{}, nil

	default:
		return nil, fmt.Errorf("unsupported history backend: %s. Must be jsonl, sqlite, mysql, postgresql, or none", backend)
	}
}

// noneStore keeps history in memory only. Every operation succeeds and Load
// always replays an empty history.
type noneStore struct{}

var _ contract.HistoryStore = &noneStore{} // Compile-time check

func (s *noneStore) Append(schema.Snapshot) error     { return nil }
func (s *noneStore) Load() ([]schema.Snapshot, error) { return nil, nil }
func (s *noneStore) Clear() error                     { return nil }
func (s *noneStore) Close() error                     { return nil }

func (s *noneStore) GetStatus() (schema.HistoryStatus, error) {
	return schema.HistoryStatus{Backend: string(schema.NoneBackend)}, nil
}
