package schema

import "errors"

// ErrOutOfOrder is returned by history append when a snapshot's timestamp is
// not strictly greater than the latest stored timestamp. The snapshot is
// discarded and the history is unaffected.
var ErrOutOfOrder = errors.New("snapshot timestamp is not after latest history entry")

// OutputMode controls the output format of results.
type OutputMode string

// Output format values.
const (
	TextOut    OutputMode = "text"
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// DatabaseBackend identifies the persistence backend for snapshot history.
type DatabaseBackend string

// History backend values. JSONL is the default append-only log file; the SQL
// backends mirror it for shared or remote deployments; None keeps history in
// memory only.
const (
	JSONLBackend      DatabaseBackend = "jsonl"
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidDatabaseBackend reports whether s names a supported history backend.
func ValidDatabaseBackend(s string) bool {
	switch DatabaseBackend(s) {
	case JSONLBackend, SQLiteBackend, MySQLBackend, PostgreSQLBackend, NoneBackend:
		return true
	}
	return false
}
