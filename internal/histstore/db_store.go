package histstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// DBStore handles durable history storage using various database backends.
type DBStore struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var _ contract.HistoryStore = &DBStore{} // Compile-time check

// NewDBStore initializes and returns a SQL-backed history store.
func NewDBStore(backend schema.DatabaseBackend, connStr string) (*DBStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		connStr = dbPath
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite history at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL history: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL history: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported database backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.Exec(getCreateTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", historyTable, err)
	}

	return &DBStore{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_ts BIGINT PRIMARY KEY,
				total_folders INT NOT NULL,
				processed_count INT NOT NULL,
				pending_count INT NOT NULL,
				empty_count INT NOT NULL,
				completed_names TEXT NOT NULL
			);
		`, historyTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_ts BIGINT PRIMARY KEY,
				total_folders INTEGER NOT NULL,
				processed_count INTEGER NOT NULL,
				pending_count INTEGER NOT NULL,
				empty_count INTEGER NOT NULL,
				completed_names TEXT NOT NULL
			);
		`, historyTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_ts INTEGER PRIMARY KEY,
				total_folders INTEGER NOT NULL,
				processed_count INTEGER NOT NULL,
				pending_count INTEGER NOT NULL,
				empty_count INTEGER NOT NULL,
				completed_names TEXT NOT NULL
			);
		`, historyTable)
	}
}

// getPlaceholders returns the parameter placeholders for the backend.
func (s *DBStore) getPlaceholders(n int) string {
	out := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			out += ", "
		}
		if s.backend == schema.PostgreSQLBackend {
			out += fmt.Sprintf("$%d", i)
		} else {
			out += "?"
		}
	}
	return out
}

// Append inserts one snapshot row keyed by its timestamp in nanoseconds.
func (s *DBStore) Append(snap schema.Snapshot) error {
	names, err := json.Marshal(snap.CompletedNames)
	if err != nil {
		return fmt.Errorf("failed to encode completed names: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (snapshot_ts, total_folders, processed_count, pending_count, empty_count, completed_names) VALUES (%s)`,
		historyTable, s.getPlaceholders(6))
	_, err = s.db.Exec(query,
		snap.Timestamp.UnixNano(),
		snap.TotalFolders,
		snap.ProcessedCount,
		snap.PendingCount,
		snap.EmptyCount,
		string(names),
	)
	if err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}

// Load replays all rows in ascending timestamp order. Rows that fail to scan
// or decode are skipped with a warning, matching the tolerant JSONL loader.
func (s *DBStore) Load() ([]schema.Snapshot, error) {
	query := fmt.Sprintf(`SELECT snapshot_ts, total_folders, processed_count, pending_count, empty_count, completed_names FROM %s ORDER BY snapshot_ts ASC`, historyTable)
	rows, err := s.db.Query(query)
	if err != nil {
		contract.LogWarn("cannot read history table, starting fresh", err)
		return nil, nil
	}
	defer func() { _ = rows.Close() }()

	var snaps []schema.Snapshot
	for rows.Next() {
		var ts int64
		var names string
		var snap schema.Snapshot
		if err := rows.Scan(&ts, &snap.TotalFolders, &snap.ProcessedCount, &snap.PendingCount, &snap.EmptyCount, &names); err != nil {
			contract.LogWarn("discarding unreadable history row", err)
			continue
		}
		snap.Timestamp = time.Unix(0, ts)
		if err := json.Unmarshal([]byte(names), &snap.CompletedNames); err != nil {
			contract.LogWarn("discarding history row with garbled completed names", err)
			continue
		}
		if err := snap.Validate(); err != nil {
			contract.LogWarn("discarding invalid history row", err)
			continue
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		contract.LogWarn("stopped reading history rows early", err)
	}
	return snaps, nil
}

// GetStatus returns status information about the history store.
func (s *DBStore) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
	}

	row := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", historyTable))
	if err := row.Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}

	var lastTs, oldestTs int64
	row = s.db.QueryRow(fmt.Sprintf("SELECT MAX(snapshot_ts), MIN(snapshot_ts) FROM %s", historyTable))
	if err := row.Scan(&lastTs, &oldestTs); err != nil {
		return status, fmt.Errorf("failed to get entry time range: %w", err)
	}
	status.LastEntryTime = time.Unix(0, lastTs)
	status.OldestEntryTime = time.Unix(0, oldestTs)

	// Size is approximate; only SQLite exposes it cheaply.
	if s.backend == schema.SQLiteBackend {
		row = s.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		if err := row.Scan(&status.SizeBytes); err != nil {
			status.SizeBytes = 0
		}
	} else {
		status.SizeBytes = int64(status.TotalEntries) * 256
	}

	return status, nil
}

// Clear removes all snapshot rows, keeping the table.
func (s *DBStore) Clear() error {
	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", historyTable)); err != nil {
		return fmt.Errorf("failed to clear history table: %w", err)
	}
	return nil
}

// Close closes the underlying DB connection.
func (s *DBStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
