//go:build database

package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPhotochopWithMySQL exercises the full scan/history lifecycle against a
// MySQL history backend.
func TestPhotochopWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "photochop",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/photochop?parseTime=true", host, port.Port())
	runHistoryLifecycle(t, "mysql", connStr)
}

// TestPhotochopWithPostgres exercises the full scan/history lifecycle against
// a PostgreSQL history backend.
func TestPhotochopWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runHistoryLifecycle(t, "postgresql", connStr)
}

// runHistoryLifecycle drives the CLI through migrate, scan, show, status and
// clear against the given SQL backend.
func runHistoryLifecycle(t *testing.T, backend, connStr string) {
	t.Helper()
	base := makeBatchDir(t)
	backendArgs := []string{"--history-backend", backend, "--history-db-connect", connStr}

	// Bring the schema up before anything touches the table
	_, err := runPhotochopCommand(t, append([]string{"history", "migrate"}, backendArgs...)...)
	require.NoError(t, err)

	// Two scans a moment apart so the history has a rate to work with
	_, err = runPhotochopCommand(t, append([]string{"scan", base}, backendArgs...)...)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)
	_, err = runPhotochopCommand(t, append([]string{"scan", base}, backendArgs...)...)
	require.NoError(t, err)

	// Both snapshots should be visible
	out, err := runPhotochopCommand(t, append([]string{"history", "show"}, backendArgs...)...)
	require.NoError(t, err)
	require.Contains(t, out, "Showing 2 snapshots")

	out, err = runPhotochopCommand(t, append([]string{"history", "status"}, backendArgs...)...)
	require.NoError(t, err)
	require.Contains(t, out, "Snapshots: 2")

	// Export the snapshots to Parquet
	exportFile := filepath.Join(t.TempDir(), "history.parquet")
	_, err = runPhotochopCommand(t, append([]string{"history", "export", "--output-file", exportFile}, backendArgs...)...)
	require.NoError(t, err)

	// Clear and verify the table is empty but usable
	_, err = runPhotochopCommand(t, append([]string{"history", "clear"}, backendArgs...)...)
	require.NoError(t, err)

	out, err = runPhotochopCommand(t, append([]string{"history", "show"}, backendArgs...)...)
	require.NoError(t, err)
	require.Contains(t, out, "No history recorded yet.")
}
