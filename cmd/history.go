package cmd

import (
	"fmt"

	"github.com/aaronvstory/photochop-progress-analyzer/core"
	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/internal/histstore"
	"github.com/aaronvstory/photochop-progress-analyzer/internal/outwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyCmd focused on snapshot history management.
//
// Note: History subcommands validate config without checking the base path,
// since they only touch the persisted history and never scan the filesystem.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage persisted progress snapshots",
	Long: `Manage the snapshot history that powers rate, trend and ETA analytics.

Every scan and monitor cycle appends one snapshot (folder counts plus
completed folder names) to the configured backend. The history survives
restarts, so a resumed monitor picks up where the last session left off.

Supported backends: JSONL file (default), SQLite, MySQL, PostgreSQL, or None

Subcommands:
  status  - Show history statistics and connection info
  show    - Print recorded snapshots
  clear   - Remove all recorded snapshots
  export  - Export snapshots to Parquet for analytics
  migrate - Run database schema migrations

Examples:
  # Check how much history has accumulated
  photochop history status

  # Inspect the most recent snapshots
  photochop history show --limit 20`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show detailed information about the snapshot history store.

Displays:
- Backend type and connection status
- Total number of recorded snapshots
- Oldest and newest snapshot timestamps
- Storage size

Examples:
  # Check the default JSONL history
  photochop history status

  # Check a SQLite history
  photochop history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := core.OpenStore(cfg)
		if err != nil {
			contract.LogFatal("Failed to open history", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		if err := outwriter.NewOutWriter().WriteHistoryStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to print history status", err)
		}
	},
}

// historyShowCmd prints recorded snapshots.
var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print recorded snapshots in ascending time order",
	Long: `Replay the persisted history and print each snapshot with its folder
counts and completion percentage.

Use --limit to restrict output to the most recent N snapshots, and --output
to get JSON or CSV instead of the table.

Examples:
  # Show the last 20 snapshots
  photochop history show --limit 20

  # Recent snapshots as JSON
  photochop history show --output json`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := core.OpenStore(cfg)
		if err != nil {
			contract.LogFatal("Failed to open history", err)
		}
		defer func() { _ = store.Close() }()

		snaps, err := store.Load()
		if err != nil {
			contract.LogFatal("Failed to load history", err)
		}
		if cfg.ResultLimit > 0 && len(snaps) > cfg.ResultLimit {
			snaps = snaps[len(snaps)-cfg.ResultLimit:]
		}
		if err := outwriter.NewOutWriter().WriteHistory(snaps, cfg); err != nil {
			contract.LogFatal("Failed to print history", err)
		}
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded snapshots",
	Long: `Delete every snapshot from the configured history backend.

Rate, trend and ETA figures start from scratch on the next scan.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  photochop history export --output-file backup.parquet
  photochop history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := core.OpenStore(cfg)
		if err != nil {
			contract.LogFatal("Failed to open history", err)
		}
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyExportCmd exports the history to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export snapshots to Parquet for BI tools and analytics",
	Long: `Export all recorded snapshots to Parquet format for use with analytics
tools such as DuckDB, pandas or Apache Spark.

For JSON or CSV dumps, use 'history show --output json' or '--output csv'.

Requires: --output-file parameter

Examples:
  # Export all snapshots
  photochop history export --output-file progress.parquet

  # Query the export with DuckDB
  duckdb -c "SELECT * FROM read_parquet('progress.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := core.OpenStore(cfg)
		if err != nil {
			contract.LogFatal("Failed to open history", err)
		}
		defer func() { _ = store.Close() }()

		if err := histstore.ExecuteHistoryExport(store, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the SQL history backends.

By default, migrates to the latest version. Use --target-version for specific
versions.

Examples:
  # Migrate to latest version (default)
  photochop history migrate --history-backend sqlite

  # Rollback to initial state
  photochop history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := histstore.MigrateHistory(cfg.HistoryBackend, cfg.HistoryConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
