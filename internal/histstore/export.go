package histstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/parquet-go/parquet-go"
)

// HistoryRecord is the Parquet row layout for one persisted snapshot.
// The schema is inferred from the struct tags by the parquet writer.
type HistoryRecord struct {
	// SnapshotTs is when the snapshot was taken (TIMESTAMP with nanosecond precision)
	SnapshotTs int64 `parquet:"snapshot_ts,snappy"`

	// TotalFolders is the number of subfolders seen in the scan
	TotalFolders int32 `parquet:"total_folders,snappy"`

	// ProcessedCount is the number of folders with at least one marker file
	ProcessedCount int32 `parquet:"processed_count,snappy"`

	// PendingCount is the number of folders still waiting on output
	PendingCount int32 `parquet:"pending_count,snappy"`

	// EmptyCount is the number of folders with no entries at all
	EmptyCount int32 `parquet:"empty_count,snappy"`

	// ProgressPercent is processed over all folders (empty included), 0-100
	ProgressPercent float64 `parquet:"progress_percent,snappy"`

	// CompletedNames is the JSON-encoded sorted list of processed folder names
	CompletedNames string `parquet:"completed_names,snappy"`
}

// ConvertSnapshots converts schema.Snapshot values to HistoryRecord rows for export.
func ConvertSnapshots(snaps []schema.Snapshot) []HistoryRecord {
	result := make([]HistoryRecord, len(snaps))
	for i, snap := range snaps {
		names := []byte("[]")
		if len(snap.CompletedNames) > 0 {
			names, _ = json.Marshal(snap.CompletedNames)
		}
		result[i] = HistoryRecord{
			SnapshotTs:      snap.Timestamp.UnixNano(),
			TotalFolders:    int32(snap.TotalFolders),
			ProcessedCount:  int32(snap.ProcessedCount),
			PendingCount:    int32(snap.PendingCount),
			EmptyCount:      int32(snap.EmptyCount),
			ProgressPercent: snap.ProgressPercent(),
			CompletedNames:  string(names),
		}
	}
	return result
}

// WriteHistoryParquet writes a slice of HistoryRecord rows to a Parquet file.
func WriteHistoryParquet(data []HistoryRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[HistoryRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ExecuteHistoryExport exports the persisted history to a Parquet file.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalEntries == 0 {
		return errors.New("no history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total snapshots: %d\n", status.TotalEntries)

	snaps, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	records := ConvertSnapshots(snaps)
	if err := WriteHistoryParquet(records, outputFile); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	fmt.Printf("Exported %d snapshots to: %s\n", len(records), outputFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
