package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintHistoryResults outputs persisted snapshots, dispatching on the
// configured output format. Snapshots are expected in ascending time order.
func PrintHistoryResults(snaps []schema.Snapshot, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, snaps)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVHistory(w, snaps)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(w, snaps, cfg)
		}, "Wrote history")
	}
}

// PrintHistoryStatus outputs the history store status.
func PrintHistoryStatus(status schema.HistoryStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		fmt.Fprintf(w, "Backend: %s\n", status.Backend)
		fmt.Fprintf(w, "Connected: %t\n", status.Connected)
		fmt.Fprintf(w, "Snapshots: %d\n", status.TotalEntries)
		if status.TotalEntries > 0 {
			fmt.Fprintf(w, "Oldest: %s\n", status.OldestEntryTime.Format(contract.DateTimeFormat))
			fmt.Fprintf(w, "Latest: %s\n", status.LastEntryTime.Format(contract.DateTimeFormat))
		}
		if status.SizeBytes > 0 {
			fmt.Fprintf(w, "Size: %s\n", formatByteSize(status.SizeBytes))
		}
		return nil
	}, "Wrote status")
}

// writeCSVHistory writes one row per snapshot.
func writeCSVHistory(w io.Writer, snaps []schema.Snapshot) error {
	header := []string{"timestamp", "total_folders", "processed_count", "pending_count", "empty_count", "completed_names"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, snap := range snaps {
			row := []string{
				snap.Timestamp.Format(time.RFC3339),
				strconv.Itoa(snap.TotalFolders),
				strconv.Itoa(snap.ProcessedCount),
				strconv.Itoa(snap.PendingCount),
				strconv.Itoa(snap.EmptyCount),
				strings.Join(snap.CompletedNames, ";"),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// writeHistoryTable renders snapshots as a progress-over-time table.
func writeHistoryTable(w io.Writer, snaps []schema.Snapshot, cfg *contract.Config) error {
	if len(snaps) == 0 {
		fmt.Fprintln(w, "No history recorded yet.")
		return nil
	}
	fmtFloat := createFormatter(cfg.Precision)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Timestamp", "Processed", "Pending", "Empty", "Progress"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, snap := range snaps {
		data = append(data, []string{
			snap.Timestamp.Format(contract.DateTimeFormat),
			strconv.Itoa(snap.ProcessedCount),
			strconv.Itoa(snap.PendingCount),
			strconv.Itoa(snap.EmptyCount),
			fmtFloat(snap.ProgressPercent()) + "%",
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Showing %d snapshots\n", len(snaps))
	return nil
}

// formatByteSize renders bytes with a binary unit suffix.
func formatByteSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMG"[exp])
}
