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

// progressPayload is the machine-readable shape of one reporting cycle.
type progressPayload struct {
	Scan      schema.ScanResult      `json:"scan"`
	Analytics schema.AnalyticsResult `json:"analytics"`
}

// PrintProgressReport outputs one cycle's scan and analytics, dispatching on
// the configured output format.
func PrintProgressReport(scan schema.ScanResult, result schema.AnalyticsResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONProgress(scan, result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVProgress(scan, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to the human-readable console report
		if err := printProgressText(scan, result, cfg, duration); err != nil {
			return fmt.Errorf("error writing progress report: %w", err)
		}
	}
	return nil
}

// PrintMonitorHeader announces the start of a monitoring session.
func PrintMonitorHeader(cfg *contract.Config) {
	if cfg.Output != schema.TextOut {
		return
	}
	prefix := ""
	if cfg.UseEmojis {
		prefix = "📸 "
	}
	fmt.Printf("%sMonitoring %s every %v (history: %s)\n",
		prefix, contract.AccentColor.Sprint(cfg.BasePath), cfg.ScanInterval, cfg.HistoryBackend)
	fmt.Println("Press Ctrl+C to stop.")
}

// printJSONProgress handles opening the file and calling the JSON writer.
func printJSONProgress(scan schema.ScanResult, result schema.AnalyticsResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, progressPayload{Scan: scan, Analytics: result})
	}, "Wrote JSON")
}

// printCSVProgress writes one row per scanned folder.
func printCSVProgress(scan schema.ScanResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"folder", "status", "original_files", "marker_files", "total_files"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, f := range scan.Folders {
				row := []string{
					f.Name,
					string(f.Status),
					strconv.Itoa(f.OriginalFiles),
					strconv.Itoa(f.MarkerFiles),
					strconv.Itoa(f.TotalFiles),
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// printProgressText renders the console report: summary line, progress bar,
// analytics, pending queue table and the stagnation banner.
func printProgressText(scan schema.ScanResult, result schema.AnalyticsResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		snap := result.Latest
		fmtFloat := createFormatter(cfg.Precision)

		prefix := ""
		if cfg.UseEmojis {
			prefix = "📸 "
		}
		fmt.Fprintf(w, "%s%s  %s\n", prefix,
			contract.AccentColor.Sprint(scan.BasePath),
			snap.Timestamp.Format(contract.DateTimeFormat))

		bar := buildProgressBar(snap.ProgressPercent(), 24)
		fmt.Fprintf(w, "%s %s%% (%d/%d processed, %d pending, %d empty)\n",
			bar, fmtFloat(snap.ProgressPercent()),
			snap.ProcessedCount, snap.TotalFolders, snap.PendingCount, snap.EmptyCount)

		fmt.Fprintf(w, "Rate: %s | Trend: %s | ETA: %s\n",
			schema.FormatRate(result.Rate),
			formatTrend(result.Trend),
			schema.FormatETA(result.ETA))
		if result.Rate.Anomaly {
			fmt.Fprintln(w, contract.WarningColor.Sprint("Processed count went down since the last snapshot; rate clamped to zero."))
		}

		if len(result.NewlyCompleted) > 0 {
			fmt.Fprintf(w, "Newly completed: %s\n",
				contract.ProcessedColor.Sprint(strings.Join(result.NewlyCompleted, ", ")))
		}
		writeRecentActivity(w, result, snap.Timestamp)

		if err := writePendingTable(w, scan, cfg); err != nil {
			return err
		}

		writeStagnationBanner(w, result.Stagnation, cfg)

		if duration > 0 {
			fmt.Fprintf(w, "Scan completed in %v. History backend: %s\n", duration, cfg.HistoryBackend)
		}
		return nil
	}, "Wrote report")
}

// writeRecentActivity lists the trailing completions, newest first, with the
// age of each relative to the current snapshot.
func writeRecentActivity(w io.Writer, result schema.AnalyticsResult, now time.Time) {
	if len(result.RecentActivity) == 0 {
		return
	}
	fmt.Fprintln(w, "Recent completions:")
	for i := len(result.RecentActivity) - 1; i >= 0; i-- {
		ev := result.RecentActivity[i]
		age := now.Sub(ev.Timestamp)
		when := schema.FormatDuration(age) + " ago"
		if age < time.Minute {
			when = "just now"
		}
		fmt.Fprintf(w, "  %s  %s\n", contract.ProcessedColor.Sprint(ev.Name), when)
	}
}

// writePendingTable lists the folders still waiting on output, up to the
// configured result limit.
func writePendingTable(w io.Writer, scan schema.ScanResult, cfg *contract.Config) error {
	pending := scan.Pending()
	if len(pending) == 0 {
		return nil
	}
	shown := pending
	if len(shown) > cfg.ResultLimit {
		shown = shown[:cfg.ResultLimit]
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Folder", "Status", "Images", "Outputs"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	maxWidth := GetMaxTableFolderWidth(cfg)
	for _, f := range shown {
		label := contract.GetPlainStatusLabel(f.Status)
		if cfg.UseColors {
			label = contract.GetColorStatusLabel(f.Status)
		}
		data = append(data, []string{
			contract.TruncatePath(f.Name, maxWidth),
			label,
			strconv.Itoa(f.OriginalFiles),
			strconv.Itoa(f.MarkerFiles),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if len(pending) > len(shown) {
		fmt.Fprintf(w, "...and %d more pending folders\n", len(pending)-len(shown))
	}
	return nil
}

// writeStagnationBanner prints the idle alert with escalating severity.
func writeStagnationBanner(w io.Writer, status schema.StagnationStatus, cfg *contract.Config) {
	if !status.Stalled {
		return
	}
	severity := contract.GetStagnationSeverity(status.Idle)
	line := fmt.Sprintf("%s: no new completions for %s (since %s)",
		severity, schema.FormatDuration(status.Idle), status.LastCompletion.Format(contract.DateTimeFormat))
	if cfg.UseEmojis {
		line = "⚠️  " + line
	}
	switch severity {
	case contract.CriticalValue:
		fmt.Fprintln(w, contract.CriticalColor.Sprint(line))
	case contract.WarningValue:
		fmt.Fprintln(w, contract.WarningColor.Sprint(line))
	default:
		fmt.Fprintln(w, contract.PendingColor.Sprint(line))
	}
}

// buildProgressBar renders a fixed-width unicode bar for the given percentage.
func buildProgressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent/100*float64(width) + 0.5)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// formatTrend renders the direction with its relative change when meaningful.
func formatTrend(t schema.Trend) string {
	switch t.Direction {
	case schema.TrendIncreasing:
		return fmt.Sprintf("%s (+%.1f%%)", t.Direction, t.ChangePercent)
	case schema.TrendDecreasing:
		return fmt.Sprintf("%s (%.1f%%)", t.Direction, t.ChangePercent)
	default:
		return string(t.Direction)
	}
}
