// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteProgress prints one cycle's scan and analytics using the configured output format.
func (ow *OutWriter) WriteProgress(scan schema.ScanResult, result schema.AnalyticsResult, cfg *contract.Config, duration time.Duration) error {
	return PrintProgressReport(scan, result, cfg, duration)
}

// WriteHistory prints persisted snapshots using the configured output format.
func (ow *OutWriter) WriteHistory(snaps []schema.Snapshot, cfg *contract.Config) error {
	return PrintHistoryResults(snaps, cfg)
}

// WriteHistoryStatus prints history store status using the configured output format.
func (ow *OutWriter) WriteHistoryStatus(status schema.HistoryStatus, cfg *contract.Config) error {
	return PrintHistoryStatus(status, cfg)
}

// WriteSystemResources prints the host CPU/RAM line for monitor cycles.
func (ow *OutWriter) WriteSystemResources(cfg *contract.Config) error {
	return PrintSystemResources(cfg)
}

// GetMaxTableFolderWidth calculates the maximum width for folder names in
// table output based on terminal width and table configuration.
func GetMaxTableFolderWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the Status, Images, Outputs and Total columns plus
	// table borders, separators and padding.
	const baseWidth = 45

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
