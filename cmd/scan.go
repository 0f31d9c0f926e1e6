package cmd

import (
	"github.com/aaronvstory/photochop-progress-analyzer/core"
	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/spf13/cobra"
)

// scanCmd performs a single scan-and-report cycle.
var scanCmd = &cobra.Command{
	Use:   "scan [base-path]",
	Short: "Scan the working directory once and report progress.",
	Long: `Classify every immediate subfolder of the working directory and print a
progress report with rate, trend, ETA and stagnation analytics.

A folder counts as processed when it contains at least one output image whose
name starts with the marker prefix (default "gen-"). Folders with source
images but no marker file are pending; folders with no images are empty.

Each scan appends one snapshot to the configured history backend, so repeated
scans build up the data the rate and trend calculations feed on.

Examples:
  # Scan the current directory
  photochop scan

  # Scan a specific batch directory with JSON output
  photochop scan /photos/batch-42 --output json

  # Use a custom marker prefix
  photochop scan --marker-prefix done-`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScan(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run scan", err)
		}
	},
}
