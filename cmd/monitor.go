package cmd

import (
	"os/signal"
	"syscall"

	"github.com/aaronvstory/photochop-progress-analyzer/core"
	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/spf13/cobra"
)

// monitorCmd runs the continuous polling loop.
var monitorCmd = &cobra.Command{
	Use:   "monitor [base-path]",
	Short: "Continuously watch the working directory and report progress.",
	Long: `Poll the working directory on a fixed interval, printing a progress report
after every scan until interrupted with Ctrl-C.

Monitoring keeps one long-lived history in memory, so rate, trend and ETA
figures sharpen as cycles accumulate. A stagnation alert fires when no folder
completes for longer than the configured threshold.

Transient failures (unreadable directory, history write errors) are logged
and skipped; the loop keeps polling.

Examples:
  # Watch the current directory every 30 seconds
  photochop monitor

  # Faster polling with a tighter stagnation alert
  photochop monitor /photos/batch-42 --interval 10s --stagnation-threshold 2m`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := core.ExecuteMonitor(ctx, cfg); err != nil {
			contract.LogFatal("Cannot run monitor", err)
		}
	},
}
