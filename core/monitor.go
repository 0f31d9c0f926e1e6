package core

import (
	"context"
	"errors"
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/internal/outwriter"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
)

// ExecuteMonitor runs the polling loop: scan, analyze, report, sleep, repeat
// until the context is cancelled. One cycle always runs to completion before
// the next begins; cancellation abandons any in-flight scan without appending
// a partial snapshot, so the persisted log only ever holds finished cycles.
func ExecuteMonitor(ctx context.Context, cfg *contract.Config) error {
	store, err := OpenStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	scanner := contract.NewLocalScanner(cfg.MarkerPrefix, cfg.ImageExts)
	history := NewHistory(store, cfg.HistoryLimit)
	analyzer := NewAnalyzer(cfg, history, time.Now())
	writer := outwriter.NewOutWriter()

	outwriter.PrintMonitorHeader(cfg)

	ticker := time.NewTicker(cfg.ScanInterval)
	defer ticker.Stop()

	for {
		runMonitorCycle(ctx, cfg, scanner, analyzer, writer)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// runMonitorCycle performs one scan-and-report pass. Every failure is scoped
// to the cycle: it is logged and the loop keeps polling.
func runMonitorCycle(ctx context.Context, cfg *contract.Config, scanner contract.SnapshotProducer, analyzer *Analyzer, writer *outwriter.OutWriter) {
	scan, err := scanner.Scan(ctx, cfg.BasePath)
	if err != nil {
		if ctx.Err() == nil {
			contract.LogWarn("scan failed, will retry next cycle", err)
		}
		return
	}

	result, err := analyzer.Observe(scan.Snapshot())
	if err != nil {
		if errors.Is(err, schema.ErrOutOfOrder) {
			contract.LogWarn("dropping out-of-order snapshot", err)
			return
		}
		contract.LogWarn("history not persisted for this cycle", err)
	}

	if err := writer.WriteProgress(scan, result, cfg, 0); err != nil {
		contract.LogWarn("failed to render progress report", err)
	}

	if err := writer.WriteSystemResources(cfg); err != nil {
		contract.LogWarn("cannot read system resources", err)
	}
}
