// Package core has the analytics engine: history, rate, trend, ETA and
// stagnation derived from folder-classification snapshots.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/internal/histstore"
	"github.com/aaronvstory/photochop-progress-analyzer/internal/outwriter"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// OpenStore builds the configured history store. The JSONL backend takes its
// path from HistoryFile; the SQL backends take HistoryConnect.
func OpenStore(cfg *contract.Config) (contract.HistoryStore, error) {
	connect := cfg.HistoryConnect
	if cfg.HistoryBackend == schema.JSONLBackend {
		connect = cfg.HistoryFile
	}
	return histstore.NewStore(cfg.HistoryBackend, connect)
}

// GetProgressResults runs one scan-and-analyze cycle against the persisted
// history and returns the raw results without printing them. It is shared by
// the 'scan' command and the MCP tools.
func GetProgressResults(ctx context.Context, cfg *contract.Config) (schema.ScanResult, schema.AnalyticsResult, error) {
	store, err := OpenStore(cfg)
	if err != nil {
		return schema.ScanResult{}, schema.AnalyticsResult{}, err
	}
	defer func() { _ = store.Close() }()

	scanner := contract.NewLocalScanner(cfg.MarkerPrefix, cfg.ImageExts)
	history := NewHistory(store, cfg.HistoryLimit)
	analyzer := NewAnalyzer(cfg, history, time.Now())

	scan, err := scanner.Scan(ctx, cfg.BasePath)
	if err != nil {
		return schema.ScanResult{}, schema.AnalyticsResult{}, err
	}

	result, err := analyzer.Observe(scan.Snapshot())
	if err != nil {
		if errors.Is(err, schema.ErrOutOfOrder) {
			return schema.ScanResult{}, schema.AnalyticsResult{}, err
		}
		// Persistence trouble degrades the cycle, not the report.
		contract.LogWarn("history not persisted for this scan", err)
	}
	return scan, result, nil
}

// ExecuteScan runs one scan-and-report cycle and prints the result to stdout.
// It serves as the main entry point for the 'scan' command.
func ExecuteScan(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	scan, result, err := GetProgressResults(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteProgress(scan, result, cfg, duration)
}
