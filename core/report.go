package core

import (
	"errors"
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
)

// recentActivityCount bounds the completion feed carried in each result.
const recentActivityCount = 5

// Analyzer assembles the per-cycle analytics: it feeds each new snapshot into
// the history and derives rate, trend, ETA and stagnation from the updated
// working set. Pure aggregation; all I/O stays in the history's store.
type Analyzer struct {
	cfg        *contract.Config
	history    *History
	stagnation *StagnationDetector
}

// NewAnalyzer creates an analyzer over an existing history. The start time
// anchors stagnation measurement until the first completion is observed.
func NewAnalyzer(cfg *contract.Config, history *History, start time.Time) *Analyzer {
	return &Analyzer{
		cfg:        cfg,
		history:    history,
		stagnation: NewStagnationDetector(cfg.StagnationThreshold, start),
	}
}

// Observe appends one snapshot and computes the analytics for the cycle.
// An out-of-order snapshot is rejected and yields no result. A persistence
// failure still yields a full result: the snapshot is in the working set, and
// the error is returned alongside for the caller to escalate for this cycle.
func (a *Analyzer) Observe(snap schema.Snapshot) (schema.AnalyticsResult, error) {
	prev, hadPrev := a.history.Latest()

	appendErr := a.history.Append(snap)
	if errors.Is(appendErr, schema.ErrOutOfOrder) {
		return schema.AnalyticsResult{}, appendErr
	}

	var newly []string
	if hadPrev {
		newly = snap.NewlyCompletedSince(prev)
	}
	a.stagnation.Observe(snap.Timestamp, newly)

	now := snap.Timestamp
	rate := computeRate(a.rateWindow(now))
	result := schema.AnalyticsResult{
		Latest:         snap,
		Rate:           rate,
		Trend:          computeTrend(a.history, now, a.cfg.RateWindow, a.cfg.TrendThresholdPct),
		ETA:            computeETA(snap, rate),
		Stagnation:     a.stagnation.Status(now),
		NewlyCompleted: newly,
		RecentActivity: a.history.RecentCompletions(recentActivityCount),
	}
	return result, appendErr
}

// rateWindow selects the snapshots the rate is computed over: a fixed count
// when configured, otherwise the configured duration window. Either way the
// window includes at least the two most recent snapshots, so the rate stays
// responsive right after startup or a long gap.
func (a *Analyzer) rateWindow(now time.Time) []schema.Snapshot {
	var win []schema.Snapshot
	if a.cfg.RateWindowCount > 0 {
		win = a.history.RecentCount(a.cfg.RateWindowCount)
	} else {
		win = a.history.Recent(now, a.cfg.RateWindow)
	}
	if len(win) < 2 {
		win = a.history.RecentCount(2)
	}
	return win
}
