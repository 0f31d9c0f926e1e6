package core

import (
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
)

// computeRate derives folders-per-minute from an ordered window of snapshots.
// Fewer than two snapshots, or a non-positive elapsed time, is "insufficient
// data", never zero: zero would falsely claim no progress instead of no
// measurement. A negative raw rate (processed count went down, e.g. folders
// were removed) is clamped to zero and flagged as an anomaly, since negative
// throughput has no physical meaning here.
func computeRate(window []schema.Snapshot) schema.Rate {
	if len(window) < 2 {
		return schema.UnknownRate()
	}
	first := window[0]
	last := window[len(window)-1]

	elapsed := last.Timestamp.Sub(first.Timestamp)
	if elapsed <= 0 {
		return schema.UnknownRate()
	}

	delta := last.ProcessedCount - first.ProcessedCount
	if delta < 0 {
		return schema.Rate{PerMinute: 0, Known: true, Anomaly: true}
	}
	return schema.KnownRate(float64(delta) / elapsed.Minutes())
}
