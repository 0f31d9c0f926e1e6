package core

import (
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/schema"
)

// computeETA combines remaining work with the current rate. Completion wins
// over everything: zero remaining folders is "complete" even when the rate is
// unknown. An unknown or zero rate with work remaining is "unknown", never a
// division by zero or an infinite duration dressed up as a number.
func computeETA(latest schema.Snapshot, rate schema.Rate) schema.ETA {
	if latest.Remaining() <= 0 {
		return schema.CompleteETA()
	}
	if !rate.Known || rate.PerMinute <= 0 {
		return schema.UnknownETA()
	}
	minutes := float64(latest.Remaining()) / rate.PerMinute
	return schema.KnownETA(time.Duration(minutes * float64(time.Minute)))
}
