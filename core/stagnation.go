package core

import (
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/schema"
)

// StagnationDetector tracks the time since the last observed folder
// completion. Before any completion has been seen, idleness is measured from
// monitoring start, not from epoch zero.
type StagnationDetector struct {
	threshold      time.Duration
	lastCompletion time.Time
}

// NewStagnationDetector creates a detector anchored at monitoring start.
func NewStagnationDetector(threshold time.Duration, start time.Time) *StagnationDetector {
	return &StagnationDetector{threshold: threshold, lastCompletion: start}
}

// Observe records a snapshot's completion activity. A snapshot with newly
// completed folders moves the anchor forward and clears any active alert.
func (d *StagnationDetector) Observe(snapTime time.Time, newlyCompleted []string) {
	if len(newlyCompleted) > 0 {
		d.lastCompletion = snapTime
	}
}

// Status reports whether the operation is stalled as of now.
func (d *StagnationDetector) Status(now time.Time) schema.StagnationStatus {
	idle := now.Sub(d.lastCompletion)
	if idle < 0 {
		idle = 0
	}
	return schema.StagnationStatus{
		Stalled:        idle > d.threshold,
		Idle:           idle,
		LastCompletion: d.lastCompletion,
	}
}
