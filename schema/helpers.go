package schema

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration in the compact bucket style used across
// console output: "45m" under an hour, "3h 20m" under a day, "2d 5h" beyond.
// Sub-minute durations render as "<1m" so a fresh estimate never shows "0m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	switch {
	case d > 0 && minutes == 0:
		return "<1m"
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes < 24*60:
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	default:
		return fmt.Sprintf("%dd %dh", minutes/(24*60), (minutes%(24*60))/60)
	}
}

// FormatRate renders a rate for display, or a placeholder when unmeasured.
func FormatRate(r Rate) string {
	if !r.Known {
		return "insufficient data"
	}
	return fmt.Sprintf("%.2f folders/min", r.PerMinute)
}

// FormatETA renders a completion estimate for display.
func FormatETA(e ETA) string {
	switch e.State {
	case ETAComplete:
		return "complete"
	case ETAKnown:
		return FormatDuration(e.Remaining)
	default:
		return "unknown"
	}
}
