package core

import (
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/schema"
)

// computeTrend compares the rate over the most recent window against the rate
// over the adjacent, non-overlapping window of equal size immediately before
// it. The threshold is inclusive on the stable side: a change of exactly
// thresholdPct percent is still stable.
func computeTrend(h *History, now time.Time, window time.Duration, thresholdPct float64) schema.Trend {
	recentWin := h.between(now.Add(-window), now)
	priorWin := h.between(now.Add(-2*window), now.Add(-window).Add(-time.Nanosecond))

	recentRate := computeRate(recentWin)
	priorRate := computeRate(priorWin)
	if !recentRate.Known || !priorRate.Known {
		return schema.Trend{Direction: schema.TrendUnknown}
	}

	return classifyTrend(recentRate.PerMinute, priorRate.PerMinute, thresholdPct)
}

// classifyTrend labels the change between two known rates.
func classifyTrend(recent, prior, thresholdPct float64) schema.Trend {
	if prior == 0 {
		if recent == 0 {
			return schema.Trend{Direction: schema.TrendStable}
		}
		// Starting from a standstill counts as a full increase.
		return schema.Trend{Direction: schema.TrendIncreasing, ChangePercent: 100}
	}

	change := (recent - prior) / prior * 100
	switch {
	case change > thresholdPct:
		return schema.Trend{Direction: schema.TrendIncreasing, ChangePercent: change}
	case change < -thresholdPct:
		return schema.Trend{Direction: schema.TrendDecreasing, ChangePercent: change}
	default:
		return schema.Trend{Direction: schema.TrendStable, ChangePercent: change}
	}
}
