package schema

import "time"

// Rate is a processing-speed measurement in folders per minute.
// Known distinguishes a real measurement from "not enough data yet";
// a zero value with Known=false must never be read as zero throughput.
type Rate struct {
	PerMinute float64 `json:"per_minute"`
	Known     bool    `json:"known"`

	// Anomaly is set when the raw rate came out negative (processed count
	// decreased between snapshots) and was clamped to zero.
	Anomaly bool `json:"anomaly"`
}

// KnownRate builds a measured rate value.
func KnownRate(perMinute float64) Rate {
	return Rate{PerMinute: perMinute, Known: true}
}

// UnknownRate is the "insufficient data" rate value.
func UnknownRate() Rate {
	return Rate{}
}

// TrendDirection classifies how the processing rate is changing.
type TrendDirection string

// Trend classification values.
const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
	TrendUnknown    TrendDirection = "unknown"
)

// Trend is the rate comparison between two adjacent windows.
type Trend struct {
	Direction TrendDirection `json:"direction"`

	// ChangePercent is the relative change of the recent rate against the
	// prior rate, in percent. Only meaningful for non-unknown directions.
	ChangePercent float64 `json:"change_percent"`
}

// ETAState tags the completion estimate.
type ETAState string

// ETA state values.
const (
	ETAKnown    ETAState = "known"
	ETAUnknown  ETAState = "unknown"
	ETAComplete ETAState = "complete"
)

// ETA is the estimated time to full completion. Remaining is exact; display
// rounding is the presentation layer's concern.
type ETA struct {
	State     ETAState      `json:"state"`
	Remaining time.Duration `json:"remaining"`
}

// KnownETA builds a measured completion estimate.
func KnownETA(remaining time.Duration) ETA {
	return ETA{State: ETAKnown, Remaining: remaining}
}

// UnknownETA is the "cannot estimate" value.
func UnknownETA() ETA {
	return ETA{State: ETAUnknown}
}

// CompleteETA reports that no work remains, regardless of rate.
func CompleteETA() ETA {
	return ETA{State: ETAComplete}
}

// StagnationStatus reports how long the operation has gone without a new
// folder completion.
type StagnationStatus struct {
	Stalled bool          `json:"stalled"`
	Idle    time.Duration `json:"idle"`

	// LastCompletion is the snapshot timestamp of the most recent completion,
	// or the monitoring start time if none has been observed yet.
	LastCompletion time.Time `json:"last_completion"`
}

// CompletionEvent records one folder finishing, reconstructed from adjacent
// snapshots in the history.
type CompletionEvent struct {
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalyticsResult is the assembled per-cycle analytics output handed to
// presentation. It is ephemeral and rebuilt from history on every cycle.
type AnalyticsResult struct {
	Latest         Snapshot         `json:"latest"`
	Rate           Rate             `json:"rate"`
	Trend          Trend            `json:"trend"`
	ETA            ETA              `json:"eta"`
	Stagnation     StagnationStatus `json:"stagnation"`
	NewlyCompleted []string         `json:"newly_completed"`

	// RecentActivity is the last few completions across cycles, oldest first.
	RecentActivity []CompletionEvent `json:"recent_activity"`
}
