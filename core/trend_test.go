package core

import (
	"testing"
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name     string
		recent   float64
		prior    float64
		expected schema.TrendDirection
	}{
		{"clearly increasing", 12, 10, schema.TrendIncreasing},
		{"clearly decreasing", 8, 10, schema.TrendDecreasing},
		{"unchanged", 10, 10, schema.TrendStable},
		{"exactly at threshold stays stable", 11, 10, schema.TrendStable},
		{"exactly at negative threshold stays stable", 9, 10, schema.TrendStable},
		{"just past threshold", 11.01, 10, schema.TrendIncreasing},
		{"both idle", 0, 0, schema.TrendStable},
		{"restart from standstill", 3, 0, schema.TrendIncreasing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := classifyTrend(tt.recent, tt.prior, 10)
			assert.Equal(t, tt.expected, trend.Direction)
		})
	}
}

// TestClassifyTrendSymmetric swaps the windows and expects the opposite
// non-stable label; rerunning yields the same label both times.
func TestClassifyTrendSymmetric(t *testing.T) {
	forward := classifyTrend(15, 10, 10)
	backward := classifyTrend(10, 15, 10)

	assert.Equal(t, schema.TrendIncreasing, forward.Direction)
	assert.Equal(t, schema.TrendDecreasing, backward.Direction)

	assert.Equal(t, forward, classifyTrend(15, 10, 10))
	assert.Equal(t, backward, classifyTrend(10, 15, 10))
}

func TestComputeTrendAcrossWindows(t *testing.T) {
	h := NewHistory(emptyStore(t), 100)
	// Prior 5m window: 1 folder/min. Recent 5m window: 2 folders/min.
	require.NoError(t, h.Append(snapAt(0, 0)))
	require.NoError(t, h.Append(snapAt(4*time.Minute, 4)))
	require.NoError(t, h.Append(snapAt(6*time.Minute, 5)))
	require.NoError(t, h.Append(snapAt(10*time.Minute, 13)))

	trend := computeTrend(h, baseTime.Add(10*time.Minute), 5*time.Minute, 10)
	assert.Equal(t, schema.TrendIncreasing, trend.Direction)
	assert.InDelta(t, 100.0, trend.ChangePercent, 1e-9)
}

func TestComputeTrendInsufficientPriorWindow(t *testing.T) {
	h := NewHistory(emptyStore(t), 100)
	require.NoError(t, h.Append(snapAt(6*time.Minute, 5)))
	require.NoError(t, h.Append(snapAt(10*time.Minute, 13)))

	trend := computeTrend(h, baseTime.Add(10*time.Minute), 5*time.Minute, 10)
	assert.Equal(t, schema.TrendUnknown, trend.Direction)
}

func TestComputeTrendEmptyHistory(t *testing.T) {
	h := NewHistory(emptyStore(t), 100)
	trend := computeTrend(h, baseTime, 5*time.Minute, 10)
	assert.Equal(t, schema.TrendUnknown, trend.Direction)
}
