package core

import (
	"testing"
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/stretchr/testify/assert"
)

func TestComputeRateExact(t *testing.T) {
	// Five processed at t0, eleven at t0+60s: exactly 6 folders per minute.
	window := []schema.Snapshot{snapAt(0, 5), snapAt(time.Minute, 11)}
	rate := computeRate(window)

	assert.True(t, rate.Known)
	assert.False(t, rate.Anomaly)
	assert.InDelta(t, 6.0, rate.PerMinute, 1e-9)
}

func TestComputeRateInsufficientData(t *testing.T) {
	assert.False(t, computeRate(nil).Known)
	assert.False(t, computeRate([]schema.Snapshot{snapAt(0, 5)}).Known)
}

func TestComputeRateZeroElapsed(t *testing.T) {
	window := []schema.Snapshot{snapAt(0, 5), snapAt(0, 11)}
	assert.False(t, computeRate(window).Known)
}

func TestComputeRateClampsNegative(t *testing.T) {
	window := []schema.Snapshot{snapAt(0, 8), snapAt(time.Minute, 5)}
	rate := computeRate(window)

	assert.True(t, rate.Known)
	assert.True(t, rate.Anomaly)
	assert.Zero(t, rate.PerMinute)
}

func TestComputeRateIntermediateSnapshotsIgnored(t *testing.T) {
	// Only the window endpoints matter.
	window := []schema.Snapshot{
		snapAt(0, 2),
		snapAt(time.Minute, 9),
		snapAt(2*time.Minute, 4),
	}
	rate := computeRate(window)

	assert.True(t, rate.Known)
	assert.InDelta(t, 1.0, rate.PerMinute, 1e-9)
}

func TestComputeRateNoProgress(t *testing.T) {
	// No change is a real measurement of zero, not "insufficient data".
	window := []schema.Snapshot{snapAt(0, 5), snapAt(time.Minute, 5)}
	rate := computeRate(window)

	assert.True(t, rate.Known)
	assert.False(t, rate.Anomaly)
	assert.Zero(t, rate.PerMinute)
}
