package contract

import (
	"testing"
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/stretchr/testify/assert"
)

// TestGetPlainStatusLabel maps every folder status to its display label.
func TestGetPlainStatusLabel(t *testing.T) {
	tests := []struct {
		status   schema.FolderStatus
		expected string
	}{
		{schema.StatusProcessed, "Processed"},
		{schema.StatusPending, "Pending"},
		{schema.StatusEmpty, "Empty"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainStatusLabel(tt.status))
		})
	}
}

// TestGetColorStatusLabel verifies the colored label still contains the
// plain text regardless of escape codes.
func TestGetColorStatusLabel(t *testing.T) {
	for _, status := range []schema.FolderStatus{schema.StatusProcessed, schema.StatusPending, schema.StatusEmpty} {
		assert.Contains(t, GetColorStatusLabel(status), GetPlainStatusLabel(status))
	}
}

// TestGetStagnationSeverity covers the escalation bands.
func TestGetStagnationSeverity(t *testing.T) {
	tests := []struct {
		name     string
		idle     time.Duration
		expected string
	}{
		{"just stalled", 3 * time.Minute, NoticeValue},
		{"five minutes", 5 * time.Minute, WarningValue},
		{"nine minutes", 9 * time.Minute, WarningValue},
		{"ten minutes", 10 * time.Minute, CriticalValue},
		{"half an hour", 30 * time.Minute, CriticalValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetStagnationSeverity(tt.idle))
		})
	}
}

// TestTruncatePath keeps the informative tail of long paths.
func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		expected string
	}{
		{"short path unchanged", "user_01", 20, "user_01"},
		{"long path truncated", "projects/batch_2025/user_0042", 15, "...25/user_0042"},
		{"tiny width unchanged", "user_01", 3, "user_01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncatePath(tt.path, tt.maxWidth)
			assert.Equal(t, tt.expected, got)
			if len(tt.path) > tt.maxWidth && tt.maxWidth > 3 {
				assert.Len(t, got, tt.maxWidth)
			}
		})
	}
}

// TestParseToggle covers yes/no flag parsing with defaults.
func TestParseToggle(t *testing.T) {
	assert.True(t, parseToggle("yes", false))
	assert.True(t, parseToggle("1", false))
	assert.False(t, parseToggle("no", true))
	assert.False(t, parseToggle("off", true))
	assert.True(t, parseToggle("", true))
	assert.False(t, parseToggle("whatever", false))
}
