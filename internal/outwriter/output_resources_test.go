package outwriter

import (
	"bytes"
	"testing"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/stretchr/testify/assert"
)

func TestWriteSystemResources(t *testing.T) {
	var buf bytes.Buffer
	writeSystemResources(&buf, 42.0, 61.3, 2048, 4096, &contract.Config{})
	out := buf.String()

	assert.Contains(t, out, "CPU: 42.0%")
	assert.Contains(t, out, "RAM: 61.3%")
	assert.Contains(t, out, "(2.0 KiB / 4.0 KiB)")
}

func TestWriteSystemResourcesEmoji(t *testing.T) {
	var buf bytes.Buffer
	writeSystemResources(&buf, 10, 10, 1024, 2048, &contract.Config{UseEmojis: true})
	assert.Contains(t, buf.String(), "💻 CPU:")
}

func TestUsageColor(t *testing.T) {
	assert.Same(t, contract.ProcessedColor, usageColor(0))
	assert.Same(t, contract.ProcessedColor, usageColor(69.9))
	assert.Same(t, contract.WarningColor, usageColor(70))
	assert.Same(t, contract.WarningColor, usageColor(89.9))
	assert.Same(t, contract.CriticalColor, usageColor(90))
	assert.Same(t, contract.CriticalColor, usageColor(100))
}

// Machine-readable cycles skip the resources line entirely.
func TestPrintSystemResourcesNonText(t *testing.T) {
	assert.NoError(t, PrintSystemResources(&contract.Config{Output: schema.JSONOut}))
	assert.NoError(t, PrintSystemResources(&contract.Config{Output: schema.CSVOut}))
}
