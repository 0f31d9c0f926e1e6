package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/fatih/color"
)

// Stagnation severity labels.
const (
	NoticeValue   = "Notice"   // Just past the threshold
	WarningValue  = "Warning"  // Needs operator attention
	CriticalValue = "Critical" // Likely wedged
)

// Severity escalation points relative to the configured stagnation threshold.
const (
	WarningIdle  = 5 * time.Minute
	CriticalIdle = 10 * time.Minute
)

// Color variables for console output.
var (
	ProcessedColor = color.New(color.FgGreen)             // completed folders
	PendingColor   = color.New(color.FgYellow)            // folders still waiting
	EmptyColor     = color.New(color.FgHiBlack)           // folders with nothing in them
	CriticalColor  = color.New(color.FgRed, color.Bold)   // stalled hard
	WarningColor   = color.New(color.FgYellow, color.Bold)
	AccentColor    = color.New(color.FgCyan)              // timestamps, paths, figures
)

// GetPlainStatusLabel returns the plain text label for a folder status.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainStatusLabel(status schema.FolderStatus) string {
	switch status {
	case schema.StatusProcessed:
		return "Processed"
	case schema.StatusEmpty:
		return "Empty"
	default:
		return "Pending"
	}
}

// GetColorStatusLabel returns a colored label for console output (table).
// It uses GetPlainStatusLabel to determine the string, and then applies the
// appropriate color.
func GetColorStatusLabel(status schema.FolderStatus) string {
	text := GetPlainStatusLabel(status)
	switch status {
	case schema.StatusProcessed:
		return ProcessedColor.Sprint(text)
	case schema.StatusEmpty:
		return EmptyColor.Sprint(text)
	default:
		return PendingColor.Sprint(text)
	}
}

// GetStagnationSeverity maps idle time to a severity label. The threshold is
// the configured alert point; 5 and 10 minute idle marks escalate, following
// the original operator guidance bands.
func GetStagnationSeverity(idle time.Duration) string {
	switch {
	case idle >= CriticalIdle:
		return CriticalValue
	case idle >= WarningIdle:
		return WarningValue
	default:
		return NoticeValue
	}
}

// TruncatePath shortens a path for table display, keeping the tail which is
// the informative part for folder names.
func TruncatePath(path string, maxWidth int) string {
	if maxWidth <= 3 || len(path) <= maxWidth {
		return path
	}
	return "..." + path[len(path)-(maxWidth-3):]
}

// SelectOutputFile returns the appropriate file handle for output based on the
// provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryFilePath returns the default path for the JSONL history log.
func GetHistoryFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".photochop_history.jsonl"
	}
	return filepath.Join(homeDir, ".photochop_history.jsonl")
}

// GetHistoryDBFilePath returns the default path for the SQLite history DB.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".photochop_history.db"
	}
	return filepath.Join(homeDir, ".photochop_history.db")
}
