package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aaronvstory/photochop-progress-analyzer/schema"
)

// Default values for configuration.
const (
	DefaultScanInterval        = 30 * time.Second
	DefaultRateWindow          = 10 * time.Minute
	DefaultTrendThresholdPct   = 10.0
	DefaultStagnationThreshold = 3 * time.Minute
	DefaultHistoryLimit        = 100
	DefaultResultLimit         = 8
	DefaultPrecision           = 2
	DefaultMarkerPrefix        = "gen-"
)

// DefaultImageExts are the file extensions that count as images during
// classification. Lowercase; matching is case-insensitive.
var DefaultImageExts = []string{".jpg", ".jpeg", ".png", ".webp"}

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for monitoring and analytics.
// This struct remains the "final, validated" config. Core components receive
// these values as explicit parameters and never read env or disk themselves.
type Config struct {
	BasePath string

	ScanInterval        time.Duration
	RateWindow          time.Duration
	RateWindowCount     int // When > 0, window by snapshot count instead of duration
	TrendThresholdPct   float64
	StagnationThreshold time.Duration
	HistoryLimit        int // In-memory working set bound

	MarkerPrefix string
	ImageExts    []string

	HistoryBackend schema.DatabaseBackend
	HistoryConnect string // Please use env var as this is plaintext
	HistoryFile    string // JSONL log path, empty = default under home dir

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// Clone returns a copy of the config that handlers can mutate safely.
func (c *Config) Clone() *Config {
	clone := *c
	clone.ImageExts = append([]string(nil), c.ImageExts...)
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	BasePathStr string

	Interval            string  `mapstructure:"interval"`
	RateWindow          string  `mapstructure:"rate-window"`
	RateWindowCount     int     `mapstructure:"rate-window-count"`
	TrendThreshold      float64 `mapstructure:"trend-threshold"`
	StagnationThreshold string  `mapstructure:"stagnation-threshold"`
	HistoryLimit        int     `mapstructure:"history-limit"`
	MarkerPrefix        string  `mapstructure:"marker-prefix"`
	ImageExts           string  `mapstructure:"image-exts"`
	HistoryBackend      string  `mapstructure:"history-backend"`
	HistoryDBConnect    string  `mapstructure:"history-db-connect"`
	HistoryFile         string  `mapstructure:"history-file"`
	Limit               int     `mapstructure:"limit"`
	Precision           int     `mapstructure:"precision"`
	Output              string  `mapstructure:"output"`
	OutputFile          string  `mapstructure:"output-file"`
	Width               int     `mapstructure:"width"`
	Emoji               string  `mapstructure:"emoji"`
	Color               string  `mapstructure:"color"`
}

// ProcessAndValidate converts the raw input into the final validated Config.
// It resolves the base path, parses durations, and rejects values the engine
// cannot work with. checkPath controls whether the base path must exist on
// disk (history-only commands skip the check).
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, checkPath bool) error {
	basePath := input.BasePathStr
	if basePath == "" {
		basePath = "."
	}
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return fmt.Errorf("cannot resolve base path %q: %w", basePath, err)
	}
	if checkPath {
		info, err := os.Stat(absPath)
		if err != nil {
			return fmt.Errorf("base path %q is not accessible: %w", absPath, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("base path %q is not a directory", absPath)
		}
	}
	cfg.BasePath = absPath

	if cfg.ScanInterval, err = parseDurationOrDefault(input.Interval, DefaultScanInterval); err != nil {
		return fmt.Errorf("invalid interval: %w", err)
	}
	if cfg.ScanInterval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", cfg.ScanInterval)
	}

	if cfg.RateWindow, err = parseDurationOrDefault(input.RateWindow, DefaultRateWindow); err != nil {
		return fmt.Errorf("invalid rate-window: %w", err)
	}
	if cfg.RateWindow <= 0 {
		return fmt.Errorf("rate-window must be positive, got %v", cfg.RateWindow)
	}
	if input.RateWindowCount < 0 {
		return fmt.Errorf("rate-window-count cannot be negative, got %d", input.RateWindowCount)
	}
	cfg.RateWindowCount = input.RateWindowCount

	cfg.TrendThresholdPct = input.TrendThreshold
	if cfg.TrendThresholdPct == 0 {
		cfg.TrendThresholdPct = DefaultTrendThresholdPct
	}
	if cfg.TrendThresholdPct < 0 {
		return fmt.Errorf("trend-threshold cannot be negative, got %v", cfg.TrendThresholdPct)
	}

	if cfg.StagnationThreshold, err = parseDurationOrDefault(input.StagnationThreshold, DefaultStagnationThreshold); err != nil {
		return fmt.Errorf("invalid stagnation-threshold: %w", err)
	}
	if cfg.StagnationThreshold <= 0 {
		return fmt.Errorf("stagnation-threshold must be positive, got %v", cfg.StagnationThreshold)
	}

	cfg.HistoryLimit = input.HistoryLimit
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}

	cfg.MarkerPrefix = input.MarkerPrefix
	if cfg.MarkerPrefix == "" {
		cfg.MarkerPrefix = DefaultMarkerPrefix
	}
	cfg.ImageExts = parseExtList(input.ImageExts)

	backend := input.HistoryBackend
	if backend == "" {
		backend = string(schema.JSONLBackend)
	}
	if !schema.ValidDatabaseBackend(backend) {
		return fmt.Errorf("unsupported history backend: %s. Must be jsonl, sqlite, mysql, postgresql, or none", backend)
	}
	cfg.HistoryBackend = schema.DatabaseBackend(backend)
	cfg.HistoryConnect = input.HistoryDBConnect
	cfg.HistoryFile = input.HistoryFile
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryConnect); err != nil {
		return err
	}

	cfg.ResultLimit = input.Limit
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = DefaultResultLimit
	}
	cfg.Precision = input.Precision
	if cfg.Precision < 0 {
		cfg.Precision = DefaultPrecision
	}

	switch schema.OutputMode(input.Output) {
	case schema.TextOut, schema.JSONOut, schema.CSVOut, "":
		cfg.Output = schema.OutputMode(input.Output)
		if cfg.Output == "" {
			cfg.Output = schema.TextOut
		}
	default:
		return fmt.Errorf("unsupported output mode: %s. Must be text, json, or csv", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative, got %d", input.Width)
	}
	cfg.Width = input.Width

	cfg.UseEmojis = parseToggle(input.Emoji, false)
	cfg.UseColors = parseToggle(input.Color, true)

	return nil
}

// ValidateDatabaseConnectionString rejects backend/connection combinations
// that cannot work before any connection attempt is made.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("mysql backend requires --history-db-connect (user:pass@tcp(host:port)/dbname)")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("postgresql backend requires --history-db-connect (host=... port=... user=... dbname=...)")
		}
	}
	return nil
}

// parseDurationOrDefault parses a Go duration string, treating empty as the default.
func parseDurationOrDefault(s string, def time.Duration) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return time.ParseDuration(strings.TrimSpace(s))
}

// parseExtList splits a comma-separated extension list, normalizing to
// lowercase with a leading dot. Empty input yields the defaults.
func parseExtList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return append([]string(nil), DefaultImageExts...)
	}
	var exts []string
	for _, part := range strings.Split(s, ",") {
		ext := strings.ToLower(strings.TrimSpace(part))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		return append([]string(nil), DefaultImageExts...)
	}
	return exts
}

// parseToggle interprets yes/no style flag values.
func parseToggle(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return def
	}
}
