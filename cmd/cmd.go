// Package cmd defines the command-line interface for photochop.
package cmd

import (
	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("interval", "30s", "Delay between monitor scan cycles (Go duration, e.g. 30s or 2m)")
	rootCmd.PersistentFlags().String("rate-window", "10m", "Duration of the sliding window used for rate calculation")
	rootCmd.PersistentFlags().Int("rate-window-count", 0, "Window by last N snapshots instead of duration (0 = use duration)")
	rootCmd.PersistentFlags().Float64("trend-threshold", contract.DefaultTrendThresholdPct, "Percent change below which the trend is reported as stable")
	rootCmd.PersistentFlags().String("stagnation-threshold", "3m", "Idle duration after which a stagnation alert fires")
	rootCmd.PersistentFlags().Int("history-limit", contract.DefaultHistoryLimit, "Maximum snapshots kept in the in-memory working set")
	rootCmd.PersistentFlags().String("marker-prefix", contract.DefaultMarkerPrefix, "Filename prefix that marks processed output images")
	rootCmd.PersistentFlags().String("image-exts", "", "Comma-separated image extensions to classify (default: jpg,jpeg,png,webp)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.JSONLBackend), "History backend: jsonl or sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-file", "", "Path to the JSONL history log (default: under the home directory)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of pending folders to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
