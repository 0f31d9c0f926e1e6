package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/aaronvstory/photochop-progress-analyzer/internal/contract"
	"github.com/aaronvstory/photochop-progress-analyzer/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "photochop",
	Short:              "Track and forecast batch photo processing progress.",
	Long:               `Photochop watches a working directory of per-user folders and reports how far along a processing batch is, how fast it is moving, and when it will finish.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".photochop") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("PHOTOCHOP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("interval", "30s")
	viper.SetDefault("rate-window", "10m")
	viper.SetDefault("rate-window-count", 0)
	viper.SetDefault("trend-threshold", contract.DefaultTrendThresholdPct)
	viper.SetDefault("stagnation-threshold", "3m")
	viper.SetDefault("history-limit", contract.DefaultHistoryLimit)
	viper.SetDefault("marker-prefix", contract.DefaultMarkerPrefix)
	viper.SetDefault("history-backend", schema.JSONLBackend)
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("emoji", "no")
	viper.SetDefault("color", "yes")
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// sharedSetup unmarshals config and runs validation. checkPath controls
// whether the base path must exist; history-only commands skip the check.
func sharedSetup(args []string, checkPath bool) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.BasePathStr = args[0]
	} else {
		input.BasePathStr = "."
	}

	// 4. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	return contract.ProcessAndValidate(cfg, input, checkPath)
}

// sharedSetupWrapper wraps sharedSetup to provide PreRunE for scan-style commands.
func sharedSetupWrapper(_ *cobra.Command, args []string) error {
	return sharedSetup(args, true)
}

// historySetupWrapper is the PreRunE for commands that only touch the
// persisted history and never scan the base path.
func historySetupWrapper(_ *cobra.Command, args []string) error {
	return sharedSetup(args, false)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
