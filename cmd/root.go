// =============================================================================
// Kunstlotteri Report Tool - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command the subcommands ('report', 'inspect', 'version') are
// attached to, and owns the global flags and configuration/logging setup.
//
// COBRA CLI STRUCTURE:
//   rootCmd (lotteri)
//   ├── reportCmd  (lotteri report)
//   ├── inspectCmd (lotteri inspect)
//   └── versionCmd (lotteri version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gavinconsulting/lotteri/internal/config"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lotteri",
	Short: "Kunstlotteri report tool - turn a Vipps report into raffle drawing lists",

	Long: `Kunstlotteri report tool reads a Vipps settlement export (.xlsx or .csv),
finds the raffle ticket purchases, aggregates them per artwork and buyer,
and produces copy-pasteable drawing lists plus review tables.

One invocation processes one report:
  - header row located automatically, metadata rows above it are skipped
  - ticket rows filtered by transaction type and the ticket phrase
  - payments summed per (artwork, buyer) before rounding, so split
    purchases count as one total
  - totals that do not divide evenly by the ticket price are flagged

Example Usage:
  lotteri report --file vipps.xlsx              # Full pipeline, default settings
  lotteri report --file vipps.xlsx --names first --top 5
  lotteri inspect --file vipps.xlsx             # Check the file without aggregating`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig loads the configuration for a command run. The default config
// path is allowed to be absent; an explicitly given --config that does not
// exist is an error.
func loadConfig() (*config.Config, error) {
	if cfgFile == "config.yaml" {
		return config.LoadOrDefault(cfgFile)
	}
	return config.Load(cfgFile)
}

// newLogger builds the diagnostic logger. --verbose forces debug level.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
