// =============================================================================
// Fraud Indicator Analyzer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (fraudscan)
//   ├── analyzeCmd  (fraudscan analyze FILE)
//   ├── processCmd  (fraudscan process)
//   ├── validateCmd (fraudscan validate)
//   └── versionCmd  (fraudscan version)
//
// CONFIGURATION:
//   The root command owns the global flags (--config, --verbose). Commands
//   call loadRuntime to get the configuration and a logger.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/config"
	"github.com/ginjaninja78/fraud-indicator-analyzer/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fraudscan",
	Short: "Fraud Indicator Analyzer - flag suspicious rows in ledger exports",
	Long: `fraudscan analyses transactional CSV and XLSX exports for common fraud
indicators and combines them into a risk score between 0 and 10.

Indicators:
  - DuplicateIds       repeated values in identifier columns
  - ManualEntries      blank or manual source values, "manual" anywhere
  - RoundNumbers       amounts that are exact multiples of 100
  - WeekendDates       dates falling on Saturday or Sunday
  - DuplicateInvoices  repeated invoice numbers

Example Usage:
  fraudscan analyze ledger.csv                  # Print a text report
  fraudscan analyze ledger.xlsx --format json   # JSON report on stdout
  fraudscan process                             # Analyse every file in input_dir
  fraudscan validate --config ./my.yaml         # Check configuration`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadRuntime loads the configuration and sets up logging.
//
// A missing config file is only tolerated at the default path; a path given
// explicitly with --config must exist.
//
// RETURNS:
//   - The validated configuration.
//   - The logger.
//   - A cleanup function that closes the log file.
//   - An error if either step fails.
func loadRuntime(cmd *cobra.Command) (*config.MainConfig, *logrus.Logger, func(), error) {
	allowMissing := !cmd.Flags().Changed("config")

	cfg, err := config.LoadMainConfig(cfgFile, allowMissing)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load main config: %w", err)
	}

	logger, closeLog, err := logging.Setup(cfg.LogLevel, cfg.LogFilePath(), verbose)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	cleanup := func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}

	logger.WithField("config", cfgFile).Debug("Configuration loaded")
	return cfg, logger, cleanup, nil
}
