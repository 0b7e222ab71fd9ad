//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for sales-etl.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/retailworks/sales-etl/internal/config"
	"github.com/retailworks/sales-etl/internal/logging"
	"github.com/retailworks/sales-etl/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string
	logFile    string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "sales-etl",
		Short: "Batch ETL pipeline for a retail sales warehouse",
		Long: `sales-etl reads retail order data from CSV files, cleans and enriches
it, and loads it into a PostgreSQL star schema (one fact table, four
dimensions). Every run is a full refresh: the warehouse is rebuilt from
scratch and verified before the run is declared done.

The read side ships a set of canned analytical reports over the star
schema, plus a flat export suitable for BI dashboards.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./sales-etl.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"optional file that receives a copy of the log stream")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(sampleCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
		File:   cfg.LogFile,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
