//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for sales-etl.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for sales-etl.
type Config struct {
	// Connection is the PostgreSQL connection string for the warehouse.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogFile is an optional file that receives a copy of the log stream.
	LogFile string `mapstructure:"log_file"`

	// Run holds configuration for the run subcommand.
	Run RunConfig `mapstructure:"run"`

	// Report holds configuration for the report subcommand.
	Report ReportConfig `mapstructure:"report"`

	// Sample holds configuration for the sample subcommand.
	Sample SampleConfig `mapstructure:"sample"`
}

// RunConfig holds configuration for a pipeline run.
type RunConfig struct {
	// Input is the path to the source sales CSV.
	Input string `mapstructure:"input"`

	// BackupDir receives the raw backup and transformed audit copies.
	// Empty disables both.
	BackupDir string `mapstructure:"backup_dir"`
}

// ReportConfig holds configuration for warehouse reports.
type ReportConfig struct {
	// Format is the output format: table, csv, json, or md.
	Format string `mapstructure:"format"`

	// Top is the row limit for reports that take one.
	Top int `mapstructure:"top"`

	// ExportPath is where the flattened dashboard CSV is written.
	ExportPath string `mapstructure:"export_path"`
}

// SampleConfig holds configuration for sample data generation.
type SampleConfig struct {
	// Rows is the number of distinct rows to generate.
	Rows int `mapstructure:"rows"`

	// Duplicates is the number of exact duplicate rows to append.
	Duplicates int `mapstructure:"duplicates"`

	// Seed makes generation reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`

	// Output is the destination CSV path.
	Output string `mapstructure:"output"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Run: RunConfig{
			BackupDir: "data/processed",
		},
		Report: ReportConfig{
			Format:     "table",
			Top:        10,
			ExportPath: "data/export/sales_dashboard_data.csv",
		},
		Sample: SampleConfig{
			Rows:       1000,
			Duplicates: 1,
			Output:     "data/raw/sales_data.csv",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./sales-etl.yaml
// 3. ~/.config/sales-etl/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("sales-etl")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "sales-etl"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Run.Input == "" {
		return fmt.Errorf("input path is required for run")
	}
	return nil
}

// ValidateReport checks configuration required for the report command.
func (c *Config) ValidateReport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch c.Report.Format {
	case "table", "csv", "json", "md", "markdown":
	default:
		return fmt.Errorf("format must be one of: table, csv, json, md")
	}
	if c.Report.Top < 1 {
		return fmt.Errorf("top must be at least 1")
	}
	return nil
}

// ValidateSample checks configuration required for the sample command.
func (c *Config) ValidateSample() error {
	if c.Sample.Rows < 1 {
		return fmt.Errorf("rows must be at least 1")
	}
	if c.Sample.Duplicates < 0 {
		return fmt.Errorf("duplicates must be non-negative")
	}
	if c.Sample.Output == "" {
		return fmt.Errorf("output path is required for sample")
	}
	return nil
}
