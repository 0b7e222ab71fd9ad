package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/retailworks/sales-etl/internal/db"
	"github.com/retailworks/sales-etl/internal/logging"
	"github.com/retailworks/sales-etl/internal/reports"
)

var (
	reportFormat string
	reportTop    int
	exportPath   string
)

var reportCmd = &cobra.Command{
	Use:   "report [name]",
	Short: "Run analytical reports against the warehouse",
	Long: `Run a named analytical report against the star schema and print the
result. With no name, all reports are run in sequence. Use 'report list'
to see what is available.

Example:
  sales-etl report regional_performance
  sales-etl report top_products --top 25 --format csv
  sales-etl report --format md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available reports",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available reports:")
		cmd.Println()
		for _, rep := range reports.All() {
			cmd.Printf("  %-22s %s\n", rep.Name, rep.Description)
		}
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a flattened dashboard dataset as CSV",
	Long: `Export a single flat CSV joining the fact table with every dimension,
suitable for loading into BI dashboard tools.`,
	RunE: runExport,
}

func init() {
	reportCmd.AddCommand(reportListCmd)

	reportCmd.Flags().StringVar(&reportFormat, "format", "",
		"output format: table, csv, json, md")
	reportCmd.Flags().IntVar(&reportTop, "top", 0,
		"row limit for top-N reports")

	exportCmd.Flags().StringVar(&exportPath, "output", "",
		"destination CSV path")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportFormat != "" {
		cfg.Report.Format = reportFormat
	}
	if reportTop > 0 {
		cfg.Report.Top = reportTop
	}

	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	var selected []reports.Report
	if len(args) == 1 {
		rep, err := reports.Get(args[0])
		if err != nil {
			return err
		}
		selected = []reports.Report{rep}
	} else {
		selected = reports.All()
	}

	out := cmd.OutOrStdout()
	for _, rep := range selected {
		rs, err := reports.Execute(ctx, pool, rep, cfg.Report.Top)
		if err != nil {
			return fmt.Errorf("report %s: %w", rep.Name, err)
		}
		if len(selected) > 1 {
			fmt.Fprintf(out, "\n== %s: %s\n\n", rep.Name, rep.Description)
		}
		if err := reports.Render(out, rs, cfg.Report.Format); err != nil {
			return fmt.Errorf("report %s: %w", rep.Name, err)
		}
	}

	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportPath != "" {
		cfg.Report.ExportPath = exportPath
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Report.ExportPath == "" {
		return fmt.Errorf("export path is required")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := os.MkdirAll(filepath.Dir(cfg.Report.ExportPath), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	rows, err := reports.Export(ctx, pool, cfg.Report.ExportPath)
	if err != nil {
		return err
	}

	logging.Info().
		Str("path", cfg.Report.ExportPath).
		Int("rows", rows).
		Msg("Dashboard export written")
	return nil
}
