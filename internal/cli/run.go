package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/retailworks/sales-etl/internal/db"
	"github.com/retailworks/sales-etl/internal/logging"
	"github.com/retailworks/sales-etl/internal/pipeline"
)

// timeRounding keeps phase durations readable in the run summary.
const timeRounding = time.Millisecond

var (
	runInput     string
	runBackupDir string
	runNoBackup  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full ETL pipeline against the warehouse",
	Long: `Run the full pipeline: extract the source CSV, transform it (column
normalization, deduplication, type coercion, derived columns, validation),
and load it into the star schema. The warehouse is rebuilt from scratch on
every run and verified before the run is declared done.

Example:
  sales-etl run --input data/raw/sales_data.csv
  sales-etl run --input data/raw/sales_data.csv --backup-dir data/processed
  sales-etl run --input data/raw/sales_data.csv --no-backup`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "",
		"path to the source sales CSV")
	runCmd.Flags().StringVar(&runBackupDir, "backup-dir", "",
		"directory for the raw backup and transformed audit copies")
	runCmd.Flags().BoolVar(&runNoBackup, "no-backup", false,
		"disable the raw backup and transformed audit copies")
}

func runRun(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if runInput != "" {
		cfg.Run.Input = runInput
	}
	if runBackupDir != "" {
		cfg.Run.BackupDir = runBackupDir
	}
	if runNoBackup {
		cfg.Run.BackupDir = ""
	}

	// Validate configuration
	if err := cfg.ValidateRun(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	}()

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	summary, err := pipeline.Run(ctx, pool, pipeline.Options{
		InputPath: cfg.Run.Input,
		BackupDir: cfg.Run.BackupDir,
	})
	if err != nil {
		return err
	}

	printSummary(cmd, summary)
	return nil
}

func printSummary(cmd *cobra.Command, s *pipeline.Summary) {
	cmd.Println()
	cmd.Println("Pipeline run complete")
	cmd.Printf("  run id:           %s\n", s.RunID)
	cmd.Printf("  rows read:        %d\n", s.Extract.TotalRows)
	cmd.Printf("  duplicates:       %d\n", s.Removed)
	cmd.Printf("  rows staged:      %d\n", s.Staged)
	cmd.Println()
	cmd.Println("Warehouse row counts:")
	for _, table := range []string{
		"staging_raw_sales", "dim_date", "dim_customer",
		"dim_product", "dim_shipping", "fact_sales",
	} {
		cmd.Printf("  %-20s %d\n", table, s.Counts[table])
	}
	cmd.Println()
	cmd.Printf("  extract:    %s\n", s.ExtractTime.Round(timeRounding))
	cmd.Printf("  transform:  %s\n", s.TransformTime.Round(timeRounding))
	cmd.Printf("  load:       %s\n", s.LoadTime.Round(timeRounding))
	cmd.Printf("  total:      %s\n", s.TotalTime.Round(timeRounding))
}
