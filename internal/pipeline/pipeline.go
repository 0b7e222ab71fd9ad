//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package pipeline sequences the Extract, Transform, and Load phases of a
// single batch run and records the outcome in the run-history table.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailworks/sales-etl/internal/db"
	"github.com/retailworks/sales-etl/internal/extract"
	"github.com/retailworks/sales-etl/internal/logging"
	"github.com/retailworks/sales-etl/internal/transform"
	"github.com/retailworks/sales-etl/internal/warehouse"
)

// Options configures one pipeline run.
type Options struct {
	// InputPath is the source CSV.
	InputPath string

	// BackupDir receives the raw and transformed audit copies. Empty
	// disables the copies.
	BackupDir string
}

// Summary is the result of a successful run.
type Summary struct {
	RunID         uuid.UUID
	Extract       extract.Summary
	Removed       int // exact-duplicate rows dropped
	Staged        int
	Report        *transform.Report
	Counts        warehouse.Counts
	ExtractTime   time.Duration
	TransformTime time.Duration
	LoadTime      time.Duration
	TotalTime     time.Duration
}

// Run executes the full pipeline against the warehouse. The three phases
// run strictly in sequence; the first failure aborts the run. Whatever the
// outcome, a run-history record is written when the warehouse is
// reachable.
func Run(ctx context.Context, pool *pgxpool.Pool, opts Options) (*Summary, error) {
	runID := uuid.New()
	started := time.Now()

	logging.Info().
		Str("run_id", runID.String()).
		Str("input", opts.InputPath).
		Msg("Pipeline started")

	summary := &Summary{RunID: runID}

	phase := time.Now()
	raw, err := extract.Extract(opts.InputPath, opts.BackupDir)
	if err != nil {
		recordRun(ctx, pool, runID, opts.InputPath, started, summary, err)
		return nil, err
	}
	summary.Extract = extract.Summarize(raw)
	summary.ExtractTime = time.Since(phase)

	phase = time.Now()
	records, report, err := transform.Transform(raw)
	summary.Report = report
	if err != nil {
		recordRun(ctx, pool, runID, opts.InputPath, started, summary, err)
		return nil, err
	}
	summary.Staged = len(records)
	summary.Removed = summary.Extract.TotalRows - len(records)
	summary.TransformTime = time.Since(phase)

	if opts.BackupDir != "" {
		if err := transform.WriteAudit(opts.BackupDir, records); err != nil {
			recordRun(ctx, pool, runID, opts.InputPath, started, summary, err)
			return nil, err
		}
	}

	phase = time.Now()
	counts, err := warehouse.NewLoader(pool).Run(ctx, records)
	summary.Counts = counts
	if err != nil {
		recordRun(ctx, pool, runID, opts.InputPath, started, summary, err)
		return nil, err
	}
	summary.LoadTime = time.Since(phase)
	summary.TotalTime = time.Since(started)

	recordRun(ctx, pool, runID, opts.InputPath, started, summary, nil)

	logging.Info().
		Str("run_id", runID.String()).
		Int("fact_rows", counts["fact_sales"]).
		Dur("total", summary.TotalTime).
		Msg("Pipeline completed")

	return summary, nil
}

// recordRun writes the run-history row. History failures are logged, not
// fatal: they must never mask the pipeline outcome.
func recordRun(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID, input string, started time.Time, s *Summary, runErr error) {
	rec := db.RunRecord{
		RunID:      runID,
		SourceFile: input,
		StartedAt:  started,
		FinishedAt: time.Now(),
		RawRows:    s.Extract.TotalRows,
		StagedRows: s.Staged,
		Status:     db.RunSucceeded,
	}
	if s.Counts != nil {
		rec.FactRows = s.Counts["fact_sales"]
	}
	if runErr != nil {
		rec.Status = db.RunFailed
		rec.Error = runErr.Error()
	}

	if err := db.SaveRun(ctx, pool, rec); err != nil {
		logging.Error().Err(err).Msg("Failed to record run history")
	}
}
