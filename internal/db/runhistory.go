//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailworks/sales-etl/internal/logging"
)

// Run statuses recorded in etl_run_history.
const (
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
)

// createRunHistorySQL creates the run-history table if it doesn't exist.
// Unlike the warehouse tables this survives full refreshes: it is the
// audit trail across runs.
const createRunHistorySQL = `
CREATE TABLE IF NOT EXISTS etl_run_history (
    run_id       UUID PRIMARY KEY,
    source_file  TEXT NOT NULL,
    started_at   TIMESTAMPTZ NOT NULL,
    finished_at  TIMESTAMPTZ NOT NULL,
    raw_rows     INTEGER NOT NULL,
    staged_rows  INTEGER NOT NULL,
    fact_rows    INTEGER NOT NULL,
    status       TEXT NOT NULL,
    error        TEXT
)`

// RunRecord describes one pipeline run for the history table.
type RunRecord struct {
	RunID      uuid.UUID
	SourceFile string
	StartedAt  time.Time
	FinishedAt time.Time
	RawRows    int
	StagedRows int
	FactRows   int
	Status     string
	Error      string
}

// SaveRun appends a run record to etl_run_history.
func SaveRun(ctx context.Context, pool *pgxpool.Pool, rec RunRecord) error {
	if _, err := pool.Exec(ctx, createRunHistorySQL); err != nil {
		return fmt.Errorf("failed to create run history table: %w", err)
	}

	var errText any
	if rec.Error != "" {
		errText = rec.Error
	}

	_, err := pool.Exec(ctx, `
        INSERT INTO etl_run_history
            (run_id, source_file, started_at, finished_at,
             raw_rows, staged_rows, fact_rows, status, error)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, rec.RunID, rec.SourceFile, rec.StartedAt, rec.FinishedAt,
		rec.RawRows, rec.StagedRows, rec.FactRows, rec.Status, errText)
	if err != nil {
		return fmt.Errorf("failed to save run history: %w", err)
	}

	logging.Debug().
		Str("run_id", rec.RunID.String()).
		Str("status", rec.Status).
		Msg("Saved run history")

	return nil
}
