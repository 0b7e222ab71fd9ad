//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package extract reads the raw sales CSV, validates its structure, and
// writes an immutable backup copy for auditing.
package extract

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/retailworks/sales-etl/internal/etlerr"
	"github.com/retailworks/sales-etl/internal/logging"
	"github.com/retailworks/sales-etl/internal/sales"
)

// BackupFileName is the name of the raw audit copy written next to the
// processed artifacts.
const BackupFileName = "raw_backup.csv"

// Extract reads the CSV at path into a RawTable. It fails with
// etlerr.NotFoundError when the file is absent and etlerr.SchemaError
// when any of the 20 required columns is missing. On success a verbatim
// copy of the source is written to backupDir for auditing; backupDir may
// be empty to skip the copy.
func Extract(path, backupDir string) (*sales.RawTable, error) {
	logging.Info().Str("path", path).Msg("Extract phase started")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &etlerr.NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}

	decoded, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode source file: %w", err)
	}

	table, err := parse(decoded)
	if err != nil {
		return nil, err
	}

	if missing := missingColumns(table.Header); len(missing) > 0 {
		return nil, &etlerr.SchemaError{Missing: missing}
	}

	logMetrics(table)

	if backupDir != "" {
		if err := writeBackup(backupDir, data); err != nil {
			return nil, err
		}
	}

	logging.Info().
		Int("rows", len(table.Rows)).
		Int("columns", len(table.Header)).
		Msg("Extract phase completed")

	return table, nil
}

func parse(data []byte) (*sales.RawTable, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("source file is empty: no header row")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read data rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("source file has no data rows")
	}

	return &sales.RawTable{Header: header, Rows: rows}, nil
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, col := range sales.RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// logMetrics reports row counts and per-column blank counts as an
// observable side effect of extraction.
func logMetrics(table *sales.RawTable) {
	nulls := make([]int, len(table.Header))
	for _, row := range table.Rows {
		for i := range row {
			if i < len(nulls) && strings.TrimSpace(row[i]) == "" {
				nulls[i]++
			}
		}
	}

	clean := true
	for i, n := range nulls {
		if n > 0 {
			clean = false
			logging.Warn().
				Str("column", table.Header[i]).
				Int("nulls", n).
				Msg("Null values found")
		}
	}
	if clean {
		logging.Info().Msg("No null values found in source")
	}
}

// writeBackup stores a verbatim copy of the source bytes. The copy is
// write-once per run; an existing copy from a prior run is replaced.
func writeBackup(dir string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	path := filepath.Join(dir, BackupFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write raw backup: %w", err)
	}
	logging.Info().Str("path", path).Msg("Raw backup saved")
	return nil
}
