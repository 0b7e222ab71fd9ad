//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package transform cleans the raw sales table: column-name normalization,
// exact-duplicate removal, type coercion, derived-column computation, and
// row-level data-quality validation. Every step is total over its input;
// there is no partial application.
package transform

import (
	"github.com/retailworks/sales-etl/internal/logging"
	"github.com/retailworks/sales-etl/internal/sales"
)

// Transform runs the cleaning steps in order over an extracted table and
// returns the typed records plus the validation report. The report is
// non-nil whenever validation ran, including when it failed.
func Transform(raw *sales.RawTable) ([]sales.Record, *Report, error) {
	logging.Info().Int("rows", len(raw.Rows)).Msg("Transform phase started")

	header, err := NormalizeColumns(raw.Header)
	if err != nil {
		return nil, nil, err
	}

	rows, removed := Deduplicate(raw.Rows)
	if removed > 0 {
		logging.Warn().Int("removed", removed).Msg("Removed exact-duplicate rows")
	} else {
		logging.Info().Msg("No duplicate rows found")
	}

	records, err := coerceRows(header, rows)
	if err != nil {
		return nil, nil, err
	}

	for i := range records {
		derive(&records[i])
	}

	report, err := Validate(records)
	if err != nil {
		return nil, report, err
	}

	logging.Info().
		Int("rows", len(records)).
		Msg("Transform phase completed")

	return records, report, nil
}
