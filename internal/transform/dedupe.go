//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package transform

import "strings"

// Deduplicate collapses rows that are identical across all fields,
// preserving first-seen order. It returns the surviving rows and the
// number of rows removed. Running it over already-deduplicated rows is a
// no-op.
func Deduplicate(rows [][]string) ([][]string, int) {
	seen := make(map[string]struct{}, len(rows))
	out := make([][]string, 0, len(rows))

	for _, row := range rows {
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}

	return out, len(rows) - len(out)
}
