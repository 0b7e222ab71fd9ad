//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package transform

import (
	"sort"
	"strings"

	"github.com/retailworks/sales-etl/internal/etlerr"
)

var nameReplacer = strings.NewReplacer(" ", "_", "-", "_", "/", "_")

// NormalizeColumns standardizes column names: lowercase, with spaces,
// hyphens, and slashes replaced by underscores. The mapping must be
// injective; a collision means two source columns would land on the same
// warehouse column and fails with a SchemaError.
func NormalizeColumns(header []string) ([]string, error) {
	normalized := make([]string, len(header))
	claimed := make(map[string]string, len(header))
	collisions := make(map[string]struct{})

	for i, name := range header {
		n := nameReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
		normalized[i] = n
		if _, taken := claimed[n]; taken {
			collisions[n] = struct{}{}
		}
		claimed[n] = name
	}

	if len(collisions) > 0 {
		names := make([]string, 0, len(collisions))
		for n := range collisions {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, &etlerr.SchemaError{Collisions: names}
	}

	return normalized, nil
}
