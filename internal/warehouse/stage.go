//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package warehouse

// Stage identifies a step of the load state machine. A run advances
// SchemaInit -> Staging -> DimensionLoad -> FactLoad -> Verify -> Done;
// any failure transitions to Failed and aborts the remaining stages.
type Stage int

const (
	SchemaInit Stage = iota
	Staging
	DimensionLoad
	FactLoad
	Verify
	Done
	Failed
)

var stageNames = map[Stage]string{
	SchemaInit:    "schema_init",
	Staging:       "staging",
	DimensionLoad: "dimension_load",
	FactLoad:      "fact_load",
	Verify:        "verify",
	Done:          "done",
	Failed:        "failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}
