//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package transform

import (
	"fmt"

	"github.com/retailworks/sales-etl/internal/etlerr"
	"github.com/retailworks/sales-etl/internal/logging"
	"github.com/retailworks/sales-etl/internal/sales"
)

// Severity classifies a data-quality rule. Hard violations abort the run;
// soft violations are logged and the rows retained.
type Severity int

const (
	Hard Severity = iota
	Soft
)

func (s Severity) String() string {
	if s == Hard {
		return "hard"
	}
	return "soft"
}

// Rule is a row-level data-quality check.
type Rule struct {
	Name     string
	Severity Severity
	Check    func(r *sales.Record) bool // true = row passes
}

// Rules is the ordered set of data-quality rules applied after derivation.
var Rules = []Rule{
	{"non_negative_sales", Hard, func(r *sales.Record) bool { return r.Sales >= 0 }},
	{"positive_quantity", Hard, func(r *sales.Record) bool { return r.Quantity > 0 }},
	{"discount_in_range", Hard, func(r *sales.Record) bool { return r.Discount >= 0 && r.Discount <= 1 }},
	{"ship_on_or_after_order", Hard, func(r *sales.Record) bool { return !r.ShipDate.Before(r.OrderDate) }},
	{"critical_fields_present", Hard, func(r *sales.Record) bool {
		return r.OrderID != "" && r.CustomerID != "" && r.ProductID != ""
	}},
	{"postal_code_present", Soft, func(r *sales.Record) bool { return r.PostalCode != "" }},
	{"nonzero_sales", Soft, func(r *sales.Record) bool { return r.Sales != 0 }},
}

// RuleResult holds the outcome of one rule over the whole table.
type RuleResult struct {
	Name       string
	Severity   Severity
	Passed     int
	Violations int
	FirstRow   int // 1-based row of the first violation, 0 when clean
}

// Report is the validation report for a transformed table.
type Report struct {
	Rows    int
	Results []RuleResult
}

// HardViolations returns the failed hard rules.
func (rep *Report) HardViolations() []RuleResult {
	var out []RuleResult
	for _, res := range rep.Results {
		if res.Severity == Hard && res.Violations > 0 {
			out = append(out, res)
		}
	}
	return out
}

// Validate applies every rule to every record. Hard violations fail the
// run with a ValidationError; soft violations are logged but rows are
// retained. The report is returned in both cases.
func Validate(records []sales.Record) (*Report, error) {
	rep := &Report{Rows: len(records)}

	for _, rule := range Rules {
		res := RuleResult{Name: rule.Name, Severity: rule.Severity}
		for i := range records {
			if rule.Check(&records[i]) {
				res.Passed++
				continue
			}
			res.Violations++
			if res.FirstRow == 0 {
				res.FirstRow = i + 1
			}
		}
		rep.Results = append(rep.Results, res)

		if res.Violations == 0 {
			continue
		}
		if rule.Severity == Hard {
			logging.Error().
				Str("rule", rule.Name).
				Int("violations", res.Violations).
				Int("first_row", res.FirstRow).
				Msg("Hard validation rule failed")
		} else {
			logging.Warn().
				Str("rule", rule.Name).
				Int("violations", res.Violations).
				Msg("Soft validation rule failed; rows retained")
		}
	}

	if hard := rep.HardViolations(); len(hard) > 0 {
		msgs := make([]string, len(hard))
		for i, res := range hard {
			msgs[i] = fmt.Sprintf("%s: %d rows (first at row %d)", res.Name, res.Violations, res.FirstRow)
		}
		return rep, &etlerr.ValidationError{Violations: msgs}
	}

	return rep, nil
}
