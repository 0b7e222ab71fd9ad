package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailworks/sales-etl/internal/etlerr"
	"github.com/retailworks/sales-etl/internal/sales"
)

func validRecord() sales.Record {
	return sales.Record{
		OrderID:    "US-2019-100001",
		OrderDate:  time.Date(2019, 3, 10, 0, 0, 0, 0, time.UTC),
		ShipDate:   time.Date(2019, 3, 14, 0, 0, 0, 0, time.UTC),
		CustomerID: "CU-0001",
		ProductID:  "TEC-PH-0001",
		PostalCode: "98101",
		Sales:      261.96,
		Quantity:   2,
		Discount:   0.2,
		Profit:     41.91,
	}
}

func TestValidateCleanTable(t *testing.T) {
	records := []sales.Record{validRecord(), validRecord()}

	rep, err := Validate(records)
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.Equal(t, 2, rep.Rows)
	assert.Len(t, rep.Results, len(Rules))
	for _, res := range rep.Results {
		assert.Zero(t, res.Violations, "rule %s", res.Name)
		assert.Equal(t, 2, res.Passed, "rule %s", res.Name)
	}
	assert.Empty(t, rep.HardViolations())
}

func TestValidateHardViolationFailsRun(t *testing.T) {
	bad := validRecord()
	bad.Sales = -10

	rep, err := Validate([]sales.Record{validRecord(), bad})
	require.Error(t, err)
	require.NotNil(t, rep, "report is returned even on failure")

	var valErr *etlerr.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Len(t, valErr.Violations, 1)
	assert.Contains(t, valErr.Violations[0], "non_negative_sales")

	hard := rep.HardViolations()
	require.Len(t, hard, 1)
	assert.Equal(t, "non_negative_sales", hard[0].Name)
	assert.Equal(t, 1, hard[0].Violations)
	assert.Equal(t, 2, hard[0].FirstRow)
}

func TestValidateSoftViolationPassesRun(t *testing.T) {
	r := validRecord()
	r.PostalCode = ""

	rep, err := Validate([]sales.Record{r})
	require.NoError(t, err)

	var postal *RuleResult
	for i := range rep.Results {
		if rep.Results[i].Name == "postal_code_present" {
			postal = &rep.Results[i]
		}
	}
	require.NotNil(t, postal)
	assert.Equal(t, Soft, postal.Severity)
	assert.Equal(t, 1, postal.Violations)
	assert.Equal(t, 1, postal.FirstRow)
	assert.Empty(t, rep.HardViolations())
}

func TestValidateHardRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sales.Record)
		rule   string
	}{
		{
			name:   "negative sales",
			mutate: func(r *sales.Record) { r.Sales = -0.01 },
			rule:   "non_negative_sales",
		},
		{
			name:   "zero quantity",
			mutate: func(r *sales.Record) { r.Quantity = 0 },
			rule:   "positive_quantity",
		},
		{
			name:   "negative quantity",
			mutate: func(r *sales.Record) { r.Quantity = -3 },
			rule:   "positive_quantity",
		},
		{
			name:   "discount above one",
			mutate: func(r *sales.Record) { r.Discount = 1.2 },
			rule:   "discount_in_range",
		},
		{
			name:   "negative discount",
			mutate: func(r *sales.Record) { r.Discount = -0.1 },
			rule:   "discount_in_range",
		},
		{
			name:   "ship before order",
			mutate: func(r *sales.Record) { r.ShipDate = r.OrderDate.AddDate(0, 0, -1) },
			rule:   "ship_on_or_after_order",
		},
		{
			name:   "missing order id",
			mutate: func(r *sales.Record) { r.OrderID = "" },
			rule:   "critical_fields_present",
		},
		{
			name:   "missing customer id",
			mutate: func(r *sales.Record) { r.CustomerID = "" },
			rule:   "critical_fields_present",
		},
		{
			name:   "missing product id",
			mutate: func(r *sales.Record) { r.ProductID = "" },
			rule:   "critical_fields_present",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)

			rep, err := Validate([]sales.Record{r})
			require.Error(t, err)

			hard := rep.HardViolations()
			require.Len(t, hard, 1)
			assert.Equal(t, tt.rule, hard[0].Name)
		})
	}
}

func TestValidateBoundaryValuesPass(t *testing.T) {
	r := validRecord()
	r.Sales = 0.01
	r.Quantity = 1
	r.Discount = 1 // full discount is in range
	r.ShipDate = r.OrderDate

	rep, err := Validate([]sales.Record{r})
	require.NoError(t, err)
	assert.Empty(t, rep.HardViolations())
}

func TestValidateZeroSalesIsSoftOnly(t *testing.T) {
	r := validRecord()
	r.Sales = 0

	rep, err := Validate([]sales.Record{r})
	require.NoError(t, err)

	for _, res := range rep.Results {
		if res.Name == "nonzero_sales" {
			assert.Equal(t, Soft, res.Severity)
			assert.Equal(t, 1, res.Violations)
		}
	}
}
