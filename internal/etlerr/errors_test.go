package etlerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{
			&NotFoundError{Path: "data/raw/sales_data.csv"},
			"source file not found: data/raw/sales_data.csv",
		},
		{
			&SchemaError{Missing: []string{"Profit"}},
			"missing required columns: [Profit]",
		},
		{
			&SchemaError{Collisions: []string{"order_id"}},
			"column name collisions after normalization: [order_id]",
		},
		{
			&TypeError{Row: 7, Column: "order_date", Value: "13/45/2019", Err: errors.New("bad month")},
			`row 7: cannot coerce order_date value "13/45/2019": bad month`,
		},
		{
			&ValidationError{Violations: []string{"positive_quantity: 3 rows (first at row 12)"}},
			"data validation failed: [positive_quantity: 3 rows (first at row 12)]",
		},
		{
			&IntegrityError{Dimension: "dim_customer", Key: "CU-0001"},
			`dim_customer: duplicate natural key "CU-0001"`,
		},
		{
			&ReferenceError{Dimension: "dim_product", Key: "PROD-404"},
			`fact load: no dim_product row for natural key "PROD-404"`,
		},
		{
			&VerificationError{Staged: 100, Fact: 98},
			"row count mismatch after load: staged 100, fact 98",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestTypeErrorUnwrap(t *testing.T) {
	cause := errors.New("parse failure")
	err := fmt.Errorf("transform: %w", &TypeError{Row: 1, Column: "sales", Err: cause})

	var typeErr *TypeError
	assert.True(t, errors.As(err, &typeErr))
	assert.True(t, errors.Is(err, cause))
}
