package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailworks/sales-etl/internal/etlerr"
)

func buildTestKeys(t *testing.T) dimensionKeys {
	t.Helper()
	records := testRecords()
	_, dates := buildDateDim(records)
	_, customers := buildCustomerDim(records)
	_, products := buildProductDim(records)
	_, shipping := buildShippingDim(records)
	return dimensionKeys{
		dates:     dates,
		customers: customers,
		products:  products,
		shipping:  shipping,
	}
}

func TestBuildFactRows(t *testing.T) {
	records := testRecords()
	rows, err := buildFactRows(records, buildTestKeys(t))
	require.NoError(t, err)
	require.Len(t, rows, len(records), "one fact row per staged record")

	first := rows[0]
	assert.Equal(t, 1, first.Key)
	assert.Equal(t, "US-2019-100001", first.OrderID)
	assert.Equal(t, 20190310, first.OrderDateKey)
	assert.Equal(t, 20190314, first.ShipDateKey)
	assert.Equal(t, 1, first.CustomerKey)
	assert.Equal(t, 1, first.ProductKey)
	assert.Equal(t, 1, first.ShippingKey)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, 261.96, first.SalesAmount)
	assert.Equal(t, 0.2, first.Discount)
	assert.Equal(t, 41.91, first.Profit)

	second := rows[1]
	assert.Equal(t, 2, second.Key)
	assert.Equal(t, 2, second.CustomerKey)
	assert.Equal(t, 2, second.ProductKey)
	assert.Equal(t, 2, second.ShippingKey)

	// Repeat customer and product resolve to the same keys.
	third := rows[2]
	assert.Equal(t, 1, third.CustomerKey)
	assert.Equal(t, 1, third.ProductKey)
}

func TestBuildFactRowsMissingCustomer(t *testing.T) {
	keys := buildTestKeys(t)
	delete(keys.customers, "CU-0001")

	_, err := buildFactRows(testRecords(), keys)
	require.Error(t, err)

	var refErr *etlerr.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "dim_customer", refErr.Dimension)
	assert.Equal(t, "CU-0001", refErr.Key)
}

func TestBuildFactRowsMissingDate(t *testing.T) {
	keys := buildTestKeys(t)
	delete(keys.dates, 20190314)

	_, err := buildFactRows(testRecords(), keys)
	require.Error(t, err)

	var refErr *etlerr.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "dim_date", refErr.Dimension)
	assert.Equal(t, "20190314", refErr.Key)
}

func TestBuildFactRowsMissingShipMode(t *testing.T) {
	keys := buildTestKeys(t)
	delete(keys.shipping, "Second Class")

	_, err := buildFactRows(testRecords(), keys)
	require.Error(t, err)

	var refErr *etlerr.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "dim_shipping", refErr.Dimension)
}

func TestStageString(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{SchemaInit, "schema_init"},
		{Staging, "staging"},
		{DimensionLoad, "dimension_load"},
		{FactLoad, "fact_load"},
		{Verify, "verify"},
		{Done, "done"},
		{Failed, "failed"},
		{Stage(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.stage.String())
	}
}

func TestNewLoaderStartsAtSchemaInit(t *testing.T) {
	l := NewLoader(nil)
	assert.Equal(t, SchemaInit, l.Stage())
}
