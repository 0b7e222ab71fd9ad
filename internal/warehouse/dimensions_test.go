package warehouse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailworks/sales-etl/internal/sales"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRecords() []sales.Record {
	return []sales.Record{
		{
			OrderID:      "US-2019-100001",
			OrderDate:    date(2019, 3, 10),
			ShipDate:     date(2019, 3, 14),
			ShipMode:     "Standard Class",
			CustomerID:   "CU-0002",
			CustomerName: "Bo Lindqvist",
			Segment:      "Consumer",
			Country:      "United States",
			City:         "Seattle",
			State:        "Washington",
			PostalCode:   "98101",
			Region:       "West",
			ProductID:    "TEC-PH-0001",
			Category:     "Technology",
			SubCategory:  "Phones",
			ProductName:  "Cordless Handset",
			Sales:        261.96,
			Quantity:     2,
			Discount:     0.2,
			Profit:       41.91,
		},
		{
			OrderID:      "US-2019-100002",
			OrderDate:    date(2019, 1, 5),
			ShipDate:     date(2019, 1, 8),
			ShipMode:     "Second Class",
			CustomerID:   "CU-0001",
			CustomerName: "Alice Eriksen",
			Segment:      "Corporate",
			Country:      "United States",
			City:         "Austin",
			State:        "Texas",
			PostalCode:   "78701",
			Region:       "Central",
			ProductID:    "OFF-PA-0001",
			Category:     "Office Supplies",
			SubCategory:  "Paper",
			ProductName:  "Multipurpose Paper",
			Sales:        18.5,
			Quantity:     3,
			Discount:     0,
			Profit:       8.2,
		},
		{
			// Second order by CU-0002, earlier than the first.
			OrderID:      "US-2019-100003",
			OrderDate:    date(2019, 2, 1),
			ShipDate:     date(2019, 2, 3),
			ShipMode:     "Standard Class",
			CustomerID:   "CU-0002",
			CustomerName: "Bo Lindqvist",
			Segment:      "Consumer",
			Country:      "United States",
			City:         "Seattle",
			State:        "Washington",
			PostalCode:   "98101",
			Region:       "West",
			ProductID:    "TEC-PH-0001",
			Category:     "Technology",
			SubCategory:  "Phones",
			ProductName:  "Cordless Handset",
			Sales:        100,
			Quantity:     1,
			Discount:     0.1,
			Profit:       12,
		},
	}
}

func TestBuildDateDim(t *testing.T) {
	rows, exists := buildDateDim(testRecords())

	// 3 order dates + 3 ship dates, all distinct.
	require.Len(t, rows, 6)
	assert.Len(t, exists, 6)

	// Sorted ascending by key.
	for i := 1; i < len(rows); i++ {
		assert.Less(t, rows[i-1].Key, rows[i].Key)
	}

	first := rows[0]
	assert.Equal(t, 20190105, first.Key)
	assert.Equal(t, date(2019, 1, 5), first.Date)
	assert.Equal(t, 2019, first.Year)
	assert.Equal(t, 1, first.Quarter)
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, "January", first.MonthName)
	assert.Equal(t, 5, first.Day)
	assert.Equal(t, "Saturday", first.DayName)
	assert.True(t, first.Weekend)

	_, ok := exists[20190314]
	assert.True(t, ok, "ship dates are part of the dimension")
}

func TestBuildDateDimKeysStableAcrossRuns(t *testing.T) {
	// Date keys are derived from the date itself, so they do not depend
	// on input order.
	records := testRecords()
	_, first := buildDateDim(records)

	reversed := []sales.Record{records[2], records[1], records[0]}
	_, second := buildDateDim(reversed)

	assert.Equal(t, first, second)
}

func TestBuildCustomerDim(t *testing.T) {
	rows, keys := buildCustomerDim(testRecords())

	require.Len(t, rows, 2)
	assert.Equal(t, map[string]int{"CU-0002": 1, "CU-0001": 2}, keys)

	// First-seen customer gets key 1 and its attributes come from the
	// first occurrence.
	bo := rows[0]
	assert.Equal(t, 1, bo.Key)
	assert.Equal(t, "CU-0002", bo.CustomerID)
	assert.Equal(t, "Bo Lindqvist", bo.Name)
	assert.Equal(t, "Seattle", bo.City)

	// Order date aggregates span all of the customer's rows.
	assert.Equal(t, date(2019, 2, 1), bo.FirstOrder)
	assert.Equal(t, date(2019, 3, 10), bo.LastOrder)

	alice := rows[1]
	assert.Equal(t, 2, alice.Key)
	assert.Equal(t, date(2019, 1, 5), alice.FirstOrder)
	assert.Equal(t, date(2019, 1, 5), alice.LastOrder)
}

func TestBuildProductDim(t *testing.T) {
	rows, keys := buildProductDim(testRecords())

	require.Len(t, rows, 2)
	assert.Equal(t, map[string]int{"TEC-PH-0001": 1, "OFF-PA-0001": 2}, keys)

	assert.Equal(t, 1, rows[0].Key)
	assert.Equal(t, "TEC-PH-0001", rows[0].ProductID)
	assert.Equal(t, "Cordless Handset", rows[0].Name)
	assert.Equal(t, "Technology", rows[0].Category)
	assert.Equal(t, "Phones", rows[0].SubCategory)
}

func TestBuildShippingDim(t *testing.T) {
	rows, keys := buildShippingDim(testRecords())

	require.Len(t, rows, 2)
	assert.Equal(t, map[string]int{"Standard Class": 1, "Second Class": 2}, keys)
	assert.Equal(t, ShippingRow{Key: 1, ShipMode: "Standard Class"}, rows[0])
	assert.Equal(t, ShippingRow{Key: 2, ShipMode: "Second Class"}, rows[1])
}

func TestBuildDimensionsEmptyInput(t *testing.T) {
	dates, _ := buildDateDim(nil)
	customers, _ := buildCustomerDim(nil)
	products, _ := buildProductDim(nil)
	shipping, _ := buildShippingDim(nil)

	assert.Empty(t, dates)
	assert.Empty(t, customers)
	assert.Empty(t, products)
	assert.Empty(t, shipping)
}
