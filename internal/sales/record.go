//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package sales defines the table model shared by the pipeline stages: the
// raw CSV table produced by extraction and the typed, cleaned record
// produced by transformation.
package sales

import "time"

// RequiredColumns lists the 20 column headers the source CSV must carry,
// in their canonical source spelling.
var RequiredColumns = []string{
	"Order ID", "Order Date", "Ship Date",
	"Ship Mode", "Customer ID", "Customer Name",
	"Segment", "Country", "City", "State",
	"Postal Code", "Region", "Product ID",
	"Category", "Sub-Category", "Product Name",
	"Sales", "Quantity", "Discount", "Profit",
}

// Normalized column names, as produced by transform.NormalizeColumns.
const (
	ColOrderID      = "order_id"
	ColOrderDate    = "order_date"
	ColShipDate     = "ship_date"
	ColShipMode     = "ship_mode"
	ColCustomerID   = "customer_id"
	ColCustomerName = "customer_name"
	ColSegment      = "segment"
	ColCountry      = "country"
	ColCity         = "city"
	ColState        = "state"
	ColPostalCode   = "postal_code"
	ColRegion       = "region"
	ColProductID    = "product_id"
	ColCategory     = "category"
	ColSubCategory  = "sub_category"
	ColProductName  = "product_name"
	ColSales        = "sales"
	ColQuantity     = "quantity"
	ColDiscount     = "discount"
	ColProfit       = "profit"
)

// RawTable is the in-memory form of the source CSV: a header row plus one
// string slice per data row, column order matching the header.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns a map from header name to column position.
func (t *RawTable) ColumnIndex() map[string]int {
	idx := make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		idx[name] = i
	}
	return idx
}

// Record is one cleaned, typed sales row: the 20 source fields coerced to
// their proper types plus the derived analytics fields.
type Record struct {
	OrderID      string
	OrderDate    time.Time
	ShipDate     time.Time
	ShipMode     string
	CustomerID   string
	CustomerName string
	Segment      string
	Country      string
	City         string
	State        string
	PostalCode   string
	Region       string
	ProductID    string
	Category     string
	SubCategory  string
	ProductName  string
	Sales        float64
	Quantity     int
	Discount     float64
	Profit       float64

	// Derived fields.
	ProfitMargin   *float64 // profit / sales, nil when sales == 0
	DeliveryDays   int
	OrderYear      int
	OrderMonth     int
	OrderQuarter   int
	OrderMonthName string
	OrderDayName   string
	OrderWeek      int // ISO week number
	Weekend        bool
}

// DateKey returns the integer warehouse key for a calendar date, in
// YYYYMMDD form (e.g. 2019-01-03 -> 20190103).
func DateKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
