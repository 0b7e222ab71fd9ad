//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"strconv"

	"github.com/retailworks/sales-etl/internal/etlerr"
	"github.com/retailworks/sales-etl/internal/sales"
)

// FactRow is one fact_sales row: the measures of a cleaned record with
// every natural key replaced by its dimension surrogate key.
type FactRow struct {
	Key          int
	OrderID      string
	OrderDateKey int
	ShipDateKey  int
	CustomerKey  int
	ProductKey   int
	ShippingKey  int
	Quantity     int
	SalesAmount  float64
	Discount     float64
	Profit       float64
}

// dimensionKeys holds the natural-key lookups produced by dimension load.
type dimensionKeys struct {
	dates     map[int]struct{}
	customers map[string]int
	products  map[string]int
	shipping  map[string]int
}

// buildFactRows resolves every staged record against the dimension
// lookups. A lookup miss is a ReferenceError: it indicates a dimension
// load bug, not a data problem, since dimensions were built from the same
// records.
func buildFactRows(records []sales.Record, keys dimensionKeys) ([]FactRow, error) {
	rows := make([]FactRow, 0, len(records))

	for i := range records {
		r := &records[i]

		orderKey := sales.DateKey(r.OrderDate)
		if _, ok := keys.dates[orderKey]; !ok {
			return nil, &etlerr.ReferenceError{Dimension: "dim_date", Key: strconv.Itoa(orderKey)}
		}
		shipKey := sales.DateKey(r.ShipDate)
		if _, ok := keys.dates[shipKey]; !ok {
			return nil, &etlerr.ReferenceError{Dimension: "dim_date", Key: strconv.Itoa(shipKey)}
		}
		customerKey, ok := keys.customers[r.CustomerID]
		if !ok {
			return nil, &etlerr.ReferenceError{Dimension: "dim_customer", Key: r.CustomerID}
		}
		productKey, ok := keys.products[r.ProductID]
		if !ok {
			return nil, &etlerr.ReferenceError{Dimension: "dim_product", Key: r.ProductID}
		}
		shippingKey, ok := keys.shipping[r.ShipMode]
		if !ok {
			return nil, &etlerr.ReferenceError{Dimension: "dim_shipping", Key: r.ShipMode}
		}

		rows = append(rows, FactRow{
			Key:          i + 1,
			OrderID:      r.OrderID,
			OrderDateKey: orderKey,
			ShipDateKey:  shipKey,
			CustomerKey:  customerKey,
			ProductKey:   productKey,
			ShippingKey:  shippingKey,
			Quantity:     r.Quantity,
			SalesAmount:  r.Sales,
			Discount:     r.Discount,
			Profit:       r.Profit,
		})
	}

	return rows, nil
}
