//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"sort"
	"time"

	"github.com/retailworks/sales-etl/internal/sales"
)

// DateRow is one dim_date row. Its surrogate key is the YYYYMMDD form of
// the date itself, which keeps date keys stable across runs.
type DateRow struct {
	Key        int
	Date       time.Time
	Year       int
	Quarter    int
	Month      int
	MonthName  string
	Day        int
	DayOfWeek  int
	DayName    string
	WeekOfYear int
	Weekend    bool
}

// CustomerRow is one dim_customer row.
type CustomerRow struct {
	Key        int
	CustomerID string
	Name       string
	Segment    string
	Country    string
	City       string
	State      string
	PostalCode string
	Region     string
	FirstOrder time.Time
	LastOrder  time.Time
}

// ProductRow is one dim_product row.
type ProductRow struct {
	Key         int
	ProductID   string
	Name        string
	Category    string
	SubCategory string
}

// ShippingRow is one dim_shipping row.
type ShippingRow struct {
	Key      int
	ShipMode string
}

// buildDateDim projects the distinct order and ship dates onto dim_date
// rows, sorted ascending. The returned set records which date keys exist.
func buildDateDim(records []sales.Record) ([]DateRow, map[int]struct{}) {
	distinct := make(map[int]time.Time)
	for i := range records {
		r := &records[i]
		distinct[sales.DateKey(r.OrderDate)] = r.OrderDate
		distinct[sales.DateKey(r.ShipDate)] = r.ShipDate
	}

	keys := make([]int, 0, len(distinct))
	for k := range distinct {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	rows := make([]DateRow, 0, len(keys))
	exists := make(map[int]struct{}, len(keys))
	for _, k := range keys {
		d := distinct[k]
		_, week := d.ISOWeek()
		wd := d.Weekday()
		rows = append(rows, DateRow{
			Key:        k,
			Date:       d,
			Year:       d.Year(),
			Quarter:    (int(d.Month())-1)/3 + 1,
			Month:      int(d.Month()),
			MonthName:  d.Month().String(),
			Day:        d.Day(),
			DayOfWeek:  int(wd),
			DayName:    wd.String(),
			WeekOfYear: week,
			Weekend:    wd == time.Saturday || wd == time.Sunday,
		})
		exists[k] = struct{}{}
	}
	return rows, exists
}

// buildCustomerDim projects the records onto distinct customers in
// first-seen order, assigning surrogate keys 1..N. Attributes come from
// the first occurrence; first/last order dates aggregate over all rows.
// The returned map resolves customer_id to its surrogate key.
func buildCustomerDim(records []sales.Record) ([]CustomerRow, map[string]int) {
	rows := make([]CustomerRow, 0)
	keys := make(map[string]int)

	for i := range records {
		r := &records[i]
		if k, seen := keys[r.CustomerID]; seen {
			row := &rows[k-1]
			if r.OrderDate.Before(row.FirstOrder) {
				row.FirstOrder = r.OrderDate
			}
			if r.OrderDate.After(row.LastOrder) {
				row.LastOrder = r.OrderDate
			}
			continue
		}
		key := len(rows) + 1
		keys[r.CustomerID] = key
		rows = append(rows, CustomerRow{
			Key:        key,
			CustomerID: r.CustomerID,
			Name:       r.CustomerName,
			Segment:    r.Segment,
			Country:    r.Country,
			City:       r.City,
			State:      r.State,
			PostalCode: r.PostalCode,
			Region:     r.Region,
			FirstOrder: r.OrderDate,
			LastOrder:  r.OrderDate,
		})
	}
	return rows, keys
}

// buildProductDim projects the records onto distinct products in
// first-seen order with surrogate keys 1..N.
func buildProductDim(records []sales.Record) ([]ProductRow, map[string]int) {
	rows := make([]ProductRow, 0)
	keys := make(map[string]int)

	for i := range records {
		r := &records[i]
		if _, seen := keys[r.ProductID]; seen {
			continue
		}
		key := len(rows) + 1
		keys[r.ProductID] = key
		rows = append(rows, ProductRow{
			Key:         key,
			ProductID:   r.ProductID,
			Name:        r.ProductName,
			Category:    r.Category,
			SubCategory: r.SubCategory,
		})
	}
	return rows, keys
}

// buildShippingDim projects the records onto distinct ship modes in
// first-seen order with surrogate keys 1..N.
func buildShippingDim(records []sales.Record) ([]ShippingRow, map[string]int) {
	rows := make([]ShippingRow, 0)
	keys := make(map[string]int)

	for i := range records {
		r := &records[i]
		if _, seen := keys[r.ShipMode]; seen {
			continue
		}
		key := len(rows) + 1
		keys[r.ShipMode] = key
		rows = append(rows, ShippingRow{Key: key, ShipMode: r.ShipMode})
	}
	return rows, keys
}
