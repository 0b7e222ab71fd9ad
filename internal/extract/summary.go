//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package extract

import (
	"strconv"
	"strings"

	"github.com/retailworks/sales-etl/internal/sales"
)

// Summary holds key metrics about an extracted table, used for the run
// report and for sanity checks after extraction.
type Summary struct {
	TotalRows       int
	TotalColumns    int
	NullValues      int
	DuplicateRows   int
	UniqueOrders    int
	UniqueCustomers int
	UniqueProducts  int
	TotalSales      float64
	TotalProfit     float64
}

// Summarize computes extraction metrics over a raw table.
func Summarize(table *sales.RawTable) Summary {
	idx := table.ColumnIndex()
	orderCol := idx["Order ID"]
	custCol := idx["Customer ID"]
	prodCol := idx["Product ID"]
	salesCol := idx["Sales"]
	profitCol := idx["Profit"]

	s := Summary{
		TotalRows:    len(table.Rows),
		TotalColumns: len(table.Header),
	}

	orders := make(map[string]struct{})
	customers := make(map[string]struct{})
	products := make(map[string]struct{})
	seen := make(map[string]struct{}, len(table.Rows))

	for _, row := range table.Rows {
		for _, v := range row {
			if strings.TrimSpace(v) == "" {
				s.NullValues++
			}
		}

		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			s.DuplicateRows++
		}
		seen[key] = struct{}{}

		orders[field(row, orderCol)] = struct{}{}
		customers[field(row, custCol)] = struct{}{}
		products[field(row, prodCol)] = struct{}{}

		if v, err := strconv.ParseFloat(field(row, salesCol), 64); err == nil {
			s.TotalSales += v
		}
		if v, err := strconv.ParseFloat(field(row, profitCol), 64); err == nil {
			s.TotalProfit += v
		}
	}

	s.UniqueOrders = len(orders)
	s.UniqueCustomers = len(customers)
	s.UniqueProducts = len(products)
	return s
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
