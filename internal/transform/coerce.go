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
	"strconv"
	"strings"
	"time"

	"github.com/retailworks/sales-etl/internal/etlerr"
	"github.com/retailworks/sales-etl/internal/logging"
	"github.com/retailworks/sales-etl/internal/sales"
)

// dateFormat is the calendar date layout used by the source CSV.
const dateFormat = "2006-01-02"

// unknown is the placeholder for blank descriptive text fields. Postal
// code is deliberately excluded: a blank postal code is a soft validation
// finding, not a value to paper over.
const unknown = "Unknown"

type fieldIndex struct {
	orderID, orderDate, shipDate, shipMode        int
	customerID, customerName, segment             int
	country, city, state, postalCode, region      int
	productID, category, subCategory, productName int
	salesAmount, quantity, discount, profit       int
}

func indexFields(header []string) fieldIndex {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[name] = i
	}
	return fieldIndex{
		orderID:      pos[sales.ColOrderID],
		orderDate:    pos[sales.ColOrderDate],
		shipDate:     pos[sales.ColShipDate],
		shipMode:     pos[sales.ColShipMode],
		customerID:   pos[sales.ColCustomerID],
		customerName: pos[sales.ColCustomerName],
		segment:      pos[sales.ColSegment],
		country:      pos[sales.ColCountry],
		city:         pos[sales.ColCity],
		state:        pos[sales.ColState],
		postalCode:   pos[sales.ColPostalCode],
		region:       pos[sales.ColRegion],
		productID:    pos[sales.ColProductID],
		category:     pos[sales.ColCategory],
		subCategory:  pos[sales.ColSubCategory],
		productName:  pos[sales.ColProductName],
		salesAmount:  pos[sales.ColSales],
		quantity:     pos[sales.ColQuantity],
		discount:     pos[sales.ColDiscount],
		profit:       pos[sales.ColProfit],
	}
}

// coerceRows converts deduplicated string rows into typed records.
// Unparsable dates and numbers fail with a TypeError naming the offending
// row and column. Blank numeric fields coerce to zero (logged); blank
// descriptive text fields coerce to "Unknown".
func coerceRows(header []string, rows [][]string) ([]sales.Record, error) {
	idx := indexFields(header)
	records := make([]sales.Record, 0, len(rows))
	blankNumeric := 0

	for i, row := range rows {
		rowNum := i + 1

		get := func(col int) string {
			if col < 0 || col >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[col])
		}

		orderDate, err := parseDate(get(idx.orderDate))
		if err != nil {
			return nil, &etlerr.TypeError{Row: rowNum, Column: sales.ColOrderDate, Value: get(idx.orderDate), Err: err}
		}
		shipDate, err := parseDate(get(idx.shipDate))
		if err != nil {
			return nil, &etlerr.TypeError{Row: rowNum, Column: sales.ColShipDate, Value: get(idx.shipDate), Err: err}
		}

		amount, blank, err := parseFloat(get(idx.salesAmount))
		if err != nil {
			return nil, &etlerr.TypeError{Row: rowNum, Column: sales.ColSales, Value: get(idx.salesAmount), Err: err}
		}
		if blank {
			blankNumeric++
		}
		discount, blank, err := parseFloat(get(idx.discount))
		if err != nil {
			return nil, &etlerr.TypeError{Row: rowNum, Column: sales.ColDiscount, Value: get(idx.discount), Err: err}
		}
		if blank {
			blankNumeric++
		}
		profit, blank, err := parseFloat(get(idx.profit))
		if err != nil {
			return nil, &etlerr.TypeError{Row: rowNum, Column: sales.ColProfit, Value: get(idx.profit), Err: err}
		}
		if blank {
			blankNumeric++
		}
		quantity, blank, err := parseInt(get(idx.quantity))
		if err != nil {
			return nil, &etlerr.TypeError{Row: rowNum, Column: sales.ColQuantity, Value: get(idx.quantity), Err: err}
		}
		if blank {
			blankNumeric++
		}

		records = append(records, sales.Record{
			OrderID:      get(idx.orderID),
			OrderDate:    orderDate,
			ShipDate:     shipDate,
			ShipMode:     orUnknown(get(idx.shipMode)),
			CustomerID:   get(idx.customerID),
			CustomerName: orUnknown(get(idx.customerName)),
			Segment:      orUnknown(get(idx.segment)),
			Country:      orUnknown(get(idx.country)),
			City:         orUnknown(get(idx.city)),
			State:        orUnknown(get(idx.state)),
			PostalCode:   get(idx.postalCode),
			Region:       orUnknown(get(idx.region)),
			ProductID:    get(idx.productID),
			Category:     orUnknown(get(idx.category)),
			SubCategory:  orUnknown(get(idx.subCategory)),
			ProductName:  orUnknown(get(idx.productName)),
			Sales:        amount,
			Quantity:     quantity,
			Discount:     discount,
			Profit:       profit,
		})
	}

	if blankNumeric > 0 {
		logging.Warn().Int("fields", blankNumeric).Msg("Blank numeric fields coerced to zero")
	}

	return records, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	return time.Parse(dateFormat, s)
}

func parseFloat(s string) (v float64, blank bool, err error) {
	if s == "" {
		return 0, true, nil
	}
	v, err = strconv.ParseFloat(s, 64)
	return v, false, err
}

func parseInt(s string) (v int, blank bool, err error) {
	if s == "" {
		return 0, true, nil
	}
	v, err = strconv.Atoi(s)
	return v, false, err
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}
