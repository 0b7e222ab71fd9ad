//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package transform

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/retailworks/sales-etl/internal/logging"
	"github.com/retailworks/sales-etl/internal/sales"
)

// AuditFileName is the name of the cleaned-table audit copy.
const AuditFileName = "transformed_sales.csv"

var auditHeader = []string{
	sales.ColOrderID, sales.ColOrderDate, sales.ColShipDate, sales.ColShipMode,
	sales.ColCustomerID, sales.ColCustomerName, sales.ColSegment,
	sales.ColCountry, sales.ColCity, sales.ColState, sales.ColPostalCode, sales.ColRegion,
	sales.ColProductID, sales.ColCategory, sales.ColSubCategory, sales.ColProductName,
	sales.ColSales, sales.ColQuantity, sales.ColDiscount, sales.ColProfit,
	"profit_margin", "delivery_days",
	"order_year", "order_month", "order_quarter",
	"order_month_name", "order_day_name", "order_week", "is_weekend",
}

// WriteAudit writes the cleaned table to dir as a write-once CSV artifact
// mirroring what was staged into the warehouse.
func WriteAudit(dir string, records []sales.Record) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}
	path := filepath.Join(dir, AuditFileName)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create audit copy: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(auditHeader); err != nil {
		return err
	}

	for i := range records {
		r := &records[i]
		margin := ""
		if r.ProfitMargin != nil {
			margin = strconv.FormatFloat(*r.ProfitMargin, 'f', 4, 64)
		}
		weekend := "0"
		if r.Weekend {
			weekend = "1"
		}
		row := []string{
			r.OrderID, r.OrderDate.Format(dateFormat), r.ShipDate.Format(dateFormat), r.ShipMode,
			r.CustomerID, r.CustomerName, r.Segment,
			r.Country, r.City, r.State, r.PostalCode, r.Region,
			r.ProductID, r.Category, r.SubCategory, r.ProductName,
			strconv.FormatFloat(r.Sales, 'f', -1, 64),
			strconv.Itoa(r.Quantity),
			strconv.FormatFloat(r.Discount, 'f', -1, 64),
			strconv.FormatFloat(r.Profit, 'f', -1, 64),
			margin,
			strconv.Itoa(r.DeliveryDays),
			strconv.Itoa(r.OrderYear), strconv.Itoa(r.OrderMonth), strconv.Itoa(r.OrderQuarter),
			r.OrderMonthName, r.OrderDayName, strconv.Itoa(r.OrderWeek), weekend,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write audit copy: %w", err)
	}

	logging.Info().Str("path", path).Int("rows", len(records)).Msg("Transformed audit copy saved")
	return nil
}
