//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retailworks/sales-etl/internal/logging"
	"github.com/retailworks/sales-etl/internal/warehouse"
)

// exportSQL flattens the star schema into one denormalized row per fact
// for dashboard tools.
const exportSQL = `
SELECT f.order_id,
       f.sales_amount,
       f.profit,
       f.quantity,
       f.discount,
       d.full_date,
       d.year        AS order_year,
       d.month       AS order_month,
       d.month_name  AS order_month_name,
       d.quarter     AS order_quarter,
       d.day_name    AS order_day_name,
       d.is_weekend,
       c.customer_id,
       c.customer_name,
       c.segment,
       c.city,
       c.state,
       c.region,
       c.country,
       p.product_id,
       p.product_name,
       p.category,
       p.sub_category,
       s.ship_mode
FROM fact_sales f
JOIN dim_date     d ON f.order_date_key = d.date_key
JOIN dim_customer c ON f.customer_key = c.customer_key
JOIN dim_product  p ON f.product_key  = p.product_key
JOIN dim_shipping s ON f.shipping_key = s.shipping_key`

// Export writes the flattened dashboard dataset to a CSV file at path.
func Export(ctx context.Context, dbc warehouse.DB, path string) (int, error) {
	rs, err := Execute(ctx, dbc, Report{Name: "dashboard_export", SQL: exportSQL}, 0)
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := renderCSV(f, rs); err != nil {
		return 0, fmt.Errorf("failed to write export: %w", err)
	}

	logging.Info().
		Str("path", path).
		Int("rows", len(rs.Rows)).
		Msg("Dashboard export complete")

	return len(rs.Rows), nil
}
