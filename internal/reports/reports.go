//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package reports holds the fixed set of read-only SQL aggregation reports
// over the warehouse. Reports are pure queries; they carry no pipeline
// logic.
package reports

import (
	"context"
	"fmt"

	"github.com/retailworks/sales-etl/internal/warehouse"
)

// Report is a named read-only aggregation query.
type Report struct {
	Name        string
	Description string
	SQL         string

	// TakesLimit marks reports parameterized by a top-N limit ($1).
	TakesLimit bool
}

var registry = []Report{
	{
		Name:        "regional_performance",
		Description: "Sales, profit, and margin by region",
		SQL: `
SELECT c.region,
       COUNT(*)                                    AS orders,
       ROUND(SUM(f.sales_amount)::numeric, 2)      AS total_sales,
       ROUND(SUM(f.profit)::numeric, 2)            AS total_profit,
       ROUND((SUM(f.profit) / NULLIF(SUM(f.sales_amount), 0))::numeric, 4) AS profit_margin
FROM fact_sales f
JOIN dim_customer c ON f.customer_key = c.customer_key
GROUP BY c.region
ORDER BY total_sales DESC`,
	},
	{
		Name:        "top_products",
		Description: "Top products by total sales",
		TakesLimit:  true,
		SQL: `
SELECT p.product_name,
       p.category,
       SUM(f.quantity)                             AS units,
       ROUND(SUM(f.sales_amount)::numeric, 2)      AS total_sales,
       ROUND(SUM(f.profit)::numeric, 2)            AS total_profit
FROM fact_sales f
JOIN dim_product p ON f.product_key = p.product_key
GROUP BY p.product_name, p.category
ORDER BY total_sales DESC
LIMIT $1`,
	},
	{
		Name:        "monthly_trend",
		Description: "Monthly sales and profit trend",
		SQL: `
SELECT d.year,
       d.month,
       d.month_name,
       COUNT(*)                                    AS orders,
       ROUND(SUM(f.sales_amount)::numeric, 2)      AS total_sales,
       ROUND(SUM(f.profit)::numeric, 2)            AS total_profit
FROM fact_sales f
JOIN dim_date d ON f.order_date_key = d.date_key
GROUP BY d.year, d.month, d.month_name
ORDER BY d.year, d.month`,
	},
	{
		Name:        "quarterly_trend",
		Description: "Quarterly sales and profit trend",
		SQL: `
SELECT d.year,
       d.quarter,
       COUNT(*)                                    AS orders,
       ROUND(SUM(f.sales_amount)::numeric, 2)      AS total_sales,
       ROUND(SUM(f.profit)::numeric, 2)            AS total_profit
FROM fact_sales f
JOIN dim_date d ON f.order_date_key = d.date_key
GROUP BY d.year, d.quarter
ORDER BY d.year, d.quarter`,
	},
	{
		Name:        "segment_analysis",
		Description: "Performance by customer segment",
		SQL: `
SELECT c.segment,
       COUNT(DISTINCT c.customer_key)              AS customers,
       COUNT(*)                                    AS orders,
       ROUND(SUM(f.sales_amount)::numeric, 2)      AS total_sales,
       ROUND(AVG(f.sales_amount)::numeric, 2)      AS avg_order_value,
       ROUND(SUM(f.profit)::numeric, 2)            AS total_profit
FROM fact_sales f
JOIN dim_customer c ON f.customer_key = c.customer_key
GROUP BY c.segment
ORDER BY total_sales DESC`,
	},
	{
		Name:        "discount_impact",
		Description: "Profitability by discount bucket",
		SQL: `
SELECT CASE
           WHEN f.discount = 0 THEN 'no discount'
           WHEN f.discount <= 0.2 THEN 'low (0-20%)'
           WHEN f.discount <= 0.4 THEN 'medium (20-40%)'
           ELSE 'high (40%+)'
       END                                         AS discount_bucket,
       COUNT(*)                                    AS orders,
       ROUND(SUM(f.sales_amount)::numeric, 2)      AS total_sales,
       ROUND(SUM(f.profit)::numeric, 2)            AS total_profit,
       ROUND(AVG(f.profit)::numeric, 2)            AS avg_profit
FROM fact_sales f
GROUP BY discount_bucket
ORDER BY MIN(f.discount)`,
	},
	{
		Name:        "category_performance",
		Description: "Sales and profit by category and sub-category",
		SQL: `
SELECT p.category,
       p.sub_category,
       SUM(f.quantity)                             AS units,
       ROUND(SUM(f.sales_amount)::numeric, 2)      AS total_sales,
       ROUND(SUM(f.profit)::numeric, 2)            AS total_profit
FROM fact_sales f
JOIN dim_product p ON f.product_key = p.product_key
GROUP BY p.category, p.sub_category
ORDER BY p.category, total_sales DESC`,
	},
	{
		Name:        "shipping_analysis",
		Description: "Order volume and delivery time by ship mode",
		SQL: `
SELECT s.ship_mode,
       COUNT(*)                                    AS orders,
       ROUND(AVG(sd.full_date - od.full_date), 1)  AS avg_delivery_days,
       ROUND(SUM(f.sales_amount)::numeric, 2)      AS total_sales
FROM fact_sales f
JOIN dim_shipping s ON f.shipping_key = s.shipping_key
JOIN dim_date od ON f.order_date_key = od.date_key
JOIN dim_date sd ON f.ship_date_key = sd.date_key
GROUP BY s.ship_mode
ORDER BY orders DESC`,
	},
	{
		Name:        "state_ranking",
		Description: "States ranked by total sales",
		SQL: `
SELECT c.state,
       c.region,
       COUNT(*)                                    AS orders,
       ROUND(SUM(f.sales_amount)::numeric, 2)      AS total_sales,
       ROUND(SUM(f.profit)::numeric, 2)            AS total_profit,
       RANK() OVER (ORDER BY SUM(f.sales_amount) DESC) AS sales_rank
FROM fact_sales f
JOIN dim_customer c ON f.customer_key = c.customer_key
GROUP BY c.state, c.region
ORDER BY sales_rank`,
	},
	{
		Name:        "row_counts",
		Description: "Row counts across all warehouse tables",
		SQL: `
SELECT 'staging_raw_sales' AS table_name, COUNT(*) AS rows FROM staging_raw_sales
UNION ALL SELECT 'dim_date', COUNT(*) FROM dim_date
UNION ALL SELECT 'dim_customer', COUNT(*) FROM dim_customer
UNION ALL SELECT 'dim_product', COUNT(*) FROM dim_product
UNION ALL SELECT 'dim_shipping', COUNT(*) FROM dim_shipping
UNION ALL SELECT 'fact_sales', COUNT(*) FROM fact_sales`,
	},
}

// Get retrieves a report by name.
func Get(name string) (Report, error) {
	for _, r := range registry {
		if r.Name == name {
			return r, nil
		}
	}
	return Report{}, fmt.Errorf("unknown report: %s", name)
}

// All returns every registered report in declaration order.
func All() []Report {
	out := make([]Report, len(registry))
	copy(out, registry)
	return out
}

// ResultSet is the materialized output of a report query.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Execute runs a report against the warehouse. The limit applies only to
// reports that take one.
func Execute(ctx context.Context, dbc warehouse.DB, rep Report, limit int) (*ResultSet, error) {
	var args []any
	if rep.TakesLimit {
		args = append(args, limit)
	}

	rows, err := dbc.Query(ctx, rep.SQL, args...)
	if err != nil {
		return nil, fmt.Errorf("report %s failed: %w", rep.Name, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	rs := &ResultSet{Columns: make([]string, len(fields))}
	for i, f := range fields {
		rs.Columns[i] = f.Name
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report %s failed: %w", rep.Name, err)
	}

	return rs, nil
}
