//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"

	"github.com/retailworks/sales-etl/internal/logging"
)

// Tables in drop order: fact first, then dimensions, then staging, so
// foreign keys never block a full refresh.
var dropStatements = []string{
	"DROP TABLE IF EXISTS fact_sales",
	"DROP TABLE IF EXISTS dim_date",
	"DROP TABLE IF EXISTS dim_customer",
	"DROP TABLE IF EXISTS dim_product",
	"DROP TABLE IF EXISTS dim_shipping",
	"DROP TABLE IF EXISTS staging_raw_sales",
}

// Surrogate keys are plain integers: the loader owns key assignment, so
// the columns carry no sequences.
var createStatements = []string{
	`CREATE TABLE staging_raw_sales (
    order_id        TEXT,
    order_date      DATE,
    ship_date       DATE,
    ship_mode       TEXT,
    customer_id     TEXT,
    customer_name   TEXT,
    segment         TEXT,
    country         TEXT,
    city            TEXT,
    state           TEXT,
    postal_code     TEXT,
    region          TEXT,
    product_id      TEXT,
    category        TEXT,
    sub_category    TEXT,
    product_name    TEXT,
    sales           DOUBLE PRECISION,
    quantity        INTEGER,
    discount        DOUBLE PRECISION,
    profit          DOUBLE PRECISION,
    load_timestamp  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE dim_date (
    date_key        INTEGER PRIMARY KEY,
    full_date       DATE NOT NULL,
    year            INTEGER NOT NULL,
    quarter         INTEGER NOT NULL,
    month           INTEGER NOT NULL,
    month_name      TEXT,
    day             INTEGER NOT NULL,
    day_of_week     INTEGER NOT NULL,
    day_name        TEXT,
    week_of_year    INTEGER,
    is_weekend      BOOLEAN
)`,
	`CREATE TABLE dim_customer (
    customer_key        INTEGER PRIMARY KEY,
    customer_id         TEXT UNIQUE NOT NULL,
    customer_name       TEXT,
    segment             TEXT,
    country             TEXT,
    city                TEXT,
    state               TEXT,
    postal_code         TEXT,
    region              TEXT,
    first_order_date    DATE,
    last_order_date     DATE
)`,
	`CREATE TABLE dim_product (
    product_key     INTEGER PRIMARY KEY,
    product_id      TEXT UNIQUE NOT NULL,
    product_name    TEXT,
    category        TEXT,
    sub_category    TEXT
)`,
	`CREATE TABLE dim_shipping (
    shipping_key    INTEGER PRIMARY KEY,
    ship_mode       TEXT UNIQUE NOT NULL
)`,
	`CREATE TABLE fact_sales (
    sales_key           INTEGER PRIMARY KEY,
    order_id            TEXT NOT NULL,
    order_date_key      INTEGER NOT NULL REFERENCES dim_date(date_key),
    ship_date_key       INTEGER NOT NULL REFERENCES dim_date(date_key),
    customer_key        INTEGER NOT NULL REFERENCES dim_customer(customer_key),
    product_key         INTEGER NOT NULL REFERENCES dim_product(product_key),
    shipping_key        INTEGER NOT NULL REFERENCES dim_shipping(shipping_key),
    quantity            INTEGER NOT NULL,
    sales_amount        DOUBLE PRECISION NOT NULL,
    discount            DOUBLE PRECISION,
    profit              DOUBLE PRECISION NOT NULL
)`,
}

var indexStatements = []string{
	"CREATE INDEX idx_fact_order_date  ON fact_sales(order_date_key)",
	"CREATE INDEX idx_fact_customer    ON fact_sales(customer_key)",
	"CREATE INDEX idx_fact_product     ON fact_sales(product_key)",
	"CREATE INDEX idx_fact_order_id    ON fact_sales(order_id)",
	"CREATE INDEX idx_customer_segment ON dim_customer(segment)",
	"CREATE INDEX idx_customer_region  ON dim_customer(region)",
	"CREATE INDEX idx_product_category ON dim_product(category)",
	"CREATE INDEX idx_product_subcat   ON dim_product(sub_category)",
	"CREATE INDEX idx_date_year_month  ON dim_date(year, month)",
}

// createSchema drops and recreates the whole star schema. Every run
// is a full refresh, so a retry after a failed run starts clean.
func createSchema(ctx context.Context, db DB) error {
	for _, stmt := range dropStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("drop failed: %w", err)
		}
	}
	for _, stmt := range createStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create failed: %w", err)
		}
	}
	for _, stmt := range indexStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("index failed: %w", err)
		}
	}

	logging.Info().
		Int("tables", len(createStatements)).
		Int("indexes", len(indexStatements)).
		Msg("Warehouse schema created")
	return nil
}
