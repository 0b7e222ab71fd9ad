//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package warehouse loads the cleaned sales table into a PostgreSQL star
// schema: staging, four dimensions with loader-assigned surrogate keys,
// and a fact table resolved against them.
package warehouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/retailworks/sales-etl/internal/etlerr"
	"github.com/retailworks/sales-etl/internal/logging"
	"github.com/retailworks/sales-etl/internal/sales"
)

// DB is the subset of pgx operations the loader needs. Both *pgxpool.Pool
// and *pgx.Conn satisfy it.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Counts holds post-load row counts per table.
type Counts map[string]int

// Loader runs the load state machine over one batch of cleaned records.
// It exclusively owns surrogate-key assignment; the pipeline assumes
// exclusive ownership of the target database for the duration of a run.
type Loader struct {
	db    DB
	stage Stage
}

// NewLoader creates a loader over the given database.
func NewLoader(db DB) *Loader {
	return &Loader{db: db, stage: SchemaInit}
}

// Stage returns the loader's current stage.
func (l *Loader) Stage() Stage {
	return l.stage
}

// Run executes SchemaInit, Staging, DimensionLoad, FactLoad, and Verify in
// order. The first failing stage aborts the rest and leaves the loader in
// the Failed stage; there is no partial-commit recovery beyond redoing the
// whole run from SchemaInit.
func (l *Loader) Run(ctx context.Context, records []sales.Record) (Counts, error) {
	logging.Info().Int("rows", len(records)).Msg("Load phase started")

	l.stage = SchemaInit
	if err := createSchema(ctx, l.db); err != nil {
		return nil, l.fail(err)
	}

	l.stage = Staging
	if err := l.loadStaging(ctx, records); err != nil {
		return nil, l.fail(err)
	}

	l.stage = DimensionLoad
	keys, err := l.loadDimensions(ctx, records)
	if err != nil {
		return nil, l.fail(err)
	}

	l.stage = FactLoad
	if err := l.loadFacts(ctx, records, keys); err != nil {
		return nil, l.fail(err)
	}

	l.stage = Verify
	counts, err := l.verify(ctx, len(records))
	if err != nil {
		return counts, l.fail(err)
	}

	l.stage = Done
	logging.Info().Msg("Load phase completed")
	return counts, nil
}

func (l *Loader) fail(err error) error {
	wrapped := fmt.Errorf("%s: %w", l.stage, err)
	l.stage = Failed
	return wrapped
}

var stagingColumns = []string{
	"order_id", "order_date", "ship_date", "ship_mode",
	"customer_id", "customer_name", "segment",
	"country", "city", "state", "postal_code", "region",
	"product_id", "category", "sub_category", "product_name",
	"sales", "quantity", "discount", "profit",
}

// loadStaging bulk-inserts the cleaned table verbatim into the staging
// area via COPY.
func (l *Loader) loadStaging(ctx context.Context, records []sales.Record) error {
	n, err := l.db.CopyFrom(ctx, pgx.Identifier{"staging_raw_sales"}, stagingColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := &records[i]
			return []any{
				r.OrderID, r.OrderDate, r.ShipDate, r.ShipMode,
				r.CustomerID, r.CustomerName, r.Segment,
				r.Country, r.City, r.State, nullable(r.PostalCode), r.Region,
				r.ProductID, r.Category, r.SubCategory, r.ProductName,
				r.Sales, r.Quantity, r.Discount, r.Profit,
			}, nil
		}))
	if err != nil {
		return fmt.Errorf("staging copy failed: %w", err)
	}

	logging.Info().Int64("rows", n).Msg("Staging table loaded")
	return nil
}

func (l *Loader) loadDimensions(ctx context.Context, records []sales.Record) (dimensionKeys, error) {
	dateRows, dates := buildDateDim(records)
	if err := l.insertDateDim(ctx, dateRows); err != nil {
		return dimensionKeys{}, err
	}

	customerRows, customers := buildCustomerDim(records)
	if err := l.insertCustomerDim(ctx, customerRows); err != nil {
		return dimensionKeys{}, err
	}

	productRows, products := buildProductDim(records)
	if err := l.insertProductDim(ctx, productRows); err != nil {
		return dimensionKeys{}, err
	}

	shippingRows, shipping := buildShippingDim(records)
	if err := l.insertShippingDim(ctx, shippingRows); err != nil {
		return dimensionKeys{}, err
	}

	logging.Info().
		Int("dim_date", len(dateRows)).
		Int("dim_customer", len(customerRows)).
		Int("dim_product", len(productRows)).
		Int("dim_shipping", len(shippingRows)).
		Msg("Dimensions loaded")

	return dimensionKeys{
		dates:     dates,
		customers: customers,
		products:  products,
		shipping:  shipping,
	}, nil
}

func (l *Loader) insertDateDim(ctx context.Context, rows []DateRow) error {
	cols := []string{"date_key", "full_date", "year", "quarter", "month", "month_name",
		"day", "day_of_week", "day_name", "week_of_year", "is_weekend"}
	_, err := l.db.CopyFrom(ctx, pgx.Identifier{"dim_date"}, cols,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := &rows[i]
			return []any{r.Key, r.Date, r.Year, r.Quarter, r.Month, r.MonthName,
				r.Day, r.DayOfWeek, r.DayName, r.WeekOfYear, r.Weekend}, nil
		}))
	return translateUnique("dim_date", err)
}

func (l *Loader) insertCustomerDim(ctx context.Context, rows []CustomerRow) error {
	cols := []string{"customer_key", "customer_id", "customer_name", "segment",
		"country", "city", "state", "postal_code", "region",
		"first_order_date", "last_order_date"}
	_, err := l.db.CopyFrom(ctx, pgx.Identifier{"dim_customer"}, cols,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := &rows[i]
			return []any{r.Key, r.CustomerID, r.Name, r.Segment,
				r.Country, r.City, r.State, nullable(r.PostalCode), r.Region,
				r.FirstOrder, r.LastOrder}, nil
		}))
	return translateUnique("dim_customer", err)
}

func (l *Loader) insertProductDim(ctx context.Context, rows []ProductRow) error {
	cols := []string{"product_key", "product_id", "product_name", "category", "sub_category"}
	_, err := l.db.CopyFrom(ctx, pgx.Identifier{"dim_product"}, cols,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := &rows[i]
			return []any{r.Key, r.ProductID, r.Name, r.Category, r.SubCategory}, nil
		}))
	return translateUnique("dim_product", err)
}

func (l *Loader) insertShippingDim(ctx context.Context, rows []ShippingRow) error {
	cols := []string{"shipping_key", "ship_mode"}
	_, err := l.db.CopyFrom(ctx, pgx.Identifier{"dim_shipping"}, cols,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := &rows[i]
			return []any{r.Key, r.ShipMode}, nil
		}))
	return translateUnique("dim_shipping", err)
}

func (l *Loader) loadFacts(ctx context.Context, records []sales.Record, keys dimensionKeys) error {
	rows, err := buildFactRows(records, keys)
	if err != nil {
		return err
	}

	cols := []string{"sales_key", "order_id", "order_date_key", "ship_date_key",
		"customer_key", "product_key", "shipping_key",
		"quantity", "sales_amount", "discount", "profit"}
	n, err := l.db.CopyFrom(ctx, pgx.Identifier{"fact_sales"}, cols,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := &rows[i]
			return []any{r.Key, r.OrderID, r.OrderDateKey, r.ShipDateKey,
				r.CustomerKey, r.ProductKey, r.ShippingKey,
				r.Quantity, r.SalesAmount, r.Discount, r.Profit}, nil
		}))
	if err != nil {
		return fmt.Errorf("fact copy failed: %w", err)
	}

	logging.Info().Int64("rows", n).Msg("Fact table loaded")
	return nil
}

// verify reconciles post-load row counts against the staged row count.
// A mismatch fails the run but does not roll anything back: the schema is
// recreated on every run, so a retry starts clean.
func (l *Loader) verify(ctx context.Context, staged int) (Counts, error) {
	tables := []string{
		"staging_raw_sales", "dim_date", "dim_customer",
		"dim_product", "dim_shipping", "fact_sales",
	}

	counts := make(Counts, len(tables))
	for _, table := range tables {
		var n int
		if err := l.db.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count of %s failed: %w", table, err)
		}
		counts[table] = n
		logging.Info().Str("table", table).Int("rows", n).Msg("Row count")
	}

	if counts["fact_sales"] != staged {
		return counts, &etlerr.VerificationError{Staged: staged, Fact: counts["fact_sales"]}
	}
	return counts, nil
}

// translateUnique converts a PostgreSQL unique violation into an
// IntegrityError so callers see the pipeline taxonomy instead of a SQLSTATE.
func translateUnique(dimension string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return &etlerr.IntegrityError{Dimension: dimension, Key: pgErr.Detail}
	}
	return fmt.Errorf("%s copy failed: %w", dimension, err)
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
