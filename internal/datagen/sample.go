//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package datagen

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/retailworks/sales-etl/internal/sales"
)

// Reference data matching the Superstore domain.
var (
	shipModes = []string{"Standard Class", "Second Class", "First Class", "Same Day"}
	segments  = []string{"Consumer", "Corporate", "Home Office"}
	regions   = []string{"East", "West", "Central", "South"}

	subCategories = map[string][]string{
		"Technology":      {"Phones", "Accessories", "Machines", "Copiers"},
		"Furniture":       {"Chairs", "Tables", "Bookcases", "Furnishings"},
		"Office Supplies": {"Paper", "Binders", "Storage", "Labels", "Envelopes", "Supplies"},
	}
	categories = []string{"Technology", "Furniture", "Office Supplies"}
)

// SampleConfig controls sample CSV generation.
type SampleConfig struct {
	// Rows is the number of distinct data rows to generate.
	Rows int

	// Duplicates appends this many exact copies of existing rows, so the
	// deduplication path is exercisable end to end.
	Duplicates int

	// Seed makes output reproducible when non-zero.
	Seed uint64

	// Year is the first order year; orders span two calendar years.
	Year int
}

type customer struct {
	id, name, segment, city, state, postal, region string
}

type product struct {
	id, name, category, subCategory string
}

// WriteSample generates a valid 20-column Superstore-style sales CSV.
// Every generated row satisfies the pipeline's hard validation rules.
func WriteSample(w io.Writer, cfg SampleConfig) error {
	if cfg.Rows < 1 {
		return fmt.Errorf("rows must be at least 1")
	}
	if cfg.Year == 0 {
		cfg.Year = 2019
	}

	f := NewFaker()
	if cfg.Seed != 0 {
		f = NewFakerWithSeed(cfg.Seed)
	}

	customers := makeCustomers(f, max(1, cfg.Rows/5))
	products := makeProducts(f, max(1, cfg.Rows/3))

	start := time.Date(cfg.Year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(2, 0, -1)

	cw := csv.NewWriter(w)
	if err := cw.Write(sales.RequiredColumns); err != nil {
		return err
	}

	rows := make([][]string, 0, cfg.Rows)
	for i := 0; i < cfg.Rows; i++ {
		c := Choose(f, customers)
		p := Choose(f, products)

		orderDate := f.DateRange(start, end).UTC().Truncate(24 * time.Hour)
		shipDate := orderDate.AddDate(0, 0, f.Int(0, 7))

		quantity := f.Int(1, 14)
		discount := float64(f.Int(0, 8)) * 0.05
		amount := f.Price(2, 500) * float64(quantity) * (1 - discount)
		margin := f.Float64(-0.2, 0.45)
		profit := amount * margin

		row := []string{
			fmt.Sprintf("US-%d-%06d", orderDate.Year(), i+1),
			orderDate.Format("2006-01-02"),
			shipDate.Format("2006-01-02"),
			Choose(f, shipModes),
			c.id, c.name, c.segment,
			"United States", c.city, c.state, c.postal, c.region,
			p.id, p.category, p.subCategory, p.name,
			strconv.FormatFloat(round2(amount), 'f', -1, 64),
			strconv.Itoa(quantity),
			strconv.FormatFloat(discount, 'f', -1, 64),
			strconv.FormatFloat(round2(profit), 'f', -1, 64),
		}
		rows = append(rows, row)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	for i := 0; i < cfg.Duplicates; i++ {
		if err := cw.Write(Choose(f, rows)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func makeCustomers(f *Faker, n int) []customer {
	out := make([]customer, n)
	for i := range out {
		out[i] = customer{
			id:      fmt.Sprintf("CUST-%05d", i+1),
			name:    f.Name(),
			segment: Choose(f, segments),
			city:    f.City(),
			state:   f.State(),
			postal:  f.Zip(),
			region:  Choose(f, regions),
		}
	}
	return out
}

func makeProducts(f *Faker, n int) []product {
	out := make([]product, n)
	for i := range out {
		cat := Choose(f, categories)
		out[i] = product{
			id:          fmt.Sprintf("PROD-%05d", i+1),
			name:        f.ProductName(),
			category:    cat,
			subCategory: Choose(f, subCategories[cat]),
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
