//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package transform

import (
	"time"

	"github.com/retailworks/sales-etl/internal/sales"
)

// derive computes the analytics columns from the coerced fields. All
// derived values are pure functions of existing fields.
func derive(r *sales.Record) {
	if r.Sales != 0 {
		m := r.Profit / r.Sales
		r.ProfitMargin = &m
	}

	r.DeliveryDays = daysBetween(r.OrderDate, r.ShipDate)

	r.OrderYear = r.OrderDate.Year()
	r.OrderMonth = int(r.OrderDate.Month())
	r.OrderQuarter = Quarter(r.OrderDate)
	r.OrderMonthName = r.OrderDate.Month().String()
	r.OrderDayName = r.OrderDate.Weekday().String()
	_, r.OrderWeek = r.OrderDate.ISOWeek()
	r.Weekend = IsWeekend(r.OrderDate)
}

// Quarter returns the calendar quarter (1-4) of a date.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// IsWeekend reports whether a date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// daysBetween returns the whole number of days from a to b. Dates carry no
// time-of-day component, so this is an exact difference.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
