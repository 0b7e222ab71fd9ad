package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailworks/sales-etl/internal/sales"
)

func TestDerive(t *testing.T) {
	r := sales.Record{
		// 2019-03-09 is a Saturday.
		OrderDate: time.Date(2019, 3, 9, 0, 0, 0, 0, time.UTC),
		ShipDate:  time.Date(2019, 3, 14, 0, 0, 0, 0, time.UTC),
		Sales:     200,
		Profit:    50,
	}
	derive(&r)

	require.NotNil(t, r.ProfitMargin)
	assert.InDelta(t, 0.25, *r.ProfitMargin, 1e-9)
	assert.Equal(t, 5, r.DeliveryDays)
	assert.Equal(t, 2019, r.OrderYear)
	assert.Equal(t, 3, r.OrderMonth)
	assert.Equal(t, 1, r.OrderQuarter)
	assert.Equal(t, "March", r.OrderMonthName)
	assert.Equal(t, "Saturday", r.OrderDayName)
	assert.Equal(t, 10, r.OrderWeek)
	assert.True(t, r.Weekend)
}

func TestDeriveZeroSalesHasNoMargin(t *testing.T) {
	r := sales.Record{
		OrderDate: time.Date(2019, 3, 11, 0, 0, 0, 0, time.UTC),
		ShipDate:  time.Date(2019, 3, 11, 0, 0, 0, 0, time.UTC),
		Sales:     0,
		Profit:    -5,
	}
	derive(&r)

	assert.Nil(t, r.ProfitMargin)
	assert.Equal(t, 0, r.DeliveryDays)
	assert.False(t, r.Weekend)
}

func TestDeriveNegativeMargin(t *testing.T) {
	r := sales.Record{
		OrderDate: time.Date(2019, 6, 2, 0, 0, 0, 0, time.UTC),
		ShipDate:  time.Date(2019, 6, 4, 0, 0, 0, 0, time.UTC),
		Sales:     100,
		Profit:    -20,
	}
	derive(&r)

	require.NotNil(t, r.ProfitMargin)
	assert.InDelta(t, -0.2, *r.ProfitMargin, 1e-9)
}

func TestQuarter(t *testing.T) {
	tests := []struct {
		month time.Month
		want  int
	}{
		{time.January, 1},
		{time.March, 1},
		{time.April, 2},
		{time.June, 2},
		{time.July, 3},
		{time.September, 3},
		{time.October, 4},
		{time.December, 4},
	}

	for _, tt := range tests {
		d := time.Date(2019, tt.month, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.want, Quarter(d), "month %s", tt.month)
	}
}

func TestIsWeekend(t *testing.T) {
	// 2019-03-08 Fri, 03-09 Sat, 03-10 Sun, 03-11 Mon.
	assert.False(t, IsWeekend(time.Date(2019, 3, 8, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsWeekend(time.Date(2019, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsWeekend(time.Date(2019, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsWeekend(time.Date(2019, 3, 11, 0, 0, 0, 0, time.UTC)))
}
