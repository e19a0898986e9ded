// Package aggregate computes the daily revenue summary from accepted,
// orphan-filtered items joined to accepted completed orders.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"revenueflow/models"
)

type dayBucket struct {
	revenue decimal.Decimal
	orders  map[string]struct{}
}

// DailyRevenue joins items to completed orders on order_id, sums
// quantity × unit_price per order date and counts distinct contributing
// orders. Amounts stay exact decimals throughout; each day's total is
// rounded to 2 places only at the end. Output rows are sorted by date
// ascending. A date appears only if at least one item joined to it, so an
// order whose items were all rejected produces no zero-revenue row, while a
// zero-quantity item still makes its order count.
func DailyRevenue(orders []models.Order, items []models.OrderItem) []models.DailyRevenue {
	completed := make(map[string]time.Time, len(orders))
	for _, o := range orders {
		if o.Status == models.StatusCompleted && o.OrderDate != nil {
			completed[o.OrderID] = *o.OrderDate
		}
	}

	buckets := make(map[time.Time]*dayBucket)
	for _, it := range items {
		date, ok := completed[it.OrderID]
		if !ok {
			continue
		}
		b, ok := buckets[date]
		if !ok {
			b = &dayBucket{orders: make(map[string]struct{})}
			buckets[date] = b
		}
		b.revenue = b.revenue.Add(it.Quantity.Mul(*it.UnitPrice))
		b.orders[it.OrderID] = struct{}{}
	}

	out := make([]models.DailyRevenue, 0, len(buckets))
	for date, b := range buckets {
		out = append(out, models.DailyRevenue{
			OrderDate:    date,
			TotalRevenue: b.revenue.Round(2),
			OrdersCount:  len(b.orders),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.Before(out[j].OrderDate) })
	return out
}

// Totals sums the output rows for the quality report.
func Totals(rows []models.DailyRevenue) (revenue decimal.Decimal, orders int) {
	for _, r := range rows {
		revenue = revenue.Add(r.TotalRevenue)
		orders += r.OrdersCount
	}
	return revenue, orders
}
