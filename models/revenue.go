package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRevenue is one output row of the revenue summary: total revenue and
// distinct completed-order count for a single order date.
type DailyRevenue struct {
	OrderDate    time.Time
	TotalRevenue decimal.Decimal
	OrdersCount  int
}
