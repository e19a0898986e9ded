package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column sets the pipeline refuses to run without. item_id and product_id
// are carried through when present but are not required by the loader.
var (
	RequiredOrderColumns = []string{"order_id", "customer_id", "order_date", "status", "ingested_at"}
	RequiredItemColumns  = []string{"order_id", "quantity", "unit_price", "ingested_at"}
)

// Order is a cleaned order row. Empty strings and nil pointers are explicit
// nulls: unparsable dates and timestamps are nil, never an error.
type Order struct {
	OrderID    string
	CustomerID string
	OrderDate  *time.Time
	Status     string
	IngestedAt *time.Time

	// Raw holds the original field values for rejected-row output;
	// Pos is the row's input position, the final dedup tie-break.
	Raw RawRecord
	Pos int
}

// OrderItem is a cleaned order item row. Quantity and UnitPrice are nil when
// the source value was missing or not numeric.
type OrderItem struct {
	ItemID     string
	OrderID    string
	ProductID  string
	Quantity   *decimal.Decimal
	UnitPrice  *decimal.Decimal
	IngestedAt *time.Time

	Raw RawRecord
	Pos int
}

// StatusCompleted is the only order status that contributes to revenue.
const StatusCompleted = "completed"
