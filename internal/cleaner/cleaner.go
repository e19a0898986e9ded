// Package cleaner normalizes raw tabular rows into typed records. It never
// drops rows: values that fail to parse become explicit nulls and are caught
// by the validation stage. Only a missing required column aborts the run.
package cleaner

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"revenueflow/models"
)

const dateLayout = "2006-01-02"

// timestampLayouts are tried in order when parsing ingested_at values.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// CleanOrders produces one cleaned order per input row, same cardinality.
func CleanOrders(t models.Table) ([]models.Order, error) {
	if missing := t.MissingColumns(models.RequiredOrderColumns); len(missing) > 0 {
		return nil, fmt.Errorf("orders: missing required columns: %s", strings.Join(missing, ", "))
	}

	orders := make([]models.Order, 0, len(t.Rows))
	for i, row := range t.Rows {
		orders = append(orders, models.Order{
			OrderID:    cleanString(field(row, "order_id")),
			CustomerID: cleanString(field(row, "customer_id")),
			OrderDate:  parseDate(field(row, "order_date")),
			Status:     strings.ToLower(cleanString(field(row, "status"))),
			IngestedAt: parseTimestamp(field(row, "ingested_at")),
			Raw:        row,
			Pos:        i,
		})
	}
	return orders, nil
}

// CleanItems produces one cleaned order item per input row, same cardinality.
func CleanItems(t models.Table) ([]models.OrderItem, error) {
	if missing := t.MissingColumns(models.RequiredItemColumns); len(missing) > 0 {
		return nil, fmt.Errorf("order_items: missing required columns: %s", strings.Join(missing, ", "))
	}

	items := make([]models.OrderItem, 0, len(t.Rows))
	for i, row := range t.Rows {
		items = append(items, models.OrderItem{
			ItemID:     cleanString(field(row, "item_id")),
			OrderID:    cleanString(field(row, "order_id")),
			ProductID:  cleanString(field(row, "product_id")),
			Quantity:   parseDecimal(field(row, "quantity")),
			UnitPrice:  parseDecimal(field(row, "unit_price")),
			IngestedAt: parseTimestamp(field(row, "ingested_at")),
			Raw:        row,
			Pos:        i,
		})
	}
	return items, nil
}

// field looks a value up by normalized column name regardless of how the
// row's keys were cased in the source file.
func field(row models.RawRecord, name string) string {
	if v, ok := row[name]; ok {
		return v
	}
	for k, v := range row {
		if models.NormalizeColumn(k) == name {
			return v
		}
	}
	return ""
}

// cleanString trims surrounding whitespace; a whitespace-only value is null.
func cleanString(v string) string {
	return strings.TrimSpace(v)
}

func parseDate(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil
	}
	return &d
}

func parseTimestamp(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return &ts
		}
	}
	return nil
}

func parseDecimal(v string) *decimal.Decimal {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return &d
}
