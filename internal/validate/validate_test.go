package validate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"revenueflow/models"
)

func date(t *testing.T, value string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse %s: %v", value, err)
	}
	return &d
}

func dec(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func validOrder(t *testing.T, id string) models.Order {
	t.Helper()
	return models.Order{
		OrderID:    id,
		CustomerID: "C1",
		OrderDate:  date(t, "2024-01-01"),
		Status:     "completed",
	}
}

func TestOrdersPartitionCompleteness(t *testing.T) {
	orders := []models.Order{
		validOrder(t, "1"),
		{OrderID: "", CustomerID: "C1", OrderDate: date(t, "2024-01-01"), Status: "pending"},
		{OrderID: "3", CustomerID: "", OrderDate: date(t, "2024-01-01"), Status: "pending"},
		{OrderID: "4", CustomerID: "C4", OrderDate: nil, Status: "pending"},
		{OrderID: "5", CustomerID: "C5", OrderDate: date(t, "2024-01-01"), Status: ""},
	}

	accepted, rejected := Orders(orders)
	if len(accepted)+len(rejected) != len(orders) {
		t.Fatalf("partition lost rows: %d + %d != %d", len(accepted), len(rejected), len(orders))
	}
	if len(accepted) != 1 || accepted[0].OrderID != "1" {
		t.Fatalf("unexpected accepted set: %+v", accepted)
	}

	want := []models.Reason{
		models.ReasonNullOrderID,
		models.ReasonNullCustomerID,
		models.ReasonNullOrderDate,
		models.ReasonNullStatus,
	}
	for i, r := range rejected {
		if r.Reason != want[i] {
			t.Errorf("rejected[%d]: expected %s, got %s", i, want[i], r.Reason)
		}
	}
}

func TestOrdersFirstFailingRuleWins(t *testing.T) {
	// fails every rule; only null_order_id may be recorded
	order := models.Order{}
	_, rejected := Orders([]models.Order{order})
	if len(rejected) != 1 {
		t.Fatalf("expected 1 rejection, got %d", len(rejected))
	}
	if rejected[0].Reason != models.ReasonNullOrderID {
		t.Fatalf("expected null_order_id, got %s", rejected[0].Reason)
	}
}

func TestItemsRules(t *testing.T) {
	cases := []struct {
		name   string
		item   models.OrderItem
		reason models.Reason
		valid  bool
	}{
		{"valid", models.OrderItem{OrderID: "1", Quantity: dec("2"), UnitPrice: dec("10")}, "", true},
		{"zero quantity is valid", models.OrderItem{OrderID: "1", Quantity: dec("0"), UnitPrice: dec("10")}, "", true},
		{"null quantity", models.OrderItem{OrderID: "1", Quantity: nil, UnitPrice: dec("10")}, models.ReasonNullQuantity, false},
		{"null price", models.OrderItem{OrderID: "1", Quantity: dec("1"), UnitPrice: nil}, models.ReasonInvalidUnitPrice, false},
		{"zero price", models.OrderItem{OrderID: "1", Quantity: dec("1"), UnitPrice: dec("0")}, models.ReasonInvalidUnitPrice, false},
		{"negative price", models.OrderItem{OrderID: "1", Quantity: dec("1"), UnitPrice: dec("-5")}, models.ReasonInvalidUnitPrice, false},
		{"null quantity wins over bad price", models.OrderItem{OrderID: "1", Quantity: nil, UnitPrice: dec("-5")}, models.ReasonNullQuantity, false},
	}

	for _, c := range cases {
		accepted, rejected := Items([]models.OrderItem{c.item})
		if c.valid {
			if len(accepted) != 1 || len(rejected) != 0 {
				t.Errorf("%s: expected accepted, got rejected %+v", c.name, rejected)
			}
			continue
		}
		if len(rejected) != 1 {
			t.Errorf("%s: expected rejection", c.name)
			continue
		}
		if rejected[0].Reason != c.reason {
			t.Errorf("%s: expected %s, got %s", c.name, c.reason, rejected[0].Reason)
		}
	}
}

func TestItemsPreserveInputOrder(t *testing.T) {
	items := []models.OrderItem{
		{ItemID: "a", OrderID: "1", Quantity: dec("1"), UnitPrice: dec("1")},
		{ItemID: "b", OrderID: "1", Quantity: nil, UnitPrice: dec("1")},
		{ItemID: "c", OrderID: "1", Quantity: dec("1"), UnitPrice: dec("1")},
	}
	accepted, _ := Items(items)
	if len(accepted) != 2 || accepted[0].ItemID != "a" || accepted[1].ItemID != "c" {
		t.Fatalf("input order not preserved: %+v", accepted)
	}
}

func TestReasonHistograms(t *testing.T) {
	rejected := []models.RejectedItem{
		{Reason: models.ReasonNullQuantity},
		{Reason: models.ReasonInvalidUnitPrice},
		{Reason: models.ReasonNullQuantity},
	}
	h := ItemReasonHistogram(rejected)
	if h["null_quantity"] != 2 || h["invalid_unit_price"] != 1 {
		t.Fatalf("unexpected histogram: %v", h)
	}

	oh := OrderReasonHistogram([]models.RejectedOrder{{Reason: models.ReasonNullStatus}})
	if oh["null_status"] != 1 || len(oh) != 1 {
		t.Fatalf("unexpected order histogram: %v", oh)
	}
}
