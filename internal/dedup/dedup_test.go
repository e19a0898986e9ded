package dedup

import (
	"testing"
	"time"

	"revenueflow/models"
)

func ts(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %s: %v", value, err)
	}
	return &parsed
}

func TestOrdersKeepsLatestTimestamp(t *testing.T) {
	orders := []models.Order{
		{OrderID: "1001", CustomerID: "old", IngestedAt: ts(t, "2024-01-01T10:00:00Z"), Pos: 0},
		{OrderID: "1001", CustomerID: "new", IngestedAt: ts(t, "2024-01-01T12:00:00Z"), Pos: 1},
	}
	out, removed := Orders(orders)
	if removed != 1 {
		t.Fatalf("expected 1 duplicate, got %d", removed)
	}
	if len(out) != 1 || out[0].CustomerID != "new" {
		t.Fatalf("expected latest row kept, got %+v", out)
	}
}

func TestOrdersNullTimestampNeverWins(t *testing.T) {
	orders := []models.Order{
		{OrderID: "1001", CustomerID: "untimed", IngestedAt: nil, Pos: 0},
		{OrderID: "1001", CustomerID: "timed", IngestedAt: ts(t, "2024-01-01T10:00:00Z"), Pos: 1},
	}
	out, _ := Orders(orders)
	if out[0].CustomerID != "timed" {
		t.Fatalf("expected timestamped row to win, got %+v", out[0])
	}

	// reversed input order, same outcome
	orders[0], orders[1] = orders[1], orders[0]
	out, _ = Orders(orders)
	if out[0].CustomerID != "timed" {
		t.Fatalf("expected timestamped row to win regardless of order, got %+v", out[0])
	}
}

func TestOrdersEqualTimestampsFirstSeenWins(t *testing.T) {
	orders := []models.Order{
		{OrderID: "1001", CustomerID: "first", IngestedAt: ts(t, "2024-01-01T10:00:00Z"), Pos: 0},
		{OrderID: "1001", CustomerID: "second", IngestedAt: ts(t, "2024-01-01T10:00:00Z"), Pos: 1},
	}
	out, _ := Orders(orders)
	if out[0].CustomerID != "first" {
		t.Fatalf("expected first-seen row to win, got %+v", out[0])
	}
}

func TestOrdersOutputSortedAndUnique(t *testing.T) {
	orders := []models.Order{
		{OrderID: "1003", IngestedAt: ts(t, "2024-01-01T10:00:00Z")},
		{OrderID: "1001", IngestedAt: ts(t, "2024-01-01T10:00:00Z")},
		{OrderID: "", IngestedAt: ts(t, "2024-01-01T10:00:00Z")},
		{OrderID: "1002", IngestedAt: ts(t, "2024-01-01T10:00:00Z")},
	}
	out, removed := Orders(orders)
	if removed != 0 {
		t.Fatalf("expected no duplicates, got %d", removed)
	}
	want := []string{"1001", "1002", "1003", ""}
	if len(out) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(out))
	}
	for i, id := range want {
		if out[i].OrderID != id {
			t.Errorf("row %d: expected order_id %q, got %q", i, id, out[i].OrderID)
		}
	}
}

func TestOrdersDuplicateCount(t *testing.T) {
	orders := []models.Order{
		{OrderID: "a", IngestedAt: ts(t, "2024-01-01T10:00:00Z")},
		{OrderID: "a", IngestedAt: ts(t, "2024-01-01T11:00:00Z")},
		{OrderID: "a", IngestedAt: ts(t, "2024-01-01T12:00:00Z")},
		{OrderID: "b", IngestedAt: nil},
	}
	out, removed := Orders(orders)
	if len(out) != 2 || removed != 2 {
		t.Fatalf("expected 2 rows and 2 removed, got %d rows, %d removed", len(out), removed)
	}
	if removed != len(orders)-len(out) {
		t.Fatalf("duplicate count mismatch: %d != %d", removed, len(orders)-len(out))
	}
}

func TestOrdersEmptyInput(t *testing.T) {
	out, removed := Orders(nil)
	if len(out) != 0 || removed != 0 {
		t.Fatalf("expected empty result, got %d rows, %d removed", len(out), removed)
	}
}
