package linker

import (
	"testing"

	"revenueflow/models"
)

func TestFilterOrphans(t *testing.T) {
	orders := []models.Order{
		{OrderID: "1001"},
		{OrderID: "1002"},
	}
	items := []models.OrderItem{
		{ItemID: "a", OrderID: "1001"},
		{ItemID: "b", OrderID: "9999"},
		{ItemID: "c", OrderID: "1002"},
	}

	linked, orphans := FilterOrphans(items, orders)
	if len(linked)+len(orphans) != len(items) {
		t.Fatalf("items lost: %d + %d != %d", len(linked), len(orphans), len(items))
	}
	if len(linked) != 2 || linked[0].ItemID != "a" || linked[1].ItemID != "c" {
		t.Fatalf("unexpected linked items: %+v", linked)
	}
	if len(orphans) != 1 || orphans[0].Item.ItemID != "b" {
		t.Fatalf("unexpected orphans: %+v", orphans)
	}
	if orphans[0].Reason != models.ReasonOrphanItem {
		t.Errorf("expected orphan_item reason, got %s", orphans[0].Reason)
	}
}

func TestFilterOrphansNoOrders(t *testing.T) {
	items := []models.OrderItem{{ItemID: "a", OrderID: "1001"}}
	linked, orphans := FilterOrphans(items, nil)
	if len(linked) != 0 || len(orphans) != 1 {
		t.Fatalf("expected everything orphaned, got linked=%d orphans=%d", len(linked), len(orphans))
	}
}

func TestFilterOrphansEmptyItems(t *testing.T) {
	linked, orphans := FilterOrphans(nil, []models.Order{{OrderID: "1001"}})
	if len(linked) != 0 || len(orphans) != 0 {
		t.Fatalf("expected empty result, got linked=%d orphans=%d", len(linked), len(orphans))
	}
}
