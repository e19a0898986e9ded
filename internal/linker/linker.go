// Package linker enforces referential integrity between accepted items and
// accepted orders.
package linker

import "revenueflow/models"

// FilterOrphans removes items whose order_id is not among the accepted
// orders and returns them as rejections with the orphan_item reason. Every
// surviving item references exactly one accepted order. The accepted-orders
// slice is read, never modified.
func FilterOrphans(items []models.OrderItem, orders []models.Order) ([]models.OrderItem, []models.RejectedItem) {
	ids := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		ids[o.OrderID] = struct{}{}
	}

	linked := make([]models.OrderItem, 0, len(items))
	var orphans []models.RejectedItem
	for _, it := range items {
		if _, ok := ids[it.OrderID]; !ok {
			orphans = append(orphans, models.RejectedItem{Item: it, Reason: models.ReasonOrphanItem})
			continue
		}
		linked = append(linked, it)
	}
	return linked, orphans
}
