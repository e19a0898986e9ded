// Package dedup collapses duplicate order rows deterministically so reruns
// over the same input always keep the same row.
package dedup

import (
	"sort"

	"revenueflow/models"
)

// Orders keeps one row per order_id and returns the number of rows removed.
// Within a group the row with the latest ingested_at wins; a row with a null
// timestamp never beats a timestamped one; equal timestamps keep the
// first-seen row. Output is ordered by order_id ascending, null ids last,
// which keeps reruns byte-identical. Order items are never deduplicated.
func Orders(orders []models.Order) ([]models.Order, int) {
	if len(orders) == 0 {
		return orders, 0
	}

	best := make(map[string]models.Order, len(orders))
	keys := make([]string, 0, len(orders))
	for _, o := range orders {
		cur, seen := best[o.OrderID]
		if !seen {
			best[o.OrderID] = o
			keys = append(keys, o.OrderID)
			continue
		}
		if beats(o, cur) {
			best[o.OrderID] = o
		}
	}

	// ascending order_id, the null (empty) id last
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i] == "" {
			return false
		}
		if keys[j] == "" {
			return true
		}
		return keys[i] < keys[j]
	})
	out := make([]models.Order, 0, len(keys))
	for _, k := range keys {
		out = append(out, best[k])
	}
	return out, len(orders) - len(out)
}

// beats reports whether candidate should replace current under the total
// order (timestamp-presence, timestamp, input position).
func beats(candidate, current models.Order) bool {
	switch {
	case candidate.IngestedAt == nil:
		return false
	case current.IngestedAt == nil:
		return true
	case candidate.IngestedAt.After(*current.IngestedAt):
		return true
	default:
		// equal or earlier: first-seen wins, and current was seen first
		return false
	}
}
