// Package pipeline wires the transformation stages into the single run
// operation the shell calls. Stages execute strictly in sequence; each one
// fully consumes its input before the next begins, and every stage's
// counters land in the report builder threaded through the run.
package pipeline

import (
	"github.com/google/uuid"

	"revenueflow/internal/aggregate"
	"revenueflow/internal/cleaner"
	"revenueflow/internal/dedup"
	"revenueflow/internal/linker"
	"revenueflow/internal/report"
	"revenueflow/internal/validate"
	"revenueflow/logger"
	"revenueflow/models"
)

// Result carries everything a run produces: the revenue rows, both rejected
// sets and the quality report. The shell decides what to do with them.
type Result struct {
	DailyRevenue   []models.DailyRevenue
	RejectedOrders []models.RejectedOrder
	RejectedItems  []models.RejectedItem
	Report         models.QualityReport
}

// Run executes the full transformation over already-loaded tables. The run
// date only labels the report; it never filters rows. Row-level problems
// become rejections; only structural problems (missing columns) return an
// error, in which case nothing should be written.
func Run(runDate string, ordersRaw, itemsRaw models.Table) (*Result, error) {
	log := logger.GetLogger().WithComponent("pipeline").WithFields(logger.Fields{
		"run_id":   uuid.New().String(),
		"run_date": runDate,
	})

	rep := report.New(runDate)
	rep.SetInputCounts(len(ordersRaw.Rows), len(itemsRaw.Rows))
	logger.RecordRowsRead(len(ordersRaw.Rows) + len(itemsRaw.Rows))

	log.WithFields(logger.Fields{
		"orders":      len(ordersRaw.Rows),
		"order_items": len(itemsRaw.Rows),
	}).Info("cleaning input rows")

	orders, err := cleaner.CleanOrders(ordersRaw)
	if err != nil {
		return nil, err
	}
	items, err := cleaner.CleanItems(itemsRaw)
	if err != nil {
		return nil, err
	}

	orders, removed := dedup.Orders(orders)
	rep.SetOrderDuplicates(removed)
	if removed > 0 {
		log.WithFields(logger.Fields{"duplicates": removed}).Info("removed duplicate orders")
	}

	validOrders, rejectedOrders := validate.Orders(orders)
	rep.RecordOrderRejections(len(validOrders), validate.OrderReasonHistogram(rejectedOrders))
	log.WithFields(logger.Fields{
		"valid":    len(validOrders),
		"rejected": len(rejectedOrders),
	}).Info("validated orders")

	validItems, rejectedItems := validate.Items(items)

	linkedItems, orphans := linker.FilterOrphans(validItems, validOrders)
	rejectedItems = append(rejectedItems, orphans...)
	rep.RecordItemRejections(len(linkedItems), validate.ItemReasonHistogram(rejectedItems))
	rep.SetOrphanItems(len(orphans))
	logger.RecordRowsRejected(len(rejectedOrders) + len(rejectedItems))
	log.WithFields(logger.Fields{
		"valid":    len(linkedItems),
		"rejected": len(rejectedItems),
		"orphans":  len(orphans),
	}).Info("validated order items")

	revenue := aggregate.DailyRevenue(validOrders, linkedItems)
	totalRevenue, totalOrders := aggregate.Totals(revenue)
	rep.SetOutput(revenue, totalRevenue, totalOrders)
	logger.RecordRowsWritten(len(revenue))
	log.WithFields(logger.Fields{
		"days":          len(revenue),
		"total_revenue": totalRevenue.StringFixed(2),
		"orders":        totalOrders,
	}).Info("computed daily revenue")

	return &Result{
		DailyRevenue:   revenue,
		RejectedOrders: rejectedOrders,
		RejectedItems:  rejectedItems,
		Report:         rep.Build(),
	}, nil
}
