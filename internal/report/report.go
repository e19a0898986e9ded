// Package report accumulates the counters every pipeline stage produces and
// assembles them into the run's quality report. It never recomputes business
// logic; stages hand it counts, it holds them.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"revenueflow/models"
)

// Builder is the accumulator threaded through a single run. It replaces any
// notion of ambient report state: one Builder per invocation, discarded with
// the run.
type Builder struct {
	runDate string
	started time.Time

	input      models.EntityCounts
	duplicates models.EntityCounts
	rejected   models.EntityCounts
	valid      models.EntityCounts
	orphans    int

	orderReasons map[string]int
	itemReasons  map[string]int

	output models.OutputMetrics
}

// New starts a report for the given run date, capturing the start time
// before any stage runs.
func New(runDate string) *Builder {
	return &Builder{
		runDate:      runDate,
		started:      time.Now().UTC(),
		orderReasons: make(map[string]int),
		itemReasons:  make(map[string]int),
	}
}

func (b *Builder) SetInputCounts(orders, items int) {
	b.input = models.EntityCounts{Orders: orders, OrderItems: items}
}

func (b *Builder) SetOrderDuplicates(n int) {
	b.duplicates.Orders = n
}

// RecordOrderRejections stores the rejected/valid split and the reason
// histogram for orders.
func (b *Builder) RecordOrderRejections(valid int, histogram map[string]int) {
	b.valid.Orders = valid
	total := 0
	for reason, n := range histogram {
		b.orderReasons[reason] += n
		total += n
	}
	b.rejected.Orders = total
}

// RecordItemRejections merges an item reason histogram in. The histogram may
// arrive in one piece or in increments, so rejected counts accumulate while
// the valid count is simply the latest value.
func (b *Builder) RecordItemRejections(valid int, histogram map[string]int) {
	b.valid.OrderItems = valid
	for reason, n := range histogram {
		b.itemReasons[reason] += n
		b.rejected.OrderItems += n
	}
}

func (b *Builder) SetOrphanItems(n int) {
	b.orphans = n
}

func (b *Builder) SetOutput(rows []models.DailyRevenue, totalRevenue decimal.Decimal, totalOrders int) {
	b.output = models.OutputMetrics{
		DailyRevenueRows: len(rows),
		TotalRevenue:     totalRevenue.InexactFloat64(),
		TotalOrdersCount: totalOrders,
	}
}

// Build captures the end time and returns the finished report.
func (b *Builder) Build() models.QualityReport {
	return models.QualityReport{
		RunDate:           b.runDate,
		PipelineStartTime: b.started.Format(time.RFC3339),
		PipelineEndTime:   time.Now().UTC().Format(time.RFC3339),
		Input:             b.input,
		Duplicates:        b.duplicates,
		Rejected:          b.rejected,
		OrphanItems:       b.orphans,
		Valid:             b.valid,
		RejectionReasons: models.ReasonCounts{
			Orders:     b.orderReasons,
			OrderItems: b.itemReasons,
		},
		Output: b.output,
	}
}
