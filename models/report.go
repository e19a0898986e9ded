package models

// EntityCounts holds a per-entity counter pair, serialized with the same
// keys the report has always used.
type EntityCounts struct {
	Orders     int `json:"orders"`
	OrderItems int `json:"order_items"`
}

// ReasonCounts maps rejection reason to occurrence count per entity.
type ReasonCounts struct {
	Orders     map[string]int `json:"orders"`
	OrderItems map[string]int `json:"order_items"`
}

// OutputMetrics summarizes the revenue output of one run.
type OutputMetrics struct {
	DailyRevenueRows int     `json:"daily_revenue_rows"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalOrdersCount int     `json:"total_orders_count"`
}

// QualityReport is the structured summary of one pipeline run. All fields
// except the two timestamps are invariant across reruns on the same input.
type QualityReport struct {
	RunDate           string        `json:"run_date"`
	PipelineStartTime string        `json:"pipeline_start_time"`
	PipelineEndTime   string        `json:"pipeline_end_time"`
	Input             EntityCounts  `json:"input"`
	Duplicates        EntityCounts  `json:"duplicates"`
	Rejected          EntityCounts  `json:"rejected"`
	OrphanItems       int           `json:"orphan_items"`
	Valid             EntityCounts  `json:"valid"`
	RejectionReasons  ReasonCounts  `json:"rejection_reasons"`
	Output            OutputMetrics `json:"output"`
}
