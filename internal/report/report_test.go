package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"revenueflow/models"
)

func buildSample() models.QualityReport {
	b := New("2024-01-01")
	b.SetInputCounts(9, 8)
	b.SetOrderDuplicates(1)
	b.RecordOrderRejections(4, map[string]int{
		"null_order_id":    1,
		"null_customer_id": 1,
		"null_order_date":  1,
		"null_status":      1,
	})
	b.RecordItemRejections(6, map[string]int{
		"null_quantity":      1,
		"invalid_unit_price": 1,
	})
	b.RecordItemRejections(5, map[string]int{"orphan_item": 1})
	b.SetOrphanItems(1)
	b.SetOutput(
		[]models.DailyRevenue{{}, {}},
		decimal.RequireFromString("125.49"),
		3,
	)
	return b.Build()
}

func TestBuildCounts(t *testing.T) {
	r := buildSample()

	if r.RunDate != "2024-01-01" {
		t.Errorf("run_date: %s", r.RunDate)
	}
	if r.Input.Orders != 9 || r.Input.OrderItems != 8 {
		t.Errorf("input counts: %+v", r.Input)
	}
	if r.Duplicates.Orders != 1 || r.Duplicates.OrderItems != 0 {
		t.Errorf("duplicates: %+v", r.Duplicates)
	}
	if r.Rejected.Orders != 4 || r.Rejected.OrderItems != 3 {
		t.Errorf("rejected: %+v", r.Rejected)
	}
	if r.Valid.Orders != 4 || r.Valid.OrderItems != 5 {
		t.Errorf("valid: %+v", r.Valid)
	}
	if r.OrphanItems != 1 {
		t.Errorf("orphan_items: %d", r.OrphanItems)
	}
	if r.RejectionReasons.OrderItems["orphan_item"] != 1 {
		t.Errorf("item reasons missing orphan_item: %v", r.RejectionReasons.OrderItems)
	}
	if r.Output.DailyRevenueRows != 2 || r.Output.TotalRevenue != 125.49 || r.Output.TotalOrdersCount != 3 {
		t.Errorf("output metrics: %+v", r.Output)
	}
}

func TestBuildTimestampsRFC3339(t *testing.T) {
	r := buildSample()
	for _, ts := range []string{r.PipelineStartTime, r.PipelineEndTime} {
		parsed, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			t.Fatalf("timestamp %q not RFC3339: %v", ts, err)
		}
		if parsed.After(time.Now().UTC()) {
			t.Errorf("timestamp %q in the future", ts)
		}
	}
	start, _ := time.Parse(time.RFC3339, r.PipelineStartTime)
	end, _ := time.Parse(time.RFC3339, r.PipelineEndTime)
	if end.Before(start) {
		t.Errorf("end %s before start %s", r.PipelineEndTime, r.PipelineStartTime)
	}
}

func TestReportJSONKeys(t *testing.T) {
	data, err := json.Marshal(buildSample())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	keys := []string{
		`"run_date"`, `"pipeline_start_time"`, `"pipeline_end_time"`,
		`"input"`, `"duplicates"`, `"rejected"`, `"orphan_items"`, `"valid"`,
		`"rejection_reasons"`, `"output"`,
		`"orders"`, `"order_items"`,
		`"daily_revenue_rows"`, `"total_revenue"`, `"total_orders_count"`,
	}
	for _, k := range keys {
		if !strings.Contains(out, k) {
			t.Errorf("report JSON missing key %s", k)
		}
	}
}

func TestBuildIsInvariantApartFromTimestamps(t *testing.T) {
	a := buildSample()
	b := buildSample()
	a.PipelineStartTime, a.PipelineEndTime = "", ""
	b.PipelineStartTime, b.PipelineEndTime = "", ""

	aj, _ := json.Marshal(a)
	bj, _ := json.Marshal(b)
	if string(aj) != string(bj) {
		t.Fatalf("reports differ across identical builds:\n%s\n%s", aj, bj)
	}
}
