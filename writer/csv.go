// Package writer emits the run's artifacts. Every file is a full overwrite;
// nothing appends, so a rerun on the same input reproduces the same bytes
// (the quality report's timestamps aside).
package writer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"revenueflow/logger"
	"revenueflow/models"
)

const (
	DailyRevenueFile   = "daily_revenue.csv"
	RejectedOrdersFile = "rejected_orders.csv"
	RejectedItemsFile  = "rejected_items.csv"
	QualityReportFile  = "quality_report.json"
)

const dateLayout = "2006-01-02"

// WriteDailyRevenue writes the revenue summary CSV. It is always written,
// even when there are no rows, so downstream consumers can rely on the file
// existing.
func WriteDailyRevenue(path string, rows []models.DailyRevenue) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{"order_date", "total_revenue", "orders_count"})
	for _, r := range rows {
		records = append(records, []string{
			r.OrderDate.Format(dateLayout),
			r.TotalRevenue.StringFixed(2),
			strconv.Itoa(r.OrdersCount),
		})
	}
	return writeCSV(path, records)
}

// WriteRejectedOrders writes rejected orders with their original field
// values in input column order plus the rejection_reason column.
func WriteRejectedOrders(path string, columns []string, rejected []models.RejectedOrder) error {
	records := make([][]string, 0, len(rejected)+1)
	records = append(records, append(append([]string{}, columns...), "rejection_reason"))
	for _, r := range rejected {
		records = append(records, rawRow(r.Order.Raw, columns, string(r.Reason)))
	}
	return writeCSV(path, records)
}

// WriteRejectedItems writes rejected items with their original field values
// in input column order plus the rejection_reason column.
func WriteRejectedItems(path string, columns []string, rejected []models.RejectedItem) error {
	records := make([][]string, 0, len(rejected)+1)
	records = append(records, append(append([]string{}, columns...), "rejection_reason"))
	for _, r := range rejected {
		records = append(records, rawRow(r.Item.Raw, columns, string(r.Reason)))
	}
	return writeCSV(path, records)
}

// WriteQualityReport writes the report JSON, indented, with a trailing
// newline.
func WriteQualityReport(path string, report models.QualityReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal quality report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.GetLogger().WithComponent("writer").WithFields(logger.Fields{"file": path}).Info("wrote quality report")
	return nil
}

func rawRow(raw models.RawRecord, columns []string, reason string) []string {
	row := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		row = append(row, raw[c])
	}
	return append(row, reason)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	logger.GetLogger().WithComponent("writer").WithFields(logger.Fields{
		"file": path,
		"rows": len(records) - 1,
	}).Info("wrote output file")
	return nil
}
