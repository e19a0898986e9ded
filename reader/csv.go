// Package reader loads raw CSV inputs into in-memory tables. Values are kept
// as strings; all typing happens in the cleaning stage.
package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"revenueflow/logger"
	"revenueflow/models"
)

// LoadTable reads one CSV file into a Table. The header is normalized
// (lowercased, trimmed) and checked against the required columns; a missing
// file or missing column is fatal for the run. Short rows pad missing cells
// with empty strings so cardinality is preserved.
func LoadTable(path string, required []string) (models.Table, error) {
	log := logger.GetLogger().WithComponent("reader")

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Table{}, fmt.Errorf("missing input file: %s", path)
		}
		return models.Table{}, fmt.Errorf("open input file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = false

	header, err := r.Read()
	if err == io.EOF {
		return models.Table{}, fmt.Errorf("input file %s is empty", path)
	}
	if err != nil {
		return models.Table{}, fmt.Errorf("read header of %s: %w", path, err)
	}

	columns := make([]string, len(header))
	for i, c := range header {
		columns[i] = models.NormalizeColumn(c)
	}

	table := models.Table{Columns: columns}
	if missing := table.MissingColumns(required); len(missing) > 0 {
		return models.Table{}, fmt.Errorf("missing required columns in %s: %s", path, strings.Join(missing, ", "))
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Table{}, fmt.Errorf("read %s: %w", path, err)
		}
		row := make(models.RawRecord, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	log.WithFields(logger.Fields{"file": path, "rows": len(table.Rows)}).Info("loaded input file")
	return table, nil
}
