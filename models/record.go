package models

import "strings"

// RawRecord is a single row as read from a source file: every value is the
// original string keyed by its normalized column name.
type RawRecord map[string]string

// Table is an ordered set of raw rows plus the normalized header that
// produced them. Rows keep their file order; Columns keep header order.
type Table struct {
	Columns []string
	Rows    []RawRecord
}

// NormalizeColumn lowercases and trims a header cell so lookups are
// case-insensitive everywhere downstream.
func NormalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MissingColumns returns the required columns absent from the table header,
// in the order they were required.
func (t Table) MissingColumns(required []string) []string {
	present := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		present[NormalizeColumn(c)] = struct{}{}
	}
	var missing []string
	for _, c := range required {
		if _, ok := present[NormalizeColumn(c)]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}
