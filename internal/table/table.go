// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package table holds the in-memory tabular result produced by a source
// query or deserialized from a cached artifact. Cells are plain strings so
// that a cache round trip returns content identical to the original result.
package table

import (
	"encoding/json"
	"fmt"
)

// Table is a rows-by-named-columns result set.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns an empty Table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds a row. The cell count must match the column count.
func (t *Table) Append(cells ...string) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.Columns))
	}
	t.Rows = append(t.Rows, cells)
	return nil
}

// Empty reports whether the table has no data rows. A table with columns
// but no rows is empty.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Shape returns (rows, columns) in the pandas df.shape spirit, used mostly
// for log messages.
func (t *Table) Shape() (int, int) {
	if t == nil {
		return 0, 0
	}
	return len(t.Rows), len(t.Columns)
}

// Records converts the table to the []map form the output pipeline works
// on. Ragged rows are tolerated; missing cells come back empty.
func (t *Table) Records() []map[string]interface{} {
	if t == nil {
		return nil
	}
	records := make([]map[string]interface{}, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(map[string]interface{}, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				record[col] = row[i]
			} else {
				record[col] = ""
			}
		}
		records = append(records, record)
	}
	return records
}

// MarshalRecords renders the table as a JSON array of row objects.
func (t *Table) MarshalRecords() ([]byte, error) {
	recs := t.Records()
	if recs == nil {
		recs = []map[string]interface{}{}
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal table records: %w", err)
	}
	return b, nil
}

// Equal reports whether two tables have identical columns and row content.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.Columns) != len(o.Columns) || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i, c := range t.Columns {
		if o.Columns[i] != c {
			return false
		}
	}
	for i, row := range t.Rows {
		if len(row) != len(o.Rows[i]) {
			return false
		}
		for j, cell := range row {
			if o.Rows[i][j] != cell {
				return false
			}
		}
	}
	return true
}
