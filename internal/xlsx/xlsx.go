// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package xlsx serializes tables to and from the spreadsheet artifacts kept
// in the cache directory. Row one is the header; everything below is data.
package xlsx

import (
	"fmt"

	"github.com/apex/log"
	"github.com/xuri/excelize/v2"

	"github.com/staranto/tsqgo/internal/table"
)

// WriteTable serializes t to an xlsx workbook at path, overwriting any
// existing file.
func WriteTable(path string, t *table.Table) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warnf("failed to close workbook %s", path)
		}
	}()

	sheet := f.GetSheetName(0)

	for i, col := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("failed to write header cell %s: %w", cell, err)
		}
	}

	for r, row := range t.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	return nil
}

// ReadTable deserializes the workbook at path back into a table. The first
// sheet is the artifact; other sheets are ignored.
func ReadTable(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warnf("failed to close workbook %s", path)
		}
	}()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %s has no header row", path)
	}

	t := table.New(rows[0]...)
	for _, row := range rows[1:] {
		// excelize drops trailing empty cells, so pad back to the header
		// width before appending.
		for len(row) < len(t.Columns) {
			row = append(row, "")
		}
		if err := t.Append(row...); err != nil {
			return nil, fmt.Errorf("failed to rebuild row from %s: %w", path, err)
		}
	}

	return t, nil
}
