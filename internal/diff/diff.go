// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package diff compares two cached query artifacts and renders the delta.
package diff

import (
	"encoding/json"
	"fmt"

	gojsondiff "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/staranto/tsqgo/internal/table"
	"github.com/staranto/tsqgo/internal/xlsx"
)

// document is the JSON shape handed to the differ. gojsondiff compares
// top-level objects, so the row records are wrapped.
type document struct {
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
}

// Artifacts loads two cached artifacts and returns the rendered delta
// between them. modified is false when the two contain identical data.
func Artifacts(leftPath, rightPath string, coloring bool) (delta string, modified bool, err error) {
	left, err := xlsx.ReadTable(leftPath)
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", leftPath, err)
	}

	right, err := xlsx.ReadTable(rightPath)
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", rightPath, err)
	}

	return Tables(left, right, coloring)
}

// Tables diffs two in-memory tables and renders the delta.
func Tables(left, right *table.Table, coloring bool) (delta string, modified bool, err error) {
	leftBytes, err := json.Marshal(document{Columns: left.Columns, Rows: left.Records()})
	if err != nil {
		return "", false, err
	}

	rightBytes, err := json.Marshal(document{Columns: right.Columns, Rows: right.Records()})
	if err != nil {
		return "", false, err
	}

	d, err := gojsondiff.New().Compare(leftBytes, rightBytes)
	if err != nil {
		return "", false, err
	}

	if !d.Modified() {
		return "", false, nil
	}

	// The ascii formatter walks the left document while applying the delta.
	var leftDoc map[string]interface{}
	if err := json.Unmarshal(leftBytes, &leftDoc); err != nil {
		return "", false, err
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       coloring,
	}

	delta, err = formatter.NewAsciiFormatter(leftDoc, config).Format(d)
	if err != nil {
		return "", false, err
	}

	return delta, true, nil
}
