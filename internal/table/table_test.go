// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	tbl := New("date", "value")
	require.NoError(t, tbl.Append("2024-01-01", "100"))
	assert.Error(t, tbl.Append("2024-01-02"), "short row must be rejected")
	rows, cols := tbl.Shape()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 2, cols)
}

func TestEmpty(t *testing.T) {
	var nilTable *Table
	assert.True(t, nilTable.Empty())
	assert.True(t, New("a").Empty())

	tbl := New("a")
	require.NoError(t, tbl.Append("x"))
	assert.False(t, tbl.Empty())
}

func TestRecords(t *testing.T) {
	tbl := New("date", "value", "category")
	require.NoError(t, tbl.Append("2024-01-01", "512", "A"))
	require.NoError(t, tbl.Append("2024-01-02", "217", "B"))

	recs := tbl.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "512", recs[0]["value"])
	assert.Equal(t, "B", recs[1]["category"])
}

func TestRecords_RaggedRow(t *testing.T) {
	tbl := New("a", "b")
	tbl.Rows = append(tbl.Rows, []string{"only"})

	recs := tbl.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "only", recs[0]["a"])
	assert.Equal(t, "", recs[0]["b"])
}

func TestMarshalRecords(t *testing.T) {
	tbl := New("name")
	require.NoError(t, tbl.Append("alpha"))

	b, err := tbl.MarshalRecords()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"alpha"}]`, string(b))

	empty, err := New("name").MarshalRecords()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))
}

func TestEqual(t *testing.T) {
	a := New("x", "y")
	require.NoError(t, a.Append("1", "2"))

	b := New("x", "y")
	require.NoError(t, b.Append("1", "2"))
	assert.True(t, a.Equal(b))

	require.NoError(t, b.Append("3", "4"))
	assert.False(t, a.Equal(b))

	c := New("x", "z")
	require.NoError(t, c.Append("1", "2"))
	assert.False(t, a.Equal(c))
}
