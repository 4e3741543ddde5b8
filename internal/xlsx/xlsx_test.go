// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package xlsx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/tsqgo/internal/table"
)

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2024-01-01_2024-01-03.xlsx")

	in := table.New("date", "value", "category")
	require.NoError(t, in.Append("2024-01-01", "412", "A"))
	require.NoError(t, in.Append("2024-01-02", "977", "C"))
	require.NoError(t, in.Append("2024-01-03", "135", "B"))

	require.NoError(t, WriteTable(path, in))

	out, err := ReadTable(path)
	require.NoError(t, err)
	assert.True(t, in.Equal(out), "round trip must preserve content")
}

func TestRoundTrip_EmptyCells(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sparse.xlsx")

	in := table.New("a", "b", "c")
	require.NoError(t, in.Append("x", "", ""))

	require.NoError(t, WriteTable(path, in))

	out, err := ReadTable(path)
	require.NoError(t, err)
	assert.True(t, in.Equal(out), "trailing empties must survive the trip")
}

func TestWriteTable_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "again.xlsx")

	first := table.New("n")
	require.NoError(t, first.Append("1"))
	require.NoError(t, WriteTable(path, first))

	second := table.New("n")
	require.NoError(t, second.Append("2"))
	require.NoError(t, WriteTable(path, second))

	out, err := ReadTable(path)
	require.NoError(t, err)
	assert.True(t, second.Equal(out))
}

func TestReadTable_Corrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a workbook"), 0o600))

	_, err := ReadTable(path)
	assert.Error(t, err)
}

func TestReadTable_Missing(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}
