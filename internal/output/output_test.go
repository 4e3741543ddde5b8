// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/staranto/tsqgo/internal/attrs"
)

func TestSortDataset(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		dataset []map[string]interface{}
		want    []map[string]interface{}
	}{
		{
			name: "empty spec is a no-op",
			spec: "",
			dataset: []map[string]interface{}{
				{"date": "2024-01-02"},
				{"date": "2024-01-01"},
			},
			want: []map[string]interface{}{
				{"date": "2024-01-02"},
				{"date": "2024-01-01"},
			},
		},
		{
			name: "ascending string sort",
			spec: "date",
			dataset: []map[string]interface{}{
				{"date": "2024-01-03"},
				{"date": "2024-01-01"},
				{"date": "2024-01-02"},
			},
			want: []map[string]interface{}{
				{"date": "2024-01-01"},
				{"date": "2024-01-02"},
				{"date": "2024-01-03"},
			},
		},
		{
			name: "descending sort",
			spec: "-date",
			dataset: []map[string]interface{}{
				{"date": "2024-01-01"},
				{"date": "2024-01-03"},
				{"date": "2024-01-02"},
			},
			want: []map[string]interface{}{
				{"date": "2024-01-03"},
				{"date": "2024-01-02"},
				{"date": "2024-01-01"},
			},
		},
		{
			name: "numeric strings compare numerically",
			spec: "value",
			dataset: []map[string]interface{}{
				{"value": "900"},
				{"value": "1000"},
				{"value": "120"},
			},
			want: []map[string]interface{}{
				{"value": "120"},
				{"value": "900"},
				{"value": "1000"},
			},
		},
		{
			name: "case-insensitive by default",
			spec: "category",
			dataset: []map[string]interface{}{
				{"category": "b"},
				{"category": "A"},
			},
			want: []map[string]interface{}{
				{"category": "A"},
				{"category": "b"},
			},
		},
		{
			name: "case-sensitive with bang",
			spec: "!category",
			dataset: []map[string]interface{}{
				{"category": "b"},
				{"category": "A"},
			},
			want: []map[string]interface{}{
				{"category": "A"},
				{"category": "b"},
			},
		},
		{
			name: "multiple keys",
			spec: "category,-date",
			dataset: []map[string]interface{}{
				{"category": "A", "date": "2024-01-01"},
				{"category": "B", "date": "2024-01-01"},
				{"category": "A", "date": "2024-01-02"},
			},
			want: []map[string]interface{}{
				{"category": "A", "date": "2024-01-02"},
				{"category": "A", "date": "2024-01-01"},
				{"category": "B", "date": "2024-01-01"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortDataset(tt.dataset, tt.spec)
			assert.Equal(t, tt.want, tt.dataset)
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		empty []string
		want  string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "int", value: 42, want: "42"},
		{name: "float truncated", value: 1024.7, want: "1025"},
		{name: "bool", value: true, want: "true"},
		{name: "nil default empty", value: nil, want: ""},
		{name: "nil custom empty", value: nil, empty: []string{"-"}, want: "-"},
		{name: "map marshaled", value: map[string]interface{}{"a": "b"}, want: `{"a":"b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InterfaceToString(tt.value, tt.empty...)
			assert.Equal(t, tt.want, got)
		})
	}
}

// runSpit drives SliceDiceSpit through a real command so that flag values
// resolve the same way they do in production.
func runSpit(t *testing.T, raw string, al attrs.AttrList, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "filter"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "titles"},
			&cli.BoolFlag{Name: "color"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var buf bytes.Buffer
			buf.WriteString(raw)
			SliceDiceSpit(buf, al, cmd, &out)
			return nil
		},
	}

	err := cmd.Run(context.Background(), append([]string{"test"}, args...))
	require.NoError(t, err)

	return out.String()
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	var al attrs.AttrList
	require.NoError(t, al.Set("date,value"))

	raw := `[{"date":"2024-01-02","value":"20"},{"date":"2024-01-01","value":"10"}]`
	got := runSpit(t, raw, al, "--output", "json", "--sort", "date")

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(got), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-01", rows[0]["date"])
}

func TestSliceDiceSpit_Raw(t *testing.T) {
	var al attrs.AttrList
	require.NoError(t, al.Set("date"))

	raw := `[{"date":"2024-01-01"}]`
	got := runSpit(t, raw, al, "--output", "raw")
	assert.Equal(t, raw, got)
}

func TestSliceDiceSpit_Filtered(t *testing.T) {
	var al attrs.AttrList
	require.NoError(t, al.Set("date,category"))

	raw := `[{"date":"2024-01-01","category":"A"},{"date":"2024-01-02","category":"B"}]`
	got := runSpit(t, raw, al, "--output", "json", "--filter", "category=B")

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(got), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-02", rows[0]["date"])
}

func TestSliceDiceSpit_Text(t *testing.T) {
	var al attrs.AttrList
	require.NoError(t, al.Set("date,value"))

	raw := `[{"date":"2024-01-01","value":"412"}]`
	got := runSpit(t, raw, al, "--output", "text", "--titles")

	assert.Contains(t, got, "date")
	assert.Contains(t, got, "2024-01-01")
	assert.Contains(t, got, "412")
}
