// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/tsqgo/internal/attrs"
)

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		wantCount int
		want      []Filter
	}{
		{
			name:      "empty spec",
			spec:      "",
			wantCount: 0,
		},
		{
			name:      "single exact match filter",
			spec:      "category=A",
			wantCount: 1,
			want: []Filter{
				{Key: "category", Operand: "=", Target: "A", Negate: false},
			},
		},
		{
			name:      "prefix match filter",
			spec:      "date^2024-01",
			wantCount: 1,
			want: []Filter{
				{Key: "date", Operand: "^", Target: "2024-01", Negate: false},
			},
		},
		{
			name:      "negated exact match",
			spec:      "category!=C",
			wantCount: 1,
			want: []Filter{
				{Key: "category", Operand: "=", Target: "C", Negate: true},
			},
		},
		{
			name:      "substring match filter",
			spec:      "name@2024-01",
			wantCount: 1,
			want: []Filter{
				{Key: "name", Operand: "@", Target: "2024-01", Negate: false},
			},
		},
		{
			name:      "regex match filter",
			spec:      "date/^2024-0[12]",
			wantCount: 1,
			want: []Filter{
				{Key: "date", Operand: "/", Target: "^2024-0[12]", Negate: false},
			},
		},
		{
			name:      "multiple filters",
			spec:      "category=A,date^2024",
			wantCount: 2,
		},
		{
			name:      "invalid filter dropped",
			spec:      "justakey",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFilters(tt.spec)
			assert.Len(t, got, tt.wantCount)
			if tt.want != nil {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBuildFilters_DelimiterOverride(t *testing.T) {
	t.Setenv("TSQ_FILTER_DELIM", ";")

	got := BuildFilters("category=A;date^2024")
	assert.Len(t, got, 2)
}

func buildAttrs(t *testing.T, specs ...string) attrs.AttrList {
	t.Helper()
	var al attrs.AttrList
	for _, s := range specs {
		require.NoError(t, al.Set(s))
	}
	return al
}

const dataset = `[
	{"date": "2024-01-01", "value": "412", "category": "A"},
	{"date": "2024-01-02", "value": "977", "category": "C"},
	{"date": "2024-02-01", "value": "135", "category": "A"}
]`

func TestFilterDataset(t *testing.T) {
	al := buildAttrs(t, "date,value,category")
	candidates := gjson.Parse(dataset)

	tests := []struct {
		name     string
		spec     string
		wantLen  int
		wantDate string
	}{
		{
			name:    "no filters keeps everything",
			spec:    "",
			wantLen: 3,
		},
		{
			name:     "exact match",
			spec:     "category=C",
			wantLen:  1,
			wantDate: "2024-01-02",
		},
		{
			name:    "negated exact match",
			spec:    "category!=A",
			wantLen: 1,
		},
		{
			name:    "prefix match",
			spec:    "date^2024-01",
			wantLen: 2,
		},
		{
			name:    "conjunction",
			spec:    "category=A,date^2024-02",
			wantLen: 1,
		},
		{
			name:    "regex match",
			spec:    "date/0[12]-01$",
			wantLen: 2,
		},
		{
			name:    "no rows match",
			spec:    "category=Z",
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDataset(candidates, al, tt.spec)
			assert.Len(t, got, tt.wantLen)
			if tt.wantDate != "" {
				require.NotEmpty(t, got)
				assert.Equal(t, tt.wantDate, got[0]["date"])
			}
		})
	}
}

func TestFilterDataset_NumericOperands(t *testing.T) {
	al := buildAttrs(t, "name,bytes")
	candidates := gjson.Parse(`[
		{"name": "a_b.xlsx", "bytes": 100},
		{"name": "c_d.xlsx", "bytes": 5000}
	]`)

	got := FilterDataset(candidates, al, "bytes>1000")
	require.Len(t, got, 1)
	assert.Equal(t, "c_d.xlsx", got[0]["name"])

	got = FilterDataset(candidates, al, "bytes<1000")
	require.Len(t, got, 1)
	assert.Equal(t, "a_b.xlsx", got[0]["name"])
}

func TestFilterDataset_UnknownKeyIsSkipped(t *testing.T) {
	al := buildAttrs(t, "date")
	candidates := gjson.Parse(dataset)

	// The bogus filter is reported but doesn't reject rows.
	got := FilterDataset(candidates, al, "nope=1")
	assert.Len(t, got, 3)
}
