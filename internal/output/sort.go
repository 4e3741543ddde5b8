// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"sort"
	"strconv"
	"strings"
)

// SortDataset sorts the dataset in place according to spec. The spec is a
// comma-separated list of keys. A leading - sorts that key descending and a
// leading ! makes the comparison case-sensitive. Values that parse as
// numbers are compared numerically.
func SortDataset(dataset []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}

	keys := strings.Split(spec, ",")

	sort.SliceStable(dataset, func(i, j int) bool {
		for _, key := range keys {
			key = strings.TrimSpace(key)

			descending := strings.HasPrefix(key, "-")
			key = strings.TrimPrefix(key, "-")

			caseSensitive := strings.HasPrefix(key, "!")
			key = strings.TrimPrefix(key, "!")

			c := compareValues(dataset[i][key], dataset[j][key], caseSensitive)
			if c == 0 {
				continue
			}

			if descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// compareValues compares two values, numerically when both parse as floats,
// otherwise as strings.
func compareValues(a, b interface{}, caseSensitive bool) int {
	af, aok := toFloat64(a)
	bf, bok := toFloat64(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as := InterfaceToString(a)
	bs := InterfaceToString(b)
	if !caseSensitive {
		as = strings.ToLower(as)
		bs = strings.ToLower(bs)
	}

	return strings.Compare(as, bs)
}

func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
