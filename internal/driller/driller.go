// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segmentRegex splits a path segment into its key name and an optional
// explicit array index, e.g. "tags[1]" -> ("tags", 1).
var segmentRegex = regexp.MustCompile(`^([^\[]*)(?:\[(\d+)\])?$`)

// Driller resolves path against the JSON document. Path segments are dotted
// keys; a segment may carry an explicit [n] index. A single-element array is
// drilled through implicitly, so "items.id" finds the id of the only item.
// A multi-element array without an index is returned as the array itself.
// Anything unresolvable returns a non-existent result rather than an error.
func Driller(json string, path string) gjson.Result {
	current := gjson.Parse(json)

	for _, segment := range strings.Split(path, ".") {
		parts := segmentRegex.FindStringSubmatch(segment)
		if parts == nil {
			return gjson.Result{}
		}
		name, index := parts[1], parts[2]

		if name != "" {
			// Implicitly step into a single-element array before keying.
			if current.IsArray() {
				arr := current.Array()
				if len(arr) != 1 {
					return gjson.Result{}
				}
				current = arr[0]
			}
			current = current.Get(name)
			if !current.Exists() {
				return current
			}
		}

		if index != "" {
			i, _ := strconv.Atoi(index)
			arr := current.Array()
			if !current.IsArray() || i >= len(arr) {
				return gjson.Result{}
			}
			current = arr[i]
		}
	}

	// A trailing single-element array collapses to its element.
	if current.IsArray() {
		if arr := current.Array(); len(arr) == 1 {
			return arr[0]
		}
	}

	return current
}
