// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output turns query and cache-listing row records into the
// requested rendering: raw, json, yaml or a lipgloss text table, after
// filtering, transforming and sorting them.
package output
