// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package source defines the collaborator that produces a table for a time
// range, plus the synthetic implementation used when no real data source is
// wired up.
package source

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/staranto/tsqgo/internal/table"
)

// Querier produces a table for a time range. Implementations own the
// interpretation of start/end; the cache layer treats them as opaque text.
type Querier interface {
	Query(ctx context.Context, start, end string) (*table.Table, error)
}

// DateLayout is the bound format the synthetic source accepts.
const DateLayout = "2006-01-02"

// Synthetic generates one row per day between start and end inclusive, with
// a pseudo-random value and category per row. It stands in for a real data
// source and must be replaced in any production use.
type Synthetic struct {
	// Seed fixes the random stream when non-zero. Zero seeds from the clock.
	Seed int64
}

var categories = []string{"A", "B", "C"}

// Query implements Querier. Bounds that do not parse as dates fail; a start
// after the end yields an empty table, not an error.
func (s *Synthetic) Query(ctx context.Context, start, end string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	from, err := time.Parse(DateLayout, strings.TrimSpace(start))
	if err != nil {
		return nil, fmt.Errorf("failed to parse start %q: %w", start, err)
	}
	to, err := time.Parse(DateLayout, strings.TrimSpace(end))
	if err != nil {
		return nil, fmt.Errorf("failed to parse end %q: %w", end, err)
	}

	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec

	t := table.New("date", "value", "category")
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		value := strconv.Itoa(rng.Intn(901) + 100) //nolint:mnd
		category := categories[rng.Intn(len(categories))]
		if err := t.Append(d.Format(DateLayout), value, category); err != nil {
			return nil, err
		}
	}

	rows, cols := t.Shape()
	log.Infof("synthetic query produced shape (%d, %d)", rows, cols)
	return t, nil
}
