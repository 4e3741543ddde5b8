// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package query implements the cached range query: a read-through file
// cache wrapped around a source querier. Results are typed so callers can
// tell "no data" from "source failed" from "cache write failed".
package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"

	"github.com/staranto/tsqgo/internal/cacheutil"
	"github.com/staranto/tsqgo/internal/source"
	"github.com/staranto/tsqgo/internal/table"
	"github.com/staranto/tsqgo/internal/xlsx"
)

// Origin says where a result's table came from.
type Origin string

const (
	OriginCache  Origin = "cache"
	OriginSource Origin = "source"
)

// ErrNoData is returned when the source query succeeds but yields zero
// rows. No artifact is written in that case.
var ErrNoData = errors.New("query returned no data")

// ErrInvalidArgs is returned when a required request field is missing.
var ErrInvalidArgs = errors.New("invalid arguments")

// CacheReadError wraps a corrupt or unreadable artifact. It is recovered
// internally by falling back to the source and only ever surfaces in logs.
type CacheReadError struct {
	Path string
	Err  error
}

func (e *CacheReadError) Error() string {
	return fmt.Sprintf("failed to read cache file %s: %v", e.Path, e.Err)
}

func (e *CacheReadError) Unwrap() error { return e.Err }

// CacheWriteError wraps a failed artifact write. The overall call still
// succeeds; the error rides along on Result.WriteErr.
type CacheWriteError struct {
	Path string
	Err  error
}

func (e *CacheWriteError) Error() string {
	return fmt.Sprintf("failed to write cache file %s: %v", e.Path, e.Err)
}

func (e *CacheWriteError) Unwrap() error { return e.Err }

// SourceError wraps a failed source query.
type SourceError struct {
	Start string
	End   string
	Err   error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source query for %s to %s failed: %v", e.Start, e.End, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Request enumerates exactly the options a query takes. There is no
// pass-through option bag; anything else is a different operation.
type Request struct {
	Start        string
	End          string
	ForceRefresh bool
}

// Result is a successful query outcome.
type Result struct {
	Table  *table.Table
	Origin Origin
	// Path is where the artifact for this range lives (whether or not the
	// write succeeded).
	Path string
	// WriteErr carries a tolerated cache write failure (*CacheWriteError).
	// The table is still valid when it is set.
	WriteErr error
}

// Engine runs cached range queries against one source and one cache
// directory. Single-shot and synchronous; concurrent callers hitting the
// same key race on the artifact file (last writer wins).
type Engine struct {
	Source source.Querier
	Dir    string
}

// New returns an engine over the given source and cache directory.
func New(src source.Querier, dir string) *Engine {
	return &Engine{Source: src, Dir: dir}
}

// Run executes one cached range query.
//
// Cache hit: the artifact exists, deserializes cleanly and ForceRefresh is
// off; the source is never invoked. A corrupt artifact is logged, left in
// place, and treated as a miss; the overwrite after the next successful
// source query is what repairs it. On a miss the source result is written
// back best-effort.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Start == "" || req.End == "" {
		log.Error("query requires both start and end")
		return nil, ErrInvalidArgs
	}

	if err := cacheutil.EnsureDir(e.Dir); err != nil {
		// The read side may still work; the write side will log for itself.
		log.WithError(err).Warnf("failed to create cache directory %s", e.Dir)
	}

	path, exists := cacheutil.ArtifactPath(e.Dir, req.Start, req.End)

	if !req.ForceRefresh && exists && cacheutil.Enabled() {
		t, err := xlsx.ReadTable(path)
		if err == nil {
			rows, cols := t.Shape()
			log.Infof("cache hit %s, shape (%d, %d)", path, rows, cols)
			return &Result{Table: t, Origin: OriginCache, Path: path}, nil
		}
		rerr := &CacheReadError{Path: path, Err: err}
		log.WithError(rerr).Error("falling back to source query")
	}

	log.Infof("querying source for %s to %s", req.Start, req.End)
	t, err := e.Source.Query(ctx, req.Start, req.End)
	if err != nil {
		serr := &SourceError{Start: req.Start, End: req.End, Err: err}
		log.WithError(serr).Error("source query failed")
		return nil, serr
	}

	if t.Empty() {
		log.Warn("query result is empty")
		return nil, ErrNoData
	}

	result := &Result{Table: t, Origin: OriginSource, Path: path}

	if cacheutil.Enabled() {
		if err := xlsx.WriteTable(path, t); err != nil {
			werr := &CacheWriteError{Path: path, Err: err}
			log.WithError(werr).Error("result not cached")
			result.WriteErr = werr
		} else {
			log.Infof("cached result to %s", path)
		}
	}

	return result, nil
}
