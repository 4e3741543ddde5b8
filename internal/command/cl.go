// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/tsqgo/internal/cacheutil"
	"github.com/staranto/tsqgo/internal/meta"
)

// ClCommandAction is the action handler for the "cl" subcommand. It lists
// cached artifacts with their range bounds, size and age, and emits results
// per common flags.
func ClCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "cl") {
		return nil
	}

	dir, err := ResolveCacheDir(cmd)
	if err != nil {
		return err
	}
	log.Debugf("listing cache directory %s", dir)

	attrs := BuildAttrs(cmd, "name,start,end,size,modified")
	log.Debugf("attrs: %v", attrs)

	names := cacheutil.List(dir)

	records := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		records = append(records, artifactRecord(dir, name))
	}

	if err := EmitRecords(records, attrs, cmd); err != nil {
		return err
	}

	return nil
}

// artifactRecord builds the row record for one cached artifact.
func artifactRecord(dir, name string) map[string]interface{} {
	record := map[string]interface{}{
		"name": name,
	}

	// The key is clear-text, so the bounds can usually be read straight back
	// out of the filename. A bound may itself contain an underscore, which
	// makes the key ambiguous; only report bounds when the split is exact.
	key := strings.TrimSuffix(name, cacheutil.Ext)
	if start, end, found := strings.Cut(key, "_"); found && !strings.Contains(end, "_") {
		record["start"] = start
		record["end"] = end
	}

	if info, err := os.Stat(filepath.Join(dir, name)); err == nil {
		record["bytes"] = int(info.Size())
		record["size"] = humanize.Bytes(uint64(info.Size())) //nolint:gosec
		record["modified"] = info.ModTime().Format(time.RFC3339)
		record["age"] = humanize.Time(info.ModTime())
	}

	return record
}

// ClCommandBuilder constructs the cli.Command for "cl", wiring metadata,
// flags, and action/validator handlers.
func ClCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	ccb := CacheCommandBuilder{
		Name:      "cl",
		Usage:     "cache list",
		UsageText: `tsq cl [options]`,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := ClCommandValidator(ctx, c); err != nil {
				return err
			}
			return ClCommandAction(ctx, c)
		},
		Meta: meta,
	}
	return ccb.Build()
}

// ClCommandValidator performs validation for "cl" and delegates to
// GlobalFlagsValidator.
func ClCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
