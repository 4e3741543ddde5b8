// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/urfave/cli/v3"

	"github.com/staranto/tsqgo/internal/attrs"
	"github.com/staranto/tsqgo/internal/cacheutil"
	"github.com/staranto/tsqgo/internal/config"
	"github.com/staranto/tsqgo/internal/meta"
	"github.com/staranto/tsqgo/internal/output"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr tsq <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "tsq", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// EmitRecords marshals row records as JSON and passes them to the common
// output routine.
func EmitRecords(records []map[string]interface{}, al attrs.AttrList, cmd *cli.Command) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	output.SliceDiceSpit(*bytes.NewBuffer(raw), al, cmd, os.Stdout)
	return nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ResolveCacheDir picks the artifact directory for a command.
// Precedence: --cache-dir (which also sources TSQ_CACHE_DIR), the cache.dir
// config key, then the platform default.
func ResolveCacheDir(cmd *cli.Command) (string, error) {
	if dir := cmd.String("cache-dir"); dir != "" {
		return dir, nil
	}
	if dir, err := config.GetString("cache.dir"); err == nil && dir != "" {
		return dir, nil
	}
	if dir, ok := cacheutil.Dir(); ok {
		return dir, nil
	}
	return "", fmt.Errorf("unable to resolve a cache directory")
}

// CacheCommandBuilder constructs a cli.Command for the tsq subcommands using
// a consistent pattern. It accepts the command name, usage text, optional
// UsageText, custom flags, the action handler, and meta. The builder
// automatically wires metadata, adds the tldr flag, applies global flags,
// and sets up validators.
type CacheCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (ccb *CacheCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      ccb.Name,
		Usage:     ccb.Usage,
		UsageText: ccb.UsageText,
		Metadata: map[string]any{
			"meta": ccb.Meta,
		},
		Flags: append(ccb.Flags, append([]cli.Flag{
			tldrFlag,
			NewCacheDirFlag(),
		}, NewGlobalFlags(ccb.Name)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: ccb.Action,
	}
}
