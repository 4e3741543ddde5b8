// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/tsqgo/internal/cacheutil"
	"github.com/staranto/tsqgo/internal/meta"
)

// CcCommandAction is the action handler for the "cc" subcommand. It deletes
// cached artifacts matching --pattern, older than --older-than, or all of
// them with --all, and prints the names it removed.
func CcCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "cc") {
		return nil
	}

	dir, err := ResolveCacheDir(cmd)
	if err != nil {
		return err
	}

	if hours := int(cmd.Int("older-than")); hours > 0 {
		log.Debugf("purging artifacts older than %dh from %s", hours, dir)
		return cacheutil.Purge(dir, hours)
	}

	pattern := cmd.String("pattern")
	removed := cacheutil.Clear(dir, pattern)
	for _, name := range removed {
		fmt.Fprintln(os.Stdout, name)
	}
	log.Infof("removed %d cache files from %s", len(removed), dir)

	return nil
}

// CcCommandBuilder constructs the cli.Command for "cc", wiring metadata,
// flags, and action/validator handlers.
func CcCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	ccb := CacheCommandBuilder{
		Name:      "cc",
		Usage:     "cache clear",
		UsageText: `tsq cc [options]`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "pattern",
				Aliases: []string{"p"},
				Usage:   "only clear artifacts whose name contains this text",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			&cli.IntFlag{
				Name:  "older-than",
				Usage: "only clear artifacts older than this many hours",
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "clear every artifact in the cache directory",
				HideDefault: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := CcCommandValidator(ctx, c); err != nil {
				return err
			}
			return CcCommandAction(ctx, c)
		},
		Meta: meta,
	}
	return ccb.Build()
}

// CcCommandValidator requires an explicit selection before anything is
// deleted. A bare `tsq cc` is refused.
func CcCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if cmd.String("pattern") == "" && cmd.Int("older-than") <= 0 && !cmd.Bool("all") {
		return errors.New("cc requires --pattern, --older-than or --all")
	}
	return GlobalFlagsValidator(ctx, cmd)
}
