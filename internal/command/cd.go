// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/tsqgo/internal/cacheutil"
	"github.com/staranto/tsqgo/internal/diff"
	"github.com/staranto/tsqgo/internal/meta"
)

// CdCommandAction is the action handler for the "cd" subcommand. It compares
// two cached artifacts and prints the delta between their row sets.
func CdCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "cd") {
		return nil
	}

	args := cmd.Args().Slice()
	if len(args) < 2 {
		return errors.New("cd requires two artifacts to compare")
	}

	dir, err := ResolveCacheDir(cmd)
	if err != nil {
		return err
	}

	leftPath := resolveArtifact(dir, args[0])
	rightPath := resolveArtifact(dir, args[1])
	log.Debugf("diffing %s against %s", leftPath, rightPath)

	delta, modified, err := diff.Artifacts(leftPath, rightPath, cmd.Bool("color"))
	if err != nil {
		return err
	}

	if !modified {
		log.Infof("%s and %s hold identical data", args[0], args[1])
		return nil
	}

	fmt.Fprint(os.Stdout, delta)
	return nil
}

// resolveArtifact turns a cd argument into an artifact path. A name that
// exists as given is used verbatim, anything else is resolved against the
// cache directory with the artifact extension appended if missing.
func resolveArtifact(dir, name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	if !strings.HasSuffix(name, cacheutil.Ext) {
		name += cacheutil.Ext
	}
	return filepath.Join(dir, name)
}

// CdCommandBuilder constructs the cli.Command for "cd", wiring metadata,
// flags, and action/validator handlers.
func CdCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	ccb := CacheCommandBuilder{
		Name:      "cd",
		Usage:     "cache diff",
		UsageText: `tsq cd <artifact> <artifact> [options]`,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := CdCommandValidator(ctx, c); err != nil {
				return err
			}
			return CdCommandAction(ctx, c)
		},
		Meta: meta,
	}
	return ccb.Build()
}

// CdCommandValidator performs validation for "cd" and delegates to
// GlobalFlagsValidator.
func CdCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
