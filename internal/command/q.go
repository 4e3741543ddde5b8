// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/tsqgo/internal/meta"
	"github.com/staranto/tsqgo/internal/output"
	"github.com/staranto/tsqgo/internal/query"
	"github.com/staranto/tsqgo/internal/source"
	"github.com/staranto/tsqgo/internal/source/s3"
)

// QCommandAction is the action handler for the "q" subcommand. It runs a
// cached range query for the requested bounds and emits the rows per common
// flags.
func QCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "q") {
		return nil
	}

	args := cmd.Args().Slice()
	if len(args) < 2 {
		return errors.New("q requires <start> and <end> range bounds")
	}
	start, end := args[0], args[1]

	src, err := buildSource(ctx, cmd)
	if err != nil {
		return err
	}

	dir, err := ResolveCacheDir(cmd)
	if err != nil {
		return err
	}

	engine := query.New(src, dir)
	result, err := engine.Run(ctx, query.Request{
		Start:        start,
		End:          end,
		ForceRefresh: cmd.Bool("refresh"),
	})
	if errors.Is(err, query.ErrNoData) {
		log.Warnf("no data for %s to %s", start, end)
		return nil
	}
	if err != nil {
		return err
	}
	log.Debugf("result origin: %s, path: %s", result.Origin, result.Path)

	attrs := BuildAttrs(cmd, strings.Join(result.Table.Columns, ","))
	log.Debugf("attrs: %v", attrs)

	raw, err := result.Table.MarshalRecords()
	if err != nil {
		return fmt.Errorf("failed to marshal result rows: %w", err)
	}
	output.SliceDiceSpit(*bytes.NewBuffer(raw), attrs, cmd, nil)

	return nil
}

// buildSource constructs the querier selected by --source.
func buildSource(ctx context.Context, cmd *cli.Command) (source.Querier, error) {
	switch cmd.String("source") {
	case "s3":
		bucket := cmd.String("bucket")
		object := cmd.String("object")
		if bucket == "" || object == "" {
			return nil, errors.New("the s3 source requires --bucket and --object")
		}
		return s3.New(ctx, bucket, object,
			cmd.String("time-column"),
			cmd.String("region"),
			cmd.String("profile"))
	default:
		return &source.Synthetic{Seed: int64(cmd.Int("seed"))}, nil
	}
}

// QCommandBuilder constructs the cli.Command for "q", wiring metadata,
// flags, and action/validator handlers.
func QCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	ccb := CacheCommandBuilder{
		Name:      "q",
		Usage:     "range query",
		UsageText: `tsq q <start> <end> [options]`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "refresh",
				Aliases:     []string{"r"},
				Usage:       "bypass any cached artifact and query the source",
				HideDefault: true,
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "source to query",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("q.source", altsrc.StringSourcer(meta.Config.Source)),
					yaml.YAML("source", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: "synthetic",
				Validator: func(value string) error {
					return FlagValidators(value, SourceValidator)
				},
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "seed for the synthetic source",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("q.seed", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: 0,
			},
			NameSpacedValueChainFlagFromConfigFile("q", meta.Config.Source,
				&cli.StringFlag{
					Name:    "bucket",
					Usage:   "bucket holding the CSV object for the s3 source",
					Sources: cli.NewValueSourceChain(cli.EnvVar("TSQ_BUCKET")),
				}),
			NameSpacedValueChainFlagFromConfigFile("q", meta.Config.Source,
				&cli.StringFlag{
					Name:    "object",
					Usage:   "CSV object key for the s3 source",
					Sources: cli.NewValueSourceChain(cli.EnvVar("TSQ_OBJECT")),
				}),
			NameSpacedValueChainFlagFromConfigFile("q", meta.Config.Source,
				&cli.StringFlag{
					Name:    "time-column",
					Usage:   "column carrying the range text. Defaults to the first column",
					Sources: cli.NewValueSourceChain(),
				}),
			NameSpacedValueChainFlagFromConfigFile("q", meta.Config.Source,
				&cli.StringFlag{
					Name:    "region",
					Usage:   "AWS region for the s3 source",
					Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_REGION")),
				}),
			NameSpacedValueChainFlagFromConfigFile("q", meta.Config.Source,
				&cli.StringFlag{
					Name:    "profile",
					Usage:   "AWS profile for the s3 source",
					Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
				}),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := QCommandValidator(ctx, c); err != nil {
				return err
			}
			return QCommandAction(ctx, c)
		},
		Meta: meta,
	}
	return ccb.Build()
}

// QCommandValidator performs validation for "q" and delegates to
// GlobalFlagsValidator.
func QCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
