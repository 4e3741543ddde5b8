// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package s3 implements a source querier backed by a CSV object in S3. The
// object's first record is the header; rows are kept when their time column
// falls inside the requested range. Time text is compared lexicographically,
// which is exact for ISO-style timestamps and otherwise as opaque as the
// rest of the system treats it.
package s3

import (
	"context"
	"encoding/csv"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/apex/log"
	awsx "github.com/staranto/tsqgo/internal/aws"
	"github.com/staranto/tsqgo/internal/table"
)

// ObjectGetter is the slice of the S3 API this source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// Source queries a single CSV object for rows inside a time range.
type Source struct {
	Client ObjectGetter
	Bucket string
	Key    string
	// TimeColumn names the column carrying the range text. Empty means the
	// first column.
	TimeColumn string
}

// New builds a Source with a real S3 client from the ambient AWS config.
func New(ctx context.Context, bucket, key, timeColumn, region, profile string) (*Source, error) {
	var opts []awsx.Option
	if region != "" {
		opts = append(opts, awsx.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, awsx.WithProfile(profile))
	}

	cfg, err := awsx.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Source{
		Client:     awsx.NewS3(cfg),
		Bucket:     bucket,
		Key:        key,
		TimeColumn: timeColumn,
	}, nil
}

// Query implements source.Querier.
func (s *Source) Query(ctx context.Context, start, end string) (*table.Table, error) {
	out, err := s.Client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(s.Bucket),
		Key:    awsv2.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	defer func() {
		if err := out.Body.Close(); err != nil {
			log.WithError(err).Warnf("failed to close body of s3://%s/%s", s.Bucket, s.Key)
		}
	}()

	records, err := csv.NewReader(out.Body).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse s3://%s/%s as CSV: %w", s.Bucket, s.Key, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("s3://%s/%s has no header record", s.Bucket, s.Key)
	}

	header := records[0]
	timeIdx := 0
	if s.TimeColumn != "" {
		timeIdx = -1
		for i, col := range header {
			if col == s.TimeColumn {
				timeIdx = i
				break
			}
		}
		if timeIdx < 0 {
			return nil, fmt.Errorf("time column %q not found in s3://%s/%s", s.TimeColumn, s.Bucket, s.Key)
		}
	}

	t := table.New(header...)
	for _, record := range records[1:] {
		if timeIdx >= len(record) {
			continue
		}
		ts := record[timeIdx]
		if ts < start || ts > end {
			continue
		}
		if err := t.Append(record...); err != nil {
			return nil, err
		}
	}

	rows, cols := t.Shape()
	log.Infof("s3 query s3://%s/%s produced shape (%d, %d)", s.Bucket, s.Key, rows, cols)
	return t, nil
}
