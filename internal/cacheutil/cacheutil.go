// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil manages the on-disk cache of query artifacts: key
// derivation, directory resolution, and the list/clear/purge admin actions.
package cacheutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/apex/log"
)

// Ext is the artifact file extension. Only files carrying it are treated as
// cache entries by the admin actions.
const Ext = ".xlsx"

// Dir resolves the base cache directory.
// Precedence:
//  1. TSQ_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/tsq
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("TSQ_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "tsq"), true
	}
	return "", false
}

// Enabled returns true unless TSQ_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("TSQ_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}
	base, ok := Dir()
	if !ok {
		return "", false, nil
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return base, true, nil
}

// EnsureDir creates an explicit cache directory (the --cache-dir flag).
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// Sanitize strips every character outside the filename allow-list: letters
// and digits in any script, space, hyphen, underscore and dot. Letters and
// digits must stay Unicode-aware so distinct non-ASCII ranges keep distinct
// keys.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r),
			r == ' ', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Key derives the cache key for a time range. The key is deterministic and
// clear-text (unlike a hash, a directory listing stays human-readable).
func Key(start, end string) string {
	return Sanitize(start) + "_" + Sanitize(end)
}

// ArtifactPath returns the path where the artifact for the given range
// lives under dir, and whether a file currently exists there.
func ArtifactPath(dir, start, end string) (string, bool) {
	p := filepath.Join(dir, Key(start, end)+Ext)
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// List returns the artifact filenames under dir, sorted by the directory
// order os.ReadDir provides (lexical). An absent directory yields an empty
// slice, not an error.
func List(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		names = append(names, e.Name())
	}
	return names
}

// Clear deletes artifacts under dir. With a non-empty pattern only the
// filenames containing it as a substring are deleted. Each failure is logged
// and does not abort the remaining deletions. Returns the names actually
// removed.
func Clear(dir, pattern string) []string {
	var removed []string

	for _, name := range List(dir) {
		if pattern != "" && !strings.Contains(name, pattern) {
			continue
		}
		p := filepath.Join(dir, name)
		if err := os.Remove(p); err != nil {
			log.WithError(err).Errorf("failed to remove cache file %s", p)
			continue
		}
		log.Infof("removed cache file %s", p)
		removed = append(removed, name)
	}

	return removed
}

// Purge removes artifacts older than the provided number of hours.
// If hours <= 0 it is a no-op. Purge is an admin action; the query path
// never expires entries.
func Purge(dir string, hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}
	maxAge := time.Duration(hours) * time.Hour
	for _, name := range List(dir) {
		p := filepath.Join(dir, name)
		info, err := os.Stat(p)
		if err != nil {
			log.WithError(err).Warnf("failed to stat cache file %s", p)
			continue
		}
		if time.Since(info.ModTime()) <= maxAge {
			continue
		}
		if err := os.Remove(p); err == nil {
			log.Debugf("removed cache file %s", p)
		} else {
			log.WithError(err).Warnf("failed to remove cache file %s", p)
		}
	}
	return nil
}
