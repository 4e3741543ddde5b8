// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeHoursAgo(h int) time.Time {
	return time.Now().Add(-time.Duration(h) * time.Hour)
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean stays clean", "2024-01-01", "2024-01-01"},
		{"slash colon question stripped", "a/b:c?", "abc"},
		{"space dot underscore kept", "a b_c.d", "a b_c.d"},
		{"unicode letters kept", "范围2024", "范围2024"},
		{"unicode digits kept", "２０２４年", "２０２４年"},
		{"unicode punctuation stripped", "一月／2024？", "一月2024"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestKey(t *testing.T) {
	key := Key("a/b:c", "d?e")
	assert.Equal(t, "abc_de", key)
	assert.NotContains(t, key, "/")
	assert.NotContains(t, key, ":")
	assert.NotContains(t, key, "?")

	// Deterministic.
	assert.Equal(t, key, Key("a/b:c", "d?e"))
}

func TestKey_NonASCIIRangesStayDistinct(t *testing.T) {
	jan := Key("一月一日", "一月十日")
	feb := Key("二月一日", "二月十日")

	assert.Equal(t, "一月一日_一月十日", jan)
	assert.Equal(t, "二月一日_二月十日", feb)
	assert.NotEqual(t, jan, feb)
}

func TestDir_EnvOverride(t *testing.T) {
	t.Setenv("TSQ_CACHE_DIR", "/tmp/tsq-test-cache")
	dir, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, "/tmp/tsq-test-cache", dir)
}

func TestEnabled(t *testing.T) {
	t.Setenv("TSQ_CACHE", "")
	assert.True(t, Enabled())

	t.Setenv("TSQ_CACHE", "1")
	assert.True(t, Enabled())

	t.Setenv("TSQ_CACHE", "0")
	assert.False(t, Enabled())

	t.Setenv("TSQ_CACHE", "false")
	assert.False(t, Enabled())
}

func TestArtifactPath(t *testing.T) {
	dir := t.TempDir()

	p, exists := ArtifactPath(dir, "2024-01-01", "2024-01-10")
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(dir, "2024-01-01_2024-01-10.xlsx"), p)

	touch(t, dir, "2024-01-01_2024-01-10.xlsx")
	_, exists = ArtifactPath(dir, "2024-01-01", "2024-01-10")
	assert.True(t, exists)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, List(dir))

	// Absent directory is an empty slice, not an error.
	assert.Empty(t, List(filepath.Join(dir, "nope")))

	touch(t, dir, "2024-01-01_2024-01-10.xlsx")
	touch(t, dir, "2024-02-01_2024-02-10.xlsx")
	touch(t, dir, "notes.txt") // not an artifact

	names := List(dir)
	assert.Len(t, names, 2)
	assert.NotContains(t, names, "notes.txt")
}

func TestClear_Pattern(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2024-01-01_2024-01-10.xlsx")
	touch(t, dir, "2024-01-15_2024-01-20.xlsx")
	touch(t, dir, "2024-02-01_2024-02-10.xlsx")

	removed := Clear(dir, "2024-01")
	assert.Len(t, removed, 2)

	names := List(dir)
	require.Len(t, names, 1)
	assert.Equal(t, "2024-02-01_2024-02-10.xlsx", names[0])
}

func TestClear_All(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a_b.xlsx")
	touch(t, dir, "c_d.xlsx")

	removed := Clear(dir, "")
	assert.Len(t, removed, 2)
	assert.Empty(t, List(dir))
}

func TestPurge(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "old_old.xlsx")
	touch(t, dir, "new_new.xlsx")

	// Backdate one artifact beyond the purge horizon.
	old := filepath.Join(dir, "old_old.xlsx")
	stale := timeHoursAgo(48)
	require.NoError(t, os.Chtimes(old, stale, stale))

	require.NoError(t, Purge(dir, 24))

	names := List(dir)
	require.Len(t, names, 1)
	assert.Equal(t, "new_new.xlsx", names[0])

	// hours <= 0 is a no-op.
	require.NoError(t, Purge(dir, 0))
	assert.Len(t, List(dir), 1)
}
