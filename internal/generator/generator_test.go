package generator

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodesetexporter/aliasmap/internal/nodeids"
	"github.com/nodesetexporter/aliasmap/internal/testutil"
)

func newGenerator(t *testing.T, source, out string) *Generator {
	t.Helper()
	g, err := New(Config{
		SourcePath: source,
		HeaderPath: out,
		Parse:      nodeids.DefaultOptions(),
		Logger:     testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	return g
}

func TestNew_RequiresPaths(t *testing.T) {
	_, err := New(Config{HeaderPath: "DatatypeAliases.h"})
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = New(Config{SourcePath: "NodeIds.csv"})
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = New(Config{SourcePath: "NodeIds.csv", HeaderPath: "DatatypeAliases.h"})
	require.NoError(t, err)
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteRegistry(t, dir,
		"Boolean,1,DataType",
		"HasComponent,47,ReferenceType",
		"SomeFolder,61,Other",
	)
	out := filepath.Join(dir, "DatatypeAliases.h")

	res, err := newGenerator(t, source, out).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.Equal(t, nodeids.Counts{Total: 3, DataTypes: 1, ReferenceTypes: 1, Other: 1}, res.Counts)
	assert.Equal(t, "NODESETEXPORTER_COMMON_DATATYPEALIASES", res.Naming.Guard)
	assert.Equal(t, "nodesetexporter::datatypealiases", res.Naming.Namespace)

	text := testutil.ReadFile(t, out)
	assert.Equal(t, res.Bytes, len(text))
	assert.Contains(t, text, "data_type_aliases{\n\t{1, \"Boolean\"}, // DataType\n};\n")
	assert.Contains(t, text, "reference_type_aliases{\n\t{47, \"HasComponent\"}, // ReferenceType\n};\n")
	assert.NotContains(t, text, "SomeFolder")
	assert.Equal(t, 2, strings.Count(text, "\t{"))
}

func TestRun_Idempotent(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteFile(t, dir, "NodeIds.csv", testutil.SampleRegistry)
	out := filepath.Join(dir, "DatatypeAliases.h")
	g := newGenerator(t, source, out)

	first, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, first.Changed)
	firstBytes := testutil.ReadFile(t, out)

	second, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Equal(t, firstBytes, testutil.ReadFile(t, out))
}

func TestRun_ReplacesExistingContent(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteRegistry(t, dir, "Boolean,1,DataType")
	out := testutil.WriteFile(t, dir, "DatatypeAliases.h", strings.Repeat("stale content\n", 100))

	res, err := newGenerator(t, source, out).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Changed)

	text := testutil.ReadFile(t, out)
	assert.NotContains(t, text, "stale content")
	assert.True(t, strings.HasPrefix(text, "//\n// This Source Code Form"))
}

func TestRun_EmptyRegistry(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteRegistry(t, dir)
	out := filepath.Join(dir, "DatatypeAliases.h")

	res, err := newGenerator(t, source, out).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Counts.Total)

	text := testutil.ReadFile(t, out)
	assert.Contains(t, text, "data_type_aliases{\n};")
	assert.Contains(t, text, "reference_type_aliases{\n};")
	assert.Contains(t, text, "#ifndef NODESETEXPORTER_COMMON_DATATYPEALIASES_H")
}

func TestRun_MissingSource(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "DatatypeAliases.h")

	_, err := newGenerator(t, filepath.Join(dir, "missing.csv"), out).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "no header should be written")
}

func TestRun_ValidationErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteRegistry(t, dir,
		"Boolean,1,DataType",
		"Broken,2",
	)
	out := testutil.WriteFile(t, dir, "DatatypeAliases.h", "previous\n")

	_, err := newGenerator(t, source, out).Run(context.Background())
	var ve *nodeids.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Rows, 1)
	assert.Equal(t, 2, ve.Rows[0].Line)

	assert.Equal(t, "previous\n", testutil.ReadFile(t, out))
}

func TestRun_UnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteRegistry(t, dir, "Boolean,1,DataType")
	out := filepath.Join(dir, "no-such-dir", "DatatypeAliases.h")

	_, err := newGenerator(t, source, out).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write header")
}

func TestRun_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteRegistry(t, dir, "Boolean,1,DataType")
	out := filepath.Join(dir, "DatatypeAliases.h")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newGenerator(t, source, out).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist))
}

func TestRun_OnParsedSeesAllRecords(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteFile(t, dir, "NodeIds.csv", testutil.SampleRegistry)
	out := filepath.Join(dir, "DatatypeAliases.h")

	var seen nodeids.RecordSet
	g, err := New(Config{
		SourcePath: source,
		HeaderPath: out,
		Parse:      nodeids.DefaultOptions(),
		OnParsed: func(rs nodeids.RecordSet) {
			seen = rs
			// The header is not written until the observer returns.
			_, statErr := os.Stat(out)
			assert.True(t, errors.Is(statErr, fs.ErrNotExist))
		},
	})
	require.NoError(t, err)

	res, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, seen, 9)
	assert.Len(t, seen.Preview(), 7)
	assert.Equal(t, 2, res.Counts.Other)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteFile(t, dir, "NodeIds.csv", testutil.SampleRegistry)
	out := filepath.Join(dir, "DatatypeAliases.h")
	g := newGenerator(t, source, out)

	// No header yet.
	_, err := g.Check(context.Background())
	require.ErrorIs(t, err, ErrStale)

	_, err = g.Run(context.Background())
	require.NoError(t, err)

	res, err := g.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Changed)

	// Registry changes after generation.
	testutil.WriteFile(t, dir, "NodeIds.csv", testutil.SampleRegistry+"Int16,4,DataType\n")
	res, err = g.Check(context.Background())
	require.ErrorIs(t, err, ErrStale)
	assert.True(t, res.Changed)

	// Check never writes.
	assert.NotContains(t, testutil.ReadFile(t, out), "Int16")
}
