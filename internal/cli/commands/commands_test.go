package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nodesetexporter/aliasmap/internal/cli/config"
	"github.com/nodesetexporter/aliasmap/internal/cli/output"
	clitest "github.com/nodesetexporter/aliasmap/internal/cli/testutil"
	"github.com/nodesetexporter/aliasmap/internal/generator"
	"github.com/nodesetexporter/aliasmap/internal/nodeids"
	"github.com/nodesetexporter/aliasmap/internal/testutil"
)

// testConfig returns a config pointing at the sample registry in a fresh
// directory, and the header path it will write.
func testConfig(t *testing.T, format string) (*config.Config, string) {
	t.Helper()
	dir := clitest.SetupTestRegistry(t)

	cfg := config.Default()
	cfg.NodeIDsPath = filepath.Join(dir, "NodeIds.csv")
	cfg.HeaderPath = filepath.Join(dir, "DatatypeAliases.h")
	cfg.OutputFormat = format
	return cfg, cfg.HeaderPath
}

// execute runs cmd in-process with cfg in its context.
func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config) (stdout, stderr string, err error) {
	t.Helper()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	ctx := config.NewContext(context.Background(), cfg, testutil.NewTestLogger(t))
	err = cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{cmd: NewGenerateCommand(), use: "generate"},
		{cmd: NewPreviewCommand(), use: "preview"},
		{cmd: NewCheckCommand(), use: "check"},
		{cmd: NewWatchCommand(), use: "watch", flags: []string{"debounce"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Example, "Example should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}

	assert.Contains(t, NewGenerateCommand().Aliases, "gen")
}

func TestGenerate_Markdown(t *testing.T) {
	cfg, headerPath := testConfig(t, "markdown")

	stdout, _, err := execute(t, NewGenerateCommand(), cfg)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Path to NodeIds.csv file - "+cfg.NodeIDsPath+"\n")
	assert.Contains(t, stdout, "Path to output header file - "+headerPath+"\n")
	assert.Contains(t, stdout, "## "+previewTitle)
	assert.Contains(t, stdout, "i=1")
	assert.Contains(t, stdout, "HasComponent")
	assert.NotContains(t, stdout, "FolderType")
	assert.Contains(t, stdout, "3 data types, 4 reference types, 2 other rows skipped")
	assert.Contains(t, stdout, "**Wrote "+headerPath+" (3 data types, 4 reference types)**")
	clitest.AssertNoANSI(t, stdout)
	clitest.AssertValidMarkdown(t, stdout)

	got := testutil.ReadFile(t, headerPath)
	assert.Contains(t, got, "#ifndef NODESETEXPORTER_COMMON_DATATYPEALIASES_H")
	assert.Contains(t, got, "\t{1, \"Boolean\"}, // DataType\n")
	assert.Contains(t, got, "\t{47, \"HasComponent\"}, // ReferenceType\n")
	assert.NotContains(t, got, "i=")
	assert.NotContains(t, got, "FolderType")
}

func TestGenerate_SecondRunUnchanged(t *testing.T) {
	cfg, headerPath := testConfig(t, "markdown")

	_, _, err := execute(t, NewGenerateCommand(), cfg)
	require.NoError(t, err)
	first := testutil.ReadFile(t, headerPath)

	stdout, _, err := execute(t, NewGenerateCommand(), cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, ", unchanged**")
	assert.Equal(t, first, testutil.ReadFile(t, headerPath))
}

func TestGenerate_Quiet(t *testing.T) {
	cfg, headerPath := testConfig(t, "markdown")
	cfg.Quiet = true

	stdout, _, err := execute(t, NewGenerateCommand(), cfg)
	require.NoError(t, err)

	assert.NotContains(t, stdout, previewTitle)
	assert.NotContains(t, stdout, "i=1")
	assert.Contains(t, stdout, "Wrote "+headerPath)
	assert.FileExists(t, headerPath)
}

func TestGenerate_Text(t *testing.T) {
	cfg, _ := testConfig(t, "text")

	stdout, _, err := execute(t, NewGenerateCommand(), cfg)
	require.NoError(t, err)

	assert.Contains(t, stdout, previewTitle)
	assert.Contains(t, stdout, "┌")
	assert.Contains(t, stdout, "Boolean")
	assert.Contains(t, stdout, "i=47")
	assert.NotContains(t, stdout, "i=2253")
	assert.Contains(t, stdout, "✓ Wrote")
	// not a terminal, so no color even in text mode
	clitest.AssertNoANSI(t, stdout)
}

func TestGenerate_JSON(t *testing.T) {
	cfg, headerPath := testConfig(t, "json")

	stdout, stderr, err := execute(t, NewGenerateCommand(), cfg)
	require.NoError(t, err)

	var doc output.GenerateOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))

	assert.Equal(t, cfg.NodeIDsPath, doc.Source)
	assert.Equal(t, headerPath, doc.Header.Path)
	assert.Equal(t, "NODESETEXPORTER_COMMON_DATATYPEALIASES", doc.Header.Guard)
	assert.Equal(t, "nodesetexporter::datatypealiases", doc.Header.Namespace)
	assert.True(t, doc.Header.Changed)
	assert.Positive(t, doc.Header.Bytes)
	assert.Equal(t, output.PreviewSummary{Records: 9, DataTypes: 3, ReferenceTypes: 4, Other: 2}, doc.Summary)
	require.Len(t, doc.Entries, 7)
	assert.Equal(t, output.PreviewEntry{Alias: "Boolean", NodeID: "i=1", TypeOfData: "DataType", Line: 1}, doc.Entries[0])

	// progress lines move to stderr so stdout stays a single document
	assert.Contains(t, stderr, "Path to NodeIds.csv file - ")
	assert.Contains(t, stderr, "Path to output header file - ")
}

func TestGenerate_ValidationErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.NodeIDsPath = testutil.WriteRegistry(t, dir, "Boolean,1,DataType", ",2,DataType", "Byte,3")
	cfg.HeaderPath = filepath.Join(dir, "DatatypeAliases.h")
	cfg.OutputFormat = "markdown"

	_, _, err := execute(t, NewGenerateCommand(), cfg)
	require.Error(t, err)

	var verr *nodeids.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Rows, 2)
	assert.NoFileExists(t, cfg.HeaderPath)
}

func TestGenerate_MissingRegistry(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.NodeIDsPath = filepath.Join(dir, "missing.csv")
	cfg.HeaderPath = filepath.Join(dir, "DatatypeAliases.h")

	_, _, err := execute(t, NewGenerateCommand(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.NoFileExists(t, cfg.HeaderPath)
}

func TestPreview(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		cfg, headerPath := testConfig(t, "markdown")

		stdout, _, err := execute(t, NewPreviewCommand(), cfg)
		require.NoError(t, err)

		assert.Contains(t, stdout, "Path to NodeIds.csv file - ")
		assert.NotContains(t, stdout, "Path to output header file")
		assert.Contains(t, stdout, "| --- |")
		assert.Contains(t, stdout, "References")
		assert.NoFileExists(t, headerPath)
	})

	t.Run("yaml", func(t *testing.T) {
		cfg, headerPath := testConfig(t, "yaml")

		stdout, _, err := execute(t, NewPreviewCommand(), cfg)
		require.NoError(t, err)

		var doc output.PreviewOutput
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
		assert.Equal(t, cfg.NodeIDsPath, doc.Source)
		require.Len(t, doc.Entries, 7)
		assert.Equal(t, "i=47", doc.Entries[6].NodeID)
		assert.Equal(t, "ReferenceType", doc.Entries[6].TypeOfData)
		assert.Equal(t, 2, doc.Summary.Other)
		assert.NoFileExists(t, headerPath)
	})

	t.Run("empty registry", func(t *testing.T) {
		dir := t.TempDir()
		cfg := config.Default()
		cfg.NodeIDsPath = testutil.WriteRegistry(t, dir)
		cfg.HeaderPath = filepath.Join(dir, "Out.h")
		cfg.OutputFormat = "markdown"

		stdout, _, err := execute(t, NewPreviewCommand(), cfg)
		require.NoError(t, err)
		assert.Contains(t, stdout, "_No data type or reference type rows._")
	})
}

func TestCheck(t *testing.T) {
	t.Run("missing header is stale", func(t *testing.T) {
		cfg, headerPath := testConfig(t, "markdown")

		stdout, _, err := execute(t, NewCheckCommand(), cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, generator.ErrStale))
		assert.Contains(t, stdout, "**Header:** "+headerPath+"\n")
		assert.Contains(t, stdout, "> **Error:** "+headerPath+" is out of date")
		assert.NoFileExists(t, headerPath)
	})

	t.Run("up to date after generate", func(t *testing.T) {
		cfg, headerPath := testConfig(t, "markdown")
		_, _, err := execute(t, NewGenerateCommand(), cfg)
		require.NoError(t, err)

		stdout, _, err := execute(t, NewCheckCommand(), cfg)
		require.NoError(t, err)
		assert.Contains(t, stdout, headerPath+" is up to date")
	})

	t.Run("edited header is stale", func(t *testing.T) {
		cfg, headerPath := testConfig(t, "json")
		_, _, err := execute(t, NewGenerateCommand(), cfg)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(headerPath, []byte("// edited\n"), 0o600))

		stdout, _, err := execute(t, NewCheckCommand(), cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, generator.ErrStale))

		var doc output.CheckOutput
		require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
		assert.False(t, doc.UpToDate)
		assert.Equal(t, headerPath, doc.Header)
	})
}

func TestCheck_TextFailure(t *testing.T) {
	cfg, headerPath := testConfig(t, "text")
	tr := clitest.NewTestRendererText()
	cc := &CommandContext{Cfg: cfg, Logger: testutil.NewTestLogger(t), Renderer: tr.Renderer}

	err := runCheck(context.Background(), cc)
	require.ErrorIs(t, err, generator.ErrStale)
	assert.Contains(t, tr.Output(), output.IconFailure+" "+headerPath+" is out of date")
	assert.Contains(t, tr.Output(), "Registry: "+cfg.NodeIDsPath)
	assert.Empty(t, tr.ErrorOutput())
}

func TestGeneratorConfig(t *testing.T) {
	cfg := config.Default()
	cfg.NodeIDsPath = "schema/NodeIds.csv"
	cfg.HeaderPath = "include/Aliases.h"
	cfg.ValidateNodeIDs = true
	logger := testutil.NewTestLogger(t)

	var called bool
	gc := generatorConfig(cfg, logger, func(nodeids.RecordSet) { called = true })

	assert.Equal(t, "schema/NodeIds.csv", gc.SourcePath)
	assert.Equal(t, "include/Aliases.h", gc.HeaderPath)
	assert.Equal(t, nodeids.Options{Delimiter: ',', Header: nodeids.HeaderDetect, ValidateNodeIDs: true}, gc.Parse)
	assert.Same(t, logger, gc.Logger)
	require.NotNil(t, gc.OnParsed)
	gc.OnParsed(nil)
	assert.True(t, called)
}

func TestOutputModes(t *testing.T) {
	tests := []struct {
		name     string
		renderer func() *clitest.TestRenderer
		mode     output.OutputMode
		preview  func(t *testing.T, stdout, stderr string)
		generate func(t *testing.T, stdout, stderr string)
	}{
		{
			name:     "auto",
			renderer: clitest.NewTestRendererAuto,
			mode:     output.ModeAuto,
			preview: func(t *testing.T, stdout, stderr string) {
				assert.Contains(t, stdout, "## "+previewTitle)
				assert.Empty(t, stderr)
			},
			generate: func(t *testing.T, stdout, stderr string) {
				assert.Contains(t, stdout, "**Wrote ")
				assert.Empty(t, stderr)
			},
		},
		{
			name:     "text",
			renderer: clitest.NewTestRendererText,
			mode:     output.ModeText,
			preview: func(t *testing.T, stdout, stderr string) {
				assert.Contains(t, stdout, previewTitle)
				assert.Contains(t, stdout, "┌")
				assert.Empty(t, stderr)
			},
			generate: func(t *testing.T, stdout, stderr string) {
				assert.Contains(t, stdout, output.IconSuccess+" Wrote ")
				assert.Empty(t, stderr)
			},
		},
		{
			name:     "markdown",
			renderer: clitest.NewTestRendererMarkdown,
			mode:     output.ModeMarkdown,
			preview: func(t *testing.T, stdout, stderr string) {
				assert.Contains(t, stdout, "| --- |")
				clitest.AssertValidMarkdown(t, stdout)
				assert.Empty(t, stderr)
			},
			generate: func(t *testing.T, stdout, stderr string) {
				assert.Contains(t, stdout, "**Wrote ")
				assert.Empty(t, stderr)
			},
		},
		{
			name:     "json",
			renderer: clitest.NewTestRendererJSON,
			mode:     output.ModeJSON,
			preview: func(t *testing.T, stdout, stderr string) {
				var doc output.PreviewOutput
				require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
				assert.Len(t, doc.Entries, 7)
				assert.Contains(t, stderr, "Path to NodeIds.csv file - ")
			},
			generate: func(t *testing.T, stdout, stderr string) {
				var doc output.GenerateOutput
				require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
				assert.True(t, doc.Header.Changed)
				assert.Contains(t, stderr, "Path to output header file - ")
			},
		},
		{
			name:     "yaml",
			renderer: clitest.NewTestRendererYAML,
			mode:     output.ModeYAML,
			preview: func(t *testing.T, stdout, stderr string) {
				var doc output.PreviewOutput
				require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
				assert.Equal(t, 4, doc.Summary.ReferenceTypes)
				assert.Contains(t, stderr, "Path to NodeIds.csv file - ")
			},
			generate: func(t *testing.T, stdout, stderr string) {
				var doc output.GenerateOutput
				require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
				assert.Equal(t, "nodesetexporter::datatypealiases", doc.Header.Namespace)
				assert.Contains(t, stderr, "Path to output header file - ")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, headerPath := testConfig(t, string(tt.mode))
			tr := tt.renderer()
			cc := &CommandContext{Cfg: cfg, Logger: testutil.NewTestLogger(t), Renderer: tr.Renderer}

			require.NoError(t, runPreview(context.Background(), cc))
			tt.preview(t, tr.Output(), tr.ErrorOutput())
			clitest.AssertOutputMode(t, tr, tt.mode)
			assert.NoFileExists(t, headerPath)

			tr.Reset()
			require.NoError(t, runGenerate(context.Background(), cc))
			tt.generate(t, tr.Output(), tr.ErrorOutput())
			clitest.AssertOutputMode(t, tr, tt.mode)
			assert.FileExists(t, headerPath)
		})
	}
}

func TestWatch_StopsOnCancel(t *testing.T) {
	cfg, headerPath := testConfig(t, "markdown")
	cfg.Quiet = true

	cmd := NewWatchCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{})

	ctx, cancel := context.WithCancel(config.NewContext(context.Background(), cfg, testutil.NewTestLogger(t)))
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(headerPath)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
