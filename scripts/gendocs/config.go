package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nodesetexporter/aliasmap/internal/cli/config"
)

// ConfigField represents a configuration key.
type ConfigField struct {
	Key         string
	Type        string
	Default     string
	Description string
}

// configFields mirrors the koanf keys of config.Config.
func configFields() []ConfigField {
	d := config.Default()
	return []ConfigField{
		{Key: "nodeids_path", Type: "string", Default: d.NodeIDsPath, Description: "Path to the NodeIds.csv registry"},
		{Key: "path_to_header", Type: "string", Default: d.HeaderPath, Description: "Path of the generated header; its file name sets the include guard and namespace"},
		{Key: "header_row", Type: "string", Default: d.HeaderRow.String(), Description: "First-row handling: detect, none or skip"},
		{Key: "delimiter", Type: "string", Default: d.Delimiter, Description: "Field delimiter, a single character or `tab`"},
		{Key: "validate_node_ids", Type: "bool", Default: "false", Description: "Reject node ids that are not unsigned 32-bit integers"},
		{Key: "verbose", Type: "bool", Default: "false", Description: "Debug logging on stderr"},
		{Key: "quiet", Type: "bool", Default: "false", Description: "Do not print the alias preview"},
		{Key: "output", Type: "string", Default: d.OutputFormat, Description: "Output format: auto, text, markdown, json or yaml"},
		{Key: "watch.debounce", Type: "duration", Default: d.Watch.Debounce.String(), Description: "Delay before the watch command regenerates after a change"},
	}
}

// envName returns the environment variable for a config key.
func envName(key string) string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "aliasmap configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("aliasmap reads " + InlineCode("aliasmap.yaml") + ", " + InlineCode("aliasmap.yml") +
		" or " + InlineCode("aliasmap.toml") + " from the working directory, or the file given with " +
		InlineCode("--config") + ".")

	headers := []string{"Key", "Type", "Default", "Environment", "Description"}
	var rows [][]string
	for _, f := range configFields() {
		rows = append(rows, []string{
			InlineCode(f.Key),
			f.Type,
			InlineCode(f.Default),
			InlineCode(envName(f.Key)),
			f.Description,
		})
	}
	w.Table(headers, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `nodeids_path: schema/NodeIds.csv
path_to_header: include/DatatypeAliases.h
header_row: detect
validate_node_ids: true
watch:
  debounce: 250ms`)

	log.Printf("  Generated configuration.md")
	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}
