package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nodesetexporter/aliasmap/internal/cli"
	"github.com/nodesetexporter/aliasmap/internal/cli/config"
	"github.com/nodesetexporter/aliasmap/internal/header"
	"github.com/nodesetexporter/aliasmap/internal/nodeids"
)

// sampleRegistry is the registry excerpt used in the generated pages.
const sampleRegistry = `Boolean,1,DataType
FolderType,61,ObjectType
HasComponent,47,ReferenceType
`

// commandIO describes what a command reads and produces.
type commandIO struct {
	Reads   []string
	Writes  []string
	Exit    [][]string
	Details func(w *MarkdownWriter) error
}

// commandDocs holds the hand-written parts of each command page.
var commandDocs = map[string]commandIO{
	"generate": {
		Reads: []string{
			"The registry at " + InlineCode("nodeids_path") + ". See [registry format](/cli/#registry-format).",
		},
		Writes: []string{
			"The header at " + InlineCode("path_to_header") + ", rewritten in full on every run.",
			"The alias preview and a one-line summary, unless " + InlineCode("--quiet") + " is set.",
			"With " + InlineCode("-o json") + " or " + InlineCode("-o yaml") + ", a document with the source, header naming and counts.",
		},
		Exit: [][]string{
			{InlineCode("0"), "Header written"},
			{InlineCode("1"), "Registry missing or malformed; nothing is written"},
		},
		Details: writeGenerateDetails,
	},
	"preview": {
		Reads: []string{
			"The registry at " + InlineCode("nodeids_path") + ".",
		},
		Writes: []string{
			"Every DataType and ReferenceType row with its alias and " + InlineCode("i=") + " node id. No file is written.",
		},
		Exit: [][]string{
			{InlineCode("0"), "Registry parsed"},
			{InlineCode("1"), "Registry missing or malformed"},
		},
	},
	"check": {
		Reads: []string{
			"The registry at " + InlineCode("nodeids_path") + ".",
			"The header at " + InlineCode("path_to_header") + ", compared byte for byte with a fresh rendering.",
		},
		Writes: []string{
			"The registry and header paths and the verdict. No file is written.",
			"With " + InlineCode("-o json") + " or " + InlineCode("-o yaml") + ", a document with " + InlineCode("up_to_date") + ".",
		},
		Exit: [][]string{
			{InlineCode("0"), "Header matches the registry"},
			{InlineCode("1"), "Header missing or out of date, or the registry could not be read"},
		},
	},
	"watch": {
		Reads: []string{
			"The registry at " + InlineCode("nodeids_path") + ", again after every change once writes settle for " + InlineCode("--debounce") + ".",
		},
		Writes: []string{
			"The header, as " + InlineCode("generate") + " does, once at start and after each change.",
			"A line per regeneration. A failed regeneration is reported and the previous header is left in place.",
		},
		Exit: [][]string{
			{InlineCode("0"), "Stopped with Ctrl+C or SIGTERM"},
			{InlineCode("1"), "The watcher could not start"},
		},
	},
}

// generateCLIDocs generates the CLI reference from the cobra command tree.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()

	if err := writePage(outDir, "index", cliIndex(rootCmd)); err != nil {
		return err
	}

	for _, cmd := range rootCmd.Commands() {
		if skipCommand(cmd) {
			continue
		}
		w, err := commandPage(cmd)
		if err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		if err := writePage(outDir, cmd.Name(), w); err != nil {
			return err
		}
	}

	return nil
}

func writePage(outDir, name string, w *MarkdownWriter) error {
	if err := os.WriteFile(filepath.Join(outDir, name+".md"), w.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s.md: %w", name, err)
	}
	log.Printf("  Generated %s.md", name)
	return nil
}

// cliIndex builds the overview page.
func cliIndex(rootCmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for aliasmap")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("aliasmap reads the node id registry (" + InlineCode(config.DefaultNodeIDsPath) +
		") and writes the nodesetexporter alias table header (" + InlineCode(config.DefaultHeaderPath) +
		"). Without a command it runs " + InlineCode("generate") + ".")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range rootCmd.Commands() {
		if skipCommand(cmd) {
			continue
		}
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Registry format")
	w.Paragraph("Each row holds three fields in order: alias, numeric node id and category. " +
		"Rows with category " + InlineCode(nodeids.DataType.String()) + " or " +
		InlineCode(nodeids.ReferenceType.String()) + " go into the header; every other category is skipped.")
	w.BulletList([]string{
		InlineCode("--header-row detect") + " drops the first row only when it names the columns (" + InlineCode("Alias,NodeId,TypeOfData") + ").",
		InlineCode("--header-row skip") + " always drops it, " + InlineCode("--header-row none") + " never does.",
		InlineCode("--delimiter") + " takes a single character or " + InlineCode("tab") + ".",
		InlineCode("--validate-node-ids") + " rejects node ids that are not unsigned 32-bit integers.",
		"A row without exactly three fields, or with an empty alias or node id, fails the run. Every bad row is listed and nothing is written.",
	})
	w.CodeBlock("csv", sampleRegistry)

	w.Header(2, "Global Options")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph("Flags override " + InlineCode(config.EnvPrefix) + " variables, which override the config file.")
	var envRows [][]string
	for _, f := range configFields() {
		envRows = append(envRows, []string{InlineCode(envName(f.Key)), InlineCode(f.Key)})
	}
	w.Table([]string{"Variable", "Config key"}, envRows)

	return w
}

// commandPage builds the page for one command.
func commandPage(cmd *cobra.Command) (*MarkdownWriter, error) {
	w := NewMarkdownWriter()

	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	useLine := cmd.UseLine()
	if !strings.HasPrefix(useLine, "aliasmap") {
		useLine = "aliasmap " + useLine
	}
	w.CodeBlock("bash", useLine)

	if len(cmd.Aliases) > 0 {
		var aliases []string
		for _, alias := range cmd.Aliases {
			aliases = append(aliases, InlineCode(alias))
		}
		w.Paragraph("Aliases: " + strings.Join(aliases, ", "))
	}

	if doc, ok := commandDocs[cmd.Name()]; ok {
		w.Header(2, "Input")
		w.BulletList(doc.Reads)

		w.Header(2, "Output")
		w.BulletList(doc.Writes)

		if doc.Details != nil {
			if err := doc.Details(w); err != nil {
				return nil, err
			}
		}

		w.Header(2, "Exit status")
		w.Table([]string{"Code", "Meaning"}, doc.Exit)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}

	return w, nil
}

// writeGenerateDetails documents the derived naming and renders the
// header produced by the sample registry.
func writeGenerateDetails(w *MarkdownWriter) error {
	w.Header(2, "Include guard and namespace")
	w.Paragraph("Both come from the header file name up to its first dot. " +
		"The guard is the name upper-cased; the namespace is the name lower-cased with underscores removed.")

	var rows [][]string
	for _, path := range []string{config.DefaultHeaderPath, "include/Some_Output.h", "aliases.gen.h"} {
		n := header.DeriveNaming(path)
		rows = append(rows, []string{InlineCode(path), InlineCode(n.Guard + "_H"), InlineCode(n.Namespace)})
	}
	w.Table([]string{"Header path", "Guard", "Namespace"}, rows)

	records, err := nodeids.Parse(strings.NewReader(sampleRegistry), nodeids.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to parse sample registry: %w", err)
	}

	w.Header(2, "Sample header")
	w.Paragraph("Generated from the registry excerpt on the [index page](/cli/#registry-format):")
	w.CodeBlock("cpp", string(header.Bytes(header.Build(records, header.DeriveNaming(config.DefaultHeaderPath)))))
	return nil
}

// skipCommand reports whether cmd is left out of the reference.
func skipCommand(cmd *cobra.Command) bool {
	return cmd.Hidden || cmd.Name() == "help" || cmd.Name() == cobra.ShellCompRequestCmd
}

// writeFlagsTable writes a table of the visible flags in flags.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = InlineCode("-" + f.Shorthand)
		}
		def := f.DefValue
		if def != "" && f.Value.Type() != "bool" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

// dedent strips the indentation shared by every non-blank line.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return strings.TrimSpace(s)
	}
	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimSpace(line)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
