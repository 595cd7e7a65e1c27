package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nodesetexporter/aliasmap/internal/cli/output"
	"github.com/nodesetexporter/aliasmap/internal/generator"
	"github.com/nodesetexporter/aliasmap/internal/nodeids"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate the alias table header",
		Long: `Read the node id registry and write a C++ header holding the
data_type_aliases and reference_type_aliases lookup tables.

The header is always rewritten in full. Include guard and namespace are
derived from the header file name.`,
		Example: `  # Defaults: NodeIds.csv -> DatatypeAliases.h
  aliasmap generate

  # Explicit paths
  aliasmap generate --nodeids-path schema/NodeIds.csv --path-to-header include/DatatypeAliases.h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunGenerate(cmd)
		},
	}
}

// RunGenerate runs a full generation for cmd. The root command uses it
// when no subcommand is given.
func RunGenerate(cmd *cobra.Command) error {
	return runGenerate(cmd.Context(), NewCommandContext(cmd))
}

func runGenerate(ctx context.Context, cc *CommandContext) error {
	r := cc.Renderer
	showPreview := !cc.Cfg.Quiet

	cc.printPaths()

	var parsed nodeids.RecordSet
	gen, err := cc.NewGenerator(func(records nodeids.RecordSet) {
		parsed = records
		if showPreview {
			renderPreview(r, records)
		}
	})
	if err != nil {
		return err
	}

	res, err := gen.Run(ctx)
	if err != nil {
		return err
	}

	if r.Structured() {
		doc := output.GenerateOutput{
			Source:  res.SourcePath,
			Header:  headerInfo(res),
			Summary: previewSummary(parsed),
		}
		if showPreview {
			doc.Entries = previewEntries(parsed)
		}
		return r.Document(doc)
	}

	reportResult(r, res)
	return nil
}

// reportResult prints the outcome of one generation.
func reportResult(r *output.Renderer, res *generator.Result) {
	msg := fmt.Sprintf("Wrote %s (%d data types, %d reference types)",
		res.HeaderPath, res.Counts.DataTypes, res.Counts.ReferenceTypes)
	if !res.Changed {
		msg += ", unchanged"
	}
	r.Success(msg)
}

func headerInfo(res *generator.Result) output.HeaderInfo {
	return output.HeaderInfo{
		Path:      res.HeaderPath,
		Guard:     res.Naming.Guard,
		Namespace: res.Naming.Namespace,
		Bytes:     res.Bytes,
		Changed:   res.Changed,
	}
}
