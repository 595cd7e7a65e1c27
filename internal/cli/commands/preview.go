package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nodesetexporter/aliasmap/internal/cli/output"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show the aliases that would be generated",
		Long: `Parse the node id registry and print every DataType and ReferenceType
row with its alias and node id. Nothing is written.`,
		Example: `  # Preview the default NodeIds.csv
  aliasmap preview

  # Machine-readable preview
  aliasmap preview --nodeids-path schema/NodeIds.csv -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd.Context(), NewCommandContext(cmd))
		},
	}
}

func runPreview(ctx context.Context, cc *CommandContext) error {
	gen, err := cc.NewGenerator(nil)
	if err != nil {
		return err
	}

	records, err := gen.Load(ctx)
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.Structured() {
		return r.Document(output.PreviewOutput{
			Source:  cc.Cfg.NodeIDsPath,
			Entries: previewEntries(records),
			Summary: previewSummary(records),
		})
	}

	r.Status("Path to NodeIds.csv file - %s", cc.Cfg.NodeIDsPath)
	renderPreview(r, records)
	return nil
}
