package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/nodesetexporter/aliasmap/internal/cli/output"
	"github.com/nodesetexporter/aliasmap/internal/generator"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the header matches the registry",
		Long: `Render the header in memory and compare it with the file on disk.
Exits non-zero if the header is missing or out of date. Nothing is written.`,
		Example: `  # Fail a CI job when DatatypeAliases.h needs regenerating
  aliasmap check --path-to-header include/DatatypeAliases.h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), NewCommandContext(cmd))
		},
	}
}

func runCheck(ctx context.Context, cc *CommandContext) error {
	gen, err := cc.NewGenerator(nil)
	if err != nil {
		return err
	}

	_, err = gen.Check(ctx)
	stale := errors.Is(err, generator.ErrStale)
	if err != nil && !stale {
		return err
	}

	r := cc.Renderer
	if r.Structured() {
		if docErr := r.Document(output.CheckOutput{
			Source:   cc.Cfg.NodeIDsPath,
			Header:   cc.Cfg.HeaderPath,
			UpToDate: !stale,
		}); docErr != nil {
			return docErr
		}
		return err
	}

	r.KeyValue("Registry", cc.Cfg.NodeIDsPath)
	r.KeyValue("Header", cc.Cfg.HeaderPath)
	if stale {
		r.Failure(cc.Cfg.HeaderPath + " is out of date, run `aliasmap generate`")
		return err
	}
	r.Success(cc.Cfg.HeaderPath + " is up to date")
	return nil
}
