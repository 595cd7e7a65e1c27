package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nodesetexporter/aliasmap/internal/cli/config"
	"github.com/nodesetexporter/aliasmap/internal/generator"
	"github.com/nodesetexporter/aliasmap/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the header whenever the registry changes",
		Long: `Generate the header once, then watch the node id registry and run a
full regeneration after every change. Stop with Ctrl+C.`,
		Example: `  aliasmap watch --nodeids-path schema/NodeIds.csv --debounce 250ms`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), NewCommandContext(cmd))
		},
	}

	cmd.Flags().Duration("debounce", config.DefaultDebounce, "Wait this long for writes to settle before regenerating")

	return cmd
}

func runWatch(ctx context.Context, cc *CommandContext) error {
	gen, err := cc.NewGenerator(nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := cc.Renderer
	cc.printPaths()
	r.Muted("Watching for changes, press Ctrl+C to stop")

	w := watch.New(gen, watch.Config{
		SourcePath: cc.Cfg.NodeIDsPath,
		Debounce:   cc.Cfg.Watch.Debounce,
		Logger:     cc.Logger,
		OnResult: func(res *generator.Result, err error) {
			if err != nil {
				r.Warning(err.Error())
				return
			}
			reportResult(r, res)
		},
	})

	return w.Run(ctx)
}
