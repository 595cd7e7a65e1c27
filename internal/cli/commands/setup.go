package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nodesetexporter/aliasmap/internal/cli/config"
	"github.com/nodesetexporter/aliasmap/internal/cli/output"
	"github.com/nodesetexporter/aliasmap/internal/generator"
	"github.com/nodesetexporter/aliasmap/internal/nodeids"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds a CommandContext from the config and logger that
// the root command stored in cmd's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// NewGenerator creates a generator for the configured registry and header.
// onParsed may be nil.
func (c *CommandContext) NewGenerator(onParsed func(nodeids.RecordSet)) (*generator.Generator, error) {
	return generator.New(generatorConfig(c.Cfg, c.Logger, onParsed))
}

func generatorConfig(cfg *config.Config, logger *slog.Logger, onParsed func(nodeids.RecordSet)) generator.Config {
	return generator.Config{
		SourcePath: cfg.NodeIDsPath,
		HeaderPath: cfg.HeaderPath,
		Parse:      cfg.ParseOptions(),
		Logger:     logger,
		OnParsed:   onParsed,
	}
}

// printPaths prints the registry and header paths in use.
func (c *CommandContext) printPaths() {
	c.Renderer.Status("Path to NodeIds.csv file - %s", c.Cfg.NodeIDsPath)
	c.Renderer.Status("Path to output header file - %s", c.Cfg.HeaderPath)
}
