// Package cli provides the command-line interface for aliasmap.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nodesetexporter/aliasmap/internal/cli/commands"
	"github.com/nodesetexporter/aliasmap/internal/cli/config"
)

// Version is set at build time.
var Version = "0.1.0"

// skipsConfig reports whether a command runs without loading configuration.
func skipsConfig(name string) bool {
	switch name {
	case "help", "completion", "version", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "aliasmap",
		Short: "aliasmap - node id alias table generator",
		Long: `aliasmap reads the OPC UA node id registry (NodeIds.csv) and generates
the nodesetexporter C++ header mapping DataType and ReferenceType node ids
to their alias names.

Running aliasmap without a subcommand is the same as aliasmap generate.`,
		Version: Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipsConfig(cmd.Name()) {
				return nil
			}

			// Flags of the executing command include the inherited persistent ones.
			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			if cfg.ConfigFile != "" {
				logger.Debug("using config file", "path", cfg.ConfigFile)
			}

			cmd.SetContext(config.NewContext(cmd.Context(), cfg, logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return commands.RunGenerate(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Node id alias table generator for nodesetexporter
`)

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./aliasmap.yaml, ./aliasmap.yml or ./aliasmap.toml)")
	pf.String("nodeids-path", config.DefaultNodeIDsPath, "Path to the NodeIds.csv registry")
	pf.String("path-to-header", config.DefaultHeaderPath, "Path of the generated header")
	pf.String("header-row", config.DefaultHeaderRow, "First-row handling (detect|none|skip)")
	pf.String("delimiter", config.DefaultDelimiter, `Field delimiter (single character, or "tab")`)
	pf.Bool("validate-node-ids", false, "Reject node ids that are not unsigned 32-bit integers")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.BoolP("quiet", "q", false, "Do not print the alias preview")
	pf.StringP("output", "o", config.DefaultOutput, "Output format (auto|text|markdown|json|yaml)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("header-row", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"detect", "none", "skip"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkPersistentFlagFilename("nodeids-path", "csv", "tsv", "txt")
	_ = rootCmd.MarkPersistentFlagFilename("path-to-header", "h", "hpp")
	_ = rootCmd.MarkPersistentFlagFilename("config", "yaml", "yml", "toml")

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewPreviewCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for aliasmap.

To load completions:

Bash:
  $ source <(aliasmap completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ aliasmap completion bash > /etc/bash_completion.d/aliasmap
  # macOS:
  $ aliasmap completion bash > $(brew --prefix)/etc/bash_completion.d/aliasmap

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ aliasmap completion zsh > "${fpath[1]}/_aliasmap"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ aliasmap completion fish | source

  # To load completions for each session, execute once:
  $ aliasmap completion fish > ~/.config/fish/completions/aliasmap.fish

PowerShell:
  PS> aliasmap completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> aliasmap completion powershell > aliasmap.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
