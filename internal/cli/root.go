// Package cli provides the command-line interface for synthgen.
package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/synthgen/internal/cli/commands"
	"github.com/leapstack-labs/synthgen/internal/cli/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// generatorCommands own a config section of the same name.
var generatorCommands = map[string]bool{
	"crm":      true,
	"toxicity": true,
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "synthgen",
		Short: "synthgen - synthetic dataset generator",
		Long: `synthgen generates reproducible synthetic datasets for analytics demos.

  crm        healthcare CRM clients with a churn flag
  toxicity   supervisor toxicity and employee KPIs, with charts

Settings come from synthgen.yaml, SYNTHGEN_* environment variables and flags,
in increasing order of precedence.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			section := ""
			if generatorCommands[cmd.Name()] {
				section = cmd.Name()
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Flags(), section)
			if err != nil {
				return err
			}

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg).With(
				"run_id", uuid.NewString(),
				"command", cmd.Name(),
			)
			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./synthgen.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format (text|json)")
	rootCmd.PersistentFlags().StringP("output", "o", config.DefaultOutput, "Output format (auto|text|markdown)")
	rootCmd.PersistentFlags().String("duckdb", "", "Also load the generated table into this DuckDB database")
	rootCmd.PersistentFlags().String("delimiter", config.DefaultDelimiter, "Field delimiter of the written file")

	// Register completion for enumerated flags
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputAuto, config.OutputText, config.OutputMarkdown}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.LogFormatText, config.LogFormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewCRMCommand())
	rootCmd.AddCommand(commands.NewToxicityCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
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
		Long: `Generate shell completion scripts for synthgen.

To load completions:

Bash:
  $ source <(synthgen completion bash)

Zsh:
  $ synthgen completion zsh > "${fpath[1]}/_synthgen"

Fish:
  $ synthgen completion fish | source

PowerShell:
  PS> synthgen completion powershell | Out-String | Invoke-Expression
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
