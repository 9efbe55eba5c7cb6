package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/synthgen/internal/cli/config"
)

const configHeader = `# synthgen configuration.
# Values here are overridden by SYNTHGEN_* environment variables
# (e.g. SYNTHGEN_CRM__ROWS=100) and by command-line flags.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a synthgen.yaml with the default settings",
		Long: `Write a synthgen.yaml configuration file holding every default setting,
ready to be edited. The file is picked up automatically when synthgen runs
from that directory.`,
		Example: `  # Initialize in current directory
  synthgen init

  # Initialize in a new directory
  synthgen init my-datasets

  # Force overwrite existing config
  synthgen init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			path, err := runInit(dir, force)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(dir string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, config.DefaultConfigFile)
	if _, err := os.Stat(configPath); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to check %s: %w", configPath, err)
	}

	body, err := defaultConfigYAML()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(configPath, body, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	return configPath, nil
}

func defaultConfigYAML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.Default()); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
