package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/synthgen/internal/cli/config"
	"github.com/leapstack-labs/synthgen/internal/generator/crm"
)

// NewCRMCommand creates the crm command.
func NewCRMCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crm",
		Short: "Generate the synthetic healthcare CRM client table",
		Long: `Generate a synthetic CRM table of healthcare clients.

Each client gets a country and a service line. Engagement, response time,
revenue and satisfaction are drawn from service-line specific distributions,
and the churn flag follows a logistic model of those attributes.

The same --n and --seed always produce a byte-identical file.`,
		Example: `  # 60 clients with the default seed
  synthgen crm

  # A larger sample, loaded into DuckDB as table crm_clients
  synthgen crm --n 5000 --seed 7 --duckdb warehouse.duckdb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCRM(cmd)
		},
	}

	cmd.Flags().Int("n", config.DefaultCRMRows, "Number of clients to generate")
	cmd.Flags().Int64("seed", config.DefaultCRMSeed, "Random seed")
	cmd.Flags().String("out", config.DefaultCRMOut, "Output CSV path")
	cmd.Flags().SetNormalizeFunc(underscoreToDash)

	return cmd
}

func runCRM(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	opts := cc.Cfg.CRM

	tbl, err := crm.Generate(opts.Rows, opts.Seed)
	if err != nil {
		return err
	}
	cc.Logger.Debug("generated crm table", "rows", tbl.Len(), "seed", opts.Seed)

	absPath, err := filepath.Abs(opts.Out)
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}
	if err := tbl.WriteFile(absPath, cc.Cfg.DelimiterRune()); err != nil {
		return err
	}

	if err := cc.LoadWarehouse(cmd.Context(), tbl, absPath); err != nil {
		return err
	}

	cc.WroteRows(tbl.Len(), absPath)
	return nil
}
