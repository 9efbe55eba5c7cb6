package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/synthgen/internal/cli/config"
	"github.com/leapstack-labs/synthgen/internal/generator/toxicity"
	"github.com/leapstack-labs/synthgen/internal/report"
)

// NewToxicityCommand creates the toxicity command.
func NewToxicityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toxicity",
		Short: "Generate the leadership toxicity KPI table and charts",
		Long: `Generate a synthetic HR table linking supervisor toxicity to employee KPIs.

Besides the CSV this renders three charts into --charts-dir:
  - toxicity_distribution.png
  - toxicity_vs_absenteeism.png
  - absenteeism_by_team.png

and prints the Pearson correlation matrix of toxicity, absenteeism,
performance and motivation. The matrix is a box table on a terminal
and markdown when piped; use --output to override.`,
		Example: `  # 500 employees, charts in ./reports
  synthgen toxicity

  # Custom size and locations
  synthgen toxicity -n 2000 --out out/kpis.csv --charts-dir out/charts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runToxicity(cmd)
		},
	}

	cmd.Flags().IntP("n-rows", "n", config.DefaultToxicityRows, "Number of employees to generate")
	cmd.Flags().Int64("seed", config.DefaultToxicitySeed, "Random seed")
	cmd.Flags().String("out", config.DefaultToxicityOut, "Output CSV path")
	cmd.Flags().String("charts-dir", config.DefaultToxicityChartsDir, "Directory for the PNG charts")
	cmd.Flags().SetNormalizeFunc(underscoreToDash)

	return cmd
}

func runToxicity(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	opts := cc.Cfg.Toxicity

	tbl, err := toxicity.Generate(opts.Rows, opts.Seed)
	if err != nil {
		return err
	}
	cc.Logger.Debug("generated toxicity table", "rows", tbl.Len(), "seed", opts.Seed)

	if err := tbl.WriteFile(opts.Out, cc.Cfg.DelimiterRune()); err != nil {
		return err
	}

	if err := cc.LoadWarehouse(cmd.Context(), tbl, opts.Out); err != nil {
		return err
	}

	charts, err := report.RenderCharts(tbl, opts.ChartsDir, cc.Logger)
	if err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	cc.Logger.Debug("rendered charts", "files", charts)

	corr, err := report.Correlation(tbl, report.KPIColumns)
	if err != nil {
		return err
	}

	cc.WroteRows(tbl.Len(), opts.Out)
	cc.Printf("\nCorrelation matrix (Pearson):\n")
	corr.Render(cc.Out, cc.Markdown)
	return nil
}

// underscoreToDash accepts --n_rows style spellings for dashed flags.
func underscoreToDash(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}
