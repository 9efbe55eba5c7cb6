package report

import (
	"log/slog"

	"gonum.org/v1/plot"

	"github.com/leapstack-labs/synthgen/internal/dataset"
	"github.com/leapstack-labs/synthgen/internal/generator/toxicity"
)

// Chart file names of the toxicity report.
const (
	ToxicityDistributionFile = "toxicity_distribution.png"
	ToxicityScatterFile      = "toxicity_vs_absenteeism.png"
	AbsenteeismByTeamFile    = "absenteeism_by_team.png"
)

const absenteeismLabel = "Absenteeism (days/quarter)"

// KPIColumns are the columns summarized by the toxicity correlation matrix.
var KPIColumns = []string{
	toxicity.ColToxicity,
	toxicity.ColAbsenteeism,
	toxicity.ColPerformance,
	toxicity.ColMotivation,
}

// ToxicityCharts returns the three charts of the toxicity report.
func ToxicityCharts() []Chart {
	return []Chart{
		{File: ToxicityDistributionFile, Build: toxicityDistribution},
		{File: ToxicityScatterFile, Build: toxicityVsAbsenteeism},
		{File: AbsenteeismByTeamFile, Build: absenteeismByTeam},
	}
}

// RenderCharts writes the toxicity report charts into dir.
func RenderCharts(t *dataset.Table, dir string, logger *slog.Logger) ([]string, error) {
	return NewChartWriter(dir, logger).Render(t, ToxicityCharts()...)
}

func toxicityDistribution(t *dataset.Table) (*plot.Plot, error) {
	tox, err := t.Floats(toxicity.ColToxicity)
	if err != nil {
		return nil, err
	}
	return Histogram(tox, 20, Labels{
		Title: "Supervisor Toxicity — Distribution",
		X:     "Toxicity (0–10)",
		Y:     "Count",
	})
}

func toxicityVsAbsenteeism(t *dataset.Table) (*plot.Plot, error) {
	tox, err := t.Floats(toxicity.ColToxicity)
	if err != nil {
		return nil, err
	}
	abs, err := t.Floats(toxicity.ColAbsenteeism)
	if err != nil {
		return nil, err
	}
	return Scatter(tox, abs, Labels{
		Title: "Toxicity vs Absenteeism",
		X:     "Supervisor Toxicity (0–10)",
		Y:     absenteeismLabel,
	})
}

func absenteeismByTeam(t *dataset.Table) (*plot.Plot, error) {
	abs, err := t.Floats(toxicity.ColAbsenteeism)
	if err != nil {
		return nil, err
	}
	teams, err := t.Strings(toxicity.ColTeam)
	if err != nil {
		return nil, err
	}
	return GroupedBoxPlot(abs, teams, Labels{
		Title: "Absenteeism by Team",
		X:     "Team",
		Y:     absenteeismLabel,
	})
}
