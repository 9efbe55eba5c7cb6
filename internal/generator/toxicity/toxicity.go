// Package toxicity generates the synthetic leadership toxicity and KPI table.
package toxicity

import (
	"math"

	"github.com/leapstack-labs/synthgen/internal/dataset"
	"github.com/leapstack-labs/synthgen/internal/generator"
	"github.com/leapstack-labs/synthgen/internal/sampling"
)

// TableName names the generated table, e.g. when loading it into a warehouse.
const TableName = "leadership_toxicity_kpis"

// Column names in file order.
const (
	ColEmployeeID         = "employee_id"
	ColTeam               = "team"
	ColGender             = "gender"
	ColToxicity           = "supervisor_toxicity"
	ColBoundaryViolations = "boundary_violations"
	ColBoundaryBlur       = "boundary_blur_flag"
	ColMotivation         = "motivation"
	ColAbsenteeism        = "absenteeism_days"
	ColPerformance        = "performance_score"
)

// Teams and Genders are the categorical label sets, with their class
// probabilities in TeamWeights and GenderWeights.
var (
	Teams         = []string{"Ops", "Sales", "Support", "Tech", "Finance"}
	TeamWeights   = []float64{0.25, 0.2, 0.25, 0.2, 0.1}
	Genders       = []string{"F", "M", "Other"}
	GenderWeights = []float64{0.48, 0.48, 0.04}
)

const (
	toxicityShape = 1.8
	toxicityScale = 2.2
	toxicityMax   = 10

	scoreMax = 100

	motivationNoise  = 8
	absenteeismNoise = 1.2
	performanceNoise = 7

	blurMaxProbability = 0.6
)

// Generate builds an n-row toxicity table from a generator seeded with seed.
func Generate(n int, seed int64) (*dataset.Table, error) {
	return Sample(sampling.NewGenerator(seed), n)
}

// Sample builds an n-row toxicity table drawing every value from g.
func Sample(g *sampling.Generator, n int) (*dataset.Table, error) {
	if err := generator.CheckRows(n); err != nil {
		return nil, err
	}

	teamDist, err := g.NewWeighted(Teams, TeamWeights)
	if err != nil {
		return nil, err
	}
	genderDist, err := g.NewWeighted(Genders, GenderWeights)
	if err != nil {
		return nil, err
	}

	teams := make([]string, n)
	for i := range teams {
		teams[i] = teamDist.Draw()
	}
	genders := make([]string, n)
	for i := range genders {
		genders[i] = genderDist.Draw()
	}

	tox := make([]float64, n)
	for i := range tox {
		tox[i] = sampling.Clip(g.Gamma(toxicityShape, toxicityScale), 0, toxicityMax)
	}

	violations := make([]int64, n)
	for i, x := range tox {
		violations[i] = g.Poisson(ViolationRate(x))
	}

	motivation := make([]float64, n)
	for i, x := range tox {
		motivation[i] = sampling.Clip(80-6.5*x+g.Normal(0, motivationNoise), 0, scoreMax)
	}

	absenteeism := make([]float64, n)
	for i, x := range tox {
		absenteeism[i] = sampling.Clip(g.Normal(ExpectedAbsenteeism(x, motivation[i], violations[i]), absenteeismNoise), 0, math.Inf(1))
	}

	performance := make([]float64, n)
	for i, x := range tox {
		performance[i] = sampling.Clip(78-4.8*x-0.8*absenteeism[i]+g.Normal(0, performanceNoise), 0, scoreMax)
	}

	blur := make([]int64, n)
	for i, x := range tox {
		blur[i] = g.Bernoulli(BlurProbability(x))
	}

	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	return dataset.NewTable(TableName,
		dataset.NewIntColumn(ColEmployeeID, 1, float64(n), ids),
		dataset.NewStringColumn(ColTeam, Teams, teams),
		dataset.NewStringColumn(ColGender, Genders, genders),
		dataset.NewFloatColumn(ColToxicity, 2, 0, toxicityMax, tox),
		dataset.NewIntColumn(ColBoundaryViolations, 0, math.Inf(1), violations),
		dataset.NewIntColumn(ColBoundaryBlur, 0, 1, blur),
		dataset.NewFloatColumn(ColMotivation, 1, 0, scoreMax, motivation),
		dataset.NewFloatColumn(ColAbsenteeism, 1, 0, math.Inf(1), absenteeism),
		dataset.NewFloatColumn(ColPerformance, 1, 0, scoreMax, performance),
	)
}

// ViolationRate is the Poisson rate of boundary violations for a toxicity score.
func ViolationRate(tox float64) float64 {
	return sampling.Clip(0.2+0.35*(tox/10)*5, 0.2, 3.0)
}

// ExpectedAbsenteeism is the mean absenteeism (days per quarter) before noise.
func ExpectedAbsenteeism(tox, motivation float64, violations int64) float64 {
	return 1.5 + 0.9*tox + 0.03*(100-motivation) + 0.4*float64(violations)
}

// BlurProbability is the chance that a supervisor blurs leadership boundaries.
func BlurProbability(tox float64) float64 {
	return sampling.Clip(0.05+0.07*tox, 0, blurMaxProbability)
}
