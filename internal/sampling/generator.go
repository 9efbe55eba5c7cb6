// Package sampling provides a seeded random generator handle and the
// distributions used to synthesize dataset columns.
//
// Every draw made through a Generator advances the same PCG source, so a
// pipeline that consumes draws in a fixed order is fully determined by its seed.
// A Generator is not safe for concurrent use.
package sampling

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Generator is an explicitly passed pseudo-random generator handle.
type Generator struct {
	src  *rand.PCG
	rng  *rand.Rand
	seed int64
}

// NewGenerator creates a generator seeded from seed.
func NewGenerator(seed int64) *Generator {
	src := rand.NewPCG(uint64(seed), uint64(seed))
	return &Generator{
		src:  src,
		rng:  rand.New(src),
		seed: seed,
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Uniform draws from U(0, 1).
func (g *Generator) Uniform() float64 {
	return distuv.Uniform{Min: 0, Max: 1, Src: g.src}.Rand()
}

// Normal draws from N(mu, sigma).
func (g *Generator) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: g.src}.Rand()
}

// LogNormal draws exp(Y) with Y ~ N(mu, sigma).
func (g *Generator) LogNormal(mu, sigma float64) float64 {
	return distuv.LogNormal{Mu: mu, Sigma: sigma, Src: g.src}.Rand()
}

// Gamma draws from a gamma distribution parametrized by shape and scale.
func (g *Generator) Gamma(shape, scale float64) float64 {
	return distuv.Gamma{Alpha: shape, Beta: 1 / scale, Src: g.src}.Rand()
}

// Poisson draws a count with mean lambda.
func (g *Generator) Poisson(lambda float64) int64 {
	return int64(distuv.Poisson{Lambda: lambda, Src: g.src}.Rand())
}

// Bernoulli returns 1 with probability p and 0 otherwise.
func (g *Generator) Bernoulli(p float64) int64 {
	if g.Uniform() < p {
		return 1
	}
	return 0
}

// Choice picks one label uniformly.
func (g *Generator) Choice(labels []string) string {
	return labels[g.rng.IntN(len(labels))]
}

// Weighted is a categorical distribution over a fixed label set.
type Weighted struct {
	labels []string
	dist   distuv.Categorical
}

// NewWeighted binds labels and their class probabilities to g.
// Weights need not sum to one but must be non-negative and match labels in length.
func (g *Generator) NewWeighted(labels []string, weights []float64) (*Weighted, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("weighted choice needs at least one label")
	}
	if len(labels) != len(weights) {
		return nil, fmt.Errorf("got %d weights for %d labels", len(weights), len(labels))
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("weight for %q must be non-negative, got %v", labels[i], w)
		}
	}
	return &Weighted{
		labels: labels,
		dist:   distuv.NewCategorical(weights, g.src),
	}, nil
}

// Draw picks one label according to the class probabilities.
func (w *Weighted) Draw() string {
	return w.labels[int(w.dist.Rand())]
}
