// Package genetic breeds predictor training sets across generations.
//
// An individual's genome is the list of training pairs its predictor was fit
// on. Fitness is how long its actor survived.
package genetic

import (
	"math/rand"
	"sort"
	"time"

	"github.com/vovakirdan/flappy-neural/internal/agent"
	"github.com/vovakirdan/flappy-neural/internal/config"
)

// Individual is one member of a finished generation.
type Individual struct {
	Samples  []agent.Sample
	Lifetime time.Duration
	Score    int
}

// Breeder produces successive generations of training sets.
type Breeder struct {
	rng    *rand.Rand
	cfg    config.GeneticConfig
	width  float64
	height float64

	generation int
}

// NewBreeder creates a breeder for a world of the given size.
func NewBreeder(rng *rand.Rand, cfg config.GeneticConfig, width, height float64) *Breeder {
	return &Breeder{
		rng:    rng,
		cfg:    cfg,
		width:  width,
		height: height,
	}
}

// Generation returns the number of generations produced so far.
func (b *Breeder) Generation() int {
	return b.generation
}

// Seed returns generation 0: a random training set per individual.
func (b *Breeder) Seed() [][]agent.Sample {
	b.generation = 0
	out := make([][]agent.Sample, b.cfg.Population)
	for i := range out {
		out[i] = agent.RandomSamples(b.rng, b.cfg.InitialSamples, b.width, b.height)
	}
	return out
}

// Next breeds the following generation from a finished one.
// The fittest individual's samples carry over unchanged; the rest are
// crossovers of two parents drawn from the elite, then mutated.
func (b *Breeder) Next(pop []Individual) [][]agent.Sample {
	if len(pop) == 0 {
		return b.Seed()
	}
	b.generation++

	ranked := Rank(pop)
	elite := b.cfg.Elite
	if elite < 1 {
		elite = 1
	}
	if elite > len(ranked) {
		elite = len(ranked)
	}
	parents := ranked[:elite]

	out := make([][]agent.Sample, 0, b.cfg.Population)
	out = append(out, cloneSamples(parents[0].Samples))

	for len(out) < b.cfg.Population {
		p1 := parents[b.rng.Intn(len(parents))]
		p2 := parents[b.rng.Intn(len(parents))]
		child := Crossover(b.rng, p1.Samples, p2.Samples)
		b.mutate(child)
		out = append(out, child)
	}
	return out
}

// mutate replaces each sample with a fresh random pair at the configured rate.
func (b *Breeder) mutate(samples []agent.Sample) {
	for i := range samples {
		if b.rng.Float64() < b.cfg.MutationRate {
			samples[i] = agent.RandomSamples(b.rng, 1, b.width, b.height)[0]
		}
	}
}

// Rank returns the population sorted by lifetime, longest first.
// Ties fall back to score, then to the original order.
func Rank(pop []Individual) []Individual {
	ranked := make([]Individual, len(pop))
	copy(ranked, pop)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Lifetime != ranked[j].Lifetime {
			return ranked[i].Lifetime > ranked[j].Lifetime
		}
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Crossover performs one-point crossover: a prefix of a joined to the
// matching suffix of b. The child never aliases either parent.
func Crossover(rng *rand.Rand, a, b []agent.Sample) []agent.Sample {
	if len(a) == 0 {
		return cloneSamples(b)
	}
	if len(b) == 0 {
		return cloneSamples(a)
	}

	n := min(len(a), len(b))
	cut := rng.Intn(n + 1)

	child := make([]agent.Sample, 0, len(b))
	child = append(child, a[:cut]...)
	child = append(child, b[cut:]...)
	return child
}

func cloneSamples(s []agent.Sample) []agent.Sample {
	out := make([]agent.Sample, len(s))
	copy(out, s)
	return out
}
