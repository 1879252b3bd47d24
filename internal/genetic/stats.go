package genetic

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes one finished generation.
type Stats struct {
	Generation   int     `csv:"generation"`
	Population   int     `csv:"population"`
	BestScore    int     `csv:"best_score"`
	MeanScore    float64 `csv:"mean_score"`
	BestLifetime float64 `csv:"best_lifetime_s"`
	MeanLifetime float64 `csv:"mean_lifetime_s"`
	StdLifetime  float64 `csv:"std_lifetime_s"`
}

// Summarize computes generation statistics. Lifetimes are in seconds.
func Summarize(generation int, pop []Individual) Stats {
	s := Stats{Generation: generation, Population: len(pop)}
	if len(pop) == 0 {
		return s
	}

	lifetimes := make([]float64, len(pop))
	scores := make([]float64, len(pop))
	for i, ind := range pop {
		lifetimes[i] = ind.Lifetime.Seconds()
		scores[i] = float64(ind.Score)
	}

	s.BestScore = int(floats.Max(scores))
	s.MeanScore = stat.Mean(scores, nil)
	s.BestLifetime = floats.Max(lifetimes)
	s.MeanLifetime = stat.Mean(lifetimes, nil)
	if len(pop) > 1 {
		s.StdLifetime = stat.StdDev(lifetimes, nil)
	}
	return s
}
