package gp

import (
	"fmt"
	"math/rand"
)

// TournamentSelector fills offspring pools by repeated tournaments: sample
// Size individuals uniformly with replacement and keep the fittest, ties
// going to the first sampled.
type TournamentSelector struct {
	Size int
}

// SelectPool draws n cloned individuals from pop. Every individual in pop
// must already be evaluated.
func (s TournamentSelector) SelectPool(rng *rand.Rand, pop []*Individual, n int) ([]*Individual, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if s.Size <= 0 {
		return nil, fmt.Errorf("tournament size must be > 0, got %d", s.Size)
	}
	if len(pop) == 0 {
		return nil, fmt.Errorf("population is empty")
	}

	pool := make([]*Individual, 0, n)
	for len(pool) < n {
		best := pop[rng.Intn(len(pop))]
		for i := 1; i < s.Size; i++ {
			candidate := pop[rng.Intn(len(pop))]
			if candidate.Fitness.Score > best.Fitness.Score {
				best = candidate
			}
		}
		pool = append(pool, best.Clone())
	}
	return pool, nil
}
