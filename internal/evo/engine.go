package evo

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"monomachia/internal/arena"
	"monomachia/internal/gp"
)

// Config drives one coevolutionary run of two independently-evolving
// populations.
type Config struct {
	Registry       *gp.Registry
	PopulationSize int
	Generations    int
	MinDepth       int
	MaxDepth       int
	TournamentSize int
	CrossoverProb  float64
	MutationProb   float64
	MatchSteps     int
	ArenaSide      float64
	SpawnMargin    float64
	Workers        int
	Seed           int64
}

// DefaultConfig mirrors the historical hyperparameters: 30 individuals per
// side, 20 generations, ramped depth 3-5, tournament of 3, crossover 0.5,
// mutation 0.1 with replacement depth 0-2, 100-step matches in a 200-unit
// arena with a 50-unit spawn margin.
func DefaultConfig(registry *gp.Registry) Config {
	return Config{
		Registry:       registry,
		PopulationSize: 30,
		Generations:    20,
		MinDepth:       3,
		MaxDepth:       5,
		TournamentSize: 3,
		CrossoverProb:  0.5,
		MutationProb:   0.1,
		MatchSteps:     100,
		ArenaSide:      200,
		SpawnMargin:    50,
		Workers:        1,
	}
}

// SideStats is one side's fitness summary for a generation.
type SideStats struct {
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
}

// GenerationStats reports both sides for one generation. Output only; the
// loop never reads it back.
type GenerationStats struct {
	Generation int       `json:"generation"`
	SideA      SideStats `json:"side_a"`
	SideB      SideStats `json:"side_b"`
}

// Result carries both final populations and the full per-generation stats
// series.
type Result struct {
	SideA []*gp.Individual
	SideB []*gp.Individual
	Stats []GenerationStats
}

// Matches counts the simulated duels for the whole run, initial round
// robin included.
func (c Config) Matches() int {
	return c.PopulationSize * c.PopulationSize * (c.Generations + 1)
}

// Engine orchestrates the generational loop: build, evaluate by full
// cross-population round robin, then per generation select → clone →
// crossover → mutate → re-evaluate → replace.
type Engine struct {
	cfg      Config
	rng      *rand.Rand
	factory  *gp.Factory
	selector gp.TournamentSelector
	cross    gp.Crossover
	mutate   gp.Mutator
}

const mutationMaxDepth = 2

func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("population size must be > 0, got %d", cfg.PopulationSize)
	}
	if cfg.Generations < 0 {
		return nil, fmt.Errorf("generations must be >= 0, got %d", cfg.Generations)
	}
	if cfg.TournamentSize <= 0 {
		return nil, fmt.Errorf("tournament size must be > 0, got %d", cfg.TournamentSize)
	}
	if cfg.CrossoverProb < 0 || cfg.CrossoverProb > 1 {
		return nil, fmt.Errorf("crossover probability must be in [0, 1], got %v", cfg.CrossoverProb)
	}
	if cfg.MutationProb < 0 || cfg.MutationProb > 1 {
		return nil, fmt.Errorf("mutation probability must be in [0, 1], got %v", cfg.MutationProb)
	}
	if cfg.MatchSteps < 0 {
		return nil, fmt.Errorf("match step budget must be >= 0, got %d", cfg.MatchSteps)
	}
	if cfg.ArenaSide <= 0 {
		return nil, fmt.Errorf("arena side must be > 0, got %v", cfg.ArenaSide)
	}
	if cfg.SpawnMargin < 0 || 2*cfg.SpawnMargin > cfg.ArenaSide {
		return nil, fmt.Errorf("spawn margin must be in [0, side/2], got %v", cfg.SpawnMargin)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	factory, err := gp.NewFactory(cfg.Registry, cfg.MinDepth, cfg.MaxDepth)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		factory:  factory,
		selector: gp.TournamentSelector{Size: cfg.TournamentSize},
		cross:    gp.Crossover{Prob: cfg.CrossoverProb},
		mutate: gp.Mutator{
			Factory:  factory,
			Prob:     cfg.MutationProb,
			MinDepth: 0,
			MaxDepth: mutationMaxDepth,
		},
	}, nil
}

// Run executes the full coevolution: initial populations with a complete
// N×N round robin, then the configured number of generations. With zero
// generations the result is the two initial populations with fitness from
// the initial round robin alone and an empty stats series.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	popA := e.newPopulation()
	popB := e.newPopulation()

	if err := e.roundRobin(ctx, popA, popB); err != nil {
		return Result{}, err
	}

	stats := make([]GenerationStats, 0, e.cfg.Generations)
	for gen := 0; gen < e.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		offspringA, err := e.selector.SelectPool(e.rng, popA, len(popA))
		if err != nil {
			return Result{}, err
		}
		offspringB, err := e.selector.SelectPool(e.rng, popB, len(popB))
		if err != nil {
			return Result{}, err
		}

		e.cross.Apply(e.rng, offspringA)
		e.cross.Apply(e.rng, offspringB)
		e.mutate.Apply(e.rng, offspringA)
		e.mutate.Apply(e.rng, offspringB)

		if err := e.roundRobin(ctx, offspringA, offspringB); err != nil {
			return Result{}, err
		}

		popA, popB = offspringA, offspringB
		stats = append(stats, GenerationStats{
			Generation: gen + 1,
			SideA:      summarize(popA),
			SideB:      summarize(popB),
		})
	}

	return Result{SideA: popA, SideB: popB, Stats: stats}, nil
}

func (e *Engine) newPopulation() []*gp.Individual {
	pop := make([]*gp.Individual, e.cfg.PopulationSize)
	for i := range pop {
		pop[i] = &gp.Individual{Tree: e.factory.Tree(e.rng)}
	}
	return pop
}

// roundRobin plays every individual of side A against every individual of
// side B exactly once and tallies win counts. Fitness is strictly
// per-generation: every participant restarts from zero before the tally,
// so scores never accumulate across a population's history.
//
// Match placement seeds are drawn from the engine's sequential source up
// front, so results are identical for any worker count.
func (e *Engine) roundRobin(ctx context.Context, popA, popB []*gp.Individual) error {
	for _, ind := range popA {
		ind.Fitness = gp.Fitness{Valid: true}
	}
	for _, ind := range popB {
		ind.Fitness = gp.Fitness{Valid: true}
	}

	type duel struct {
		i, j int
		seed int64
	}
	duels := make([]duel, 0, len(popA)*len(popB))
	for i := range popA {
		for j := range popB {
			duels = append(duels, duel{i: i, j: j, seed: e.rng.Int63()})
		}
	}

	matchCfg := arena.MatchConfig{
		Side:        e.cfg.ArenaSide,
		SpawnMargin: e.cfg.SpawnMargin,
		MaxSteps:    e.cfg.MatchSteps,
	}

	outcomes := make([]arena.Outcome, len(duels))
	errs := make([]error, len(duels))

	play := func(k int) {
		d := duels[k]
		matchRNG := rand.New(rand.NewSource(d.seed))
		outcomes[k], errs[k] = arena.RunMatch(matchRNG, e.pilot(popA[d.i]), e.pilot(popB[d.j]), matchCfg)
	}

	if e.cfg.Workers == 1 {
		for k := range duels {
			if err := ctx.Err(); err != nil {
				return err
			}
			play(k)
		}
	} else {
		workerCount := e.cfg.Workers
		if workerCount > len(duels) {
			workerCount = len(duels)
		}
		jobs := make(chan int)
		var wg sync.WaitGroup
		wg.Add(workerCount)
		for w := 0; w < workerCount; w++ {
			go func() {
				defer wg.Done()
				for k := range jobs {
					play(k)
				}
			}()
		}
		for k := range duels {
			if ctx.Err() != nil {
				break
			}
			jobs <- k
		}
		close(jobs)
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	for k, d := range duels {
		if errs[k] != nil {
			return errs[k]
		}
		switch outcomes[k] {
		case arena.WinA:
			popA[d.i].Fitness.Score++
		case arena.WinB:
			popB[d.j].Fitness.Score++
		}
	}
	return nil
}

// pilot wraps an individual's tree into a read-only decision function.
func (e *Engine) pilot(ind *gp.Individual) arena.Pilot {
	root := ind.Tree.Root
	return arena.PilotFunc(func(s arena.Sensors) float64 {
		return e.cfg.Registry.Eval(root, s.Inputs())
	})
}

func summarize(pop []*gp.Individual) SideStats {
	total := 0
	best := 0
	for _, ind := range pop {
		total += ind.Fitness.Score
		if ind.Fitness.Score > best {
			best = ind.Fitness.Score
		}
	}
	return SideStats{
		Avg: float64(total) / float64(len(pop)),
		Max: float64(best),
	}
}
