package model

// RunRecord captures the configuration and headline outcome of one
// coevolutionary run. Evolved programs themselves are never persisted;
// only run metadata and fitness series are.
type RunRecord struct {
	ID             string  `json:"id"`
	CreatedAtUTC   string  `json:"created_at_utc"`
	Seed           int64   `json:"seed"`
	PopulationSize int     `json:"population_size"`
	Generations    int     `json:"generations"`
	MatchSteps     int     `json:"match_steps"`
	ArenaSide      float64 `json:"arena_side"`
	TournamentSize int     `json:"tournament_size"`
	CrossoverProb  float64 `json:"crossover_prob"`
	MutationProb   float64 `json:"mutation_prob"`
	Workers        int     `json:"workers"`
	IfElse         bool    `json:"ifelse"`
	Relational     bool    `json:"relational"`
	Trig           bool    `json:"trig"`
	Matches        int     `json:"matches"`
	BestFitnessA   int     `json:"best_fitness_a"`
	BestFitnessB   int     `json:"best_fitness_b"`
}

// GenerationRecord is one persisted row of the per-generation stats
// series: average and maximum win count for each side.
type GenerationRecord struct {
	Generation int     `json:"generation"`
	AvgA       float64 `json:"avg_a"`
	MaxA       float64 `json:"max_a"`
	AvgB       float64 `json:"avg_b"`
	MaxB       float64 `json:"max_b"`
}
