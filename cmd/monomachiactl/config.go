package main

import (
	"fmt"

	"gopkg.in/ini.v1"

	"monomachia/pkg/monomachia"
)

// runProfile mirrors RunRequest with INI bindings. Keys absent from the
// file keep their defaults.
type runProfile struct {
	Population     int     `ini:"population"`
	Generations    int     `ini:"generations"`
	MinDepth       int     `ini:"min_depth"`
	MaxDepth       int     `ini:"max_depth"`
	TournamentSize int     `ini:"tournament_size"`
	CrossoverProb  float64 `ini:"crossover_prob"`
	MutationProb   float64 `ini:"mutation_prob"`
	MatchSteps     int     `ini:"match_steps"`
	ArenaSide      float64 `ini:"arena_side"`
	SpawnMargin    float64 `ini:"spawn_margin"`
	Workers        int     `ini:"workers"`
	Seed           int64   `ini:"seed"`
	IfElse         bool    `ini:"ifelse"`
	Relational     bool    `ini:"relational"`
	Trig           bool    `ini:"trig"`
	ExportTrees    bool    `ini:"export_trees"`
}

// loadRunRequestFromConfig reads an INI run profile. Recognized keys live
// in the [run] section; every key is optional.
func loadRunRequestFromConfig(path string) (monomachia.RunRequest, error) {
	file, err := ini.Load(path)
	if err != nil {
		return monomachia.RunRequest{}, fmt.Errorf("load run profile %s: %w", path, err)
	}

	defaults := monomachia.DefaultRunRequest()
	profile := runProfile{
		Population:     defaults.Population,
		Generations:    defaults.Generations,
		MinDepth:       defaults.MinDepth,
		MaxDepth:       defaults.MaxDepth,
		TournamentSize: defaults.TournamentSize,
		CrossoverProb:  defaults.CrossoverProb,
		MutationProb:   defaults.MutationProb,
		MatchSteps:     defaults.MatchSteps,
		ArenaSide:      defaults.ArenaSide,
		SpawnMargin:    defaults.SpawnMargin,
		Workers:        defaults.Workers,
	}
	if err := file.Section("run").MapTo(&profile); err != nil {
		return monomachia.RunRequest{}, fmt.Errorf("map run profile %s: %w", path, err)
	}

	return monomachia.RunRequest{
		Population:     profile.Population,
		Generations:    profile.Generations,
		MinDepth:       profile.MinDepth,
		MaxDepth:       profile.MaxDepth,
		TournamentSize: profile.TournamentSize,
		CrossoverProb:  profile.CrossoverProb,
		MutationProb:   profile.MutationProb,
		MatchSteps:     profile.MatchSteps,
		ArenaSide:      profile.ArenaSide,
		SpawnMargin:    profile.SpawnMargin,
		Workers:        profile.Workers,
		Seed:           profile.Seed,
		IfElse:         profile.IfElse,
		Relational:     profile.Relational,
		Trig:           profile.Trig,
		ExportTrees:    profile.ExportTrees,
	}, nil
}
