// Package monomachia is the embedding surface for coevolutionary robot
// duels: configure a run, execute it, and query persisted run records.
package monomachia

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"monomachia/internal/arena"
	"monomachia/internal/evo"
	"monomachia/internal/gp"
	"monomachia/internal/model"
	"monomachia/internal/stats"
	"monomachia/internal/storage"
)

const defaultRunsDir = "runs"

// Options selects the persistence backend and artifacts location.
type Options struct {
	StoreKind string
	DBPath    string
	RunsDir   string
}

// Client runs coevolutions and records their outcomes. Evolved programs
// are returned to the caller, never persisted.
type Client struct {
	store   storage.Store
	runsDir string
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	store, err := storage.NewStore(opts.StoreKind, opts.DBPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	runsDir := opts.RunsDir
	if runsDir == "" {
		runsDir = defaultRunsDir
	}
	return &Client{store: store, runsDir: runsDir}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// RunRequest configures one coevolutionary run. Start from
// DefaultRunRequest and override. Seed 0 is a sentinel meaning "derive a
// seed from the clock"; the derived seed is reported in RunSummary.Seed
// and in the persisted run record, so every run stays reproducible.
type RunRequest struct {
	Population     int
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
	IfElse         bool
	Relational     bool
	Trig           bool
	ExportTrees    bool
}

// DefaultRunRequest carries the historical defaults.
func DefaultRunRequest() RunRequest {
	cfg := evo.DefaultConfig(nil)
	return RunRequest{
		Population:     cfg.PopulationSize,
		Generations:    cfg.Generations,
		MinDepth:       cfg.MinDepth,
		MaxDepth:       cfg.MaxDepth,
		TournamentSize: cfg.TournamentSize,
		CrossoverProb:  cfg.CrossoverProb,
		MutationProb:   cfg.MutationProb,
		MatchSteps:     cfg.MatchSteps,
		ArenaSide:      cfg.ArenaSide,
		SpawnMargin:    cfg.SpawnMargin,
		Workers:        cfg.Workers,
	}
}

// RunSummary reports one finished run. Seed is the seed actually used,
// whether requested or clock-derived.
type RunSummary struct {
	RunID        string
	ArtifactsDir string
	Seed         int64
	Matches      int
	Elapsed      time.Duration
	FinalBestA   int
	FinalBestB   int
	BestTreeA    string
	BestTreeB    string
	Series       []model.GenerationRecord
}

// Run executes a coevolution, persists the run record and fitness series,
// and writes the run's artifacts directory. With ExportTrees set, the
// best tree of each final population is additionally written as DOT text.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	registry := gp.NewRegistry(arena.SensorNames(), gp.SetOptions{
		IfElse:     req.IfElse,
		Relational: req.Relational,
		Trig:       req.Trig,
	})
	cfg := evo.Config{
		Registry:       registry,
		PopulationSize: req.Population,
		Generations:    req.Generations,
		MinDepth:       req.MinDepth,
		MaxDepth:       req.MaxDepth,
		TournamentSize: req.TournamentSize,
		CrossoverProb:  req.CrossoverProb,
		MutationProb:   req.MutationProb,
		MatchSteps:     req.MatchSteps,
		ArenaSide:      req.ArenaSide,
		SpawnMargin:    req.SpawnMargin,
		Workers:        req.Workers,
		Seed:           req.Seed,
	}
	engine, err := evo.NewEngine(cfg)
	if err != nil {
		return RunSummary{}, err
	}

	started := time.Now()
	result, err := engine.Run(ctx)
	if err != nil {
		return RunSummary{}, err
	}
	elapsed := time.Since(started)

	bestA := bestOf(result.SideA)
	bestB := bestOf(result.SideB)

	runID := uuid.NewString()
	record := model.RunRecord{
		ID:             runID,
		CreatedAtUTC:   time.Now().UTC().Format(time.RFC3339),
		Seed:           req.Seed,
		PopulationSize: req.Population,
		Generations:    req.Generations,
		MatchSteps:     req.MatchSteps,
		ArenaSide:      req.ArenaSide,
		TournamentSize: req.TournamentSize,
		CrossoverProb:  req.CrossoverProb,
		MutationProb:   req.MutationProb,
		Workers:        cfg.Workers,
		IfElse:         req.IfElse,
		Relational:     req.Relational,
		Trig:           req.Trig,
		Matches:        cfg.Matches(),
		BestFitnessA:   bestA.Fitness.Score,
		BestFitnessB:   bestB.Fitness.Score,
	}
	series := toRecords(result.Stats)

	if err := c.store.SaveRun(ctx, record); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveSeries(ctx, runID, series); err != nil {
		return RunSummary{}, err
	}
	artifactsDir, err := stats.WriteRunArtifacts(c.runsDir, record, series)
	if err != nil {
		return RunSummary{}, err
	}
	if req.ExportTrees {
		if _, err := stats.WriteTreeDOT(c.runsDir, runID, "best_side_a", bestA.Tree.Graph()); err != nil {
			return RunSummary{}, err
		}
		if _, err := stats.WriteTreeDOT(c.runsDir, runID, "best_side_b", bestB.Tree.Graph()); err != nil {
			return RunSummary{}, err
		}
	}

	return RunSummary{
		RunID:        runID,
		ArtifactsDir: artifactsDir,
		Seed:         req.Seed,
		Matches:      cfg.Matches(),
		Elapsed:      elapsed,
		FinalBestA:   bestA.Fitness.Score,
		FinalBestB:   bestB.Fitness.Score,
		BestTreeA:    bestA.Tree.String(),
		BestTreeB:    bestB.Tree.String(),
		Series:       series,
	}, nil
}

// Runs lists persisted run records, newest first.
func (c *Client) Runs(ctx context.Context, limit int) ([]model.RunRecord, error) {
	return c.store.ListRuns(ctx, limit)
}

// RunInfo returns a run's persisted record, falling back to the run's
// artifacts directory when the store has no row for it.
func (c *Client) RunInfo(ctx context.Context, runID string) (model.RunRecord, error) {
	run, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return model.RunRecord{}, err
	}
	if !ok {
		run, ok, err = stats.ReadRunConfig(c.runsDir, runID)
		if err != nil {
			return model.RunRecord{}, err
		}
	}
	if !ok {
		return model.RunRecord{}, fmt.Errorf("run not found: %s", runID)
	}
	return run, nil
}

// Fitness returns the persisted per-generation stats series of a run,
// falling back to the run's artifacts directory when the store has no row
// for it.
func (c *Client) Fitness(ctx context.Context, runID string) ([]model.GenerationRecord, error) {
	series, ok, err := c.store.GetSeries(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		series, ok, err = stats.ReadFitnessSeries(c.runsDir, runID)
		if err != nil {
			return nil, err
		}
	}
	if !ok {
		return nil, fmt.Errorf("run not found: %s", runID)
	}
	return series, nil
}

// Export renders a persisted run's fitness curves as plot-point JSON files
// in its artifacts directory and returns their paths.
func (c *Client) Export(ctx context.Context, runID string) ([]string, error) {
	series, err := c.Fitness(ctx, runID)
	if err != nil {
		return nil, err
	}
	return stats.WritePlotArtifacts(c.runsDir, runID, series)
}

func bestOf(pop []*gp.Individual) *gp.Individual {
	best := pop[0]
	for _, ind := range pop[1:] {
		if ind.Fitness.Score > best.Fitness.Score {
			best = ind
		}
	}
	return best
}

func toRecords(series []evo.GenerationStats) []model.GenerationRecord {
	records := make([]model.GenerationRecord, 0, len(series))
	for _, s := range series {
		records = append(records, model.GenerationRecord{
			Generation: s.Generation,
			AvgA:       s.SideA.Avg,
			MaxA:       s.SideA.Max,
			AvgB:       s.SideB.Avg,
			MaxB:       s.SideB.Max,
		})
	}
	return records
}
