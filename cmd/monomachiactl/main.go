package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"monomachia/internal/storage"
	"monomachia/pkg/monomachia"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "fitness":
		return runFitness(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: monomachiactl <init|run|runs|fitness|export> [flags]", msg)
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "monomachia.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	if err := store.Init(ctx); err != nil {
		return err
	}
	if err := storage.CloseIfSupported(store); err != nil {
		return err
	}
	fmt.Printf("initialized %s store\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "INI run profile; explicit flags override file values")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "monomachia.db", "sqlite database path")
	runsDir := fs.String("runs-dir", "runs", "artifacts directory")

	defaults := monomachia.DefaultRunRequest()
	population := fs.Int("population", defaults.Population, "individuals per side")
	generations := fs.Int("generations", defaults.Generations, "generations to evolve")
	steps := fs.Int("steps", defaults.MatchSteps, "step budget per match")
	arenaSide := fs.Float64("arena", defaults.ArenaSide, "arena side length")
	spawnMargin := fs.Float64("spawn-margin", defaults.SpawnMargin, "spawn distance from the walls")
	minDepth := fs.Int("min-depth", defaults.MinDepth, "minimum initial tree depth")
	maxDepth := fs.Int("max-depth", defaults.MaxDepth, "maximum initial tree depth")
	tournament := fs.Int("tournament", defaults.TournamentSize, "tournament size")
	crossover := fs.Float64("crossover", defaults.CrossoverProb, "crossover probability")
	mutation := fs.Float64("mutation", defaults.MutationProb, "mutation probability")
	workers := fs.Int("workers", defaults.Workers, "parallel match workers")
	seed := fs.Int64("seed", 0, "random seed; 0 derives one from the clock")
	ifelse := fs.Bool("ifelse", false, "enable the conditional-select primitive")
	relational := fs.Bool("relational", false, "enable greater-than/less-than primitives")
	trig := fs.Bool("trig", false, "enable sin/cos and the ephemeral angle constant")
	exportTrees := fs.Bool("export-trees", false, "write best-tree DOT files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := defaults
	if *configPath != "" {
		loaded, err := loadRunRequestFromConfig(*configPath)
		if err != nil {
			return err
		}
		req = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "population":
			req.Population = *population
		case "generations":
			req.Generations = *generations
		case "steps":
			req.MatchSteps = *steps
		case "arena":
			req.ArenaSide = *arenaSide
		case "spawn-margin":
			req.SpawnMargin = *spawnMargin
		case "min-depth":
			req.MinDepth = *minDepth
		case "max-depth":
			req.MaxDepth = *maxDepth
		case "tournament":
			req.TournamentSize = *tournament
		case "crossover":
			req.CrossoverProb = *crossover
		case "mutation":
			req.MutationProb = *mutation
		case "workers":
			req.Workers = *workers
		case "seed":
			req.Seed = *seed
		case "ifelse":
			req.IfElse = *ifelse
		case "relational":
			req.Relational = *relational
		case "trig":
			req.Trig = *trig
		case "export-trees":
			req.ExportTrees = *exportTrees
		}
	})

	client, err := monomachia.NewClient(ctx, monomachia.Options{
		StoreKind: *storeKind,
		DBPath:    *dbPath,
		RunsDir:   *runsDir,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run %s finished: %s matches in %s (seed %d)\n",
		summary.RunID, humanize.Comma(int64(summary.Matches)), summary.Elapsed.Round(time.Millisecond), summary.Seed)
	fmt.Printf("final best fitness: side A=%d side B=%d\n", summary.FinalBestA, summary.FinalBestB)
	fmt.Printf("best side A: %s\n", summary.BestTreeA)
	fmt.Printf("best side B: %s\n", summary.BestTreeB)
	fmt.Printf("artifacts: %s\n", summary.ArtifactsDir)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "monomachia.db", "sqlite database path")
	limit := fs.Int("limit", 20, "maximum runs to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := monomachia.NewClient(ctx, monomachia.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer client.Close()

	runs, err := client.Runs(ctx, *limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  pop=%d gens=%d matches=%s best A/B=%d/%d\n",
			r.ID, r.CreatedAtUTC, r.PopulationSize, r.Generations,
			humanize.Comma(int64(r.Matches)), r.BestFitnessA, r.BestFitnessB)
	}
	return nil
}

func runFitness(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fitness", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "monomachia.db", "sqlite database path")
	runsDir := fs.String("runs-dir", "runs", "artifacts directory")
	runID := fs.String("run", "", "run id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("fitness requires -run")
	}

	client, err := monomachia.NewClient(ctx, monomachia.Options{
		StoreKind: *storeKind,
		DBPath:    *dbPath,
		RunsDir:   *runsDir,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	run, err := client.RunInfo(ctx, *runID)
	if err != nil {
		return err
	}
	series, err := client.Fitness(ctx, *runID)
	if err != nil {
		return err
	}
	fmt.Printf("run %s  %s  seed=%d pop=%d gens=%d\n",
		run.ID, run.CreatedAtUTC, run.Seed, run.PopulationSize, run.Generations)
	for _, rec := range series {
		fmt.Printf("gen %3d  side A avg=%.2f max=%.0f  side B avg=%.2f max=%.0f\n",
			rec.Generation, rec.AvgA, rec.MaxA, rec.AvgB, rec.MaxB)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "monomachia.db", "sqlite database path")
	runsDir := fs.String("runs-dir", "runs", "artifacts directory")
	runID := fs.String("run", "", "run id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("export requires -run")
	}

	client, err := monomachia.NewClient(ctx, monomachia.Options{
		StoreKind: *storeKind,
		DBPath:    *dbPath,
		RunsDir:   *runsDir,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	paths, err := client.Export(ctx, *runID)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}
