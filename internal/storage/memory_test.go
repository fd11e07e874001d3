package storage

import (
	"context"
	"testing"

	"monomachia/internal/model"
)

func testRun(id, createdAt string) model.RunRecord {
	return model.RunRecord{
		ID:             id,
		CreatedAtUTC:   createdAt,
		Seed:           42,
		PopulationSize: 30,
		Generations:    20,
		MatchSteps:     100,
		ArenaSide:      200,
		TournamentSize: 3,
		CrossoverProb:  0.5,
		MutationProb:   0.1,
		Workers:        4,
		Matches:        18900,
		BestFitnessA:   12,
		BestFitnessB:   9,
	}
}

func TestMemoryStoreRunRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	want := testRun("run-1", "2026-08-30T10:00:00Z")
	if err := store.SaveRun(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("saved run not found")
	}
	if got != want {
		t.Fatalf("run roundtrip: got=%+v want=%+v", got, want)
	}

	if _, ok, _ := store.GetRun(ctx, "missing"); ok {
		t.Fatal("lookup of unknown id reported a hit")
	}
}

func TestMemoryStoreListRunsOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	for _, run := range []model.RunRecord{
		testRun("run-b", "2026-08-29T10:00:00Z"),
		testRun("run-a", "2026-08-30T10:00:00Z"),
		testRun("run-c", "2026-08-30T10:00:00Z"),
	} {
		if err := store.SaveRun(ctx, run); err != nil {
			t.Fatalf("save %s: %v", run.ID, err)
		}
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// Newest first, id breaks the tie.
	wantOrder := []string{"run-a", "run-c", "run-b"}
	if len(runs) != len(wantOrder) {
		t.Fatalf("list length: got=%d want=%d", len(runs), len(wantOrder))
	}
	for i, id := range wantOrder {
		if runs[i].ID != id {
			t.Fatalf("position %d: got=%s want=%s", i, runs[i].ID, id)
		}
	}

	limited, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "run-a" || limited[1].ID != "run-c" {
		t.Fatalf("limited list wrong: %+v", limited)
	}
}

func TestMemoryStoreSeriesRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	series := []model.GenerationRecord{
		{Generation: 1, AvgA: 2.5, MaxA: 6, AvgB: 3.1, MaxB: 7},
		{Generation: 2, AvgA: 3.0, MaxA: 8, AvgB: 2.9, MaxB: 6},
	}
	if err := store.SaveSeries(ctx, "run-1", series); err != nil {
		t.Fatalf("save series: %v", err)
	}

	got, ok, err := store.GetSeries(ctx, "run-1")
	if err != nil {
		t.Fatalf("get series: %v", err)
	}
	if !ok {
		t.Fatal("saved series not found")
	}
	if len(got) != len(series) {
		t.Fatalf("series length: got=%d want=%d", len(got), len(series))
	}
	for i := range series {
		if got[i] != series[i] {
			t.Fatalf("generation %d: got=%+v want=%+v", i+1, got[i], series[i])
		}
	}

	// The store keeps its own copy on both sides of the call.
	series[0].MaxA = 99
	got[1].AvgB = 99
	fresh, _, _ := store.GetSeries(ctx, "run-1")
	if fresh[0].MaxA == 99 || fresh[1].AvgB == 99 {
		t.Fatal("stored series aliases caller slices")
	}

	if _, ok, _ := store.GetSeries(ctx, "missing"); ok {
		t.Fatal("lookup of unknown run id reported a hit")
	}
}
