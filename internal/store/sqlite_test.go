package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DaanHessen/contagion/internal/engine"
)

func openTestDB(t *testing.T) Recorder {
	t.Helper()
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "nested", "runs.db")
	rec, err := Open(context.Background(), dsn, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { rec.Close() })
	return rec
}

func TestRecordRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	rec := openTestDB(t)
	sc := engine.DefaultScenario()
	sc.Days = 5
	sim, err := engine.NewSimulation(sc, engine.MustRunSeed("store"))
	if err != nil {
		t.Fatalf("simulation: %v", err)
	}
	runID, err := rec.StartRun(ctx, "store", sc)
	if err != nil {
		t.Fatalf("start run: %v", err)
	}
	if err := sim.Run(ctx, sc.Days, Observe(rec, runID)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := rec.FinishRun(ctx, runID, sim.Day()); err != nil {
		t.Fatalf("finish: %v", err)
	}

	got, err := rec.DailyStats(ctx, runID)
	if err != nil {
		t.Fatalf("daily stats: %v", err)
	}
	want := sim.History()
	if len(got) != len(want) {
		t.Fatalf("stored %d days, simulated %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("day %d stored %+v want %+v", i+1, got[i], want[i])
		}
	}

	runs, err := rec.Runs(ctx, 10)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != runID || runs[0].Days != 5 || runs[0].FinishedAt == nil {
		t.Fatalf("unexpected runs %+v", runs)
	}
	if runs[0].Scenario.Population != 300 || len(runs[0].Scenario.SeedInfections) != 2 {
		t.Fatalf("scenario not persisted: %+v", runs[0].Scenario)
	}
}

func TestFinishRunRejectsGaps(t *testing.T) {
	ctx := context.Background()
	rec := openTestDB(t)
	runID, err := rec.StartRun(ctx, "gaps", engine.DefaultScenario())
	if err != nil {
		t.Fatalf("start run: %v", err)
	}
	if err := rec.RecordDay(ctx, runID, 1, engine.Tally{Infected: 3}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := rec.FinishRun(ctx, runID, 2); err == nil {
		t.Fatalf("finishing with a missing day should fail")
	}
	if err := rec.RecordDay(ctx, runID, 1, engine.Tally{}); err == nil {
		t.Fatalf("duplicate day should violate the primary key")
	}
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	if _, err := Open(context.Background(), "", nil); err == nil {
		t.Fatalf("empty DSN should fail")
	}
	_, err := Open(context.Background(), "mysql://localhost/db", nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported scheme error, got %v", err)
	}
	if _, err := NewMigrator("sqlite://x.db", ""); err == nil {
		t.Fatalf("migrator should refuse sqlite DSNs")
	}
}
