package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/DaanHessen/contagion/internal/engine"
)

func TestFromEnvOverlaysDefaults(t *testing.T) {
	env := map[string]string{
		"CONTAGION_SEED": "abc",
		"DATABASE_URL":   "sqlite://runs.db",
		"CONTAGION_DAYS": "12",
	}
	cfg := FromEnv(func(k string) string { return env[k] })
	if cfg.SeedText != "abc" || cfg.DSN != "sqlite://runs.db" || cfg.Days != 12 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Population != 300 || cfg.Tier != "cheap" || cfg.Theme != "catppuccin" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestScenarioFromConfig(t *testing.T) {
	cfg := Default()
	cfg.Population = 120
	cfg.Tier = "Expensive"
	cfg.Days = 7
	sc, err := cfg.Scenario()
	if err != nil {
		t.Fatalf("scenario: %v", err)
	}
	if sc.Population != 120 || sc.Tier != engine.TierExpensive || sc.Days != 7 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	cfg.Tier = "gold"
	if _, err := cfg.Scenario(); err == nil || !strings.Contains(err.Error(), "scenario") {
		t.Fatalf("expected wrapped validation error, got %v", err)
	}
}

func TestRunSeedRequiresText(t *testing.T) {
	cfg := Default()
	cfg.SeedText = "  "
	if _, err := cfg.RunSeed(); err == nil {
		t.Fatalf("blank seed should be rejected")
	}
	cfg.SeedText = "outbreak"
	seed, err := cfg.RunSeed()
	if err != nil || seed.Text != "outbreak" {
		t.Fatalf("seed got %+v err %v", seed, err)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogLevel = "warn"
	l := cfg.Logger(&buf)
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected log output %q", buf.String())
	}
}

func TestSmallPopulationKeepsSeedMix(t *testing.T) {
	cfg := Default()
	cfg.Population = 50
	sc, err := cfg.Scenario()
	if err != nil {
		t.Fatalf("small population rejected: %v", err)
	}
	want := []engine.SeedInfection{{Kind: engine.PathogenCholera, Count: 25}, {Kind: engine.PathogenSARSCoV2, Count: 25}}
	if len(sc.SeedInfections) != len(want) {
		t.Fatalf("seeds got %+v", sc.SeedInfections)
	}
	for i := range want {
		if sc.SeedInfections[i] != want[i] {
			t.Fatalf("seed %d got %+v want %+v", i, sc.SeedInfections[i], want[i])
		}
	}
	if def := engine.DefaultScenario().SeedInfections; def[0].Count != 40 {
		t.Fatalf("default seeds mutated: %+v", def)
	}

	cfg.Population = 200
	sc, err = cfg.Scenario()
	if err != nil || sc.SeedInfections[0].Count != 40 || sc.SeedInfections[1].Count != 40 {
		t.Fatalf("seeds that fit must stay as configured: %+v %v", sc.SeedInfections, err)
	}
}
