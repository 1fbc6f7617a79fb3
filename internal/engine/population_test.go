package engine

import (
	"strings"
	"testing"
)

func TestDefaultPopulation(t *testing.T) {
	sc := DefaultScenario()
	persons := NewPopulation(sc, MustRunSeed("pop").Stream("population"))
	if len(persons) != 300 {
		t.Fatalf("population got %d want 300", len(persons))
	}
	roaming, community := 0, 0
	for i, p := range persons {
		if p.ID != i {
			t.Fatalf("person %d has id %d", i, p.ID)
		}
		switch p.Movement {
		case MovementRoaming:
			roaming++
			if i >= 225 {
				t.Fatalf("roaming persons must come first, found one at %d", i)
			}
		case MovementCommunity:
			community++
			if p.Community != sc.CommunityPoint {
				t.Fatalf("community point got %+v", p.Community)
			}
		}
		if !sc.Bounds.Contains(p.Home) || p.Location != p.Home {
			t.Fatalf("person %d home %+v outside bounds or not at home", i, p.Home)
		}
		if p.Age < 1 || p.Age > 90 || p.Weight < 30 || p.Weight > 120 {
			t.Fatalf("person %d age=%d weight=%v out of range", i, p.Age, p.Weight)
		}
	}
	if roaming != 225 || community != 75 {
		t.Fatalf("split got %d/%d want 225/75", roaming, community)
	}
}

func TestSeedInfectionsInOrder(t *testing.T) {
	persons := NewPopulation(DefaultScenario(), MustRunSeed("pop").Stream("population"))
	for i, p := range persons {
		var want PathogenKind
		switch {
		case i < 40:
			want = PathogenCholera
		case i < 80:
			want = PathogenSARSCoV2
		}
		if want == "" {
			if p.State().Kind != HealthHealthy {
				t.Fatalf("person %d should be healthy", i)
			}
			continue
		}
		if p.State().Kind != HealthAsymptomatic || p.Pathogen.Kind != want || p.Pathogen.Strength != defaultPathogenStrength {
			t.Fatalf("person %d got %s/%+v want asymptomatic %s", i, p.State().Kind, p.Pathogen, want)
		}
	}
}

func TestPopulationDeterministic(t *testing.T) {
	sc := DefaultScenario()
	a := NewPopulation(sc, MustRunSeed("same").Stream("population"))
	b := NewPopulation(sc, MustRunSeed("same").Stream("population"))
	c := NewPopulation(sc, MustRunSeed("other").Stream("population"))
	differs := false
	for i := range a {
		if a[i].Home != b[i].Home || a[i].Age != b[i].Age || a[i].Weight != b[i].Weight {
			t.Fatalf("person %d differs between identical seeds", i)
		}
		if a[i].Home != c[i].Home {
			differs = true
		}
	}
	if !differs {
		t.Fatalf("different seeds produced identical homes")
	}
}

func TestScenarioValidate(t *testing.T) {
	if err := DefaultScenario().Validate(); err != nil {
		t.Fatalf("default scenario invalid: %v", err)
	}
	cases := map[string]func(*Scenario){
		"population": func(s *Scenario) { s.Population = 0 },
		"days":       func(s *Scenario) { s.Days = -1 },
		"inverted":   func(s *Scenario) { s.Bounds.MinX = 200 },
		"community":  func(s *Scenario) { s.CommunityPoint = Location{X: 500, Y: 1} },
		"share":      func(s *Scenario) { s.CommunityShare = 1.5 },
		"age":        func(s *Scenario) { s.MinAge = 0 },
		"weight":     func(s *Scenario) { s.MaxWeight = 10 },
		"tier":       func(s *Scenario) { s.Tier = "luxury" },
		"pathogen":   func(s *Scenario) { s.SeedInfections = []SeedInfection{{Kind: "plague", Count: 1}} },
		"seeds":      func(s *Scenario) { s.SeedInfections = []SeedInfection{{Kind: PathogenCholera, Count: 301}} },
	}
	for name, mutate := range cases {
		sc := DefaultScenario()
		mutate(&sc)
		if err := sc.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
	sc := DefaultScenario()
	sc.Population = 0
	sc.Tier = "luxury"
	err := sc.Validate()
	if err == nil || !strings.Contains(err.Error(), "population") || !strings.Contains(err.Error(), "tier") {
		t.Fatalf("expected every problem reported, got %v", err)
	}
}

func TestScenarioHospitals(t *testing.T) {
	hs := DefaultScenario().NewHospitals()
	if len(hs) != 4 {
		t.Fatalf("hospitals got %d want 4", len(hs))
	}
	for i, h := range hs {
		if h.ID != i+1 || h.Capacity() != 100 || h.Catalog.Tier != TierCheap {
			t.Fatalf("hospital %d unexpected %+v", i, h)
		}
	}
}

func TestSampledSeeds(t *testing.T) {
	sc := DefaultScenario()
	sc.SampledSeeds = true
	a := NewPopulation(sc, MustRunSeed("sampled").Stream("population"))
	b := NewPopulation(sc, MustRunSeed("sampled").Stream("population"))
	distinct := map[float64]bool{}
	for i := 0; i < 80; i++ {
		if a[i].Pathogen == nil || a[i].Pathogen.Strength != b[i].Pathogen.Strength {
			t.Fatalf("seed %d not reproducible", i)
		}
		distinct[a[i].Pathogen.Strength] = true
	}
	if len(distinct) < 70 {
		t.Fatalf("sampled seeds should differ, got %d distinct strengths", len(distinct))
	}
	if a[0].Pathogen.Kind != PathogenCholera || a[79].Pathogen.Kind != PathogenSARSCoV2 {
		t.Fatalf("seed order changed when sampling")
	}
}
