package engine

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAntifeverDrugs(t *testing.T) {
	p := newTestPerson(1)
	p.Temperature = 41
	Drug{Kind: DrugAspirin, Dose: 2}.Apply(p)
	if !near(p.Temperature, 40) {
		t.Fatalf("aspirin dose 2 should lower by 1, got %v", p.Temperature)
	}
	Drug{Kind: DrugAspirin, Dose: 20}.Apply(p)
	if p.Temperature != NormalTemperature {
		t.Fatalf("aspirin must not go below normal, got %v", p.Temperature)
	}

	p.Temperature = 35.5
	Drug{Kind: DrugIbuprofen}.Apply(p)
	if p.Temperature != 35.5 {
		t.Fatalf("ibuprofen must not raise a low temperature, got %v", p.Temperature)
	}
	p.Temperature = 42
	Drug{Kind: DrugIbuprofen}.Apply(p)
	if p.Temperature != NormalTemperature {
		t.Fatalf("ibuprofen should reset fever, got %v", p.Temperature)
	}
}

func TestRehydrationDrugs(t *testing.T) {
	p := newTestPerson(1)
	p.Water = 40
	Drug{Kind: DrugGlucose, Dose: 1}.Apply(p)
	if !near(p.Water, 40.1) {
		t.Fatalf("glucose dose 1 should add 0.1, got %v", p.Water)
	}
	Drug{Kind: DrugGlucose, Dose: 1000}.Apply(p)
	if p.Water != p.NormalWater() {
		t.Fatalf("glucose must cap at normal water, got %v", p.Water)
	}
	p.Water = 20
	Drug{Kind: DrugRehydron}.Apply(p)
	if p.Water != p.NormalWater() {
		t.Fatalf("rehydron should restore normal water, got %v", p.Water)
	}
}

func TestAntiviralsTargetTheirDisease(t *testing.T) {
	cases := []struct {
		drug DrugKind
		kind PathogenKind
		want float64
	}{
		{DrugAntivirusSeasonalFlu, PathogenSeasonalFlu, 0.5},
		{DrugAntivirusSeasonalFlu, PathogenSARSCoV2, 1.4},
		{DrugAntivirusSeasonalFlu, PathogenCholera, 1.5},
		{DrugAntivirusSARSCoV2, PathogenSARSCoV2, 1.4},
		{DrugAntivirusSARSCoV2, PathogenSeasonalFlu, 1.5},
		{DrugAntivirusCholera, PathogenCholera, 1.4},
		{DrugAntivirusCholera, PathogenSARSCoV2, 1.5},
		{DrugPlacebo, PathogenCholera, 1.5},
	}
	for _, c := range cases {
		p := newTestPerson(1)
		p.GetInfected(NewPathogen(c.kind))
		Drug{Kind: c.drug, Dose: 1}.Apply(p)
		if !near(p.Pathogen.Strength, c.want) {
			t.Fatalf("%s on %s: strength %v want %v", c.drug, c.kind, p.Pathogen.Strength, c.want)
		}
	}
}

func TestAntiviralWithoutPathogen(t *testing.T) {
	p := newTestPerson(1)
	Drug{Kind: DrugAntivirusCholera, Dose: 1}.Apply(p)
	if p.Pathogen != nil || p.State().Kind != HealthHealthy {
		t.Fatalf("antiviral on a healthy person changed state")
	}
}

func TestUnknownDrugPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown drug kind")
		}
	}()
	Drug{Kind: "leeches"}.Apply(newTestPerson(1))
}

func TestCatalogSlots(t *testing.T) {
	if CheapCatalog.Antifever(1).Kind != DrugAspirin || ExpensiveCatalog.Antifever(1).Kind != DrugIbuprofen {
		t.Fatalf("unexpected antifever slots")
	}
	if CheapCatalog.Rehydration(1).Kind != DrugGlucose || ExpensiveCatalog.Rehydration(1).Kind != DrugRehydron {
		t.Fatalf("unexpected rehydration slots")
	}
	for _, k := range AllPathogenKinds {
		if CheapCatalog.Antivirus(k, 1).Kind != DrugPlacebo {
			t.Fatalf("cheap antiviral for %s should be placebo", k)
		}
	}
	if ExpensiveCatalog.SeasonalAntivirus(1).Kind != DrugAntivirusSeasonalFlu ||
		ExpensiveCatalog.SARSAntivirus(1).Kind != DrugAntivirusSARSCoV2 ||
		ExpensiveCatalog.CholeraAntivirus(2).Kind != DrugAntivirusCholera {
		t.Fatalf("unexpected expensive antiviral slots")
	}
	if CatalogFor(TierExpensive).Tier != TierExpensive {
		t.Fatalf("CatalogFor returned the wrong tier")
	}
}
