package engine

import (
	"errors"
	"fmt"
)

// SeedInfection infects Count consecutive persons.
type SeedInfection struct {
	Kind  PathogenKind `json:"kind"`
	Count int          `json:"count"`
}

// Scenario is the full configuration of a simulated world.
type Scenario struct {
	Bounds           Bounds          `json:"bounds"`
	Population       int             `json:"population"`
	CommunityShare   float64         `json:"community_share"`
	CommunityPoint   Location        `json:"community_point"`
	MinAge           int             `json:"min_age"`
	MaxAge           int             `json:"max_age"`
	MinWeight        int             `json:"min_weight"`
	MaxWeight        int             `json:"max_weight"`
	Hospitals        int             `json:"hospitals"`
	HospitalCapacity int             `json:"hospital_capacity"`
	Tier             Tier            `json:"tier"`
	SeedInfections   []SeedInfection `json:"seed_infections"`
	// SampledSeeds draws seed pathogens from their kind's distribution instead
	// of using the default potency.
	SampledSeeds bool `json:"sampled_seeds,omitempty"`
	Days         int  `json:"days"`
}

// DefaultScenario is the reference world: a 101x101 grid, 300 persons of whom a
// quarter meet at the community point, four hospitals of 100 beds stocked with
// cheap drugs, 40 cholera and 40 SARS-CoV-2 seed cases, 100 days.
func DefaultScenario() Scenario {
	return Scenario{
		Bounds:           Bounds{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100},
		Population:       300,
		CommunityShare:   0.25,
		CommunityPoint:   Location{X: 50, Y: 50},
		MinAge:           1,
		MaxAge:           90,
		MinWeight:        30,
		MaxWeight:        120,
		Hospitals:        4,
		HospitalCapacity: 100,
		Tier:             TierCheap,
		SeedInfections: []SeedInfection{
			{Kind: PathogenCholera, Count: 40},
			{Kind: PathogenSARSCoV2, Count: 40},
		},
		Days: 100,
	}
}

// Validate checks the scenario for values the simulation cannot honour.
func (s Scenario) Validate() error {
	var errs []error
	if s.Population <= 0 {
		errs = append(errs, fmt.Errorf("population must be positive, got %d", s.Population))
	}
	if s.Days < 0 {
		errs = append(errs, fmt.Errorf("days must not be negative, got %d", s.Days))
	}
	if s.Bounds.MinX > s.Bounds.MaxX || s.Bounds.MinY > s.Bounds.MaxY {
		errs = append(errs, fmt.Errorf("bounds are inverted: %+v", s.Bounds))
	}
	if !s.Bounds.Contains(s.CommunityPoint) {
		errs = append(errs, fmt.Errorf("community point %+v outside bounds", s.CommunityPoint))
	}
	if s.CommunityShare < 0 || s.CommunityShare > 1 {
		errs = append(errs, fmt.Errorf("community share must be within [0,1], got %v", s.CommunityShare))
	}
	if s.MinAge < 1 || s.MinAge > s.MaxAge {
		errs = append(errs, fmt.Errorf("age range [%d,%d] invalid", s.MinAge, s.MaxAge))
	}
	if s.MinWeight < 1 || s.MinWeight > s.MaxWeight {
		errs = append(errs, fmt.Errorf("weight range [%d,%d] invalid", s.MinWeight, s.MaxWeight))
	}
	if s.Hospitals < 0 || s.HospitalCapacity < 0 {
		errs = append(errs, fmt.Errorf("hospitals and capacity must not be negative"))
	}
	if !s.Tier.Validate() {
		errs = append(errs, fmt.Errorf("unknown drug tier %q", s.Tier))
	}
	seeded := 0
	for _, si := range s.SeedInfections {
		if !si.Kind.Validate() {
			errs = append(errs, fmt.Errorf("unknown pathogen kind %q", si.Kind))
		}
		if si.Count < 0 {
			errs = append(errs, fmt.Errorf("seed count for %s must not be negative", si.Kind))
		}
		seeded += si.Count
	}
	if seeded > s.Population {
		errs = append(errs, fmt.Errorf("%d seed infections exceed population %d", seeded, s.Population))
	}
	return errors.Join(errs...)
}

// NewHospitals builds the scenario's hospitals in admission order.
func (s Scenario) NewHospitals() []*Hospital {
	catalog := CatalogFor(s.Tier)
	out := make([]*Hospital, s.Hospitals)
	for i := range out {
		out[i] = NewHospital(i+1, s.HospitalCapacity, catalog)
	}
	return out
}
