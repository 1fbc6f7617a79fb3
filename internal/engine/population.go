package engine

import "fmt"

// NewPopulation builds the persons of a scenario: roaming persons first, then
// the community share, each with a uniformly random home, age and weight. Seed
// infections are applied in order to consecutive persons from the start, with
// default-potency pathogens unless the scenario samples them.
// r drives construction; every person gets its own child stream for movement.
func NewPopulation(s Scenario, r *Stream) []*Person {
	roaming := int(float64(s.Population) * (1 - s.CommunityShare))
	persons := make([]*Person, 0, s.Population)
	for i := 0; i < s.Population; i++ {
		movement := MovementRoaming
		if i >= roaming {
			movement = MovementCommunity
		}
		traits := PersonTraits{
			Home:      s.Bounds.random(r),
			Age:       r.IntRange(s.MinAge, s.MaxAge),
			Weight:    float64(r.IntRange(s.MinWeight, s.MaxWeight)),
			Movement:  movement,
			Community: s.CommunityPoint,
			Bounds:    s.Bounds,
		}
		persons = append(persons, NewPerson(i, traits, r.Child(fmt.Sprintf("person:%d:movement", i))))
	}
	next := 0
	for _, si := range s.SeedInfections {
		for n := 0; n < si.Count && next < len(persons); n++ {
			v := NewPathogen(si.Kind)
			if s.SampledSeeds {
				v = SamplePathogen(r.Child(fmt.Sprintf("seed:%d", next)), si.Kind)
			}
			persons[next].GetInfected(v)
			next++
		}
	}
	return persons
}
