package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Simulation owns a population and its department of health and advances them
// one day at a time. It is not safe for concurrent use.
type Simulation struct {
	Scenario Scenario
	Seed     RunSeed
	Persons  []*Person
	Dept     *DepartmentOfHealth

	logger *log.Logger
	day    int
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger routes simulation logs to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPolicy installs a department policy hook.
func WithPolicy(p Policy) Option {
	return func(s *Simulation) { s.Dept.SetPolicy(p) }
}

// NewSimulation validates the scenario and builds the world from seed.
func NewSimulation(sc Scenario, seed RunSeed, opts ...Option) (*Simulation, error) {
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	s := &Simulation{
		Scenario: sc,
		Seed:     seed,
		Persons:  NewPopulation(sc, seed.Stream("population")),
		logger:   log.New(io.Discard),
	}
	s.Dept = NewDepartmentOfHealth(sc.NewHospitals(), nil)
	for _, opt := range opts {
		opt(s)
	}
	s.Dept.logger = s.logger
	return s, nil
}

// NewSimulationFrom wraps an externally built population and department.
func NewSimulationFrom(persons []*Person, dept *DepartmentOfHealth, opts ...Option) *Simulation {
	s := &Simulation{Persons: persons, Dept: dept, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Day is the number of days simulated so far.
func (s *Simulation) Day() int { return s.day }

// History returns the closed daily tallies.
func (s *Simulation) History() []Tally { return s.Dept.History() }

// Step simulates one day. Every phase completes for the whole population before
// the next one starts.
func (s *Simulation) Step() Tally {
	s.day++
	s.Dept.MakePolicy(s.day)

	discharged := 0
	for _, h := range s.Dept.Hospitals() {
		discharged += h.TreatPatients(s.Persons)
	}
	for _, p := range s.Persons {
		p.DayActions(s.Dept)
	}
	s.contact()
	for _, p := range s.Persons {
		p.NightActions()
	}
	for _, p := range s.Persons {
		p.Report(s.Dept)
	}
	closed := s.Dept.EndDay()
	s.logger.Debug("day closed", "day", s.day, "infected", closed.Infected, "hospitalized", closed.Hospitalized,
		"dead", closed.Dead, "recovered", closed.Recovered, "discharged", discharged, "free_beds", s.Dept.FreeBeds())
	return closed
}

// contact fires both interaction directions for every unordered pair sharing a
// cell. Transmission is decided from who was contagious when the day phase
// ended, so a person infected during contact does not pass it on the same day.
func (s *Simulation) contact() {
	cells := make(map[Location][]int, len(s.Persons))
	order := make([]Location, 0, len(s.Persons))
	carriers := make([]*Pathogen, len(s.Persons))
	for i, p := range s.Persons {
		if _, seen := cells[p.Location]; !seen {
			order = append(order, p.Location)
		}
		cells[p.Location] = append(cells[p.Location], i)
		if p.Contagious() {
			carriers[i] = p.Pathogen.clone()
		}
	}
	for _, loc := range order {
		idx := cells[loc]
		for a := 0; a < len(idx); a++ {
			for b := a + 1; b < len(idx); b++ {
				i, j := idx[a], idx[b]
				if carriers[i] != nil {
					s.Persons[j].GetInfected(carriers[i])
				}
				if carriers[j] != nil {
					s.Persons[i].GetInfected(carriers[j])
				}
			}
		}
	}
}

// Run simulates days more days, notifying observers after each one. It stops
// early when ctx is done or an observer fails.
func (s *Simulation) Run(ctx context.Context, days int, observers ...DayObserver) error {
	s.logger.Info("simulation started", "seed", s.Seed.Text, "persons", len(s.Persons), "days", days)
	for i := 0; i < days; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.Advance(ctx, observers...); err != nil {
			return err
		}
	}
	last := Tally{}
	if h := s.Dept.history; len(h) > 0 {
		last = h[len(h)-1]
	}
	s.logger.Info("simulation finished", "day", s.day, "dead", last.Dead, "recovered", last.Recovered,
		"with_antibodies", last.WithAntibodies, "refused_admissions", s.Dept.Refused())
	return nil
}

// Advance steps one day and hands the closed tally to observers in order.
func (s *Simulation) Advance(ctx context.Context, observers ...DayObserver) (Tally, error) {
	t := s.Step()
	for _, o := range observers {
		if err := o.DayClosed(ctx, s.day, t); err != nil {
			return t, fmt.Errorf("observer failed on day %d: %w", s.day, err)
		}
	}
	return t, nil
}

// Census counts persons per health state.
func (s *Simulation) Census() map[HealthKind]int {
	out := make(map[HealthKind]int, len(AllHealthKinds))
	for _, p := range s.Persons {
		out[p.health.Kind]++
	}
	return out
}
