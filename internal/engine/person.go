package engine

import "sort"

// Location is a grid cell. Persons sharing a cell are in contact.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bounds are the inclusive extents of the world grid.
type Bounds struct {
	MinX int `json:"min_x"`
	MaxX int `json:"max_x"`
	MinY int `json:"min_y"`
	MaxY int `json:"max_y"`
}

func (b Bounds) random(r *Stream) Location {
	return Location{X: r.IntRange(b.MinX, b.MaxX), Y: r.IntRange(b.MinY, b.MaxY)}
}

// Contains reports whether l lies inside the bounds.
func (b Bounds) Contains(l Location) bool {
	return l.X >= b.MinX && l.X <= b.MaxX && l.Y >= b.MinY && l.Y <= b.MaxY
}

// Immunity is the grow-only set of pathogen kinds a person has antibodies for.
type Immunity map[PathogenKind]struct{}

func (im Immunity) Has(k PathogenKind) bool { _, ok := im[k]; return ok }
func (im Immunity) Add(k PathogenKind)      { im[k] = struct{}{} }

// Kinds returns the set in stable order.
func (im Immunity) Kinds() []PathogenKind {
	out := make([]PathogenKind, 0, len(im))
	for k := range im {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Admitter grants hospital beds to persons in critical condition.
type Admitter interface {
	Hospitalize(p *Person) bool
}

// FlagSink receives the per-person 0/1 report at the end of each day.
type FlagSink interface {
	Update(flags Tally)
}

// PersonTraits carries what population construction decides about a person.
type PersonTraits struct {
	Home      Location
	Age       int
	Weight    float64
	Movement  MovementPolicy
	Community Location
	Bounds    Bounds
}

// Person is a simulated agent. The status flags are caches maintained by state
// transitions and must not be written by callers.
type Person struct {
	ID        int
	Home      Location
	Location  Location
	Community Location
	Movement  MovementPolicy
	Age       int
	Weight    float64

	Temperature float64
	Water       float64

	Pathogen   *Pathogen
	Immunities Immunity

	Infected     bool
	Hospitalized bool
	Dead         bool
	Recovered    bool

	health HealthState
	ward   *Hospital
	bounds Bounds
	rng    *Stream
}

// NewPerson creates a healthy person at home with normal vitals. r drives the
// person's daily movement.
func NewPerson(id int, traits PersonTraits, r *Stream) *Person {
	if traits.Movement == "" {
		traits.Movement = MovementRoaming
	}
	if !traits.Movement.Validate() {
		invalidKind("movement", traits.Movement)
	}
	p := &Person{
		ID:         id,
		Home:       traits.Home,
		Location:   traits.Home,
		Community:  traits.Community,
		Movement:   traits.Movement,
		Age:        traits.Age,
		Weight:     traits.Weight,
		Immunities: Immunity{},
		health:     Healthy(),
		bounds:     traits.Bounds,
		rng:        r,
	}
	p.goToNormal()
	return p
}

// State returns the current health state.
func (p *Person) State() HealthState { return p.health }

// Contagious reports whether contact with p transmits its pathogen.
func (p *Person) Contagious() bool { return p.health.Contagious() && p.Pathogen != nil }

// Ward returns the hospital p is admitted to, if any.
func (p *Person) Ward() *Hospital { return p.ward }

// DayActions moves healthy and asymptomatic persons. Symptomatic persons stay
// put while the illness progresses; they ask admit for a bed once critical and die
// once lethal. admit may be nil when no health system is wired.
func (p *Person) DayActions(admit Admitter) {
	if p.health.Mobile() {
		p.move()
		return
	}
	if p.health.Kind == HealthSymptomatic {
		p.progressDisease()
		cond := p.Condition()
		if cond >= ConditionCritical && !p.Hospitalized && admit != nil {
			admit.Hospitalize(p)
		}
		if cond == ConditionLethal {
			p.transition(TriggerLethal)
		}
	}
}

// NightActions sends mobile persons home, advances incubation and lets the
// immune system fight a symptomatic illness.
func (p *Person) NightActions() {
	switch p.health.Kind {
	case HealthHealthy:
		p.Location = p.Home
	case HealthAsymptomatic:
		p.Location = p.Home
		p.transition(TriggerNightElapsed)
	case HealthSymptomatic:
		p.fightPathogen()
		p.ResolveIfCleared(false)
	}
}

// Interact is one direction of a contact: a contagious p infects other.
func (p *Person) Interact(other *Person) {
	if other == nil || other == p || !p.Contagious() {
		return
	}
	other.GetInfected(p.Pathogen)
}

// GetInfected adopts a copy of v unless p is not healthy or already has
// antibodies for v's kind.
func (p *Person) GetInfected(v *Pathogen) {
	if v == nil || p.health.Kind != HealthHealthy || p.Immunities.Has(v.Kind) {
		return
	}
	p.Pathogen = v.clone()
	p.transition(TriggerInfected)
}

// ResolveIfCleared ends a symptomatic illness whose pathogen strength has dropped
// to zero: the pathogen is dropped, its kind becomes immune and p is healthy
// again. restoreVitals resets temperature and water as a hospital discharge does.
// It is a no-op without a cleared pathogen.
func (p *Person) ResolveIfCleared(restoreVitals bool) bool {
	if p.health.Kind != HealthSymptomatic || p.Pathogen == nil || !p.Pathogen.Cleared() {
		return false
	}
	p.Immunities.Add(p.Pathogen.Kind)
	p.Pathogen = nil
	if restoreVitals {
		p.goToNormal()
	}
	p.transition(TriggerCleared)
	return true
}

// Flags is the person's daily 0/1 report: infected, hospitalized, dead,
// recovered, with antibodies.
func (p *Person) Flags() Tally {
	return Tally{
		Infected:       b2i(p.Infected),
		Hospitalized:   b2i(p.Hospitalized),
		Dead:           b2i(p.Dead),
		Recovered:      b2i(p.Recovered),
		WithAntibodies: b2i(len(p.Immunities) > 0),
	}
}

// Report pushes Flags to sink.
func (p *Person) Report(sink FlagSink) { sink.Update(p.Flags()) }

func (p *Person) move() {
	switch p.Movement {
	case MovementCommunity:
		p.Location = p.Community
	default:
		if p.rng != nil {
			p.Location = p.bounds.random(p.rng)
		}
	}
}

func (p *Person) transition(t Trigger) {
	next := p.health.Next(t)
	if next.Kind == p.health.Kind {
		p.health = next
		return
	}
	p.health = next
	switch next.Kind {
	case HealthAsymptomatic:
		p.Infected = true
	case HealthHealthy:
		p.releaseBed()
		p.Infected = false
		p.Hospitalized = false
		p.Recovered = true
		p.Dead = false
	case HealthDead:
		p.releaseBed()
		p.Dead = true
		p.Hospitalized = false
		p.Infected = false
		p.Recovered = false
	}
}

func (p *Person) releaseBed() {
	if p.ward != nil {
		p.ward.release()
		p.ward = nil
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
