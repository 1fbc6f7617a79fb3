package engine

import (
	"io"

	"github.com/charmbracelet/log"
)

// Policy is the department's daily hook, run before hospitals treat patients.
type Policy func(day int, d *DepartmentOfHealth)

// DepartmentOfHealth owns the hospitals, admits critical patients and collects
// the daily statistics. It is created per simulation and passed explicitly.
type DepartmentOfHealth struct {
	hospitals []*Hospital
	policy    Policy
	logger    *log.Logger

	buffer  Tally
	history []Tally
	refused int
}

// NewDepartmentOfHealth takes ownership of hospitals; their order is the
// admission scan order. logger may be nil.
func NewDepartmentOfHealth(hospitals []*Hospital, logger *log.Logger) *DepartmentOfHealth {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &DepartmentOfHealth{hospitals: hospitals, logger: logger}
}

// SetPolicy installs the daily hook. nil restores the no-op policy.
func (d *DepartmentOfHealth) SetPolicy(p Policy) { d.policy = p }

// Hospitals returns the hospitals in admission order.
func (d *DepartmentOfHealth) Hospitals() []*Hospital { return d.hospitals }

// MakePolicy runs the policy hook for day.
func (d *DepartmentOfHealth) MakePolicy(day int) {
	if d.policy != nil {
		d.policy(day, d)
	}
}

// Hospitalize admits p to the first hospital with a free bed. With no free bed p
// stays home untreated and will ask again the next day.
func (d *DepartmentOfHealth) Hospitalize(p *Person) bool {
	if p.Hospitalized {
		return true
	}
	for _, h := range d.hospitals {
		if h.admit(p) {
			d.logger.Debug("admitted", "person", p.ID, "hospital", h.ID, "free", h.Capacity())
			return true
		}
	}
	d.refused++
	d.logger.Debug("no free bed", "person", p.ID)
	return false
}

// Update accumulates one person's report for the current day.
func (d *DepartmentOfHealth) Update(flags Tally) { d.buffer = d.buffer.Add(flags) }

// EndDay appends the accumulated tally to the history and resets it.
func (d *DepartmentOfHealth) EndDay() Tally {
	closed := d.buffer
	d.history = append(d.history, closed)
	d.buffer = Tally{}
	return closed
}

// History returns a copy of the closed days.
func (d *DepartmentOfHealth) History() []Tally { return append([]Tally{}, d.history...) }

// Refused counts admission requests that found no free bed.
func (d *DepartmentOfHealth) Refused() int { return d.refused }

// FreeBeds sums free capacity across hospitals.
func (d *DepartmentOfHealth) FreeBeds() int {
	n := 0
	for _, h := range d.hospitals {
		n += h.Capacity()
	}
	return n
}
