package engine

import "context"

// Tally holds the five daily counters. A single person's report is a Tally of 0/1 values.
type Tally struct {
	Infected       int `json:"infected"`
	Hospitalized   int `json:"hospitalized"`
	Dead           int `json:"dead"`
	Recovered      int `json:"recovered"`
	WithAntibodies int `json:"with_antibodies"`
}

// Columns are the report headers in counter order.
var Columns = []string{"Infected", "Hospitalized", "Deaths", "Recoveries", "With antibodies"}

// Add returns the element-wise sum.
func (t Tally) Add(o Tally) Tally {
	return Tally{
		Infected:       t.Infected + o.Infected,
		Hospitalized:   t.Hospitalized + o.Hospitalized,
		Dead:           t.Dead + o.Dead,
		Recovered:      t.Recovered + o.Recovered,
		WithAntibodies: t.WithAntibodies + o.WithAntibodies,
	}
}

// Values returns the counters in Columns order.
func (t Tally) Values() [5]int {
	return [5]int{t.Infected, t.Hospitalized, t.Dead, t.Recovered, t.WithAntibodies}
}

// DayObserver is notified with every closed day. Days are numbered from 1.
type DayObserver interface {
	DayClosed(ctx context.Context, day int, t Tally) error
}

// ObserverFunc adapts a function to DayObserver.
type ObserverFunc func(ctx context.Context, day int, t Tally) error

func (f ObserverFunc) DayClosed(ctx context.Context, day int, t Tally) error { return f(ctx, day, t) }

// Peak is the maximum of one counter across a history and the day it happened.
type Peak struct {
	Column string
	Value  int
	Day    int
}

// Peaks returns the per-column maxima of a history, first occurrence wins.
func Peaks(history []Tally) []Peak {
	peaks := make([]Peak, len(Columns))
	for i, c := range Columns {
		peaks[i] = Peak{Column: c}
	}
	for d, t := range history {
		for i, v := range t.Values() {
			if v > peaks[i].Value {
				peaks[i].Value = v
				peaks[i].Day = d + 1
			}
		}
	}
	return peaks
}
