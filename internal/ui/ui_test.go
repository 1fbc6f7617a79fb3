package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/contagion/internal/engine"
	"github.com/DaanHessen/contagion/internal/util"
)

func newTestModel(t *testing.T, days int, observers ...engine.DayObserver) model {
	t.Helper()
	sim, err := engine.NewSimulation(engine.DefaultScenario(), engine.MustRunSeed("ui"))
	if err != nil {
		t.Fatalf("simulation: %v", err)
	}
	cfg := util.Default()
	cfg.Days = days
	return initialModel(context.Background(), sim, nil, cfg, observers)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTickAdvancesOneDay(t *testing.T) {
	m := newTestModel(t, 5)
	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(model)
	if m.sim.Day() != 1 || cmd == nil {
		t.Fatalf("expected day 1 and another tick, day=%d", m.sim.Day())
	}
	if !strings.Contains(m.View(), "Day 1/5") {
		t.Fatalf("view missing day counter:\n%s", m.View())
	}
}

func TestPauseAndStep(t *testing.T) {
	m := newTestModel(t, 5)
	next, _ := m.Update(key(" "))
	m = next.(model)
	if !m.paused {
		t.Fatalf("space should pause")
	}
	next, _ = m.Update(tickMsg(time.Now()))
	m = next.(model)
	if m.sim.Day() != 0 {
		t.Fatalf("paused model advanced on tick")
	}
	next, _ = m.Update(key("n"))
	m = next.(model)
	if m.sim.Day() != 1 {
		t.Fatalf("n should step one day while paused, day=%d", m.sim.Day())
	}
}

func TestStepOntoLastDayRequestsReport(t *testing.T) {
	m := newTestModel(t, 1)
	m.paused = true
	next, cmd := m.Update(key("n"))
	m = next.(model)
	if !m.done || m.sim.Day() != 1 || cmd == nil {
		t.Fatalf("stepping onto the last day should finish and request a report, day=%d done=%v", m.sim.Day(), m.done)
	}
	if rep, ok := cmd().(reportMsg); !ok || rep.err != nil || rep.md == "" {
		t.Fatalf("expected a report message")
	}
}

func TestStepObserverFailureQuits(t *testing.T) {
	boom := errors.New("disk full")
	m := newTestModel(t, 5, engine.ObserverFunc(func(context.Context, int, engine.Tally) error { return boom }))
	m.paused = true
	next, cmd := m.Update(key("n"))
	m = next.(model)
	if !errors.Is(m.err, boom) || cmd == nil {
		t.Fatalf("step should surface the observer error and quit: %v", m.err)
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit command")
	}
}

func TestRunFinishesAndRequestsReport(t *testing.T) {
	m := newTestModel(t, 2)
	var cmd tea.Cmd
	for i := 0; i < 2; i++ {
		var next tea.Model
		next, cmd = m.Update(tickMsg(time.Now()))
		m = next.(model)
	}
	if !m.done || m.sim.Day() != 2 {
		t.Fatalf("expected finished after 2 days, day=%d done=%v", m.sim.Day(), m.done)
	}
	msg := cmd()
	rep, ok := msg.(reportMsg)
	if !ok || rep.err != nil || !strings.Contains(rep.md, "Outbreak report") {
		t.Fatalf("expected report message, got %#v", msg)
	}
	next, _ := m.Update(rep)
	m = next.(model)
	if m.view != viewReport || m.report == "" {
		t.Fatalf("report view not shown")
	}
	next, _ = m.Update(tickMsg(time.Now()))
	if next.(model).sim.Day() != 2 {
		t.Fatalf("finished model kept simulating")
	}
}

func TestObserverFailureStopsDashboard(t *testing.T) {
	boom := errors.New("disk full")
	m := newTestModel(t, 5, engine.ObserverFunc(func(context.Context, int, engine.Tally) error { return boom }))
	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(model)
	if !errors.Is(m.err, boom) || !m.done || cmd == nil {
		t.Fatalf("observer error not surfaced: %v", m.err)
	}
}

func TestThemeAndSpeedKeys(t *testing.T) {
	m := newTestModel(t, 5)
	before := m.theme
	next, _ := m.Update(key("t"))
	m = next.(model)
	if m.theme == before || m.pal != paletteFor(m.theme) {
		t.Fatalf("theme did not cycle from %s", before)
	}
	for i := 0; i < 20; i++ {
		next, _ = m.Update(key("+"))
		m = next.(model)
	}
	if m.tick != minTick {
		t.Fatalf("tick should clamp at %s, got %s", minTick, m.tick)
	}
}

func TestNextThemeNameWraps(t *testing.T) {
	names := themeNames()
	last := names[len(names)-1]
	if nextThemeName(last, 1) != names[0] || nextThemeName(names[0], -1) != last {
		t.Fatalf("theme cycling should wrap around")
	}
	if nextThemeName("unknown", 1) != names[1] {
		t.Fatalf("unknown theme should start from the first name")
	}
}
