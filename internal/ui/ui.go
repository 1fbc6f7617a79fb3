package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DaanHessen/contagion/internal/engine"
	"github.com/DaanHessen/contagion/internal/text"
	"github.com/DaanHessen/contagion/internal/util"
)

const (
	viewDashboard = "dashboard"
	viewReport    = "report"
	viewHelp      = "help"

	historyRows = 12
	barWidth    = 24
	minTick     = 20 * time.Millisecond
	maxTick     = 2 * time.Second
)

type tickMsg time.Time

type reportMsg struct {
	md  string
	err error
}

type model struct {
	ctx       context.Context
	sim       *engine.Simulation
	observers []engine.DayObserver
	reporter  text.Reporter

	days   int
	tick   time.Duration
	paused bool
	done   bool
	err    error

	theme  string
	pal    palette
	view   string
	report string
	status string

	width  int
	height int
}

func initialModel(ctx context.Context, sim *engine.Simulation, reporter text.Reporter, cfg util.Config, observers []engine.DayObserver) model {
	tick := time.Duration(cfg.TickMillis) * time.Millisecond
	if tick < minTick {
		tick = minTick
	}
	if reporter == nil {
		reporter = text.NewTemplateReporter(20)
	}
	return model{
		ctx:       ctx,
		sim:       sim,
		observers: observers,
		reporter:  reporter,
		days:      cfg.Days,
		tick:      tick,
		theme:     cfg.Theme,
		pal:       paletteFor(cfg.Theme),
		view:      viewDashboard,
	}
}

func (m model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) reportCmd() tea.Cmd {
	summary := text.Summary{
		Seed:     m.sim.Seed.Text,
		Scenario: m.sim.Scenario,
		History:  m.sim.History(),
		Refused:  m.sim.Dept.Refused(),
	}
	ctx, reporter := m.ctx, m.reporter
	return func() tea.Msg {
		md, err := reporter.Report(ctx, summary)
		return reportMsg{md: md, err: err}
	}
}

// tea.Model implementation ---------------------------------------------------
func (m model) Init() tea.Cmd {
	if m.days <= 0 {
		return nil
	}
	return m.tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.paused || m.done {
			return m, nil
		}
		return m.advance()
	case reportMsg:
		if msg.err != nil {
			m.status = "report failed: " + msg.err.Error()
			return m, nil
		}
		m.report = text.Render(msg.md, m.width)
		m.view = viewReport
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			if m.done {
				return m, nil
			}
			m.paused = !m.paused
			if !m.paused {
				return m, m.tickCmd()
			}
		case "n":
			if m.paused && !m.done {
				return m.advance()
			}
		case "+", "=":
			m.tick = clampTick(m.tick / 2)
		case "-":
			m.tick = clampTick(m.tick * 2)
		case "t":
			m.theme = nextThemeName(m.theme, 1)
			m.pal = paletteFor(m.theme)
		case "r":
			if m.report != "" {
				m.view = toggle(m.view, viewReport)
			}
		case "?":
			m.view = toggle(m.view, viewHelp)
		case "esc":
			m.view = viewDashboard
		}
	}
	return m, nil
}

// advance runs one day. On the last day it stops ticking and requests the report.
func (m model) advance() (tea.Model, tea.Cmd) {
	if m.sim.Day() >= m.days {
		m.done = true
		return m, m.reportCmd()
	}
	if _, err := m.sim.Advance(m.ctx, m.observers...); err != nil {
		m.err = err
		m.done = true
		m.status = err.Error()
		return m, tea.Quit
	}
	if m.sim.Day() >= m.days {
		m.done = true
		return m, m.reportCmd()
	}
	if m.paused {
		return m, nil
	}
	return m, m.tickCmd()
}

func (m model) View() string {
	switch m.view {
	case viewReport:
		return lipgloss.JoinVertical(lipgloss.Left, m.renderTopBar(), m.report, m.renderBottomBar())
	case viewHelp:
		return lipgloss.JoinVertical(lipgloss.Left, m.renderTopBar(), m.renderHelp(), m.renderBottomBar())
	}
	return m.renderDashboard()
}

// Layout rendering -----------------------------------------------------------
func (m model) renderDashboard() string {
	w := m.width
	if w <= 0 {
		w = 100
	}
	panel := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(m.pal.Border).Padding(0, 1)
	left := lipgloss.JoinVertical(lipgloss.Left,
		panel.Render(m.renderCounters()),
		panel.Render(m.renderHospitals()),
	)
	right := panel.Width(max(w-lipgloss.Width(left)-4, 30)).Render(m.renderHistory())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTopBar(), body, m.renderBottomBar())
}

func (m model) renderTopBar() string {
	state := "running"
	switch {
	case m.err != nil:
		state = "failed"
	case m.done:
		state = "finished"
	case m.paused:
		state = "paused"
	}
	left := strings.Join([]string{"CONTAGION", "seed " + m.sim.Seed.Text, string(m.sim.Scenario.Tier) + " drugs", state}, " • ")
	right := fmt.Sprintf("Day %d/%d", m.sim.Day(), m.days)
	w := m.width
	if w <= 0 {
		w = 100
	}
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Bold(true).Foreground(m.pal.Accent).Render(left + strings.Repeat(" ", gap) + right)
}

func (m model) renderBottomBar() string {
	keys := "[space] pause  [n] step  [+/-] speed  [t] theme  [r] report  [?] help  [q] quit"
	line := fmt.Sprintf("tick %s  theme %s", m.tick, m.theme)
	if m.status != "" {
		line += "  " + m.status
	}
	return lipgloss.NewStyle().Foreground(m.pal.Muted).Render(keys + "\n" + line)
}

func (m model) renderCounters() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(m.pal.Text).Render("POPULATION") + "\n")
	var today engine.Tally
	if h := m.sim.History(); len(h) > 0 {
		today = h[len(h)-1]
	}
	total := len(m.sim.Persons)
	colors := m.pal.counterColors()
	for i, v := range today.Values() {
		label := fmt.Sprintf("%-16s", engine.Columns[i])
		b.WriteString(label + m.bar(v, total, colors[i]) + fmt.Sprintf(" %4d\n", v))
	}
	census := m.sim.Census()
	b.WriteString(lipgloss.NewStyle().Foreground(m.pal.Muted).Render(fmt.Sprintf(
		"healthy %d  asymptomatic %d  symptomatic %d",
		census[engine.HealthHealthy], census[engine.HealthAsymptomatic], census[engine.HealthSymptomatic])))
	return b.String()
}

func (m model) renderHospitals() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(m.pal.Text).Render("HOSPITALS") + "\n")
	hospitals := m.sim.Dept.Hospitals()
	if len(hospitals) == 0 {
		b.WriteString("(none)")
		return b.String()
	}
	for _, h := range hospitals {
		b.WriteString(fmt.Sprintf("#%-2d %-14s", h.ID, "beds used") + m.bar(h.Occupied(), h.MaxCapacity(), m.pal.Hospital) +
			fmt.Sprintf(" %3d/%d\n", h.Occupied(), h.MaxCapacity()))
	}
	b.WriteString(lipgloss.NewStyle().Foreground(m.pal.Muted).Render(fmt.Sprintf("refused admissions %d", m.sim.Dept.Refused())))
	return b.String()
}

func (m model) renderHistory() string {
	history := m.sim.History()
	start := len(history) - historyRows
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(m.pal.Text).Render("RECENT DAYS") + "\n")
	b.WriteString(fmt.Sprintf("%4s %8s %8s %8s %8s %8s\n", "day", "inf", "hosp", "dead", "recov", "immune"))
	for i := start; i < len(history); i++ {
		v := history[i].Values()
		b.WriteString(fmt.Sprintf("%4d %8d %8d %8d %8d %8d\n", i+1, v[0], v[1], v[2], v[3], v[4]))
	}
	if len(history) == 0 {
		b.WriteString("(no days yet)\n")
	}
	return b.String()
}

func (m model) renderHelp() string {
	return strings.Join([]string{
		"Each tick simulates one day: policy, treatment, day actions, contact, night actions, report.",
		"",
		"space / p   pause or resume",
		"n           step a single day while paused",
		"+ / -       faster or slower ticks",
		"t           cycle colour theme",
		"r           toggle the final report once the run is finished",
		"esc         back to the dashboard",
		"q           quit",
	}, "\n")
}

func (m model) bar(v, total int, fill lipgloss.Color) string {
	n := 0
	if total > 0 {
		n = int(float64(v)/float64(total)*barWidth + 0.5)
	}
	if n > barWidth {
		n = barWidth
	}
	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", n)) +
		lipgloss.NewStyle().Foreground(m.pal.BarEmpty).Render(strings.Repeat("·", barWidth-n))
}

func toggle(current, target string) string {
	if current == target {
		return viewDashboard
	}
	return target
}

func clampTick(d time.Duration) time.Duration {
	if d < minTick {
		return minTick
	}
	if d > maxTick {
		return maxTick
	}
	return d
}
