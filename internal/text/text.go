package text

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/DaanHessen/contagion/internal/engine"
)

// Summary is what a report is written from.
type Summary struct {
	Seed     string
	Scenario engine.Scenario
	History  []engine.Tally
	Refused  int
}

// Reporter turns a finished run into markdown.
type Reporter interface {
	Report(ctx context.Context, s Summary) (string, error)
}

// templateReporter is a deterministic, offline reporter.
type templateReporter struct {
	// rows of the daily table; 0 prints every day
	maxRows int
}

func NewTemplateReporter(maxRows int) Reporter { return &templateReporter{maxRows: maxRows} }

func (t *templateReporter) Report(ctx context.Context, s Summary) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var b strings.Builder
	sc := s.Scenario
	b.WriteString("# Outbreak report\n\n")
	fmt.Fprintf(&b, "Seed `%s` | %d persons | %d days | %d hospitals x %d beds (%s drugs)\n\n",
		s.Seed, sc.Population, len(s.History), sc.Hospitals, sc.HospitalCapacity, sc.Tier)
	if len(sc.SeedInfections) > 0 {
		b.WriteString("Seeded with ")
		for i, si := range sc.SeedInfections {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d %s", si.Count, si.Kind.Label())
		}
		b.WriteString(".\n\n")
	}
	if len(s.History) == 0 {
		b.WriteString("No days were simulated.\n")
		return b.String(), nil
	}

	last := s.History[len(s.History)-1]
	b.WriteString("## Outcome\n\n")
	fmt.Fprintf(&b, "- Deaths: **%d** (%s of the population)\n", last.Dead, percent(last.Dead, sc.Population))
	fmt.Fprintf(&b, "- Recoveries: **%d**\n", last.Recovered)
	fmt.Fprintf(&b, "- With antibodies: **%d**\n", last.WithAntibodies)
	fmt.Fprintf(&b, "- Still infected: **%d**\n", last.Infected)
	if s.Refused > 0 {
		fmt.Fprintf(&b, "- Admissions refused for lack of beds: **%d**\n", s.Refused)
	}

	b.WriteString("\n## Peaks\n\n| Counter | Peak | Day |\n|---|---:|---:|\n")
	for _, p := range engine.Peaks(s.History) {
		day := "-"
		if p.Day > 0 {
			day = fmt.Sprint(p.Day)
		}
		fmt.Fprintf(&b, "| %s | %d | %s |\n", p.Column, p.Value, day)
	}

	b.WriteString("\n## Daily counts\n\n")
	b.WriteString(Table(s.History, t.maxRows))
	return b.String(), nil
}

// Table renders the history as a markdown table, one row per day. With maxRows
// above zero the rows are sampled evenly and the last day is always kept.
func Table(history []engine.Tally, maxRows int) string {
	var b strings.Builder
	b.WriteString("| Day | " + strings.Join(engine.Columns, " | ") + " |\n")
	b.WriteString("|---:" + strings.Repeat("|---:", len(engine.Columns)) + "|\n")
	for _, i := range sampleDays(len(history), maxRows) {
		v := history[i].Values()
		fmt.Fprintf(&b, "| %d | %d | %d | %d | %d | %d |\n", i+1, v[0], v[1], v[2], v[3], v[4])
	}
	return b.String()
}

func sampleDays(n, maxRows int) []int {
	if maxRows <= 0 || n <= maxRows {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	if maxRows == 1 {
		return []int{n - 1}
	}
	out := make([]int, 0, maxRows)
	step := float64(n-1) / float64(maxRows-1)
	for k := 0; k < maxRows; k++ {
		idx := int(float64(k)*step + 0.5)
		if len(out) > 0 && out[len(out)-1] == idx {
			continue
		}
		out = append(out, idx)
	}
	return out
}

func percent(n, of int) string {
	if of <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(of))
}

// Render styles markdown for a terminal of the given width. It falls back to
// the raw markdown when the renderer cannot be built.
func Render(md string, width int) string {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
