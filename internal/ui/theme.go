package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	Border    lipgloss.Color
	Infected  lipgloss.Color
	Hospital  lipgloss.Color
	Dead      lipgloss.Color
	Recovered lipgloss.Color
	Immune    lipgloss.Color
	BarEmpty  lipgloss.Color
}

var palettes = map[string]palette{
	"catppuccin": {
		Text:      lipgloss.Color("#cdd6f4"),
		Muted:     lipgloss.Color("#a6adc8"),
		Accent:    lipgloss.Color("#cba6f7"),
		Border:    lipgloss.Color("#585b70"),
		Infected:  lipgloss.Color("#fab387"),
		Hospital:  lipgloss.Color("#89b4fa"),
		Dead:      lipgloss.Color("#f38ba8"),
		Recovered: lipgloss.Color("#a6e3a1"),
		Immune:    lipgloss.Color("#94e2d5"),
		BarEmpty:  lipgloss.Color("#313244"),
	},
	"dracula": {
		Text:      lipgloss.Color("#f8f8f2"),
		Muted:     lipgloss.Color("#6272a4"),
		Accent:    lipgloss.Color("#ff79c6"),
		Border:    lipgloss.Color("#44475a"),
		Infected:  lipgloss.Color("#ffb86c"),
		Hospital:  lipgloss.Color("#8be9fd"),
		Dead:      lipgloss.Color("#ff5555"),
		Recovered: lipgloss.Color("#50fa7b"),
		Immune:    lipgloss.Color("#bd93f9"),
		BarEmpty:  lipgloss.Color("#343746"),
	},
	"gruvbox": {
		Text:      lipgloss.Color("#ebdbb2"),
		Muted:     lipgloss.Color("#a89984"),
		Accent:    lipgloss.Color("#fabd2f"),
		Border:    lipgloss.Color("#665c54"),
		Infected:  lipgloss.Color("#fe8019"),
		Hospital:  lipgloss.Color("#83a598"),
		Dead:      lipgloss.Color("#fb4934"),
		Recovered: lipgloss.Color("#b8bb26"),
		Immune:    lipgloss.Color("#8ec07c"),
		BarEmpty:  lipgloss.Color("#3c3836"),
	},
	"solarized_dark": {
		Text:      lipgloss.Color("#fdf6e3"),
		Muted:     lipgloss.Color("#93a1a1"),
		Accent:    lipgloss.Color("#b58900"),
		Border:    lipgloss.Color("#586e75"),
		Infected:  lipgloss.Color("#cb4b16"),
		Hospital:  lipgloss.Color("#268bd2"),
		Dead:      lipgloss.Color("#dc322f"),
		Recovered: lipgloss.Color("#859900"),
		Immune:    lipgloss.Color("#2aa198"),
		BarEmpty:  lipgloss.Color("#073642"),
	},
}

// counterColors follows engine.Columns order.
func (p palette) counterColors() [5]lipgloss.Color {
	return [5]lipgloss.Color{p.Infected, p.Hospital, p.Dead, p.Recovered, p.Immune}
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["catppuccin"]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}
