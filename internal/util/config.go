package util

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/DaanHessen/contagion/internal/engine"
)

// Config holds runtime settings and flags.
type Config struct {
	SeedText     string
	DSN          string // postgres://... or sqlite://path; empty disables recording
	Days         int
	Population   int
	Hospitals    int
	Capacity     int
	Tier         string // cheap|expensive
	SampledSeeds bool
	Theme        string
	LogLevel     string
	Addr         string
	TickMillis   int
}

// Default returns the settings used when neither flags nor environment say otherwise.
func Default() Config {
	sc := engine.DefaultScenario()
	return Config{
		Days:       sc.Days,
		Population: sc.Population,
		Hospitals:  sc.Hospitals,
		Capacity:   sc.HospitalCapacity,
		Tier:       string(sc.Tier),
		Theme:      "catppuccin",
		LogLevel:   "info",
		Addr:       ":8080",
		TickMillis: 150,
	}
}

// FromEnv overlays environment settings on Default. lookup is usually os.Getenv.
func FromEnv(lookup func(string) string) Config {
	cfg := Default()
	if v := lookup("CONTAGION_SEED"); v != "" {
		cfg.SeedText = v
	}
	if v := lookup("DATABASE_URL"); v != "" {
		cfg.DSN = v
	}
	if v := lookup("CONTAGION_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := lookup("CONTAGION_THEME"); v != "" {
		cfg.Theme = v
	}
	if n, err := strconv.Atoi(lookup("CONTAGION_DAYS")); err == nil {
		cfg.Days = n
	}
	return cfg
}

// Scenario maps the settings onto the default world.
func (c Config) Scenario() (engine.Scenario, error) {
	sc := engine.DefaultScenario()
	sc.Days = c.Days
	if c.Population > 0 {
		sc.Population = c.Population
	}
	if c.Hospitals >= 0 {
		sc.Hospitals = c.Hospitals
	}
	if c.Capacity >= 0 {
		sc.HospitalCapacity = c.Capacity
	}
	sc.SeedInfections = fitSeeds(sc.SeedInfections, sc.Population)
	sc.SampledSeeds = c.SampledSeeds
	if c.Tier != "" {
		sc.Tier = engine.Tier(strings.ToLower(c.Tier))
	}
	if err := sc.Validate(); err != nil {
		return engine.Scenario{}, errors.Wrap(err, "scenario")
	}
	return sc, nil
}

// fitSeeds scales the seed counts down proportionally when together they
// exceed the population. Counts that already fit are returned unchanged.
func fitSeeds(seeds []engine.SeedInfection, population int) []engine.SeedInfection {
	total := 0
	for _, si := range seeds {
		total += si.Count
	}
	out := append([]engine.SeedInfection(nil), seeds...)
	if total <= population || total == 0 {
		return out
	}
	for i := range out {
		out[i].Count = out[i].Count * population / total
	}
	return out
}

// RunSeed parses the configured seed text.
func (c Config) RunSeed() (engine.RunSeed, error) {
	seed, err := engine.NewRunSeed(strings.TrimSpace(c.SeedText))
	return seed, errors.Wrap(err, "seed")
}

// Logger builds the process logger at the configured level. Unknown levels fall back to info.
func (c Config) Logger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "contagion",
	})
}
