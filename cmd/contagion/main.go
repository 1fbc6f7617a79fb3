package main

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/DaanHessen/contagion/internal/engine"
	"github.com/DaanHessen/contagion/internal/network"
	"github.com/DaanHessen/contagion/internal/store"
	"github.com/DaanHessen/contagion/internal/text"
	"github.com/DaanHessen/contagion/internal/ui"
	"github.com/DaanHessen/contagion/internal/util"
)

var (
	version      = "0.1.0"
	seedAlphabet = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := util.FromEnv(os.Getenv)
	flag.StringVar(&cfg.SeedText, "seed", cfg.SeedText, "Run seed string (optional; random if omitted)")
	flag.StringVar(&cfg.DSN, "dsn", cfg.DSN, "Recording DSN: postgres://... or sqlite://path (optional)")
	flag.IntVar(&cfg.Days, "days", cfg.Days, "Days to simulate")
	flag.IntVar(&cfg.Population, "population", cfg.Population, "Number of persons")
	flag.IntVar(&cfg.Hospitals, "hospitals", cfg.Hospitals, "Number of hospitals")
	flag.IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "Beds per hospital")
	flag.BoolVar(&cfg.SampledSeeds, "sampled-seeds", cfg.SampledSeeds, "Draw seed pathogen strength from its distribution")
	flag.StringVar(&cfg.Tier, "tier", cfg.Tier, "Hospital drug tier: "+tierNames())
	flag.StringVar(&cfg.Theme, "theme", cfg.Theme, "Dashboard theme")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address for serve")
	flag.IntVar(&cfg.TickMillis, "tick", cfg.TickMillis, "Milliseconds per simulated day in the dashboard and serve")
	migrations := flag.String("migrations", "", "Migrations directory (default ./db/migrations)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "contagion [flags] [run | serve | runs [id] | migrate up|down | version]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := cfg.Logger(os.Stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}
	var err error
	switch cmd {
	case "version":
		fmt.Println("contagion", version)
		return
	case "migrate":
		err = migrateCmd(ctx, cfg, *migrations, args[1:])
	case "run":
		err = runCmd(ctx, cfg, *migrations, logger)
	case "serve":
		err = serveCmd(ctx, cfg, *migrations, logger)
	case "runs":
		err = runsCmd(ctx, cfg, args[1:], os.Stdout, logger)
	case "":
		err = dashboardCmd(ctx, cfg, *migrations, logger)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("contagion failed", "err", err)
	}
}

func migrateCmd(ctx context.Context, cfg util.Config, dir string, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("migrate requires 'up' or 'down'")
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	migrator, err := store.NewMigrator(cfg.DSN, dir)
	if err != nil {
		return err
	}
	switch args[0] {
	case "up":
		if err := migrator.Up(ctx); err != nil && err != store.ErrNoChange {
			return err
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := migrator.Down(ctx); err != nil && err != store.ErrNoChange {
			return err
		}
		fmt.Println("Migrations rolled back")
	default:
		return fmt.Errorf("unknown migrate action; use up|down")
	}
	return nil
}

// session is a simulation plus its optional recording.
type session struct {
	runID     uuid.UUID
	sim       *engine.Simulation
	observers []engine.DayObserver
	finish    func()
}

func newSession(ctx context.Context, cfg util.Config, migrations string, logger *log.Logger) (*session, error) {
	if strings.TrimSpace(cfg.SeedText) == "" {
		generated, err := generateSeed()
		if err != nil {
			return nil, fmt.Errorf("failed to generate seed: %w", err)
		}
		cfg.SeedText = generated
		logger.Info("new run seed", "seed", generated)
	}
	seed, err := cfg.RunSeed()
	if err != nil {
		return nil, err
	}
	sc, err := cfg.Scenario()
	if err != nil {
		return nil, err
	}
	sim, err := engine.NewSimulation(sc, seed, engine.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	s := &session{sim: sim, finish: func() {}}
	if cfg.DSN == "" {
		return s, nil
	}

	// Ensure postgres migrations are applied before recording
	if mig, err := store.NewMigrator(cfg.DSN, migrations); err == nil {
		migCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := mig.Up(migCtx); err != nil && err != store.ErrNoChange {
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
	}
	rec, err := store.Open(ctx, cfg.DSN, logger)
	if err != nil {
		return nil, err
	}
	runID, err := rec.StartRun(ctx, seed.Text, sc)
	if err != nil {
		rec.Close()
		return nil, err
	}
	logger.Info("recording run", "run", runID)
	s.runID = runID
	s.observers = append(s.observers, store.Observe(rec, runID))
	s.finish = func() {
		// the run may have been cancelled; record however far it got
		if err := rec.FinishRun(context.Background(), runID, sim.Day()); err != nil {
			logger.Error("finish run", "run", runID, "err", err)
		}
		rec.Close()
	}
	return s, nil
}

func runCmd(ctx context.Context, cfg util.Config, migrations string, logger *log.Logger) error {
	s, err := newSession(ctx, cfg, migrations, logger)
	if err != nil {
		return err
	}
	defer s.finish()
	if err := s.sim.Run(ctx, cfg.Days, s.observers...); err != nil {
		return err
	}
	md, err := text.NewTemplateReporter(25).Report(ctx, summaryOf(s.sim))
	if err != nil {
		return err
	}
	fmt.Print(text.Render(md, 100))
	return nil
}

func dashboardCmd(ctx context.Context, cfg util.Config, migrations string, logger *log.Logger) error {
	// keep log lines from tearing the alt screen
	quiet := cfg
	quiet.LogLevel = "error"
	s, err := newSession(ctx, cfg, migrations, quiet.Logger(os.Stderr))
	if err != nil {
		return err
	}
	defer s.finish()
	return ui.Run(ctx, s.sim, text.NewTemplateReporter(20), cfg, s.observers...)
}

func serveCmd(ctx context.Context, cfg util.Config, migrations string, logger *log.Logger) error {
	s, err := newSession(ctx, cfg, migrations, logger)
	if err != nil {
		return err
	}
	defer s.finish()

	hub := network.NewHub(logger)
	if s.runID != uuid.Nil {
		hub.RunID = s.runID.String()
	}
	go hub.Run(ctx)
	srv := &http.Server{Addr: cfg.Addr, Handler: hub.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", "err", err)
		}
	}()
	logger.Info("serving live feed", "addr", cfg.Addr, "ws", "/ws", "history", "/history")

	observers := append(s.observers, hub)
	ticker := time.NewTicker(time.Duration(max(cfg.TickMillis, 1)) * time.Millisecond)
	defer ticker.Stop()
	for s.sim.Day() < cfg.Days {
		select {
		case <-ctx.Done():
			return shutdown(srv)
		case <-ticker.C:
			if _, err := s.sim.Advance(ctx, observers...); err != nil {
				shutdown(srv)
				return err
			}
		}
	}
	logger.Info("run finished; history stays available until interrupted", "days", s.sim.Day())
	<-ctx.Done()
	return shutdown(srv)
}

// runsCmd lists recorded runs, or prints the report of one run rebuilt from its daily stats.
func runsCmd(ctx context.Context, cfg util.Config, args []string, w io.Writer, logger *log.Logger) error {
	if cfg.DSN == "" {
		return fmt.Errorf("runs needs a recording DSN (--dsn or DATABASE_URL)")
	}
	rec, err := store.Open(ctx, cfg.DSN, logger)
	if err != nil {
		return err
	}
	defer rec.Close()

	runs, err := rec.Runs(ctx, 50)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		if len(runs) == 0 {
			fmt.Fprintln(w, "No recorded runs")
			return nil
		}
		for _, r := range runs {
			state := "unfinished"
			if r.FinishedAt != nil {
				state = "finished " + r.FinishedAt.Format(time.DateTime)
			}
			fmt.Fprintf(w, "%s  seed %-16s  %3d days  %s\n", r.ID, r.Seed, r.Days, state)
		}
		return nil
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", args[0], err)
	}
	var run *store.Run
	for i := range runs {
		if runs[i].ID == id {
			run = &runs[i]
			break
		}
	}
	if run == nil {
		return fmt.Errorf("run %s not found among the %d most recent", id, len(runs))
	}
	history, err := rec.DailyStats(ctx, id)
	if err != nil {
		return err
	}
	md, err := text.NewTemplateReporter(25).Report(ctx, text.Summary{Seed: run.Seed, Scenario: run.Scenario, History: history})
	if err != nil {
		return err
	}
	fmt.Fprint(w, md)
	return nil
}

func tierNames() string {
	names := make([]string, 0, len(engine.ListTiers()))
	for _, t := range engine.ListTiers() {
		names = append(names, string(t))
	}
	return strings.Join(names, "|")
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func summaryOf(sim *engine.Simulation) text.Summary {
	return text.Summary{
		Seed:     sim.Seed.Text,
		Scenario: sim.Scenario,
		History:  sim.History(),
		Refused:  sim.Dept.Refused(),
	}
}

func generateSeed() (string, error) {
	buf := make([]byte, 10) // 16 characters base32
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToLower(seedAlphabet.EncodeToString(buf)), nil
}
