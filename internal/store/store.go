package store

import (
	"context"
	"encoding/json"
	errs "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/DaanHessen/contagion/internal/engine"
)

var ErrNoChange = errs.New("no change")

// Run is one recorded simulation.
type Run struct {
	ID         uuid.UUID
	Seed       string
	Scenario   engine.Scenario
	Days       int
	CreatedAt  time.Time
	FinishedAt *time.Time
}

// Recorder persists runs and their daily tallies.
type Recorder interface {
	StartRun(ctx context.Context, seed string, sc engine.Scenario) (uuid.UUID, error)
	RecordDay(ctx context.Context, runID uuid.UUID, day int, t engine.Tally) error
	FinishRun(ctx context.Context, runID uuid.UUID, days int) error
	Runs(ctx context.Context, limit int) ([]Run, error)
	DailyStats(ctx context.Context, runID uuid.UUID) ([]engine.Tally, error)
	Close() error
}

// Open picks a backend from the DSN scheme: postgres:// or postgresql:// for
// PostgreSQL, sqlite://path for a local file.
func Open(ctx context.Context, dsn string, logger *log.Logger) (Recorder, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	switch {
	case dsn == "":
		return nil, fmt.Errorf("missing DSN")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, errors.Wrap(err, "open postgres")
		}
		logger.Debug("recording to postgres")
		return db, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, errors.Wrap(err, "open sqlite")
		}
		logger.Debug("recording to sqlite", "path", path)
		return db, nil
	}
	return nil, fmt.Errorf("unsupported DSN scheme in %q", dsn)
}

// Observe streams every closed day of a run into rec.
func Observe(rec Recorder, runID uuid.UUID) engine.DayObserver {
	return engine.ObserverFunc(func(ctx context.Context, day int, t engine.Tally) error {
		return wrap(rec.RecordDay(ctx, runID, day, t), "record day")
	})
}

func encodeScenario(sc engine.Scenario) (string, error) {
	b, err := json.Marshal(sc)
	if err != nil {
		return "", errors.Wrap(err, "encode scenario")
	}
	return string(b), nil
}

func decodeScenario(raw []byte) (engine.Scenario, error) {
	var sc engine.Scenario
	if len(raw) == 0 {
		return sc, nil
	}
	if err := json.Unmarshal(raw, &sc); err != nil {
		return engine.Scenario{}, errors.Wrap(err, "decode scenario")
	}
	return sc, nil
}

func errMissingDays(have, want int) error {
	return fmt.Errorf("recorded %d of %d days", have, want)
}

func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
