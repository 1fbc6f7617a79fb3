package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/DaanHessen/contagion/internal/engine"
)

// LocalDB records runs into a single SQLite file.
type LocalDB struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database file and its schema.
func OpenSQLite(ctx context.Context, path string) (*LocalDB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create database directory")
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}
	// one writer; sqlite serialises anyway
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping sqlite database")
	}
	if err := createSchemas(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schemas")
	}
	return &LocalDB{db: db}, nil
}

func createSchemas(ctx context.Context, db *sql.DB) error {
	schemas := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed TEXT NOT NULL,
			scenario TEXT NOT NULL,
			days INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			finished_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS daily_stats (
			run_id TEXT NOT NULL,
			day INTEGER NOT NULL,
			infected INTEGER NOT NULL,
			hospitalized INTEGER NOT NULL,
			dead INTEGER NOT NULL,
			recovered INTEGER NOT NULL,
			with_antibodies INTEGER NOT NULL,
			PRIMARY KEY (run_id, day),
			FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
	}
	for _, query := range schemas {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (l *LocalDB) Close() error { return l.db.Close() }

func (l *LocalDB) StartRun(ctx context.Context, seed string, sc engine.Scenario) (uuid.UUID, error) {
	scenario, err := encodeScenario(sc)
	if err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	_, err = l.db.ExecContext(ctx, `INSERT INTO runs (id, seed, scenario, days, created_at) VALUES (?, ?, ?, 0, ?)`,
		id.String(), seed, scenario, time.Now().UTC())
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "insert run")
	}
	return id, nil
}

func (l *LocalDB) RecordDay(ctx context.Context, runID uuid.UUID, day int, t engine.Tally) error {
	_, err := l.db.ExecContext(ctx, `INSERT INTO daily_stats (run_id, day, infected, hospitalized, dead, recovered, with_antibodies) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID.String(), day, t.Infected, t.Hospitalized, t.Dead, t.Recovered, t.WithAntibodies)
	return wrap(err, "insert daily stats")
}

func (l *LocalDB) FinishRun(ctx context.Context, runID uuid.UUID, days int) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_stats WHERE run_id = ?`, runID.String()).Scan(&n); err != nil {
		return errors.Wrap(err, "count daily stats")
	}
	if n != days {
		return wrap(errMissingDays(n, days), "finish run")
	}
	res, err := tx.ExecContext(ctx, `UPDATE runs SET days = ?, finished_at = ? WHERE id = ?`, days, time.Now().UTC(), runID.String())
	if err != nil {
		return errors.Wrap(err, "finish run")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.Errorf("unknown run %s", runID)
	}
	return wrap(tx.Commit(), "commit")
}

func (l *LocalDB) Runs(ctx context.Context, limit int) ([]Run, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id, seed, scenario, days, created_at, finished_at FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var (
			run      Run
			id       string
			scenario string
			finished sql.NullTime
		)
		if err := rows.Scan(&id, &run.Seed, &scenario, &run.Days, &run.CreatedAt, &finished); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, errors.Wrap(err, "parse run id")
		}
		if run.Scenario, err = decodeScenario([]byte(scenario)); err != nil {
			return nil, err
		}
		if finished.Valid {
			run.FinishedAt = &finished.Time
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (l *LocalDB) DailyStats(ctx context.Context, runID uuid.UUID) ([]engine.Tally, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT infected, hospitalized, dead, recovered, with_antibodies FROM daily_stats WHERE run_id = ? ORDER BY day`, runID.String())
	if err != nil {
		return nil, errors.Wrap(err, "list daily stats")
	}
	defer rows.Close()
	return scanTallies(rows)
}
