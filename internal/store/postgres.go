package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DaanHessen/contagion/internal/engine"
)

// DB wraps gorm.DB for repositories and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
	runs *RunRepo
	days *DailyStatRepo
}

func (d *DB) Close() error { return d.sql.Close() }

// OpenPostgres connects and pings. Schema is managed by Migrator.
func OpenPostgres(ctx context.Context, dsn string) (*DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(10)
	sdb.SetMaxIdleConns(5)
	if err := sdb.PingContext(ctx); err != nil {
		return nil, err
	}
	d := &DB{gorm: gdb, sql: sdb}
	d.runs = NewRunRepo(d)
	d.days = NewDailyStatRepo(d)
	return d, nil
}

// WithTx executes fn within a database transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

func (d *DB) StartRun(ctx context.Context, seed string, sc engine.Scenario) (uuid.UUID, error) {
	return d.runs.Create(ctx, seed, sc)
}

func (d *DB) RecordDay(ctx context.Context, runID uuid.UUID, day int, t engine.Tally) error {
	return d.days.Insert(ctx, d.gorm, runID, day, t)
}

// FinishRun stamps the run and its final day count together.
func (d *DB) FinishRun(ctx context.Context, runID uuid.UUID, days int) error {
	return d.WithTx(ctx, func(tx *gorm.DB) error {
		n, err := d.days.Count(ctx, tx, runID)
		if err != nil {
			return err
		}
		if n != days {
			return wrap(errMissingDays(n, days), "finish run")
		}
		return d.runs.Finish(ctx, tx, runID, days)
	})
}

func (d *DB) Runs(ctx context.Context, limit int) ([]Run, error) { return d.runs.List(ctx, limit) }

func (d *DB) DailyStats(ctx context.Context, runID uuid.UUID) ([]engine.Tally, error) {
	return d.days.List(ctx, runID)
}

// RunRepo basic operations.
type RunRepo struct{ db *DB }

func NewRunRepo(db *DB) *RunRepo { return &RunRepo{db: db} }

func (r *RunRepo) Create(ctx context.Context, seed string, sc engine.Scenario) (uuid.UUID, error) {
	id := uuid.New()
	scenario, err := encodeScenario(sc)
	if err != nil {
		return uuid.Nil, err
	}
	err = r.db.gorm.WithContext(ctx).Exec(`INSERT INTO runs(id, seed, scenario, days) VALUES (?,?,CAST(? AS jsonb),0)`,
		id, seed, scenario).Error
	if err != nil {
		return uuid.Nil, wrap(err, "insert run")
	}
	return id, nil
}

func (r *RunRepo) Finish(ctx context.Context, tx *gorm.DB, id uuid.UUID, days int) error {
	return wrap(tx.WithContext(ctx).Exec(`UPDATE runs SET days = ?, finished_at = now() WHERE id = ?`, days, id).Error, "finish run")
}

func (r *RunRepo) List(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.gorm.WithContext(ctx).Raw(
		`SELECT id, seed, scenario, days, created_at, finished_at FROM runs ORDER BY created_at DESC LIMIT ?`, limit).Rows()
	if err != nil {
		return nil, wrap(err, "list runs")
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var (
			run      Run
			scenario []byte
			finished sql.NullTime
		)
		if err := rows.Scan(&run.ID, &run.Seed, &scenario, &run.Days, &run.CreatedAt, &finished); err != nil {
			return nil, wrap(err, "scan run")
		}
		if run.Scenario, err = decodeScenario(scenario); err != nil {
			return nil, err
		}
		if finished.Valid {
			run.FinishedAt = &finished.Time
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// DailyStatRepo stores one row per run and day.
type DailyStatRepo struct{ db *DB }

func NewDailyStatRepo(db *DB) *DailyStatRepo { return &DailyStatRepo{db: db} }

func (r *DailyStatRepo) Insert(ctx context.Context, tx *gorm.DB, runID uuid.UUID, day int, t engine.Tally) error {
	err := tx.WithContext(ctx).Exec(`INSERT INTO daily_stats(run_id, day, infected, hospitalized, dead, recovered, with_antibodies) VALUES (?,?,?,?,?,?,?)`,
		runID, day, t.Infected, t.Hospitalized, t.Dead, t.Recovered, t.WithAntibodies).Error
	return wrap(err, "insert daily stats")
}

func (r *DailyStatRepo) Count(ctx context.Context, tx *gorm.DB, runID uuid.UUID) (int, error) {
	var n int64
	err := tx.WithContext(ctx).Raw(`SELECT COUNT(*) FROM daily_stats WHERE run_id = ?`, runID).Scan(&n).Error
	return int(n), wrap(err, "count daily stats")
}

func (r *DailyStatRepo) List(ctx context.Context, runID uuid.UUID) ([]engine.Tally, error) {
	rows, err := r.db.gorm.WithContext(ctx).Raw(
		`SELECT infected, hospitalized, dead, recovered, with_antibodies FROM daily_stats WHERE run_id = ? ORDER BY day`, runID).Rows()
	if err != nil {
		return nil, wrap(err, "list daily stats")
	}
	defer rows.Close()
	return scanTallies(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTallies(rows rowScanner) ([]engine.Tally, error) {
	var out []engine.Tally
	for rows.Next() {
		var t engine.Tally
		if err := rows.Scan(&t.Infected, &t.Hospitalized, &t.Dead, &t.Recovered, &t.WithAntibodies); err != nil {
			return nil, wrap(err, "scan daily stats")
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
