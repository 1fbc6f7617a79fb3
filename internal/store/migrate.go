package store

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrator handles PostgreSQL schema migrations using golang-migrate. SQLite
// files create their own schema on open.
type Migrator struct {
	dsn string
	dir string
}

// NewMigrator reads migrations from dir, or db/migrations under the working
// directory when dir is empty.
func NewMigrator(dsn, dir string) (*Migrator, error) {
	if dsn == "" {
		return nil, fmt.Errorf("missing DSN")
	}
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil, fmt.Errorf("migrations only apply to postgres DSNs")
	}
	return &Migrator{dsn: dsn, dir: dir}, nil
}

func (m *Migrator) sourceURL() (string, error) {
	dir := m.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(wd, "db", "migrations")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

func (m *Migrator) Up(ctx context.Context) error {
	return m.apply(ctx, func(mig *migrate.Migrate) error { return mig.Up() })
}

func (m *Migrator) Down(ctx context.Context) error {
	return m.apply(ctx, func(mig *migrate.Migrate) error { return mig.Steps(-1) })
}

func (m *Migrator) apply(ctx context.Context, step func(*migrate.Migrate) error) error {
	src, err := m.sourceURL()
	if err != nil {
		return err
	}
	mig, err := migrate.New(src, m.dsn)
	if err != nil {
		return wrap(err, "init migrations")
	}
	defer mig.Close()
	done := make(chan error, 1)
	go func() { done <- step(mig) }()
	select {
	case <-ctx.Done():
		mig.GracefulStop <- true
		<-done
		return ctx.Err()
	case err := <-done:
		if err == migrate.ErrNoChange {
			return ErrNoChange
		}
		return wrap(err, "migrate")
	}
}
