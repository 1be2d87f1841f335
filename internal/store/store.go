// Package store persists verification runs, assembled interview sets and
// LLM request events in SQLite through ent.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	entschema "entgo.io/ent/dialect/sql/schema"

	"github.com/saturogrp-blip/Grand/ent/migrate"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Store holds the ent driver and provides access to repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open connects to the SQLite database at dsn, applies pragmas and runs
// auto-migration.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	tables := append([]*entschema.Table{sequencesTable}, migrate.Tables...)
	if err := migrate.Create(context.Background(), migrate.NewSchema(drv), tables); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	if err := seedSequences(context.Background(), drv); err != nil {
		drv.Close()
		return nil, err
	}

	return &Store{db: db, drv: drv}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// RunRepo returns a RunRepo backed by this store.
func (s *Store) RunRepo() RunRepo {
	return &runRepo{drv: s.drv}
}

// SetRepo returns a SetRepo backed by this store.
func (s *Store) SetRepo() SetRepo {
	return &setRepo{drv: s.drv}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv}
}

// pragmas configure SQLite for single-user CLI use. The driver applies them
// to every pooled connection.
var pragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"foreign_keys(1)",
	"synchronous(NORMAL)",
}

func withPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	var b strings.Builder
	b.WriteString(dsn)
	for _, p := range pragmas {
		b.WriteString(sep + "_pragma=" + p)
		sep = "&"
	}
	return b.String()
}

// builder renders SQLite statements.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// inTx runs fn in a transaction, rolling back when it fails.
func inTx(ctx context.Context, drv *entsql.Driver, fn func(tx dialect.Tx) error) error {
	tx, err := drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: rolling back: %v", err, rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. GRAND_DB environment variable
// 2. data/grand.db under the working directory
//
// The parent directory is created.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("GRAND_DB"); p != "" {
		return p, ensureDir(p)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working dir: %w", err)
	}

	p := filepath.Join(wd, "data", "grand.db")
	return p, ensureDir(p)
}

// EnsureDir creates the parent directory of an explicit database path.
func EnsureDir(path string) error {
	return ensureDir(path)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
