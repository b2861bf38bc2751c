// Package migration brings a database up to the embedded schema. Files are
// named NNN_name.sql, numbered from 001 without gaps, and every applied file
// is recorded in the schema_migrations table.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"time"
)

// Dialect selects placeholder syntax for the bookkeeping queries.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

var (
	// ErrSchemaTooNew is returned when the database was written by a newer build.
	ErrSchemaTooNew = errors.New("database schema is newer than supported")
	// ErrSchemaMismatch is returned when an applied migration no longer
	// matches the embedded file with the same version.
	ErrSchemaMismatch = errors.New("applied migrations do not match this build")
)

var fileName = regexp.MustCompile(`^(\d{3})_([a-z0-9_]+)\.sql$`)

// Migration is one embedded schema file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Record is a row of schema_migrations.
type Record struct {
	Version   int
	Name      string
	AppliedAt time.Time
}

// Runner applies migrations from files to db.
type Runner struct {
	db      *sql.DB
	files   fs.FS
	dialect Dialect
	now     func() time.Time
	log     func(msg string, keyvals ...any)
}

// NewRunner reads migrations from the root of files.
func NewRunner(db *sql.DB, files fs.FS, dialect Dialect) *Runner {
	return &Runner{
		db:      db,
		files:   files,
		dialect: dialect,
		now:     time.Now,
		log:     func(string, ...any) {},
	}
}

// WithLog routes progress messages to fn, typically logger.Info.
func (r *Runner) WithLog(fn func(msg string, keyvals ...any)) *Runner {
	if fn != nil {
		r.log = fn
	}
	return r
}

// Parse returns the migrations in files sorted by version. Non-.sql entries
// are ignored; malformed names, duplicates and gaps are errors.
func Parse(files fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var out []Migration
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		m := fileName.FindStringSubmatch(e.Name())
		if m == nil {
			return nil, fmt.Errorf("invalid migration file name %s (expected NNN_name.sql)", e.Name())
		}
		version, _ := strconv.Atoi(m[1])
		body, err := fs.ReadFile(files, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		out = append(out, Migration{Version: version, Name: m[2], SQL: string(body)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	for i, m := range out {
		if m.Version != i+1 {
			if i > 0 && m.Version == out[i-1].Version {
				return nil, fmt.Errorf("duplicate migration version %d", m.Version)
			}
			return nil, fmt.Errorf("missing migration version %d", i+1)
		}
	}
	return out, nil
}

func (r *Runner) args(n int) string {
	s := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			s += ", "
		}
		if r.dialect == DialectPostgres {
			s += "$" + strconv.Itoa(i)
		} else {
			s += "?"
		}
	}
	return s
}

func (r *Runner) ensureTable() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

// Applied lists the recorded migrations in version order.
func (r *Runner) Applied() ([]Record, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	rows, err := r.db.Query("SELECT version, name, applied_at FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var at string
		if err := rows.Scan(&rec.Version, &rec.Name, &at); err != nil {
			return nil, fmt.Errorf("failed to scan schema_migrations: %w", err)
		}
		if rec.AppliedAt, err = time.Parse(time.RFC3339, at); err != nil {
			return nil, fmt.Errorf("migration %d has a malformed applied_at %q: %w", rec.Version, at, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Current returns the highest applied version, 0 for a fresh database.
func (r *Runner) Current() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}
	var v int
	if err := r.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

// Latest returns the highest embedded version.
func (r *Runner) Latest() (int, error) {
	ms, err := Parse(r.files)
	if err != nil {
		return 0, err
	}
	return len(ms), nil
}

// Up applies every pending migration, each in its own transaction, and
// returns how many were applied.
func (r *Runner) Up() (int, error) {
	ms, err := Parse(r.files)
	if err != nil {
		return 0, err
	}
	if err := r.check(ms); err != nil {
		return 0, err
	}
	current, err := r.Current()
	if err != nil {
		return 0, err
	}
	if current == len(ms) {
		r.log("Database schema is up to date", "version", current)
		return 0, nil
	}

	start := r.now()
	applied := 0
	for _, m := range ms[current:] {
		if err := r.apply(m); err != nil {
			return applied, err
		}
		applied++
		r.log("Applied migration", "version", m.Version, "name", m.Name)
	}
	r.log("Schema migrated", "from", current, "to", len(ms), "took", r.now().Sub(start))
	return applied, nil
}

func (r *Runner) apply(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	insert := "INSERT INTO schema_migrations (version, name, applied_at) VALUES (" + r.args(3) + ")"
	if _, err := tx.Exec(insert, m.Version, m.Name, r.now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}

// Check verifies that the database can be used by this build: it must not
// be ahead of the embedded files, and every applied migration must carry
// the name of the embedded file with the same version.
func (r *Runner) Check() error {
	ms, err := Parse(r.files)
	if err != nil {
		return err
	}
	return r.check(ms)
}

func (r *Runner) check(ms []Migration) error {
	applied, err := r.Applied()
	if err != nil {
		return err
	}
	for _, rec := range applied {
		if rec.Version < 1 {
			return fmt.Errorf("%w: invalid recorded version %d", ErrSchemaMismatch, rec.Version)
		}
		if rec.Version > len(ms) {
			return fmt.Errorf("%w: database version %d, supported %d; upgrade soberly", ErrSchemaTooNew, rec.Version, len(ms))
		}
		if want := ms[rec.Version-1].Name; rec.Name != want {
			return fmt.Errorf("%w: version %d was applied as %q, this build has %q", ErrSchemaMismatch, rec.Version, rec.Name, want)
		}
	}
	return nil
}
