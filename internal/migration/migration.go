// Package migration applies the numbered SQL files embedded in the binary and
// tracks the schema version in a single-row schema_version table.
package migration

import (
	"cmp"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/logger"
)

// Driver selects the SQL dialect used for bookkeeping statements
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Status summarizes where a database stands relative to the embedded migrations
type Status struct {
	Current int
	Latest  int
	Pending []Migration
}

func (s Status) UpToDate() bool {
	return len(s.Pending) == 0 && s.Current == s.Latest
}

func (s Status) tooNew() error {
	if s.Current > s.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade %s", s.Current, s.Latest, constants.AppName)
	}
	return nil
}

type Runner struct {
	db     *sql.DB
	fs     fs.FS
	driver Driver
}

// NewRunner returns a runner over migrationFS, which must hold NNN_name.sql
// files at its root.
func NewRunner(db *sql.DB, migrationFS fs.FS, driver Driver) (*Runner, error) {
	if db == nil {
		return nil, errors.New("migration runner requires a database connection")
	}
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported migration driver %q", driver)
	}
	return &Runner{db: db, fs: migrationFS, driver: driver}, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (r *Runner) ensureVersionTable() error {
	_, err := r.db.Exec("CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)")
	if err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}
	return nil
}

// GetCurrentVersion returns the recorded schema version, 0 for a fresh database.
func (r *Runner) GetCurrentVersion() (int, error) {
	if err := r.ensureVersionTable(); err != nil {
		return 0, err
	}
	var version int
	switch err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version); {
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

func (r *Runner) SetVersion(version int) error {
	if err := r.ensureVersionTable(); err != nil {
		return err
	}
	return r.writeVersion(r.db, version)
}

func (r *Runner) writeVersion(e execer, version int) error {
	insert := "INSERT INTO schema_version (version) VALUES (?)"
	if r.driver == DriverPostgres {
		insert = "INSERT INTO schema_version (version) VALUES ($1)"
	}
	if _, err := e.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear version: %w", err)
	}
	if _, err := e.Exec(insert, version); err != nil {
		return fmt.Errorf("failed to set version: %w", err)
	}
	return nil
}

// parseFileName splits "001_init.sql" into 1 and "init".
func parseFileName(name string) (int, string, error) {
	prefix, rest, ok := strings.Cut(strings.TrimSuffix(name, ".sql"), "_")
	if !ok {
		return 0, "", fmt.Errorf("invalid migration filename format: %s (expected NNN_name.sql)", name)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, "", fmt.Errorf("invalid version number in filename %s: %w", name, err)
	}
	if version < 1 {
		return 0, "", fmt.Errorf("invalid version number in filename %s: version must be at least 1", name)
	}
	return version, rest, nil
}

// ReadMigrationFiles loads every .sql file, ordered by version.
func (r *Runner) ReadMigrationFiles() ([]Migration, error) {
	entries, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var out []Migration
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		version, name, err := parseFileName(entry.Name())
		if err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(r.fs, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}
		out = append(out, Migration{Version: version, Name: name, SQL: string(body)})
	}

	slices.SortFunc(out, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}
	return out, nil
}

func (r *Runner) Status() (Status, error) {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return Status{}, err
	}
	all, err := r.ReadMigrationFiles()
	if err != nil {
		return Status{}, err
	}

	st := Status{Current: current}
	if len(all) > 0 {
		st.Latest = all[len(all)-1].Version
	}
	for _, m := range all {
		if m.Version > current {
			st.Pending = append(st.Pending, m)
		}
	}
	return st, nil
}

// apply runs one migration and records its version in the same transaction.
func (r *Runner) apply(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	if err := r.writeVersion(tx, m.Version); err != nil {
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}

// ApplyMigrations brings the schema to the latest version and returns how many
// migrations ran. Progress lines go to report, or to the debug log when nil.
func (r *Runner) ApplyMigrations(report func(string)) (int, error) {
	if report == nil {
		report = func(s string) { logger.Debug(s) }
	}

	st, err := r.Status()
	if err != nil {
		return 0, fmt.Errorf("failed to read migration status: %w", err)
	}
	if st.Latest == 0 {
		report("No migration files found")
		return 0, nil
	}
	if err := st.tooNew(); err != nil {
		return 0, err
	}
	if len(st.Pending) == 0 {
		report(fmt.Sprintf("Database schema is up to date (version %d)", st.Current))
		return 0, nil
	}

	report(fmt.Sprintf("Applying %d migration(s) from version %d to %d", len(st.Pending), st.Current, st.Latest))
	start := time.Now()
	for i, m := range st.Pending {
		if err := r.apply(m); err != nil {
			return i, err
		}
		logger.Info("Applied migration", "version", m.Version, "name", m.Name, "driver", r.driver)
		report(fmt.Sprintf("  ✓ Migration %d (%s) applied", m.Version, m.Name))
	}
	report(fmt.Sprintf("Applied %d migration(s) in %v", len(st.Pending), time.Since(start).Round(time.Millisecond)))
	return len(st.Pending), nil
}

// ValidateVersion fails when the database is ahead of or behind the binary.
func (r *Runner) ValidateVersion() error {
	st, err := r.Status()
	if err != nil {
		return err
	}
	if err := st.tooNew(); err != nil {
		return err
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("database schema version (%d) is behind (%d) - run '%s migrate' to upgrade", st.Current, st.Latest, constants.AppName)
	}
	return nil
}
