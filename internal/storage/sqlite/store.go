package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/logger"
	"github.com/julianstephens/alarmnote/internal/migration"
	"github.com/julianstephens/alarmnote/internal/storage"
	"github.com/julianstephens/alarmnote/migrations"
)

var _ storage.Provider = (*Store)(nil)

// Store keeps notes, alarms and the notification registry in one SQLite file.
type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) open() error {
	// foreign_keys makes note deletion cascade to alarms
	dsn := "file:" + s.path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

// Init creates the database file if needed, migrates it to the latest schema
// and writes any preference rows an older schema lacked.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	r, err := s.migrator()
	if err != nil {
		return err
	}
	if _, err := r.ApplyMigrations(nil); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	prefs, err := s.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to read preferences: %w", err)
	}
	if err := s.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to save default preferences: %w", err)
	}

	logger.Debug("SQLite store initialized", "path", s.path)
	return nil
}

// Load opens an existing database and refuses one whose schema does not match.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}
	if err := s.open(); err != nil {
		return err
	}

	r, err := s.migrator()
	if err != nil {
		return err
	}
	return r.ValidateVersion()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) migrator() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, sub, migration.DriverSQLite)
}

func (s *Store) MigrationStatus() (migration.Status, error) {
	r, err := s.migrator()
	if err != nil {
		return migration.Status{}, err
	}
	return r.Status()
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
