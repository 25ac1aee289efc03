package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/logger"
	"github.com/julianstephens/alarmnote/internal/migration"
	"github.com/julianstephens/alarmnote/internal/storage"
	"github.com/julianstephens/alarmnote/migrations"
)

var _ storage.Provider = (*Store)(nil)

type Store struct {
	connStr string
	db      *sql.DB
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// New returns a store for connStr. Tables live in the alarmnote schema, so a
// search_path is added unless the caller already chose one.
func New(connStr string) *Store {
	return &Store{connStr: withSearchPath(connStr)}
}

// IsConnString reports whether s looks like a PostgreSQL URL rather than a
// SQLite file path.
func IsConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// connParam looks up key, ignoring case, in the query of a URL or in the
// space-separated pairs of a key/value DSN.
func connParam(connStr, key string) (string, bool) {
	if IsConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return "", false
		}
		for k, v := range u.Query() {
			if strings.EqualFold(k, key) && len(v) > 0 {
				return v[0], true
			}
		}
		return "", false
	}
	for _, pair := range strings.Fields(connStr) {
		k, v, ok := strings.Cut(pair, "=")
		if ok && strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

func withSearchPath(connStr string) string {
	if _, ok := connParam(connStr, "search_path"); ok {
		return connStr
	}
	if !IsConnString(connStr) {
		return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
	}
	u, err := url.Parse(connStr)
	if err != nil {
		logger.Warn("Failed to parse Postgres connection string", "error", err)
		return connStr
	}
	q := u.Query()
	q.Set("search_path", constants.AppName)
	u.RawQuery = q.Encode()
	return u.String()
}

// ValidateConnString checks that connStr parses as a PostgreSQL URL or DSN
// and carries no password. Credentials belong in the OS keyring, the
// environment or a .pgpass file.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	if !IsConnString(connStr) {
		if _, ok := connParam(connStr, "password"); ok {
			return ErrEmbeddedCredentials
		}
		return nil
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	if _, ok := u.User.Password(); ok {
		return ErrEmbeddedCredentials
	}
	if u.Host == "" && u.User == nil && strings.Trim(u.Path, "/") == "" {
		return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
	}
	return nil
}

func (s *Store) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if _, ok := connParam(s.connStr, "sslmode"); !ok && strings.Contains(err.Error(), "SSL is not enabled on the server") {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) Init() error {
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(constants.AppName)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	prefs, err := s.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to read preferences: %w", err)
	}
	if err := s.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to save default preferences: %w", err)
	}

	logger.Debug("PostgreSQL store initialized")
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.validateSchemaVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DriverPostgres)
}

func (s *Store) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(nil)
	return err
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

// MigrationStatus reports the schema version against the embedded migrations
func (s *Store) MigrationStatus() (migration.Status, error) {
	runner, err := s.runner()
	if err != nil {
		return migration.Status{}, err
	}
	return runner.Status()
}

func (s *Store) GetConfigPath() string {
	// Return a non-sensitive identifier instead of the full connection string
	return "postgresql"
}
