// Package backup snapshots and restores the SQLite database file.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/logger"
)

const (
	// MaxBackups is the number of snapshots kept after rotation
	MaxBackups = 14
	// DirName is the directory next to the database that holds snapshots
	DirName = "backups"

	filePrefix      = constants.AppName + "-"
	fileSuffix      = ".db"
	timestampLayout = "20060102-150405"
)

// Info describes one snapshot on disk
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists and restores snapshots of one database file.
type Manager struct {
	dbPath string
	dir    string
	now    func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
		now:    time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

// Create writes a new snapshot and prunes the oldest beyond MaxBackups.
func (m *Manager) Create() (string, error) {
	path, err := m.snapshot()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old backups", "dir", m.dir, "error", err)
	}
	return path, nil
}

func (m *Manager) snapshot() (string, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextName()
	if err != nil {
		return "", err
	}

	db, err := sql.Open("sqlite", "file:"+m.dbPath+"?mode=ro")
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := verify(db); err != nil {
		return "", fmt.Errorf("database appears to be corrupted: %w", err)
	}
	// VACUUM INTO produces a consistent copy even while other connections are open
	if _, err := db.Exec("VACUUM INTO ?", path); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	logger.Info("Created backup", "path", path)
	return path, nil
}

func (m *Manager) nextName() (string, error) {
	stamp := m.now().Format(timestampLayout)
	path := filepath.Join(m.dir, filePrefix+stamp+fileSuffix)
	for i := 1; fileExists(path); i++ {
		if i > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", filePrefix, stamp, i, fileSuffix))
	}
	return path, nil
}

// List returns the snapshots in the backup directory, newest first. Files that
// do not follow the snapshot naming scheme are ignored.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.dir, entry.Name()),
			Timestamp: ts,
			Size:      fi.Size(),
		})
	}

	slices.SortFunc(backups, func(a, b Info) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return backups, nil
}

// parseName extracts the timestamp of "alarmnote-YYYYMMDD-HHMMSS[-N].db"
func parseName(name string) (time.Time, bool) {
	rest, ok := strings.CutPrefix(name, filePrefix)
	if !ok {
		return time.Time{}, false
	}
	rest, ok = strings.CutSuffix(rest, fileSuffix)
	if !ok || len(rest) < len(timestampLayout) {
		return time.Time{}, false
	}
	if tail := rest[len(timestampLayout):]; tail != "" && !strings.HasPrefix(tail, "-") {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(timestampLayout, rest[:len(timestampLayout)], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for _, b := range backups[min(len(backups), MaxBackups):] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
		logger.Debug("Removed old backup", "path", b.Path)
	}
	return nil
}

// Restore replaces the database with the snapshot at path. The current
// database is snapshotted first, outside rotation, so a restore can be undone.
// The caller must close every connection to the database beforehand.
func (m *Manager) Restore(path string) (string, error) {
	if !fileExists(path) {
		return "", fmt.Errorf("backup file does not exist: %s", path)
	}
	if err := verifyFile(path); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if fileExists(m.dbPath) {
		var err error
		if previous, err = m.snapshot(); err != nil {
			return "", fmt.Errorf("failed to back up current database before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tmp, "error", rmErr)
		}
		return "", fmt.Errorf("failed to restore database: %w", err)
	}

	logger.Info("Restored database", "from", path, "previous", previous)
	return previous, nil
}

func verify(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func verifyFile(path string) error {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return verify(db)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
