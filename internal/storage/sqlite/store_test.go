package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/alarmnote/internal/storage"
	"github.com/julianstephens/alarmnote/internal/storage/storagetest"
)

func newTestStore(t *testing.T) storage.Provider {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "alarmnote.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return s
}

func TestStore(t *testing.T) {
	storagetest.Run(t, newTestStore)
}

func TestLoadUninitialized(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := s.Load()
	if err == nil || !strings.Contains(err.Error(), "init") {
		t.Errorf("Load() error = %v, want hint to run init", err)
	}
}

func TestInitThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "alarmnote.db")
	s := NewStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("database file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("database file is empty")
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer reopened.Close()

	if reopened.GetDB() == nil {
		t.Error("GetDB() = nil after Load")
	}
	if reopened.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", reopened.GetConfigPath(), path)
	}
	// Init on an existing database is idempotent.
	if err := reopened.Init(); err != nil {
		t.Errorf("Init() on existing database error = %v", err)
	}
}
