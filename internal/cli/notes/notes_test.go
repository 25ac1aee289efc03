package notes

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/alarmnote/internal/alarms"
	"github.com/julianstephens/alarmnote/internal/backup"
	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/storage"
	"github.com/julianstephens/alarmnote/internal/storage/sqlite"
)

var now = time.Date(2026, 1, 6, 10, 0, 0, 0, time.Local)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Store: store,
		Clock: func() time.Time { return now },
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func addNote(t *testing.T, ctx *cli.Context, title string) string {
	t.Helper()
	if err := (&NoteAddCmd{Title: title}).Run(ctx); err != nil {
		t.Fatalf("note add failed: %v", err)
	}
	notes, err := ctx.Store.GetAllNotes()
	if err != nil {
		t.Fatalf("failed to get notes: %v", err)
	}
	for _, n := range notes {
		if n.Title == title {
			return n.ID
		}
	}
	t.Fatalf("note %q not stored", title)
	return ""
}

func TestNoteAddCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	id := addNote(t, ctx, "  Groceries  ")
	note, err := ctx.Store.GetNote(id)
	if err != nil {
		t.Fatalf("failed to get note: %v", err)
	}
	if note.Title != "Groceries" {
		t.Errorf("Title = %q, want trimmed title", note.Title)
	}

	if err := (&NoteAddCmd{Title: "   "}).Run(ctx); err == nil {
		t.Error("expected error for blank title, got nil")
	}
}

func TestNoteListCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&NoteListCmd{}).Run(ctx); err != nil {
		t.Errorf("note list on empty store failed: %v", err)
	}
	addNote(t, ctx, "Groceries")
	if err := (&NoteListCmd{}).Run(ctx); err != nil {
		t.Errorf("note list failed: %v", err)
	}
}

func TestNoteEditCmd_RetitleRefreshesNotifications(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	id := addNote(t, ctx, "Groceries")
	_, err := ctx.Alarms().Create(context.Background(), alarms.CreateInput{
		NoteID:    id,
		Type:      constants.AlarmRepeating,
		TimeOfDay: "09:00",
		Weekdays:  []time.Weekday{time.Monday},
	})
	if err != nil {
		t.Fatalf("failed to create alarm: %v", err)
	}

	title := "Market"
	if err := (&NoteEditCmd{ID: id, Title: &title}).Run(ctx); err != nil {
		t.Fatalf("note edit failed: %v", err)
	}

	reqs, err := ctx.Store.GetPendingNotifications()
	if err != nil {
		t.Fatalf("failed to get notifications: %v", err)
	}
	if len(reqs) != 1 || reqs[0].Title != "Market" {
		t.Errorf("pending = %+v, want one request titled Market", reqs)
	}

	blank := ""
	if err := (&NoteEditCmd{ID: id, Title: &blank}).Run(ctx); err == nil {
		t.Error("expected error for blank title, got nil")
	}
	if err := (&NoteEditCmd{ID: "missing", Title: &title}).Run(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("edit of missing note error = %v, want ErrNotFound", err)
	}
}

func TestNoteDeleteCmd_RemovesAlarmsAndNotifications(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	id := addNote(t, ctx, "Groceries")
	alarm, err := ctx.Alarms().Create(context.Background(), alarms.CreateInput{
		NoteID:    id,
		Type:      constants.AlarmOneTime,
		TimeOfDay: "18:00",
		Date:      "2026-01-06",
	})
	if err != nil {
		t.Fatalf("failed to create alarm: %v", err)
	}

	if err := (&NoteDeleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("note delete failed: %v", err)
	}

	if _, err := ctx.Store.GetAlarm(alarm.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetAlarm() after delete error = %v, want ErrNotFound", err)
	}
	reqs, err := ctx.Store.GetPendingNotifications()
	if err != nil {
		t.Fatalf("failed to get notifications: %v", err)
	}
	if len(reqs) != 0 {
		t.Errorf("pending = %d requests, want 0", len(reqs))
	}
	if saved, err := backup.NewManager(ctx.Store.GetConfigPath()).List(); err != nil || len(saved) != 1 {
		t.Errorf("automatic backups = %v, %v, want one", saved, err)
	}
}
