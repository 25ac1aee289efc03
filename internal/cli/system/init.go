package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/alarmnote/internal/backup"
	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing SQLite database, after backing it up, before initialization."`
	Source string `help:"Source database path or connection string to copy notes and alarms from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			saved, err := backup.NewManager(dbPath).Create()
			if err != nil {
				return fmt.Errorf("failed to back up existing database: %w", err)
			}
			fmt.Printf("Backed up existing database to: %s\n", saved)
			// Close first so the file is not held open
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		source, err := cli.OpenStore(c.Source)
		if err != nil {
			return fmt.Errorf("invalid source: %w", err)
		}
		if err := copyData(source, ctx.Store); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		fmt.Println("Copy completed successfully!")
	}

	return nil
}

// copyData copies preferences, notes, alarms and registered notifications
// from source into dest. Notes go first so alarms find their owner.
func copyData(source, dest storage.Provider) error {
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	prefs, err := source.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences from source: %w", err)
	}
	if err := dest.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to save preferences to destination: %w", err)
	}
	fmt.Println("  Copied preferences")

	if err := copyEach("notes", source.GetAllNotes, dest.AddNote, func(n models.Note) string { return n.ID }); err != nil {
		return err
	}
	if err := copyEach("alarms", source.GetAllAlarms, dest.AddAlarm, func(a models.Alarm) string { return a.ID }); err != nil {
		return err
	}
	return copyEach("notifications", source.GetPendingNotifications, dest.SaveNotification,
		func(r models.NotificationRequest) string { return r.ID })
}

func copyEach[T any](kind string, list func() ([]T, error), put func(T) error, id func(T) string) error {
	items, err := list()
	if err != nil {
		return fmt.Errorf("failed to get %s from source: %w", kind, err)
	}
	for _, item := range items {
		if err := put(item); err != nil {
			return fmt.Errorf("failed to copy %s %s: %w", kind, id(item), err)
		}
	}
	fmt.Printf("  Copied %d %s\n", len(items), kind)
	return nil
}
