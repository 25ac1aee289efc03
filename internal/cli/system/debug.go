package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/storage"
)

type DebugCmd struct {
	DBPath            DebugDBPathCmd            `cmd:"" help:"Show database path."`
	DumpNote          DebugDumpNoteCmd          `cmd:"" help:"Dump note data as JSON."`
	DumpAlarm         DebugDumpAlarmCmd         `cmd:"" help:"Dump alarm data as JSON."`
	DumpPrefs         DebugDumpPrefsCmd         `cmd:"" help:"Dump preferences as JSON."`
	DumpNotifications DebugDumpNotificationsCmd `cmd:"" help:"Dump registered notifications as JSON."`
	Materialize       DebugMaterializeCmd       `cmd:"" help:"Show the notifications an alarm would register now, without registering them."`
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpNoteCmd struct {
	ID string `arg:"" help:"ID of the note to dump."`
}

func (cmd *DebugDumpNoteCmd) Run(ctx *cli.Context) error {
	note, err := ctx.Store.GetNote(cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("note not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get note: %w", err)
	}
	return printJSON(note)
}

type DebugDumpAlarmCmd struct {
	ID string `arg:"" help:"ID of the alarm to dump."`
}

func (cmd *DebugDumpAlarmCmd) Run(ctx *cli.Context) error {
	alarm, err := ctx.Store.GetAlarm(cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("alarm not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get alarm: %w", err)
	}
	return printJSON(alarm)
}

type DebugDumpPrefsCmd struct{}

func (cmd *DebugDumpPrefsCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	return printJSON(prefs)
}

type DebugDumpNotificationsCmd struct{}

func (cmd *DebugDumpNotificationsCmd) Run(ctx *cli.Context) error {
	reqs, err := ctx.Store.GetPendingNotifications()
	if err != nil {
		return fmt.Errorf("failed to get notifications: %w", err)
	}
	return printJSON(reqs)
}

type DebugMaterializeCmd struct {
	ID string `arg:"" help:"ID of the alarm to materialize."`
}

func (cmd *DebugMaterializeCmd) Run(ctx *cli.Context) error {
	alarm, err := ctx.Store.GetAlarm(cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("alarm not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get alarm: %w", err)
	}
	title := ""
	if note, err := ctx.Store.GetNote(alarm.NoteID); err == nil {
		title = note.Title
	}
	return printJSON(ctx.Materializer().Materialize(alarm, title, ctx.Now()))
}
