package alarms

import (
	"fmt"

	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/models"
)

type AlarmListCmd struct {
	Note        string `help:"Only list alarms of this note."`
	EnabledOnly bool   `help:"Hide disabled alarms."`
}

func (c *AlarmListCmd) Run(ctx *cli.Context) error {
	var (
		alarms []models.Alarm
		err    error
	)
	if c.Note != "" {
		alarms, err = ctx.Store.GetAlarmsForNote(c.Note)
	} else {
		alarms, err = ctx.Store.GetAllAlarms()
	}
	if err != nil {
		return fmt.Errorf("failed to get alarms: %w", err)
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	titles := make(map[string]string)
	var rows [][]string
	var disabled []bool
	for _, alarm := range alarms {
		if c.EnabledOnly && !alarm.Enabled {
			continue
		}
		title, ok := titles[alarm.NoteID]
		if !ok {
			if note, err := ctx.Store.GetNote(alarm.NoteID); err == nil {
				title = note.Title
			}
			titles[alarm.NoteID] = title
		}

		status := "on"
		if !alarm.Enabled {
			status = "off"
		}
		rows = append(rows, []string{
			alarm.ID,
			title,
			alarm.FormatRecurrence(),
			alarm.DisplayTime(),
			cli.FormatInstant(alarm.NextFireAt, prefs.Timezone),
			status,
		})
		disabled = append(disabled, !alarm.Enabled)
	}

	if len(rows) == 0 {
		fmt.Println("No alarms found")
		return nil
	}

	fmt.Println(cli.Table(
		[]string{"ID", "Note", "Recurrence", "Time", "Next Fire", "Enabled"},
		rows,
		func(row int) bool { return disabled[row] },
	))
	return nil
}
