package notes

import (
	"fmt"

	"github.com/julianstephens/alarmnote/internal/cli"
)

type NoteListCmd struct{}

func (c *NoteListCmd) Run(ctx *cli.Context) error {
	notes, err := ctx.Store.GetAllNotes()
	if err != nil {
		return fmt.Errorf("failed to get notes: %w", err)
	}
	if len(notes) == 0 {
		fmt.Println("No notes found")
		return nil
	}

	rows := make([][]string, 0, len(notes))
	for _, note := range notes {
		alarms, err := ctx.Store.GetAlarmsForNote(note.ID)
		if err != nil {
			return fmt.Errorf("failed to get alarms for note %s: %w", note.ID, err)
		}
		enabled := 0
		for _, a := range alarms {
			if a.Enabled {
				enabled++
			}
		}
		rows = append(rows, []string{
			note.ID,
			note.Title,
			fmt.Sprintf("%d/%d", enabled, len(alarms)),
			note.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}

	fmt.Println(cli.Table([]string{"ID", "Title", "Alarms", "Updated"}, rows, nil))
	return nil
}
