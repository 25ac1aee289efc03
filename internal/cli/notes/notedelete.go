package notes

import (
	"fmt"

	"github.com/julianstephens/alarmnote/internal/cli"
)

type NoteDeleteCmd struct {
	ID string `arg:"" help:"Note ID to delete."`
}

func (c *NoteDeleteCmd) Run(ctx *cli.Context) error {
	note, err := ctx.Store.GetNote(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find note with ID %s: %w", c.ID, err)
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Alarms().DeleteNote(ctx.Context(), c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted note: %s (ID: %s)\n", note.Title, c.ID)
	return nil
}
