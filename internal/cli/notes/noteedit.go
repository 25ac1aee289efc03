package notes

import (
	"fmt"
	"strings"

	"github.com/julianstephens/alarmnote/internal/cli"
)

type NoteEditCmd struct {
	ID      string  `arg:"" help:"Note ID."`
	Title   *string `help:"New title."`
	Content *string `short:"c" help:"New body."`
}

func (c *NoteEditCmd) Run(ctx *cli.Context) error {
	note, err := ctx.Store.GetNote(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find note: %w", err)
	}

	retitled := false
	if c.Title != nil {
		title := strings.TrimSpace(*c.Title)
		if title == "" {
			return fmt.Errorf("title must not be empty")
		}
		retitled = title != note.Title
		note.Title = title
	}
	if c.Content != nil {
		note.Content = *c.Content
	}
	note.UpdatedAt = ctx.Now()

	if err := ctx.Store.UpdateNote(note); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	// Registered notifications carry the note title.
	if retitled {
		if err := ctx.Alarms().RefreshNote(ctx.Context(), note.ID); err != nil {
			return err
		}
	}

	fmt.Printf("✓ Note updated: %s\n", note.Title)
	return nil
}
