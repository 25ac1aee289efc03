package notes

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/models"
)

type NoteAddCmd struct {
	Title   string `arg:"" help:"Note title."`
	Content string `short:"c" help:"Note body."`
}

func (c *NoteAddCmd) Run(ctx *cli.Context) error {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}

	now := ctx.Now()
	note := models.Note{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   c.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ctx.Store.AddNote(note); err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	fmt.Printf("✓ Note added: %s (ID: %s)\n", note.Title, note.ID)
	return nil
}
