package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/storage"
	"github.com/julianstephens/alarmnote/internal/utils"
)

func (s *Store) AddNote(note models.Note) error {
	_, err := s.db.Exec(`
		INSERT INTO notes (id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		note.ID, note.Title, note.Content,
		utils.ToEpochMillis(note.CreatedAt), utils.ToEpochMillis(note.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}
	return nil
}

func (s *Store) GetNote(id string) (models.Note, error) {
	row := s.db.QueryRow(`SELECT id, title, content, created_at, updated_at FROM notes WHERE id = ?`, id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, fmt.Errorf("note %s: %w", id, storage.ErrNotFound)
	}
	return note, err
}

func (s *Store) GetAllNotes() ([]models.Note, error) {
	rows, err := s.db.Query(`SELECT id, title, content, created_at, updated_at FROM notes ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (s *Store) UpdateNote(note models.Note) error {
	res, err := s.db.Exec(`
		UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		note.Title, note.Content, utils.ToEpochMillis(note.UpdatedAt), note.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return requireRow(res, "note", note.ID)
}

func (s *Store) DeleteNote(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM alarms WHERE note_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete alarms of note %s: %w", id, err)
	}
	res, err := tx.Exec("DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if err := requireRow(res, "note", id); err != nil {
		return err
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (models.Note, error) {
	var n models.Note
	var created, updated int64
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &created, &updated); err != nil {
		return models.Note{}, err
	}
	n.CreatedAt = utils.FromEpochMillis(created)
	n.UpdatedAt = utils.FromEpochMillis(updated)
	return n, nil
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
