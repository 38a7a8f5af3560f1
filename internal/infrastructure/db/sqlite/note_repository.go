package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/notes-studio/notes-api/internal/core/domain"
)

const noteColumns = `id, owner_id, title, content, created_at, updated_at`

// NoteRepository is the notes table in the local sqlite file. Timestamps are
// stored as unix milliseconds.
type NoteRepository struct {
	db *sql.DB
}

// NewNoteRepository takes a handle returned by Open, which has already migrated.
func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE owner_id = ? ORDER BY updated_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	query := `
		INSERT INTO notes (owner_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`

	out := *note
	err := r.db.QueryRowContext(ctx, query,
		note.OwnerID, note.Title, note.Content, toMillis(note.CreatedAt), toMillis(note.UpdatedAt),
	).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return &out, nil
}

func (r *NoteRepository) FindByID(ctx context.Context, ownerID, id int64) (*domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = ? AND owner_id = ?`

	n, err := scanNote(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return n, nil
}

func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	query := `
		UPDATE notes SET title = ?, content = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
		RETURNING ` + noteColumns

	n, err := scanNote(r.db.QueryRowContext(ctx, query,
		note.Title, note.Content, toMillis(note.UpdatedAt), note.ID, note.OwnerID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

func (r *NoteRepository) Delete(ctx context.Context, ownerID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if affected == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (*domain.Note, error) {
	var (
		n                domain.Note
		created, updated int64
	)
	if err := s.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &created, &updated); err != nil {
		return nil, err
	}
	n.CreatedAt = fromMillis(created)
	n.UpdatedAt = fromMillis(updated)
	return &n, nil
}
