package ports

import (
	"context"

	"github.com/notes-studio/notes-api/internal/core/domain"
)

// NoteRepository defines persistence for notes. Every lookup is scoped by
// ownerID; a note owned by someone else is reported as domain.ErrNoteNotFound.
type NoteRepository interface {
	// ListByOwner returns notes ordered by updated_at desc, then id desc.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Note, error)
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	FindByID(ctx context.Context, ownerID, id int64) (*domain.Note, error)
	// Update overwrites title, content and updated_at.
	Update(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Delete(ctx context.Context, ownerID, id int64) error
}
