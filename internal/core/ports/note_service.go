package ports

import (
	"context"

	"github.com/notes-studio/notes-api/internal/core/domain"
)

// UpdateNoteInput carries a partial update; nil fields keep their stored value.
type UpdateNoteInput struct {
	Title   *string
	Content *string
}

type NoteService interface {
	List(ctx context.Context, ownerID int64) ([]*domain.Note, error)
	Create(ctx context.Context, ownerID int64, title, content string) (*domain.Note, error)
	Get(ctx context.Context, ownerID, id int64) (*domain.Note, error)
	Update(ctx context.Context, ownerID, id int64, in UpdateNoteInput) (*domain.Note, error)
	Delete(ctx context.Context, ownerID, id int64) error
}
