package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/notes-studio/notes-api/internal/core/domain"
	"github.com/notes-studio/notes-api/internal/core/ports"
)

// NoteService implements note CRUD scoped to a single owner.
type NoteService struct {
	repo   ports.NoteRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewNoteService(repo ports.NoteRepository, logger zerolog.Logger) *NoteService {
	return &NoteService{repo: repo, logger: logger, now: time.Now}
}

// List returns the owner's notes in repository order (most recently updated first).
func (s *NoteService) List(ctx context.Context, ownerID int64) ([]*domain.Note, error) {
	notes, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if notes == nil {
		notes = []*domain.Note{}
	}
	return notes, nil
}

func (s *NoteService) Create(ctx context.Context, ownerID int64, title, content string) (*domain.Note, error) {
	now := s.timestamp()
	note, err := s.repo.Create(ctx, &domain.Note{
		OwnerID:   ownerID,
		Title:     domain.NormalizeTitle(title),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("failed to create note")
		return nil, fmt.Errorf("create note: %w", err)
	}

	s.logger.Info().Int64("note_id", note.ID).Int64("owner_id", ownerID).Msg("note created")
	return note, nil
}

func (s *NoteService) Get(ctx context.Context, ownerID, id int64) (*domain.Note, error) {
	note, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("get note %d: %w", id, err)
	}
	return note, nil
}

// Update applies a partial update. updated_at always moves strictly forward,
// even when two saves land within the same clock tick.
func (s *NoteService) Update(ctx context.Context, ownerID, id int64, in ports.UpdateNoteInput) (*domain.Note, error) {
	note, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("update note %d: %w", id, err)
	}

	if in.Title != nil {
		note.Title = domain.NormalizeTitle(*in.Title)
	}
	if in.Content != nil {
		note.Content = *in.Content
	}

	now := s.timestamp()
	if !now.After(note.UpdatedAt) {
		now = note.UpdatedAt.Add(time.Millisecond)
	}
	note.UpdatedAt = now

	updated, err := s.repo.Update(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("update note %d: %w", id, err)
	}

	s.logger.Info().Int64("note_id", id).Int64("owner_id", ownerID).Msg("note updated")
	return updated, nil
}

func (s *NoteService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	s.logger.Info().Int64("note_id", id).Int64("owner_id", ownerID).Msg("note deleted")
	return nil
}

// timestamp is millisecond precision so every store round-trips it unchanged.
func (s *NoteService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
