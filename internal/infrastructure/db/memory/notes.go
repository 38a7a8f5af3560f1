package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/notes-studio/notes-api/internal/core/domain"
)

// NoteRepository keeps notes in a map keyed by id. Safe for concurrent use.
type NoteRepository struct {
	mu     sync.RWMutex
	nextID int64
	notes  map[int64]*domain.Note
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: make(map[int64]*domain.Note)}
}

func (r *NoteRepository) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Note, 0)
	for _, n := range r.notes {
		if n.OwnerID == ownerID {
			c := *n
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *NoteRepository) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	n := *note
	n.ID = r.nextID
	r.notes[n.ID] = &n

	out := n
	return &out, nil
}

func (r *NoteRepository) FindByID(_ context.Context, ownerID, id int64) (*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notes[id]
	if !ok || n.OwnerID != ownerID {
		return nil, domain.ErrNoteNotFound
	}
	out := *n
	return &out, nil
}

func (r *NoteRepository) Update(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[note.ID]
	if !ok || n.OwnerID != note.OwnerID {
		return nil, domain.ErrNoteNotFound
	}
	n.Title = note.Title
	n.Content = note.Content
	n.UpdatedAt = note.UpdatedAt

	out := *n
	return &out, nil
}

func (r *NoteRepository) Delete(_ context.Context, ownerID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok || n.OwnerID != ownerID {
		return domain.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}
