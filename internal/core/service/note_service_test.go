package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/notes-studio/notes-api/internal/core/domain"
	"github.com/notes-studio/notes-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubNoteRepo struct {
	byID      map[int64]*domain.Note
	nextID    int64
	createErr error
}

func newStubNoteRepo() *stubNoteRepo {
	return &stubNoteRepo{byID: make(map[int64]*domain.Note)}
}

func (r *stubNoteRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Note, error) {
	var out []*domain.Note
	for _, n := range r.byID {
		if n.OwnerID == ownerID {
			clone := *n
			out = append(out, &clone)
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

func (r *stubNoteRepo) Create(_ context.Context, n *domain.Note) (*domain.Note, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *n
	clone.ID = r.nextID
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubNoteRepo) FindByID(_ context.Context, ownerID, id int64) (*domain.Note, error) {
	n, ok := r.byID[id]
	if !ok || n.OwnerID != ownerID {
		return nil, domain.ErrNoteNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *stubNoteRepo) Update(_ context.Context, n *domain.Note) (*domain.Note, error) {
	stored, ok := r.byID[n.ID]
	if !ok || stored.OwnerID != n.OwnerID {
		return nil, domain.ErrNoteNotFound
	}
	clone := *n
	r.byID[n.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubNoteRepo) Delete(_ context.Context, ownerID, id int64) error {
	n, ok := r.byID[id]
	if !ok || n.OwnerID != ownerID {
		return domain.ErrNoteNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func registerInput(name, email, password string) ports.RegisterInput {
	return ports.RegisterInput{FullName: name, Email: email, Password: password}
}

func strPtr(s string) *string { return &s }

// frozenClock returns a clock that never advances.
func frozenClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// ---------------------------------------------------------------------------
// Create / Get
// ---------------------------------------------------------------------------

func TestNoteService_Create_Success(t *testing.T) {
	svc := NewNoteService(newStubNoteRepo(), discardLogger)

	note, err := svc.Create(context.Background(), 1, "Groceries", "milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.ID == 0 {
		t.Error("expected server-assigned id")
	}
	if note.CreatedAt.IsZero() || !note.CreatedAt.Equal(note.UpdatedAt) {
		t.Errorf("expected created_at == updated_at on create, got %v / %v", note.CreatedAt, note.UpdatedAt)
	}

	got, err := svc.Get(context.Background(), 1, note.ID)
	if err != nil {
		t.Fatalf("get after create: %v", err)
	}
	if got.Title != "Groceries" || got.Content != "milk" {
		t.Errorf("unexpected note: %+v", got)
	}
}

func TestNoteService_Create_EmptyTitleUsesPlaceholder(t *testing.T) {
	svc := NewNoteService(newStubNoteRepo(), discardLogger)

	note, err := svc.Create(context.Background(), 1, "   ", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.Title != domain.DefaultNoteTitle {
		t.Errorf("expected %q, got %q", domain.DefaultNoteTitle, note.Title)
	}
}

func TestNoteService_Create_RepoError(t *testing.T) {
	repo := newStubNoteRepo()
	repo.createErr = errors.New("db unavailable")
	svc := NewNoteService(repo, discardLogger)

	if _, err := svc.Create(context.Background(), 1, "x", "y"); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

func TestNoteService_Get_OtherOwnerIsNotFound(t *testing.T) {
	svc := NewNoteService(newStubNoteRepo(), discardLogger)
	note, _ := svc.Create(context.Background(), 1, "mine", "")

	if _, err := svc.Get(context.Background(), 2, note.ID); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestNoteService_List_ScopedAndOrdered(t *testing.T) {
	svc := NewNoteService(newStubNoteRepo(), discardLogger)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	svc.now = frozenClock(base)
	first, _ := svc.Create(context.Background(), 1, "first", "")
	svc.now = frozenClock(base.Add(time.Minute))
	second, _ := svc.Create(context.Background(), 1, "second", "")
	_, _ = svc.Create(context.Background(), 2, "someone else", "")

	svc.now = frozenClock(base.Add(2 * time.Minute))
	if _, err := svc.Update(context.Background(), 1, first.ID, ports.UpdateNoteInput{Content: strPtr("edited")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 notes for owner 1, got %d", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Errorf("expected most recently updated first, got ids %d, %d", list[0].ID, list[1].ID)
	}
}

func TestNoteService_List_EmptyIsNotNil(t *testing.T) {
	svc := NewNoteService(newStubNoteRepo(), discardLogger)

	list, err := svc.List(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if list == nil {
		t.Error("expected empty slice, got nil")
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestNoteService_Update_OverwritesFields(t *testing.T) {
	svc := NewNoteService(newStubNoteRepo(), discardLogger)
	note, _ := svc.Create(context.Background(), 1, "Untitled", "")

	updated, err := svc.Update(context.Background(), 1, note.ID, ports.UpdateNoteInput{
		Title:   strPtr("Groceries"),
		Content: strPtr("milk, eggs"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Groceries" || updated.Content != "milk, eggs" {
		t.Errorf("unexpected note: %+v", updated)
	}
	if !updated.CreatedAt.Equal(note.CreatedAt) {
		t.Errorf("created_at must not change: %v -> %v", note.CreatedAt, updated.CreatedAt)
	}
}

func TestNoteService_Update_PartialKeepsMissingFields(t *testing.T) {
	svc := NewNoteService(newStubNoteRepo(), discardLogger)
	note, _ := svc.Create(context.Background(), 1, "Title", "body")

	updated, err := svc.Update(context.Background(), 1, note.ID, ports.UpdateNoteInput{Content: strPtr("new body")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Title" {
		t.Errorf("title must be kept, got %q", updated.Title)
	}
}

func TestNoteService_Update_UpdatedAtStrictlyIncreases(t *testing.T) {
	svc := NewNoteService(newStubNoteRepo(), discardLogger)
	svc.now = frozenClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	note, _ := svc.Create(context.Background(), 1, "a", "")
	prev := note.UpdatedAt
	for i := 0; i < 3; i++ {
		updated, err := svc.Update(context.Background(), 1, note.ID, ports.UpdateNoteInput{Content: strPtr("x")})
		if err != nil {
			t.Fatal(err)
		}
		if !updated.UpdatedAt.After(prev) {
			t.Fatalf("update %d: updated_at %v not after %v", i, updated.UpdatedAt, prev)
		}
		prev = updated.UpdatedAt
	}
}

func TestNoteService_Update_NotFound(t *testing.T) {
	svc := NewNoteService(newStubNoteRepo(), discardLogger)

	_, err := svc.Update(context.Background(), 1, 99, ports.UpdateNoteInput{Title: strPtr("x")})
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestNoteService_Delete_IsPermanent(t *testing.T) {
	svc := NewNoteService(newStubNoteRepo(), discardLogger)
	note, _ := svc.Create(context.Background(), 1, "gone soon", "")

	if err := svc.Delete(context.Background(), 1, note.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), 1, note.ID); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), 1, note.ID); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("second delete: expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteService_Delete_OtherOwner(t *testing.T) {
	svc := NewNoteService(newStubNoteRepo(), discardLogger)
	note, _ := svc.Create(context.Background(), 1, "mine", "")

	if err := svc.Delete(context.Background(), 2, note.ID); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), 1, note.ID); err != nil {
		t.Errorf("note must survive a foreign delete, got %v", err)
	}
}
