package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/notes-studio/notes-api/internal/core/domain"
)

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, &domain.User{Email: "p3@gmail.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("expected first id 1, got %d", u.ID)
	}
	if _, err := repo.Create(ctx, &domain.User{Email: "p3@gmail.com"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	got, err := repo.FindByID(ctx, u.ID)
	if err != nil || got.Email != "p3@gmail.com" {
		t.Fatalf("find by id: %v %+v", err, got)
	}
	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestNoteRepository_OwnerScopingAndOrder(t *testing.T) {
	repo := NewNoteRepository()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	a, _ := repo.Create(ctx, &domain.Note{OwnerID: 1, Title: "a", CreatedAt: base, UpdatedAt: base})
	b, _ := repo.Create(ctx, &domain.Note{OwnerID: 1, Title: "b", CreatedAt: base, UpdatedAt: base})
	if _, err := repo.Create(ctx, &domain.Note{OwnerID: 2, Title: "other", CreatedAt: base, UpdatedAt: base}); err != nil {
		t.Fatalf("create: %v", err)
	}

	a.UpdatedAt = base.Add(time.Second)
	if _, err := repo.Update(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, _ := repo.ListByOwner(ctx, 1)
	if len(list) != 2 || list[0].ID != a.ID || list[1].ID != b.ID {
		t.Fatalf("unexpected order: %+v", list)
	}

	if _, err := repo.FindByID(ctx, 2, a.ID); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected not found for other owner, got %v", err)
	}
	if err := repo.Delete(ctx, 2, a.ID); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected not found deleting other owner's note, got %v", err)
	}
	if err := repo.Delete(ctx, 1, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, 1, a.ID); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected deleted note to be gone, got %v", err)
	}
}

func TestNoteRepository_ReturnsCopies(t *testing.T) {
	repo := NewNoteRepository()
	ctx := context.Background()

	n, _ := repo.Create(ctx, &domain.Note{OwnerID: 1, Title: "keep"})
	n.Title = "mutated"

	got, _ := repo.FindByID(ctx, 1, n.ID)
	if got.Title != "keep" {
		t.Fatalf("stored note was mutated through returned pointer: %q", got.Title)
	}
}

func TestRevoker_ExpiresEntries(t *testing.T) {
	r := NewRevoker()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	ctx := context.Background()

	if err := r.Revoke(ctx, "jti-1", now.Add(time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ := r.IsRevoked(ctx, "jti-1"); !ok {
		t.Fatal("expected token to be revoked")
	}
	if ok, _ := r.IsRevoked(ctx, "jti-2"); ok {
		t.Fatal("unknown token reported revoked")
	}

	now = now.Add(2 * time.Minute)
	if ok, _ := r.IsRevoked(ctx, "jti-1"); ok {
		t.Fatal("expected entry to lapse after expiry")
	}
}
