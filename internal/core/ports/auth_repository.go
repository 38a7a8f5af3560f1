package ports

import (
	"context"

	"github.com/notes-studio/notes-api/internal/core/domain"
)

// UserRepository defines persistence for accounts.
type UserRepository interface {
	// Create stores the user and returns it with its assigned id.
	// Returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
