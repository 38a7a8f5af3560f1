package ports

import (
	"context"

	"github.com/notes-studio/notes-api/internal/core/domain"
)

// AuthResult is what signup and login hand back to the transport layer.
type AuthResult struct {
	AccessToken string
	User        *domain.User
}

// RegisterInput carries the signup form. FullName is optional.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Authenticate resolves a bearer token to its user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}
