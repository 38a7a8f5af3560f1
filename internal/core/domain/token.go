package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidToken = errors.New("could not validate credentials")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// TokenClaims is the identity carried by an access token.
type TokenClaims struct {
	UserID    int64
	Email     string
	TokenID   string
	ExpiresAt time.Time
}
