package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/notes-studio/notes-api/internal/core/domain"
)

// Context keys set by Auth.
const (
	UserKey  = "user"
	TokenKey = "token"
)

// TokenVerifier resolves a bearer token to the user it was issued to.
type TokenVerifier interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth verifies the bearer token and injects the user and raw token into the context.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			token := strings.TrimSpace(parts[1])

			user, err := verifier.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(UserKey, user)
			c.Set(TokenKey, token)
			return next(c)
		}
	}
}
