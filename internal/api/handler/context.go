package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/notes-studio/notes-api/internal/api/middleware"
	"github.com/notes-studio/notes-api/internal/core/domain"
)

// currentUser returns the user injected by the Auth middleware. A missing user
// means the route was registered without the middleware; treat it as unauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return user, nil
}

// bearerToken returns the raw token the Auth middleware accepted.
func bearerToken(c echo.Context) (string, error) {
	token, _ := c.Get(middleware.TokenKey).(string)
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return token, nil
}
