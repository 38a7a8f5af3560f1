package handler

import (
	"time"

	"github.com/notes-studio/notes-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Detail string `json:"detail"`
}

// --- Auth ---

type signupRequest struct {
	FullName string `json:"full_name" validate:"max=100"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

// --- Notes ---

type createNoteRequest struct {
	Title   string `json:"title"   validate:"max=255"`
	Content string `json:"content"`
}

// updateNoteRequest leaves a field untouched when it is absent from the body.
type updateNoteRequest struct {
	Title   *string `json:"title"   validate:"omitempty,max=255"`
	Content *string `json:"content"`
}

type noteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Ops ---

// OpsLink is one external tool shown on the dashboard.
type OpsLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, FullName: u.FullName, CreatedAt: u.CreatedAt}
}

func toNoteResponse(n *domain.Note) noteResponse {
	return noteResponse{ID: n.ID, Title: n.Title, Content: n.Content, CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt}
}

func toNoteResponses(notes []*domain.Note) []noteResponse {
	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return out
}
