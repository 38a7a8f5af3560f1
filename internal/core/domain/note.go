package domain

import (
	"errors"
	"strings"
	"time"
)

// DefaultNoteTitle replaces an empty title on create and update.
const DefaultNoteTitle = "Untitled"

var ErrNoteNotFound = errors.New("note not found")

// Note is a title/content record owned by exactly one user.
type Note struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeTitle trims surrounding whitespace and falls back to DefaultNoteTitle.
func NormalizeTitle(title string) string {
	t := strings.TrimSpace(title)
	if t == "" {
		return DefaultNoteTitle
	}
	return t
}
