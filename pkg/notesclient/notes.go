package notesclient

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// Note is a note as the server returns it.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// List returns the caller's notes in server order (most recently updated first).
func (c *Client) List(ctx context.Context) ([]Note, error) {
	notes := []Note{}
	if err := c.do(ctx, "list notes", http.MethodGet, "/notes/", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Create stores a new note. An empty title is saved as "Untitled" by the server.
func (c *Client) Create(ctx context.Context, title, content string) (*Note, error) {
	var n Note
	if err := c.do(ctx, "create note", http.MethodPost, "/notes/", noteRequest{Title: title, Content: content}, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Read returns ErrNotFound for ids that do not exist or belong to another user.
func (c *Client) Read(ctx context.Context, id int64) (*Note, error) {
	var n Note
	if err := c.do(ctx, "read note", http.MethodGet, notePath(id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Update replaces both title and content.
func (c *Client) Update(ctx context.Context, id int64, title, content string) (*Note, error) {
	var n Note
	if err := c.do(ctx, "update note", http.MethodPut, notePath(id), noteRequest{Title: title, Content: content}, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Delete removes the note permanently.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete note", http.MethodDelete, notePath(id), nil, nil)
}

func notePath(id int64) string {
	return "/notes/" + strconv.FormatInt(id, 10)
}
