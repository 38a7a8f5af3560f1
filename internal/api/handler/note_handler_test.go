package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/notes-studio/notes-api/internal/api/middleware"
	"github.com/notes-studio/notes-api/internal/core/domain"
	"github.com/notes-studio/notes-api/internal/core/ports"
)

type stubNoteService struct {
	listFn   func(ctx context.Context, ownerID int64) ([]*domain.Note, error)
	createFn func(ctx context.Context, ownerID int64, title, content string) (*domain.Note, error)
	getFn    func(ctx context.Context, ownerID, id int64) (*domain.Note, error)
	updateFn func(ctx context.Context, ownerID, id int64, in ports.UpdateNoteInput) (*domain.Note, error)
	deleteFn func(ctx context.Context, ownerID, id int64) error
}

func (s *stubNoteService) List(ctx context.Context, ownerID int64) ([]*domain.Note, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubNoteService) Create(ctx context.Context, ownerID int64, title, content string) (*domain.Note, error) {
	return s.createFn(ctx, ownerID, title, content)
}

func (s *stubNoteService) Get(ctx context.Context, ownerID, id int64) (*domain.Note, error) {
	return s.getFn(ctx, ownerID, id)
}

func (s *stubNoteService) Update(ctx context.Context, ownerID, id int64, in ports.UpdateNoteInput) (*domain.Note, error) {
	return s.updateFn(ctx, ownerID, id, in)
}

func (s *stubNoteService) Delete(ctx context.Context, ownerID, id int64) error {
	return s.deleteFn(ctx, ownerID, id)
}

var owner = &domain.User{ID: 42, Email: "owner@example.com"}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.UserKey, owner)
	return c
}

func TestNoteHandler_List(t *testing.T) {
	e := newEcho()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h := NewNoteHandler(&stubNoteService{
		listFn: func(ctx context.Context, ownerID int64) ([]*domain.Note, error) {
			if ownerID != owner.ID {
				t.Fatalf("unexpected owner %d", ownerID)
			}
			return []*domain.Note{
				{ID: 2, OwnerID: ownerID, Title: "b", CreatedAt: ts, UpdatedAt: ts},
				{ID: 1, OwnerID: ownerID, Title: "a", CreatedAt: ts, UpdatedAt: ts},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	if err := h.List(authedContext(e, httptest.NewRequest(http.MethodGet, "/notes/", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var notes []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &notes); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(notes) != 2 || notes[0]["id"] != float64(2) || notes[1]["id"] != float64(1) {
		t.Fatalf("server order not preserved: %+v", notes)
	}
	if _, leaked := notes[0]["owner_id"]; leaked {
		t.Fatalf("owner id leaked: %+v", notes[0])
	}
}

func TestNoteHandler_List_EmptyIsArray(t *testing.T) {
	e := newEcho()
	h := NewNoteHandler(&stubNoteService{
		listFn: func(context.Context, int64) ([]*domain.Note, error) { return []*domain.Note{}, nil },
	})

	rec := httptest.NewRecorder()
	if err := h.List(authedContext(e, httptest.NewRequest(http.MethodGet, "/notes/", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestNoteHandler_Create(t *testing.T) {
	e := newEcho()
	h := NewNoteHandler(&stubNoteService{
		createFn: func(ctx context.Context, ownerID int64, title, content string) (*domain.Note, error) {
			if ownerID != owner.ID || title != "Groceries" || content != "milk, eggs" {
				t.Fatalf("unexpected args: %d %q %q", ownerID, title, content)
			}
			return &domain.Note{ID: 1, OwnerID: ownerID, Title: title, Content: content}, nil
		},
	})

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/notes/", `{"title":"Groceries","content":"milk, eggs"}`)
	if err := h.Create(authedContext(e, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestNoteHandler_Update_Partial(t *testing.T) {
	e := newEcho()
	h := NewNoteHandler(&stubNoteService{
		updateFn: func(ctx context.Context, ownerID, id int64, in ports.UpdateNoteInput) (*domain.Note, error) {
			if id != 7 || in.Title != nil || in.Content == nil || *in.Content != "new" {
				t.Fatalf("unexpected update: id=%d %+v", id, in)
			}
			return &domain.Note{ID: id, Title: "kept", Content: *in.Content}, nil
		},
	})

	rec := httptest.NewRecorder()
	c := authedContext(e, jsonRequest(http.MethodPut, "/notes/7", `{"content":"new"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestNoteHandler_Get_NotFoundAndBadID(t *testing.T) {
	e := newEcho()
	h := NewNoteHandler(&stubNoteService{
		getFn: func(context.Context, int64, int64) (*domain.Note, error) {
			return nil, domain.ErrNoteNotFound
		},
	})

	c := authedContext(e, httptest.NewRequest(http.MethodGet, "/notes/9", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("9")
	if err := h.Get(c); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}

	c = authedContext(e, httptest.NewRequest(http.MethodGet, "/notes/abc", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")
	var he *echo.HTTPError
	if err := h.Get(c); !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for non-numeric id, got %v", err)
	}
}

func TestNoteHandler_Delete(t *testing.T) {
	e := newEcho()
	deleted := int64(0)
	h := NewNoteHandler(&stubNoteService{
		deleteFn: func(ctx context.Context, ownerID, id int64) error {
			deleted = id
			return nil
		},
	})

	rec := httptest.NewRecorder()
	c := authedContext(e, httptest.NewRequest(http.MethodDelete, "/notes/1", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != 1 {
		t.Fatalf("expected 204 for note 1, got %d (deleted %d)", rec.Code, deleted)
	}
}

func TestNoteHandler_RequiresUser(t *testing.T) {
	e := newEcho()
	h := NewNoteHandler(&stubNoteService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/notes/", nil), httptest.NewRecorder())
	var he *echo.HTTPError
	if err := h.List(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %v", err)
	}
}
