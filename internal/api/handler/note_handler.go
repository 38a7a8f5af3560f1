package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/notes-studio/notes-api/internal/api/metrics"
	"github.com/notes-studio/notes-api/internal/core/domain"
	"github.com/notes-studio/notes-api/internal/core/ports"
)

// NoteHandler serves note CRUD for the authenticated user.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// List returns the caller's notes, most recently updated first.
//
// @Summary      List notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   noteResponse
// @Failure      401  {object}  errorResponse
// @Router       /notes/ [get]
func (h *NoteHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	notes, err := h.service.List(c.Request().Context(), user.ID)
	record("list", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNoteResponses(notes))
}

// Create stores a new note. An empty title becomes "Untitled".
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNoteRequest  true  "Note"
// @Success      201   {object}  noteResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /notes/ [post]
func (h *NoteHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	note, err := h.service.Create(c.Request().Context(), user.ID, req.Title, req.Content)
	record("create", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toNoteResponse(note))
}

// Get returns one of the caller's notes.
//
// @Summary      Get a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Note id"
// @Success      200  {object}  noteResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := noteID(c)
	if err != nil {
		return err
	}

	note, err := h.service.Get(c.Request().Context(), user.ID, id)
	record("read", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Update overwrites the title and/or content of one of the caller's notes.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Note id"
// @Param        body  body      updateNoteRequest  true  "Fields to change"
// @Success      200   {object}  noteResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := noteID(c)
	if err != nil {
		return err
	}

	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	note, err := h.service.Update(c.Request().Context(), user.ID, id, ports.UpdateNoteInput{
		Title:   req.Title,
		Content: req.Content,
	})
	record("update", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Delete removes one of the caller's notes permanently.
//
// @Summary      Delete a note
// @Tags         notes
// @Security     BearerAuth
// @Param        id   path  int  true  "Note id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := noteID(c)
	if err != nil {
		return err
	}

	err = h.service.Delete(c.Request().Context(), user.ID, id)
	record("delete", err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func noteID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "id must be an integer")
	}
	return id, nil
}

func record(op string, err error) {
	result := metrics.ResultSuccess
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNoteNotFound):
		result = metrics.ResultNotFound
	default:
		result = metrics.ResultError
	}
	metrics.OperationsTotal.WithLabelValues(op, result).Inc()
}
