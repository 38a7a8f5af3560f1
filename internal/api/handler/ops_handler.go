package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// OpsHandler serves the one set of external tool links the dashboard shows.
type OpsHandler struct {
	links []OpsLink
}

func NewOpsHandler(links []OpsLink) *OpsHandler {
	return &OpsHandler{links: links}
}

// Links returns the external tool links in display order.
//
// @Summary      Ops dashboard links
// @Tags         ops
// @Produce      json
// @Success      200  {array}  OpsLink
// @Router       /ops/links [get]
func (h *OpsHandler) Links(c echo.Context) error {
	links := h.links
	if links == nil {
		links = []OpsLink{}
	}
	return c.JSON(http.StatusOK, links)
}
