package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/microservices-console/internal/application"
	"github.com/oksasatya/microservices-console/internal/interface/view"
	"github.com/oksasatya/microservices-console/pkg/response"
)

// StatusHandler exposes the shared status board. It needs no page session.
type StatusHandler struct {
	Board    *application.StatusBoard
	Renderer *view.Renderer
}

func NewStatusHandler(board *application.StatusBoard, r *view.Renderer) *StatusHandler {
	return &StatusHandler{Board: board, Renderer: r}
}

// Fragment returns the two status badges for the page's polling script.
func (h *StatusHandler) Fragment(c *gin.Context) {
	out, err := h.Renderer.RenderString(view.StatusTemplate, h.Board.Snapshot())
	if err != nil {
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(out))
}

// JSON returns the indicators in the standard envelope.
func (h *StatusHandler) JSON(c *gin.Context) {
	response.Write(c, response.Success(c, http.StatusOK, h.Board.Snapshot(), "service status", nil))
}
