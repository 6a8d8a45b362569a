package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"komari/internal/application/state"
)

type DiagnosticsHandler struct {
	holder *state.Holder
}

func NewDiagnosticsHandler(holder *state.Holder) *DiagnosticsHandler {
	return &DiagnosticsHandler{holder: holder}
}

// HandleTest handles POST /diagnostics/connection requests.
func (h *DiagnosticsHandler) HandleTest(c echo.Context) error {
	h.holder.TestConnection()

	return c.NoContent(http.StatusAccepted)
}

// HandleStatus handles GET /diagnostics/connection requests. The data is the
// number of sampled documents.
func (h *DiagnosticsHandler) HandleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, envelope(h.holder.Connection().Value(), func(n int) any { return n }))
}
