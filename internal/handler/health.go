package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/merchant-directory/internal/i18n"
	"github.com/octobees/merchant-directory/internal/middleware"
)

// Status is the JSON envelope of the operational endpoints.
type Status struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// HealthHandler answers liveness probes. It never calls the REST API so that a slow backend does
// not get the web replicas restarted.
type HealthHandler struct {
	apiURL string
}

// NewHealthHandler constructs a HealthHandler reporting the API it is configured against.
func NewHealthHandler(apiURL string) *HealthHandler {
	return &HealthHandler{apiURL: apiURL}
}

// Healthz handles GET /healthz.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, Status{
		Status:    "ok",
		RequestID: middleware.RequestIDFromContext(c),
		Data: map[string]any{
			"api":     h.apiURL,
			"locales": i18n.Locales,
		},
	})
}
