package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PagesHandler serves the static content pages.
type PagesHandler struct{}

// NewPagesHandler constructs a PagesHandler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Home handles GET /:locale.
func (h *PagesHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", newPage(c, "meta.home", nil))
}

// About handles GET /:locale/about.
func (h *PagesHandler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about", newPage(c, "meta.about", nil))
}
