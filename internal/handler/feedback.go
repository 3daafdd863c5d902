package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/merchant-directory/internal/middleware"
	"github.com/octobees/merchant-directory/internal/service"
	"github.com/octobees/merchant-directory/internal/view"
)

// FeedbackHandler serves the contact form.
type FeedbackHandler struct {
	service *service.FeedbackService
}

// NewFeedbackHandler constructs a FeedbackHandler.
func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// Form handles GET /:locale/contact.
func (h *FeedbackHandler) Form(c echo.Context) error {
	data := view.FormData{Action: contactAction(c)}
	return c.Render(http.StatusOK, "contact", newPage(c, "meta.contact", data))
}

// Submit handles POST /:locale/contact.
func (h *FeedbackHandler) Submit(c echo.Context) error {
	state := h.service.Submit(c.Request().Context(), c.FormValue("name"), c.FormValue("message"), c.FormValue("rating"))

	status := http.StatusOK
	if !state.Success {
		status = http.StatusUnprocessableEntity
	}
	data := view.FormData{Action: contactAction(c), Form: state}
	return c.Render(status, "contact", newPage(c, "meta.contact", data))
}

func contactAction(c echo.Context) string {
	return view.LocalePath(middleware.LocaleFromContext(c), "/contact")
}
