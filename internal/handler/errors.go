package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/octobees/merchant-directory/internal/middleware"
	"github.com/octobees/merchant-directory/internal/service"
	"github.com/octobees/merchant-directory/internal/view"
)

// ErrorHandler renders failures as pages: a dedicated view for not-found and a generic page with
// retry and home links for everything else.
type ErrorHandler struct {
	logger zerolog.Logger
}

// NewErrorHandler constructs an ErrorHandler.
func NewErrorHandler(logger zerolog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle implements echo.HTTPErrorHandler.
func (h *ErrorHandler) Handle(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	switch {
	case errors.Is(err, service.ErrMerchantNotFound):
		code = http.StatusNotFound
	case errors.As(err, &he):
		code = he.Code
	}

	if code >= http.StatusInternalServerError {
		h.logger.Error().Err(err).
			Str("request_id", middleware.RequestIDFromContext(c)).
			Str("path", c.Request().URL.Path).
			Msg("request failed")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	var renderErr error
	if code == http.StatusNotFound {
		renderErr = c.Render(code, "not_found", newPage(c, "meta.notFound", nil))
	} else {
		key := "error.description"
		if code == http.StatusTooManyRequests {
			key = "error.tooManyRequests"
		}
		data := view.ErrorData{Status: code, MessageKey: key, RetryURL: c.Request().URL.RequestURI()}
		renderErr = c.Render(code, "error", newPage(c, "meta.error", data))
	}
	if renderErr != nil {
		h.logger.Error().Err(renderErr).Msg("render error page")
		_ = c.String(code, http.StatusText(code))
	}
}
