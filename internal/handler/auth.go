package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/merchant-directory/internal/auth"
	"github.com/octobees/merchant-directory/internal/dto"
	"github.com/octobees/merchant-directory/internal/middleware"
	"github.com/octobees/merchant-directory/internal/service"
	"github.com/octobees/merchant-directory/internal/view"
)

// AuthHandler serves the login and register forms and manages the session cookie.
type AuthHandler struct {
	authService *service.AuthService
	sessions    *auth.Sessions
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", newPage(c, "meta.login", view.FormData{Action: "/login"}))
}

// Login handles POST /login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	token, state := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if token == "" {
		return c.Render(http.StatusUnprocessableEntity, "login", newPage(c, "meta.login", view.FormData{Action: "/login", Form: state}))
	}

	h.sessions.Set(c, token)
	return c.Redirect(http.StatusSeeOther, "/")
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register", newPage(c, "meta.register", view.FormData{Action: "/register"}))
}

// Register handles POST /register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	token, state := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if token == "" {
		return c.Render(http.StatusUnprocessableEntity, "register", newPage(c, "meta.register", view.FormData{Action: "/register", Form: state}))
	}

	h.sessions.Set(c, token)
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.TokenFromContext(c)
	if token == "" {
		token = h.sessions.Token(c)
	}
	h.authService.Logout(c.Request().Context(), token)
	h.sessions.Clear(c)
	return c.Redirect(http.StatusSeeOther, "/")
}
