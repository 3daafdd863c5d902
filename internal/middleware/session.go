package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/merchant-directory/internal/auth"
	"github.com/octobees/merchant-directory/internal/dto"
)

// UserResolver looks up the profile behind a bearer token.
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) *dto.User
}

// RedirectIfAuthenticated sends visitors that already hold a session away from the login and
// register pages.
func RedirectIfAuthenticated(sessions *auth.Sessions, target string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sessions.Token(c) != "" {
				return c.Redirect(http.StatusSeeOther, target)
			}
			return next(c)
		}
	}
}

// CurrentUser resolves the session cookie into a user and stores both in the context. A missing or
// rejected session simply leaves the user unset.
func CurrentUser(sessions *auth.Sessions, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessions.Token(c)
			if token != "" {
				c.Set(ContextKeyToken, token)
				if user := users.CurrentUser(c.Request().Context(), token); user != nil {
					c.Set(ContextKeyUser, user)
				}
			}
			return next(c)
		}
	}
}

// UserFromContext returns the signed-in user, or nil.
func UserFromContext(c echo.Context) *dto.User {
	user, _ := c.Get(ContextKeyUser).(*dto.User)
	return user
}

// TokenFromContext returns the session token resolved by CurrentUser.
func TokenFromContext(c echo.Context) string {
	token, _ := c.Get(ContextKeyToken).(string)
	return token
}
