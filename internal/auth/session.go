package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookie holds the bearer token issued by the auth API.
	SessionCookie = "session"
	sessionMaxAge = 365 * 24 * time.Hour
)

// Sessions writes and reads the HTTP-only session cookie.
type Sessions struct {
	Secure bool
	now    func() time.Time
}

// NewSessions creates a cookie helper. secure should only be false for local development over
// plain HTTP.
func NewSessions(secure bool) *Sessions {
	return &Sessions{Secure: secure, now: time.Now}
}

// Set persists token. The cookie lives as long as the token, or one year when it carries no expiry.
func (s *Sessions) Set(c echo.Context, token string) {
	now := s.now()
	expires := now.Add(sessionMaxAge)
	if info, err := Inspect(token, now); err == nil && !info.ExpiresAt.IsZero() {
		expires = info.ExpiresAt
	}
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear deletes the session cookie.
func (s *Sessions) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token returns the stored bearer token, or "" when absent or visibly expired.
func (s *Sessions) Token(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	if _, err := Inspect(cookie.Value, s.now()); errors.Is(err, ErrTokenExpired) {
		return ""
	}
	return cookie.Value
}
