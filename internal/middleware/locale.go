package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/merchant-directory/internal/i18n"
)

// Paths served without a locale prefix.
var unprefixed = []string{
	"/static/",
	"/healthz",
	"/metrics",
	"/login",
	"/register",
	"/logout",
	"/settings/",
	"/sitemap.xml",
	"/robots.txt",
	"/favicon.ico",
}

// LocaleRedirect negotiates the UI language. Requests whose path does not start with a supported
// locale are redirected (307) to the same path under the negotiated one; excluded paths are served
// as they are with the negotiated locale stored in the context. It runs before routing.
func LocaleRedirect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			if locale, ok := localeSegment(path); ok {
				c.Set(ContextKeyLocale, locale)
				return next(c)
			}

			locale := negotiate(c)
			c.Set(ContextKeyLocale, locale)
			if excluded(path) {
				return next(c)
			}

			target := "/" + locale
			if path != "/" {
				target += path
			}
			if req.URL.RawQuery != "" {
				target += "?" + req.URL.RawQuery
			}
			return c.Redirect(http.StatusTemporaryRedirect, target)
		}
	}
}

// LocaleFromContext returns the locale resolved for the request.
func LocaleFromContext(c echo.Context) string {
	if val, ok := c.Get(ContextKeyLocale).(string); ok && val != "" {
		return val
	}
	return i18n.Default
}

func negotiate(c echo.Context) string {
	cookie := ""
	if ck, err := c.Cookie(i18n.Cookie); err == nil {
		cookie = ck.Value
	}
	return i18n.Negotiate(cookie, c.Request().Header.Get("Accept-Language"))
}

func localeSegment(path string) (string, bool) {
	segment := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(segment, '/'); i >= 0 {
		segment = segment[:i]
	}
	return segment, i18n.Supported(segment)
}

func excluded(path string) bool {
	if strings.HasSuffix(path, ".png") {
		return true
	}
	for _, p := range unprefixed {
		if path == strings.TrimSuffix(p, "/") || strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RequireLocale guards the /:locale route group; an unknown locale segment is not found.
func RequireLocale() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			locale := c.Param("locale")
			if !i18n.Supported(locale) {
				return echo.ErrNotFound
			}
			c.Set(ContextKeyLocale, locale)
			return next(c)
		}
	}
}
