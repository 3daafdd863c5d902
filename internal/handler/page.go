package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/merchant-directory/internal/middleware"
	"github.com/octobees/merchant-directory/internal/view"
)

const preferenceMaxAge = 365 * 24 * time.Hour

// newPage collects the per-request values every template needs.
func newPage(c echo.Context, titleKey string, data any) view.Page {
	locale := middleware.LocaleFromContext(c)
	path := c.Request().URL.Path
	localized := false
	prefix := "/" + locale
	switch {
	case path == prefix:
		path, localized = "", true
	case strings.HasPrefix(path, prefix+"/"):
		path, localized = strings.TrimPrefix(path, prefix), true
	}

	return view.Page{
		Locale:    locale,
		Theme:     themeFromCookie(c),
		Font:      fontFromCookie(c),
		User:      middleware.UserFromContext(c),
		Path:      path,
		Localized: localized,
		RawQuery:  c.QueryString(),
		RequestID: middleware.RequestIDFromContext(c),
		TitleKey:  titleKey,
		Data:      data,
	}
}

func themeFromCookie(c echo.Context) string {
	cookie, err := c.Cookie(view.ThemeCookie)
	if err != nil || !validTheme(cookie.Value) {
		return "system"
	}
	return cookie.Value
}

func validTheme(theme string) bool {
	return oneOf(view.Themes, theme)
}

func fontFromCookie(c echo.Context) string {
	cookie, err := c.Cookie(view.FontCookie)
	if err != nil || !validFont(cookie.Value) {
		return view.Fonts[0]
	}
	return cookie.Value
}

func validFont(font string) bool {
	return oneOf(view.Fonts, font)
}

func oneOf(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func preferenceCookie(name, value string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(preferenceMaxAge.Seconds()),
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// safeRedirect keeps redirects on this site.
func safeRedirect(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.ContainsAny(target, "\\\r\n") {
		return fallback
	}
	return target
}
