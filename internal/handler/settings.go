package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/merchant-directory/internal/i18n"
	"github.com/octobees/merchant-directory/internal/view"
)

// SettingsHandler stores the visitor's language, theme and font preferences.
type SettingsHandler struct {
	secure bool
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(secureCookies bool) *SettingsHandler {
	return &SettingsHandler{secure: secureCookies}
}

// Locale handles POST /settings/locale and sends the visitor back to the page they were on, in
// the newly selected language.
func (h *SettingsHandler) Locale(c echo.Context) error {
	locale := c.FormValue("locale")
	if !i18n.Supported(locale) {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported locale")
	}
	c.SetCookie(preferenceCookie(i18n.Cookie, locale, h.secure))

	path := safeRedirect(c.FormValue("path"), "")
	target := path
	if c.FormValue("localized") != "" || path == "" {
		target = view.LocalePath(locale, path)
	}
	if query := strings.TrimSpace(c.FormValue("query")); query != "" && !strings.ContainsAny(query, "\r\n") {
		target += "?" + query
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// Theme handles POST /settings/theme.
func (h *SettingsHandler) Theme(c echo.Context) error {
	theme := c.FormValue("theme")
	if !validTheme(theme) {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported theme")
	}
	c.SetCookie(preferenceCookie(view.ThemeCookie, theme, h.secure))
	return c.Redirect(http.StatusSeeOther, safeRedirect(c.FormValue("redirect"), "/"))
}

// Font handles POST /settings/font and switches between the default and the dyslexia-friendly
// reading font.
func (h *SettingsHandler) Font(c echo.Context) error {
	font := c.FormValue("font")
	if !validFont(font) {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported font")
	}
	c.SetCookie(preferenceCookie(view.FontCookie, font, h.secure))
	return c.Redirect(http.StatusSeeOther, safeRedirect(c.FormValue("redirect"), "/"))
}
