// Package view renders the server-side HTML pages.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"

	"github.com/octobees/merchant-directory/internal/dto"
	"github.com/octobees/merchant-directory/internal/i18n"
	"github.com/octobees/merchant-directory/internal/querystate"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet and icon assets served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Themes are the accepted values of the theme cookie.
var Themes = []string{"system", "light", "dark"}

// ThemeCookie stores the colour scheme preference.
const ThemeCookie = "theme"

// Fonts are the accepted values of the font cookie. The first one is the default.
var Fonts = []string{"default", "open-dyslexic"}

// FontCookie stores the reading font preference.
const FontCookie = "font"

// Page is the data every template receives. Locale, theme and user are passed explicitly by the
// handler rather than looked up by the templates. Path is the request path without its locale
// prefix when Localized, the full path otherwise. Title overrides the translated TitleKey.
type Page struct {
	Locale    string
	Theme     string
	Font      string
	User      *dto.User
	Path      string
	Localized bool
	RawQuery  string
	RequestID string
	TitleKey  string
	Title     string
	Data      any
}

// Renderer implements echo.Renderer over one template set per page.
type Renderer struct {
	catalog *i18n.Catalog
	pages   map[string]*template.Template
}

// New parses every page together with the shared layout and partials.
func New(catalog *i18n.Catalog) (*Renderer, error) {
	r := &Renderer{catalog: catalog, pages: map[string]*template.Template{}}

	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New(name).Funcs(r.funcs()).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"t":          r.catalog.T,
		"locales":    func() []string { return i18n.Locales },
		"themes":     func() []string { return Themes },
		"fonts":      func() []string { return Fonts },
		"localePath": LocalePath,
		"pageURL":    querystate.PageURL,
		"controlURL": ControlURL,
		"encode":     func(v url.Values) string { return v.Encode() },
		"str":        deref,
		"rating":     formatRating,
		"count":      formatCount,
		"flag":       func(b *bool) bool { return b != nil && *b },
		"ratings":    func() []int { return []int{1, 2, 3, 4, 5} },
		"add":        func(a, b int) int { return a + b },
		"dict":       dict,
	}
}

// LocalePath prefixes path with the locale segment.
func LocalePath(locale, p string) string {
	if p == "" || p == "/" {
		return "/" + locale
	}
	return "/" + locale + p
}

// ControlURL is the link target of a filter, sort or view option when the change is applied
// directly in the link rather than through the form endpoint.
func ControlURL(p string, current url.Values, key, value string) string {
	var next url.Values
	if key == querystate.KeyView {
		next = querystate.SetView(current, value)
	} else {
		next = querystate.SetParam(current, key, value)
	}
	if encoded := next.Encode(); encoded != "" {
		return p + "?" + encoded
	}
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatRating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}

func formatCount(n *int) string {
	if n == nil {
		return "0"
	}
	return humanize.Comma(int64(*n))
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict expects key/value pairs")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
