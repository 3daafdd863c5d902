package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/octobees/merchant-directory/internal/apiclient"
	"github.com/octobees/merchant-directory/internal/i18n"
	"github.com/octobees/merchant-directory/internal/middleware"
	"github.com/octobees/merchant-directory/internal/view"
)

// newBackend starts a fake REST API. Routes are keyed by path below /api/v1.
func newBackend(t *testing.T, routes map[string]http.HandlerFunc) *apiclient.Client {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range routes {
		mux.HandleFunc("/api/v1"+path, h)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return apiclient.New(server.Client(), server.URL+"/api/v1", "", time.Second)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	renderer, err := view.New(i18n.MustLoad())
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = NewErrorHandler(zerolog.Nop()).Handle
	return e
}

// localized builds a context as the /:locale group would.
func localized(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, locale string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyLocale, locale)
	return c
}
