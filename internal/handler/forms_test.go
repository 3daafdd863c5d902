package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/merchant-directory/internal/auth"
	"github.com/octobees/merchant-directory/internal/middleware"
	"github.com/octobees/merchant-directory/internal/service"
)

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == auth.SessionCookie {
			return ck
		}
	}
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	e := newEcho(t)
	api := newBackend(t, map[string]http.HandlerFunc{
		"/auth/login": func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Errorf("parse form: %v", err)
			}
			if r.PostForm.Get("password") != "correct-horse" {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Incorrect email or password"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"access_token": "opaque-token", "token_type": "bearer"})
		},
	})
	h := NewAuthHandler(service.NewAuthService(api), auth.NewSessions(false))

	tests := map[string]struct {
		form        url.Values
		expectCode  int
		expectBody  string
		expectToken string
	}{
		"invalid form": {
			form:       url.Values{"email": {"not-an-email"}, "password": {"x"}},
			expectCode: http.StatusUnprocessableEntity,
			expectBody: "Invalid email address",
		},
		"rejected credentials": {
			form:       url.Values{"email": {"budi@example.com"}, "password": {"wrong-password"}},
			expectCode: http.StatusUnprocessableEntity,
			expectBody: "Incorrect email or password",
		},
		"success": {
			form:        url.Values{"email": {"budi@example.com"}, "password": {"correct-horse"}},
			expectCode:  http.StatusSeeOther,
			expectToken: "opaque-token",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(postForm("/login", tt.form), rec)
			if err := h.Login(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected status %d, got %d", tt.expectCode, rec.Code)
			}
			if tt.expectBody != "" && !strings.Contains(rec.Body.String(), tt.expectBody) {
				t.Fatalf("expected body to contain %q", tt.expectBody)
			}
			ck := sessionCookie(rec)
			if tt.expectToken == "" {
				if ck != nil {
					t.Fatalf("did not expect a session cookie")
				}
				return
			}
			if ck == nil || ck.Value != tt.expectToken || !ck.HttpOnly {
				t.Fatalf("expected http-only session cookie, got %+v", ck)
			}
			if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
				t.Fatalf("expected redirect to /, got %q", loc)
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho(t)
	var revoked atomic.Value
	api := newBackend(t, map[string]http.HandlerFunc{
		"/auth/logout": func(w http.ResponseWriter, r *http.Request) {
			revoked.Store(r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusNoContent)
		},
	})
	h := NewAuthHandler(service.NewAuthService(api), auth.NewSessions(false))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "opaque-token"})
	rec := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := revoked.Load().(string); got != "Bearer opaque-token" {
		t.Fatalf("expected upstream revoke with bearer token, got %q", got)
	}
	ck := sessionCookie(rec)
	if ck == nil || ck.MaxAge >= 0 || ck.Value != "" {
		t.Fatalf("expected session cookie to be cleared, got %+v", ck)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
}

func TestFeedbackHandler_Submit(t *testing.T) {
	e := newEcho(t)
	var received atomic.Int32
	api := newBackend(t, map[string]http.HandlerFunc{
		"/feedbacks": func(w http.ResponseWriter, r *http.Request) {
			received.Add(1)
			writeJSON(w, http.StatusCreated, map[string]any{"id": 1})
		},
	})
	h := NewFeedbackHandler(service.NewFeedbackService(api))

	t.Run("invalid", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(postForm("/en/contact", url.Values{"name": {"Sari"}, "message": {""}, "rating": {"9"}}), rec)
		c.Set(middleware.ContextKeyLocale, "en")
		if err := h.Submit(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		if received.Load() != 0 {
			t.Fatalf("invalid feedback must not reach the api")
		}
		if !strings.Contains(rec.Body.String(), `value="Sari"`) {
			t.Fatalf("expected valid field to be kept")
		}
	})

	t.Run("success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(postForm("/id/contact", url.Values{"name": {"Sari"}, "message": {"Mantap"}, "rating": {"5"}}), rec)
		c.Set(middleware.ContextKeyLocale, "id")
		if err := h.Submit(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK || received.Load() != 1 {
			t.Fatalf("expected accepted feedback, got %d (calls %d)", rec.Code, received.Load())
		}
		if !strings.Contains(rec.Body.String(), `action="/id/contact"`) {
			t.Fatalf("expected localized form action")
		}
	})
}

func TestSettingsHandler(t *testing.T) {
	e := newEcho(t)
	h := NewSettingsHandler(false)

	tests := map[string]struct {
		handler   func(echo.Context) error
		form      url.Values
		expectLoc string
		cookie    string
	}{
		"locale on localized page": {
			handler:   h.Locale,
			form:      url.Values{"locale": {"id"}, "path": {"/explore"}, "query": {"search=kopi"}, "localized": {"1"}},
			expectLoc: "/id/explore?search=kopi",
			cookie:    "locale=id",
		},
		"locale on unprefixed page": {
			handler:   h.Locale,
			form:      url.Values{"locale": {"en"}, "path": {"/login"}},
			expectLoc: "/login",
			cookie:    "locale=en",
		},
		"locale with foreign path": {
			handler:   h.Locale,
			form:      url.Values{"locale": {"en"}, "path": {"//evil.example"}},
			expectLoc: "/en",
			cookie:    "locale=en",
		},
		"theme": {
			handler:   h.Theme,
			form:      url.Values{"theme": {"dark"}, "redirect": {"/en/about"}},
			expectLoc: "/en/about",
			cookie:    "theme=dark",
		},
		"font": {
			handler:   h.Font,
			form:      url.Values{"font": {"open-dyslexic"}, "redirect": {"/id/explore?search=kopi"}},
			expectLoc: "/id/explore?search=kopi",
			cookie:    "font=open-dyslexic",
		},
		"theme with external redirect": {
			handler:   h.Theme,
			form:      url.Values{"theme": {"light"}, "redirect": {"https://evil.example"}},
			expectLoc: "/",
			cookie:    "theme=light",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := tt.handler(e.NewContext(postForm("/settings", tt.form), rec)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if loc := rec.Header().Get(echo.HeaderLocation); loc != tt.expectLoc {
				t.Fatalf("expected %q, got %q", tt.expectLoc, loc)
			}
			if !strings.Contains(rec.Header().Get("Set-Cookie"), tt.cookie) {
				t.Fatalf("expected cookie %q, got %q", tt.cookie, rec.Header().Get("Set-Cookie"))
			}
		})
	}

	rec := httptest.NewRecorder()
	if err := h.Locale(e.NewContext(postForm("/settings/locale", url.Values{"locale": {"fr"}}), rec)); err == nil {
		t.Fatalf("expected unsupported locale to be rejected")
	}
	rec = httptest.NewRecorder()
	if err := h.Font(e.NewContext(postForm("/settings/font", url.Values{"font": {"papyrus"}}), rec)); err == nil {
		t.Fatalf("expected unsupported font to be rejected")
	}
}

func TestSafeRedirect(t *testing.T) {
	tests := map[string]string{
		"/en/explore":       "/en/explore",
		"//evil.example":    "/",
		"https://evil.test": "/",
		"/\\evil":           "/",
		"":                  "/",
	}
	for input, expected := range tests {
		if got := safeRedirect(input, "/"); got != expected {
			t.Fatalf("safeRedirect(%q) = %q, expected %q", input, got, expected)
		}
	}
}
