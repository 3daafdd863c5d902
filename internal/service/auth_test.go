package service

import (
	"context"
	"errors"
	"testing"

	"github.com/octobees/merchant-directory/internal/apiclient"
	"github.com/octobees/merchant-directory/internal/dto"
)

func TestAuthService_Login(t *testing.T) {
	tests := map[string]struct {
		email       string
		password    string
		api         *mockAuthAPI
		wantToken   string
		wantMessage string
		wantErrors  int
	}{
		"invalid form never calls backend": {
			email:    "not-an-email",
			password: "",
			api: &mockAuthAPI{
				login: func(ctx context.Context, email, password string) (*dto.Token, error) {
					t.Fatalf("backend must not be called")
					return nil, nil
				},
			},
			wantErrors: 2,
		},
		"backend rejection": {
			email:    "user@example.com",
			password: "wrong",
			api: &mockAuthAPI{
				login: func(ctx context.Context, email, password string) (*dto.Token, error) {
					return nil, &apiclient.APIError{Status: 401, Message: "Incorrect email or password"}
				},
			},
			wantMessage: "Incorrect email or password",
		},
		"transport failure uses fallback": {
			email:    "user@example.com",
			password: "secret",
			api: &mockAuthAPI{
				login: func(ctx context.Context, email, password string) (*dto.Token, error) {
					return nil, errors.New("dial tcp: connection refused")
				},
			},
			wantMessage: "Failed to login",
		},
		"success": {
			email:    " user@example.com ",
			password: "secret",
			api: &mockAuthAPI{
				login: func(ctx context.Context, email, password string) (*dto.Token, error) {
					if email != "user@example.com" {
						t.Fatalf("expected trimmed email, got %q", email)
					}
					return &dto.Token{AccessToken: "tok", TokenType: "bearer"}, nil
				},
			},
			wantToken: "tok",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			token, state := NewAuthService(tt.api).Login(context.Background(), tt.email, tt.password)
			if token != tt.wantToken {
				t.Fatalf("expected token %q, got %q", tt.wantToken, token)
			}
			if state.Message != tt.wantMessage {
				t.Fatalf("expected message %q, got %q", tt.wantMessage, state.Message)
			}
			if len(state.Errors) != tt.wantErrors {
				t.Fatalf("expected %d field errors, got %v", tt.wantErrors, state.Errors)
			}
			if tt.wantToken != "" && (!state.Success || state.MessageKey != "auth.login.success") {
				t.Fatalf("expected success state, got %+v", state)
			}
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	var sent dto.RegisterRequest
	api := &mockAuthAPI{
		register: func(ctx context.Context, req dto.RegisterRequest) (*dto.Token, error) {
			sent = req
			return &dto.Token{AccessToken: "fresh"}, nil
		},
	}
	token, state := NewAuthService(api).Register(context.Background(), " Budi ", "budi@example.com", "password123")
	if token != "fresh" || !state.Success {
		t.Fatalf("unexpected result: %q %+v", token, state)
	}
	if sent.Name != "Budi" || sent.Email != "budi@example.com" || sent.Password != "password123" {
		t.Fatalf("unexpected payload: %+v", sent)
	}

	rejecting := &mockAuthAPI{
		register: func(ctx context.Context, req dto.RegisterRequest) (*dto.Token, error) {
			return nil, &apiclient.APIError{Status: 400, Message: "Email already registered"}
		},
	}
	token, state = NewAuthService(rejecting).Register(context.Background(), "Budi", "budi@example.com", "password123")
	if token != "" || state.Message != "Email already registered" || state.Value(FieldEmail) != "budi@example.com" {
		t.Fatalf("unexpected rejection state: %q %+v", token, state)
	}
}

func TestAuthService_LogoutAndCurrentUser(t *testing.T) {
	var revoked string
	api := &mockAuthAPI{
		logout: func(ctx context.Context, token string) error {
			revoked = token
			return errors.New("upstream down")
		},
		current: func(ctx context.Context, token string) (*dto.User, error) {
			if token == "broken" {
				return nil, errors.New("timeout")
			}
			return &dto.User{ID: 1, Name: "Budi"}, nil
		},
	}
	svc := NewAuthService(api)

	svc.Logout(context.Background(), "tok")
	if revoked != "tok" {
		t.Fatalf("expected upstream logout with token")
	}
	if svc.CurrentUser(context.Background(), "") != nil {
		t.Fatalf("expected nil user without token")
	}
	if svc.CurrentUser(context.Background(), "broken") != nil {
		t.Fatalf("expected nil user on failure")
	}
	if u := svc.CurrentUser(context.Background(), "tok"); u == nil || u.Name != "Budi" {
		t.Fatalf("unexpected user: %+v", u)
	}
}
