package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/octobees/merchant-directory/internal/apiclient"
	"github.com/octobees/merchant-directory/internal/dto"
)

// AuthService validates credential forms and exchanges them for bearer tokens.
type AuthService struct {
	api AuthAPI
}

// NewAuthService constructs a new AuthService.
func NewAuthService(api AuthAPI) *AuthService {
	return &AuthService{api: api}
}

// Login returns the bearer token on success. On failure the token is empty and the state carries
// either per-field errors or the backend's message.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, FormState) {
	email = strings.TrimSpace(email)
	state := FormState{Values: map[string]string{FieldEmail: email}}
	if state.Errors = ValidateLogin(email, password); state.Invalid() {
		return "", state
	}

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		logRejection(err, "login")
		state.Message = apiclient.Message(err, "Failed to login")
		return "", state
	}
	state.Success = true
	state.MessageKey = "auth.login.success"
	return token.AccessToken, state
}

// Register creates an account and returns its bearer token on success.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, FormState) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	state := FormState{Values: map[string]string{FieldName: name, FieldEmail: email}}
	if state.Errors = ValidateRegister(name, email, password); state.Invalid() {
		return "", state
	}

	token, err := s.api.Register(ctx, dto.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		logRejection(err, "register")
		state.Message = apiclient.Message(err, "Failed to register")
		return "", state
	}
	state.Success = true
	state.MessageKey = "auth.register.success"
	return token.AccessToken, state
}

// Logout revokes the token upstream. The local session is cleared regardless of the outcome.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.api.Logout(ctx, token); err != nil {
		log.Warn().Err(err).Msg("upstream logout failed")
	}
}

// CurrentUser resolves the signed-in user, or nil.
func (s *AuthService) CurrentUser(ctx context.Context, token string) *dto.User {
	if token == "" {
		return nil
	}
	user, err := s.api.CurrentUser(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("resolve current user failed")
		return nil
	}
	return user
}

func logRejection(err error, action string) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return
	}
	log.Error().Err(err).Str("action", action).Msg("request to auth backend failed")
}
