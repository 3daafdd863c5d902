package apiclient

import (
	"context"
	"errors"
	"net/url"

	"github.com/octobees/merchant-directory/internal/dto"
)

// Login exchanges credentials for a bearer token using the OAuth2 password grant.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.Token, error) {
	form := url.Values{
		"grant_type": {"password"},
		"username":   {email},
		"password":   {password},
		"scope":      {""},
	}
	var token dto.Token
	if err := c.postForm(ctx, "login", "/auth/login", form, "Failed to login", &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, errors.New("login response did not contain an access token")
	}
	return &token, nil
}

// Register creates an account and returns its first bearer token.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.Token, error) {
	var token dto.Token
	if err := c.postJSON(ctx, "register", "/auth/register", req, "Failed to register", &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, errors.New("register response did not contain an access token")
	}
	return &token, nil
}

// Logout revokes the token upstream.
func (c *Client) Logout(ctx context.Context, token string) error {
	req, err := newBearerPost(ctx, c.baseURL+"/auth/logout", token)
	if err != nil {
		return err
	}
	return c.send(ctx, "logout", req, "Failed to logout", nil)
}
