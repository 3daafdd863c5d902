package apiclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/octobees/merchant-directory/internal/dto"
)

// CurrentUser resolves the profile behind a bearer token. Any rejection means "not signed in" and
// yields a nil user without error; only transport failures are returned.
func (c *Client) CurrentUser(ctx context.Context, token string) (*dto.User, error) {
	if token == "" {
		return nil, nil
	}
	var user dto.User
	err := c.getJSON(ctx, "/users/me", nil, getOptions{op: "current_user", fallback: "Failed to fetch user.", token: token}, &user)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func newBearerPost(ctx context.Context, target, token string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, http.NoBody)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}
