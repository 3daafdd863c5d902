package apiclient

import (
	"context"

	"github.com/octobees/merchant-directory/internal/dto"
)

// CreateFeedback submits a feedback entry.
func (c *Client) CreateFeedback(ctx context.Context, req dto.FeedbackRequest) error {
	return c.postJSON(ctx, "create_feedback", "/feedbacks", req, "Failed to create feedback, please try again.", nil)
}
