package service

import (
	"context"
	"strings"

	"github.com/octobees/merchant-directory/internal/apiclient"
	"github.com/octobees/merchant-directory/internal/dto"
)

// FeedbackService handles the contact form.
type FeedbackService struct {
	api FeedbackAPI
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(api FeedbackAPI) *FeedbackService {
	return &FeedbackService{api: api}
}

// Submit validates and forwards one feedback entry. Fields that failed validation are cleared in
// the returned state while the others are echoed back. A successful submission clears the form.
func (s *FeedbackService) Submit(ctx context.Context, name, message, rating string) FormState {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)
	rating = strings.TrimSpace(rating)

	value, errs := ValidateFeedback(name, message, rating)
	if len(errs) > 0 {
		values := map[string]string{FieldName: name, FieldMessage: message, FieldRating: rating}
		for field := range errs {
			delete(values, field)
		}
		return FormState{Values: values, Errors: errs}
	}

	err := s.api.CreateFeedback(ctx, dto.FeedbackRequest{Name: name, Message: message, Rating: value})
	if err != nil {
		logRejection(err, "feedback")
		return FormState{
			Values:  map[string]string{FieldName: name, FieldMessage: message, FieldRating: rating},
			Message: apiclient.Message(err, "Failed to create feedback, please try again."),
		}
	}
	return FormState{Values: map[string]string{}, Success: true, MessageKey: "contact.success"}
}
