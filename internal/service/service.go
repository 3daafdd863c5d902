// Package service composes REST API calls into the view models rendered by the handlers.
package service

import (
	"context"

	"github.com/octobees/merchant-directory/internal/dto"
	"github.com/octobees/merchant-directory/internal/querystate"
)

// MerchantsAPI is the read side of the merchants REST API.
type MerchantsAPI interface {
	ListMerchants(ctx context.Context, q querystate.ListQuery, locale string) (*dto.MerchantsResponse, error)
	ListMerchantTypes(ctx context.Context) ([]string, error)
	GetMerchant(ctx context.Context, id int) (*dto.MerchantDetail, error)
	GetMerchantPhotos(ctx context.Context, id int) ([]dto.MerchantPhoto, error)
	GetMerchantReviews(ctx context.Context, id int) ([]dto.MerchantReview, error)
	GetMerchantTypes(ctx context.Context, id int) ([]dto.MerchantType, error)
	GetMerchantOpeningHours(ctx context.Context, id int) (*dto.OpeningHours, error)
	GetMerchantAmenities(ctx context.Context, id int) (dto.Amenities, error)
}

// AuthAPI is the authentication side of the REST API.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*dto.Token, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.Token, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*dto.User, error)
}

// FeedbackAPI accepts visitor feedback.
type FeedbackAPI interface {
	CreateFeedback(ctx context.Context, req dto.FeedbackRequest) error
}

// FormState is what a form handler renders back after a submission. Field errors and MessageKey
// are catalog keys; Message is text already produced by the backend.
type FormState struct {
	Values     map[string]string
	Errors     map[string]string
	Message    string
	MessageKey string
	Success    bool
}

// Value returns the echoed value of a field.
func (f FormState) Value(field string) string {
	return f.Values[field]
}

// Error returns the catalog key of a field's validation error, if any.
func (f FormState) Error(field string) string {
	return f.Errors[field]
}

// Invalid reports whether any field failed validation.
func (f FormState) Invalid() bool {
	return len(f.Errors) > 0
}
