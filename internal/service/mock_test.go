package service

import (
	"context"
	"errors"

	"github.com/octobees/merchant-directory/internal/dto"
	"github.com/octobees/merchant-directory/internal/querystate"
)

type mockMerchantsAPI struct {
	list      func(ctx context.Context, q querystate.ListQuery, locale string) (*dto.MerchantsResponse, error)
	listTypes func(ctx context.Context) ([]string, error)
	get       func(ctx context.Context, id int) (*dto.MerchantDetail, error)
	photos    func(ctx context.Context, id int) ([]dto.MerchantPhoto, error)
	reviews   func(ctx context.Context, id int) ([]dto.MerchantReview, error)
	types     func(ctx context.Context, id int) ([]dto.MerchantType, error)
	hours     func(ctx context.Context, id int) (*dto.OpeningHours, error)
	amenities func(ctx context.Context, id int) (dto.Amenities, error)
}

func (m *mockMerchantsAPI) ListMerchants(ctx context.Context, q querystate.ListQuery, locale string) (*dto.MerchantsResponse, error) {
	if m.list != nil {
		return m.list(ctx, q, locale)
	}
	return nil, errors.New("ListMerchants not implemented")
}

func (m *mockMerchantsAPI) ListMerchantTypes(ctx context.Context) ([]string, error) {
	if m.listTypes != nil {
		return m.listTypes(ctx)
	}
	return nil, errors.New("ListMerchantTypes not implemented")
}

func (m *mockMerchantsAPI) GetMerchant(ctx context.Context, id int) (*dto.MerchantDetail, error) {
	if m.get != nil {
		return m.get(ctx, id)
	}
	return nil, errors.New("GetMerchant not implemented")
}

func (m *mockMerchantsAPI) GetMerchantPhotos(ctx context.Context, id int) ([]dto.MerchantPhoto, error) {
	if m.photos != nil {
		return m.photos(ctx, id)
	}
	return nil, nil
}

func (m *mockMerchantsAPI) GetMerchantReviews(ctx context.Context, id int) ([]dto.MerchantReview, error) {
	if m.reviews != nil {
		return m.reviews(ctx, id)
	}
	return nil, nil
}

func (m *mockMerchantsAPI) GetMerchantTypes(ctx context.Context, id int) ([]dto.MerchantType, error) {
	if m.types != nil {
		return m.types(ctx, id)
	}
	return nil, nil
}

func (m *mockMerchantsAPI) GetMerchantOpeningHours(ctx context.Context, id int) (*dto.OpeningHours, error) {
	if m.hours != nil {
		return m.hours(ctx, id)
	}
	return nil, nil
}

func (m *mockMerchantsAPI) GetMerchantAmenities(ctx context.Context, id int) (dto.Amenities, error) {
	if m.amenities != nil {
		return m.amenities(ctx, id)
	}
	return nil, nil
}

type mockAuthAPI struct {
	login    func(ctx context.Context, email, password string) (*dto.Token, error)
	register func(ctx context.Context, req dto.RegisterRequest) (*dto.Token, error)
	logout   func(ctx context.Context, token string) error
	current  func(ctx context.Context, token string) (*dto.User, error)
}

func (m *mockAuthAPI) Login(ctx context.Context, email, password string) (*dto.Token, error) {
	if m.login != nil {
		return m.login(ctx, email, password)
	}
	return nil, errors.New("Login not implemented")
}

func (m *mockAuthAPI) Register(ctx context.Context, req dto.RegisterRequest) (*dto.Token, error) {
	if m.register != nil {
		return m.register(ctx, req)
	}
	return nil, errors.New("Register not implemented")
}

func (m *mockAuthAPI) Logout(ctx context.Context, token string) error {
	if m.logout != nil {
		return m.logout(ctx, token)
	}
	return nil
}

func (m *mockAuthAPI) CurrentUser(ctx context.Context, token string) (*dto.User, error) {
	if m.current != nil {
		return m.current(ctx, token)
	}
	return nil, nil
}

type mockFeedbackAPI struct {
	create func(ctx context.Context, req dto.FeedbackRequest) error
}

func (m *mockFeedbackAPI) CreateFeedback(ctx context.Context, req dto.FeedbackRequest) error {
	if m.create != nil {
		return m.create(ctx, req)
	}
	return errors.New("CreateFeedback not implemented")
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
