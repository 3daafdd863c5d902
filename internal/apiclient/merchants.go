package apiclient

import (
	"context"
	"strconv"

	"github.com/octobees/merchant-directory/internal/dto"
	"github.com/octobees/merchant-directory/internal/querystate"
)

// ListMerchants fetches one page of merchants. The locale selects the search dictionary.
func (c *Client) ListMerchants(ctx context.Context, q querystate.ListQuery, locale string) (*dto.MerchantsResponse, error) {
	var resp dto.MerchantsResponse
	err := c.getJSON(ctx, "/merchants", querystate.APIParams(q, locale), getOptions{
		op:       "list_merchants",
		fallback: "Failed to fetch merchants.",
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []dto.MerchantListItem{}
	}
	return &resp, nil
}

// ListMerchantTypes returns the display names of every merchant type.
func (c *Client) ListMerchantTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := c.getJSON(ctx, "/merchant-types", nil, getOptions{
		op:       "list_merchant_types",
		fallback: "Failed to fetch merchant types.",
	}, &types)
	if err != nil {
		return nil, err
	}
	return types, nil
}

// GetMerchant fetches one merchant; ErrNotFound when the id is unknown.
func (c *Client) GetMerchant(ctx context.Context, id int) (*dto.MerchantDetail, error) {
	var merchant dto.MerchantDetail
	if err := c.getMerchantResource(ctx, id, "", "get_merchant", "Failed to fetch merchant.", &merchant); err != nil {
		return nil, err
	}
	return &merchant, nil
}

// GetMerchantPhotos fetches the merchant's photos.
func (c *Client) GetMerchantPhotos(ctx context.Context, id int) ([]dto.MerchantPhoto, error) {
	var photos []dto.MerchantPhoto
	if err := c.getMerchantResource(ctx, id, "/photos", "get_merchant_photos", "Failed to fetch merchant photos.", &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// GetMerchantReviews fetches the merchant's reviews.
func (c *Client) GetMerchantReviews(ctx context.Context, id int) ([]dto.MerchantReview, error) {
	var reviews []dto.MerchantReview
	if err := c.getMerchantResource(ctx, id, "/reviews", "get_merchant_reviews", "Failed to fetch merchant reviews.", &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetMerchantTypes fetches the additional types of a merchant.
func (c *Client) GetMerchantTypes(ctx context.Context, id int) ([]dto.MerchantType, error) {
	var types []dto.MerchantType
	if err := c.getMerchantResource(ctx, id, "/types", "get_merchant_types", "Failed to fetch merchant types.", &types); err != nil {
		return nil, err
	}
	return types, nil
}

// GetMerchantOpeningHours fetches the weekly opening hours.
func (c *Client) GetMerchantOpeningHours(ctx context.Context, id int) (*dto.OpeningHours, error) {
	var hours dto.OpeningHours
	if err := c.getMerchantResource(ctx, id, "/opening-hours", "get_merchant_opening_hours", "Failed to fetch merchant opening hours.", &hours); err != nil {
		return nil, err
	}
	return &hours, nil
}

// GetMerchantAmenities fetches the amenity flags.
func (c *Client) GetMerchantAmenities(ctx context.Context, id int) (dto.Amenities, error) {
	var amenities dto.Amenities
	if err := c.getMerchantResource(ctx, id, "/amenities", "get_merchant_amenities", "Failed to fetch merchant amenities.", &amenities); err != nil {
		return nil, err
	}
	return amenities, nil
}

func (c *Client) getMerchantResource(ctx context.Context, id int, suffix, op, fallback string, out any) error {
	path := "/merchants/" + strconv.Itoa(id) + suffix
	return c.getJSON(ctx, path, nil, getOptions{op: op, fallback: fallback, notFound: true}, out)
}
