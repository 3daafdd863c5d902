package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/octobees/merchant-directory/internal/apiclient"
	"github.com/octobees/merchant-directory/internal/dto"
)

// ErrMerchantNotFound is returned when the merchant id is unknown.
var ErrMerchantNotFound = errors.New("merchant not found")

// Review is a review with its display date resolved.
type Review struct {
	dto.MerchantReview
	Date string
}

// MerchantPage is everything the merchant detail view shows.
type MerchantPage struct {
	Merchant      dto.MerchantDetail
	Photos        []dto.MerchantPhoto
	Reviews       []Review
	Types         []dto.MerchantType
	Hours         []DayHours
	IsOpenNow     *bool
	Amenities     []string
	Phone         *Phone
	MapURL        string
	DirectionsURL string
}

// MerchantService builds merchant detail pages.
type MerchantService struct {
	api         MerchantsAPI
	mapboxToken string
	now         func() time.Time
}

// NewMerchantService constructs a MerchantService. The Mapbox token may be empty.
func NewMerchantService(api MerchantsAPI, mapboxToken string) *MerchantService {
	return &MerchantService{api: api, mapboxToken: mapboxToken, now: time.Now}
}

// Detail loads the merchant and then its sub-resources concurrently. A sub-resource that does not
// exist renders as an empty section.
func (s *MerchantService) Detail(ctx context.Context, id int) (*MerchantPage, error) {
	if id <= 0 {
		return nil, ErrMerchantNotFound
	}
	merchant, err := s.api.GetMerchant(ctx, id)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, fmt.Errorf("get merchant %d: %w", id, err)
	}

	var (
		photos    []dto.MerchantPhoto
		reviews   []dto.MerchantReview
		types     []dto.MerchantType
		hours     *dto.OpeningHours
		amenities dto.Amenities
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		photos, err = s.api.GetMerchantPhotos(gctx, id)
		return optional(err)
	})
	g.Go(func() (err error) {
		reviews, err = s.api.GetMerchantReviews(gctx, id)
		return optional(err)
	})
	g.Go(func() (err error) {
		types, err = s.api.GetMerchantTypes(gctx, id)
		return optional(err)
	})
	g.Go(func() (err error) {
		hours, err = s.api.GetMerchantOpeningHours(gctx, id)
		return optional(err)
	})
	g.Go(func() (err error) {
		amenities, err = s.api.GetMerchantAmenities(gctx, id)
		return optional(err)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("get merchant %d details: %w", id, err)
	}

	sort.SliceStable(photos, func(i, j int) bool {
		if photos[i].IsPrimary != photos[j].IsPrimary {
			return photos[i].IsPrimary
		}
		return photos[i].Order < photos[j].Order
	})

	now := s.now()
	page := &MerchantPage{
		Merchant:      *merchant,
		Photos:        photos,
		Types:         types,
		Hours:         WeeklyHours(hours),
		Amenities:     AmenityLabels(amenities),
		Phone:         FormatPhone(merchant.PhoneInternational, merchant.PhoneNational),
		MapURL:        StaticMapURL(merchant.Latitude, merchant.Longitude, s.mapboxToken),
		DirectionsURL: DirectionsURL(merchant.Latitude, merchant.Longitude),
	}
	if hours != nil {
		page.IsOpenNow = hours.IsOpenNow
	}
	page.Reviews = make([]Review, 0, len(reviews))
	for _, r := range reviews {
		page.Reviews = append(page.Reviews, Review{MerchantReview: r, Date: ReviewDate(r, now)})
	}
	return page, nil
}

// MapURL returns the static map of a merchant for the map page.
func (s *MerchantService) MapURL(ctx context.Context, id int) (*dto.MerchantDetail, string, error) {
	if id <= 0 {
		return nil, "", ErrMerchantNotFound
	}
	merchant, err := s.api.GetMerchant(ctx, id)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return nil, "", ErrMerchantNotFound
		}
		return nil, "", err
	}
	return merchant, StaticMapURL(merchant.Latitude, merchant.Longitude, s.mapboxToken), nil
}

func optional(err error) error {
	if errors.Is(err, apiclient.ErrNotFound) {
		return nil
	}
	return err
}
