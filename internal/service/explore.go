package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/octobees/merchant-directory/internal/dto"
	"github.com/octobees/merchant-directory/internal/querystate"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExploreResult is one rendered page of the merchant list.
type ExploreResult struct {
	Items  []dto.MerchantListItem
	Meta   dto.PaginationMeta
	Window []querystate.PageToken
	Query  querystate.ListQuery
	// Current is the page the backend actually served, clamped into the window.
	Current int
	Empty   bool
}

// ExploreService lists merchants for the explore page.
type ExploreService struct {
	api MerchantsAPI
}

// NewExploreService constructs an ExploreService.
func NewExploreService(api MerchantsAPI) *ExploreService {
	return &ExploreService{api: api}
}

// Explore fetches one page. Failures are returned unchanged so the error page can render them.
func (s *ExploreService) Explore(ctx context.Context, q querystate.ListQuery, locale string) (*ExploreResult, error) {
	resp, err := s.api.ListMerchants(ctx, q, locale)
	if err != nil {
		return nil, err
	}

	result := &ExploreResult{
		Items: resp.Data,
		Meta:  resp.Meta,
		Query: q,
		Empty: len(resp.Data) == 0,
	}
	if result.Empty {
		return result, nil
	}

	current := resp.Meta.Page
	if current <= 0 {
		current = q.Page
	}
	result.Current = querystate.ClampPage(current, resp.Meta.TotalPages)
	result.Window = querystate.WindowPages(result.Current, resp.Meta.TotalPages)
	return result, nil
}

// MerchantTypeOptions builds the options of the type filter from GET /merchant-types.
func (s *ExploreService) MerchantTypeOptions(ctx context.Context) ([]querystate.Option, error) {
	types, err := s.api.ListMerchantTypes(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]querystate.Option, 0, len(types))
	for _, label := range types {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		opts = append(opts, querystate.Option{Label: label, Value: TypeValue(label)})
	}
	return opts, nil
}

// TypeValue converts a merchant type label into its filter value, e.g. "Coffee Shop" to "coffee_shop".
func TypeValue(label string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "_")
}
