package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/octobees/merchant-directory/internal/middleware"
	"github.com/octobees/merchant-directory/internal/querystate"
	"github.com/octobees/merchant-directory/internal/service"
	"github.com/octobees/merchant-directory/internal/view"
)

var (
	sortOptions = []querystate.Option{
		{Label: "explore.filters.name", Value: querystate.SortByName},
		{Label: "explore.filters.rating", Value: querystate.SortByRating},
	}
	orderOptions = []querystate.Option{
		{Label: "explore.filters.asc", Value: querystate.SortOrderAsc},
		{Label: "explore.filters.desc", Value: querystate.SortOrderDesc},
	}
)

// ExploreHandler serves the merchant list and applies its controls.
type ExploreHandler struct {
	service  *service.ExploreService
	defaults querystate.Defaults
	debounce time.Duration
}

// NewExploreHandler constructs an ExploreHandler.
func NewExploreHandler(svc *service.ExploreService, defaults querystate.Defaults, debounce time.Duration) *ExploreHandler {
	if debounce <= 0 {
		debounce = querystate.DefaultDebounce
	}
	return &ExploreHandler{service: svc, defaults: defaults, debounce: debounce}
}

// List handles GET /:locale/explore.
func (h *ExploreHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	locale := middleware.LocaleFromContext(c)
	values := c.QueryParams()
	q := querystate.Decode(values, h.defaults)

	result, err := h.service.Explore(ctx, q, locale)
	if err != nil {
		return err
	}

	types, err := h.service.MerchantTypeOptions(ctx)
	if err != nil {
		log.Warn().Err(err).Str("request_id", middleware.RequestIDFromContext(c)).Msg("merchant type filter unavailable")
	}

	data := view.ExploreData{
		Result:       result,
		Query:        values,
		Path:         view.LocalePath(locale, "/explore"),
		Search:       q.Search,
		TypeOptions:  types,
		SortOptions:  sortOptions,
		OrderOptions: orderOptions,
		DebounceMS:   h.debounce.Milliseconds(),
	}
	return c.Render(http.StatusOK, "explore", newPage(c, "meta.explore", data))
}

// Set handles GET /:locale/explore/set, the form target of the search box and the select
// controls. It patches one key of the query in `from` and redirects back to the list.
func (h *ExploreHandler) Set(c echo.Context) error {
	locale := middleware.LocaleFromContext(c)
	current, err := url.ParseQuery(c.QueryParam("from"))
	if err != nil {
		current = url.Values{}
	}

	value := c.QueryParam("value")
	var next url.Values
	switch key := c.QueryParam("key"); key {
	case querystate.KeySearch, querystate.KeyType, querystate.KeySortBy, querystate.KeySortOrder:
		next = querystate.SetParam(current, key, value)
	case querystate.KeyView:
		next = querystate.SetView(current, value)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown control")
	}

	target := view.LocalePath(locale, "/explore")
	if encoded := next.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return c.Redirect(http.StatusSeeOther, target)
}
