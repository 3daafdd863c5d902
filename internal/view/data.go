package view

import (
	"net/url"

	"github.com/octobees/merchant-directory/internal/dto"
	"github.com/octobees/merchant-directory/internal/querystate"
	"github.com/octobees/merchant-directory/internal/service"
)

// ExploreData feeds the explore page. Query is the raw query the page was requested with, which
// the controls patch. SortOptions and OrderOptions carry catalog keys as labels.
type ExploreData struct {
	Result       *service.ExploreResult
	Query        url.Values
	Path         string
	Search       string
	TypeOptions  []querystate.Option
	SortOptions  []querystate.Option
	OrderOptions []querystate.Option
	DebounceMS   int64
}

// MerchantData feeds the merchant detail page.
type MerchantData struct {
	Page *service.MerchantPage
}

// MapData feeds the static map page.
type MapData struct {
	Merchant *dto.MerchantDetail
	MapURL   string
}

// FormData feeds the login, register and contact pages.
type FormData struct {
	Form   service.FormState
	Action string
}

// ErrorData feeds the error page.
type ErrorData struct {
	Status     int
	MessageKey string
	RetryURL   string
}
