package querystate

import (
	"net/url"
	"strconv"
	"strings"
)

// Query string keys understood by the explore views.
const (
	KeyPage        = "page"
	KeyPageSize    = "page_size"
	KeySearch      = "search"
	KeyType        = "type"
	KeySortBy      = "sort_by"
	KeySortOrder   = "sort_order"
	KeyView        = "view"
	keyLegacyQ     = "q"
	keyPrimaryType = "primary_type"
)

// Allowed enum values.
const (
	SortByName    = "name"
	SortByRating  = "rating"
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
	ViewGrid      = "grid"
	ViewList      = "list"
)

const (
	DefaultPageSize = 16
	MaxPageSize     = 100
)

// ListQuery is the typed view of the explore query string. Empty strings mean the key is absent.
type ListQuery struct {
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	Search    string `json:"search,omitempty"`
	Type      string `json:"type,omitempty"`
	SortBy    string `json:"sort_by,omitempty"`
	SortOrder string `json:"sort_order,omitempty"`
	View      string `json:"view,omitempty"`
}

// Defaults holds the values applied to absent or malformed numeric keys.
type Defaults struct {
	PageSize int
}

func (d Defaults) pageSize() int {
	if d.PageSize <= 0 {
		return DefaultPageSize
	}
	if d.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return d.PageSize
}

// Decode resolves a ListQuery from raw query values. Malformed or non-positive page numbers fall
// back to the defaults instead of propagating to the backend.
func Decode(values url.Values, defaults Defaults) ListQuery {
	q := ListQuery{
		Page:     positiveInt(values.Get(KeyPage), 1),
		PageSize: positiveInt(values.Get(KeyPageSize), defaults.pageSize()),
		Search:   firstNonEmpty(values, KeySearch, keyLegacyQ),
		Type:     firstNonEmpty(values, KeyType, keyPrimaryType),
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	switch v := strings.TrimSpace(values.Get(KeySortBy)); v {
	case SortByName, SortByRating:
		q.SortBy = v
	}
	switch v := strings.TrimSpace(values.Get(KeySortOrder)); v {
	case SortOrderAsc, SortOrderDesc:
		q.SortOrder = v
	}
	switch v := strings.TrimSpace(values.Get(KeyView)); v {
	case ViewGrid, ViewList:
		q.View = v
	}
	return q
}

// Encode writes the defined fields back into query values. Page 1 and the default page size are
// left implicit so that canonical URLs stay short.
func Encode(q ListQuery, defaults Defaults) url.Values {
	values := url.Values{}
	if q.Page > 1 {
		values.Set(KeyPage, strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 && q.PageSize != defaults.pageSize() {
		values.Set(KeyPageSize, strconv.Itoa(q.PageSize))
	}
	setIfPresent(values, KeySearch, q.Search)
	setIfPresent(values, KeyType, q.Type)
	setIfPresent(values, KeySortBy, q.SortBy)
	setIfPresent(values, KeySortOrder, q.SortOrder)
	setIfPresent(values, KeyView, q.View)
	return values
}

// SearchLang maps a UI locale to the backend's full-text search dictionary.
func SearchLang(locale string) string {
	if locale == "id" {
		return "indonesian"
	}
	return "english"
}

// APIParams converts the query into request parameters for GET /merchants.
func APIParams(q ListQuery, locale string) url.Values {
	values := url.Values{}
	page := q.Page
	if page < 1 {
		page = 1
	}
	values.Set(KeyPage, strconv.Itoa(page))
	if q.PageSize > 0 {
		values.Set(KeyPageSize, strconv.Itoa(q.PageSize))
	}
	setIfPresent(values, KeySearch, q.Search)
	setIfPresent(values, keyPrimaryType, q.Type)
	setIfPresent(values, KeySortBy, q.SortBy)
	setIfPresent(values, KeySortOrder, q.SortOrder)
	values.Set("search_lang", SearchLang(locale))
	return values
}

// SetParam applies a filter, sort or search change: a non-empty value sets the key and resets the
// page to 1, an empty value removes both the key and the page.
func SetParam(current url.Values, key, value string) url.Values {
	next := clone(current)
	value = strings.TrimSpace(value)
	if key == KeySearch {
		next.Del(keyLegacyQ)
	}
	if key == KeyType {
		next.Del(keyPrimaryType)
	}
	if value == "" {
		next.Del(key)
		next.Del(KeyPage)
		return next
	}
	next.Set(key, value)
	next.Set(KeyPage, "1")
	return next
}

// SetView switches the layout without touching pagination.
func SetView(current url.Values, view string) url.Values {
	next := clone(current)
	if view == "" {
		next.Del(KeyView)
		return next
	}
	next.Set(KeyView, view)
	return next
}

// WithPage returns a copy of current pointing at page n.
func WithPage(current url.Values, n int) url.Values {
	next := clone(current)
	next.Set(KeyPage, strconv.Itoa(n))
	return next
}

// PageURL renders the link target for a pagination entry.
func PageURL(path string, current url.Values, n int) string {
	return path + "?" + WithPage(current, n).Encode()
}

func clone(values url.Values) url.Values {
	next := make(url.Values, len(values))
	for k, v := range values {
		next[k] = append([]string(nil), v...)
	}
	return next
}

func positiveInt(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func firstNonEmpty(values url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(values.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

func setIfPresent(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}
