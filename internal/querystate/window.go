package querystate

import "strconv"

// PageToken is one entry of a rendered pagination control: a 1-based page number or an elision marker.
type PageToken struct {
	Page     int
	Ellipsis bool
}

// Ellipsis marks elided pages in a window.
var Ellipsis = PageToken{Ellipsis: true}

// Label returns the text shown for the token.
func (t PageToken) Label() string {
	if t.Ellipsis {
		return "…"
	}
	return strconv.Itoa(t.Page)
}

// WindowPages returns the page labels to render for the given position. The current page is not
// validated against total; callers clamp it first.
func WindowPages(current, total int) []PageToken {
	if total <= 0 {
		return nil
	}
	if total <= 7 {
		tokens := make([]PageToken, 0, total)
		for i := 1; i <= total; i++ {
			tokens = append(tokens, PageToken{Page: i})
		}
		return tokens
	}

	switch {
	case current <= 3:
		return pages(1, 2, 3, 0, total-1, total)
	case current >= total-2:
		return pages(1, 2, 0, total-2, total-1, total)
	default:
		return pages(1, 0, current-1, current, current+1, 0, total)
	}
}

// pages builds tokens where 0 stands for an ellipsis.
func pages(nums ...int) []PageToken {
	tokens := make([]PageToken, len(nums))
	for i, n := range nums {
		if n == 0 {
			tokens[i] = Ellipsis
			continue
		}
		tokens[i] = PageToken{Page: n}
	}
	return tokens
}

// ClampPage keeps page inside [1, total]. A zero total clamps to 1.
func ClampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	if total > 0 && page > total {
		return total
	}
	return page
}
