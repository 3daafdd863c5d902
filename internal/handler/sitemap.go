package handler

import (
	"encoding/xml"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/octobees/merchant-directory/internal/i18n"
	"github.com/octobees/merchant-directory/internal/querystate"
	"github.com/octobees/merchant-directory/internal/service"
	"github.com/octobees/merchant-directory/internal/view"
)

const sitemapMerchants = 27

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string      `xml:"loc"`
	ChangeFreq string      `xml:"changefreq"`
	Priority   string      `xml:"priority"`
	Alternates []alternate `xml:"xhtml:link"`
}

type alternate struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// SitemapHandler publishes /sitemap.xml.
type SitemapHandler struct {
	explore *service.ExploreService
	baseURL string
}

// NewSitemapHandler constructs a SitemapHandler. baseURL is the public origin of the site.
func NewSitemapHandler(explore *service.ExploreService, baseURL string) *SitemapHandler {
	return &SitemapHandler{explore: explore, baseURL: baseURL}
}

// Sitemap handles GET /sitemap.xml: home and explore in every locale, then the first page of
// merchants. A failing merchant listing only drops the merchant entries.
func (h *SitemapHandler) Sitemap(c echo.Context) error {
	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
	}
	set.URLs = append(set.URLs, h.localized("", "daily", "1.0")...)
	set.URLs = append(set.URLs, h.localized("/explore", "daily", "0.9")...)

	result, err := h.explore.Explore(c.Request().Context(), querystate.ListQuery{Page: 1, PageSize: sitemapMerchants}, i18n.Default)
	if err != nil {
		log.Warn().Err(err).Msg("sitemap merchants unavailable")
	} else {
		for _, m := range result.Items {
			set.URLs = append(set.URLs, h.localized("/merchants/"+strconv.Itoa(m.ID), "weekly", "0.7")...)
		}
	}

	return c.XML(http.StatusOK, set)
}

func (h *SitemapHandler) localized(path, freq, priority string) []sitemapURL {
	alternates := make([]alternate, 0, len(i18n.Locales))
	for _, locale := range i18n.Locales {
		alternates = append(alternates, alternate{Rel: "alternate", Hreflang: locale, Href: h.baseURL + view.LocalePath(locale, path)})
	}
	urls := make([]sitemapURL, 0, len(i18n.Locales))
	for _, locale := range i18n.Locales {
		urls = append(urls, sitemapURL{
			Loc:        h.baseURL + view.LocalePath(locale, path),
			ChangeFreq: freq,
			Priority:   priority,
			Alternates: alternates,
		})
	}
	return urls
}
