package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/octobees/merchant-directory/internal/service"
	"github.com/octobees/merchant-directory/internal/view"
)

// MerchantHandler serves merchant detail and map pages.
type MerchantHandler struct {
	service *service.MerchantService
}

// NewMerchantHandler constructs a MerchantHandler.
func NewMerchantHandler(svc *service.MerchantService) *MerchantHandler {
	return &MerchantHandler{service: svc}
}

// Show handles GET /:locale/merchants/:id.
func (h *MerchantHandler) Show(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.ErrNotFound
	}

	page, err := h.service.Detail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	p := newPage(c, "meta.merchant", view.MerchantData{Page: page})
	p.Title = page.Merchant.Title()
	return c.Render(http.StatusOK, "merchant", p)
}

// Map handles GET /:locale/map?merchant_id=.
func (h *MerchantHandler) Map(c echo.Context) error {
	raw := c.QueryParam("merchant_id")
	if raw == "" {
		return c.Render(http.StatusOK, "map", newPage(c, "meta.map", view.MapData{}))
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return echo.ErrNotFound
	}

	merchant, mapURL, err := h.service.MapURL(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "map", newPage(c, "meta.map", view.MapData{Merchant: merchant, MapURL: mapURL}))
}
