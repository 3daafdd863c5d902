package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octobees/merchant-directory/internal/auth"
	"github.com/octobees/merchant-directory/internal/config"
	"github.com/octobees/merchant-directory/internal/handler"
	middlewarepkg "github.com/octobees/merchant-directory/internal/middleware"
	"github.com/octobees/merchant-directory/internal/view"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Pages    *handler.PagesHandler
	Explore  *handler.ExploreHandler
	Merchant *handler.MerchantHandler
	Auth     *handler.AuthHandler
	Feedback *handler.FeedbackHandler
	Settings *handler.SettingsHandler
	Sitemap  *handler.SitemapHandler
}

// Register wires all HTTP routes of the site. The locale redirect must already be installed with
// e.Pre so that it runs before routing.
func Register(e *echo.Echo, cfg *config.Config, sessions *auth.Sessions, users middlewarepkg.UserResolver, gatherer prometheus.Gatherer, handlers Handlers) {
	e.GET("/healthz", handler.NewHealthHandler(cfg.APIURL).Healthz)
	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	e.StaticFS("/static", view.Static())
	e.GET("/sitemap.xml", handlers.Sitemap.Sitemap)

	formLimit := middlewarepkg.FormRateLimiter(cfg.RateLimitForms)
	withUser := middlewarepkg.CurrentUser(sessions, users)
	guest := middlewarepkg.RedirectIfAuthenticated(sessions, "/")

	e.GET("/login", handlers.Auth.LoginForm, guest, withUser)
	e.POST("/login", handlers.Auth.Login, formLimit, guest)
	e.GET("/register", handlers.Auth.RegisterForm, guest, withUser)
	e.POST("/register", handlers.Auth.Register, formLimit, guest)
	e.POST("/logout", handlers.Auth.Logout)

	e.POST("/settings/locale", handlers.Settings.Locale)
	e.POST("/settings/theme", handlers.Settings.Theme)
	e.POST("/settings/font", handlers.Settings.Font)

	site := e.Group("/:locale", middlewarepkg.RequireLocale(), withUser)
	site.GET("", handlers.Pages.Home)
	site.GET("/about", handlers.Pages.About)
	site.GET("/explore", handlers.Explore.List)
	site.GET("/explore/set", handlers.Explore.Set)
	site.GET("/merchants/:id", handlers.Merchant.Show)
	site.GET("/map", handlers.Merchant.Map)
	site.GET("/contact", handlers.Feedback.Form)
	site.POST("/contact", handlers.Feedback.Submit, formLimit)
}
