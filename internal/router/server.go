package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/octobees/merchant-directory/internal/auth"
	"github.com/octobees/merchant-directory/internal/config"
	"github.com/octobees/merchant-directory/internal/handler"
	"github.com/octobees/merchant-directory/internal/metrics"
	middlewarepkg "github.com/octobees/merchant-directory/internal/middleware"
)

// Options carries everything NewServer wires together.
type Options struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Metrics  *metrics.Collectors
	Gatherer prometheus.Gatherer
	Renderer echo.Renderer
	Sessions *auth.Sessions
	Users    middlewarepkg.UserResolver
	Handlers Handlers
}

// NewServer builds the echo instance serving the site. Request ids, access logging and the locale
// redirect run before routing so that redirects are logged too.
func NewServer(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = opts.Renderer
	e.HTTPErrorHandler = handler.NewErrorHandler(opts.Logger).Handle

	e.Pre(middlewarepkg.RequestID())
	e.Pre(middlewarepkg.Logging(opts.Logger, opts.Metrics))
	e.Pre(middlewarepkg.LocaleRedirect())
	e.Use(echoMiddleware.Recover())

	Register(e, opts.Config, opts.Sessions, opts.Users, opts.Gatherer, opts.Handlers)
	return e
}
