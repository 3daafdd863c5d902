package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/octobees/merchant-directory/internal/apiclient"
	"github.com/octobees/merchant-directory/internal/auth"
	"github.com/octobees/merchant-directory/internal/cache"
	"github.com/octobees/merchant-directory/internal/config"
	"github.com/octobees/merchant-directory/internal/handler"
	"github.com/octobees/merchant-directory/internal/i18n"
	"github.com/octobees/merchant-directory/internal/metrics"
	"github.com/octobees/merchant-directory/internal/querystate"
	"github.com/octobees/merchant-directory/internal/router"
	"github.com/octobees/merchant-directory/internal/service"
	"github.com/octobees/merchant-directory/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := newLogger(cfg)
	log.Logger = logger

	responses := newCache(cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collectorSet := metrics.New(reg)

	api := apiclient.New(nil, cfg.APIURL, cfg.APIAudience, cfg.APITimeout,
		apiclient.WithCache(responses, cfg.CacheTTL),
		apiclient.WithMetrics(collectorSet),
	)

	renderer, err := view.New(i18n.MustLoad())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse templates")
	}

	exploreService := service.NewExploreService(api)
	merchantService := service.NewMerchantService(api, cfg.MapboxAccessToken)
	authService := service.NewAuthService(api)
	feedbackService := service.NewFeedbackService(api)
	sessions := auth.NewSessions(cfg.CookieSecure)

	e := router.NewServer(router.Options{
		Config:   cfg,
		Logger:   logger,
		Metrics:  collectorSet,
		Gatherer: reg,
		Renderer: renderer,
		Sessions: sessions,
		Users:    authService,
		Handlers: router.Handlers{
			Pages:    handler.NewPagesHandler(),
			Explore:  handler.NewExploreHandler(exploreService, querystate.Defaults{PageSize: cfg.PageSize}, cfg.Debounce),
			Merchant: handler.NewMerchantHandler(merchantService),
			Auth:     handler.NewAuthHandler(authService, sessions),
			Feedback: handler.NewFeedbackHandler(feedbackService),
			Settings: handler.NewSettingsHandler(cfg.CookieSecure),
			Sitemap:  handler.NewSitemapHandler(exploreService, cfg.BaseURL),
		},
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("api", cfg.APIURL).Msg("merchant directory listening")
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	if closer, ok := responses.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	var logger zerolog.Logger
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Str("service", "merchant-directory").Logger()
}

// newCache prefers the shared redis cache and falls back to a per-process one when redis is not
// configured or unreachable at startup.
func newCache(cfg *config.Config) cache.Cache {
	if cfg.RedisURL == "" {
		return cache.NewMemory()
	}
	r, err := cache.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis cache disabled")
		return cache.NewMemory()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := r.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, using in-memory cache")
		_ = r.Close()
		return cache.NewMemory()
	}
	return r
}
