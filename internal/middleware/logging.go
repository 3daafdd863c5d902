package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/octobees/merchant-directory/internal/metrics"
)

// Logging writes a concise structured line for each HTTP request and records it in m when set.
func Logging(logger zerolog.Logger, m *metrics.Collectors) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			if m != nil {
				m.Requests.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
				m.RequestDuration.WithLabelValues(req.Method, route).Observe(latency.Seconds())
			}

			event := logger.Info()
			switch {
			case status >= 500:
				event = logger.Error().Err(err)
			case status >= 400:
				event = logger.Warn()
			}
			event.
				Str("request_id", RequestIDFromContext(c)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", status).
				Dur("latency", latency).
				Msg("request")

			return err
		}
	}
}
