package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port              string
	APIURL            string
	APIAudience       string
	APITimeout        time.Duration
	BaseURL           string
	MapboxAccessToken string
	PageSize          int
	RedisURL          string
	CacheTTL          time.Duration
	CookieSecure      bool
	RateLimitForms    RateLimitConfig
	LogLevel          string
	LogFormat         string
	Debounce          time.Duration
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	return LoadWith(nil)
}

// LoadWith is Load with explicit values, such as command line flags, taking precedence over the
// environment. Empty overrides are ignored.
func LoadWith(overrides map[string]string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("PAGE_SIZE", 16)
	v.SetDefault("CACHE_TTL", "60s")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("RATE_LIMIT_FORMS", "10/min")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DEBOUNCE", "300ms")
	for key, value := range overrides {
		if value != "" {
			v.Set(key, value)
		}
	}

	cfg := &Config{
		Port:              strings.TrimSpace(v.GetString("PORT")),
		APIURL:            strings.TrimRight(strings.TrimSpace(v.GetString("API_URL")), "/"),
		APIAudience:       strings.TrimSpace(v.GetString("API_AUDIENCE")),
		APITimeout:        parseDuration(v.GetString("API_TIMEOUT"), 10*time.Second),
		BaseURL:           strings.TrimRight(strings.TrimSpace(v.GetString("BASE_URL")), "/"),
		MapboxAccessToken: strings.TrimSpace(v.GetString("MAPBOX_ACCESS_TOKEN")),
		PageSize:          v.GetInt("PAGE_SIZE"),
		RedisURL:          strings.TrimSpace(v.GetString("REDIS_URL")),
		CacheTTL:          parseDuration(v.GetString("CACHE_TTL"), time.Minute),
		CookieSecure:      v.GetBool("COOKIE_SECURE"),
		LogLevel:          strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:         strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
		Debounce:          parseDuration(v.GetString("DEBOUNCE"), 300*time.Millisecond),
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("API_URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.APIURL); err != nil {
		return nil, fmt.Errorf("invalid API_URL value: %w", err)
	}
	if cfg.PageSize <= 0 || cfg.PageSize > 100 {
		return nil, fmt.Errorf("invalid PAGE_SIZE value: %d (expected 1-100)", cfg.PageSize)
	}

	rl, err := parseRateLimit(v.GetString("RATE_LIMIT_FORMS"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_FORMS value: %w", err)
	}
	cfg.RateLimitForms = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(input))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
