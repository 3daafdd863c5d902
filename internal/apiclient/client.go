// Package apiclient talks to the merchants REST API that backs the directory.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/idtoken"

	"github.com/octobees/merchant-directory/internal/cache"
	"github.com/octobees/merchant-directory/internal/metrics"
)

const maxBodyBytes = 4 << 20

type requestIDKey struct{}

// WithRequestID stores the inbound request id so it is forwarded upstream as X-Request-ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFrom(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey{}).(string)
	return rid
}

// Client issues requests against the REST API. GET responses for anonymous requests are cached.
type Client struct {
	client   *http.Client
	baseURL  string
	cache    cache.Cache
	cacheTTL time.Duration
	metrics  *metrics.Collectors
}

// Option configures optional dependencies.
type Option func(*Client)

// WithCache enables response caching for anonymous GET requests.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		if c != nil {
			cl.cache = c
			cl.cacheTTL = ttl
		}
	}
}

// WithMetrics records upstream latency.
func WithMetrics(m *metrics.Collectors) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

// New builds an API client. When client is nil and audience is set, an ID token client is used so
// that a private Cloud Run backend accepts the calls; otherwise a plain client with timeout.
func New(client *http.Client, baseURL, audience string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL must not be empty")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
		if audience != "" {
			idc, err := idtoken.NewClient(context.Background(), audience)
			if err != nil {
				log.Warn().Err(err).Str("audience", audience).Msg("id token client unavailable, falling back to plain http")
			} else {
				idc.Timeout = timeout
				client = idc
			}
		}
	}
	c := &Client{client: client, baseURL: baseURL, cache: cache.Noop{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type getOptions struct {
	op       string
	fallback string
	// notFound maps 404 to ErrNotFound instead of an APIError.
	notFound bool
	token    string
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, opts getOptions, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	cacheable := opts.token == ""
	if cacheable {
		if body, ok := c.cache.Get(ctx, target); ok {
			c.observeCache("hit")
			if err := json.Unmarshal(body, out); err == nil {
				return nil
			}
		} else {
			c.observeCache("miss")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", opts.op, err)
	}
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}

	body, err := c.do(ctx, opts.op, req, opts.fallback, opts.notFound)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("could not decode %s response: %w", opts.op, err)
	}
	if cacheable {
		c.cache.Set(ctx, target, body, c.cacheTTL)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, payload any, fallback string, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(ctx, op, req, fallback, out)
}

func (c *Client) postForm(ctx context.Context, op, path string, form url.Values, fallback string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.send(ctx, op, req, fallback, out)
}

func (c *Client) send(ctx context.Context, op string, req *http.Request, fallback string, out any) error {
	body, err := c.do(ctx, op, req, fallback, false)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("could not decode %s response: %w", op, err)
	}
	return nil
}

// do executes req and returns the response body of a successful call.
func (c *Client) do(ctx context.Context, op string, req *http.Request, fallback string, notFound bool) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	if rid := requestIDFrom(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.observe(op, "error", start)
		return nil, fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()
	c.observe(op, strconv.Itoa(resp.StatusCode), start)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}

	if resp.StatusCode >= 400 {
		if notFound && resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, &APIError{Status: resp.StatusCode, Message: extractDetail(body, fallback)}
	}
	return body, nil
}

func (c *Client) observe(op, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.Upstream.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
}

func (c *Client) observeCache(result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.CacheLookups.WithLabelValues(result).Inc()
}
