// Package cms is a read-only client for the Strapi content API.
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/westbourne-advisory/website/errs"
)

const (
	DefaultBaseURL = "http://localhost:1337"
	defaultTimeout = 10 * time.Second

	// maxErrorBody caps how much of a failed response ends up in the error.
	maxErrorBody = 4 << 10
)

type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches content over REST. It holds no per-request state, so one
// Client is shared by all handlers.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
	metrics    *Metrics
	logger     zerolog.Logger
}

type Option func(*Client)

// WithCache stores successful response bodies in cache for ttl.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func NewClient(cfg Config, opts ...Option) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		baseURL:    baseURL,
		token:      cfg.Token,
		httpClient: httpClient,
		logger:     log.With().Str("component", "cms").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL is the CMS origin, used to resolve relative media URLs.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// fetch GETs {baseURL}/api{endpoint}?{query} and decodes the body into out.
func (c *Client) fetch(ctx context.Context, endpoint string, query Query, out any) error {
	encoded := query.Encode()
	key := cacheKey(endpoint, encoded)

	if body, ok := c.cached(ctx, key); ok {
		c.metrics.observeFetch(endpoint, "cache_hit")
		return decode(endpoint, body, out)
	}

	body, err := c.get(ctx, endpoint, encoded)
	if err != nil {
		c.metrics.observeFetch(endpoint, "error")
		return err
	}

	if err := decode(endpoint, body, out); err != nil {
		c.metrics.observeFetch(endpoint, "error")
		return err
	}
	c.metrics.observeFetch(endpoint, "ok")
	c.store(ctx, key, body)
	return nil
}

func (c *Client) get(ctx context.Context, endpoint, encodedQuery string) ([]byte, error) {
	url := c.baseURL + "/api" + endpoint
	if encodedQuery != "" {
		url += "?" + encodedQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.observeLatency(endpoint, time.Since(start))
	if err != nil {
		return nil, errs.NewCMSUnavailableError(endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &errs.CMSError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(text)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewCMSUnavailableError(endpoint, err)
	}
	return body, nil
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.logger.Warn().Err(err).Str("key", key).Msg("cms cache read failed")
		}
		return nil, false
	}
	return body, true
}

func (c *Client) store(ctx context.Context, key string, body []byte) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cms cache write failed")
	}
}

func decode(endpoint string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return errs.NewCMSDecodeError(endpoint, err)
	}
	return nil
}
