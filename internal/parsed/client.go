// Package parsed fetches parsed argument documents from the external
// parse service. Responses are cached with a TTL and requests are
// rate-limited so a busy dashboard cannot hammer the upstream.
package parsed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"inquest-cli/internal/model"
)

// ErrNotFound is returned when the parse service has no document for
// the requested resource.
var ErrNotFound = errors.New("parsed resource not found")

const (
	defaultTimeout  = 15 * time.Second
	defaultTTL      = 5 * time.Minute
	cleanupInterval = 10 * time.Minute
	maxBodyBytes    = 8 << 20
)

// Client talks to the parse service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *gocache.Cache
	limiter    *rate.Limiter
	logger     *zap.Logger
	ttl        time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithCacheTTL overrides how long fetched documents are kept.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithRateLimit overrides the upstream request rate.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Client for the parse service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		cache:   gocache.New(defaultTTL, cleanupInterval),
		limiter: rate.NewLimiter(rate.Limit(4), 4),
		logger:  zap.NewNop(),
		ttl:     defaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches the parsed document for a resource. Cached copies are
// served without touching the upstream.
func (c *Client) Get(ctx context.Context, resourceID string) (*model.ParsedResource, error) {
	if resourceID == "" {
		return nil, errors.New("missing resource id")
	}
	if cached, found := c.cache.Get(resourceID); found {
		c.logger.Debug("parsed cache hit", zap.String("resource", resourceID))
		return cached.(*model.ParsedResource), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/parsed/%s", c.baseURL, url.PathEscape(resourceID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch parsed resource: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("parsed fetch",
		zap.String("resource", resourceID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("resource %s: %w", resourceID, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var doc model.ParsedResource
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode parsed resource: %w", err)
	}

	c.cache.Set(resourceID, &doc, c.ttl)
	return &doc, nil
}

// Invalidate drops a cached document so the next Get refetches it.
func (c *Client) Invalidate(resourceID string) {
	c.cache.Delete(resourceID)
}
