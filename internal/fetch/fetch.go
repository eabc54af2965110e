// Package fetch pulls discussion posts from the supported sources.
// Each source shares one Client that layers robots.txt compliance,
// per-domain rate limiting and a response cache over plain HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mkuo/stockpulse/internal/cache"
	"github.com/mkuo/stockpulse/internal/model"
	"github.com/mkuo/stockpulse/internal/worker"
)

// Source produces one batch of posts per run
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Post, error)
}

// ErrRobotsDisallowed marks URLs the target site asks crawlers to skip
var ErrRobotsDisallowed = fmt.Errorf("disallowed by robots.txt")

// Client is the shared HTTP layer of all sources
type Client struct {
	httpClient *http.Client
	store      cache.Cache // nil disables caching
	limiter    *worker.Limiter
	robots     *RobotsChecker
	userAgent  string
	maxBytes   int64
	delay      time.Duration
}

// NewClient builds a client from the HTTP and cache configuration.
// Pass a nil store to bypass caching.
func NewClient(cfg *model.Config, store cache.Cache) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			Transport: &http.Transport{
				Proxy: newProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		store:     store,
		limiter:   worker.NewLimiter(cfg.HTTP.RatePerSec, cfg.HTTP.RateBurst),
		robots:    NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout),
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		delay:     cfg.HTTP.RequestDelay,
	}
}

// Get fetches a URL through the cache, robots check and rate limiter.
// Extra cookies (the forum's over18 gate) are attached per call.
func (c *Client) Get(ctx context.Context, rawURL string, cookies ...*http.Cookie) ([]byte, error) {
	key := cache.Key(rawURL)
	if c.store != nil {
		if body, ok := c.store.Get(key); ok {
			return body, nil
		}
	}

	allowed, crawlDelay, err := c.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("robots check %s: %w", rawURL, err)
	}
	if !allowed {
		return nil, fmt.Errorf("%s: %w", rawURL, ErrRobotsDisallowed)
	}

	delay := c.delay
	if crawlDelay > delay {
		delay = crawlDelay
	}
	if err := c.limiter.WaitWithDelay(ctx, rawURL, delay); err != nil {
		return nil, fmt.Errorf("rate limit %s: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body %s: %w", rawURL, err)
	}

	if c.store != nil {
		_ = c.store.Set(key, body, 0)
	}
	return body, nil
}

// newProxyFunc prefers explicit proxy URLs over the environment
func newProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}
	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
