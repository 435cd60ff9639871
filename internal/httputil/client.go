// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the shared outbound HTTP client. It applies the
// configured proxy, injects the User-Agent header, and throttles all adapter
// traffic through a single token-bucket limiter so concurrent fan-out stays
// polite to upstream APIs.
package httputil

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/pdiddy/scisearch/pkg/types"
)

const (
	defaultRequestsPerSecond = 5.0
	defaultRequestBurst      = 5
)

// Client wraps http.Client with rate limiting and header injection. Safe for
// concurrent use; one instance is shared by all adapters for process lifetime.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// NewClient builds a Client from HTTP settings and rate-limit parameters.
// rps <= 0 falls back to the default rate; burst <= 0 to the default burst.
func NewClient(cfg types.HTTPConfig, rps float64, burst int) (*Client, error) {
	transport := http.DefaultTransport
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy URL: %w", err)
		}
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.Proxy = http.ProxyURL(proxyURL)
		transport = t
	}

	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = defaultRequestBurst
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		userAgent: cfg.UserAgent,
	}, nil
}

// Do waits for rate-limiter admission, sets the User-Agent header when the
// request has none, and executes the request. Limiter waits respect the
// request context, so a cancelled dispatch releases queued calls immediately.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	if req.Header.Get("User-Agent") == "" && c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.httpClient.Do(req)
}

// Get issues a rate-limited GET for u with the given context.
func (c *Client) Get(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.Do(req)
}
