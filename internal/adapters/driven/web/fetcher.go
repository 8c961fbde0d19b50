// Package web provides the HTTP client used by the download and scraping
// utilities.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jordyarms/everyday/internal/core/domain"
	"github.com/jordyarms/everyday/internal/core/ports/driven"
	"github.com/jordyarms/everyday/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Config holds fetcher settings.
type Config struct {
	// Timeout bounds a whole request including reading the body.
	Timeout time.Duration

	// HeaderTimeout bounds only the wait for response headers. Bodies may
	// then stream for as long as they need.
	HeaderTimeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// RequestsPerSecond throttles requests. Zero disables throttling.
	RequestsPerSecond float64

	// Burst is the number of requests allowed back to back.
	Burst int
}

// ConfigFromSettings builds a Config from application settings.
func ConfigFromSettings(s domain.HTTPSettings) Config {
	return Config{
		Timeout:           time.Duration(s.TimeoutSeconds) * time.Second,
		UserAgent:         s.UserAgent,
		RequestsPerSecond: s.RequestsPerSecond,
		Burst:             s.Concurrency,
	}
}

// DownloadConfigFromSettings builds a Config for file downloads. The
// configured timeout applies to response headers only, so large files on
// slow links are not cut off.
func DownloadConfigFromSettings(s domain.HTTPSettings) Config {
	cfg := ConfigFromSettings(s)
	cfg.HeaderTimeout = cfg.Timeout
	cfg.Timeout = 0
	return cfg
}

// Fetcher performs throttled GET requests.
type Fetcher struct {
	client    *http.Client
	limiter   *RateLimiter
	userAgent string
}

// NewFetcher creates a fetcher from cfg.
func NewFetcher(cfg Config) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = cfg.HeaderTimeout
	return NewFetcherWithClient(cfg, &http.Client{Timeout: cfg.Timeout, Transport: transport})
}

// NewFetcherWithClient creates a fetcher using a caller-supplied client.
func NewFetcherWithClient(cfg Config, client *http.Client) *Fetcher {
	return &Fetcher{
		client:    client,
		limiter:   NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
		userAgent: cfg.UserAgent,
	}
}

// Fetch sends a GET request for rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*driven.FetchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported URL scheme %q", domain.ErrInvalidInput, req.URL.Scheme)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	logger.Debug("GET %s", rawURL)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		f.limiter.RecordTooManyRequests(resp)
		logger.Warn("rate limited by %s, backing off until %s", req.URL.Host, f.limiter.RetryAt().Format(time.TimeOnly))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s for %s", domain.ErrHTTPStatus, resp.Status, rawURL)
	}

	return &driven.FetchResponse{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		URL:         resp.Request.URL.String(),
	}, nil
}
