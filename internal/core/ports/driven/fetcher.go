package driven

import (
	"context"
	"io"
)

// Fetcher performs throttled HTTP GET requests.
type Fetcher interface {
	// Fetch requests rawURL. Non-2xx responses are returned as errors
	// wrapping domain.ErrHTTPStatus, with the body already closed.
	// The caller must close the returned Body.
	Fetch(ctx context.Context, rawURL string) (*FetchResponse, error)
}

// FetchResponse is a successful HTTP response.
type FetchResponse struct {
	// Body streams the response body.
	Body io.ReadCloser

	// ContentType is the Content-Type header value.
	ContentType string

	// StatusCode is the HTTP status code.
	StatusCode int

	// URL is the final URL after redirects.
	URL string
}
