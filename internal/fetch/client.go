// Package fetch wraps HTTP GET with bounded timeouts, redirect
// following, and final-URL exposure for the scraping and search flows.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Response is the outcome of a successful GET: the page body, the final
// resolved URL after redirects, and whether any redirect occurred.
type Response struct {
	Body       string
	StatusCode int
	FinalURL   string
	Redirected bool
}

// StatusError reports a non-2xx HTTP status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// Client issues GET requests with a fixed timeout and a shared
// user-agent header.
type Client struct {
	http      *http.Client
	userAgent string
}

type redirectCountKey struct{}

// maxRedirects caps redirect chains, matching net/http's default.
const maxRedirects = 10

// NewClient creates a client with the given per-request timeout.
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		http: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if n, ok := req.Context().Value(redirectCountKey{}).(*int); ok {
					*n = len(via)
				}
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: userAgent,
	}
}

// Get fetches the URL, following redirects. Timeouts, connection
// failures, and non-2xx statuses all surface as errors; the caller
// treats them as a single network-error category.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	redirects := 0
	ctx = context.WithValue(ctx, redirectCountKey{}, &redirects)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		Body:       string(body),
		StatusCode: resp.StatusCode,
		FinalURL:   resp.Request.URL.String(),
		Redirected: redirects > 0,
	}, nil
}
