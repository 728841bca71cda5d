package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent identifies record-roll and a contact URL, as the
// Discogs API usage policy requires.
const DefaultUserAgent = "RecordRoll/0.1 +https://frippertronics.com"

// Client wraps HTTP GETs with record-roll's configuration.
//
// Client provides:
//   - A fixed User-Agent header on every request
//   - Per-request extra headers (e.g. Authorization)
//   - Timeout handling
//   - Non-2xx responses reported as *StatusError
//
// Example usage:
//
//	client := NewClient(30 * time.Second)
//
//	// Fetch JSON with auth
//	body, err := client.Get(ctx, releaseURL, http.Header{"Authorization": {"Discogs token=abc"}})
//
//	// Download image bytes
//	data, err := client.DownloadBytes(ctx, imageURL)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client with the given timeout.
//
// The client is configured with:
//   - the given timeout (30 seconds when zero or negative)
//   - DefaultUserAgent
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return NewClientWith(&http.Client{Timeout: timeout}, DefaultUserAgent)
}

// NewClientWith wraps an existing *http.Client, mainly so tests can swap
// the transport.
func NewClientWith(httpClient *http.Client, userAgent string) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{httpClient: httpClient, userAgent: userAgent}
}

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d: %s", e.URL, e.StatusCode, e.Status)
}

// Get performs a GET request and returns the response body as bytes.
//
// The request includes the configured User-Agent header plus any headers
// passed in. The full body is read into memory.
//
// Returns an error if:
//   - The request fails (connection, timeout, cancellation)
//   - The response status is not 2xx (*StatusError)
//   - Reading the body fails
//
// Example:
//
//	data, err := client.Get(ctx, "https://api.discogs.com/releases/1", nil)
func (c *Client) Get(ctx context.Context, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}
	return body, nil
}

// DownloadBytes downloads a file without extra headers and returns the
// bytes in memory. Use it for small files like cover images.
//
// Example:
//
//	imageData, err := client.DownloadBytes(ctx, imageURL)
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url, nil)
}
