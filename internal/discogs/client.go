package discogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/frippertronics/record-roll/internal/discogs/dto"
	"github.com/frippertronics/record-roll/internal/http"
)

// DefaultBaseURL is the Discogs releases endpoint.
const DefaultBaseURL = "https://api.discogs.com/releases"

var (
	// ErrNoImage means the release has no usable primary image. Callers
	// should pick a different record.
	ErrNoImage = errors.New("release has no image")

	// ErrMalformedResponse means the release document could not be decoded.
	ErrMalformedResponse = errors.New("malformed release response")
)

// Client looks up releases on the Discogs API.
//
// Requests are authenticated with a personal user token:
//
//	Authorization: Discogs token=<token>
//
// Example usage:
//
//	client := NewClient(http.NewClient(30*time.Second), DefaultBaseURL, token)
//	uri, err := client.FetchPrimaryImageURI(ctx, "1234567")
//	if errors.Is(err, ErrNoImage) {
//	    // roll again
//	}
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewClient creates a Client. An empty baseURL means DefaultBaseURL.
func NewClient(httpClient *http.Client, baseURL, token string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// ReleaseURL joins the base URL and a release id as a path segment.
func (c *Client) ReleaseURL(releaseID string) string {
	return c.baseURL + "/" + url.PathEscape(strings.TrimSpace(releaseID))
}

// FetchRelease retrieves and decodes a release document.
//
// Transport and HTTP status failures are returned as-is from the http
// package; an undecodable body wraps ErrMalformedResponse.
func (c *Client) FetchRelease(ctx context.Context, releaseID string) (*dto.Release, error) {
	if strings.TrimSpace(releaseID) == "" {
		return nil, fmt.Errorf("release id is empty")
	}

	header := nethttp.Header{}
	header.Set("Authorization", "Discogs token="+c.token)
	header.Set("Accept", "application/json")

	body, err := c.http.Get(ctx, c.ReleaseURL(releaseID), header)
	if err != nil {
		return nil, err
	}

	var release dto.Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("%w: release %s: %v", ErrMalformedResponse, releaseID, err)
	}
	return &release, nil
}

// FetchPrimaryImageURI returns the URI of a release's primary image.
//
// A release without images, or whose first image has no string URI,
// returns ErrNoImage.
func (c *Client) FetchPrimaryImageURI(ctx context.Context, releaseID string) (string, error) {
	release, err := c.FetchRelease(ctx, releaseID)
	if err != nil {
		return "", err
	}
	uri, ok := release.PrimaryImageURI()
	if !ok {
		return "", fmt.Errorf("%w: release %s", ErrNoImage, releaseID)
	}
	return uri, nil
}
