// Package http provides the HTTP client record-roll uses for the Discogs
// API and image downloads.
//
// The Client in this package handles:
//   - The User-Agent header the Discogs API requires
//   - Extra per-request headers such as Authorization
//   - Timeout handling
//   - Reporting non-2xx responses as *StatusError
//
// # Basic Usage
//
//	client := http.NewClient(30 * time.Second)
//
//	// Fetch release JSON
//	body, err := client.Get(ctx, releaseURL, header)
//
//	// Download cover image
//	data, err := client.DownloadBytes(ctx, imageURL)
//
// # Status Errors
//
// Callers can tell HTTP failures apart from transport failures:
//
//	var statusErr *http.StatusError
//	if errors.As(err, &statusErr) && statusErr.StatusCode == 401 {
//	    // bad token
//	}
package http
