package dto

import (
	"encoding/json"
	"strings"
)

// Release is the subset of a Discogs release document record-roll reads.
type Release struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Images []Image `json:"images"`
}

// Image is one entry of a release's "images" array.
//
// URI is kept raw so a non-string value can be told apart from a
// malformed document.
type Image struct {
	Type   string          `json:"type"` // "primary" or "secondary"
	URI    json.RawMessage `json:"uri"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
}

// PrimaryImageURI returns the URI of the first image, which the API lists
// as the primary one. ok is false when there are no images or the first
// one has no usable string URI.
func (r *Release) PrimaryImageURI() (uri string, ok bool) {
	if len(r.Images) == 0 {
		return "", false
	}
	if err := json.Unmarshal(r.Images[0].URI, &uri); err != nil {
		return "", false
	}
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", false
	}
	// Fix protocol-relative URLs
	if strings.HasPrefix(uri, "//") {
		uri = "https:" + uri
	}
	return uri, true
}
