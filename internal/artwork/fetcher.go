// Package artwork downloads and saves release cover images.
package artwork

import (
	"context"
	"fmt"

	"github.com/frippertronics/record-roll/internal/http"
	ioutils "github.com/frippertronics/record-roll/internal/io"
	"github.com/frippertronics/record-roll/internal/model"
)

// Fetcher downloads a cover and decodes it.
type Fetcher struct {
	http   *http.Client
	images *ioutils.ImageService
}

// NewFetcher creates a Fetcher.
func NewFetcher(httpClient *http.Client, images *ioutils.ImageService) *Fetcher {
	if images == nil {
		images = ioutils.NewImageService()
	}
	return &Fetcher{http: httpClient, images: images}
}

// FetchImage downloads uri without authentication and decodes it as JPEG.
// Decode failures wrap ioutils.ErrDecode.
func (f *Fetcher) FetchImage(ctx context.Context, uri string) (*model.Artwork, error) {
	data, err := f.http.DownloadBytes(ctx, uri)
	if err != nil {
		return nil, err
	}
	img, err := f.images.DecodeJPEG(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", uri, err)
	}
	return &model.Artwork{URI: uri, Data: data, Image: img}, nil
}
