package ioutils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/frippertronics/record-roll/internal/model"
	"golang.org/x/image/draw"
)

// ErrDecode is returned when image bytes cannot be decoded.
var ErrDecode = errors.New("invalid image data")

// ImageService provides image processing operations for cover art.
//
// ImageService is used to:
//   - Decode downloaded covers into RGB pixel buffers
//   - Scale images to fit a display area
//
// Example usage:
//
//	svc := NewImageService()
//
//	img, err := svc.DecodeJPEG(data)
//	thumb := svc.Fit(img, 80, 48)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// DecodeJPEG decodes JPEG bytes into a packed RGB buffer.
//
// The format is not sniffed: Discogs serves covers as JPEG. Anything that
// fails to decode returns an error wrapping ErrDecode.
func (s *ImageService) DecodeJPEG(data []byte) (*model.DecodedImage, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	return model.NewDecodedImage(img), nil
}

// FitSize computes the largest size within maxWidth x maxHeight that keeps
// the aspect ratio of width x height. Images already inside the box keep
// their size. Both results are at least 1.
//
// Example:
//
//	FitSize(1500, 1000, 1000, 1000) // 1000, 666
//	FitSize(800, 600, 1000, 1000)   // 800, 600
func FitSize(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 || maxWidth <= 0 || maxHeight <= 0 {
		return 1, 1
	}
	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			// Height is the limiting factor
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			// Width is the limiting factor
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}
	return max(width, 1), max(height, 1)
}

// Fit scales img to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved and images are never enlarged. The
// Catmull-Rom kernel is used for high-quality downscaling.
//
// Example:
//
//	// A 600x600 cover in an 80x48 pixel area becomes 48x48
//	small := svc.Fit(cover, 80, 48)
func (s *ImageService) Fit(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width, height := FitSize(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	if width == bounds.Dx() && height == bounds.Dy() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
