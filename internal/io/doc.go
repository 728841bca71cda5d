// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Atomic file writing
//   - Directory creation
//   - JPEG decoding into RGB buffers
//   - Aspect-preserving image scaling
//
// # File Operations
//
//	// Write data to file, replacing it atomically
//	err := ioutils.WriteFile("/path/to/cover.jpg", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Image Processing
//
// The ImageService handles cover art:
//
//	svc := ioutils.NewImageService()
//
//	// Decode a downloaded cover
//	img, err := svc.DecodeJPEG(data) // errors.Is(err, ioutils.ErrDecode) on bad data
//
//	// Scale to fit a display area
//	small := svc.Fit(img, 80, 48)
package ioutils
