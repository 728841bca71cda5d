package ioutils

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeJPEG(t *testing.T) {
	svc := NewImageService()

	img, err := svc.DecodeJPEG(encodeJPEG(t, 16, 8))
	if err != nil {
		t.Fatalf("DecodeJPEG returned error: %v", err)
	}
	if img.Width != 16 || img.Height != 8 {
		t.Fatalf("size = %dx%d, want 16x8", img.Width, img.Height)
	}
	if len(img.Pix) != 16*8*3 {
		t.Fatalf("len(Pix) = %d, want %d", len(img.Pix), 16*8*3)
	}
	// JPEG is lossy; the dominant channel should survive.
	if img.Pix[0] < 150 || img.Pix[1] > 100 {
		t.Errorf("first pixel = %v, want mostly red", img.Pix[:3])
	}
}

func TestDecodeJPEG_InvalidData(t *testing.T) {
	_, err := NewImageService().DecodeJPEG([]byte("<html>not an image</html>"))
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("error = %v, want ErrDecode", err)
	}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		name             string
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{"wide image, square box", 1500, 1000, 1000, 1000, 1000, 666},
		{"tall image, square box", 1000, 1500, 1000, 1000, 666, 1000},
		{"already fits", 800, 600, 1000, 1000, 800, 600},
		{"square cover, terminal box", 600, 600, 80, 48, 48, 48},
		{"degenerate box", 600, 600, 0, 10, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitSize(tt.w, tt.h, tt.maxW, tt.maxH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitSize(%d,%d,%d,%d) = %d,%d, want %d,%d", tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFit_Scales(t *testing.T) {
	svc := NewImageService()
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))

	got := svc.Fit(src, 20, 20)
	if got.Bounds().Dx() != 20 || got.Bounds().Dy() != 10 {
		t.Errorf("Fit size = %v, want 20x10", got.Bounds())
	}

	if same := svc.Fit(src, 200, 200); same != image.Image(src) {
		t.Error("Fit should return the source when it already fits")
	}
}

func TestWriteFile_CreatesDirsAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "cover.jpg")

	if err := WriteFile(path, []byte("first")); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	if err := WriteFile(path, []byte("second")); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the target (no temp files left)", len(entries))
	}
}
