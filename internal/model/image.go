package model

import (
	"image"
	"image/color"
)

// DecodedImage is a packed 8-bit RGB pixel buffer.
//
// Pix holds Height rows of Width pixels, three bytes per pixel, with no
// padding between rows. DecodedImage implements image.Image so it can be
// handed straight to scalers and encoders.
type DecodedImage struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewDecodedImage converts any image into a packed RGB buffer.
// Alpha is dropped; pixels are taken un-premultiplied.
func NewDecodedImage(src image.Image) *DecodedImage {
	b := src.Bounds()
	img := &DecodedImage{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]uint8, b.Dx()*b.Dy()*3),
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			i += 3
		}
	}
	return img
}

// ColorModel implements image.Image.
func (d *DecodedImage) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (d *DecodedImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.Width, d.Height)
}

// At implements image.Image. Points outside the buffer are transparent.
func (d *DecodedImage) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= d.Width || y >= d.Height {
		return color.RGBA{}
	}
	i := (y*d.Width + x) * 3
	return color.RGBA{R: d.Pix[i], G: d.Pix[i+1], B: d.Pix[i+2], A: 0xff}
}

// Artwork is the primary image of a release as fetched for one roll.
type Artwork struct {
	// URI the image was downloaded from.
	URI string

	// Data is the encoded image exactly as served.
	Data []byte

	// Image is the decoded pixel buffer.
	Image *DecodedImage
}
