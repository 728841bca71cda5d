package tui

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// halfBlock paints the upper half of a cell in the foreground colour and
// the lower half in the background colour.
const halfBlock = "▀"

// RenderHalfBlocks draws img as text, one cell per two vertical pixels.
// The result has ceil(height/2) lines of width cells each.
func RenderHalfBlocks(img image.Image) string {
	bounds := img.Bounds()
	if bounds.Empty() {
		return ""
	}

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		if y > bounds.Min.Y {
			b.WriteByte('\n')
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(cellColor(img.At(x, y)))
			if y+1 < bounds.Max.Y {
				style = style.Background(cellColor(img.At(x, y+1)))
			}
			b.WriteString(style.Render(halfBlock))
		}
	}
	return b.String()
}

func cellColor(c color.Color) lipgloss.Color {
	cf, _ := colorful.MakeColor(c)
	return lipgloss.Color(cf.Hex())
}
