package assets

import (
	"image"

	"github.com/novotemporh/cartaz/fonts"
	"github.com/novotemporh/cartaz/layout"
	"github.com/novotemporh/cartaz/renderer"
	canvasrenderer "github.com/novotemporh/cartaz/renderer/canvas"
)

// PlaceholderLabel is printed on images that could not be loaded.
const PlaceholderLabel = "Imagem indisponível"

var (
	placeholderFill = layout.MustHex("#d9dee7")
	placeholderInk  = layout.MustHex("#6b7689")
)

// Placeholder draws a flat w×h tile with label centred on it. The label
// shrinks to fit 80% of the width.
func Placeholder(book *canvasrenderer.FontBook, w, h int, label string) *image.RGBA {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	}
	s := canvasrenderer.NewSurface(w, h, book)
	s.Clear(placeholderFill)
	if label != "" {
		font := layout.FontSpec{Family: fonts.Family, Weight: layout.Medium}
		maxSize := min(48, float64(h)/4)
		size := layout.FitFontSize(s, label, font, float64(w)*0.8, maxSize, min(10, maxSize), 1)
		font = font.WithSize(size)
		s.FillText(renderer.TextCommand{
			Text:  label,
			X:     float64(w) / 2,
			Top:   float64(h)/2 - size/2,
			Font:  font,
			Color: placeholderInk,
			Align: layout.AlignCenter,
		})
	}
	return s.Image()
}
