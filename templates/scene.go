package templates

import (
	"image"
	"image/color"
	"log/slog"
	"strings"

	"github.com/novotemporh/cartaz/layout"
	"github.com/novotemporh/cartaz/renderer"
)

// Step is one draw operation of a template.
type Step func(sc *Scene)

// AssetSource serves brand images by name.
type AssetSource interface {
	Get(name string) (image.Image, error)
}

// Scene is the state of one render pass. It lives only as long as the pass
// and is never shared.
type Scene struct {
	Surface renderer.Surface
	Layout  *Layout
	Content Content

	// Illustration is the decoded photo or its placeholder.
	Illustration image.Image

	assets AssetSource
	family string
	logger *slog.Logger

	// cursor is the y below the last flowing text block.
	cursor float64
	// titleEnd is where the last title line stopped, for the PCD badge.
	titleEnd *textEnd
}

type textEnd struct {
	X, Top, LineHeight float64
}

// TextBox positions a flowing text block.
type TextBox struct {
	X, Y, W    float64
	Size       float64
	Weight     layout.FontWeight
	LineFactor float64
}

func (b TextBox) lineFactor() float64 {
	if b.LineFactor <= 0 {
		return 1.25
	}
	return b.LineFactor
}

func (sc *Scene) font(w layout.FontWeight, size float64) layout.FontSpec {
	return layout.FontSpec{Family: sc.family, Weight: w, Size: size}
}

func (sc *Scene) palette() Palette { return sc.Layout.Palette }

func (sc *Scene) text(s string, x, top float64, font layout.FontSpec, col color.RGBA, align layout.Align) {
	sc.Surface.FillText(renderer.TextCommand{Text: s, X: x, Top: top, Font: font, Color: col, Align: align})
}

// flowTop is where a flowing block starts: never above its box and never
// over the previous block.
func (sc *Scene) flowTop(y, gap float64) float64 {
	if sc.cursor > 0 && sc.cursor+gap > y {
		return sc.cursor + gap
	}
	return y
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
