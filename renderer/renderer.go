package renderer

import (
	"image"
	"image/color"

	"github.com/novotemporh/cartaz/layout"
)

// Surface is a fixed-size drawing target owned by a single render pass.
//
// Every call is self-contained: fills, fonts and colours travel with the
// call, so no draw can observe state left behind by an earlier one. Text is
// measured through the same FontSpec that FillText later receives.
type Surface interface {
	layout.Measurer

	Size() (w, h float64)
	Clear(bg color.RGBA)

	FillRect(r layout.Rect, fill color.RGBA)
	FillRoundedRect(r layout.Rect, radius float64, fill color.RGBA)
	FillCircle(center layout.Point, radius float64, fill color.RGBA)
	FillPolygon(points []layout.Point, fill color.RGBA)
	StrokePolyline(points []layout.Point, closed bool, width float64, stroke color.RGBA)
	StrokeEllipse(center layout.Point, rx, ry, width float64, stroke color.RGBA)

	FillText(cmd TextCommand)

	// DrawImage scales img into dst ignoring its aspect ratio.
	DrawImage(img image.Image, dst layout.Rect)
	// DrawCover cover-fits img into region and clips it to a rounded
	// rectangle of the given corner radius (0 for square corners).
	DrawCover(img image.Image, region layout.Rect, radius float64)

	// Image rasterizes everything drawn so far.
	Image() *image.RGBA
}

// TextCommand draws one line of text. Top is the top of the line box; the
// surface places the baseline at Top plus the face ascent.
type TextCommand struct {
	Text  string          `json:"text"`
	X     float64         `json:"x"`
	Top   float64         `json:"top"`
	Font  layout.FontSpec `json:"font"`
	Color color.RGBA      `json:"-"`
	Align layout.Align    `json:"align"`
}
