package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/draw"

	"github.com/novotemporh/cartaz/layout"
	"github.com/novotemporh/cartaz/renderer"
)

// Surface draws through github.com/tdewolff/canvas. One canvas unit maps to
// one output pixel. Callers use a top-left origin with y growing downwards;
// the surface flips every y into the canvas's bottom-left system itself.
type Surface struct {
	w, h  int
	fonts *FontBook

	c   *canvas.Canvas
	ctx *canvas.Context
}

var _ renderer.Surface = (*Surface)(nil)

// NewSurface creates a w×h pixel surface using fonts for every text call.
func NewSurface(w, h int, fonts *FontBook) *Surface {
	c := canvas.New(float64(w), float64(h))
	ctx := canvas.NewContext(c)
	return &Surface{w: w, h: h, fonts: fonts, c: c, ctx: ctx}
}

func (s *Surface) Size() (float64, float64) { return float64(s.w), float64(s.h) }

// Measure implements layout.Measurer with the same face lookup as FillText.
func (s *Surface) Measure(text string, font layout.FontSpec) float64 {
	return s.fonts.Face(font, canvas.Black).TextWidth(text)
}

func (s *Surface) Clear(bg color.RGBA) {
	s.FillRect(layout.Rect{W: float64(s.w), H: float64(s.h)}, bg)
}

func (s *Surface) FillRect(r layout.Rect, fill color.RGBA) {
	s.fill(fill)
	s.ctx.DrawPath(r.X, s.flip(r.Y+r.H), canvas.Rectangle(r.W, r.H))
}

func (s *Surface) FillRoundedRect(r layout.Rect, radius float64, fill color.RGBA) {
	s.fill(fill)
	s.ctx.DrawPath(r.X, s.flip(r.Y+r.H), canvas.RoundedRectangle(r.W, r.H, clampRadius(r, radius)))
}

func (s *Surface) FillCircle(center layout.Point, radius float64, fill color.RGBA) {
	s.fill(fill)
	s.ctx.DrawPath(center.X, s.flip(center.Y), canvas.Circle(radius))
}

func (s *Surface) FillPolygon(points []layout.Point, fill color.RGBA) {
	if len(points) < 3 {
		return
	}
	s.fill(fill)
	s.ctx.DrawPath(0, 0, s.polyPath(points, true))
}

func (s *Surface) StrokePolyline(points []layout.Point, closed bool, width float64, stroke color.RGBA) {
	if len(points) < 2 {
		return
	}
	s.stroke(stroke, width)
	s.ctx.DrawPath(0, 0, s.polyPath(points, closed))
}

func (s *Surface) StrokeEllipse(center layout.Point, rx, ry, width float64, stroke color.RGBA) {
	s.stroke(stroke, width)
	s.ctx.DrawPath(center.X, s.flip(center.Y), canvas.Ellipse(rx, ry))
}

func (s *Surface) FillText(cmd renderer.TextCommand) {
	if cmd.Text == "" {
		return
	}
	face := s.fonts.Face(cmd.Font, cmd.Color)
	align := canvas.Left
	switch cmd.Align {
	case layout.AlignCenter:
		align = canvas.Center
	case layout.AlignRight:
		align = canvas.Right
	}
	baseline := cmd.Top + face.Metrics().Ascent
	s.ctx.DrawText(cmd.X, s.flip(baseline), canvas.NewTextLine(face, cmd.Text, align))
}

func (s *Surface) DrawImage(img image.Image, dst layout.Rect) {
	w, h := int(math.Round(dst.W)), int(math.Round(dst.H))
	if w <= 0 || h <= 0 || img.Bounds().Empty() {
		return
	}
	tile := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(tile, tile.Bounds(), img, img.Bounds(), draw.Src, nil)
	s.place(tile, dst.X, dst.Y)
}

func (s *Surface) DrawCover(img image.Image, region layout.Rect, radius float64) {
	w, h := int(math.Round(region.W)), int(math.Round(region.H))
	b := img.Bounds()
	if w <= 0 || h <= 0 || b.Empty() {
		return
	}
	p := layout.CoverFit(float64(b.Dx()), float64(b.Dy()), float64(w), float64(h))
	tile := image.NewRGBA(image.Rect(0, 0, w, h))
	dr := image.Rect(
		int(math.Round(p.OffsetX)),
		int(math.Round(p.OffsetY)),
		int(math.Round(p.OffsetX+p.DrawW)),
		int(math.Round(p.OffsetY+p.DrawH)),
	)
	// Scale maps b onto dr and writes only the part inside tile.
	draw.CatmullRom.Scale(tile, dr, img, b, draw.Src, nil)
	if radius > 0 {
		roundCorners(tile, clampRadius(region, radius))
	}
	s.place(tile, region.X, region.Y)
}

// Image rasterizes the canvas at one pixel per unit.
func (s *Surface) Image() *image.RGBA {
	return toRGBA(rasterizer.Draw(s.c, canvas.DPMM(1.0), canvas.DefaultColorSpace), s.w, s.h)
}

// EncodePNG serializes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Surface) fill(c color.RGBA) {
	s.ctx.SetFillColor(c)
	s.ctx.SetStrokeColor(canvas.Transparent)
}

func (s *Surface) stroke(c color.RGBA, width float64) {
	s.ctx.SetFillColor(canvas.Transparent)
	s.ctx.SetStrokeColor(c)
	s.ctx.SetStrokeWidth(width)
}

// place draws a raster tile whose pixels map 1:1 onto canvas units. The
// canvas anchors images at their bottom-left corner.
func (s *Surface) place(tile *image.RGBA, x, y float64) {
	bottom := math.Round(y) + float64(tile.Rect.Dy())
	s.ctx.DrawImage(math.Round(x), s.flip(bottom), tile, canvas.DPMM(1.0))
}

func (s *Surface) flip(y float64) float64 { return float64(s.h) - y }

func (s *Surface) polyPath(points []layout.Point, closed bool) *canvas.Path {
	p := &canvas.Path{}
	p.MoveTo(points[0].X, s.flip(points[0].Y))
	for _, pt := range points[1:] {
		p.LineTo(pt.X, s.flip(pt.Y))
	}
	if closed {
		p.Close()
	}
	return p
}

func clampRadius(r layout.Rect, radius float64) float64 {
	return math.Max(0, math.Min(radius, math.Min(r.W, r.H)/2))
}

// roundCorners scales the premultiplied pixels of the four corner squares by
// their coverage of a quarter circle of the given radius.
func roundCorners(img *image.RGBA, radius float64) {
	b := img.Bounds()
	ri := int(math.Ceil(radius))
	w, h := b.Dx(), b.Dy()
	for y := 0; y < ri && y < h; y++ {
		for x := 0; x < ri && x < w; x++ {
			cov := cornerCoverage(float64(x)+0.5, float64(y)+0.5, radius)
			if cov >= 1 {
				continue
			}
			scalePixel(img, b.Min.X+x, b.Min.Y+y, cov)
			scalePixel(img, b.Max.X-1-x, b.Min.Y+y, cov)
			scalePixel(img, b.Min.X+x, b.Max.Y-1-y, cov)
			scalePixel(img, b.Max.X-1-x, b.Max.Y-1-y, cov)
		}
	}
}

// cornerCoverage is measured from the top-left corner square.
func cornerCoverage(px, py, radius float64) float64 {
	dx, dy := radius-px, radius-py
	if dx <= 0 || dy <= 0 {
		return 1
	}
	d := math.Hypot(dx, dy)
	return math.Max(0, math.Min(1, radius-d+0.5))
}

func scalePixel(img *image.RGBA, x, y int, k float64) {
	i := img.PixOffset(x, y)
	for c := 0; c < 4; c++ {
		img.Pix[i+c] = uint8(math.Round(float64(img.Pix[i+c]) * k))
	}
}

// toRGBA returns src as a w×h RGBA anchored at the origin, padding or
// cropping when the rasterizer rounds the canvas size.
func toRGBA(src image.Image, w, h int) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect == image.Rect(0, 0, w, h) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}
