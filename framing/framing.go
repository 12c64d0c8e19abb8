// Package framing positions a photo inside a fixed crop box before it is
// attached to a poster. The baked PNG becomes the poster's image bytes.
package framing

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"

	"github.com/novotemporh/cartaz/layout"
)

// Zoom limits, in percent of the contain-fit scale.
const (
	MinZoom     = 50
	MaxZoom     = 200
	DefaultZoom = 100
)

// ErrEmptyImage is returned for sources with no pixels.
var ErrEmptyImage = errors.New("framing: empty source image")

// Frame is the pan/zoom state of one source image over a crop box. The zero
// value is not usable; call New.
type Frame struct {
	src        image.Image
	boxW, boxH float64
	fit        layout.Placement // contain-fit at 100%
	zoom       float64          // percent
	offX, offY float64          // top-left of the drawn image inside the box
	Background color.RGBA
}

// New frames src in a boxW×boxH crop box, reset to the contain fit.
func New(src image.Image, boxW, boxH int) (*Frame, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}
	if boxW <= 0 || boxH <= 0 {
		return nil, fmt.Errorf("framing: invalid box %dx%d", boxW, boxH)
	}
	f := &Frame{
		src:        src,
		boxW:       float64(boxW),
		boxH:       float64(boxH),
		fit:        layout.ContainFit(float64(b.Dx()), float64(b.Dy()), float64(boxW), float64(boxH)),
		Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
	f.Reset()
	return f, nil
}

// Reset returns to 100% zoom with the image centred.
func (f *Frame) Reset() {
	f.zoom = DefaultZoom
	f.offX, f.offY = f.fit.OffsetX, f.fit.OffsetY
}

// Pan moves the image by dx, dy box pixels.
func (f *Frame) Pan(dx, dy float64) {
	f.offX += dx
	f.offY += dy
}

// SetZoom sets the zoom, clamped to [MinZoom, MaxZoom]. The point under the
// box centre stays put.
func (f *Frame) SetZoom(percent float64) {
	z := math.Max(MinZoom, math.Min(MaxZoom, percent))
	k := z / f.zoom
	cx, cy := f.boxW/2, f.boxH/2
	f.offX = cx - (cx-f.offX)*k
	f.offY = cy - (cy-f.offY)*k
	f.zoom = z
}

// Zoom is the current zoom in percent.
func (f *Frame) Zoom() float64 { return f.zoom }

// Placement is where the image is drawn inside the box right now.
func (f *Frame) Placement() layout.Placement {
	k := f.zoom / DefaultZoom
	return layout.Placement{DrawW: f.fit.DrawW * k, DrawH: f.fit.DrawH * k, OffsetX: f.offX, OffsetY: f.offY}
}

// Bake draws the current framing into a box-sized image.
func (f *Frame) Bake() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, int(math.Round(f.boxW)), int(math.Round(f.boxH))))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(f.Background), image.Point{}, draw.Src)

	p := f.Placement()
	dr := image.Rect(
		int(math.Round(p.OffsetX)),
		int(math.Round(p.OffsetY)),
		int(math.Round(p.OffsetX+p.DrawW)),
		int(math.Round(p.OffsetY+p.DrawH)),
	)
	draw.CatmullRom.Scale(dst, dr, f.src, f.src.Bounds(), draw.Over, nil)
	return dst
}

// BakePNG is Bake encoded as PNG.
func (f *Frame) BakePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, f.Bake()); err != nil {
		return nil, fmt.Errorf("framing: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
