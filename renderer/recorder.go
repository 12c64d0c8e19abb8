package renderer

import (
	"image"
	"image/color"

	"github.com/novotemporh/cartaz/layout"
)

// Op is one recorded paint operation.
type Op struct {
	Kind   string           `json:"kind"`
	Rect   *layout.Rect     `json:"rect,omitempty"`
	Radius float64          `json:"radius,omitempty"`
	Points []layout.Point   `json:"points,omitempty"`
	Width  float64          `json:"width,omitempty"`
	Color  string           `json:"color,omitempty"`
	Text   string           `json:"text,omitempty"`
	Font   *layout.FontSpec `json:"font,omitempty"`
	Align  layout.Align     `json:"align,omitempty"`
	Image  *image.Point     `json:"image,omitempty"` // source pixel size
}

// Recorder forwards every call to an inner surface and keeps a log of the
// operations in draw order.
type Recorder struct {
	Surface
	ops []Op
}

var _ Surface = (*Recorder)(nil)

// NewRecorder wraps s.
func NewRecorder(s Surface) *Recorder {
	return &Recorder{Surface: s}
}

// Ops returns a copy of the recorded operations.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

func (r *Recorder) add(op Op) { r.ops = append(r.ops, op) }

func (r *Recorder) Clear(bg color.RGBA) {
	r.add(Op{Kind: "clear", Color: layout.HexString(bg)})
	r.Surface.Clear(bg)
}

func (r *Recorder) FillRect(rect layout.Rect, fill color.RGBA) {
	r.add(Op{Kind: "rect", Rect: &rect, Color: layout.HexString(fill)})
	r.Surface.FillRect(rect, fill)
}

func (r *Recorder) FillRoundedRect(rect layout.Rect, radius float64, fill color.RGBA) {
	r.add(Op{Kind: "rounded-rect", Rect: &rect, Radius: radius, Color: layout.HexString(fill)})
	r.Surface.FillRoundedRect(rect, radius, fill)
}

func (r *Recorder) FillCircle(center layout.Point, radius float64, fill color.RGBA) {
	r.add(Op{Kind: "circle", Points: []layout.Point{center}, Radius: radius, Color: layout.HexString(fill)})
	r.Surface.FillCircle(center, radius, fill)
}

func (r *Recorder) FillPolygon(points []layout.Point, fill color.RGBA) {
	r.add(Op{Kind: "polygon", Points: append([]layout.Point(nil), points...), Color: layout.HexString(fill)})
	r.Surface.FillPolygon(points, fill)
}

func (r *Recorder) StrokePolyline(points []layout.Point, closed bool, width float64, stroke color.RGBA) {
	kind := "polyline"
	if closed {
		kind = "polygon-stroke"
	}
	r.add(Op{Kind: kind, Points: append([]layout.Point(nil), points...), Width: width, Color: layout.HexString(stroke)})
	r.Surface.StrokePolyline(points, closed, width, stroke)
}

func (r *Recorder) StrokeEllipse(center layout.Point, rx, ry, width float64, stroke color.RGBA) {
	rect := layout.Rect{X: center.X - rx, Y: center.Y - ry, W: 2 * rx, H: 2 * ry}
	r.add(Op{Kind: "ellipse-stroke", Rect: &rect, Width: width, Color: layout.HexString(stroke)})
	r.Surface.StrokeEllipse(center, rx, ry, width, stroke)
}

func (r *Recorder) FillText(cmd TextCommand) {
	font := cmd.Font
	r.add(Op{
		Kind:   "text",
		Text:   cmd.Text,
		Points: []layout.Point{{X: cmd.X, Y: cmd.Top}},
		Font:   &font,
		Color:  layout.HexString(cmd.Color),
		Align:  cmd.Align,
	})
	r.Surface.FillText(cmd)
}

func (r *Recorder) DrawImage(img image.Image, dst layout.Rect) {
	size := img.Bounds().Size()
	r.add(Op{Kind: "image", Rect: &dst, Image: &size})
	r.Surface.DrawImage(img, dst)
}

func (r *Recorder) DrawCover(img image.Image, region layout.Rect, radius float64) {
	size := img.Bounds().Size()
	r.add(Op{Kind: "cover", Rect: &region, Radius: radius, Image: &size})
	r.Surface.DrawCover(img, region, radius)
}
