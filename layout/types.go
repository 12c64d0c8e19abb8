package layout

// This file holds the plain values shared by the text engine, the image
// fitter and every drawing surface. All lengths are canvas pixels.

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned region with its origin at the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// FontWeight selects a face inside a font family.
type FontWeight int

const (
	Regular FontWeight = iota
	Medium
	Bold
	Black
)

func (w FontWeight) String() string {
	switch w {
	case Medium:
		return "medium"
	case Bold:
		return "bold"
	case Black:
		return "black"
	default:
		return "regular"
	}
}

// FontSpec fully describes the font state of a measure or draw call.
// Surfaces never keep a "current font"; every call carries its own spec.
type FontSpec struct {
	Family string     `json:"family"`
	Weight FontWeight `json:"weight"`
	Size   float64    `json:"size"` // pixels
}

// WithSize returns a copy of f at the given pixel size.
func (f FontSpec) WithSize(size float64) FontSpec {
	f.Size = size
	return f
}

// Key identifies the face of f regardless of its size.
func (f FontSpec) Key() string {
	return f.Family + "|" + f.Weight.String()
}

// Align is the horizontal anchor of a text command.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)
