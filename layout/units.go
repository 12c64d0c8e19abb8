package layout

// Surfaces rasterize one canvas unit (millimetre in the vector backend) to
// exactly one pixel, so pixel lengths and canvas lengths coincide. Font
// engines still speak points; these constants convert at the boundary.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxToPt converts a pixel font size into the point size expected by font faces.
func PxToPt(px float64) float64 { return px * MmToPt }

// PtToPx converts a point length back to pixels.
func PtToPx(pt float64) float64 { return pt * PtToMm }
