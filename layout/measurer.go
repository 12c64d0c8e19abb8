package layout

// Measurer reports the advance width, in pixels, of text drawn with font.
// Implementations must use the same face selection for Measure as for the
// draw call that receives the same FontSpec.
type Measurer interface {
	Measure(text string, font FontSpec) float64
}

// MeasureFunc adapts a plain function to Measurer.
type MeasureFunc func(text string, font FontSpec) float64

// Measure implements Measurer.
func (f MeasureFunc) Measure(text string, font FontSpec) float64 { return f(text, font) }
