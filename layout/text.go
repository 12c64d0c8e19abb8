package layout

import "strings"

// WrapText breaks text into lines using a greedy word fill: a word joins the
// current line while the joined line measures strictly less than maxWidth.
// Words are never split, so a single word wider than maxWidth occupies its
// own overflowing line. Text without words yields one empty line.
func WrapText(m Measurer, text string, maxWidth float64, font FontSpec) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, 4)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.Measure(candidate, font) < maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// FitFontSize returns the largest size, stepping down from maxSize, at which
// text fits on one line of maxWidth. It stops at minSize even if the text
// still overflows; the result always lies in [minSize, maxSize].
func FitFontSize(m Measurer, text string, font FontSpec, maxWidth, maxSize, minSize, step float64) float64 {
	if step <= 0 {
		step = 1
	}
	if minSize > maxSize {
		minSize = maxSize
	}
	size := maxSize
	for size > minSize && m.Measure(text, font.WithSize(size)) > maxWidth {
		size -= step
	}
	if size < minSize {
		size = minSize
	}
	return size
}

// LineHeight returns the baseline-to-baseline distance for font at factor.
func LineHeight(font FontSpec, factor float64) float64 {
	if factor <= 0 {
		factor = 1.2
	}
	return font.Size * factor
}
