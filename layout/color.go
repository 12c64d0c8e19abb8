package layout

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHex parses "#rrggbb" or "#rrggbbaa" into an RGBA colour.
func ParseHex(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("layout: invalid hex colour %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("layout: invalid hex colour %q: %w", hex, err)
	}
	if len(s) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustHex is ParseHex for palette literals.
func MustHex(hex string) color.RGBA {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// HexString formats c as "#rrggbb", appending alpha only when it is not opaque.
func HexString(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
