// Package render resolves colors, brushes and effects into per-frame paint
// descriptors and rasterizes them into RGBA frames for the compositor
// surface.
package render

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// maxByte is the maximum value of a byte, used for color normalization.
const maxByte = 255.0

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA constructs a Color from red, green, blue, alpha bytes.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xFF)
}

// RGBAF returns normalized color components (0.0 to 1.0).
func (c Color) RGBAF() (r, g, b, a float64) {
	return float64(uint8(c>>16)) / maxByte,
		float64(uint8(c>>8)) / maxByte,
		float64(uint8(c)) / maxByte,
		float64(uint8(c>>24)) / maxByte
}

// Alpha returns the alpha component as a byte.
func (c Color) Alpha() uint8 {
	return uint8(c >> 24)
}

// WithAlpha returns a copy of the color with the given alpha (0-255).
func (c Color) WithAlpha(a uint8) Color {
	return Color(uint32(a)<<24 | uint32(c)&0x00FFFFFF)
}

// ScaleAlpha returns the color with its alpha multiplied by f in [0, 1].
func (c Color) ScaleAlpha(f float64) Color {
	if f <= 0 {
		return c.WithAlpha(0)
	}
	if f >= 1 {
		return c
	}
	return c.WithAlpha(uint8(float64(c.Alpha())*f + 0.5))
}

// Common colors.
var (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
)

// ParseColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA" hex notation.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return 0, fmt.Errorf("color %q: missing '#' prefix", s)
	}
	alpha := uint8(0xFF)
	hex := s
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:9], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("color %q: bad alpha component", s)
		}
		alpha = uint8(a)
		hex = s[:7]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGBA(r, g, b, alpha), nil
}

// LerpColor blends two colors in RGB space by t in [0, 1], interpolating
// alpha linearly alongside.
func LerpColor(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ar, ag, ab, aa := a.RGBAF()
	br, bg, bb, ba := b.RGBAF()
	ca := colorful.Color{R: ar, G: ag, B: ab}
	cb := colorful.Color{R: br, G: bg, B: bb}
	blended := ca.BlendRgb(cb, t)
	r8, g8, b8 := blended.Clamped().RGB255()
	alpha := aa + (ba-aa)*t
	return RGBA(r8, g8, b8, uint8(alpha*maxByte+0.5))
}
