package render

import (
	"fmt"

	"github.com/edgelit/edgelit/pkg/geometry"
)

// EffectKind describes the effect variant.
type EffectKind int

const (
	// EffectGlow blurs the border band outward in the brush color.
	EffectGlow EffectKind = iota
	// EffectShadow blurs a translated copy of the band in its own color.
	EffectShadow
)

// String returns a human-readable representation of the effect kind.
func (k EffectKind) String() string {
	switch k {
	case EffectGlow:
		return "glow"
	case EffectShadow:
		return "shadow"
	default:
		return fmt.Sprintf("EffectKind(%d)", int(k))
	}
}

// Effect describes a resolved glow or shadow for one focus state, with
// radius and translation already in device pixels.
type Effect struct {
	Kind EffectKind
	// Radius is the blur radius in device pixels.
	Radius float64
	// Opacity is the effect strength in [0, 1].
	Opacity float64
	// Translation shifts the effect; glows usually leave it zero.
	Translation geometry.Offset
	// Color tints the effect. Zero (transparent) means derive from the
	// brush for glows and use black for shadows.
	Color Color
}

// Scaled returns the effect with pixel units multiplied by the device
// scale factor.
func (e Effect) Scaled(scale float64) Effect {
	if scale <= 0 || scale == 1 {
		return e
	}
	e.Radius *= scale
	e.Translation.X *= scale
	e.Translation.Y *= scale
	return e
}

// Tint resolves the effect color against the brush that paints the band.
func (e Effect) Tint(brush Brush) Color {
	if e.Color != ColorTransparent {
		return e.Color
	}
	if e.Kind == EffectShadow {
		return ColorBlack
	}
	return brush.Primary()
}

// Margin returns how far the effect can extend past the border band,
// used to size the compositor surface.
func (e Effect) Margin() float64 {
	m := e.Radius
	if dx := e.Translation.X; dx < 0 {
		m -= dx
	} else {
		m += dx
	}
	if dy := e.Translation.Y; dy < 0 {
		m -= dy
	} else {
		m += dy
	}
	return m
}
