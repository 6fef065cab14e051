package geometry

import "fmt"

// CornerStyle selects how the border corner radius is resolved.
type CornerStyle int

const (
	// CornerRound uses the default rounded radius.
	CornerRound CornerStyle = iota
	// CornerSmallRound uses a smaller rounded radius.
	CornerSmallRound
	// CornerSquare disables corner rounding.
	CornerSquare
	// CornerAuto queries the window manager's corner preference for the
	// tracked window, falling back to CornerRound when unavailable.
	CornerAuto
	// CornerCustom uses the explicit Radius value from the style.
	CornerCustom
)

// String returns a human-readable representation of the corner style.
func (s CornerStyle) String() string {
	switch s {
	case CornerRound:
		return "round"
	case CornerSmallRound:
		return "small_round"
	case CornerSquare:
		return "square"
	case CornerAuto:
		return "auto"
	case CornerCustom:
		return "custom"
	default:
		return fmt.Sprintf("CornerStyle(%d)", int(s))
	}
}

// Base radii added to half the border width, scaled by the device factor.
const (
	roundBaseRadius      = 8.0
	smallRoundBaseRadius = 4.0
)

// CornerHint is the window manager's rounding preference for one window,
// reported by the platform layer for CornerAuto styles.
type CornerHint int

const (
	// HintUnknown means the window manager reported no preference.
	HintUnknown CornerHint = iota
	// HintRound prefers the default rounded radius.
	HintRound
	// HintSmallRound prefers the small rounded radius.
	HintSmallRound
	// HintSquare prefers no rounding.
	HintSquare
)

// Style is a resolved border style: stroke width and offset in device
// pixels plus the corner radius policy.
type Style struct {
	// Width is the border stroke width in device pixels.
	Width float64
	// Offset shifts the border centerline outward (positive) or inward
	// (negative) relative to the window edge.
	Offset float64
	// Corner selects the radius policy.
	Corner CornerStyle
	// Radius is the explicit radius for CornerCustom, in unscaled units.
	Radius float64
	// Scale is the device scale factor (1.0 at 96 dpi). Zero means 1.0.
	Scale float64
}

func (s Style) scale() float64 {
	if s.Scale <= 0 {
		return 1.0
	}
	return s.Scale
}

// ResolveRadius computes the corner radius in device pixels. The hint is
// consulted only for CornerAuto.
func (s Style) ResolveRadius(hint CornerHint) float64 {
	base := s.Width / 2.0
	scale := s.scale()
	switch s.Corner {
	case CornerSquare:
		return 0
	case CornerSmallRound:
		return smallRoundBaseRadius*scale + base
	case CornerCustom:
		return s.Radius * scale
	case CornerAuto:
		switch hint {
		case HintSmallRound:
			return smallRoundBaseRadius*scale + base
		case HintSquare:
			return 0
		default:
			return roundBaseRadius*scale + base
		}
	default:
		return roundBaseRadius*scale + base
	}
}

// BorderPath is the renderable output of the geometry resolver: the border
// band between two concentric rounded rectangles.
//
// Center is the stroke centerline; its bounding box equals the window rect
// inflated by the style offset on each side. Outer and Inner are the band
// edges, half the stroke width out from and in from the centerline.
type BorderPath struct {
	Outer  RRect
	Inner  RRect
	Center RRect
	Width  float64
}

// Empty reports whether there is nothing to draw.
func (b BorderPath) Empty() bool {
	return b.Width <= 0 || b.Outer.IsEmpty()
}

// Outline returns the band as a single even-area path: the outer outline
// wound clockwise and, when the inner rect is non-empty, the inner outline
// wound counter-clockwise so a nonzero fill leaves only the band.
func (b BorderPath) Outline() *Path {
	p := &Path{}
	if b.Empty() {
		return p
	}
	p.AddRRect(b.Outer, true)
	if !b.Inner.IsEmpty() {
		p.AddRRect(b.Inner, false)
	}
	return p
}

// Resolve converts a window rectangle and style into a border path.
//
// The centerline bounding box is rect inflated by style.Offset. Degenerate
// output (non-positive centerline dimensions, or zero width) yields an
// empty BorderPath; callers skip drawing rather than treating it as an
// error.
func Resolve(rect Rect, style Style, hint CornerHint) BorderPath {
	if rect.IsEmpty() || style.Width <= 0 {
		return BorderPath{}
	}
	center := rect.Inflate(style.Offset)
	if center.IsEmpty() {
		return BorderPath{}
	}

	radius := style.ResolveRadius(hint)
	half := style.Width / 2.0

	outer := center.Inflate(half)
	inner := center.Inflate(-half)

	bp := BorderPath{
		Center: RRectFromRect(center, radius),
		Outer:  RRectFromRect(outer, radius+half),
		Width:  style.Width,
	}
	if radius > half {
		bp.Inner = RRectFromRect(inner, radius-half)
	} else if !inner.IsEmpty() {
		bp.Inner = RRectFromRect(inner, 0)
	}
	return bp
}
