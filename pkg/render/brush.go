package render

import (
	"math"
	"sort"

	"github.com/edgelit/edgelit/pkg/geometry"
)

// BrushKind describes the brush variant.
type BrushKind int

const (
	// BrushSolid paints a single color.
	BrushSolid BrushKind = iota
	// BrushGradient paints a linear gradient anchored to window-local space.
	BrushGradient
)

// GradientStop defines a color stop within a gradient.
type GradientStop struct {
	Position float64
	Color    Color
}

// Brush describes how the border band is colored for one paint pass.
//
// Gradient Start/End are normalized window-local coordinates ((0,0) is the
// window's top-left corner, (1,1) its bottom-right); AnchorTo maps them to
// device pixels for the instance's current rectangle, so gradients track
// the window as it moves and resizes.
type Brush struct {
	Kind  BrushKind
	Color Color
	Stops []GradientStop
	Start geometry.Offset
	End   geometry.Offset
}

// SolidBrush creates a single-color brush.
func SolidBrush(c Color) Brush {
	return Brush{Kind: BrushSolid, Color: c}
}

// GradientBrush creates a linear gradient brush. Stops are sorted by
// position; direction defaults to top-left to bottom-right when start and
// end coincide.
func GradientBrush(stops []GradientStop, start, end geometry.Offset) Brush {
	sorted := make([]GradientStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	if start == end {
		end = geometry.Offset{X: 1, Y: 1}
	}
	return Brush{Kind: BrushGradient, Stops: sorted, Start: start, End: end}
}

// GradientBrushAngle creates a linear gradient from an angle in degrees.
// 0° points up; angles rotate clockwise, matching CSS linear-gradient.
func GradientBrushAngle(stops []GradientStop, degrees float64) Brush {
	rad := degrees * math.Pi / 180
	dx, dy := math.Sin(rad)*0.5, -math.Cos(rad)*0.5
	start := geometry.Offset{X: 0.5 - dx, Y: 0.5 - dy}
	end := geometry.Offset{X: 0.5 + dx, Y: 0.5 + dy}
	return GradientBrush(stops, start, end)
}

// IsValid reports whether the brush can paint anything.
func (b Brush) IsValid() bool {
	switch b.Kind {
	case BrushSolid:
		return true
	case BrushGradient:
		return len(b.Stops) >= 2
	default:
		return false
	}
}

// At returns the gradient color at normalized position t, clamping to the
// first and last stop. Solid brushes return their color for any t.
func (b Brush) At(t float64) Color {
	if b.Kind == BrushSolid || len(b.Stops) == 0 {
		return b.Color
	}
	stops := b.Stops
	if t <= stops[0].Position {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Position {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Position {
			span := stops[i].Position - stops[i-1].Position
			if span <= 0 {
				return stops[i].Color
			}
			local := (t - stops[i-1].Position) / span
			return LerpColor(stops[i-1].Color, stops[i].Color, local)
		}
	}
	return last.Color
}

// AnchoredGradient is a gradient mapped onto device pixels.
type AnchoredGradient struct {
	Start geometry.Offset
	End   geometry.Offset
}

// AnchorTo maps the brush's normalized gradient coordinates onto the given
// window-local rectangle in device pixels.
func (b Brush) AnchorTo(rect geometry.Rect) AnchoredGradient {
	return AnchoredGradient{
		Start: geometry.Offset{
			X: rect.Left + b.Start.X*rect.Width(),
			Y: rect.Top + b.Start.Y*rect.Height(),
		},
		End: geometry.Offset{
			X: rect.Left + b.End.X*rect.Width(),
			Y: rect.Top + b.End.Y*rect.Height(),
		},
	}
}

// Primary returns a representative color for the brush, used when effects
// need a single tint (glow color defaults to the brush's first stop).
func (b Brush) Primary() Color {
	if b.Kind == BrushGradient && len(b.Stops) > 0 {
		return b.Stops[0].Color
	}
	return b.Color
}
