package render

import "github.com/edgelit/edgelit/pkg/geometry"

// Layer is one paint pass over the border band. A settled border has a
// single layer; an in-flight fade has two, the outgoing brush underneath
// the incoming one with complementary alphas.
type Layer struct {
	Brush Brush
	// Alpha scales the whole pass in [0, 1].
	Alpha float64
}

// Sweep limits drawing to an angular sub-arc of the border band, measured
// clockwise from the top center of the window. Fraction 1 draws the full
// band.
type Sweep struct {
	// Fraction of the full revolution to draw, in [0, 1].
	Fraction float64
	// Reverse sweeps counter-clockwise.
	Reverse bool
}

// FullSweep draws the whole band.
var FullSweep = Sweep{Fraction: 1}

// Full reports whether the sweep covers the entire band.
func (s Sweep) Full() bool {
	return s.Fraction >= 1
}

// Frame is the per-tick draw descriptor handed to the compositor surface:
// a border path, the brush layers to fill it with, an optional sweep
// restriction, and the effects composited beneath the band.
type Frame struct {
	// Bounds is the surface rectangle in screen coordinates. The path is
	// expressed in the same coordinate space.
	Bounds geometry.Rect
	// WindowRect is the tracked window's rectangle, the anchor space for
	// gradient brushes.
	WindowRect geometry.Rect
	Path       geometry.BorderPath
	Layers     []Layer
	Sweep      Sweep
	Effects    []Effect
}

// Empty reports whether the frame draws nothing.
func (f Frame) Empty() bool {
	if f.Path.Empty() || len(f.Layers) == 0 {
		return true
	}
	for _, l := range f.Layers {
		if l.Alpha > 0 {
			return false
		}
	}
	return true
}
