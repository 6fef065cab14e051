// Package geometry provides the value types and the border path resolver
// used by the rendering pipeline.
package geometry

import "math"

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Offset represents a 2D point or vector in pixel coordinates.
type Offset struct {
	X float64
	Y float64
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Offset {
	return Offset{
		X: (r.Left + r.Right) * 0.5,
		Y: (r.Top + r.Bottom) * 0.5,
	}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Inflate returns a rect grown by d on every side. A negative d shrinks it.
func (r Rect) Inflate(d float64) Rect {
	return Rect{
		Left:   r.Left - d,
		Top:    r.Top - d,
		Right:  r.Right + d,
		Bottom: r.Bottom + d,
	}
}

// Translate returns a new rect offset by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// Equals reports whether two rects are approximately equal.
func (r Rect) Equals(other Rect) bool {
	return floatEqual(r.Left, other.Left) &&
		floatEqual(r.Top, other.Top) &&
		floatEqual(r.Right, other.Right) &&
		floatEqual(r.Bottom, other.Bottom)
}

// SameSize reports whether two rects have approximately equal dimensions.
func (r Rect) SameSize(other Rect) bool {
	return floatEqual(r.Width(), other.Width()) && floatEqual(r.Height(), other.Height())
}

// RRect represents a rounded rectangle with a uniform corner radius.
type RRect struct {
	Rect   Rect
	Radius float64
}

// RRectFromRect creates a rounded rectangle, clamping the radius so adjacent
// corner arcs never overlap.
func RRectFromRect(rect Rect, radius float64) RRect {
	if radius < 0 {
		radius = 0
	}
	maxRadius := math.Min(rect.Width(), rect.Height()) * 0.5
	if radius > maxRadius {
		radius = maxRadius
	}
	return RRect{Rect: rect, Radius: radius}
}

// IsEmpty returns true if the underlying rectangle is empty.
func (r RRect) IsEmpty() bool {
	return r.Rect.IsEmpty()
}

// floatEqual returns true if two float64 values are approximately equal.
func floatEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}
