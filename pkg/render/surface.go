package render

import (
	"image"

	"github.com/edgelit/edgelit/pkg/geometry"
)

// Surface is one compositor surface backing a single border: an
// always-on-top, input-transparent window the daemon draws into.
//
// Implementations live in the platform layer; the core only issues
// geometry updates, stacking requests and frame submissions against it.
type Surface interface {
	// SetGeometry positions the surface in screen coordinates.
	SetGeometry(r geometry.Rect) error
	// RaiseAbove stacks the surface directly above the tracked window so
	// the border stays visible without covering unrelated windows.
	RaiseAbove() error
	// Show makes the surface visible.
	Show() error
	// Hide removes the surface from view without destroying it.
	Hide() error
	// Submit presents one rendered frame. The image dimensions must match
	// the last SetGeometry call.
	Submit(img *image.RGBA) error
	// Close destroys the surface.
	Close() error
}

// SurfaceProvider creates surfaces for new border instances.
type SurfaceProvider interface {
	// CreateSurface creates a hidden surface covering the given screen
	// rectangle for the tracked window id.
	CreateSurface(window uint32, bounds geometry.Rect) (Surface, error)
}
