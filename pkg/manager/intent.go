package manager

import (
	"fmt"

	"github.com/edgelit/edgelit/pkg/config"
	"github.com/edgelit/edgelit/pkg/geometry"
)

// intentKind discriminates the queued window event variants.
type intentKind int

const (
	intentCreate intentKind = iota
	intentDestroy
	intentFocus
	intentRect
	intentMinimize
	intentRestore
	intentReload
	intentExit
)

// String returns a human-readable representation of the intent kind.
func (k intentKind) String() string {
	switch k {
	case intentCreate:
		return "create"
	case intentDestroy:
		return "destroy"
	case intentFocus:
		return "focus"
	case intentRect:
		return "rect"
	case intentMinimize:
		return "minimize"
	case intentRestore:
		return "restore"
	case intentReload:
		return "reload"
	case intentExit:
		return "exit"
	default:
		return fmt.Sprintf("intentKind(%d)", int(k))
	}
}

// intent is one queued window event. The event delivery goroutine only
// enqueues intents; all state mutation happens on the render loop when the
// queue is drained at the next tick boundary.
type intent struct {
	kind   intentKind
	window uint32
	rect   geometry.Rect
	info   config.WindowInfo
	// focused marks the newly created window as focused, existing marks a
	// window that predates the daemon.
	focused  bool
	existing bool
	hint     geometry.CornerHint
	// active carries the newly focused window for focus intents; zero
	// means no window is focused.
	active uint32
}
