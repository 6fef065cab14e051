// Package x11 is the platform layer: it connects to the X server,
// translates window notifications into manager intents, and implements
// the compositor surfaces borders are drawn onto.
package x11

import (
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/edgelit/edgelit/pkg/xerrors"
)

// Connection wraps the X server connection and the resolved visuals used
// for border surfaces.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	// argbVisual is the 32-bit visual used for translucent border
	// windows, zero when the screen offers none.
	argbVisual xproto.Visualid
	argbDepth  byte
	shapeOK    bool
}

// Connect establishes the X server connection and probes the extensions
// border surfaces rely on.
func Connect() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, xerrors.E("x11.connect", xerrors.KindInit, err)
	}
	c := &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}
	c.argbVisual, c.argbDepth = findARGBVisual(xu)

	// The shape extension punches the input region out of border windows
	// so clicks pass through to whatever is underneath. Without it the
	// borders still render but swallow input over the window interior,
	// so treat a missing extension as fatal.
	if err := shape.Init(xu.Conn()); err != nil {
		return nil, xerrors.E("x11.connect", xerrors.KindInit, err)
	}
	c.shapeOK = true
	return c, nil
}

// HasARGB reports whether translucent border windows are available.
func (c *Connection) HasARGB() bool {
	return c.argbVisual != 0
}

// Close disconnects from the X server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// findARGBVisual scans the screen's allowed depths for a 32-bit true
// color visual.
func findARGBVisual(xu *xgbutil.XUtil) (xproto.Visualid, byte) {
	for _, depth := range xu.Screen().AllowedDepths {
		if depth.Depth != 32 {
			continue
		}
		for _, visual := range depth.Visuals {
			if visual.Class == xproto.VisualClassTrueColor {
				return visual.VisualId, depth.Depth
			}
		}
	}
	return 0, 0
}
