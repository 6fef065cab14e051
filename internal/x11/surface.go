package x11

import (
	"image"
	"math"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/edgelit/edgelit/pkg/geometry"
	"github.com/edgelit/edgelit/pkg/render"
	"github.com/edgelit/edgelit/pkg/xerrors"
)

// putImageChunk caps the pixel payload per PutImage request to stay under
// the X server's maximum request length.
const putImageChunk = 65536

// surface is one border window: override-redirect so the window manager
// ignores it, 32-bit ARGB where available so the band composites over
// the desktop, and input-shaped to pass clicks through.
type surface struct {
	conn    *Connection
	tracked xproto.Window
	win     xproto.Window
	gc      xproto.Gcontext
	depth   byte
	width   uint16
	height  uint16
	mapped  bool
}

// CreateSurface creates a hidden border window for the tracked window.
// Connection satisfies the render.SurfaceProvider interface.
func (c *Connection) CreateSurface(window uint32, bounds geometry.Rect) (render.Surface, error) {
	conn := c.XUtil.Conn()
	screen := c.XUtil.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, xerrors.EW("x11.surface", xerrors.KindPlatform, window, err)
	}

	x, y, w, h := rectGeometry(bounds)
	depth := screen.RootDepth
	visual := screen.RootVisual
	var mask uint32
	var values []uint32
	if c.HasARGB() {
		depth = c.argbDepth
		visual = c.argbVisual
		cmid, err := xproto.NewColormapId(conn)
		if err != nil {
			return nil, xerrors.EW("x11.surface", xerrors.KindPlatform, window, err)
		}
		if err := xproto.CreateColormapChecked(conn, xproto.ColormapAllocNone, cmid, c.Root, visual).Check(); err != nil {
			return nil, xerrors.EW("x11.surface", xerrors.KindPlatform, window, err)
		}
		// A non-root depth requires explicit back/border pixels and a
		// matching colormap. Value order follows the mask bit positions.
		mask = xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwOverrideRedirect | xproto.CwColormap
		values = []uint32{0, 0, 1, uint32(cmid)}
	} else {
		mask = xproto.CwBackPixel | xproto.CwOverrideRedirect
		values = []uint32{0, 1}
	}

	err = xproto.CreateWindowChecked(
		conn, depth, wid, c.Root,
		x, y, w, h,
		0, xproto.WindowClassInputOutput, visual,
		mask, values,
	).Check()
	if err != nil {
		return nil, xerrors.EW("x11.surface", xerrors.KindPlatform, window, err)
	}

	gcid, err := xproto.NewGcontextId(conn)
	if err != nil {
		return nil, xerrors.EW("x11.surface", xerrors.KindPlatform, window, err)
	}
	if err := xproto.CreateGCChecked(conn, gcid, xproto.Drawable(wid), 0, nil).Check(); err != nil {
		return nil, xerrors.EW("x11.surface", xerrors.KindPlatform, window, err)
	}

	s := &surface{
		conn:    c,
		tracked: xproto.Window(window),
		win:     wid,
		gc:      gcid,
		depth:   depth,
		width:   w,
		height:  h,
	}
	s.clearInputRegion()
	return s, nil
}

// clearInputRegion makes the whole window click-through.
func (s *surface) clearInputRegion() {
	if !s.conn.shapeOK {
		return
	}
	shape.Rectangles(
		s.conn.XUtil.Conn(),
		shape.SoSet, shape.SkInput, xproto.ClipOrderingUnsorted,
		s.win, 0, 0, nil,
	)
}

func rectGeometry(r geometry.Rect) (x, y int16, w, h uint16) {
	x = int16(math.Floor(r.Left))
	y = int16(math.Floor(r.Top))
	w = clampDim(r.Width())
	h = clampDim(r.Height())
	return
}

func clampDim(v float64) uint16 {
	n := int(math.Ceil(v))
	if n < 1 {
		n = 1
	}
	if n > math.MaxUint16 {
		n = math.MaxUint16
	}
	return uint16(n)
}

// SetGeometry moves and resizes the border window.
func (s *surface) SetGeometry(r geometry.Rect) error {
	x, y, w, h := rectGeometry(r)
	err := xproto.ConfigureWindowChecked(
		s.conn.XUtil.Conn(), s.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(uint16(x)), uint32(uint16(y)), uint32(w), uint32(h)},
	).Check()
	if err != nil {
		return xerrors.EW("x11.geometry", xerrors.KindPlatform, uint32(s.tracked), err)
	}
	s.width, s.height = w, h
	return nil
}

// RaiseAbove stacks the border directly above its tracked window. When
// the window manager has reparented the tracked window the sibling
// restack fails with BadMatch; fall back to a plain raise so the border
// at least stays visible.
func (s *surface) RaiseAbove() error {
	err := xproto.ConfigureWindowChecked(
		s.conn.XUtil.Conn(), s.win,
		xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
		[]uint32{uint32(s.tracked), xproto.StackModeAbove},
	).Check()
	if err == nil {
		return nil
	}
	err = xproto.ConfigureWindowChecked(
		s.conn.XUtil.Conn(), s.win,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	).Check()
	if err != nil {
		return xerrors.EW("x11.raise", xerrors.KindPlatform, uint32(s.tracked), err)
	}
	return nil
}

// Show maps the border window.
func (s *surface) Show() error {
	if s.mapped {
		return nil
	}
	if err := xproto.MapWindowChecked(s.conn.XUtil.Conn(), s.win).Check(); err != nil {
		return xerrors.EW("x11.show", xerrors.KindPlatform, uint32(s.tracked), err)
	}
	s.mapped = true
	return nil
}

// Hide unmaps the border window, keeping it around for restore.
func (s *surface) Hide() error {
	if !s.mapped {
		return nil
	}
	if err := xproto.UnmapWindowChecked(s.conn.XUtil.Conn(), s.win).Check(); err != nil {
		return xerrors.EW("x11.hide", xerrors.KindPlatform, uint32(s.tracked), err)
	}
	s.mapped = false
	return nil
}

// Submit uploads one frame. The painter's output is premultiplied RGBA;
// X wants BGRA in ZPixmap order, uploaded in chunks that fit a request.
func (s *surface) Submit(img *image.RGBA) error {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	if w > int(s.width) {
		w = int(s.width)
	}
	if h > int(s.height) {
		h = int(s.height)
	}

	rowBytes := w * 4
	rowsPerChunk := putImageChunk / rowBytes
	if rowsPerChunk < 1 {
		rowsPerChunk = 1
	}
	buf := make([]byte, rowsPerChunk*rowBytes)

	conn := s.conn.XUtil.Conn()
	for y := 0; y < h; y += rowsPerChunk {
		rows := rowsPerChunk
		if y+rows > h {
			rows = h - y
		}
		n := 0
		for r := 0; r < rows; r++ {
			src := img.Pix[(y+r)*img.Stride : (y+r)*img.Stride+rowBytes]
			for x := 0; x < rowBytes; x += 4 {
				buf[n] = src[x+2]   // B
				buf[n+1] = src[x+1] // G
				buf[n+2] = src[x]   // R
				buf[n+3] = src[x+3] // A
				n += 4
			}
		}
		err := xproto.PutImageChecked(
			conn, xproto.ImageFormatZPixmap,
			xproto.Drawable(s.win), s.gc,
			uint16(w), uint16(rows),
			0, int16(y),
			0, s.depth, buf[:n],
		).Check()
		if err != nil {
			return xerrors.EW("x11.submit", xerrors.KindPlatform, uint32(s.tracked), err)
		}
	}
	return nil
}

// Close destroys the border window.
func (s *surface) Close() error {
	conn := s.conn.XUtil.Conn()
	xproto.FreeGC(conn, s.gc)
	if err := xproto.DestroyWindowChecked(conn, s.win).Check(); err != nil {
		return xerrors.EW("x11.close", xerrors.KindPlatform, uint32(s.tracked), err)
	}
	return nil
}
