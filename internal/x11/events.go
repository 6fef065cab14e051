package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/sirupsen/logrus"

	"github.com/edgelit/edgelit/pkg/config"
	"github.com/edgelit/edgelit/pkg/geometry"
	"github.com/edgelit/edgelit/pkg/xerrors"
)

// Sink receives translated window events. The manager implements it; all
// methods only enqueue intents, so calling them from the X event loop
// goroutine is safe.
type Sink interface {
	WindowCreated(window uint32, rect geometry.Rect, info config.WindowInfo, focused, existing bool, hint geometry.CornerHint)
	WindowDestroyed(window uint32)
	FocusChanged(active uint32)
	WindowMoved(window uint32, rect geometry.Rect)
	WindowMinimized(window uint32)
	WindowRestored(window uint32)
}

// Dispatcher subscribes to window notifications and forwards them to the
// sink. It runs entirely on the X event loop goroutine; the tracked and
// hidden maps are never touched from elsewhere.
type Dispatcher struct {
	conn *Connection
	sink Sink
	log  *logrus.Logger

	tracked map[xproto.Window]bool
	hidden  map[xproto.Window]bool
}

// NewDispatcher creates a dispatcher for the connection.
func NewDispatcher(conn *Connection, sink Sink, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		conn:    conn,
		sink:    sink,
		log:     log,
		tracked: make(map[xproto.Window]bool),
		hidden:  make(map[xproto.Window]bool),
	}
}

// Subscribe registers for window notifications on the root window and
// announces every pre-existing client. Failing to subscribe is fatal: the
// daemon cannot track windows without these events.
func (d *Dispatcher) Subscribe() error {
	root := xwindow.New(d.conn.XUtil, d.conn.Root)
	err := root.Listen(xproto.EventMaskSubstructureNotify | xproto.EventMaskPropertyChange)
	if err != nil {
		return xerrors.E("x11.subscribe", xerrors.KindInit, err)
	}

	xevent.MapNotifyFun(d.onMap).Connect(d.conn.XUtil, d.conn.Root)
	xevent.DestroyNotifyFun(d.onDestroy).Connect(d.conn.XUtil, d.conn.Root)
	xevent.ConfigureNotifyFun(d.onConfigure).Connect(d.conn.XUtil, d.conn.Root)
	xevent.PropertyNotifyFun(d.onRootProperty).Connect(d.conn.XUtil, d.conn.Root)

	d.announceExisting()
	return nil
}

// Run drives the X event loop until Stop is called. Blocking; run it on
// its own goroutine.
func (d *Dispatcher) Run() {
	xevent.Main(d.conn.XUtil)
}

// Stop terminates the event loop.
func (d *Dispatcher) Stop() {
	xevent.Quit(d.conn.XUtil)
}

// announceExisting reports every mapped client window present at startup
// so borders attach without waiting for new events.
func (d *Dispatcher) announceExisting() {
	clients, err := ewmh.ClientListGet(d.conn.XUtil)
	if err != nil {
		d.log.WithError(err).Warn("client list unavailable, tracking new windows only")
		return
	}
	active, _ := ewmh.ActiveWindowGet(d.conn.XUtil)
	for _, id := range clients {
		d.adopt(id, id == active, true)
	}
}

// adopt starts tracking a client window and reports its creation.
func (d *Dispatcher) adopt(id xproto.Window, focused, existing bool) {
	if d.tracked[id] || !d.isClientWindow(id) {
		return
	}
	rect, err := d.windowRect(id)
	if err != nil {
		d.log.WithError(err).WithField("window", id).Debug("window geometry unavailable, skipping")
		return
	}
	// Property changes carry minimize and restore; structure changes
	// carry per-window moves not visible through the root mask.
	if err := xwindow.New(d.conn.XUtil, id).Listen(xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify); err != nil {
		d.log.WithError(err).WithField("window", id).Debug("cannot listen on window, skipping")
		return
	}
	xevent.PropertyNotifyFun(d.onWindowProperty).Connect(d.conn.XUtil, id)

	d.tracked[id] = true
	d.hidden[id] = false
	d.sink.WindowCreated(uint32(id), rect, d.windowInfo(id), focused, existing, geometry.HintUnknown)
}

func (d *Dispatcher) onMap(xu *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
	d.adopt(ev.Window, false, false)
}

func (d *Dispatcher) onDestroy(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
	if !d.tracked[ev.Window] {
		return
	}
	delete(d.tracked, ev.Window)
	delete(d.hidden, ev.Window)
	xevent.Detach(xu, ev.Window)
	d.sink.WindowDestroyed(uint32(ev.Window))
}

func (d *Dispatcher) onConfigure(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
	if !d.tracked[ev.Window] {
		return
	}
	rect, err := d.windowRect(ev.Window)
	if err != nil {
		return
	}
	d.sink.WindowMoved(uint32(ev.Window), rect)
}

// onRootProperty watches the active window property for focus changes.
func (d *Dispatcher) onRootProperty(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
	name, err := xprop.AtomName(xu, ev.Atom)
	if err != nil || name != "_NET_ACTIVE_WINDOW" {
		return
	}
	active, err := ewmh.ActiveWindowGet(xu)
	if err != nil {
		return
	}
	d.sink.FocusChanged(uint32(active))
}

// onWindowProperty watches per-window state for minimize and restore.
func (d *Dispatcher) onWindowProperty(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
	if !d.tracked[ev.Window] {
		return
	}
	name, err := xprop.AtomName(xu, ev.Atom)
	if err != nil || name != "_NET_WM_STATE" {
		return
	}
	hidden := d.isHidden(ev.Window)
	if hidden == d.hidden[ev.Window] {
		return
	}
	d.hidden[ev.Window] = hidden
	if hidden {
		d.sink.WindowMinimized(uint32(ev.Window))
	} else {
		d.sink.WindowRestored(uint32(ev.Window))
	}
}

func (d *Dispatcher) isHidden(id xproto.Window) bool {
	states, err := ewmh.WmStateGet(d.conn.XUtil, id)
	if err != nil {
		return false
	}
	for _, s := range states {
		if s == "_NET_WM_STATE_HIDDEN" {
			return true
		}
	}
	return false
}

// isClientWindow filters out override-redirect and non-normal windows so
// docks, menus and our own border surfaces are never tracked.
func (d *Dispatcher) isClientWindow(id xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(d.conn.XUtil.Conn(), id).Reply()
	if err != nil || attrs.OverrideRedirect {
		return false
	}
	types, err := ewmh.WmWindowTypeGet(d.conn.XUtil, id)
	if err != nil || len(types) == 0 {
		return true
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
	}
	return false
}

// windowRect returns the window's rectangle in root coordinates.
func (d *Dispatcher) windowRect(id xproto.Window) (geometry.Rect, error) {
	conn := d.conn.XUtil.Conn()
	geom, err := xproto.GetGeometry(conn, xproto.Drawable(id)).Reply()
	if err != nil {
		return geometry.Rect{}, err
	}
	trans, err := xproto.TranslateCoordinates(conn, id, d.conn.Root, 0, 0).Reply()
	if err != nil {
		return geometry.Rect{}, err
	}
	return geometry.RectFromLTWH(
		float64(trans.DstX), float64(trans.DstY),
		float64(geom.Width), float64(geom.Height),
	), nil
}
