// Package manager owns the set of live border instances and the render
// loop that drives them.
//
// Window events arrive from the platform layer on its own goroutine and
// are enqueued as intents into a bounded channel. The render loop drains
// the queue at the start of each tick and is the sole mutator of border
// state, so no per-instance locking is needed.
package manager

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/edgelit/edgelit/pkg/animation"
	"github.com/edgelit/edgelit/pkg/border"
	"github.com/edgelit/edgelit/pkg/config"
	"github.com/edgelit/edgelit/pkg/geometry"
	"github.com/edgelit/edgelit/pkg/render"
	"github.com/edgelit/edgelit/pkg/xerrors"
)

// intentQueueSize bounds the event queue. Overflow drops the event with a
// log line rather than blocking the platform event goroutine.
const intentQueueSize = 256

// errExit signals a requested shutdown through the intent queue.
var errExit = errors.New("exit requested")

// Options configures a manager.
type Options struct {
	Rules    *config.Ruleset
	Provider render.SurfaceProvider
	Log      *logrus.Logger
	// Reload re-reads the configuration from disk. Invoked on the render
	// loop goroutine when a reload intent is drained; nil disables
	// reloading.
	Reload func() (*config.Ruleset, error)
}

// instance pairs a border with its compositor surface.
type instance struct {
	border  *border.Border
	surface render.Surface
	info    config.WindowInfo
	bounds  geometry.Rect
	shown   bool
}

// Manager drives all border instances from a single render loop goroutine.
type Manager struct {
	log      *logrus.Logger
	rules    *config.Ruleset
	provider render.SurfaceProvider
	reload   func() (*config.Ruleset, error)
	painter  *render.Painter

	intents chan intent
	borders map[uint32]*instance
	// ignored remembers windows disabled by a rule so a reload that flips
	// the match can still attach a border to them.
	ignored map[uint32]intent
}

// New creates a manager. Run must be called to start processing.
func New(opts Options) *Manager {
	return &Manager{
		log:      opts.Log,
		rules:    opts.Rules,
		provider: opts.Provider,
		reload:   opts.Reload,
		painter:  render.NewPainter(),
		intents:  make(chan intent, intentQueueSize),
		borders:  make(map[uint32]*instance),
		ignored:  make(map[uint32]intent),
	}
}

// enqueue hands an intent to the render loop. Safe to call from any
// goroutine. A full queue drops the intent; the render loop catches up
// from current window state on later events rather than blocking event
// delivery.
func (m *Manager) enqueue(in intent) {
	select {
	case m.intents <- in:
	default:
		m.log.WithField("intent", in.kind).Warn("intent queue full, dropping event")
	}
}

// WindowCreated reports a newly observed window. Rules are evaluated when
// the intent is drained; non-matching windows never get an instance.
func (m *Manager) WindowCreated(window uint32, rect geometry.Rect, info config.WindowInfo, focused, existing bool, hint geometry.CornerHint) {
	m.enqueue(intent{
		kind:     intentCreate,
		window:   window,
		rect:     rect,
		info:     info,
		focused:  focused,
		existing: existing,
		hint:     hint,
	})
}

// WindowDestroyed reports that the OS destroyed a window.
func (m *Manager) WindowDestroyed(window uint32) {
	m.enqueue(intent{kind: intentDestroy, window: window})
}

// FocusChanged reports the newly focused window; zero means focus left
// all tracked windows.
func (m *Manager) FocusChanged(active uint32) {
	m.enqueue(intent{kind: intentFocus, active: active})
}

// WindowMoved reports a move or resize.
func (m *Manager) WindowMoved(window uint32, rect geometry.Rect) {
	m.enqueue(intent{kind: intentRect, window: window, rect: rect})
}

// WindowMinimized reports a minimize.
func (m *Manager) WindowMinimized(window uint32) {
	m.enqueue(intent{kind: intentMinimize, window: window})
}

// WindowRestored reports a restore from minimized.
func (m *Manager) WindowRestored(window uint32) {
	m.enqueue(intent{kind: intentRestore, window: window})
}

// ReloadConfig requests a configuration reload. Safe from any goroutine;
// applied at the next tick boundary, never mid-render.
func (m *Manager) ReloadConfig() {
	m.enqueue(intent{kind: intentReload})
}

// Exit requests a shutdown. Safe from any goroutine.
func (m *Manager) Exit() {
	m.enqueue(intent{kind: intentExit})
}

// Run drives the render loop until Exit is requested or the context is
// canceled. All borders and surfaces are torn down on return.
func (m *Manager) Run(ctx context.Context) error {
	defer m.teardown()

	interval := frameInterval(m.rules.Global().FPS)
	timer := time.NewTimer(interval)
	defer timer.Stop()
	last := animation.Now()

	for {
		if m.idle() {
			// Nothing is animating and no delay is pending: block until
			// an event arrives instead of burning frames.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case in := <-m.intents:
				last = animation.Now()
				if err := m.apply(in); err != nil {
					return exitOrErr(err)
				}
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}

		if err := m.drain(); err != nil {
			return exitOrErr(err)
		}

		now := animation.Now()
		elapsed := now.Sub(last)
		last = now
		m.tick(now, elapsed)

		interval = frameInterval(m.rules.Global().FPS)
		timer.Reset(interval)
	}
}

func exitOrErr(err error) error {
	if errors.Is(err, errExit) {
		return nil
	}
	return err
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// idle reports whether no instance needs per-tick advancement.
func (m *Manager) idle() bool {
	for _, inst := range m.borders {
		if inst.border.Animating() {
			return false
		}
	}
	return true
}

// drain applies every queued intent. Called once per tick so the render
// loop observes a consistent snapshot of window state.
func (m *Manager) drain() error {
	for {
		select {
		case in := <-m.intents:
			if err := m.apply(in); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (m *Manager) apply(in intent) error {
	switch in.kind {
	case intentCreate:
		return m.applyCreate(in)
	case intentDestroy:
		delete(m.ignored, in.window)
		if inst, ok := m.borders[in.window]; ok {
			inst.border.Close()
		}
	case intentFocus:
		for w, inst := range m.borders {
			inst.border.SetFocus(w == in.active)
		}
	case intentRect:
		if inst, ok := m.borders[in.window]; ok {
			inst.border.SetRect(in.rect)
		}
	case intentMinimize:
		if inst, ok := m.borders[in.window]; ok {
			inst.border.Minimize()
			m.hideSurface(inst)
		}
	case intentRestore:
		if inst, ok := m.borders[in.window]; ok {
			inst.border.Restore()
		}
	case intentReload:
		m.applyReload()
	case intentExit:
		return errExit
	}
	return nil
}

// applyCreate evaluates window rules and instantiates a border for
// matching windows. At most one instance exists per window.
func (m *Manager) applyCreate(in intent) error {
	if _, ok := m.borders[in.window]; ok {
		return nil
	}
	decision := m.rules.Match(in.info)
	if !decision.Enabled {
		m.ignored[in.window] = in
		m.log.WithFields(logrus.Fields{
			"window": in.window,
			"class":  in.info.Class,
		}).Debug("window disabled by rule")
		return nil
	}
	delete(m.ignored, in.window)

	b := border.New(border.Options{
		Window:     in.window,
		Rect:       in.rect,
		Config:     decision.Config,
		Focused:    in.focused,
		Existing:   in.existing,
		CornerHint: in.hint,
	}, m.log)

	surface, err := m.provider.CreateSurface(in.window, in.rect)
	if err != nil {
		// Surface creation failing means the platform layer is broken for
		// every window, not just this one.
		return xerrors.EW("manager.create", xerrors.KindInit, in.window, err)
	}
	m.borders[in.window] = &instance{border: b, surface: surface, info: in.info}
	m.log.WithFields(logrus.Fields{
		"window": in.window,
		"class":  in.info.Class,
	}).Info("tracking window")
	return nil
}

// applyReload re-reads the configuration and re-resolves every live
// instance in place. A window whose rule match flips to disabled is
// closed; everything else keeps its identity and repaints with the new
// settings.
func (m *Manager) applyReload() {
	if m.reload == nil {
		return
	}
	rules, err := m.reload()
	if err != nil {
		m.log.WithError(err).Error("config reload failed, keeping previous configuration")
		return
	}
	m.rules = rules
	for _, inst := range m.borders {
		decision := m.rules.Match(inst.info)
		if !decision.Enabled {
			inst.border.Close()
			continue
		}
		inst.border.Reload(decision.Config)
	}
	// Windows a rule previously disabled may match now. Their borders
	// skip the initialize delay: the window is not new, only the rule is.
	for w, in := range m.ignored {
		in.existing = true
		if err := m.applyCreate(in); err != nil {
			m.log.WithError(err).WithField("window", w).Error("cannot attach border after reload")
		}
	}
	m.log.Info("configuration reloaded")
}

// tick advances every instance one frame and submits the results.
func (m *Manager) tick(now time.Time, elapsed time.Duration) {
	for w, inst := range m.borders {
		frame, ok := inst.border.Tick(now, elapsed)
		if ok {
			m.submit(inst, frame)
		}
		if inst.border.Done() {
			m.removeInstance(w, inst)
		}
	}
}

// submit paints the frame and pushes it to the instance surface, keeping
// surface geometry and stacking in sync. Submission failures are
// transient: the frame is skipped and the next tick retries.
func (m *Manager) submit(inst *instance, frame render.Frame) {
	if !frame.Bounds.Equals(inst.bounds) {
		if err := inst.surface.SetGeometry(frame.Bounds); err != nil {
			m.logTransient(inst, "manager.geometry", err)
			return
		}
		inst.bounds = frame.Bounds
	}
	img := m.painter.Paint(frame)
	if err := inst.surface.Submit(img); err != nil {
		m.logTransient(inst, "manager.submit", err)
		return
	}
	if !inst.shown {
		if err := inst.surface.Show(); err != nil {
			m.logTransient(inst, "manager.show", err)
			return
		}
		inst.shown = true
	}
	if err := inst.surface.RaiseAbove(); err != nil {
		m.logTransient(inst, "manager.raise", err)
	}
}

func (m *Manager) hideSurface(inst *instance) {
	if !inst.shown {
		return
	}
	if err := inst.surface.Hide(); err != nil {
		m.logTransient(inst, "manager.hide", err)
		return
	}
	inst.shown = false
}

func (m *Manager) logTransient(inst *instance, op string, err error) {
	m.log.WithError(xerrors.EW(op, xerrors.KindRender, inst.border.Window(), err)).
		Debug("frame skipped, retrying next tick")
}

func (m *Manager) removeInstance(w uint32, inst *instance) {
	if err := inst.surface.Close(); err != nil {
		m.log.WithError(err).Debug("surface close failed")
	}
	delete(m.borders, w)
	m.log.WithField("window", w).Info("untracking window")
}

func (m *Manager) teardown() {
	for w, inst := range m.borders {
		inst.surface.Close()
		delete(m.borders, w)
	}
}
