// Package border implements the per-window border instance: a state
// machine that tracks one OS window through creation, focus changes,
// minimize and restore, and teardown, and produces the draw frame for
// each render tick.
package border

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/edgelit/edgelit/pkg/animation"
	"github.com/edgelit/edgelit/pkg/config"
	"github.com/edgelit/edgelit/pkg/geometry"
	"github.com/edgelit/edgelit/pkg/render"
)

// Focus is the window focus state, selecting which color, animation and
// effect configuration applies.
type Focus int

const (
	FocusInactive Focus = iota
	FocusActive
)

// String returns a human-readable representation of the focus state.
func (f Focus) String() string {
	if f == FocusActive {
		return "active"
	}
	return "inactive"
}

// State is the border visibility state.
type State int

const (
	// StatePending waits out the initialize delay before first paint.
	StatePending State = iota
	// StateVisible is actively rendered.
	StateVisible
	// StateHidden retains state while the window is minimized.
	StateHidden
	// StateClosing is terminal; the instance is removed once any closing
	// fade settles.
	StateClosing
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateVisible:
		return "visible"
	case StateHidden:
		return "hidden"
	case StateClosing:
		return "closing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// fadeMode selects how the fade factor maps to layer alphas.
type fadeMode int

const (
	fadeNone    fadeMode = iota
	fadeIn               // first appearance, blend up from transparent
	fadeBetween          // focus flip, cross-blend previous and current brush
	fadeOut              // closing, blend down to transparent
)

// Options configures a new border instance.
type Options struct {
	Window uint32
	Rect   geometry.Rect
	Config config.Resolved
	// Focused is the window's focus state at creation.
	Focused bool
	// Existing marks a window that predates the process; such windows
	// skip the initialize delay so startup does not stagger visibly.
	Existing bool
	// CornerHint is the window manager's corner preference, consulted by
	// the auto corner style.
	CornerHint geometry.CornerHint
}

// Border is the per-window instance. All methods must be called from the
// render loop goroutine; the instance holds no locks.
type Border struct {
	window uint32
	rect   geometry.Rect
	cfg    config.Resolved
	hint   geometry.CornerHint
	log    *logrus.Entry

	state State
	focus Focus

	timeline  *animation.Timeline
	fade      fadeMode
	prevBrush render.Brush

	pendingUntil   time.Time
	restorePending bool
	restoreAt      time.Time
	focusAtHide    Focus

	dirty         bool
	done          bool
	resolveFailed bool
}

// New creates a border in the pending state. The first paint happens once
// the initialize delay elapses, immediately for pre-existing windows.
func New(opts Options, log *logrus.Logger) *Border {
	b := &Border{
		window: opts.Window,
		rect:   opts.Rect,
		cfg:    opts.Config,
		hint:   opts.CornerHint,
		log:    log.WithField("window", fmt.Sprintf("0x%x", opts.Window)),
		state:  StatePending,
		focus:  FocusInactive,
	}
	if opts.Focused {
		b.focus = FocusActive
	}
	b.pendingUntil = animation.Now()
	if !opts.Existing {
		b.pendingUntil = b.pendingUntil.Add(opts.Config.InitializeDelay)
	}
	b.timeline = animation.NewTimeline(nil)
	return b
}

// Window returns the tracked window handle.
func (b *Border) Window() uint32 { return b.window }

// State returns the current visibility state.
func (b *Border) State() State { return b.state }

// Focus returns the current focus state.
func (b *Border) Focus() Focus { return b.focus }

// Rect returns the tracked window rectangle.
func (b *Border) Rect() geometry.Rect { return b.rect }

// Done reports whether the instance has finished closing and can be
// removed from the active set.
func (b *Border) Done() bool { return b.done }

// Animating reports whether the instance needs per-tick advancement, for
// render loop idle detection. Pending and restore delays count because
// their expiry is observed on a tick.
func (b *Border) Animating() bool {
	switch b.state {
	case StatePending:
		return true
	case StateHidden:
		return b.restorePending
	case StateClosing:
		return !b.done
	default:
		return b.timeline.Animating()
	}
}

// SetRect updates the window rectangle on a move or resize notification.
func (b *Border) SetRect(rect geometry.Rect) {
	if rect.Equals(b.rect) {
		return
	}
	b.rect = rect
	b.dirty = true
}

// SetFocus updates the focus state. A flip while visible retriggers the
// configured animations for the new state from progress 0.
func (b *Border) SetFocus(focused bool) {
	f := FocusInactive
	if focused {
		f = FocusActive
	}
	if f == b.focus {
		return
	}
	prev := b.focus
	b.focus = f
	if b.state == StateVisible {
		b.trigger(prev)
	}
	b.dirty = true
}

// Minimize suspends rendering. Animation progress is paused in place, not
// reset, so a restore with unchanged focus resumes mid-animation.
func (b *Border) Minimize() {
	if b.state != StateVisible {
		return
	}
	b.state = StateHidden
	b.focusAtHide = b.focus
	b.restorePending = false
	b.timeline.Pause()
}

// Restore schedules the transition back to visible after the configured
// restore delay.
func (b *Border) Restore() {
	if b.state != StateHidden {
		return
	}
	b.restorePending = true
	b.restoreAt = animation.Now().Add(b.cfg.RestoreDelay)
}

// Close begins teardown. With a fade configured for the current focus
// state the border fades out to transparent before removal; otherwise the
// instance is removable immediately. Closing is terminal: no later event
// can resurrect the instance.
func (b *Border) Close() {
	if b.state == StateClosing {
		return
	}
	wasVisible := b.state == StateVisible
	b.state = StateClosing
	spec, ok := b.fadeSpec()
	if !wasVisible || !ok {
		b.done = true
		return
	}
	b.timeline = animation.NewTimeline([]animation.Spec{spec})
	b.fade = fadeOut
}

// Reload swaps in a freshly resolved configuration without destroying the
// instance. Running animations are discarded and the border repaints in
// its settled appearance on the next tick.
func (b *Border) Reload(cfg config.Resolved) {
	if b.state == StateClosing {
		return
	}
	b.cfg = cfg
	b.timeline = animation.NewTimeline(b.currentStyle().Animations)
	b.timeline.Advance(time.Hour)
	b.fade = fadeNone
	b.dirty = true
}

// Tick advances the state machine by one render tick. It returns the
// frame to submit and whether submission is needed; idle instances return
// false so unchanged borders are not resubmitted to the compositor.
func (b *Border) Tick(now time.Time, elapsed time.Duration) (render.Frame, bool) {
	switch b.state {
	case StatePending:
		if now.Before(b.pendingUntil) {
			return render.Frame{}, false
		}
		b.state = StateVisible
		b.becomeVisible()
	case StateHidden:
		if !b.restorePending || now.Before(b.restoreAt) {
			return render.Frame{}, false
		}
		b.state = StateVisible
		b.restorePending = false
		if b.focus != b.focusAtHide {
			b.trigger(b.focusAtHide)
		} else {
			b.timeline.Resume()
		}
		b.dirty = true
	case StateClosing:
		if b.done {
			return render.Frame{}, false
		}
		b.timeline.Advance(elapsed)
		if b.timeline.Settled() {
			b.done = true
			return render.Frame{}, false
		}
		return b.buildFrame()
	}

	animating := b.timeline.Animating()
	b.timeline.Advance(elapsed)
	if !animating && !b.dirty {
		return render.Frame{}, false
	}
	return b.buildFrame()
}

// becomeVisible starts the first-appearance animations.
func (b *Border) becomeVisible() {
	b.timeline = animation.NewTimeline(b.currentStyle().Animations)
	b.fade = fadeNone
	if b.timeline.Has(animation.KindFade) {
		b.fade = fadeIn
	}
	b.dirty = true
}

// trigger restarts the animation set for the current focus state after a
// focus flip, remembering the outgoing brush for the cross-blend.
func (b *Border) trigger(prev Focus) {
	b.prevBrush = b.styleFor(prev).Brush
	b.timeline = animation.NewTimeline(b.currentStyle().Animations)
	b.fade = fadeNone
	if b.timeline.Has(animation.KindFade) {
		b.fade = fadeBetween
	}
}

func (b *Border) currentStyle() config.StateStyle {
	return b.styleFor(b.focus)
}

func (b *Border) styleFor(f Focus) config.StateStyle {
	if f == FocusActive {
		return b.cfg.Active
	}
	return b.cfg.Inactive
}

// fadeSpec returns the fade spec configured for the current focus state.
func (b *Border) fadeSpec() (animation.Spec, bool) {
	for _, s := range b.currentStyle().Animations {
		if s.Kind == animation.KindFade {
			return s, true
		}
	}
	return animation.Spec{}, false
}

// buildFrame resolves geometry and colors for the current tick. A failed
// resolution (degenerate rectangle) skips the frame and retries next tick;
// it is logged once per occurrence, not once per tick.
func (b *Border) buildFrame() (render.Frame, bool) {
	path := geometry.Resolve(b.rect, b.cfg.Style, b.hint)
	if path.Empty() {
		if !b.resolveFailed {
			b.log.WithField("rect", b.rect).Debug("degenerate border geometry, skipping frame")
			b.resolveFailed = true
		}
		return render.Frame{}, false
	}
	b.resolveFailed = false
	b.dirty = false

	style := b.currentStyle()
	layers, overall := b.layers(style)

	sweep := render.FullSweep
	if f, ok := b.timeline.Factor(animation.KindSpiral); ok {
		sweep = render.Sweep{Fraction: f}
	} else if f, ok := b.timeline.Factor(animation.KindReverseSpiral); ok {
		sweep = render.Sweep{Fraction: f, Reverse: true}
	}

	effects := style.Effects
	margin := 0.0
	for _, eff := range effects {
		if m := eff.Margin(); m > margin {
			margin = m
		}
	}
	if overall < 1 && len(effects) > 0 {
		scaled := make([]render.Effect, len(effects))
		for i, eff := range effects {
			eff.Opacity *= overall
			scaled[i] = eff
		}
		effects = scaled
	}

	return render.Frame{
		Bounds:     path.Outer.Rect.Inflate(margin + 2),
		WindowRect: b.rect,
		Path:       path,
		Layers:     layers,
		Sweep:      sweep,
		Effects:    effects,
	}, true
}

// layers maps the fade factor to paint layers. The second return value is
// the overall opacity, below 1 only during a closing fade-out.
func (b *Border) layers(style config.StateStyle) ([]render.Layer, float64) {
	f, ok := b.timeline.Factor(animation.KindFade)
	if !ok {
		b.fade = fadeNone
	}
	switch b.fade {
	case fadeIn:
		if f >= 1 {
			b.fade = fadeNone
			break
		}
		return []render.Layer{{Brush: style.Brush, Alpha: f}}, 1
	case fadeBetween:
		if f >= 1 {
			b.fade = fadeNone
			break
		}
		return []render.Layer{
			{Brush: b.prevBrush, Alpha: 1 - f},
			{Brush: style.Brush, Alpha: f},
		}, 1
	case fadeOut:
		return []render.Layer{{Brush: style.Brush, Alpha: 1 - f}}, 1 - f
	}
	return []render.Layer{{Brush: style.Brush, Alpha: 1}}, 1
}
