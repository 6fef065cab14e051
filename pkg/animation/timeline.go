// Package animation provides easing curves and the per-border timeline
// engine that drives fade and spiral border animations.
//
// A [Timeline] holds one progress value per configured animation kind for
// the focus state currently in effect. The render loop advances every
// visible timeline once per tick by the wall-clock elapsed time; progress
// is monotonically non-decreasing within a run, clamps at 1.0 (settled),
// and resets to 0 only on a new trigger such as a focus flip.
package animation

import (
	"fmt"
	"time"
)

// Kind identifies a border animation variant.
type Kind int

const (
	// KindFade cross-blends the previous and current brush.
	KindFade Kind = iota
	// KindSpiral sweeps the border band clockwise around the window.
	KindSpiral
	// KindReverseSpiral sweeps the border band counter-clockwise.
	KindReverseSpiral
)

// String returns a human-readable representation of the animation kind.
func (k Kind) String() string {
	switch k {
	case KindFade:
		return "fade"
	case KindSpiral:
		return "spiral"
	case KindReverseSpiral:
		return "reverse_spiral"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Default durations applied when a spec omits one.
const (
	DefaultFadeDuration   = 200 * time.Millisecond
	DefaultSpiralDuration = 1800 * time.Millisecond
)

// Spec describes one configured animation for a focus state.
type Spec struct {
	Kind     Kind
	Duration time.Duration
	Easing   Curve
}

// normalized returns the spec with defaults filled in.
func (s Spec) normalized() Spec {
	if s.Duration <= 0 {
		if s.Kind == KindFade {
			s.Duration = DefaultFadeDuration
		} else {
			s.Duration = DefaultSpiralDuration
		}
	}
	if s.Easing == nil {
		s.Easing = Linear
	}
	return s
}

// Timeline tracks the progress of every animation kind configured for one
// focus-state run on a single border.
//
// Timelines are owned by the render loop goroutine and are not safe for
// concurrent use.
type Timeline struct {
	specs    []Spec
	progress map[Kind]float64
	paused   bool
}

// NewTimeline creates a timeline for the given specs with all progress at 0.
// Duplicate kinds keep the first spec, matching first-match-wins config
// ordering.
func NewTimeline(specs []Spec) *Timeline {
	t := &Timeline{progress: make(map[Kind]float64, len(specs))}
	for _, s := range specs {
		s = s.normalized()
		if _, dup := t.progress[s.Kind]; dup {
			continue
		}
		t.specs = append(t.specs, s)
		t.progress[s.Kind] = 0
	}
	return t
}

// Advance moves every unsettled animation forward by elapsed wall-clock
// time. Paused timelines do not advance.
func (t *Timeline) Advance(elapsed time.Duration) {
	if t.paused || elapsed <= 0 {
		return
	}
	for _, s := range t.specs {
		p := t.progress[s.Kind]
		if p >= 1 {
			continue
		}
		p += float64(elapsed) / float64(s.Duration)
		if p > 1 {
			p = 1
		}
		t.progress[s.Kind] = p
	}
}

// Reset returns every progress value to 0 and unpauses. Called on a new
// trigger (focus flip, restore with changed focus, fade-out start).
func (t *Timeline) Reset() {
	for k := range t.progress {
		t.progress[k] = 0
	}
	t.paused = false
}

// Pause freezes progress in place. Used while the tracked window is hidden.
func (t *Timeline) Pause() { t.paused = true }

// Resume continues from the paused progress values.
func (t *Timeline) Resume() { t.paused = false }

// Paused reports whether the timeline is frozen.
func (t *Timeline) Paused() bool { return t.paused }

// Has reports whether the timeline carries the given kind.
func (t *Timeline) Has(kind Kind) bool {
	_, ok := t.progress[kind]
	return ok
}

// Progress returns the raw progress for the given kind, or ok=false when
// the kind is not configured.
func (t *Timeline) Progress(kind Kind) (float64, bool) {
	p, ok := t.progress[kind]
	return p, ok
}

// Factor returns the eased interpolation factor for the given kind, or
// ok=false when the kind is not configured.
func (t *Timeline) Factor(kind Kind) (float64, bool) {
	for _, s := range t.specs {
		if s.Kind == kind {
			return s.Easing(t.progress[s.Kind]), true
		}
	}
	return 0, false
}

// Settled reports whether every configured animation has reached 1.0.
// An empty timeline is settled.
func (t *Timeline) Settled() bool {
	for _, p := range t.progress {
		if p < 1 {
			return false
		}
	}
	return true
}

// Animating reports whether the timeline still needs per-tick advancement.
func (t *Timeline) Animating() bool {
	return !t.paused && !t.Settled()
}
