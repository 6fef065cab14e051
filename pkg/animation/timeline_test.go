package animation

import (
	"math"
	"testing"
	"time"
)

func TestTimelineAdvanceClamps(t *testing.T) {
	tl := NewTimeline([]Spec{{Kind: KindFade, Duration: 400 * time.Millisecond, Easing: Linear}})

	tl.Advance(100 * time.Millisecond)
	if p, _ := tl.Progress(KindFade); math.Abs(p-0.25) > 1e-9 {
		t.Fatalf("progress = %v, want 0.25", p)
	}
	tl.Advance(500 * time.Millisecond)
	if p, _ := tl.Progress(KindFade); p != 1 {
		t.Fatalf("progress = %v, want clamp to 1", p)
	}
	if !tl.Settled() {
		t.Error("expected settled timeline after clamp")
	}
}

func TestTimelineMonotonicWithinRun(t *testing.T) {
	tl := NewTimeline([]Spec{{Kind: KindSpiral, Duration: time.Second, Easing: EaseInOut}})
	prev := 0.0
	for i := 0; i < 20; i++ {
		tl.Advance(75 * time.Millisecond)
		p, _ := tl.Progress(KindSpiral)
		if p < prev {
			t.Fatalf("progress regressed: %v -> %v", prev, p)
		}
		prev = p
	}
}

func TestTimelineLinearFadeFactor(t *testing.T) {
	// A 450ms linear fade reaches factor 0.5 at 225ms and 1.0 at 450ms.
	tl := NewTimeline([]Spec{{Kind: KindFade, Duration: 450 * time.Millisecond, Easing: Linear}})

	tl.Advance(225 * time.Millisecond)
	f, ok := tl.Factor(KindFade)
	if !ok {
		t.Fatal("fade kind missing")
	}
	if math.Abs(f-0.5) > 1e-9 {
		t.Errorf("factor at 225ms = %v, want 0.5", f)
	}

	tl.Advance(225 * time.Millisecond)
	if f, _ := tl.Factor(KindFade); f != 1 {
		t.Errorf("factor at 450ms = %v, want 1.0", f)
	}
	tl.Advance(time.Millisecond)
	if f, _ := tl.Factor(KindFade); f != 1 {
		t.Errorf("factor past duration = %v, want 1.0", f)
	}
}

func TestTimelineResetOnTrigger(t *testing.T) {
	tl := NewTimeline([]Spec{
		{Kind: KindFade, Duration: 200 * time.Millisecond},
		{Kind: KindSpiral, Duration: time.Second},
	})
	tl.Advance(150 * time.Millisecond)
	tl.Reset()
	for _, kind := range []Kind{KindFade, KindSpiral} {
		if p, _ := tl.Progress(kind); p != 0 {
			t.Errorf("%v progress after reset = %v, want 0", kind, p)
		}
	}
}

func TestTimelinePauseResume(t *testing.T) {
	tl := NewTimeline([]Spec{{Kind: KindFade, Duration: 400 * time.Millisecond, Easing: Linear}})
	tl.Advance(100 * time.Millisecond)
	tl.Pause()
	tl.Advance(time.Hour)
	if p, _ := tl.Progress(KindFade); math.Abs(p-0.25) > 1e-9 {
		t.Fatalf("paused progress advanced to %v", p)
	}
	tl.Resume()
	tl.Advance(100 * time.Millisecond)
	if p, _ := tl.Progress(KindFade); math.Abs(p-0.5) > 1e-9 {
		t.Fatalf("resumed progress = %v, want 0.5", p)
	}
}

func TestTimelineDefaults(t *testing.T) {
	tl := NewTimeline([]Spec{{Kind: KindFade}, {Kind: KindReverseSpiral}})
	// Defaults: fade 200ms, spirals 1800ms.
	tl.Advance(100 * time.Millisecond)
	if p, _ := tl.Progress(KindFade); math.Abs(p-0.5) > 1e-9 {
		t.Errorf("fade progress with default duration = %v, want 0.5", p)
	}
	if p, _ := tl.Progress(KindReverseSpiral); math.Abs(p-100.0/1800.0) > 1e-9 {
		t.Errorf("spiral progress with default duration = %v", p)
	}
}

func TestTimelineDuplicateKindKeepsFirst(t *testing.T) {
	tl := NewTimeline([]Spec{
		{Kind: KindFade, Duration: 100 * time.Millisecond, Easing: Linear},
		{Kind: KindFade, Duration: time.Hour, Easing: Linear},
	})
	tl.Advance(50 * time.Millisecond)
	if p, _ := tl.Progress(KindFade); math.Abs(p-0.5) > 1e-9 {
		t.Errorf("progress = %v, want first spec's duration to win", p)
	}
}

func TestCubicBezierEndpoints(t *testing.T) {
	curve := CubicBezier(0.42, 0, 0.58, 1)
	if got := curve(0); got != 0 {
		t.Errorf("curve(0) = %v, want 0", got)
	}
	if got := curve(1); got != 1 {
		t.Errorf("curve(1) = %v, want 1", got)
	}
	mid := curve(0.5)
	if math.Abs(mid-0.5) > 0.01 {
		t.Errorf("symmetric curve midpoint = %v, want ~0.5", mid)
	}
}

func TestCubicBezierMonotonic(t *testing.T) {
	curve := CubicBezier(0.25, 0.1, 0.25, 1)
	prev := -1.0
	for i := 0; i <= 100; i++ {
		v := curve(float64(i) / 100)
		if v < prev-1e-6 {
			t.Fatalf("curve not monotonic at t=%v: %v < %v", float64(i)/100, v, prev)
		}
		prev = v
	}
}
