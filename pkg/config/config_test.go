package config

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/edgelit/edgelit/pkg/animation"
	"github.com/edgelit/edgelit/pkg/geometry"
	"github.com/edgelit/edgelit/pkg/render"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestParseFullConfig(t *testing.T) {
	data := []byte(`
global:
  border_width: 3
  border_offset: -1
  border_style: round
  active_color: "#ff0000"
  inactive_color:
    gradient:
      colors: ["#000000", "#ffffff"]
      angle: 45
  initialize_delay: 250
  restore_delay: 150
  animations:
    fps: 120
    active:
      - kind: fade
        duration: 300
        easing: ease-in-out
      - kind: spiral
    inactive:
      - kind: fade
  effects:
    active:
      - kind: glow
        radius: 8
        opacity: 0.6
window_rules:
  - match: class
    value: Steam
    enabled: false
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := cfg.Global.Resolve(testLogger())

	if r.Style.Width != 3 || r.Style.Offset != -1 {
		t.Errorf("style = %+v", r.Style)
	}
	if r.Style.Corner != geometry.CornerRound {
		t.Errorf("corner = %v, want round", r.Style.Corner)
	}
	if r.FPS != 120 {
		t.Errorf("fps = %d, want 120", r.FPS)
	}
	if r.InitializeDelay != 250*time.Millisecond || r.RestoreDelay != 150*time.Millisecond {
		t.Errorf("delays = %v / %v", r.InitializeDelay, r.RestoreDelay)
	}
	if r.Active.Brush.Kind != render.BrushSolid || r.Active.Brush.Color != render.RGB(255, 0, 0) {
		t.Errorf("active brush = %+v", r.Active.Brush)
	}
	if r.Inactive.Brush.Kind != render.BrushGradient || len(r.Inactive.Brush.Stops) != 2 {
		t.Errorf("inactive brush = %+v", r.Inactive.Brush)
	}
	if len(r.Active.Animations) != 2 {
		t.Fatalf("active animations = %d, want 2", len(r.Active.Animations))
	}
	if r.Active.Animations[0].Kind != animation.KindFade || r.Active.Animations[0].Duration != 300*time.Millisecond {
		t.Errorf("fade spec = %+v", r.Active.Animations[0])
	}
	if r.Active.Animations[1].Kind != animation.KindSpiral || r.Active.Animations[1].Duration != 0 {
		t.Errorf("spiral spec = %+v", r.Active.Animations[1])
	}
	if len(r.Active.Effects) != 1 || r.Active.Effects[0].Kind != render.EffectGlow {
		t.Errorf("active effects = %+v", r.Active.Effects)
	}
	if len(cfg.WindowRules) != 1 {
		t.Fatalf("rules = %d", len(cfg.WindowRules))
	}
}

func TestResolveInvalidFieldFallsBack(t *testing.T) {
	data := []byte(`
global:
  border_width: -4
  border_style: wobbly
  active_color: "not-a-color"
  animations:
    fps: 0
    active:
      - kind: shimmer
      - kind: fade
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := cfg.Global.Resolve(testLogger())

	if r.Style.Width != DefaultBorderWidth {
		t.Errorf("width = %v, want default %v", r.Style.Width, DefaultBorderWidth)
	}
	if r.Style.Corner != geometry.CornerAuto {
		t.Errorf("corner = %v, want auto fallback", r.Style.Corner)
	}
	if r.FPS != DefaultFPS {
		t.Errorf("fps = %d, want default %d", r.FPS, DefaultFPS)
	}
	want, _ := render.ParseColor(DefaultActiveColor)
	if r.Active.Brush.Color != want {
		t.Errorf("active color = %#x, want default", uint32(r.Active.Brush.Color))
	}
	// The invalid animation is skipped, the valid one survives.
	if len(r.Active.Animations) != 1 || r.Active.Animations[0].Kind != animation.KindFade {
		t.Errorf("animations = %+v", r.Active.Animations)
	}
}

func TestResolveEmptyConfigUsesDefaults(t *testing.T) {
	r := (&Config{}).Global.Resolve(testLogger())
	if r.Style.Width != DefaultBorderWidth || r.FPS != DefaultFPS {
		t.Errorf("defaults not applied: %+v", r)
	}
	if r.InitializeDelay != 0 || r.RestoreDelay != 0 {
		t.Errorf("delays should default to zero")
	}
	if !r.Active.Brush.IsValid() || !r.Inactive.Brush.IsValid() {
		t.Error("default brushes must be valid")
	}
}

func TestParseEasing(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{"linear", false},
		{"ease", false},
		{"ease-in", false},
		{"EaseInOut", false},
		{"ease_out", false},
		{"cubic-bezier(0.25, 0.1, 0.25, 1)", false},
		{"cubic-bezier(1,2,3)", true},
		{"cubic-bezier(a,b,c,d)", true},
		{"bounce", true},
	}
	for _, tt := range tests {
		curve, err := ParseEasing(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseEasing(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseEasing(%q): %v", tt.in, err)
			continue
		}
		if got := curve(1); got < 0.999 || got > 1.001 {
			t.Errorf("ParseEasing(%q)(1) = %v, want 1", tt.in, got)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir() + "/nope.yaml")
	if err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected default config")
	}
}
