package config

import (
	"testing"

	"github.com/edgelit/edgelit/pkg/render"
)

func compileTestRules(t *testing.T, data string) *Ruleset {
	t.Helper()
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return Compile(cfg, testLogger())
}

func TestRuleFirstMatchWins(t *testing.T) {
	rs := compileTestRules(t, `
global:
  border_width: 2
window_rules:
  - match: title
    strategy: contains
    value: Terminal
    border_width: 6
  - match: title
    strategy: contains
    value: Term
    border_width: 9
`)
	d := rs.Match(WindowInfo{Title: "My Terminal"})
	if !d.Enabled {
		t.Fatal("window should be enabled")
	}
	// Both rules match; only the first applies.
	if d.Config.Style.Width != 6 {
		t.Errorf("width = %v, want 6 from first matching rule", d.Config.Style.Width)
	}
}

func TestRuleDisabledBeatsLaterEnable(t *testing.T) {
	rs := compileTestRules(t, `
window_rules:
  - match: class
    value: Steam
    enabled: false
  - match: class
    strategy: contains
    value: Ste
    border_width: 10
`)
	d := rs.Match(WindowInfo{Class: "Steam"})
	if d.Enabled {
		t.Error("first matching rule disables the window")
	}
}

func TestRuleStrategies(t *testing.T) {
	rs := compileTestRules(t, `
window_rules:
  - match: process
    strategy: equals
    value: firefox
    border_width: 3
  - match: title
    strategy: regex
    value: "^vim - .*$"
    border_width: 4
`)
	tests := []struct {
		info      WindowInfo
		wantWidth float64
	}{
		{WindowInfo{Process: "firefox"}, 3},
		{WindowInfo{Process: "firefox-bin"}, DefaultBorderWidth},
		{WindowInfo{Title: "vim - main.go"}, 4},
		{WindowInfo{Title: "nvim - main.go"}, DefaultBorderWidth},
		{WindowInfo{}, DefaultBorderWidth},
	}
	for _, tt := range tests {
		d := rs.Match(tt.info)
		if !d.Enabled {
			t.Errorf("Match(%+v): unexpectedly disabled", tt.info)
			continue
		}
		if d.Config.Style.Width != tt.wantWidth {
			t.Errorf("Match(%+v): width = %v, want %v", tt.info, d.Config.Style.Width, tt.wantWidth)
		}
	}
}

func TestRuleInvalidRegexSkipped(t *testing.T) {
	rs := compileTestRules(t, `
window_rules:
  - match: title
    strategy: regex
    value: "["
    enabled: false
  - match: title
    strategy: contains
    value: ok
    border_width: 7
`)
	// The broken rule must not shadow the valid one below it.
	d := rs.Match(WindowInfo{Title: "ok then"})
	if !d.Enabled || d.Config.Style.Width != 7 {
		t.Errorf("decision = %+v", d)
	}
}

func TestRuleOverridesLayerOverGlobal(t *testing.T) {
	rs := compileTestRules(t, `
global:
  border_width: 2
  active_color: "#ff0000"
  inactive_color: "#00ff00"
window_rules:
  - match: class
    value: mpv
    active_color: "#0000ff"
`)
	d := rs.Match(WindowInfo{Class: "mpv"})
	if d.Config.Active.Brush.Color != render.RGB(0, 0, 255) {
		t.Errorf("active = %#x, want override", uint32(d.Config.Active.Brush.Color))
	}
	// Untouched fields keep global values.
	if d.Config.Inactive.Brush.Color != render.RGB(0, 255, 0) {
		t.Errorf("inactive = %#x, want global", uint32(d.Config.Inactive.Brush.Color))
	}
	if d.Config.Style.Width != 2 {
		t.Errorf("width = %v, want global 2", d.Config.Style.Width)
	}
}

func TestNoMatchUsesGlobal(t *testing.T) {
	rs := compileTestRules(t, `
global:
  border_width: 5
window_rules:
  - match: class
    value: kitty
    border_width: 1
`)
	d := rs.Match(WindowInfo{Class: "alacritty", Title: "shell"})
	if !d.Enabled || d.Config.Style.Width != 5 {
		t.Errorf("decision = %+v", d)
	}
}
