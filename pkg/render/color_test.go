package render

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ff0000", RGB(255, 0, 0), false},
		{"#00ff00", RGB(0, 255, 0), false},
		{"#89b4fa", RGB(0x89, 0xb4, 0xfa), false},
		{"#ffffff80", RGBA(255, 255, 255, 0x80), false},
		{"  #000000  ", ColorBlack, false},
		{"ff0000", 0, true},
		{"#zzz", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %#x, want %#x", tt.in, uint32(got), uint32(tt.want))
		}
	}
}

func TestLerpColorEndpoints(t *testing.T) {
	a := RGBA(255, 0, 0, 255)
	b := RGBA(0, 0, 255, 0)
	if got := LerpColor(a, b, 0); got != a {
		t.Errorf("t=0: got %#x, want %#x", uint32(got), uint32(a))
	}
	if got := LerpColor(a, b, 1); got != b {
		t.Errorf("t=1: got %#x, want %#x", uint32(got), uint32(b))
	}
	mid := LerpColor(a, b, 0.5)
	if mid.Alpha() < 126 || mid.Alpha() > 129 {
		t.Errorf("midpoint alpha = %d, want ~127", mid.Alpha())
	}
}

func TestScaleAlpha(t *testing.T) {
	c := RGBA(10, 20, 30, 200)
	if got := c.ScaleAlpha(0); got.Alpha() != 0 {
		t.Errorf("scale 0: alpha = %d", got.Alpha())
	}
	if got := c.ScaleAlpha(1); got != c {
		t.Errorf("scale 1 should be identity")
	}
	if got := c.ScaleAlpha(0.5); got.Alpha() != 100 {
		t.Errorf("scale 0.5: alpha = %d, want 100", got.Alpha())
	}
	if got := c.ScaleAlpha(0.5); got&0x00FFFFFF != c&0x00FFFFFF {
		t.Errorf("scale must not touch rgb channels")
	}
}
