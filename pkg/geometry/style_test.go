package geometry

import (
	"math"
	"testing"
)

func TestResolveCenterlineBounds(t *testing.T) {
	tests := []struct {
		name   string
		rect   Rect
		width  float64
		offset float64
	}{
		{"no offset", RectFromLTWH(0, 0, 400, 300), 4, 0},
		{"outset", RectFromLTWH(10, 20, 640, 480), 2, 6},
		{"inset", RectFromLTWH(0, 0, 200, 150), 3, -5},
		{"tiny window", RectFromLTWH(0, 0, 20, 20), 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := Style{Width: tt.width, Offset: tt.offset, Corner: CornerSquare}
			bp := Resolve(tt.rect, style, HintUnknown)
			if bp.Empty() {
				t.Fatalf("expected non-empty border path")
			}
			want := tt.rect.Inflate(tt.offset)
			if !bp.Center.Rect.Equals(want) {
				t.Errorf("centerline bounds = %+v, want %+v", bp.Center.Rect, want)
			}
		})
	}
}

func TestResolveDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		rect   Rect
		width  float64
		offset float64
	}{
		{"zero size rect", RectFromLTWH(0, 0, 0, 0), 4, 0},
		{"negative size rect", Rect{Left: 10, Top: 10, Right: 5, Bottom: 5}, 4, 0},
		{"offset collapses width", RectFromLTWH(0, 0, 10, 100), 2, -5},
		{"offset collapses height", RectFromLTWH(0, 0, 100, 8), 2, -4},
		{"zero border width", RectFromLTWH(0, 0, 100, 100), 0, 0},
		{"negative border width", RectFromLTWH(0, 0, 100, 100), -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := Style{Width: tt.width, Offset: tt.offset, Corner: CornerRound}
			bp := Resolve(tt.rect, style, HintUnknown)
			if !bp.Empty() {
				t.Errorf("expected empty border path, got %+v", bp)
			}
			if !bp.Outline().IsEmpty() {
				t.Errorf("expected empty outline for degenerate input")
			}
		})
	}
}

func TestResolveRadius(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		hint  CornerHint
		want  float64
	}{
		{"square", Style{Width: 4, Corner: CornerSquare}, HintUnknown, 0},
		{"round", Style{Width: 4, Corner: CornerRound}, HintUnknown, 10},
		{"small round", Style{Width: 4, Corner: CornerSmallRound}, HintUnknown, 6},
		{"custom", Style{Width: 4, Corner: CornerCustom, Radius: 12}, HintUnknown, 12},
		{"custom scaled", Style{Width: 4, Corner: CornerCustom, Radius: 12, Scale: 2}, HintUnknown, 24},
		{"auto no hint falls back to round", Style{Width: 4, Corner: CornerAuto}, HintUnknown, 10},
		{"auto square hint", Style{Width: 4, Corner: CornerAuto}, HintSquare, 0},
		{"auto small hint", Style{Width: 4, Corner: CornerAuto}, HintSmallRound, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.style.ResolveRadius(tt.hint)
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("ResolveRadius() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutlineBounds(t *testing.T) {
	rect := RectFromLTWH(0, 0, 300, 200)
	style := Style{Width: 6, Offset: 2, Corner: CornerRound}
	bp := Resolve(rect, style, HintUnknown)

	outline := bp.Outline()
	if outline.IsEmpty() {
		t.Fatal("expected non-empty outline")
	}
	got := outline.Bounds()
	want := rect.Inflate(2).Inflate(3) // centerline offset plus half the stroke width
	if !got.Equals(want) {
		t.Errorf("outline bounds = %+v, want %+v", got, want)
	}
}

func TestRRectRadiusClamped(t *testing.T) {
	rr := RRectFromRect(RectFromLTWH(0, 0, 20, 10), 50)
	if rr.Radius != 5 {
		t.Errorf("radius = %v, want clamp to 5", rr.Radius)
	}
}
