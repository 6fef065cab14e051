package render

import (
	"testing"

	"github.com/edgelit/edgelit/pkg/geometry"
)

func testFrame(sweep Sweep) Frame {
	rect := geometry.RectFromLTWH(20, 20, 100, 80)
	style := geometry.Style{Width: 4, Corner: geometry.CornerSquare}
	bp := geometry.Resolve(rect, style, geometry.HintUnknown)
	return Frame{
		Bounds:     rect.Inflate(10),
		WindowRect: rect,
		Path:       bp,
		Layers:     []Layer{{Brush: SolidBrush(RGB(255, 0, 0)), Alpha: 1}},
		Sweep:      sweep,
	}
}

func coverage(pix []uint8) int {
	n := 0
	for i := 3; i < len(pix); i += 4 {
		if pix[i] > 0 {
			n++
		}
	}
	return n
}

func TestPaintSolidBorder(t *testing.T) {
	p := NewPainter()
	img := p.Paint(testFrame(FullSweep))

	if got := coverage(img.Pix); got == 0 {
		t.Fatal("expected painted pixels for a solid border")
	}
	// Band interior stays transparent: sample the window center.
	cx := img.Rect.Dx() / 2
	cy := img.Rect.Dy() / 2
	if a := img.Pix[img.PixOffset(cx, cy)+3]; a != 0 {
		t.Errorf("window interior should be transparent, alpha = %d", a)
	}
}

func TestPaintEmptyFrame(t *testing.T) {
	p := NewPainter()
	img := p.Paint(Frame{})
	if got := coverage(img.Pix); got != 0 {
		t.Errorf("empty frame painted %d pixels", got)
	}
}

func TestPaintSweepReducesCoverage(t *testing.T) {
	p := NewPainter()
	full := coverage(p.Paint(testFrame(FullSweep)).Pix)
	half := coverage(p.Paint(testFrame(Sweep{Fraction: 0.5})).Pix)
	none := coverage(p.Paint(testFrame(Sweep{Fraction: 0})).Pix)

	if half >= full {
		t.Errorf("half sweep coverage %d should be below full %d", half, full)
	}
	if none != 0 {
		t.Errorf("zero sweep painted %d pixels", none)
	}
	// A half sweep covers roughly half the band.
	if half < full/3 || half > full*2/3 {
		t.Errorf("half sweep coverage %d out of range for full %d", half, full)
	}
}

func TestPaintSweepDirection(t *testing.T) {
	p := NewPainter()
	forward := p.Paint(testFrame(Sweep{Fraction: 0.25}))
	reverse := p.Paint(testFrame(Sweep{Fraction: 0.25, Reverse: true}))

	w := forward.Rect.Dx()
	h := forward.Rect.Dy()
	leftFwd, rightFwd := sideCoverage(forward.Pix, forward.Stride, w, h)
	leftRev, rightRev := sideCoverage(reverse.Pix, reverse.Stride, w, h)

	// A clockwise quarter sweep from the top paints the right side;
	// reversed, the left side.
	if rightFwd <= leftFwd {
		t.Errorf("forward sweep: right %d should exceed left %d", rightFwd, leftFwd)
	}
	if leftRev <= rightRev {
		t.Errorf("reverse sweep: left %d should exceed right %d", leftRev, rightRev)
	}
}

func sideCoverage(pix []uint8, stride, w, h int) (left, right int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if pix[y*stride+x*4+3] == 0 {
				continue
			}
			if x < w/2 {
				left++
			} else {
				right++
			}
		}
	}
	return left, right
}

func TestPaintFadeLayersBlend(t *testing.T) {
	frame := testFrame(FullSweep)
	frame.Layers = []Layer{
		{Brush: SolidBrush(RGB(255, 0, 0)), Alpha: 0.5},
		{Brush: SolidBrush(RGB(0, 0, 255)), Alpha: 0.5},
	}
	p := NewPainter()
	img := p.Paint(frame)

	// Find a band pixel and check both channels contributed.
	found := false
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+3] > 200 {
			if img.Pix[i] == 0 || img.Pix[i+2] == 0 {
				t.Fatalf("band pixel missing a blend component: rgba=%v", img.Pix[i:i+4])
			}
			found = true
			break
		}
	}
	if !found {
		t.Fatal("no strongly covered band pixel found")
	}
}

func TestPaintGlowExtendsPastBand(t *testing.T) {
	frame := testFrame(FullSweep)
	noGlow := NewPainter().Paint(frame)
	frame.Effects = []Effect{{Kind: EffectGlow, Radius: 6, Opacity: 0.8}}
	withGlow := NewPainter().Paint(frame)

	if coverage(withGlow.Pix) <= coverage(noGlow.Pix) {
		t.Error("glow should increase painted coverage")
	}
}
