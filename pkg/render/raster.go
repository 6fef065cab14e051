package render

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/edgelit/edgelit/pkg/geometry"
)

// cubicSegments is the flattening resolution for the corner arcs. The
// arcs emitted by the geometry resolver span at most a quarter circle, so
// a fixed subdivision stays well under half a pixel of error at any
// realistic corner radius.
const cubicSegments = 16

// Painter rasterizes frames into RGBA images ready for surface submission.
// The pixel format is alpha-premultiplied, matching ARGB32 visuals.
//
// A Painter is owned by the render loop goroutine; its scratch buffers are
// reused across frames and it is not safe for concurrent use.
type Painter struct {
	mask   *image.Alpha
	effect *image.Alpha
}

// NewPainter creates a painter.
func NewPainter() *Painter {
	return &Painter{}
}

// Paint renders the frame into a premultiplied RGBA image sized to the
// frame bounds. Empty frames yield a fully transparent image.
func (p *Painter) Paint(frame Frame) *image.RGBA {
	w := int(math.Ceil(frame.Bounds.Width()))
	h := int(math.Ceil(frame.Bounds.Height()))
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if frame.Empty() {
		return dst
	}

	mask := p.fillMask(frame, w, h)
	if !frame.Sweep.Full() {
		applySweep(mask, frame, w, h)
	}

	// Effects composite beneath the band so the crisp border edge stays
	// on top of its own glow.
	for _, eff := range frame.Effects {
		p.paintEffect(dst, mask, frame, eff)
	}
	for _, layer := range frame.Layers {
		if layer.Alpha <= 0 || !layer.Brush.IsValid() {
			continue
		}
		compositeLayer(dst, mask, frame, layer)
	}
	return dst
}

// fillMask rasterizes the border band outline into a coverage mask in
// surface-local coordinates.
func (p *Painter) fillMask(frame Frame, w, h int) *image.Alpha {
	if p.mask == nil || p.mask.Rect.Dx() != w || p.mask.Rect.Dy() != h {
		p.mask = image.NewAlpha(image.Rect(0, 0, w, h))
	} else {
		clearAlpha(p.mask)
	}

	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	ox, oy := frame.Bounds.Left, frame.Bounds.Top

	var curX, curY float64
	for _, cmd := range frame.Path.Outline().Commands {
		switch cmd.Op {
		case geometry.PathOpMoveTo:
			curX, curY = cmd.Args[0]-ox, cmd.Args[1]-oy
			z.MoveTo(float32(curX), float32(curY))
		case geometry.PathOpLineTo:
			curX, curY = cmd.Args[0]-ox, cmd.Args[1]-oy
			z.LineTo(float32(curX), float32(curY))
		case geometry.PathOpCubicTo:
			x1, y1 := cmd.Args[0]-ox, cmd.Args[1]-oy
			x2, y2 := cmd.Args[2]-ox, cmd.Args[3]-oy
			x3, y3 := cmd.Args[4]-ox, cmd.Args[5]-oy
			// Flatten; the vector rasterizer's own CubeTo exists but
			// subdividing here keeps one code path with the sweep logic.
			for i := 1; i <= cubicSegments; i++ {
				t := float64(i) / cubicSegments
				x, y := cubicPoint(curX, curY, x1, y1, x2, y2, x3, y3, t)
				z.LineTo(float32(x), float32(y))
			}
			curX, curY = x3, y3
		case geometry.PathOpClose:
			z.ClosePath()
		}
	}
	z.Draw(p.mask, p.mask.Bounds(), image.Opaque, image.Point{})
	return p.mask
}

func cubicPoint(x0, y0, x1, y1, x2, y2, x3, y3, t float64) (float64, float64) {
	inv := 1 - t
	a := inv * inv * inv
	b := 3 * inv * inv * t
	c := 3 * inv * t * t
	d := t * t * t
	return a*x0 + b*x1 + c*x2 + d*x3, a*y0 + b*y1 + c*y2 + d*y3
}

// applySweep zeroes mask pixels outside the angular sub-arc. Angles are
// measured clockwise from the top center of the window rect.
func applySweep(mask *image.Alpha, frame Frame, w, h int) {
	if frame.Sweep.Fraction <= 0 {
		clearAlpha(mask)
		return
	}
	center := frame.WindowRect.Center()
	cx := center.X - frame.Bounds.Left
	cy := center.Y - frame.Bounds.Top
	limit := frame.Sweep.Fraction

	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x := 0; x < w; x++ {
			if row[x] == 0 {
				continue
			}
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			// 0 at top center, increasing clockwise.
			turn := math.Atan2(dx, -dy) / (2 * math.Pi)
			if turn < 0 {
				turn += 1
			}
			if frame.Sweep.Reverse {
				turn = 1 - turn
			}
			if turn > limit {
				row[x] = 0
			}
		}
	}
}

// compositeLayer colorizes the coverage mask with the layer brush and
// composites it over dst.
func compositeLayer(dst *image.RGBA, mask *image.Alpha, frame Frame, layer Layer) {
	w := dst.Rect.Dx()
	h := dst.Rect.Dy()
	solid := layer.Brush.Kind == BrushSolid
	var grad AnchoredGradient
	var gdx, gdy, glen2 float64
	if !solid {
		local := frame.WindowRect.Translate(-frame.Bounds.Left, -frame.Bounds.Top)
		grad = layer.Brush.AnchorTo(local)
		gdx = grad.End.X - grad.Start.X
		gdy = grad.End.Y - grad.Start.Y
		glen2 = gdx*gdx + gdy*gdy
	}

	for y := 0; y < h; y++ {
		mrow := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x := 0; x < w; x++ {
			cov := mrow[x]
			if cov == 0 {
				continue
			}
			c := layer.Brush.Color
			if !solid {
				t := 0.0
				if glen2 > 0 {
					px := float64(x) + 0.5 - grad.Start.X
					py := float64(y) + 0.5 - grad.Start.Y
					t = (px*gdx + py*gdy) / glen2
				}
				c = layer.Brush.At(t)
			}
			a := float64(cov) / maxByte * float64(c.Alpha()) / maxByte * layer.Alpha
			if a <= 0 {
				continue
			}
			blendPixel(dst, x, y, c, a)
		}
	}
}

// paintEffect blurs the coverage mask and composites the tinted result
// beneath whatever is already in dst.
func (p *Painter) paintEffect(dst *image.RGBA, mask *image.Alpha, frame Frame, eff Effect) {
	if eff.Opacity <= 0 || eff.Radius <= 0 {
		return
	}
	w := dst.Rect.Dx()
	h := dst.Rect.Dy()
	if p.effect == nil || p.effect.Rect.Dx() != w || p.effect.Rect.Dy() != h {
		p.effect = image.NewAlpha(image.Rect(0, 0, w, h))
	}
	copyAlpha(p.effect, mask)
	if eff.Translation != (geometry.Offset{}) {
		translateAlpha(p.effect, int(math.Round(eff.Translation.X)), int(math.Round(eff.Translation.Y)))
	}
	boxBlurAlpha(p.effect, int(math.Round(eff.Radius)))

	tint := eff.Tint(primaryBrush(frame))
	for y := 0; y < h; y++ {
		row := p.effect.Pix[y*p.effect.Stride : y*p.effect.Stride+w]
		for x := 0; x < w; x++ {
			cov := row[x]
			if cov == 0 {
				continue
			}
			a := float64(cov) / maxByte * float64(tint.Alpha()) / maxByte * eff.Opacity
			if a <= 0 {
				continue
			}
			blendPixel(dst, x, y, tint, a)
		}
	}
}

func primaryBrush(frame Frame) Brush {
	for i := len(frame.Layers) - 1; i >= 0; i-- {
		if frame.Layers[i].Alpha > 0 {
			return frame.Layers[i].Brush
		}
	}
	return SolidBrush(ColorTransparent)
}

// blendPixel composites a color with effective alpha a over the
// premultiplied destination pixel.
func blendPixel(dst *image.RGBA, x, y int, c Color, a float64) {
	r, g, b, _ := c.RGBAF()
	i := dst.PixOffset(x, y)
	pix := dst.Pix[i : i+4 : i+4]
	inv := 1 - a
	pix[0] = uint8(math.Min(r*a*maxByte+float64(pix[0])*inv, maxByte))
	pix[1] = uint8(math.Min(g*a*maxByte+float64(pix[1])*inv, maxByte))
	pix[2] = uint8(math.Min(b*a*maxByte+float64(pix[2])*inv, maxByte))
	pix[3] = uint8(math.Min(a*maxByte+float64(pix[3])*inv, maxByte))
}

func clearAlpha(img *image.Alpha) {
	for i := range img.Pix {
		img.Pix[i] = 0
	}
}

func copyAlpha(dst, src *image.Alpha) {
	copy(dst.Pix, src.Pix)
}

func translateAlpha(img *image.Alpha, dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	out := make([]uint8, len(img.Pix))
	for y := 0; y < h; y++ {
		sy := y - dy
		if sy < 0 || sy >= h {
			continue
		}
		for x := 0; x < w; x++ {
			sx := x - dx
			if sx < 0 || sx >= w {
				continue
			}
			out[y*img.Stride+x] = img.Pix[sy*img.Stride+sx]
		}
	}
	copy(img.Pix, out)
}

// boxBlurAlpha approximates a gaussian blur with three separable box
// blur passes.
func boxBlurAlpha(img *image.Alpha, radius int) {
	if radius <= 0 {
		return
	}
	// Split the radius across passes so the effective spread matches the
	// requested radius rather than triple it.
	r := radius / 3
	if r < 1 {
		r = 1
	}
	for pass := 0; pass < 3; pass++ {
		boxBlurPass(img, r, true)
		boxBlurPass(img, r, false)
	}
}

func boxBlurPass(img *image.Alpha, radius int, horizontal bool) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	window := 2*radius + 1
	tmp := make([]uint8, len(img.Pix))

	outer, inner := h, w
	if !horizontal {
		outer, inner = w, h
	}
	at := func(o, i int) int {
		if horizontal {
			return o*img.Stride + i
		}
		return i*img.Stride + o
	}
	for o := 0; o < outer; o++ {
		sum := 0
		for i := -radius; i <= radius; i++ {
			idx := i
			if idx < 0 {
				idx = 0
			}
			if idx >= inner {
				idx = inner - 1
			}
			sum += int(img.Pix[at(o, idx)])
		}
		for i := 0; i < inner; i++ {
			tmp[at(o, i)] = uint8(sum / window)
			lead := i + radius + 1
			if lead >= inner {
				lead = inner - 1
			}
			trail := i - radius
			if trail < 0 {
				trail = 0
			}
			sum += int(img.Pix[at(o, lead)]) - int(img.Pix[at(o, trail)])
		}
	}
	copy(img.Pix, tmp)
}
