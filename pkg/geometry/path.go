package geometry

import "math"

// arcKappa is the cubic bezier control distance approximating a quarter circle.
const arcKappa = 0.5522847498307936

// PathOp represents a path drawing operation type.
type PathOp int

const (
	PathOpMoveTo  PathOp = iota // Start new subpath at point (x, y)
	PathOpLineTo                // Draw line to point (x, y)
	PathOpCubicTo               // Draw cubic curve to (x3, y3) via controls (x1, y1), (x2, y2)
	PathOpClose                 // Close subpath with line to start point
)

// PathCommand represents a single path operation with its coordinate arguments.
type PathCommand struct {
	Op   PathOp    // The operation type
	Args []float64 // Coordinates: MoveTo/LineTo=[x,y], CubicTo=[x1,y1,x2,y2,x3,y3]
}

// Path represents a vector outline built from move/line/cubic commands.
//
// Paths produced by the geometry resolver describe border edges and are
// consumed by the rasterizer, which flattens cubics before filling.
type Path struct {
	Commands []PathCommand
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpMoveTo, Args: []float64{x, y}})
}

// LineTo adds a line segment from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpLineTo, Args: []float64{x, y}})
}

// CubicTo adds a cubic bezier curve from the current point to (x3, y3)
// with control points (x1, y1) and (x2, y2).
func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpCubicTo, Args: []float64{x1, y1, x2, y2, x3, y3}})
}

// Close closes the current subpath by drawing a line to the starting point.
func (p *Path) Close() {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpClose})
}

// IsEmpty returns true if the path has no commands.
func (p *Path) IsEmpty() bool {
	return len(p.Commands) == 0
}

// AddRRect appends the outline of a rounded rectangle as a closed subpath.
// When clockwise is false, the outline is emitted in reverse winding order,
// which lets a nonzero-fill rasterizer cut the shape out of an enclosing one.
func (p *Path) AddRRect(rr RRect, clockwise bool) {
	if rr.IsEmpty() {
		return
	}
	r := rr.Rect
	rad := rr.Radius
	if rad <= epsilon {
		if clockwise {
			p.MoveTo(r.Left, r.Top)
			p.LineTo(r.Right, r.Top)
			p.LineTo(r.Right, r.Bottom)
			p.LineTo(r.Left, r.Bottom)
		} else {
			p.MoveTo(r.Left, r.Top)
			p.LineTo(r.Left, r.Bottom)
			p.LineTo(r.Right, r.Bottom)
			p.LineTo(r.Right, r.Top)
		}
		p.Close()
		return
	}

	k := rad * arcKappa
	if clockwise {
		p.MoveTo(r.Left+rad, r.Top)
		p.LineTo(r.Right-rad, r.Top)
		p.CubicTo(r.Right-rad+k, r.Top, r.Right, r.Top+rad-k, r.Right, r.Top+rad)
		p.LineTo(r.Right, r.Bottom-rad)
		p.CubicTo(r.Right, r.Bottom-rad+k, r.Right-rad+k, r.Bottom, r.Right-rad, r.Bottom)
		p.LineTo(r.Left+rad, r.Bottom)
		p.CubicTo(r.Left+rad-k, r.Bottom, r.Left, r.Bottom-rad+k, r.Left, r.Bottom-rad)
		p.LineTo(r.Left, r.Top+rad)
		p.CubicTo(r.Left, r.Top+rad-k, r.Left+rad-k, r.Top, r.Left+rad, r.Top)
	} else {
		p.MoveTo(r.Left+rad, r.Top)
		p.CubicTo(r.Left+rad-k, r.Top, r.Left, r.Top+rad-k, r.Left, r.Top+rad)
		p.LineTo(r.Left, r.Bottom-rad)
		p.CubicTo(r.Left, r.Bottom-rad+k, r.Left+rad-k, r.Bottom, r.Left+rad, r.Bottom)
		p.LineTo(r.Right-rad, r.Bottom)
		p.CubicTo(r.Right-rad+k, r.Bottom, r.Right, r.Bottom-rad+k, r.Right, r.Bottom-rad)
		p.LineTo(r.Right, r.Top+rad)
		p.CubicTo(r.Right, r.Top+rad-k, r.Right-rad+k, r.Top, r.Right-rad, r.Top)
	}
	p.Close()
}

// Bounds returns the bounding box of the path's anchor points. Control
// points of the cubic arcs emitted by AddRRect never extend past their
// anchors, so this is exact for resolver output.
func (p *Path) Bounds() Rect {
	first := true
	var b Rect
	grow := func(x, y float64) {
		if first {
			b = Rect{Left: x, Top: y, Right: x, Bottom: y}
			first = false
			return
		}
		b.Left = math.Min(b.Left, x)
		b.Top = math.Min(b.Top, y)
		b.Right = math.Max(b.Right, x)
		b.Bottom = math.Max(b.Bottom, y)
	}
	for _, cmd := range p.Commands {
		switch cmd.Op {
		case PathOpMoveTo, PathOpLineTo:
			grow(cmd.Args[0], cmd.Args[1])
		case PathOpCubicTo:
			grow(cmd.Args[4], cmd.Args[5])
		}
	}
	return b
}
