package easel

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// kappa is the control-point distance that makes a cubic Bezier
// approximate a quarter circle.
const kappa = 0.5522847498307936

// defaultFace renders text commands. A fixed 13px bitmap face scaled to
// the requested font size.
var defaultFace = text.NewGoXFace(basicfont.Face7x13)

const defaultFaceHeight = 13.0

// --- Path construction (world coordinates) ---

// ellipsePath appends an elliptical arc to p. A sweep of a full turn or
// more produces a closed ellipse from four cubic segments; shorter sweeps
// are split into segments of at most a quarter turn.
func ellipsePath(p *vector.Path, x, y, rx, ry, rotation, startAngle, endAngle float64, ccw bool) {
	sweep := endAngle - startAngle
	if ccw {
		if sweep > 0 {
			sweep -= 2 * math.Pi
		}
	} else {
		if sweep < 0 {
			sweep += 2 * math.Pi
		}
	}
	if math.Abs(sweep) >= 2*math.Pi {
		closedEllipsePath(p, x, y, rx, ry, rotation)
		return
	}

	segments := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if segments < 1 {
		segments = 1
	}
	step := sweep / float64(segments)

	sx, sy := ellipsePoint(x, y, rx, ry, rotation, startAngle)
	p.MoveTo(float32(sx), float32(sy))
	for i := 0; i < segments; i++ {
		a1 := startAngle + float64(i)*step
		a2 := a1 + step
		arcSegment(p, x, y, rx, ry, rotation, a1, a2)
	}
}

// closedEllipsePath appends a full ellipse as four quarter-turn cubics.
func closedEllipsePath(p *vector.Path, x, y, rx, ry, rotation float64) {
	sx, sy := ellipsePoint(x, y, rx, ry, rotation, 0)
	p.MoveTo(float32(sx), float32(sy))
	for i := 0; i < 4; i++ {
		a1 := float64(i) * math.Pi / 2
		arcSegment(p, x, y, rx, ry, rotation, a1, a1+math.Pi/2)
	}
	p.Close()
}

// arcSegment appends one cubic approximating the elliptical arc from a1 to
// a2, where |a2-a1| is at most a quarter turn. The current point must be
// the arc's start point.
func arcSegment(p *vector.Path, cx, cy, rx, ry, rotation, a1, a2 float64) {
	da := a2 - a1
	t := math.Tan(da / 2)
	alpha := math.Sin(da) * (math.Sqrt(4+3*t*t) - 1) / 3

	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)

	// Control points in the unit-circle parameter space, then mapped
	// through scale, rotation, and translation.
	x1, y1 := cos1-alpha*sin1, sin1+alpha*cos1
	x2, y2 := cos2+alpha*sin2, sin2-alpha*cos2

	c1x, c1y := mapEllipse(cx, cy, rx, ry, rotation, x1, y1)
	c2x, c2y := mapEllipse(cx, cy, rx, ry, rotation, x2, y2)
	ex, ey := mapEllipse(cx, cy, rx, ry, rotation, cos2, sin2)

	p.CubicTo(float32(c1x), float32(c1y), float32(c2x), float32(c2y), float32(ex), float32(ey))
}

// ellipsePoint returns the point on the ellipse at parameter angle a.
func ellipsePoint(cx, cy, rx, ry, rotation, a float64) (float64, float64) {
	return mapEllipse(cx, cy, rx, ry, rotation, math.Cos(a), math.Sin(a))
}

// mapEllipse maps a unit-circle point through the ellipse's scale,
// rotation, and center.
func mapEllipse(cx, cy, rx, ry, rotation, ux, uy float64) (float64, float64) {
	x := ux * rx
	y := uy * ry
	if rotation != 0 {
		cos, sin := math.Cos(rotation), math.Sin(rotation)
		x, y = x*cos-y*sin, x*sin+y*cos
	}
	return cx + x, cy + y
}

// roundRectPath appends a rectangle with per-corner radii ordered
// top-left, top-right, bottom-right, bottom-left. Radii are clamped to
// half the rectangle's smaller dimension.
func roundRectPath(p *vector.Path, x, y, w, h float64, radii [4]float64) {
	maxR := math.Min(w, h) / 2
	var r [4]float64
	for i, v := range radii {
		r[i] = math.Min(math.Max(v, 0), maxR)
	}

	p.MoveTo(float32(x+r[0]), float32(y))
	p.LineTo(float32(x+w-r[1]), float32(y))
	cornerCubic(p, x+w-r[1], y+r[1], r[1], -math.Pi/2, 0)
	p.LineTo(float32(x+w), float32(y+h-r[2]))
	cornerCubic(p, x+w-r[2], y+h-r[2], r[2], 0, math.Pi/2)
	p.LineTo(float32(x+r[3]), float32(y+h))
	cornerCubic(p, x+r[3], y+h-r[3], r[3], math.Pi/2, math.Pi)
	p.LineTo(float32(x), float32(y+r[0]))
	cornerCubic(p, x+r[0], y+r[0], r[0], math.Pi, 3*math.Pi/2)
	p.Close()
}

// cornerCubic appends a quarter-circle corner of radius r about (cx, cy).
// Zero-radius corners degenerate to the corner point itself.
func cornerCubic(p *vector.Path, cx, cy, r, a1, a2 float64) {
	if r <= 0 {
		return
	}
	arcSegment(p, cx, cy, r, r, 0, a1, a2)
}

// --- Rasterization through the view transform ---

// transformVertices applies the view matrix to vertex positions. Paths are
// built in world coordinates; this maps them to the screen, which also
// scales stroke geometry the way a transformed context would.
func transformVertices(verts []ebiten.Vertex, m [6]float64) {
	for i := range verts {
		x, y := transformPoint(m, float64(verts[i].DstX), float64(verts[i].DstY))
		verts[i].DstX = float32(x)
		verts[i].DstY = float32(y)
	}
}

// setVertexColors writes a straight-alpha color to every vertex.
func setVertexColors(verts []ebiten.Vertex, c Color) {
	r := float32(c.R)
	g := float32(c.G)
	b := float32(c.B)
	a := float32(c.A)
	for i := range verts {
		verts[i].ColorR = r
		verts[i].ColorG = g
		verts[i].ColorB = b
		verts[i].ColorA = a
	}
}

// fillPath fills a world-space path with the current fill source.
func (c *Canvas) fillPath(p *vector.Path) {
	if c.state.pattern == nil && c.state.fill.A <= 0 {
		return
	}
	verts, indices := p.AppendVerticesAndIndicesForFilling(nil, nil)
	transformVertices(verts, c.view.matrix)

	src := WhitePixel
	if g := c.state.pattern; g != nil {
		src = g.image()
		g.mapVertices(verts, c.view.computeInverse())
		setVertexColors(verts, ColorWhite)
	} else {
		setVertexColors(verts, c.state.fill)
	}

	c.working.DrawTriangles(verts, indices, src, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.FillRuleNonZero,
	})
}

// strokePath strokes a world-space path with the current stroke color.
// The stroke is generated in world units and scaled by the view, so line
// width zooms with the content.
func (c *Canvas) strokePath(p *vector.Path) {
	if c.state.lineWidth <= 0 || c.state.stroke.A <= 0 {
		return
	}
	opts := &vector.StrokeOptions{Width: float32(c.state.lineWidth)}
	verts, indices := p.AppendVerticesAndIndicesForStroke(nil, nil, opts)
	transformVertices(verts, c.view.matrix)
	setVertexColors(verts, c.state.stroke)

	c.working.DrawTriangles(verts, indices, WhitePixel, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

// fillRect fills an axis-aligned world-space rectangle with a flat color,
// bypassing the fill pattern.
func (c *Canvas) fillRect(x, y, w, h float64, col Color) {
	var p vector.Path
	p.MoveTo(float32(x), float32(y))
	p.LineTo(float32(x+w), float32(y))
	p.LineTo(float32(x+w), float32(y+h))
	p.LineTo(float32(x), float32(y+h))
	p.Close()

	verts, indices := p.AppendVerticesAndIndicesForFilling(nil, nil)
	transformVertices(verts, c.view.matrix)
	setVertexColors(verts, col)
	c.working.DrawTriangles(verts, indices, WhitePixel, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

// --- Command executors ---

func (c *Canvas) drawEllipse(cmd *Command) {
	var p vector.Path
	ellipsePath(&p, cmd.X, cmd.Y, cmd.RX, cmd.RY, cmd.Rotation, cmd.StartAngle, cmd.EndAngle, cmd.CCW)
	c.fillPath(&p)
	c.strokePath(&p)
}

func (c *Canvas) drawLine(cmd *Command) {
	var p vector.Path
	p.MoveTo(float32(cmd.X), float32(cmd.Y))
	p.LineTo(float32(cmd.X2), float32(cmd.Y2))
	c.strokePath(&p)
}

func (c *Canvas) drawRoundRect(cmd *Command) {
	var p vector.Path
	roundRectPath(&p, cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Radii)
	c.fillPath(&p)
	c.strokePath(&p)
}

// textAnchorOffset returns the screen-space offset from the text anchor
// point to the top-left of the rendered glyph box. advance is the
// unscaled advance width of the string in face units.
func textAnchorOffset(align TextAlign, baseline TextBaseline, advance, scale float64) (dx, dy float64) {
	switch align {
	case AlignCenter:
		dx = -advance * scale / 2
	case AlignRight:
		dx = -advance * scale
	}
	switch baseline {
	case BaselineTop:
		dy = 0
	case BaselineMiddle:
		dy = -defaultFaceHeight * scale / 2
	case BaselineBottom:
		dy = -defaultFaceHeight * scale
	default:
		dy = -defaultFace.Metrics().HAscent * scale
	}
	return dx, dy
}

func (c *Canvas) drawText(cmd *Command) {
	scale := c.state.fontSize / defaultFaceHeight * c.view.Scale()
	if scale <= 0 {
		return
	}
	sx, sy := c.view.WorldToScreen(cmd.X, cmd.Y)
	dx, dy := textAnchorOffset(c.state.align, c.state.baseline,
		text.Advance(cmd.Text, defaultFace), scale)

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(sx+dx, sy+dy)
	op.ColorScale.ScaleWithColor(c.state.fill.toRGBA())
	text.Draw(c.working, cmd.Text, defaultFace, op)
}

func (c *Canvas) drawImage(cmd *Command) {
	if cmd.Img == nil {
		return
	}
	img, opacity := c.filters.apply(cmd.Img, cmd.Filter)
	bounds := img.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	if iw == 0 || ih == 0 {
		return
	}

	w, h := cmd.W, cmd.H
	if w == 0 {
		w = iw
	}
	if h == 0 {
		h = ih
	}

	s := c.view.Scale()
	sx, sy := c.view.WorldToScreen(cmd.X, cmd.Y)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/iw*s, h/ih*s)
	op.GeoM.Translate(sx, sy)
	op.Filter = ebiten.FilterLinear
	if opacity < 1 {
		op.ColorScale.ScaleAlpha(float32(opacity))
	}
	c.working.DrawImage(img, op)
}
