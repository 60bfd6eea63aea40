package easel

import (
	"image"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// gradientTexSize is the pixel resolution of the rasterized gradient
// texture. The texture is sampled with bilinear filtering through the
// vertex source coordinates, so a moderate size is enough.
const gradientTexSize = 256

// GradientStop is one color position along a gradient.
type GradientStop struct {
	Offset float64 // 0 at the center, 1 at the radius
	Color  Color
}

// RadialGradient is a circular color ramp usable as a fill pattern.
// Stops are interpolated linearly; offsets outside the stop range clamp
// to the nearest stop. The gradient is rasterized once on first use and
// cached; adding a stop invalidates the cache.
type RadialGradient struct {
	// CX, CY, R place the outer circle in world coordinates.
	CX, CY, R float64

	// FX, FY, FR place the inner (focal) circle. The ramp runs from the
	// inner circle at offset 0 to the outer circle at offset 1, the
	// two-circle form of canvas createRadialGradient. NewRadialGradient
	// sets the inner circle to the center with zero radius.
	FX, FY, FR float64

	stops []GradientStop
	img   *ebiten.Image
}

// NewRadialGradient creates a radial gradient centered at (cx, cy) with
// the given radius in world units.
func NewRadialGradient(cx, cy, r float64) *RadialGradient {
	return &RadialGradient{CX: cx, CY: cy, R: r, FX: cx, FY: cy}
}

// NewFocalRadialGradient creates a two-circle gradient running from the
// inner circle (fx, fy, fr) to the outer circle (cx, cy, r), matching
// canvas createRadialGradient(x0, y0, r0, x1, y1, r1).
func NewFocalRadialGradient(fx, fy, fr, cx, cy, r float64) *RadialGradient {
	return &RadialGradient{CX: cx, CY: cy, R: r, FX: fx, FY: fy, FR: fr}
}

// AddColorStop adds a color at the given offset in [0, 1].
func (g *RadialGradient) AddColorStop(offset float64, c Color) {
	g.stops = append(g.stops, GradientStop{Offset: offset, Color: c})
	sort.SliceStable(g.stops, func(i, j int) bool {
		return g.stops[i].Offset < g.stops[j].Offset
	})
	g.img = nil
}

// ColorAt returns the interpolated color at offset t.
func (g *RadialGradient) ColorAt(t float64) Color {
	if len(g.stops) == 0 {
		return Color{}
	}
	if t <= g.stops[0].Offset {
		return g.stops[0].Color
	}
	last := g.stops[len(g.stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.stops); i++ {
		s0, s1 := g.stops[i-1], g.stops[i]
		if t > s1.Offset {
			continue
		}
		span := s1.Offset - s0.Offset
		if span <= 0 {
			return s1.Color
		}
		f := (t - s0.Offset) / span
		return Color{
			R: s0.Color.R + (s1.Color.R-s0.Color.R)*f,
			G: s0.Color.G + (s1.Color.G-s0.Color.G)*f,
			B: s0.Color.B + (s1.Color.B-s0.Color.B)*f,
			A: s0.Color.A + (s1.Color.A-s0.Color.A)*f,
		}
	}
	return last.Color
}

// focal reports whether the inner circle differs from a point at the
// center, which requires the two-circle parameterization.
func (g *RadialGradient) focal() bool {
	return g.FX != g.CX || g.FY != g.CY || g.FR != 0
}

// focalT returns the gradient offset at world point (wx, wy): the
// largest t at which the circle interpolated from the inner to the
// outer circle passes through the point.
func (g *RadialGradient) focalT(wx, wy float64) float64 {
	dx := g.CX - g.FX
	dy := g.CY - g.FY
	dr := g.R - g.FR
	px := wx - g.FX
	py := wy - g.FY

	a := dx*dx + dy*dy - dr*dr
	b := px*dx + py*dy + g.FR*dr
	cq := px*px + py*py - g.FR*g.FR

	if math.Abs(a) < 1e-12 {
		if b == 0 {
			return 0
		}
		return cq / (2 * b)
	}
	disc := b*b - a*cq
	if disc < 0 {
		return 1
	}
	sq := math.Sqrt(disc)
	t1 := (b + sq) / a
	t2 := (b - sq) / a
	t := math.Max(t1, t2)
	// The interpolated radius must stay non-negative.
	if g.FR+t*dr < 0 {
		t = math.Min(t1, t2)
	}
	return t
}

// image returns the rasterized gradient texture, building it on first use.
func (g *RadialGradient) image() *ebiten.Image {
	if g.img != nil {
		return g.img
	}
	raster := image.NewNRGBA(image.Rect(0, 0, gradientTexSize, gradientTexSize))
	half := float64(gradientTexSize) / 2
	useFocal := g.focal() && g.R > 0
	for py := 0; py < gradientTexSize; py++ {
		for px := 0; px < gradientTexSize; px++ {
			dx := (float64(px) + 0.5 - half) / half
			dy := (float64(py) + 0.5 - half) / half
			var t float64
			if useFocal {
				t = g.focalT(g.CX+dx*g.R, g.CY+dy*g.R)
			} else {
				t = math.Sqrt(dx*dx + dy*dy)
			}
			rgba := g.ColorAt(t).toRGBA()
			i := raster.PixOffset(px, py)
			raster.Pix[i] = rgba.R
			raster.Pix[i+1] = rgba.G
			raster.Pix[i+2] = rgba.B
			raster.Pix[i+3] = rgba.A
		}
	}
	g.img = ebiten.NewImageFromImage(raster)
	return g.img
}

// mapVertices writes gradient texture coordinates into the vertices'
// source positions. Vertices are in screen space; inv maps them back to
// world space, which the gradient's placement then maps onto the texture.
func (g *RadialGradient) mapVertices(verts []ebiten.Vertex, inv [6]float64) {
	if g.R <= 0 {
		return
	}
	scale := float64(gradientTexSize) / (2 * g.R)
	for i := range verts {
		wx, wy := transformPoint(inv, float64(verts[i].DstX), float64(verts[i].DstY))
		verts[i].SrcX = float32(clampTex((wx - (g.CX - g.R)) * scale))
		verts[i].SrcY = float32(clampTex((wy - (g.CY - g.R)) * scale))
	}
}

// clampTex keeps a texture coordinate inside the gradient image so
// geometry larger than the gradient pads with the edge color.
func clampTex(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > gradientTexSize-1 {
		return gradientTexSize - 1
	}
	return v
}
