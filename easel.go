package easel

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default stroke and fill style.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// toRGBA converts to a straight-alpha color.RGBA with 8-bit components.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseColor decodes a CSS-style "rgba(r, g, b, a)" string, where r, g, b are
// in [0, 255] and a is in [0, 1]. "rgb(r, g, b)" is accepted with alpha 1.
func ParseColor(s string) (Color, error) {
	orig := s
	s = strings.TrimSpace(s)
	var wantAlpha bool
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		s = s[len("rgba(") : len(s)-1]
		wantAlpha = true
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		s = s[len("rgb(") : len(s)-1]
	default:
		return Color{}, fmt.Errorf("parse color %q: not an rgb()/rgba() string", orig)
	}

	parts := strings.Split(s, ",")
	want := 3
	if wantAlpha {
		want = 4
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("parse color %q: expected %d components, got %d", orig, want, len(parts))
	}

	var vals [4]float64
	vals[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: component %d: %w", orig, i, err)
		}
		vals[i] = v
	}

	return Color{
		R: clamp01(vals[0] / 255),
		G: clamp01(vals[1] / 255),
		B: clamp01(vals[2] / 255),
		A: clamp01(vals[3]),
	}, nil
}

// FormatColor encodes a Color as an "rgba(r, g, b, a)" string, the inverse
// of ParseColor. RGB components round to integers; alpha keeps its value.
func FormatColor(c Color) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)",
		int(clamp01(c.R)*255+0.5),
		int(clamp01(c.G)*255+0.5),
		int(clamp01(c.B)*255+0.5),
		strconv.FormatFloat(clamp01(c.A), 'f', -1, 64))
}

// Vec2 is a 2D point or offset, as returned by Object.WorldPosition.
type Vec2 struct {
	X, Y float64
}

// WhitePixel is a 1x1 white image used as the source texture for solid fills
// and strokes.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)
