package easel

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MotionPath drives an object's position over time. Advance moves the
// path by dt seconds; Position reports the current location in the
// object's parent coordinate space.
type MotionPath interface {
	Advance(dt float64)
	Position() (x, y float64)
}

// StaticPath pins an object to a fixed position.
type StaticPath struct {
	X, Y float64
}

func (p *StaticPath) Advance(dt float64) {}

func (p *StaticPath) Position() (float64, float64) {
	return p.X, p.Y
}

// OrbitPath circles a center point. The angle advances by AngleRate
// radians per second and the radius by RadiusRate units per second, so
// spirals fall out of a nonzero RadiusRate. Pause freezes the path;
// Reverse flips the direction of travel.
type OrbitPath struct {
	CenterX, CenterY float64
	Radius           float64
	Angle            float64
	AngleRate        float64
	RadiusRate       float64

	paused   bool
	reversed bool
}

func (p *OrbitPath) Advance(dt float64) {
	if p.paused {
		return
	}
	dir := 1.0
	if p.reversed {
		dir = -1.0
	}
	p.Angle += p.AngleRate * dt * dir
	p.Radius += p.RadiusRate * dt * dir
}

func (p *OrbitPath) Position() (float64, float64) {
	return p.CenterX + p.Radius*math.Cos(p.Angle),
		p.CenterY + p.Radius*math.Sin(p.Angle)
}

// Pause freezes the orbit in place.
func (p *OrbitPath) Pause() { p.paused = true }

// Resume continues a paused orbit.
func (p *OrbitPath) Resume() { p.paused = false }

// Paused reports whether the orbit is frozen.
func (p *OrbitPath) Paused() bool { return p.paused }

// Reverse flips the direction of travel.
func (p *OrbitPath) Reverse() { p.reversed = !p.reversed }

// VectorPath moves in a straight line at a constant velocity. When Bounds
// is non-empty and the position leaves it, OnBounce decides what happens:
// returning true lets the default reflection run, false suppresses it.
// A nil OnBounce always reflects.
type VectorPath struct {
	X, Y   float64
	VX, VY float64

	Bounds   Rect
	OnBounce func(p *VectorPath) bool
}

func (p *VectorPath) Advance(dt float64) {
	p.X += p.VX * dt
	p.Y += p.VY * dt

	if p.Bounds.Width <= 0 || p.Bounds.Height <= 0 {
		return
	}
	if p.Bounds.Contains(p.X, p.Y) {
		return
	}
	if p.OnBounce != nil && !p.OnBounce(p) {
		return
	}
	p.reflect()
}

// reflect clamps the position to the bounds and mirrors the velocity
// component that escaped.
func (p *VectorPath) reflect() {
	if p.X < p.Bounds.X {
		p.X = p.Bounds.X
		p.VX = -p.VX
	} else if p.X > p.Bounds.X+p.Bounds.Width {
		p.X = p.Bounds.X + p.Bounds.Width
		p.VX = -p.VX
	}
	if p.Y < p.Bounds.Y {
		p.Y = p.Bounds.Y
		p.VY = -p.VY
	} else if p.Y > p.Bounds.Y+p.Bounds.Height {
		p.Y = p.Bounds.Y + p.Bounds.Height
		p.VY = -p.VY
	}
}

func (p *VectorPath) Position() (float64, float64) {
	return p.X, p.Y
}

// TweenPath eases from one position to another over a fixed duration and
// then holds the destination.
type TweenPath struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	x, y   float64
	doneX  bool
	doneY  bool
}

// NewTweenPath creates a tweened move from (fromX, fromY) to (toX, toY)
// over duration seconds.
func NewTweenPath(fromX, fromY, toX, toY float64, duration float32, easeFn ease.TweenFunc) *TweenPath {
	return &TweenPath{
		tweenX: gween.New(float32(fromX), float32(toX), duration, easeFn),
		tweenY: gween.New(float32(fromY), float32(toY), duration, easeFn),
		x:      fromX,
		y:      fromY,
	}
}

func (p *TweenPath) Advance(dt float64) {
	if !p.doneX {
		val, done := p.tweenX.Update(float32(dt))
		p.x = float64(val)
		p.doneX = done
	}
	if !p.doneY {
		val, done := p.tweenY.Update(float32(dt))
		p.y = float64(val)
		p.doneY = done
	}
}

func (p *TweenPath) Position() (float64, float64) {
	return p.x, p.y
}

// Done reports whether the tween has reached its destination.
func (p *TweenPath) Done() bool {
	return p.doneX && p.doneY
}
