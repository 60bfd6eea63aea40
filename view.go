package easel

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// glideAnim holds active glide tweens for the view translation.
type glideAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// View owns the affine transform between world coordinates and the screen.
// The matrix carries uniform scale and translation only (no rotation or
// skew), matching what the pan and zoom operations produce. Scale is never
// zero; a degenerate scale fed in through ZoomAt propagates unchecked.
//
// All mutation goes through SetTranslation, PanBy, ZoomAt, Fit, and
// AnimateTo. Callers never replace the matrix wholesale.
type View struct {
	// Viewport is the screen-space rectangle this view renders into.
	Viewport Rect

	matrix    [6]float64
	invMatrix [6]float64
	dirty     bool

	minZoom float64
	maxZoom float64

	glide *glideAnim
}

// NewView creates a View with an identity transform over the given viewport.
func NewView(viewport Rect) *View {
	return &View{
		Viewport: viewport,
		matrix:   identityTransform,
		dirty:    true,
	}
}

// Scale returns the current uniform scale factor.
func (v *View) Scale() float64 {
	return v.matrix[0]
}

// Translation returns the current translation in world units.
func (v *View) Translation() (dx, dy float64) {
	s := v.matrix[0]
	return v.matrix[4] / s, v.matrix[5] / s
}

// Matrix returns a copy of the current affine matrix [a, b, c, d, tx, ty].
func (v *View) Matrix() [6]float64 {
	return v.matrix
}

// SetTranslation repositions the view to an absolute translation of
// (dx, dy) world units, discarding any previous translation. The scale is
// untouched. Calling it twice with the same arguments is a no-op the
// second time.
func (v *View) SetTranslation(dx, dy float64) {
	v.matrix[4] = v.matrix[0] * dx
	v.matrix[5] = v.matrix[3] * dy
	v.dirty = true
}

// PanBy shifts the view by a screen-space delta. The world-space shift is
// the screen delta divided by the current scale, so content tracks the
// pointer exactly regardless of zoom.
func (v *View) PanBy(dx, dy float64) {
	v.matrix[4] += dx
	v.matrix[5] += dy
	v.dirty = true
}

// ZoomAt scales the view by factor about the screen point (sx, sy). The
// world point under (sx, sy) before the zoom is still under (sx, sy) after
// it. When zoom limits are set the factor is clamped so the resulting
// scale stays inside them; otherwise the factor is applied as given.
func (v *View) ZoomAt(sx, sy float64, factor float64) {
	s := v.matrix[0]
	if v.minZoom > 0 && s*factor < v.minZoom {
		factor = v.minZoom / s
	}
	if v.maxZoom > 0 && s*factor > v.maxZoom {
		factor = v.maxZoom / s
	}

	wx, wy := v.ScreenToWorld(sx, sy)
	ns := s * factor
	v.matrix[0] = ns
	v.matrix[3] = ns
	v.matrix[4] = sx - ns*wx
	v.matrix[5] = sy - ns*wy
	v.dirty = true
}

// SetZoomLimits constrains the scale reached through ZoomAt to
// [min, max]. A zero bound leaves that side unconstrained. Limits do not
// retroactively clamp the current scale.
func (v *View) SetZoomLimits(min, max float64) {
	v.minZoom = min
	v.maxZoom = max
}

// Fit sets the scale so content of size (contentW, contentH) fits the
// viewport with its aspect ratio preserved, and centers it.
func (v *View) Fit(contentW, contentH float64) {
	if contentW <= 0 || contentH <= 0 {
		return
	}
	zoom := math.Min(v.Viewport.Width/contentW, v.Viewport.Height/contentH)
	v.matrix[0] = zoom
	v.matrix[3] = zoom
	v.SetTranslation(
		(v.Viewport.Width/zoom-contentW)/2,
		(v.Viewport.Height/zoom-contentH)/2,
	)
}

// FitImage fits an image's pixel bounds the way Fit fits abstract content.
func (v *View) FitImage(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	v.Fit(float64(b.Dx()), float64(b.Dy()))
}

// normalizedContentExtent is the edge length content images are scaled
// toward so that scenes built on differently sized backdrops share one
// coordinate range.
const normalizedContentExtent = 2000.0

// NormalizedImageScale returns the factor that scales an image of size
// (w, h) so its larger edge spans the normalized content extent.
func NormalizedImageScale(w, h float64) float64 {
	m := math.Max(w, h)
	if m <= 0 {
		return 1
	}
	return normalizedContentExtent / m
}

// AnimateTo glides the view translation to (dx, dy) world units over
// duration seconds. The glide advances from Update.
func (v *View) AnimateTo(dx, dy float64, duration float32, easeFn ease.TweenFunc) {
	cx, cy := v.Translation()
	v.glide = &glideAnim{
		tweenX: gween.New(float32(cx), float32(dx), duration, easeFn),
		tweenY: gween.New(float32(cy), float32(dy), duration, easeFn),
	}
}

// Update advances any active glide animation. Called once per tick.
func (v *View) Update(dt float32) {
	if v.glide == nil {
		return
	}
	cx, cy := v.Translation()
	if !v.glide.doneX {
		val, done := v.glide.tweenX.Update(dt)
		cx = float64(val)
		v.glide.doneX = done
	}
	if !v.glide.doneY {
		val, done := v.glide.tweenY.Update(dt)
		cy = float64(val)
		v.glide.doneY = done
	}
	v.SetTranslation(cx, cy)
	if v.glide.doneX && v.glide.doneY {
		v.glide = nil
	}
}

// computeInverse recomputes the cached inverse matrix if dirty.
func (v *View) computeInverse() [6]float64 {
	if v.dirty {
		v.invMatrix = invertAffine(v.matrix)
		v.dirty = false
	}
	return v.invMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *View) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(v.matrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v *View) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	inv := v.computeInverse()
	return transformPoint(inv, sx, sy)
}

// VisibleBounds returns the axis-aligned bounding rect of the view's
// visible area in world space.
func (v *View) VisibleBounds() Rect {
	inv := v.computeInverse()

	vx := v.Viewport.X
	vy := v.Viewport.Y
	vr := vx + v.Viewport.Width
	vb := vy + v.Viewport.Height

	// Transform the four viewport corners to world space.
	x0, y0 := transformPoint(inv, vx, vy)
	x1, y1 := transformPoint(inv, vr, vy)
	x2, y2 := transformPoint(inv, vr, vb)
	x3, y3 := transformPoint(inv, vx, vb)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
