// Package easel is a pannable, zoomable 2D canvas for [Ebitengine].
//
// Easel renders a stream of drawing instructions onto a double-buffered
// surface whose view can be dragged and wheel-zoomed like a map. It is
// built for data visualizations and editors: the host supplies the
// instructions (directly, through a scene object tree, or from a Lua
// script via easel/script) and easel handles the transform math, input
// wiring, and rasterization.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and
// game loop around a [Viewer]:
//
//	v := easel.NewViewer(800, 600)
//	list := v.Canvas().Commands()
//	list.Clear()
//	list.FillStyle(easel.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	list.Ellipse(400, 300, 120, 80, 0, 0, 2*math.Pi, false)
//	v.Canvas().Rerender()
//	easel.Run(v, easel.RunConfig{Title: "My Canvas", Width: 800, Height: 600})
//
// Dragging pans the view and the mouse wheel zooms about the cursor; no
// extra wiring is needed.
//
// # Views and transforms
//
// A [Canvas] owns a [View]: a uniform-scale affine transform between
// world and screen coordinates. [View.SetTranslation] repositions
// absolutely, [View.PanBy] shifts by a screen delta, and [View.ZoomAt]
// scales about a screen point while keeping the world point under the
// cursor fixed. [View.ScreenToWorld] and [View.WorldToScreen] convert
// between the two spaces.
//
// # Instructions and replay
//
// Drawing is data-driven: a [CommandList] holds tagged instructions
// (Clear, FillStyle, Ellipse, Line, RoundRect, Text, Image, ...) that
// [Canvas.Rerender] replays through the view transform. Replaying a
// stored list is pixel-identical to issuing the calls directly, which is
// what makes drag-time rerendering cheap and deterministic.
//
// # Scene objects
//
// For retained scenes, build a tree of [Object] values (groups,
// ellipses, rectangles, images, text) and attach it to [Viewer.Root].
// The tree re-emits itself every tick, [MotionPath] implementations
// animate positions, and [Object.HitTest] resolves clicks.
//
// [Ebitengine]: https://ebitengine.org
package easel
