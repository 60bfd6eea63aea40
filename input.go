package easel

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// defaultWheelDivisor converts wheel delta to a zoom factor:
// factor = 1 - delta/divisor.
const defaultWheelDivisor = 1000.0

// wheelNotchDelta is the per-notch delta fed to the zoom rule when reading
// the hardware wheel.
const wheelNotchDelta = 100.0

// Controller wires pointer input to a Canvas: dragging pans the view,
// the wheel zooms about the cursor, and a release reports the world
// position to an optional callback. It reads the mouse once per tick from
// Update; tests and scripted runs drive the same state machine through
// the Inject methods instead.
type Controller struct {
	// OnPointerUp, when set, receives every release with the pointer
	// position in world coordinates and the button captured at press
	// time. It fires whether or not the pointer moved while down.
	OnPointerUp func(wx, wy float64, button MouseButton)

	// WheelDivisor tunes zoom speed. A wheel delta d produces the zoom
	// factor 1 - d/WheelDivisor.
	WheelDivisor float64

	canvas *Canvas

	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	button   MouseButton

	injectQueue []syntheticEvent
}

// NewController creates a Controller driving the given canvas.
func NewController(canvas *Canvas) *Controller {
	return &Controller{
		canvas:       canvas,
		WheelDivisor: defaultWheelDivisor,
	}
}

// Dragging reports whether a press-move gesture is in progress.
func (c *Controller) Dragging() bool {
	return c.dragging
}

// Update reads the mouse state and advances the pointer state machine.
// Call once per tick. While injected events are queued, one is consumed
// per tick and the real mouse is ignored.
func (c *Controller) Update() {
	if c.processInjected() {
		return
	}

	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)

	// Detect which button is pressed. If the pointer is already down,
	// the stored button wins so it cannot change mid-gesture.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	c.processPointer(sx, sy, pressed, button)

	if _, yoff := ebiten.Wheel(); yoff != 0 {
		// Scrolling toward the user zooms out, matching wheel deltas
		// that grow positive in that direction.
		c.processWheel(sx, sy, -yoff*wheelNotchDelta)
	}
}

// processPointer runs the drag state machine for one pointer sample.
// Coordinates are in screen space.
func (c *Controller) processPointer(sx, sy float64, pressed bool, button MouseButton) {
	switch {
	case pressed && !c.down:
		// Just pressed. Capture the button for the whole gesture.
		c.down = true
		c.button = button
		c.startX, c.startY = sx, sy
		c.lastX, c.lastY = sx, sy
		c.dragging = false

	case pressed && c.down:
		// Held, possibly moved. Pan by the delta since the previous
		// sample, not since the press.
		dx := sx - c.lastX
		dy := sy - c.lastY
		if dx != 0 || dy != 0 {
			c.dragging = true
			c.canvas.View().PanBy(dx, dy)
			c.canvas.Rerender()
			c.lastX, c.lastY = sx, sy
		}

	case !pressed && c.down:
		// Released. Report the world position with the press-time
		// button, even for a press-release with no movement.
		if c.OnPointerUp != nil {
			wx, wy := c.canvas.View().ScreenToWorld(sx, sy)
			c.OnPointerUp(wx, wy, c.button)
		}
		c.down = false
		c.dragging = false
	}
}

// processWheel applies the wheel zoom rule about the cursor position.
func (c *Controller) processWheel(sx, sy, delta float64) {
	factor := 1 - delta/c.WheelDivisor
	c.canvas.View().ZoomAt(sx, sy, factor)
	c.canvas.Rerender()
}
