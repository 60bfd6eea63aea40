package easel

// syntheticEvent represents a single injected input event in screen
// coordinates, processed identically to real mouse input.
type syntheticEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
	wheel   bool
	delta   float64
}

// InjectPress queues a pointer press at the given screen coordinates with
// the given button. The event is consumed on the next Update.
func (c *Controller) InjectPress(x, y float64, button MouseButton) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		x: x, y: y, pressed: true, button: button,
	})
}

// InjectMove queues a pointer move at the given screen coordinates with
// the button held down. Use between InjectPress and InjectRelease to
// simulate a drag.
func (c *Controller) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		x: x, y: y, pressed: true, button: c.pendingButton(),
	})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (c *Controller) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two ticks.
func (c *Controller) InjectClick(x, y float64, button MouseButton) {
	c.InjectPress(x, y, button)
	c.InjectRelease(x, y)
}

// InjectWheel queues a wheel event at the given screen coordinates.
// Positive delta zooms out under the default zoom rule.
func (c *Controller) InjectWheel(x, y, delta float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		x: x, y: y, wheel: true, delta: delta,
	})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate ticks, and
// release at (toX, toY). Minimum frames is 2 (press + release).
func (c *Controller) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY, MouseButtonLeft)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		// The last move lands on the target so the pan covers the full
		// distance; the release sample itself does not pan.
		t := float64(i) / float64(steps)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		c.InjectMove(x, y)
	}
	c.InjectRelease(toX, toY)
}

// InjectPending reports how many injected events are waiting.
func (c *Controller) InjectPending() int {
	return len(c.injectQueue)
}

// pendingButton returns the button a queued move should carry: the button
// of the most recent queued press, or the live gesture's button.
func (c *Controller) pendingButton() MouseButton {
	for i := len(c.injectQueue) - 1; i >= 0; i-- {
		evt := c.injectQueue[i]
		if !evt.wheel && evt.pressed {
			return evt.button
		}
	}
	return c.button
}

// processInjected pops one event from the queue and feeds it through the
// state machine. Returns true if an event was consumed (real mouse input
// is skipped that tick).
func (c *Controller) processInjected() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	if evt.wheel {
		c.processWheel(evt.x, evt.y, evt.delta)
	} else {
		c.processPointer(evt.x, evt.y, evt.pressed, evt.button)
	}
	return true
}
