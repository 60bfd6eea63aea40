package easel

import "github.com/hajimehoshi/ebiten/v2"

// drawState is the style state affected by Save/Restore. Positioning state
// is not part of it; every primitive restores the transform it found.
type drawState struct {
	fill      Color
	stroke    Color
	lineWidth float64
	fontSize  float64
	pattern   *RadialGradient
	align     TextAlign
	baseline  TextBaseline

	// fillSet records whether a fill style was issued this replay.
	// Clear paints with the fill style only once one has been set;
	// before that it falls back to the canvas Background.
	fillSet bool
}

func defaultDrawState() drawState {
	return drawState{
		fill:      ColorWhite,
		stroke:    ColorWhite,
		lineWidth: 1,
		fontSize:  16,
	}
}

// Canvas is a double-buffered drawing surface with a pannable, zoomable
// view. Drawing instructions render to an offscreen working image;
// Flip publishes the working image to the display image in one blit, so
// the display never shows a half-rendered frame.
//
// A Canvas is single-goroutine: all calls happen from the game loop.
type Canvas struct {
	// Background is the color Clear falls back to before any fill style
	// has been issued. Once a FillStyle command runs, Clear paints with
	// the current fill style instead. A fully transparent clear color
	// erases to transparent.
	Background Color

	view    *View
	working *ebiten.Image
	display *ebiten.Image

	cmds  CommandList
	state drawState
	stack []drawState

	filters filterCache

	width, height int
}

// NewCanvas creates a Canvas of the given pixel size with an identity view.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		view:    NewView(Rect{Width: float64(width), Height: float64(height)}),
		working: ebiten.NewImage(width, height),
		display: ebiten.NewImage(width, height),
		width:   width,
		height:  height,
	}
}

// View returns the canvas view for pan and zoom control.
func (c *Canvas) View() *View {
	return c.view
}

// Size returns the canvas pixel dimensions.
func (c *Canvas) Size() (w, h int) {
	return c.width, c.height
}

// Display returns the front buffer. It only changes on Flip.
func (c *Canvas) Display() *ebiten.Image {
	return c.display
}

// SetCommands replaces the stored instruction list wholesale. The new list
// takes effect on the next Rerender; it does not render by itself.
func (c *Canvas) SetCommands(list CommandList) {
	c.cmds.cmds = append(c.cmds.cmds[:0], list.cmds...)
}

// Commands returns the stored instruction list.
func (c *Canvas) Commands() *CommandList {
	return &c.cmds
}

// Rerender replays the stored instruction list against the working image
// through the current view transform. The draw state starts from defaults
// on every replay, so a replay is indistinguishable from executing the
// same calls directly.
func (c *Canvas) Rerender() {
	c.state = defaultDrawState()
	c.stack = c.stack[:0]
	c.working.Clear()
	for i := range c.cmds.cmds {
		c.execute(&c.cmds.cmds[i])
	}
}

// Flip copies the working image to the display image.
func (c *Canvas) Flip() {
	c.display.Clear()
	c.display.DrawImage(c.working, nil)
}

// execute runs one command against the working image.
func (c *Canvas) execute(cmd *Command) {
	switch cmd.Op {
	case OpSave:
		c.stack = append(c.stack, c.state)
	case OpRestore:
		if n := len(c.stack); n > 0 {
			c.state = c.stack[n-1]
			c.stack = c.stack[:n-1]
		}
	case OpClear:
		c.clear()
	case OpFillStyle:
		c.state.fill = cmd.Color
		c.state.fillSet = true
	case OpStrokeStyle:
		c.state.stroke = cmd.Color
	case OpLineWidth:
		c.state.lineWidth = cmd.Value
	case OpFillPattern:
		c.state.pattern = cmd.Pattern
	case OpFontSize:
		c.state.fontSize = cmd.Value
	case OpTextAlign:
		c.state.align = cmd.Align
	case OpTextBaseline:
		c.state.baseline = cmd.Baseline
	case OpEllipse:
		c.drawEllipse(cmd)
	case OpLine:
		c.drawLine(cmd)
	case OpRoundRect:
		c.drawRoundRect(cmd)
	case OpText:
		c.drawText(cmd)
	case OpImage:
		c.drawImage(cmd)
	}
}

// clear erases the working image and repaints the visible world region
// with the clear color through the normal fill pipeline, so the backdrop
// tracks the view transform. A fully transparent clear color erases only.
func (c *Canvas) clear() {
	c.working.Clear()
	col := c.clearColor()
	if col.A <= 0 {
		return
	}
	b := c.view.VisibleBounds()
	c.fillRect(b.X, b.Y, b.Width, b.Height, col)
}

// clearColor is the color Clear paints with: the current fill style once
// one has been set this replay, otherwise the canvas Background.
func (c *Canvas) clearColor() Color {
	if c.state.fillSet {
		return c.state.fill
	}
	return c.Background
}
