package easel

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// CommandOp identifies a drawing instruction.
type CommandOp uint8

const (
	OpSave        CommandOp = iota // push the current draw state
	OpRestore                      // pop the draw state
	OpClear                        // clear the visible region
	OpFillStyle                    // set the fill color
	OpStrokeStyle                  // set the stroke color
	OpLineWidth                    // set the stroke width (world units)
	OpFillPattern                  // set a gradient fill pattern (nil resets)
	OpFontSize                     // set the text size (world units)
	OpTextAlign                    // set the horizontal text anchor
	OpTextBaseline                 // set the vertical text anchor
	OpEllipse                      // fill and stroke an elliptical arc
	OpLine                         // stroke a line segment
	OpRoundRect                    // fill and stroke a rounded rectangle
	OpText                         // fill a text string
	OpImage                        // draw an image, optionally filtered
)

// TextAlign is the horizontal anchor for drawn text.
type TextAlign uint8

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextBaseline is the vertical anchor for drawn text.
type TextBaseline uint8

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

// ParseTextAlign maps a canvas-style textAlign keyword to a TextAlign.
func ParseTextAlign(s string) (TextAlign, error) {
	switch s {
	case "left", "start":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right", "end":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("easel: unknown text align %q", s)
}

// ParseTextBaseline maps a canvas-style textBaseline keyword to a
// TextBaseline.
func ParseTextBaseline(s string) (TextBaseline, error) {
	switch s {
	case "alphabetic":
		return BaselineAlphabetic, nil
	case "top", "hanging":
		return BaselineTop, nil
	case "middle":
		return BaselineMiddle, nil
	case "bottom", "ideographic":
		return BaselineBottom, nil
	}
	return BaselineAlphabetic, fmt.Errorf("easel: unknown text baseline %q", s)
}

// Command is a single drawing instruction. It is a flat struct so command
// lists stay contiguous in memory; each op reads only the fields it needs.
type Command struct {
	Op CommandOp

	// Geometry. X, Y anchor the primitive; X2, Y2 end a line; W, H size
	// rectangles, text boxes, and images.
	X, Y   float64
	X2, Y2 float64
	W, H   float64

	// Ellipse parameters.
	RX, RY               float64
	Rotation             float64
	StartAngle, EndAngle float64
	CCW                  bool

	// Corner radii for OpRoundRect: top-left, top-right, bottom-right,
	// bottom-left.
	Radii [4]float64

	// Style payloads.
	Color    Color
	Value    float64 // line width or font size
	Pattern  *RadialGradient
	Align    TextAlign
	Baseline TextBaseline

	Text   string
	Img    *ebiten.Image
	Filter string
}

// CommandList is an ordered sequence of drawing instructions. Lists are
// built once and replayed any number of times; replaying a stored list
// produces the same pixels as executing the calls directly.
type CommandList struct {
	cmds []Command
}

// Len returns the number of commands in the list.
func (l *CommandList) Len() int {
	return len(l.cmds)
}

// At returns a pointer to the i-th command.
func (l *CommandList) At(i int) *Command {
	return &l.cmds[i]
}

// Reset empties the list, keeping its backing storage.
func (l *CommandList) Reset() {
	l.cmds = l.cmds[:0]
}

// Append adds a raw command to the list.
func (l *CommandList) Append(cmd Command) {
	l.cmds = append(l.cmds, cmd)
}

// Save pushes the current draw state (styles, line width, font size).
func (l *CommandList) Save() {
	l.cmds = append(l.cmds, Command{Op: OpSave})
}

// Restore pops the draw state pushed by the matching Save.
func (l *CommandList) Restore() {
	l.cmds = append(l.cmds, Command{Op: OpRestore})
}

// Clear erases the surface and repaints the visible region with the
// current fill style, or with the canvas Background before any fill
// style has been set.
func (l *CommandList) Clear() {
	l.cmds = append(l.cmds, Command{Op: OpClear})
}

// FillStyle sets the fill color for subsequent fills.
func (l *CommandList) FillStyle(c Color) {
	l.cmds = append(l.cmds, Command{Op: OpFillStyle, Color: c})
}

// StrokeStyle sets the stroke color for subsequent strokes.
func (l *CommandList) StrokeStyle(c Color) {
	l.cmds = append(l.cmds, Command{Op: OpStrokeStyle, Color: c})
}

// LineWidth sets the stroke width in world units.
func (l *CommandList) LineWidth(w float64) {
	l.cmds = append(l.cmds, Command{Op: OpLineWidth, Value: w})
}

// FillPattern sets a radial gradient as the fill source. Passing nil
// reverts to the flat fill color.
func (l *CommandList) FillPattern(g *RadialGradient) {
	l.cmds = append(l.cmds, Command{Op: OpFillPattern, Pattern: g})
}

// FontSize sets the text size in world units.
func (l *CommandList) FontSize(size float64) {
	l.cmds = append(l.cmds, Command{Op: OpFontSize, Value: size})
}

// TextAlign sets the horizontal anchor for subsequent text.
func (l *CommandList) TextAlign(a TextAlign) {
	l.cmds = append(l.cmds, Command{Op: OpTextAlign, Align: a})
}

// TextBaseline sets the vertical anchor for subsequent text.
func (l *CommandList) TextBaseline(b TextBaseline) {
	l.cmds = append(l.cmds, Command{Op: OpTextBaseline, Baseline: b})
}

// Ellipse fills and strokes an elliptical arc centered at (x, y) with radii
// (rx, ry), rotated by rotation radians, sweeping from startAngle to
// endAngle. ccw reverses the sweep direction.
func (l *CommandList) Ellipse(x, y, rx, ry, rotation, startAngle, endAngle float64, ccw bool) {
	l.cmds = append(l.cmds, Command{
		Op: OpEllipse,
		X:  x, Y: y, RX: rx, RY: ry,
		Rotation: rotation, StartAngle: startAngle, EndAngle: endAngle, CCW: ccw,
	})
}

// Line strokes a segment from (x1, y1) to (x2, y2).
func (l *CommandList) Line(x1, y1, x2, y2 float64) {
	l.cmds = append(l.cmds, Command{Op: OpLine, X: x1, Y: y1, X2: x2, Y2: y2})
}

// RoundRect fills and strokes a rectangle with per-corner radii ordered
// top-left, top-right, bottom-right, bottom-left.
func (l *CommandList) RoundRect(x, y, w, h float64, radii [4]float64) {
	l.cmds = append(l.cmds, Command{Op: OpRoundRect, X: x, Y: y, W: w, H: h, Radii: radii})
}

// Text fills a string anchored at (x, y) per the current text align and
// baseline, baseline-left by default.
func (l *CommandList) Text(x, y float64, s string) {
	l.cmds = append(l.cmds, Command{Op: OpText, X: x, Y: y, Text: s})
}

// Image draws img scaled into the (w, h) box at (x, y). filter is a
// CSS-style filter string ("opacity(0.5) grayscale(1)"); empty means
// unfiltered.
func (l *CommandList) Image(img *ebiten.Image, x, y, w, h float64, filter string) {
	l.cmds = append(l.cmds, Command{Op: OpImage, Img: img, X: x, Y: y, W: w, H: h, Filter: filter})
}
