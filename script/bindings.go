package script

import (
	"fmt"
	"math"
	"sync"

	rt "github.com/arnodel/golua/runtime"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/easel2d/easel"
)

// Bindings exposes the canvas drawing API to Lua scripts. A script calls
// canvas_* functions to append instructions; Run executes a script from
// a clean list and hands the result back for the canvas to replay.
//
// Styles are CSS-style "rgba(r, g, b, a)" strings, matching what
// easel.ParseColor accepts. Images are drawn by name after the host
// registers them with RegisterImage.
type Bindings struct {
	engine *Engine
	list   easel.CommandList

	mu     sync.Mutex
	images map[string]*ebiten.Image
}

// NewBindings registers the canvas drawing functions in the engine's
// Lua environment.
func NewBindings(engine *Engine) (*Bindings, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	b := &Bindings{
		engine: engine,
		images: make(map[string]*ebiten.Image),
	}
	b.registerFunctions()
	return b, nil
}

// RegisterImage makes img drawable from scripts as canvas_image(name, ...).
func (b *Bindings) RegisterImage(name string, img *ebiten.Image) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.images[name] = img
}

// Run executes a compiled script against a fresh command list and
// returns the instructions it produced.
func (b *Bindings) Run(closure *rt.Closure) (easel.CommandList, error) {
	b.list.Reset()
	if _, err := b.engine.Execute(closure); err != nil {
		return easel.CommandList{}, err
	}
	out := easel.CommandList{}
	for i := 0; i < b.list.Len(); i++ {
		out.Append(*b.listCommand(i))
	}
	return out, nil
}

// RunString compiles and executes a script source string.
func (b *Bindings) RunString(name, code string) (easel.CommandList, error) {
	closure, err := b.engine.LoadString(name, code)
	if err != nil {
		return easel.CommandList{}, err
	}
	return b.Run(closure)
}

func (b *Bindings) registerFunctions() {
	b.engine.SetGoFunction("canvas_clear", b.clear, 0, false)
	b.engine.SetGoFunction("canvas_save", b.save, 0, false)
	b.engine.SetGoFunction("canvas_restore", b.restore, 0, false)
	b.engine.SetGoFunction("canvas_fill_style", b.fillStyle, 1, false)
	b.engine.SetGoFunction("canvas_stroke_style", b.strokeStyle, 1, false)
	b.engine.SetGoFunction("canvas_line_width", b.lineWidth, 1, false)
	b.engine.SetGoFunction("canvas_font_size", b.fontSize, 1, false)
	b.engine.SetGoFunction("canvas_text_align", b.textAlign, 1, false)
	b.engine.SetGoFunction("canvas_text_baseline", b.textBaseline, 1, false)
	b.engine.SetGoFunction("canvas_ellipse", b.ellipse, 7, true)
	b.engine.SetGoFunction("canvas_circle", b.circle, 3, false)
	b.engine.SetGoFunction("canvas_line", b.line, 4, false)
	b.engine.SetGoFunction("canvas_round_rect", b.roundRect, 4, true)
	b.engine.SetGoFunction("canvas_text", b.text, 3, false)
	b.engine.SetGoFunction("canvas_image", b.image, 5, true)
}

// --- Binding implementations ---

func (b *Bindings) clear(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	b.list.Clear()
	return c.Next(), nil
}

func (b *Bindings) save(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	b.list.Save()
	return c.Next(), nil
}

func (b *Bindings) restore(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	b.list.Restore()
	return c.Next(), nil
}

func (b *Bindings) fillStyle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	s, err := getStringArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("canvas_fill_style: %w", err)
	}
	col, err := easel.ParseColor(s)
	if err != nil {
		return nil, fmt.Errorf("canvas_fill_style: %w", err)
	}
	b.list.FillStyle(col)
	return c.Next(), nil
}

func (b *Bindings) strokeStyle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	s, err := getStringArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("canvas_stroke_style: %w", err)
	}
	col, err := easel.ParseColor(s)
	if err != nil {
		return nil, fmt.Errorf("canvas_stroke_style: %w", err)
	}
	b.list.StrokeStyle(col)
	return c.Next(), nil
}

func (b *Bindings) lineWidth(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	w, err := getFloatArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("canvas_line_width: %w", err)
	}
	b.list.LineWidth(w)
	return c.Next(), nil
}

func (b *Bindings) fontSize(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	size, err := getFloatArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("canvas_font_size: %w", err)
	}
	b.list.FontSize(size)
	return c.Next(), nil
}

func (b *Bindings) textAlign(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	s, err := getStringArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("canvas_text_align: %w", err)
	}
	a, err := easel.ParseTextAlign(s)
	if err != nil {
		return nil, fmt.Errorf("canvas_text_align: %w", err)
	}
	b.list.TextAlign(a)
	return c.Next(), nil
}

func (b *Bindings) textBaseline(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	s, err := getStringArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("canvas_text_baseline: %w", err)
	}
	bl, err := easel.ParseTextBaseline(s)
	if err != nil {
		return nil, fmt.Errorf("canvas_text_baseline: %w", err)
	}
	b.list.TextBaseline(bl)
	return c.Next(), nil
}

// ellipse handles canvas_ellipse(x, y, rx, ry, rotation, start, end[, ccw]).
func (b *Bindings) ellipse(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	var vals [7]float64
	for i := range vals {
		v, err := getFloatArg(args, i)
		if err != nil {
			return nil, fmt.Errorf("canvas_ellipse: argument %d: %w", i+1, err)
		}
		vals[i] = v
	}
	ccw := getOptBoolArg(args, 7)
	b.list.Ellipse(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5], vals[6], ccw)
	return c.Next(), nil
}

// circle handles canvas_circle(x, y, r), a full-turn ellipse shorthand.
func (b *Bindings) circle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	var vals [3]float64
	for i := range vals {
		v, err := getFloatArg(args, i)
		if err != nil {
			return nil, fmt.Errorf("canvas_circle: argument %d: %w", i+1, err)
		}
		vals[i] = v
	}
	b.list.Ellipse(vals[0], vals[1], vals[2], vals[2], 0, 0, 2*math.Pi, false)
	return c.Next(), nil
}

func (b *Bindings) line(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	var vals [4]float64
	for i := range vals {
		v, err := getFloatArg(args, i)
		if err != nil {
			return nil, fmt.Errorf("canvas_line: argument %d: %w", i+1, err)
		}
		vals[i] = v
	}
	b.list.Line(vals[0], vals[1], vals[2], vals[3])
	return c.Next(), nil
}

// roundRect handles canvas_round_rect(x, y, w, h[, r1, r2, r3, r4]).
// Corner radii default to zero.
func (b *Bindings) roundRect(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	var vals [4]float64
	for i := range vals {
		v, err := getFloatArg(args, i)
		if err != nil {
			return nil, fmt.Errorf("canvas_round_rect: argument %d: %w", i+1, err)
		}
		vals[i] = v
	}
	var radii [4]float64
	for i := range radii {
		if r, err := getFloatArg(args, 4+i); err == nil {
			radii[i] = r
		}
	}
	b.list.RoundRect(vals[0], vals[1], vals[2], vals[3], radii)
	return c.Next(), nil
}

func (b *Bindings) text(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	x, err := getFloatArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("canvas_text: x: %w", err)
	}
	y, err := getFloatArg(args, 1)
	if err != nil {
		return nil, fmt.Errorf("canvas_text: y: %w", err)
	}
	s, err := getStringArg(args, 2)
	if err != nil {
		return nil, fmt.Errorf("canvas_text: %w", err)
	}
	b.list.Text(x, y, s)
	return c.Next(), nil
}

// image handles canvas_image(name, x, y, w, h[, filter]). The name must
// have been registered by the host; unknown names are an error so typos
// surface instead of silently drawing nothing.
func (b *Bindings) image(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	name, err := getStringArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("canvas_image: %w", err)
	}

	b.mu.Lock()
	img, ok := b.images[name]
	b.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("canvas_image: no image registered as %q", name)
	}

	var vals [4]float64
	for i := range vals {
		v, err := getFloatArg(args, 1+i)
		if err != nil {
			return nil, fmt.Errorf("canvas_image: argument %d: %w", i+2, err)
		}
		vals[i] = v
	}
	filter := ""
	if f, err := getStringArg(args, 5); err == nil {
		filter = f
	}
	b.list.Image(img, vals[0], vals[1], vals[2], vals[3], filter)
	return c.Next(), nil
}

// listCommand returns a pointer to the i-th buffered command.
func (b *Bindings) listCommand(i int) *easel.Command {
	return b.list.At(i)
}

// --- Argument helpers ---

// getAllArgs combines Args() and Etc() to get all arguments including
// varargs.
func getAllArgs(c *rt.GoCont) []rt.Value {
	return append(c.Args(), c.Etc()...)
}

// getFloatArg gets a numeric argument from the combined args slice.
func getFloatArg(args []rt.Value, idx int) (float64, error) {
	if idx >= len(args) {
		return 0, fmt.Errorf("argument %d out of range (have %d)", idx, len(args))
	}
	if f, ok := args[idx].TryFloat(); ok {
		return f, nil
	}
	if i, ok := args[idx].TryInt(); ok {
		return float64(i), nil
	}
	return 0, fmt.Errorf("argument %d is not a number", idx)
}

// getStringArg gets a string argument from the combined args slice.
func getStringArg(args []rt.Value, idx int) (string, error) {
	if idx >= len(args) {
		return "", fmt.Errorf("argument %d out of range (have %d)", idx, len(args))
	}
	if s, ok := args[idx].TryString(); ok {
		return s, nil
	}
	return "", fmt.Errorf("argument %d is not a string", idx)
}

// getOptBoolArg reads an optional boolean argument, defaulting to false.
func getOptBoolArg(args []rt.Value, idx int) bool {
	if idx >= len(args) {
		return false
	}
	b, ok := args[idx].TryBool()
	return ok && b
}
