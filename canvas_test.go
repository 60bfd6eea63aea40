package easel

import (
	"testing"
)

func TestCanvasDefaults(t *testing.T) {
	c := NewCanvas(320, 240)
	w, h := c.Size()
	if w != 320 || h != 240 {
		t.Errorf("Size = (%d, %d)", w, h)
	}
	if c.View() == nil {
		t.Fatal("nil view")
	}
	if c.View().Viewport.Width != 320 || c.View().Viewport.Height != 240 {
		t.Errorf("viewport = %+v", c.View().Viewport)
	}
	if c.Display() == nil {
		t.Fatal("nil display")
	}
}

func TestCanvasSetCommandsReplacesWholesale(t *testing.T) {
	c := NewCanvas(64, 64)

	var first CommandList
	first.FillStyle(Color{1, 0, 0, 1})
	first.Line(0, 0, 10, 10)
	c.SetCommands(first)
	if c.Commands().Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Commands().Len())
	}

	var second CommandList
	second.Clear()
	c.SetCommands(second)
	if c.Commands().Len() != 1 || c.Commands().At(0).Op != OpClear {
		t.Errorf("second SetCommands did not replace the list")
	}

	// The canvas keeps its own copy: mutating the source list afterward
	// must not affect the stored commands.
	second.Line(0, 0, 1, 1)
	if c.Commands().Len() != 1 {
		t.Error("stored list aliases the caller's slice")
	}
}

func TestCanvasStateStack(t *testing.T) {
	c := NewCanvas(64, 64)
	red := Color{1, 0, 0, 1}
	blue := Color{0, 0, 1, 1}

	c.state = defaultDrawState()
	c.execute(&Command{Op: OpFillStyle, Color: red})
	c.execute(&Command{Op: OpLineWidth, Value: 5})
	c.execute(&Command{Op: OpSave})
	c.execute(&Command{Op: OpFillStyle, Color: blue})
	c.execute(&Command{Op: OpFontSize, Value: 32})

	if c.state.fill != blue || c.state.fontSize != 32 {
		t.Errorf("inner state = %+v", c.state)
	}

	c.execute(&Command{Op: OpRestore})
	if c.state.fill != red {
		t.Errorf("fill after restore = %v, want %v", c.state.fill, red)
	}
	if c.state.lineWidth != 5 {
		t.Errorf("line width after restore = %v, want 5", c.state.lineWidth)
	}
	if c.state.fontSize != 16 {
		t.Errorf("font size after restore = %v, want 16", c.state.fontSize)
	}
}

func TestCanvasClearUsesFillStyle(t *testing.T) {
	// Clear paints with the current fill style; the Background only
	// covers clears issued before any fill style is set.
	c := NewCanvas(64, 64)
	c.Background = Color{0, 0, 0.2, 1}
	black := Color{0, 0, 0, 1}

	c.state = defaultDrawState()
	if got := c.clearColor(); got != c.Background {
		t.Errorf("clear color before fill style = %v, want background %v", got, c.Background)
	}

	c.execute(&Command{Op: OpFillStyle, Color: black})
	if got := c.clearColor(); got != black {
		t.Errorf("clear color after fill style = %v, want %v", got, black)
	}

	// A replayed FillStyle-then-Clear list clears with the fill style.
	var l CommandList
	l.FillStyle(black)
	l.Clear()
	c.SetCommands(l)
	c.Rerender()
	if got := c.clearColor(); got != black {
		t.Errorf("clear color after replay = %v, want %v", got, black)
	}

	// A replay starts over: a list without a fill style falls back to
	// the background again.
	var bare CommandList
	bare.Clear()
	c.SetCommands(bare)
	c.Rerender()
	if got := c.clearColor(); got != c.Background {
		t.Errorf("clear color after bare replay = %v, want background %v", got, c.Background)
	}
}

func TestCanvasClearFillStyleSurvivesRestore(t *testing.T) {
	c := NewCanvas(64, 64)
	red := Color{1, 0, 0, 1}

	c.state = defaultDrawState()
	c.execute(&Command{Op: OpSave})
	c.execute(&Command{Op: OpFillStyle, Color: red})
	c.execute(&Command{Op: OpRestore})

	// Restore pops back to the pre-save state, where no fill style had
	// been issued yet.
	if got := c.clearColor(); got != c.Background {
		t.Errorf("clear color after restore = %v, want background %v", got, c.Background)
	}
}

func TestCanvasRestoreOnEmptyStack(t *testing.T) {
	c := NewCanvas(64, 64)
	c.state = defaultDrawState()
	c.execute(&Command{Op: OpRestore}) // must not panic
	if c.state != defaultDrawState() {
		t.Errorf("state after unmatched restore = %+v", c.state)
	}
}

func TestCanvasRerenderResetsState(t *testing.T) {
	// A replay always starts from default draw state, even if the previous
	// replay left saves unbalanced.
	c := NewCanvas(64, 64)
	var l CommandList
	l.Save()
	l.FillStyle(Color{1, 0, 0, 1})
	l.LineWidth(9)
	c.SetCommands(l)

	c.Rerender()
	c.Rerender()

	if len(c.stack) != 1 {
		t.Errorf("stack depth = %d, want 1", len(c.stack))
	}
	if c.stack[0] != defaultDrawState() {
		t.Errorf("saved state = %+v, want defaults", c.stack[0])
	}
	if c.state.lineWidth != 9 {
		t.Errorf("line width = %v, want 9", c.state.lineWidth)
	}
}

func TestCanvasRerenderWithShapes(t *testing.T) {
	// Exercise the full dispatch path with each primitive; the point is
	// that replay through the view transform does not panic or corrupt
	// state, not pixel output.
	c := NewCanvas(128, 128)
	c.Background = Color{0, 0, 0.2, 1}
	c.View().PanBy(10, 10)
	c.View().ZoomAt(64, 64, 1.5)

	g := NewRadialGradient(20, 20, 15)
	g.AddColorStop(0, Color{1, 1, 0, 1})
	g.AddColorStop(1, Color{1, 0, 0, 0})

	var l CommandList
	l.Clear()
	l.FillStyle(Color{0.8, 0.2, 0.2, 1})
	l.StrokeStyle(Color{1, 1, 1, 1})
	l.LineWidth(2)
	l.Ellipse(30, 30, 20, 10, 0.3, 0, 2*3.14159265, false)
	l.Line(0, 0, 100, 100)
	l.RoundRect(50, 50, 40, 30, [4]float64{5, 5, 5, 5})
	l.FontSize(20)
	l.Text(10, 110, "replay")
	l.FillPattern(g)
	l.Ellipse(20, 20, 15, 15, 0, 0, 2*3.14159265, false)
	l.FillPattern(nil)
	c.SetCommands(l)

	c.Rerender()
	c.Flip()

	if c.state.pattern != nil {
		t.Error("pattern not reset by trailing FillPattern(nil)")
	}
}
