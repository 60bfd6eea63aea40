package script

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/easel2d/easel"
)

func newTestBindings(t *testing.T) *Bindings {
	t.Helper()
	b, err := NewBindings(newTestEngine(t))
	if err != nil {
		t.Fatalf("NewBindings: %v", err)
	}
	return b
}

func TestNewBindingsNilEngine(t *testing.T) {
	if _, err := NewBindings(nil); err == nil {
		t.Error("expected error for nil engine")
	}
}

func TestRunStringProducesCommands(t *testing.T) {
	b := newTestBindings(t)
	list, err := b.RunString("scene", `
		canvas_clear()
		canvas_fill_style("rgba(255, 0, 0, 1)")
		canvas_circle(100, 100, 25)
		canvas_line(0, 0, 200, 200)
	`)
	if err != nil {
		t.Fatalf("RunString: %v", err)
	}
	if list.Len() != 4 {
		t.Fatalf("commands = %d, want 4", list.Len())
	}
	if list.At(0).Op != easel.OpClear {
		t.Error("first command should be clear")
	}
	fill := list.At(1)
	if fill.Op != easel.OpFillStyle || fill.Color.R != 1 || fill.Color.G != 0 {
		t.Errorf("fill command = %+v", fill)
	}
	circle := list.At(2)
	if circle.Op != easel.OpEllipse || circle.RX != 25 || circle.RY != 25 {
		t.Errorf("circle command = %+v", circle)
	}
	if list.At(3).Op != easel.OpLine {
		t.Error("fourth command should be a line")
	}
}

func TestRunStringEllipseOptionalCCW(t *testing.T) {
	b := newTestBindings(t)
	list, err := b.RunString("e", `
		canvas_ellipse(10, 20, 5, 8, 0.5, 0, 3.14)
		canvas_ellipse(10, 20, 5, 8, 0.5, 0, 3.14, true)
	`)
	if err != nil {
		t.Fatal(err)
	}
	if list.At(0).CCW {
		t.Error("ccw defaulted to true")
	}
	if !list.At(1).CCW {
		t.Error("ccw argument ignored")
	}
}

func TestRunStringRoundRectRadii(t *testing.T) {
	b := newTestBindings(t)
	list, err := b.RunString("rr", `
		canvas_round_rect(0, 0, 100, 50)
		canvas_round_rect(0, 0, 100, 50, 4, 8, 12, 16)
	`)
	if err != nil {
		t.Fatal(err)
	}
	if list.At(0).Radii != [4]float64{} {
		t.Errorf("default radii = %v", list.At(0).Radii)
	}
	if list.At(1).Radii != [4]float64{4, 8, 12, 16} {
		t.Errorf("radii = %v", list.At(1).Radii)
	}
}

func TestRunStringText(t *testing.T) {
	b := newTestBindings(t)
	list, err := b.RunString("txt", `
		canvas_font_size(24)
		canvas_text(10, 40, "hello")
	`)
	if err != nil {
		t.Fatal(err)
	}
	if list.At(0).Value != 24 {
		t.Errorf("font size = %v", list.At(0).Value)
	}
	if list.At(1).Text != "hello" {
		t.Errorf("text = %q", list.At(1).Text)
	}
}

func TestRunStringTextAnchors(t *testing.T) {
	b := newTestBindings(t)
	list, err := b.RunString("anchor", `
		canvas_text_align("center")
		canvas_text_baseline("middle")
		canvas_text(50, 50, "centered")
	`)
	if err != nil {
		t.Fatal(err)
	}
	if cmd := list.At(0); cmd.Op != easel.OpTextAlign || cmd.Align != easel.AlignCenter {
		t.Errorf("align command = %+v", cmd)
	}
	if cmd := list.At(1); cmd.Op != easel.OpTextBaseline || cmd.Baseline != easel.BaselineMiddle {
		t.Errorf("baseline command = %+v", cmd)
	}

	if _, err := b.RunString("bad", `canvas_text_align("justify")`); err == nil {
		t.Error("expected error for unknown align keyword")
	}
}

func TestRunStringBadColor(t *testing.T) {
	b := newTestBindings(t)
	_, err := b.RunString("bad", `canvas_fill_style("chartreuse")`)
	if err == nil {
		t.Error("expected error for unparseable color")
	}
}

func TestImageRegistry(t *testing.T) {
	b := newTestBindings(t)
	img := ebiten.NewImage(8, 8)
	b.RegisterImage("badge", img)

	list, err := b.RunString("img", `canvas_image("badge", 10, 10, 32, 32)`)
	if err != nil {
		t.Fatal(err)
	}
	cmd := list.At(0)
	if cmd.Op != easel.OpImage || cmd.Img != img {
		t.Errorf("image command = %+v", cmd)
	}
	if cmd.Filter != "" {
		t.Errorf("filter = %q, want empty", cmd.Filter)
	}
}

func TestImageUnknownName(t *testing.T) {
	b := newTestBindings(t)
	_, err := b.RunString("img", `canvas_image("missing", 0, 0, 10, 10)`)
	if err == nil {
		t.Fatal("expected error for unregistered image")
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error %q should name the image", err)
	}
}

func TestImageWithFilter(t *testing.T) {
	b := newTestBindings(t)
	b.RegisterImage("photo", ebiten.NewImage(4, 4))

	list, err := b.RunString("img", `canvas_image("photo", 0, 0, 10, 10, "grayscale(1)")`)
	if err != nil {
		t.Fatal(err)
	}
	if list.At(0).Filter != "grayscale(1)" {
		t.Errorf("filter = %q", list.At(0).Filter)
	}
}

func TestRunResetsBetweenExecutions(t *testing.T) {
	b := newTestBindings(t)

	first, err := b.RunString("a", `canvas_circle(0, 0, 1)`)
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.RunString("b", `canvas_line(0, 0, 1, 1)`)
	if err != nil {
		t.Fatal(err)
	}

	if first.Len() != 1 || second.Len() != 1 {
		t.Errorf("lens = %d, %d; want 1, 1", first.Len(), second.Len())
	}
	if second.At(0).Op != easel.OpLine {
		t.Error("second run carried commands from the first")
	}
}

func TestRunStringWithLuaLogic(t *testing.T) {
	// Scripts can use ordinary Lua control flow to build scenes.
	b := newTestBindings(t)
	list, err := b.RunString("loop", `
		for i = 1, 5 do
			canvas_circle(i * 10, 50, 4)
		end
	`)
	if err != nil {
		t.Fatal(err)
	}
	if list.Len() != 5 {
		t.Fatalf("commands = %d, want 5", list.Len())
	}
	if list.At(4).X != 50 {
		t.Errorf("last circle x = %v, want 50", list.At(4).X)
	}
}
