package easel

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Resizable     bool
}

// Viewer is an [ebiten.Game] that ties a Canvas to a Controller: each
// tick it consumes input, advances animations, re-emits the scene tree
// (when one is attached), and flips the finished frame to the display.
type Viewer struct {
	// Root, when set, is re-emitted into the canvas every tick, so
	// objects moved by motion paths or host code redraw automatically.
	// Leave nil to feed the canvas instruction lists directly.
	Root *Object

	// OnTick runs every update with the tick duration in seconds.
	OnTick func(dt float64)

	// ShowFPS overlays the current FPS and TPS in the corner.
	ShowFPS bool

	// Debug logs per-frame instruction counts to stderr.
	Debug bool

	// ScreenshotDir receives PNGs queued via Screenshot.
	ScreenshotDir string

	canvas     *Canvas
	controller *Controller

	testRunner      *TestRunner
	screenshotQueue []string
	emitList        CommandList
}

// NewViewer creates a Viewer over a fresh canvas of the given size.
func NewViewer(width, height int) *Viewer {
	canvas := NewCanvas(width, height)
	return &Viewer{
		canvas:        canvas,
		controller:    NewController(canvas),
		ScreenshotDir: "screenshots",
	}
}

// Canvas returns the viewer's canvas.
func (v *Viewer) Canvas() *Canvas {
	return v.canvas
}

// Controller returns the viewer's input controller.
func (v *Viewer) Controller() *Controller {
	return v.controller
}

// Update implements [ebiten.Game].
func (v *Viewer) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if v.testRunner != nil {
		v.testRunner.step(v)
	}
	v.controller.Update()

	// A glide moves the view without input, so the canvas needs a
	// replay even when no scene tree drives one below.
	gliding := v.canvas.View().glide != nil
	v.canvas.View().Update(float32(dt))
	if gliding && v.Root == nil {
		v.canvas.Rerender()
	}

	if v.OnTick != nil {
		v.OnTick(dt)
	}

	if v.Root != nil {
		v.Root.Advance(dt)
		v.emitList.Reset()
		v.emitList.Clear()
		v.Root.Emit(&v.emitList)
		v.canvas.SetCommands(v.emitList)
		v.canvas.Rerender()
		if v.Debug {
			_, _ = fmt.Fprintf(os.Stderr, "[easel] commands: %d | shapes: %d\n",
				v.emitList.Len(), countShapeCommands(&v.emitList))
		}
	}

	v.canvas.Flip()
	return nil
}

// Draw implements [ebiten.Game].
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.DrawImage(v.canvas.Display(), nil)
	if v.ShowFPS {
		drawFPSOverlay(screen)
	}
	v.flushScreenshots(screen)
}

// Layout implements [ebiten.Game].
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.canvas.Size()
}

// Run opens a window and drives the viewer until it is closed.
func Run(v *Viewer, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = v.canvas.Size()
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(v)
}
