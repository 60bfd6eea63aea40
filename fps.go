package easel

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay caches the small overlay image and throttles redraws.
var fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
}

// drawFPSOverlay renders the current FPS and TPS into the top-left
// corner. The readout refreshes about twice a second.
func drawFPSOverlay(screen *ebiten.Image) {
	if fpsOverlay.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		fpsOverlay.img = ebiten.NewImage(100, 32)
		fpsOverlay.elapsed = 1
	}

	fpsOverlay.elapsed += 1.0 / float64(ebiten.TPS())
	if fpsOverlay.elapsed >= 0.5 {
		fpsOverlay.elapsed = 0
		fpsOverlay.img.Clear()
		// Semi-transparent background for readability
		fpsOverlay.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(fpsOverlay.img,
			fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}

	screen.DrawImage(fpsOverlay.img, nil)
}
