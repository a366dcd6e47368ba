package mapnav

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefreshTicks is how often the FPS line is recomputed.
const fpsRefreshTicks = 30

// fpsCounter caches the FPS/TPS line so it is not reformatted every frame.
type fpsCounter struct {
	ticks int
	line  string
}

// draw prints the current FPS and TPS at the bottom-left of screen.
func (f *fpsCounter) draw(screen *ebiten.Image) {
	if f.ticks == 0 || f.line == "" {
		f.line = fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	f.ticks = (f.ticks + 1) % fpsRefreshTicks
	ebitenutil.DebugPrintAt(screen, f.line, 4, screen.Bounds().Dy()-16)
}
