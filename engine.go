package mapnav

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Engine is the map navigation and rendering engine driven by the
// coordinator. All methods are synchronous. Navigation methods report whether
// the engine state changed and a redraw is needed; the caller never asks why
// a call returned false.
type Engine interface {
	SetSurfaceSize(width, height int) bool
	PanTo(x, y int) bool
	PanByDelta(dx, dy int) bool
	Nudge(dir Direction) bool
	// ZoomIn zooms by steps levels. Anchored zoom keeps (x, y) visually
	// fixed; unanchored zoom re-centers the view on (x, y).
	ZoomIn(steps int, anchored bool, x, y int) bool
	ZoomOut(steps int, anchored bool, x, y int) bool
	ResetView() bool

	// RenderInto draws the current view. When it returns false the caller
	// fills the surface with BackgroundColor.
	RenderInto(surface *ebiten.Image) bool
	BackgroundColor() color.Color

	// DescribeParameters returns a one-line summary for the diagnostic
	// overlay.
	DescribeParameters() string

	SerializeState() string
	RestoreState(state string) error
}

// Animator is implemented by engines whose state also changes with time.
// Update advances by dt seconds and reports whether a redraw is needed.
type Animator interface {
	Update(dt float64) bool
}
