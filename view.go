package mapnav

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// overlayOffset is the distance in pixels of the diagnostic text from the
// top-left corner.
const overlayOffset = 25

// View is the host of one map surface. It implements ebiten.Game: Update
// polls input (or replays injected input) and drives a GestureCoordinator,
// Draw renders the engine into a cached surface when it changed, and Layout
// follows the window size.
type View struct {
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// ShowFPS prints the frame rate in the bottom-left corner.
	ShowFPS bool

	engine   Engine
	settings Settings
	coord    *GestureCoordinator
	input    *InputSource
	clock    func() int64
	poll     func(now int64)

	surface *ebiten.Image
	width   int
	height  int
	dirty   bool

	fps             fpsCounter
	injectQueue     []syntheticFrame
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewView returns a view driving engine with the given settings.
func NewView(engine Engine, settings Settings) *View {
	v := &View{
		ScreenshotDir: "screenshots",
		engine:        engine,
		settings:      settings,
		input:         NewInputSource(),
		dirty:         true,
	}
	v.clock = v.input.Now
	v.poll = v.processInput
	v.coord = NewGestureCoordinator(engine, settings, v.Invalidate)
	return v
}

// Coordinator returns the view's gesture coordinator.
func (v *View) Coordinator() *GestureCoordinator {
	return v.coord
}

// Engine returns the engine the view drives.
func (v *View) Engine() Engine {
	return v.engine
}

// Input returns the view's input source.
func (v *View) Input() *InputSource {
	return v.input
}

// SetDebugMode enables or disables "[mapnav]" logging to stderr.
func (v *View) SetDebugMode(enabled bool) {
	v.coord.SetDebugMode(enabled)
}

// SetDebugOutput directs debug logging to w.
func (v *View) SetDebugOutput(w io.Writer) {
	v.coord.SetDebugOutput(w)
}

// Invalidate marks the surface for re-rendering on the next Draw.
func (v *View) Invalidate() {
	v.dirty = true
}

// NeedsRedraw reports whether the next Draw re-renders the surface.
func (v *View) NeedsRedraw() bool {
	return v.dirty
}

// ResetView restores the engine's initial view.
func (v *View) ResetView() bool {
	return v.coord.ResetView()
}

// SaveState returns the engine's opaque view state.
func (v *View) SaveState() string {
	return v.engine.SerializeState()
}

// RestoreState restores a state returned by SaveState and redraws.
func (v *View) RestoreState(state string) error {
	if err := v.engine.RestoreState(state); err != nil {
		return err
	}
	v.Invalidate()
	return nil
}

// SaveStateFile writes the view state to an LZ4-compressed file.
func (v *View) SaveStateFile(path string) error {
	return SaveStateFile(path, v.engine, v.width, v.height)
}

// LoadStateFile restores a view state written by SaveStateFile.
func (v *View) LoadStateFile(path string) error {
	if err := LoadStateFile(path, v.engine); err != nil {
		return err
	}
	v.Invalidate()
	return nil
}

// Update implements ebiten.Game.
func (v *View) Update() error {
	v.step(v.clock(), 1.0/float64(ebiten.TPS()))
	return nil
}

// step runs one tick at time now (milliseconds). dt is the tick length in
// seconds, used for engine animation.
func (v *View) step(now int64, dt float64) {
	if v.testRunner != nil {
		v.testRunner.step(v)
	}

	if !v.processInjectedInput(now) {
		v.poll(now)
	}
	v.coord.Advance(now)

	if a, ok := v.engine.(Animator); ok && a.Update(dt) {
		v.Invalidate()
	}
}

// processInput polls real input and dispatches it.
func (v *View) processInput(now int64) {
	if !ebiten.IsFocused() {
		if ev, ok := v.input.Cancel(now); ok {
			v.coord.HandlePointer(ev)
		}
		return
	}
	events, keys := v.input.Poll()
	for _, ev := range events {
		v.coord.HandlePointer(ev)
	}
	for _, k := range keys {
		v.coord.HandleKey(k)
	}
	v.processClipboardKeys()
}

// Draw implements ebiten.Game.
func (v *View) Draw(screen *ebiten.Image) {
	if v.surface != nil {
		if v.dirty {
			if !v.engine.RenderInto(v.surface) {
				v.surface.Fill(v.engine.BackgroundColor())
			}
			v.dirty = false
		}
		screen.DrawImage(v.surface, nil)
	}
	if v.settings != nil && v.settings.DiagnosticOverlay() {
		ebitenutil.DebugPrintAt(screen, v.engine.DescribeParameters(), overlayOffset, overlayOffset)
	}
	if v.ShowFPS {
		v.fps.draw(screen)
	}
	v.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The surface always matches the window.
func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.width || outsideHeight != v.height {
		v.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// resize reports the new size to the engine. The surface is recreated only
// when the engine accepted the size, but a redraw is requested either way.
func (v *View) resize(width, height int) {
	v.width, v.height = width, height
	changed := v.coord.Resize(width, height)
	if width <= 0 || height <= 0 {
		return
	}
	if changed || v.surface == nil {
		if v.surface != nil {
			v.surface.Deallocate()
		}
		v.surface = ebiten.NewImage(width, height)
	}
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Debug enables "[mapnav]" logging to stderr.
	Debug bool
	// ShowFPS prints the frame rate in the bottom-left corner.
	ShowFPS bool
}

// Run opens a resizable window showing view and blocks until it closes.
func Run(view *View, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	view.SetDebugMode(cfg.Debug)
	view.ShowFPS = cfg.ShowFPS
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(view)
}
