package mapnav

import (
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	_ Recognizer = (*TwoFingerTapDetector)(nil)
	_ Recognizer = (*PrimaryGestureRouter)(nil)
	_ Recognizer = (*ScalePipeline)(nil)
)

// GestureCoordinator feeds every raw event to the recognizers of one surface
// and forwards the commands they produce to the engine.
//
// Dispatch order is fixed: the two-finger tap detector first, since it needs
// an uninterrupted view of the stream, then the primary router, then the
// pinch pipeline when extra gestures are enabled. Every recognizer sees every
// event; consumed is the OR of their results. All commands produced during
// one dispatch reach the engine in that order, and at most one redraw is
// requested per dispatch.
//
// A GestureCoordinator is not safe for concurrent use.
type GestureCoordinator struct {
	engine   Engine
	settings Settings
	redraw   func()

	twoFinger *TwoFingerTapDetector
	router    *PrimaryGestureRouter
	scale     *ScalePipeline

	pending      []Command
	width        int
	height       int
	scaleEnabled bool
	log          debugLogger
}

// NewGestureCoordinator returns a coordinator driving engine. settings is
// read on every dispatch. redraw is called once after any dispatch in which
// the engine reported a change; it may be nil.
func NewGestureCoordinator(engine Engine, settings Settings, redraw func()) *GestureCoordinator {
	if settings == nil {
		settings = StaticSettings{}
	}
	c := &GestureCoordinator{
		engine:   engine,
		settings: settings,
		redraw:   redraw,
	}
	sink := CommandFunc(c.enqueue)
	c.twoFinger = NewTwoFingerTapDetector(c.onTwoFingerTap)
	c.twoFinger.log = &c.log
	c.router = NewPrimaryGestureRouter(sink, settings)
	c.router.log = &c.log
	c.scale = NewScalePipeline(sink, c.SurfaceSize)
	c.scale.log = &c.log
	return c
}

// SetDebugMode enables or disables logging of applied commands and
// recognizer resets to stderr.
func (c *GestureCoordinator) SetDebugMode(enabled bool) {
	if enabled {
		c.log.w = os.Stderr
	} else {
		c.log.w = nil
	}
}

// SetDebugOutput directs debug logging to w. A nil w disables it.
func (c *GestureCoordinator) SetDebugOutput(w io.Writer) {
	c.log.w = w
}

// HandlePointer dispatches one pointer event and reports whether any
// recognizer consumed it.
func (c *GestureCoordinator) HandlePointer(ev Event) bool {
	consumed := c.twoFinger.Handle(ev)
	if c.router.Handle(ev) {
		consumed = true
	}
	if c.extraGestures() {
		if c.scale.Handle(ev) {
			consumed = true
		}
	}
	c.flush()
	return consumed
}

// HandleKey dispatches a key press. Directional keys become nudges and
// bypass the touch recognizers; other keys are not consumed.
func (c *GestureCoordinator) HandleKey(key ebiten.Key) bool {
	consumed := c.router.HandleKey(key)
	c.flush()
	return consumed
}

// Advance lets timed decisions settle at time now (milliseconds, same clock
// as Event.Time). A single tap is only confirmed once its double-tap window
// closed, so hosts call this every frame.
func (c *GestureCoordinator) Advance(now int64) bool {
	emitted := c.router.Advance(now)
	c.flush()
	return emitted
}

// Resize tells the engine about a new surface size. It returns the engine's
// result and always requests a redraw.
func (c *GestureCoordinator) Resize(width, height int) bool {
	c.width, c.height = width, height
	changed := c.engine.SetSurfaceSize(width, height)
	c.log.printf("resize %dx%d changed=%t", width, height, changed)
	c.requestRedraw()
	return changed
}

// SurfaceSize returns the size last passed to Resize.
func (c *GestureCoordinator) SurfaceSize() (int, int) {
	return c.width, c.height
}

// ResetView restores the engine's initial view.
func (c *GestureCoordinator) ResetView() bool {
	c.enqueue(ResetView())
	return c.flush()
}

// Reset returns every recognizer to its initial state.
func (c *GestureCoordinator) Reset() {
	c.twoFinger.Reset()
	c.router.Reset()
	c.scale.Reset()
	c.pending = c.pending[:0]
}

// TwoFingerTapState exposes the detector state for hosts and tests.
func (c *GestureCoordinator) TwoFingerTapState() TapState {
	return c.twoFinger.State()
}

// PinchInProgress reports whether a pinch session is open.
func (c *GestureCoordinator) PinchInProgress() bool {
	return c.scale.InProgress()
}

// onTwoFingerTap zooms out one step, re-centering on the first pointer.
func (c *GestureCoordinator) onTwoFingerTap(ev Event) bool {
	c.enqueue(ZoomOut(1, false, int(ev.X()), int(ev.Y())))
	return true
}

// extraGestures reads the setting and abandons a pinch when it was just
// turned off, so a later re-enable never resumes a stale session.
func (c *GestureCoordinator) extraGestures() bool {
	enabled := c.settings.ExtraGesturesEnabled()
	if !enabled && c.scaleEnabled {
		c.scale.Reset()
	}
	c.scaleEnabled = enabled
	return enabled
}

func (c *GestureCoordinator) enqueue(cmd Command) {
	c.pending = append(c.pending, cmd)
}

// flush applies pending commands in order and requests one redraw if any of
// them changed the engine state.
func (c *GestureCoordinator) flush() bool {
	if len(c.pending) == 0 {
		return false
	}
	changed := false
	for _, cmd := range c.pending {
		ok := cmd.Apply(c.engine)
		c.log.printf("command %s changed=%t", cmd, ok)
		if ok {
			changed = true
		}
	}
	c.pending = c.pending[:0]
	if changed {
		c.requestRedraw()
	}
	return changed
}

func (c *GestureCoordinator) requestRedraw() {
	if c.redraw != nil {
		c.redraw()
	}
}
