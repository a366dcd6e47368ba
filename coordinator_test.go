package mapnav

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// mutableSettings lets a test flip settings between events.
type mutableSettings struct {
	extra bool
}

func (s *mutableSettings) ExtraGesturesEnabled() bool { return s.extra }
func (s *mutableSettings) DiagnosticOverlay() bool    { return false }

func newTestCoordinator(settings Settings) (*GestureCoordinator, *recordEngine, *int) {
	engine := &recordEngine{}
	redraws := new(int)
	c := NewGestureCoordinator(engine, settings, func() { *redraws++ })
	return c, engine, redraws
}

func expectCalls(t *testing.T, engine *recordEngine, want ...string) {
	t.Helper()
	got := engine.navCalls()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !slices.Equal(got, want) {
		t.Errorf("engine calls = %v, want %v", got, want)
	}
}

func TestCoordinatorTapWithExtrasDisabled(t *testing.T) {
	c, engine, redraws := newTestCoordinator(StaticSettings{})
	c.HandlePointer(down(0, 10, 20))
	c.HandlePointer(up(40, 10, 20))
	c.Advance(DoubleTapTimeout + 1)
	expectCalls(t, engine, "PanTo(10, 20)")
	if *redraws != 1 {
		t.Errorf("redraws = %d, want 1", *redraws)
	}

	// A later drag produces nothing.
	c.HandlePointer(down(1000, 10, 20))
	for i := int64(1); i <= 10; i++ {
		c.HandlePointer(move(1000+i*16, 10+float64(i)*20, 20+float64(i)*5))
	}
	c.HandlePointer(up(1200, 210, 70))
	c.Advance(3000)
	expectCalls(t, engine, "PanTo(10, 20)")
}

func TestCoordinatorNudgeKey(t *testing.T) {
	c, engine, redraws := newTestCoordinator(nil)
	if !c.HandleKey(ebiten.KeyArrowDown) {
		t.Error("arrow key should be consumed")
	}
	expectCalls(t, engine, "Nudge(South)")
	if *redraws != 1 {
		t.Errorf("redraws = %d, want 1", *redraws)
	}
	if c.HandleKey(ebiten.KeyQ) {
		t.Error("non-directional key should not be consumed")
	}
}

func TestCoordinatorNudgeKeyDuringTouch(t *testing.T) {
	c, engine, _ := newTestCoordinator(StaticSettings{ExtraGestures: true})
	c.Resize(1000, 500)
	p0, p1 := pt(0, 100, 200), pt(1, 300, 200)

	c.HandlePointer(ev(ActionDown, 0, 0, p0))
	if !c.HandleKey(ebiten.KeyArrowDown) {
		t.Error("arrow key should be consumed during a touch")
	}
	if c.TwoFingerTapState() != WaitForSecondDown {
		t.Errorf("key changed detector state to %s", c.TwoFingerTapState())
	}

	c.HandlePointer(ev(ActionPointerDown, 1, 10, p0, p1))
	c.HandleKey(ebiten.KeyArrowDown)
	if c.TwoFingerTapState() != WaitForFirstUp {
		t.Errorf("key changed detector state to %s", c.TwoFingerTapState())
	}
	if !c.scale.armed || c.PinchInProgress() {
		t.Error("key changed the pinch state")
	}

	c.HandlePointer(ev(ActionPointerUp, 1, 20, p0, p1))
	c.HandlePointer(ev(ActionUp, 0, 30, p0))
	c.Advance(5000)
	expectCalls(t, engine, "Nudge(South)", "Nudge(South)", "ZoomOut(1, false, 100, 200)")
}

func TestCoordinatorTwoFingerTapZoomsOut(t *testing.T) {
	c, engine, _ := newTestCoordinator(StaticSettings{ExtraGestures: true})
	var consumed bool
	for _, e := range twoFingerTap(0, 100, 200, 160, 200) {
		consumed = c.HandlePointer(e)
	}
	if !consumed {
		t.Error("event completing a two-finger tap should be consumed")
	}
	c.Advance(5000)
	expectCalls(t, engine, "ZoomOut(1, false, 100, 200)")
	if c.TwoFingerTapState() != WaitForFirstDown {
		t.Errorf("state = %s, want WaitForFirstDown", c.TwoFingerTapState())
	}
}

func TestCoordinatorJitteredTwoFingerTapZoomsOutOnce(t *testing.T) {
	c, engine, _ := newTestCoordinator(StaticSettings{ExtraGestures: true})
	c.Resize(1000, 500)
	p0 := pt(0, 100, 200)
	p1, p1moved := pt(1, 300, 200), pt(1, 299, 200)

	c.HandlePointer(ev(ActionDown, 0, 0, p0))
	c.HandlePointer(ev(ActionPointerDown, 1, 10, p0, p1))
	c.HandlePointer(ev(ActionMove, 0, 20, p0, p1moved))
	c.HandlePointer(ev(ActionPointerUp, 1, 30, p0, p1moved))
	c.HandlePointer(ev(ActionUp, 0, 40, p0))
	c.Advance(5000)

	expectCalls(t, engine, "ZoomOut(1, false, 100, 200)")
	if c.PinchInProgress() {
		t.Error("a two-finger tap should never open a pinch")
	}
}

func TestCoordinatorDoubleTap(t *testing.T) {
	c, engine, _ := newTestCoordinator(StaticSettings{})
	c.HandlePointer(down(0, 50, 60))
	c.HandlePointer(up(30, 50, 60))
	c.HandlePointer(down(100, 52, 61))
	c.HandlePointer(up(130, 52, 61))
	c.Advance(1000)
	expectCalls(t, engine, "ZoomIn(1, false, 50, 60)")
}

func TestCoordinatorPinch(t *testing.T) {
	c, engine, redraws := newTestCoordinator(StaticSettings{ExtraGestures: true})
	c.Resize(1000, 500)
	*redraws = 0

	c.HandlePointer(pinchEvent(ActionDown, 0, 0, 200))
	c.HandlePointer(pinchEvent(ActionPointerDown, 1, 10, 200))
	c.HandlePointer(pinchEvent(ActionMove, 0, 15, 220))
	if !c.PinchInProgress() {
		t.Fatal("pinch should be in progress")
	}
	c.HandlePointer(pinchEvent(ActionMove, 0, 20, 360))
	c.HandlePointer(pinchEvent(ActionMove, 0, 30, 540))
	c.HandlePointer(pinchEvent(ActionPointerUp, 1, 40, 170))
	c.HandlePointer(ev(ActionUp, 0, 50, pt(0, 415, 250)))
	c.Advance(5000)

	expectCalls(t, engine,
		"ZoomIn(1, true, 500, 250)",
		"ZoomIn(2, true, 500, 250)",
		"ZoomOut(4, true, 500, 250)")
	if *redraws != 3 {
		t.Errorf("redraws = %d, want 3", *redraws)
	}
}

func TestCoordinatorPinchIgnoredWhenDisabled(t *testing.T) {
	c, engine, _ := newTestCoordinator(StaticSettings{})
	c.Resize(1000, 500)
	c.HandlePointer(pinchEvent(ActionDown, 0, 0, 200))
	c.HandlePointer(pinchEvent(ActionPointerDown, 1, 10, 200))
	c.HandlePointer(pinchEvent(ActionMove, 0, 20, 600))
	if c.PinchInProgress() {
		t.Error("pinch should not start with extra gestures off")
	}
	expectCalls(t, engine)
}

func TestCoordinatorDisablingExtrasResetsPinch(t *testing.T) {
	settings := &mutableSettings{extra: true}
	c, engine, _ := newTestCoordinator(settings)
	c.Resize(1000, 500)
	c.HandlePointer(pinchEvent(ActionDown, 0, 0, 200))
	c.HandlePointer(pinchEvent(ActionPointerDown, 1, 10, 200))
	c.HandlePointer(pinchEvent(ActionMove, 0, 15, 250))
	if !c.PinchInProgress() {
		t.Fatal("pinch should be in progress")
	}

	settings.extra = false
	c.HandlePointer(pinchEvent(ActionMove, 0, 20, 300))
	if c.PinchInProgress() {
		t.Fatal("turning extra gestures off should abandon the pinch")
	}

	settings.extra = true
	c.HandlePointer(pinchEvent(ActionMove, 0, 30, 700))
	if c.PinchInProgress() {
		t.Error("re-enabling must not resume the old pinch")
	}
	expectCalls(t, engine)
}

func TestCoordinatorAppliesInEmissionOrderWithOneRedraw(t *testing.T) {
	c, engine, redraws := newTestCoordinator(StaticSettings{})
	c.HandlePointer(down(0, 10, 10))
	c.HandlePointer(up(20, 10, 10))
	*redraws = 0

	// Commands already queued are applied before the tap confirmed by the
	// next down, all in one flush.
	c.enqueue(PanTo(1, 2))
	c.enqueue(ZoomIn(1, false, 3, 4))
	c.HandlePointer(down(1000, 500, 500))

	expectCalls(t, engine, "PanTo(1, 2)", "ZoomIn(1, false, 3, 4)", "PanTo(10, 10)")
	if *redraws != 1 {
		t.Errorf("redraws = %d, want 1", *redraws)
	}
}

func TestCoordinatorNoRedrawWithoutChange(t *testing.T) {
	c, engine, redraws := newTestCoordinator(StaticSettings{})
	engine.noChange = true
	c.HandleKey(ebiten.KeyArrowLeft)
	expectCalls(t, engine, "Nudge(West)")
	if *redraws != 0 {
		t.Errorf("redraws = %d, want 0 when the engine reports no change", *redraws)
	}
}

func TestCoordinatorResize(t *testing.T) {
	c, engine, redraws := newTestCoordinator(StaticSettings{})
	if !c.Resize(800, 600) {
		t.Error("first resize should change the engine")
	}
	if c.Resize(800, 600) {
		t.Error("same size should not change the engine")
	}
	if *redraws != 2 {
		t.Errorf("redraws = %d, want 2 (resize always redraws)", *redraws)
	}
	if w, h := c.SurfaceSize(); w != 800 || h != 600 {
		t.Errorf("SurfaceSize = %dx%d", w, h)
	}
	if engine.width != 800 || engine.height != 600 {
		t.Errorf("engine size = %dx%d", engine.width, engine.height)
	}
}

func TestCoordinatorResetView(t *testing.T) {
	c, engine, redraws := newTestCoordinator(StaticSettings{})
	if !c.ResetView() {
		t.Error("ResetView should report the engine change")
	}
	expectCalls(t, engine, "ResetView()")
	if *redraws != 1 {
		t.Errorf("redraws = %d, want 1", *redraws)
	}
}

func TestCoordinatorReset(t *testing.T) {
	c, engine, _ := newTestCoordinator(StaticSettings{ExtraGestures: true})
	c.HandlePointer(pinchEvent(ActionDown, 0, 0, 200))
	c.HandlePointer(pinchEvent(ActionPointerDown, 1, 10, 200))
	c.HandlePointer(pinchEvent(ActionMove, 0, 15, 250))
	c.Reset()
	if c.PinchInProgress() || c.TwoFingerTapState() != WaitForFirstDown {
		t.Error("Reset should return every recognizer to idle")
	}
	c.Advance(5000)
	expectCalls(t, engine)
}

func TestCoordinatorDebugOutput(t *testing.T) {
	c, _, _ := newTestCoordinator(StaticSettings{})
	var buf bytes.Buffer
	c.SetDebugOutput(&buf)
	c.HandleKey(ebiten.KeyArrowUp)
	c.HandlePointer(down(0, 1, 1))
	c.HandlePointer(down(10, 1, 1))

	out := buf.String()
	if !strings.Contains(out, "[mapnav] command Nudge(North) changed=true") {
		t.Errorf("missing command log in %q", out)
	}
	if !strings.Contains(out, "two-finger tap reset") {
		t.Errorf("missing recognizer reset log in %q", out)
	}

	buf.Reset()
	c.SetDebugOutput(nil)
	c.HandleKey(ebiten.KeyArrowUp)
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}
