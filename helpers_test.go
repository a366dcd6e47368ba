package mapnav

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// recordEngine is an Engine that logs every call. Navigation calls return
// changed unless noChange is set.
type recordEngine struct {
	calls    []string
	noChange bool
	width    int
	height   int
	state    string
}

func (e *recordEngine) record(format string, args ...any) bool {
	e.calls = append(e.calls, fmt.Sprintf(format, args...))
	return !e.noChange
}

func (e *recordEngine) SetSurfaceSize(width, height int) bool {
	changed := width != e.width || height != e.height
	e.width, e.height = width, height
	e.calls = append(e.calls, fmt.Sprintf("SetSurfaceSize(%d, %d)", width, height))
	return changed
}

func (e *recordEngine) PanTo(x, y int) bool {
	return e.record("PanTo(%d, %d)", x, y)
}

func (e *recordEngine) PanByDelta(dx, dy int) bool {
	return e.record("PanByDelta(%d, %d)", dx, dy)
}

func (e *recordEngine) Nudge(dir Direction) bool {
	return e.record("Nudge(%s)", dir)
}

func (e *recordEngine) ZoomIn(steps int, anchored bool, x, y int) bool {
	return e.record("ZoomIn(%d, %t, %d, %d)", steps, anchored, x, y)
}

func (e *recordEngine) ZoomOut(steps int, anchored bool, x, y int) bool {
	return e.record("ZoomOut(%d, %t, %d, %d)", steps, anchored, x, y)
}

func (e *recordEngine) ResetView() bool {
	return e.record("ResetView()")
}

func (e *recordEngine) RenderInto(*ebiten.Image) bool { return false }
func (e *recordEngine) BackgroundColor() color.Color  { return color.Black }
func (e *recordEngine) DescribeParameters() string    { return "record" }
func (e *recordEngine) SerializeState() string        { return e.state }

func (e *recordEngine) RestoreState(state string) error {
	e.state = state
	return nil
}

// navCalls returns the recorded calls other than SetSurfaceSize.
func (e *recordEngine) navCalls() []string {
	var out []string
	for _, c := range e.calls {
		if strings.HasPrefix(c, "SetSurfaceSize") {
			continue
		}
		out = append(out, c)
	}
	return out
}

// commandLog collects commands emitted to a CommandSink.
type commandLog []Command

func (l *commandLog) Emit(cmd Command) { *l = append(*l, cmd) }

func (l commandLog) strings() []string {
	out := make([]string, len(l))
	for i, c := range l {
		out[i] = c.String()
	}
	return out
}

// ---- Event builders --------------------------------------------------------

func pt(id int, x, y float64) Pointer {
	return Pointer{ID: id, X: x, Y: y}
}

func ev(action PointerAction, index int, t int64, ptrs ...Pointer) Event {
	return Event{Action: action, Index: index, Pointers: ptrs, Time: t}
}

func down(t int64, x, y float64) Event {
	return ev(ActionDown, 0, t, pt(0, x, y))
}

func up(t int64, x, y float64) Event {
	return ev(ActionUp, 0, t, pt(0, x, y))
}

func move(t int64, x, y float64) Event {
	return ev(ActionMove, 0, t, pt(0, x, y))
}

// twoFingerTap returns the five-event stream of a two-finger tap with both
// pointers at rest, pointer 0 at (x0, y0) and pointer 1 at (x1, y1).
func twoFingerTap(t0 int64, x0, y0, x1, y1 float64) []Event {
	p0, p1 := pt(0, x0, y0), pt(1, x1, y1)
	return []Event{
		ev(ActionDown, 0, t0, p0),
		ev(ActionPointerDown, 1, t0+10, p0, p1),
		ev(ActionMove, 0, t0+20, p0, p1),
		ev(ActionPointerUp, 1, t0+30, p0, p1),
		ev(ActionUp, 0, t0+40, p0),
	}
}
