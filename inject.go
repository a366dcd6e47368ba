package mapnav

import "github.com/hajimehoshi/ebiten/v2"

// Pointer IDs used by injected input. They never collide with the mouse
// pointer or Ebitengine touch IDs seen in practice.
const (
	injectPointerID0 = 1 << 20
	injectPointerID1 = injectPointerID0 + 1
)

// syntheticFrame is one tick of injected input: the complete set of pointers
// held down during the tick, plus an optional key press.
type syntheticFrame struct {
	pointers []Pointer
	key      ebiten.Key
	hasKey   bool
}

func touchAt(id int, x, y float64) Pointer {
	return Pointer{ID: id, X: x, Y: y}
}

// InjectPress queues a tick with one pointer down at (x, y).
func (v *View) InjectPress(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticFrame{
		pointers: []Pointer{touchAt(injectPointerID0, x, y)},
	})
}

// InjectRelease queues a tick with no pointer down.
func (v *View) InjectRelease() {
	v.injectQueue = append(v.injectQueue, syntheticFrame{})
}

// InjectTap queues a press and a release at (x, y). Consumes two ticks.
func (v *View) InjectTap(x, y float64) {
	v.InjectPress(x, y)
	v.InjectRelease()
}

// InjectDoubleTap queues two taps at (x, y) separated by two idle ticks, so
// the gap between them clears DoubleTapMinTime at 60 ticks per second.
func (v *View) InjectDoubleTap(x, y float64) {
	v.InjectTap(x, y)
	v.InjectRelease()
	v.InjectRelease()
	v.InjectTap(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2
// linearly interpolated moves, and release after reaching (toX, toY).
// Minimum frames is 3 (press, move to target, release).
func (v *View) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	v.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		v.InjectPress(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	v.InjectRelease()
}

// InjectTwoFingerTap queues two pointers landing around (x, y) on the same
// tick and lifting on the next.
func (v *View) InjectTwoFingerTap(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticFrame{
		pointers: []Pointer{
			touchAt(injectPointerID0, x-20, y),
			touchAt(injectPointerID1, x+20, y),
		},
	})
	v.InjectRelease()
}

// InjectPinch queues a horizontal pinch centered on (x, y) whose span goes
// from fromSpan to toSpan over frames ticks, followed by a release.
func (v *View) InjectPinch(x, y, fromSpan, toSpan float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		half := (fromSpan + (toSpan-fromSpan)*t) / 2
		v.injectQueue = append(v.injectQueue, syntheticFrame{
			pointers: []Pointer{
				touchAt(injectPointerID0, x-half, y),
				touchAt(injectPointerID1, x+half, y),
			},
		})
	}
	v.InjectRelease()
}

// InjectKey queues a tick in which key is pressed.
func (v *View) InjectKey(key ebiten.Key) {
	v.injectQueue = append(v.injectQueue, syntheticFrame{key: key, hasKey: true})
}

// processInjectedInput pops one tick of injected input and dispatches it
// exactly like real input. It reports whether a tick was consumed, in which
// case real input is skipped.
func (v *View) processInjectedInput(now int64) bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	frame := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	if frame.hasKey {
		v.coord.HandleKey(frame.key)
		return true
	}
	for _, ev := range v.input.Feed(frame.pointers, now) {
		v.coord.HandlePointer(ev)
	}
	return true
}
