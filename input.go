package mapnav

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// mousePointerID is the pointer ID used for the left mouse button, so a
// desktop mouse drives the same recognizers as a finger.
const mousePointerID = -1

// InputSource polls Ebitengine once per tick and turns the set of pressed
// touches and the left mouse button into an ordered pointer event stream.
type InputSource struct {
	// MouseEnabled makes the left mouse button act as a pointer.
	MouseEnabled bool

	start   time.Time
	down    []Pointer
	scratch []Pointer
	touches []ebiten.TouchID
	keys    []ebiten.Key
	events  []Event
}

// NewInputSource returns a source with the mouse enabled. Event times are
// milliseconds since the source was created.
func NewInputSource() *InputSource {
	return &InputSource{MouseEnabled: true, start: time.Now()}
}

// Now returns the current time on the source's clock.
func (in *InputSource) Now() int64 {
	return time.Since(in.start).Milliseconds()
}

// Poll reads the current input state and returns the pointer events and
// newly pressed keys since the previous call. The returned slices are
// reused by the next call.
func (in *InputSource) Poll() ([]Event, []ebiten.Key) {
	cur := in.scratch[:0]
	if in.MouseEnabled && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		cur = append(cur, Pointer{ID: mousePointerID, X: float64(mx), Y: float64(my)})
	}
	in.touches = ebiten.AppendTouchIDs(in.touches[:0])
	for _, tid := range in.touches {
		tx, ty := ebiten.TouchPosition(tid)
		cur = append(cur, Pointer{ID: int(tid), X: float64(tx), Y: float64(ty)})
	}
	in.scratch = cur

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	return in.Feed(cur, in.Now()), in.keys
}

// Feed replaces the set of down pointers with cur, as observed at now, and
// returns the resulting events. Poll uses it for real input; injected input
// goes through it too. The returned slice is reused by the next call.
func (in *InputSource) Feed(cur []Pointer, now int64) []Event {
	in.events, in.down = diffPointers(in.events[:0], in.down, cur, now)
	return in.events
}

// Cancel forgets the pointers currently believed to be down and returns a
// cancel event if there were any. Hosts call it when the window loses
// focus.
func (in *InputSource) Cancel(now int64) (Event, bool) {
	if len(in.down) == 0 {
		return Event{}, false
	}
	ev := newEvent(ActionCancel, 0, in.down, now)
	in.down = in.down[:0]
	return ev, true
}

// Down returns the pointers currently down, in down order.
func (in *InputSource) Down() []Pointer {
	return in.down
}

// diffPointers compares the pointers down before (prev) and now (cur) and
// appends the events that lead from one to the other: one move for any
// changed positions, then one lift per vanished pointer, then one down per
// new pointer. It returns the events and the new down list, which reuses
// prev's storage.
func diffPointers(events []Event, prev, cur []Pointer, now int64) ([]Event, []Pointer) {
	moved := false
	for i := range prev {
		if p, ok := findPointer(cur, prev[i].ID); ok && (p.X != prev[i].X || p.Y != prev[i].Y) {
			prev[i].X, prev[i].Y = p.X, p.Y
			moved = true
		}
	}
	if moved {
		events = append(events, newEvent(ActionMove, 0, prev, now))
	}

	for i := 0; i < len(prev); {
		if _, ok := findPointer(cur, prev[i].ID); ok {
			i++
			continue
		}
		action := ActionPointerUp
		if len(prev) == 1 {
			action = ActionUp
		}
		events = append(events, newEvent(action, i, prev, now))
		prev = append(prev[:i], prev[i+1:]...)
	}

	for _, p := range cur {
		if _, ok := findPointer(prev, p.ID); ok {
			continue
		}
		action := ActionPointerDown
		if len(prev) == 0 {
			action = ActionDown
		}
		prev = append(prev, p)
		events = append(events, newEvent(action, len(prev)-1, prev, now))
	}
	return events, prev
}

// newEvent copies ptrs so later changes to the down list do not leak into
// already emitted events.
func newEvent(action PointerAction, index int, ptrs []Pointer, now int64) Event {
	cp := make([]Pointer, len(ptrs))
	copy(cp, ptrs)
	return Event{Action: action, Index: index, Pointers: cp, Time: now}
}

func findPointer(ptrs []Pointer, id int) (Pointer, bool) {
	for _, p := range ptrs {
		if p.ID == id {
			return p, true
		}
	}
	return Pointer{}, false
}
