package mapnav

import "github.com/hajimehoshi/ebiten/v2"

// Single-pointer gesture limits. Distances are pixels, times milliseconds.
const (
	TouchSlop        = 8.0   // movement that turns a touch into a scroll
	DoubleTapSlop    = 100.0 // max distance between the two taps of a double tap
	DoubleTapTimeout = 300   // tap confirmation delay, from the tap's down
	DoubleTapMinTime = 40    // min gap between first up and second down
	LongPressTimeout = 500   // touches held longer are not taps
)

// pendingTap is a completed tap waiting to see whether a second one follows.
type pendingTap struct {
	x, y     float64
	upTime   int64
	deadline int64
}

// PrimaryGestureRouter recognizes single taps, double taps and scrolls and
// maps them to navigation commands:
//
//   - single tap confirmed: PanTo at the tap
//   - double tap: unanchored ZoomIn(1) at the first tap
//   - scroll: PanByDelta, only while extra gestures are enabled
//
// Directional keys are handled separately by HandleKey.
type PrimaryGestureRouter struct {
	sink     CommandSink
	settings Settings
	log      *debugLogger

	stillDown     bool
	inTapRegion   bool
	scrolling     bool
	doubleTapping bool
	downX, downY  float64
	downTime      int64

	downFocusX, downFocusY float64
	lastFocusX, lastFocusY float64

	pending    pendingTap
	hasPending bool
}

// NewPrimaryGestureRouter returns a router emitting to sink. settings is
// consulted on every scroll.
func NewPrimaryGestureRouter(sink CommandSink, settings Settings) *PrimaryGestureRouter {
	return &PrimaryGestureRouter{sink: sink, settings: settings}
}

// Handle feeds one pointer event to the router.
func (r *PrimaryGestureRouter) Handle(ev Event) bool {
	r.Advance(ev.Time)

	switch ev.Action {
	case ActionDown:
		return r.onDown(ev)
	case ActionPointerDown:
		r.cancelTaps()
		r.rebaseFocus(ev.Pointers)
	case ActionPointerUp:
		r.rebaseFocus(remainingPointers(ev))
	case ActionMove:
		return r.onMove(ev)
	case ActionUp:
		return r.onUp(ev)
	case ActionCancel:
		r.Reset()
	}
	return false
}

// Advance confirms a pending single tap whose double-tap window closed
// before now. It reports whether a command was emitted.
func (r *PrimaryGestureRouter) Advance(now int64) bool {
	if !r.hasPending || r.stillDown || now <= r.pending.deadline {
		return false
	}
	r.confirmPending()
	return true
}

// HandleKey maps the arrow keys to nudges. Other keys are not consumed.
func (r *PrimaryGestureRouter) HandleKey(key ebiten.Key) bool {
	dir := directionForKey(key)
	if dir == DirectionUnknown {
		return false
	}
	r.emit(Nudge(dir))
	return true
}

// Reset forgets the current touch and any pending tap.
func (r *PrimaryGestureRouter) Reset() {
	r.stillDown = false
	r.inTapRegion = false
	r.scrolling = false
	r.doubleTapping = false
	r.hasPending = false
	r.pending = pendingTap{}
}

func (r *PrimaryGestureRouter) onDown(ev Event) bool {
	p, ok := ev.pointerAt(0)
	if !ok {
		r.log.printf("router: down without pointer at t=%d", ev.Time)
		r.Reset()
		return false
	}

	if r.hasPending {
		if r.isDoubleTap(p, ev.Time) {
			x, y := int(r.pending.x), int(r.pending.y)
			r.hasPending = false
			r.stillDown = true
			r.doubleTapping = true
			r.inTapRegion = false
			r.scrolling = false
			r.emit(ZoomIn(1, false, x, y))
			return true
		}
		r.confirmPending()
	}

	r.stillDown = true
	r.inTapRegion = true
	r.scrolling = false
	r.doubleTapping = false
	r.downX, r.downY = p.X, p.Y
	r.downTime = ev.Time
	r.rebaseFocus(ev.Pointers)
	return false
}

func (r *PrimaryGestureRouter) onMove(ev Event) bool {
	if !r.stillDown || r.doubleTapping {
		return false
	}
	fx, fy, ok := focusOf(ev.Pointers)
	if !ok {
		return false
	}
	dx := r.lastFocusX - fx
	dy := r.lastFocusY - fy

	if r.inTapRegion {
		ox := fx - r.downFocusX
		oy := fy - r.downFocusY
		if ox*ox+oy*oy <= TouchSlop*TouchSlop {
			return false
		}
		r.inTapRegion = false
		r.scrolling = true
	} else if !r.scrolling || (abs(dx) < 1 && abs(dy) < 1) {
		return false
	}

	r.lastFocusX, r.lastFocusY = fx, fy
	return r.scroll(dx, dy)
}

func (r *PrimaryGestureRouter) onUp(ev Event) bool {
	wasTap := r.stillDown && r.inTapRegion && !r.doubleTapping &&
		ev.Time-r.downTime < LongPressTimeout
	r.stillDown = false
	r.scrolling = false
	r.doubleTapping = false
	r.inTapRegion = false
	if !wasTap {
		return false
	}

	deadline := r.downTime + DoubleTapTimeout
	r.pending = pendingTap{x: r.downX, y: r.downY, upTime: ev.Time, deadline: deadline}
	r.hasPending = true
	if ev.Time > deadline {
		// Too late for a double tap: the lift confirms the tap where it happened.
		if p, ok := ev.pointerAt(ev.Index); ok {
			r.pending.x, r.pending.y = p.X, p.Y
		}
		r.confirmPending()
	}
	return true
}

// scroll reports a drag of (dx, dy), measured as previous focus minus
// current focus.
func (r *PrimaryGestureRouter) scroll(dx, dy float64) bool {
	if r.settings == nil || !r.settings.ExtraGesturesEnabled() {
		return false
	}
	r.emit(PanByDelta(int(dx), int(dy)))
	return true
}

func (r *PrimaryGestureRouter) isDoubleTap(p Pointer, now int64) bool {
	if now > r.pending.deadline || now-r.pending.upTime < DoubleTapMinTime {
		return false
	}
	dx := p.X - r.pending.x
	dy := p.Y - r.pending.y
	return dx*dx+dy*dy <= DoubleTapSlop*DoubleTapSlop
}

func (r *PrimaryGestureRouter) confirmPending() {
	r.hasPending = false
	r.emit(PanTo(int(r.pending.x), int(r.pending.y)))
}

// cancelTaps runs when a second pointer lands: neither the current touch
// nor a pending tap can become a tap any more.
func (r *PrimaryGestureRouter) cancelTaps() {
	r.inTapRegion = false
	r.doubleTapping = false
	r.hasPending = false
	if r.stillDown {
		r.scrolling = true
	}
}

func (r *PrimaryGestureRouter) rebaseFocus(ptrs []Pointer) {
	fx, fy, ok := focusOf(ptrs)
	if !ok {
		return
	}
	r.downFocusX, r.downFocusY = fx, fy
	r.lastFocusX, r.lastFocusY = fx, fy
}

func (r *PrimaryGestureRouter) emit(cmd Command) {
	if r.sink != nil {
		r.sink.Emit(cmd)
	}
}

// focusOf returns the average position of ptrs.
func focusOf(ptrs []Pointer) (x, y float64, ok bool) {
	if len(ptrs) == 0 {
		return 0, 0, false
	}
	for _, p := range ptrs {
		x += p.X
		y += p.Y
	}
	n := float64(len(ptrs))
	return x / n, y / n, true
}

func directionForKey(key ebiten.Key) Direction {
	switch key {
	case ebiten.KeyArrowUp:
		return North
	case ebiten.KeyArrowRight:
		return East
	case ebiten.KeyArrowDown:
		return South
	case ebiten.KeyArrowLeft:
		return West
	default:
		return DirectionUnknown
	}
}
