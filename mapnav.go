package mapnav

// PointerAction identifies what happened to the pointer set in an Event.
// The values follow the usual touch-screen motion model: the first pointer
// to touch produces ActionDown, every further pointer ActionPointerDown, and
// the last pointer to lift produces ActionUp.
type PointerAction uint8

const (
	ActionDown        PointerAction = iota // first pointer touched the surface
	ActionPointerDown                      // an additional pointer touched
	ActionMove                             // one or more down pointers moved
	ActionPointerUp                        // a pointer lifted, others remain down
	ActionUp                               // the last pointer lifted
	ActionCancel                           // the gesture was aborted by the host
)

// String returns a short name for the action.
func (a PointerAction) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionPointerDown:
		return "pointer-down"
	case ActionMove:
		return "move"
	case ActionPointerUp:
		return "pointer-up"
	case ActionUp:
		return "up"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Pointer is the position of one down pointer inside an Event.
type Pointer struct {
	ID   int
	X, Y float64
}

// Event is one raw pointer event. Pointers lists every pointer that is down
// during the event (including the one going up on ActionUp/ActionPointerUp)
// in the order they went down. Index is the position in Pointers of the
// pointer the action refers to. Time is a monotonic timestamp in milliseconds.
type Event struct {
	Action   PointerAction
	Index    int
	Pointers []Pointer
	Time     int64
}

// X returns the x coordinate of the first pointer, or 0 if there is none.
func (e Event) X() float64 {
	if len(e.Pointers) == 0 {
		return 0
	}
	return e.Pointers[0].X
}

// Y returns the y coordinate of the first pointer, or 0 if there is none.
func (e Event) Y() float64 {
	if len(e.Pointers) == 0 {
		return 0
	}
	return e.Pointers[0].Y
}

// pointerAt returns the pointer at index i, if the event carries one.
func (e Event) pointerAt(i int) (Pointer, bool) {
	if i < 0 || i >= len(e.Pointers) {
		return Pointer{}, false
	}
	return e.Pointers[i], true
}

// Direction is a cardinal direction for a nudge command.
type Direction uint8

const (
	DirectionUnknown Direction = iota // never sent to an engine
	North
	East
	South
	West
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Recognizer consumes the ordered pointer event stream of one surface.
// Handle reports whether the recognizer considered the event handled; the
// result is only used for aggregation and never stops delivery to peers.
// Reset returns the recognizer to its initial state.
type Recognizer interface {
	Handle(ev Event) bool
	Reset()
}

// Settings is the read-only configuration consulted on every dispatch.
type Settings interface {
	// ExtraGesturesEnabled gates drag-to-pan and pinch-to-zoom.
	ExtraGesturesEnabled() bool
	// DiagnosticOverlay reports whether the engine parameters are drawn
	// over the map.
	DiagnosticOverlay() bool
}

// StaticSettings is a fixed Settings value.
type StaticSettings struct {
	ExtraGestures bool
	Overlay       bool
}

func (s StaticSettings) ExtraGesturesEnabled() bool { return s.ExtraGestures }
func (s StaticSettings) DiagnosticOverlay() bool    { return s.Overlay }
