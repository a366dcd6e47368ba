package mapnav

// Two-finger tap limits. Movement is measured per axis from each pointer's
// down position; duration from the first pointer's down to the current event.
const (
	TwoFingerMovementTolerance = 20.0 // pixels
	TwoFingerDurationTolerance = 250  // milliseconds
)

// TapState is the state of a TwoFingerTapDetector.
type TapState uint8

const (
	WaitForFirstDown TapState = iota
	WaitForSecondDown
	WaitForFirstUp
	WaitForSecondUp
)

func (s TapState) String() string {
	switch s {
	case WaitForFirstDown:
		return "WaitForFirstDown"
	case WaitForSecondDown:
		return "WaitForSecondDown"
	case WaitForFirstUp:
		return "WaitForFirstUp"
	case WaitForSecondUp:
		return "WaitForSecondUp"
	default:
		return "TapState(?)"
	}
}

// tapEffect is the side effect a transition asks the detector to perform.
type tapEffect uint8

const (
	effectReset         tapEffect = iota // drop the candidate and the event
	effectRecordFirst                    // remember pointer 0, start the timer
	effectRecordSecond                   // remember pointer 1
	effectCheckMovement                  // stay, unless a pointer moved too far
	effectFirstUp                        // accept the first lift
	effectDetect                         // second lift completes the gesture
)

// nextTapState is the transition table of the two-finger tap state machine.
// Any action that is not the expected one for the state resets.
func nextTapState(s TapState, a PointerAction) (TapState, tapEffect) {
	switch a {
	case ActionDown:
		if s == WaitForFirstDown {
			return WaitForSecondDown, effectRecordFirst
		}
	case ActionPointerDown:
		if s == WaitForSecondDown {
			return WaitForFirstUp, effectRecordSecond
		}
	case ActionPointerUp, ActionUp:
		switch s {
		case WaitForFirstUp:
			return WaitForSecondUp, effectFirstUp
		case WaitForSecondUp:
			return WaitForFirstDown, effectDetect
		}
	case ActionMove:
		return s, effectCheckMovement
	}
	return WaitForFirstDown, effectReset
}

// TwoFingerTapDetector recognizes two pointers touching and lifting in quick
// succession without moving. It must see every event of the stream.
// The zero value is not usable; create one with NewTwoFingerTapDetector.
type TwoFingerTapDetector struct {
	listener func(Event) bool
	state    TapState
	start    int64
	tracker  PointerTracker
	ids      [2]int
	log      *debugLogger
}

// NewTwoFingerTapDetector returns a detector that calls onTap with the event
// completing each gesture. onTap's result is reported as consumed.
func NewTwoFingerTapDetector(onTap func(Event) bool) *TwoFingerTapDetector {
	return &TwoFingerTapDetector{listener: onTap}
}

// State returns the current state.
func (d *TwoFingerTapDetector) State() TapState {
	return d.state
}

// Handle advances the state machine with ev.
func (d *TwoFingerTapDetector) Handle(ev Event) bool {
	if d.state != WaitForFirstDown && TwoFingerDurationTolerance < ev.Time-d.start {
		d.fail("timeout", ev)
		return false
	}

	next, effect := nextTapState(d.state, ev.Action)
	switch effect {
	case effectRecordFirst:
		if !d.remember(0, ev) {
			d.fail("no pointer 0", ev)
			return false
		}
		d.start = ev.Time
		d.state = next
		return true

	case effectRecordSecond:
		if !d.remember(1, ev) {
			d.fail("no pointer 1", ev)
			return false
		}
		d.state = next
		return true

	case effectCheckMovement:
		if d.moved(ev) {
			d.fail("moved", ev)
		}
		return false

	case effectFirstUp:
		if d.moved(ev) {
			d.fail("moved", ev)
			return false
		}
		d.state = next
		return true

	case effectDetect:
		if d.moved(ev) {
			d.fail("moved", ev)
			return false
		}
		d.Reset()
		if d.listener == nil {
			return false
		}
		return d.listener(ev)
	}

	if d.state != WaitForFirstDown {
		d.fail("unexpected "+ev.Action.String(), ev)
	} else {
		d.Reset()
	}
	return false
}

// Reset returns the detector to WaitForFirstDown and forgets the samples.
func (d *TwoFingerTapDetector) Reset() {
	d.state = WaitForFirstDown
	d.start = 0
	d.tracker.Clear()
	d.ids = [2]int{}
}

func (d *TwoFingerTapDetector) fail(reason string, ev Event) {
	d.log.printf("two-finger tap reset in %s at t=%d: %s", d.state, ev.Time, reason)
	d.Reset()
}

// remember records the position of the pointer at index in ev.
func (d *TwoFingerTapDetector) remember(index int, ev Event) bool {
	p, ok := ev.pointerAt(index)
	if !ok {
		return false
	}
	d.tracker.Record(index, p.X, p.Y)
	d.ids[index] = p.ID
	return true
}

// moved reports whether either remembered pointer, looked up by ID in ev,
// left its tolerance square. Pointers no longer present are skipped.
func (d *TwoFingerTapDetector) moved(ev Event) bool {
	for index := range d.ids {
		if _, ok := d.tracker.Sample(index); !ok {
			continue
		}
		for _, p := range ev.Pointers {
			if p.ID != d.ids[index] {
				continue
			}
			if d.tracker.MovedBeyond(index, p.X, p.Y, TwoFingerMovementTolerance) {
				return true
			}
			break
		}
	}
	return false
}
