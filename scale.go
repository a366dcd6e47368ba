package mapnav

import "math"

// MinZoomSpanThreshold is the smallest span change, in pixels, that counts
// as one zoom step.
const MinZoomSpanThreshold = 50

// ZoomSpanThreshold returns the pinch span change that makes one zoom step
// on a surface of the given size: a tenth of the longer side, at least
// MinZoomSpanThreshold.
func ZoomSpanThreshold(width, height int) int {
	return max(MinZoomSpanThreshold, max(width, height)/10)
}

// ScaleSession is the state of one pinch from begin to end.
type ScaleSession struct {
	ThresholdPixels int
	StartSpanPixels int
	// LastStepDeviation is the net step count already sent to the engine.
	LastStepDeviation int
}

// ScaleStepQuantizer turns a continuous pinch span into whole zoom steps.
// Each update sends only the steps not yet sent, so a sequence of updates
// never loses or repeats a step.
type ScaleStepQuantizer struct {
	sink    CommandSink
	session ScaleSession
	active  bool
}

// NewScaleStepQuantizer returns a quantizer emitting zoom commands to sink.
func NewScaleStepQuantizer(sink CommandSink) *ScaleStepQuantizer {
	return &ScaleStepQuantizer{sink: sink}
}

// Begin starts a session at span on a surface of width x height.
func (q *ScaleStepQuantizer) Begin(span, width, height int) bool {
	q.session = ScaleSession{
		ThresholdPixels: ZoomSpanThreshold(width, height),
		StartSpanPixels: span,
	}
	q.active = true
	return true
}

// Update emits the zoom steps between the last sent deviation and span.
// It reports false when no whole step was crossed.
func (q *ScaleStepQuantizer) Update(span, focusX, focusY int) bool {
	if !q.active {
		return false
	}
	deviation := floorDiv(span-q.session.StartSpanPixels, q.session.ThresholdPixels)
	delta := deviation - q.session.LastStepDeviation
	if delta == 0 {
		return false
	}
	q.session.LastStepDeviation = deviation
	if delta < 0 {
		q.emit(ZoomOut(-delta, true, focusX, focusY))
	} else {
		q.emit(ZoomIn(delta, true, focusX, focusY))
	}
	return true
}

// End applies span one last time and closes the session.
func (q *ScaleStepQuantizer) End(span, focusX, focusY int) bool {
	consumed := q.Update(span, focusX, focusY)
	q.Reset()
	return consumed
}

// Session returns the current session, if a pinch is in progress.
func (q *ScaleStepQuantizer) Session() (ScaleSession, bool) {
	return q.session, q.active
}

// Reset discards the session without emitting.
func (q *ScaleStepQuantizer) Reset() {
	q.session = ScaleSession{}
	q.active = false
}

func (q *ScaleStepQuantizer) emit(cmd Command) {
	if q.sink != nil {
		q.sink.Emit(cmd)
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	d := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		d--
	}
	return d
}

// --- Pinch tracking ---

// measurePinch returns the distance between the first two pointers and
// their midpoint, truncated to whole pixels.
func measurePinch(ptrs []Pointer) (span, focusX, focusY int, ok bool) {
	if len(ptrs) < 2 {
		return 0, 0, 0, false
	}
	p0, p1 := ptrs[0], ptrs[1]
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	span = int(math.Sqrt(dx*dx + dy*dy))
	focusX = int((p0.X + p1.X) / 2)
	focusY = int((p0.Y + p1.Y) / 2)
	return span, focusX, focusY, true
}

// remainingPointers returns ev's pointers without the one lifting.
func remainingPointers(ev Event) []Pointer {
	if ev.Index < 0 || ev.Index >= len(ev.Pointers) {
		return ev.Pointers
	}
	rest := make([]Pointer, 0, len(ev.Pointers)-1)
	rest = append(rest, ev.Pointers[:ev.Index]...)
	return append(rest, ev.Pointers[ev.Index+1:]...)
}

// ScaleSpanSlop is how far, in pixels, the span of a fresh two-pointer touch
// must move before it counts as a pinch.
const ScaleSpanSlop = 2 * TouchSlop

// ScalePipeline recognizes pinches in the pointer stream and feeds their
// span to a ScaleStepQuantizer. A second pointer landing arms a pinch; the
// session begins, at the span measured then, once the span leaves the armed
// span by more than ScaleSpanSlop. The first two pointers define span and
// focus.
type ScalePipeline struct {
	quantizer *ScaleStepQuantizer
	size      func() (int, int)
	log       *debugLogger

	armed   bool
	armSpan int
}

// NewScalePipeline returns a pipeline emitting to sink. size reports the
// current surface size and is read at every pinch begin.
func NewScalePipeline(sink CommandSink, size func() (int, int)) *ScalePipeline {
	return &ScalePipeline{
		quantizer: NewScaleStepQuantizer(sink),
		size:      size,
	}
}

// Quantizer returns the underlying quantizer.
func (p *ScalePipeline) Quantizer() *ScaleStepQuantizer {
	return p.quantizer
}

// InProgress reports whether a pinch session is active.
func (p *ScalePipeline) InProgress() bool {
	return p.quantizer.active
}

// Handle feeds ev to the pinch recognizer.
func (p *ScalePipeline) Handle(ev Event) bool {
	switch ev.Action {
	case ActionPointerDown:
		if !p.InProgress() && !p.armed {
			p.arm(ev.Pointers)
		}
		return false

	case ActionMove:
		if !p.InProgress() && !p.armed {
			return false
		}
		span, fx, fy, ok := measurePinch(ev.Pointers)
		if !ok {
			p.fail("move without two pointers", ev)
			return false
		}
		if p.armed {
			if abs(float64(span-p.armSpan)) > ScaleSpanSlop {
				p.begin(span)
			}
			return false
		}
		return p.quantizer.Update(span, fx, fy)

	case ActionPointerUp, ActionUp:
		if !p.InProgress() && !p.armed {
			return false
		}
		consumed := false
		if p.InProgress() {
			span, fx, fy, ok := measurePinch(ev.Pointers)
			if !ok {
				p.fail("lift without two pointers", ev)
				return false
			}
			consumed = p.quantizer.End(span, fx, fy)
		}
		p.armed = false
		if rest := remainingPointers(ev); len(rest) >= 2 {
			p.arm(rest)
		}
		return consumed

	case ActionDown, ActionCancel:
		p.Reset()
	}
	return false
}

// Reset abandons any pinch in progress or armed.
func (p *ScalePipeline) Reset() {
	p.quantizer.Reset()
	p.armed = false
	p.armSpan = 0
}

func (p *ScalePipeline) arm(ptrs []Pointer) {
	span, _, _, ok := measurePinch(ptrs)
	if !ok {
		return
	}
	p.armed = true
	p.armSpan = span
}

func (p *ScalePipeline) begin(span int) {
	var w, h int
	if p.size != nil {
		w, h = p.size()
	}
	p.armed = false
	p.quantizer.Begin(span, w, h)
}

func (p *ScalePipeline) fail(reason string, ev Event) {
	p.log.printf("pinch reset at t=%d: %s", ev.Time, reason)
	p.Reset()
}
