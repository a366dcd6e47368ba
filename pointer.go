package mapnav

// PointerSample is the remembered down position of pointer 0 or 1.
type PointerSample struct {
	Index int
	X, Y  float64
}

// PointerTracker remembers where up to two pointers went down so excess
// movement can be detected later in the gesture. A sample survives its
// pointer lifting; only Clear drops it.
type PointerTracker struct {
	samples [2]PointerSample
	set     [2]bool
}

// Record stores or overwrites the sample for index. Indices other than 0
// and 1 are ignored.
func (t *PointerTracker) Record(index int, x, y float64) {
	if index < 0 || index >= len(t.samples) {
		return
	}
	t.samples[index] = PointerSample{Index: index, X: x, Y: y}
	t.set[index] = true
}

// Sample returns the stored sample for index, if any.
func (t *PointerTracker) Sample(index int) (PointerSample, bool) {
	if index < 0 || index >= len(t.samples) || !t.set[index] {
		return PointerSample{}, false
	}
	return t.samples[index], true
}

// MovedBeyond reports whether (x, y) lies more than tolerance away from the
// stored sample for index on either axis. The axes are checked independently,
// so the accepted region is a square, not a circle. Without a sample the
// pointer cannot have moved.
func (t *PointerTracker) MovedBeyond(index int, x, y, tolerance float64) bool {
	s, ok := t.Sample(index)
	if !ok {
		return false
	}
	return tolerance < abs(s.X-x) || tolerance < abs(s.Y-y)
}

// Clear drops both samples.
func (t *PointerTracker) Clear() {
	t.samples = [2]PointerSample{}
	t.set = [2]bool{}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
