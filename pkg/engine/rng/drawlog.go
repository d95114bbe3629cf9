package rng

// Draw is one logged primitive call.
type Draw struct {
	Index  int64
	Kind   string
	Bound  int
	Result int
	Tag    string
}

// DrawLog records draws in order. It is a diagnostic aid; generation never
// reads it back.
type DrawLog struct {
	draws []Draw
}

// NewDrawLog returns an empty log
func NewDrawLog() *DrawLog {
	return &DrawLog{}
}

func (l *DrawLog) add(d Draw) {
	l.draws = append(l.draws, d)
}

// Len returns the number of recorded draws
func (l *DrawLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.draws)
}

// Reset drops every recorded draw.
func (l *DrawLog) Reset() {
	if l != nil {
		l.draws = l.draws[:0]
	}
}

// Draws returns a copy of the recorded draws
func (l *DrawLog) Draws() []Draw {
	if l == nil {
		return nil
	}
	out := make([]Draw, len(l.draws))
	copy(out, l.draws)
	return out
}

// Diff returns the index of the first draw at which the two logs disagree
// on bound or result, or (-1, false) when they are identical. A log that is
// a strict prefix of the other diverges at its length.
func (l *DrawLog) Diff(other *DrawLog) (int, bool) {
	return FirstDivergence(l.Draws(), other.Draws())
}

// FirstDivergence compares two draw sequences the same way Diff does.
func FirstDivergence(a, b []Draw) (int, bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i].Bound != b[i].Bound || a[i].Result != b[i].Result {
			return i, true
		}
	}
	if len(a) != len(b) {
		return n, true
	}
	return -1, false
}
