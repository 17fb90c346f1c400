// Package delay provides the ring-buffer substrate shared by every filter
// kind in the reverb engine (plain delay, allpass, comb). Keeping the
// cursor arithmetic in one place is what makes the Dattorro tap-read path
// reusable across filter types instead of reimplemented per algorithm.
package delay

// Line is a fixed-capacity ring buffer of samples with independent
// read/write cursors and a non-mutating tap-read for multi-tap use
// (Dattorro's 14 tap readouts). Lexverb's cross-delays are single-tap
// users of Process that also carry a Coefficient.
//
// Single-tap callers only ever use Process; LineIn and LineOut are kept
// equal for them. Multi-tap callers (Dattorro) use ReadTap freely without
// ever advancing the cursor.
type Line struct {
	line []float32

	lineOut int
	lineIn  int

	// Coefficient is a scalar cross-feed gain, used by Lexverb's
	// cross-delays (dl0/dl1). Unused by plain single-tap delays.
	Coefficient float64

	lastOutput float32
}

// NewLine allocates a delay line of length n (n >= 1), zero-initialized,
// with both cursors at position 0.
func NewLine(n int) *Line {
	if n < 1 {
		n = 1
	}
	return &Line{line: make([]float32, n)}
}

// SetBuffer reallocates the line to length n, resetting both cursors to 0
// and clearing the cached last output. Only called outside the audio
// thread (SampleRateChange) - it allocates.
func (l *Line) SetBuffer(n int) {
	if n < 1 {
		n = 1
	}
	l.line = make([]float32, n)
	l.lineOut = 0
	l.lineIn = 0
	l.lastOutput = 0
}

// Len returns the capacity of the line.
func (l *Line) Len() int {
	return len(l.line)
}

// Fill writes v into every cell without moving the cursors.
func (l *Line) Fill(v float32) {
	for i := range l.line {
		l.line[i] = v
	}
}

// SetPositions stores both cursors directly. The caller is responsible
// for keeping them within [0, Len()); no bounds check is performed.
func (l *Line) SetPositions(in, out int) {
	l.lineIn = in
	l.lineOut = out
}

// SetSingleTapPosition sets both cursors to i, the normal configuration
// for single-tap delay/allpass/comb usage.
func (l *Line) SetSingleTapPosition(i int) {
	l.lineIn = i
	l.lineOut = i
}

// ReadTap returns the sample at (lineOut + k) mod N without mutating any
// cursor. Negative k wraps via Euclidean modulo, matching a tap offset
// measured backwards from the read cursor.
func (l *Line) ReadTap(k int) float32 {
	n := len(l.line)
	idx := (l.lineOut + k) % n
	if idx < 0 {
		idx += n
	}
	return l.line[idx]
}

// Process reads the sample at lineOut, writes x there, advances lineOut
// by one (mod N, keeping lineIn equal to lineOut), caches the read value
// as LastOutput, and returns it. This is the single-tap hot path used by
// plain delays, allpasses, and combs alike.
func (l *Line) Process(x float32) float32 {
	y := l.line[l.lineOut]
	l.line[l.lineOut] = x
	l.lineOut++
	if l.lineOut >= len(l.line) {
		l.lineOut = 0
	}
	l.lineIn = l.lineOut
	l.lastOutput = y
	return y
}

// LastOutput returns the most recent sample returned by Process.
func (l *Line) LastOutput() float32 {
	return l.lastOutput
}

// LineOut returns the current read/write cursor (equal to LineIn for
// single-tap usage).
func (l *Line) LineOut() int {
	return l.lineOut
}

// LineIn returns the current write cursor.
func (l *Line) LineIn() int {
	return l.lineIn
}

// Reset zeros the buffer contents and the cached last output without
// reallocating, and rewinds both cursors to 0.
func (l *Line) Reset() {
	for i := range l.line {
		l.line[i] = 0
	}
	l.lineOut = 0
	l.lineIn = 0
	l.lastOutput = 0
}
