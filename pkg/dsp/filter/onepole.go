// Package filter builds the allpass and comb sections used by the reverb
// algorithms on top of the delay package's ring-buffer primitive.
package filter

// OnePole is a one-pole lowpass with unity DC gain: y[n] = b0*x[n] +
// a1*y[n-1], where the invariant a1 = 1 - b0 always holds. It backs the
// Dattorro bandwidth/tank damping stages. The Lexverb shared damping tail
// computes the same shape inline on its own state, and so does the comb
// filter (see Comb.damp1/damp2), which returns the undamped delay output
// while feeding the damped value back.
type OnePole struct {
	b0, a1 float64
	state  float32
}

// NewOnePole creates a one-pole filter with the given b0 (a1 is derived).
func NewOnePole(b0 float64) *OnePole {
	o := &OnePole{}
	o.SetB0(b0)
	return o
}

// SetB0 sets the lowpass coefficient and recomputes a1 = 1 - b0 so that
// unity DC gain is preserved.
func (o *OnePole) SetB0(b0 float64) {
	o.b0 = b0
	o.a1 = 1 - b0
}

// B0 returns the current b0 coefficient.
func (o *OnePole) B0() float64 { return o.b0 }

// A1 returns the current a1 coefficient (always 1 - B0()).
func (o *OnePole) A1() float64 { return o.a1 }

// Process runs one sample through the filter.
func (o *OnePole) Process(x float32) float32 {
	y := x*float32(o.b0) + o.state*float32(o.a1)
	o.state = y
	return y
}

// Reset zeros the filter's state.
func (o *OnePole) Reset() {
	o.state = 0
}
