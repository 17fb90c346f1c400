package filter

import "github.com/justyntemme/reverbcore/pkg/dsp/delay"

// Comb is a feedback comb filter with an internal one-pole lowpass
// (damping) in the feedback path, built on a delay line.
type Comb struct {
	line        *delay.Line
	Feedback    float64
	damp1       float64
	damp2       float64
	filterstore float32
}

// NewComb creates a comb filter with the given delay length in samples.
func NewComb(n int) *Comb {
	return &Comb{
		line:     delay.NewLine(n),
		Feedback: 0.5,
		damp1:    0.5,
		damp2:    0.5,
	}
}

// SetDamp sets the damping split; damp1+damp2 == 1 always holds
// afterwards (spec invariant 3).
func (c *Comb) SetDamp(damp float64) {
	c.damp1 = damp
	c.damp2 = 1 - damp
}

// Damp1 returns the feedback-retention coefficient.
func (c *Comb) Damp1() float64 { return c.damp1 }

// Damp2 returns the fresh-sample coefficient (always 1 - Damp1()).
func (c *Comb) Damp2() float64 { return c.damp2 }

// Process runs one sample through the comb filter.
func (c *Comb) Process(x float32) float32 {
	y := c.line.ReadTap(0)

	c.filterstore = y*float32(c.damp2) + c.filterstore*float32(c.damp1)

	c.line.Process(x + c.filterstore*float32(c.Feedback))

	return y
}

// Reset clears the delay buffer and the filterstore state.
func (c *Comb) Reset() {
	c.line.Reset()
	c.filterstore = 0
}

// ResetTo fills the buffer with v and seeds the filterstore with v,
// matching Freeverb's denormal-avoidance reset (a small DC offset
// instead of silence).
func (c *Comb) ResetTo(v float32) {
	c.line.Fill(v)
	c.filterstore = v
}

// Len returns the delay line's capacity in samples.
func (c *Comb) Len() int {
	return c.line.Len()
}

// SetBuffer reallocates the underlying delay line (used by
// SampleRateChange); it is allocation-bearing and must not be called
// from the audio thread.
func (c *Comb) SetBuffer(n int) {
	c.line.SetBuffer(n)
	c.filterstore = 0
}
