package filter

import "github.com/justyntemme/reverbcore/pkg/dsp/delay"

// Mode selects which allpass variant Process implements.
type Mode int

const (
	// ModeFreeverb is Freeverb's deliberate simplification of the
	// Schroeder allpass: output = bufout - x, write-back x + bufout*g.
	// This is preserved bit-for-bit for sonic compatibility with the
	// original Freeverb; it is not "fixed" to the textbook form.
	ModeFreeverb Mode = iota
	// ModeSchroeder is the textbook allpass section used by Lexverb and
	// Dattorro: v = x + bufout*g, output = bufout - v*g, write-back v.
	ModeSchroeder
)

// Allpass is a Schroeder- or Freeverb-variant allpass filter built on a
// delay line, with a feedback coefficient and a mode selector.
type Allpass struct {
	line       *delay.Line
	Mode       Mode
	Feedback   float64
	lastOutput float32
}

// NewAllpass creates an allpass filter with the given delay length in
// samples, fixed feedback, and mode.
func NewAllpass(n int, mode Mode, feedback float64) *Allpass {
	return &Allpass{
		line:     delay.NewLine(n),
		Mode:     mode,
		Feedback: feedback,
	}
}

// Process runs one sample through the allpass.
func (a *Allpass) Process(x float32) float32 {
	bufout := a.line.ReadTap(0)
	g := float32(a.Feedback)

	var output, writeback float32
	switch a.Mode {
	case ModeFreeverb:
		output = bufout - x
		writeback = x + bufout*g
	default: // ModeSchroeder
		v := x + bufout*g
		output = bufout - v*g
		writeback = v
	}

	a.line.Process(writeback)
	a.lastOutput = output
	return output
}

// LastOutput returns the most recent Process output.
func (a *Allpass) LastOutput() float32 {
	return a.lastOutput
}

// ReadTap returns the sample at (lineOut + k) mod N in the underlying
// delay line without mutating any cursor, for Dattorro-style multi-tap
// readouts of a tank allpass.
func (a *Allpass) ReadTap(k int) float32 {
	return a.line.ReadTap(k)
}

// Reset clears the filter's buffer and cached output.
func (a *Allpass) Reset() {
	a.line.Reset()
	a.lastOutput = 0
}

// ResetTo fills the buffer with v instead of zero (Freeverb's
// denormal-avoidance reset uses a small DC offset rather than silence).
func (a *Allpass) ResetTo(v float32) {
	a.line.Fill(v)
	a.lastOutput = v
}

// Len returns the delay line's capacity in samples.
func (a *Allpass) Len() int {
	return a.line.Len()
}

// SetBuffer reallocates the underlying delay line (used by
// SampleRateChange); it is allocation-bearing and must not be called
// from the audio thread.
func (a *Allpass) SetBuffer(n int) {
	a.line.SetBuffer(n)
	a.lastOutput = 0
}
