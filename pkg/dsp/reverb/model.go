// Package reverb implements three interchangeable algorithmic
// reverberation networks (Freeverb, Lexverb, and a Dattorro-style plate)
// behind one polymorphic contract, built on the delay/allpass/comb
// primitives in pkg/dsp/delay and pkg/dsp/filter.
package reverb

import (
	"errors"
	"fmt"
)

// Mask flags name which of the four user controls a SetParams call
// updates. Unmasked values are left untouched.
const (
	SetRoomSize uint32 = 1 << iota
	SetDamping
	SetWidth
	SetLevel
)

// SetAll updates every control in a single call.
const SetAll = SetRoomSize | SetDamping | SetWidth | SetLevel

// Model is the common contract every reverb algorithm implements. All
// calls on a single Model must be serialized by the caller; Process* is
// wait-free, allocation-free, and syscall-free.
type Model interface {
	// ProcessMix adds one block's worth of wet stereo output into left
	// and right (which already hold other content to be preserved).
	ProcessMix(in, left, right []float32)

	// ProcessReplace overwrites left and right with one block's worth of
	// wet stereo output.
	ProcessReplace(in, left, right []float32)

	// Reset clears all internal state (delay buffers, filter state).
	// Lexverb and Dattorro zero everything and rewind cursors to 0;
	// Freeverb instead seeds its buffers with a small DC offset and
	// leaves its cursors where they are.
	Reset()

	// SetParams selectively updates roomsize/damping/width/level
	// according to mask, clamping each updated value to its declared
	// range, and recomputes derived coefficients atomically from the
	// caller's perspective.
	SetParams(mask uint32, roomsize, damping, width, level float64)

	// SampleRateChange reconfigures internal buffer lengths for a new
	// sample rate. It returns ErrUnsupported for algorithms that cannot
	// support it (Lexverb).
	SampleRateChange(sampleRate float64) error
}

// ErrUnsupported is returned by SampleRateChange on algorithms that
// cannot reconfigure in place (Lexverb).
var ErrUnsupported = errors.New("reverb: sample rate change unsupported by this model")

// ErrInvalidSampleRate is returned by the factory when constructing a
// model with a non-positive sample rate.
var ErrInvalidSampleRate = errors.New("reverb: sample rate must be positive")

// ErrUnknownType is returned by the factory for an unrecognized Type.
var ErrUnknownType = errors.New("reverb: unknown model type")

// ErrInternal is returned by a guarded Model call when the underlying
// implementation panicked; the panic is logged and does not cross the
// API boundary (spec §7, InternalException).
var ErrInternal = errors.New("reverb: internal exception")

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// params holds the four common controls plus the derived wet1/wet2
// stereo-spread coefficients shared by every algorithm's mixing stage
// (spec §4.4). width is stored in its native [0, 100] range; callers that
// need a [0, 1] fraction divide by 100 at the point of use.
type params struct {
	roomSize float64
	damping  float64
	width    float64
	level    float64

	wet1 float64
	wet2 float64
}

func newParams() params {
	return params{roomSize: 0.5, damping: 0.5, width: 100, level: 1}
}

// apply clamps and stores every masked field. It does not recompute
// wet1/wet2 - each model derives those from its own wet-level formula
// (Freeverb/Lexverb/Dattorro each weight `level` differently), so the
// caller invokes its own update() after calling apply.
func (p *params) apply(mask uint32, roomsize, damping, width, level float64) {
	if mask&SetRoomSize != 0 {
		p.roomSize = clamp01(roomsize)
	}
	if mask&SetDamping != 0 {
		p.damping = clamp01(damping)
	}
	if mask&SetWidth != 0 {
		p.width = clamp(width, 0, 100)
	}
	if mask&SetLevel != 0 {
		p.level = clamp01(level)
	}
}

// spreadWet derives wet1/wet2 from a wet level and width (as a [0,1]
// fraction) the way every algorithm in this package does: wet1 carries
// the width-weighted direct channel, wet2 the crossed channel.
func spreadWet(wet, widthFrac float64) (wet1, wet2 float64) {
	wet1 = wet * (widthFrac/2 + 0.5)
	wet2 = wet * ((1 - widthFrac) / 2)
	return wet1, wet2
}

// Type selects which algorithm the factory constructs.
type Type int

const (
	TypeFreeverb Type = iota
	TypeLexverb
	TypeFDN // Dattorro-style plate, named FDN per spec §4.8.
)

func (t Type) String() string {
	switch t {
	case TypeFreeverb:
		return "freeverb"
	case TypeLexverb:
		return "lexverb"
	case TypeFDN:
		return "fdn"
	default:
		return fmt.Sprintf("reverb.Type(%d)", int(t))
	}
}
