package reverb

import "github.com/justyntemme/reverbcore/pkg/dsp/log"

// New constructs a Model of the given type for sampleRate (spec §4.8).
// sampleRateMax is accepted for parity with the factory signature but is
// not currently used to pre-size buffers beyond what sampleRate itself
// requires; construction fails atomically (nil, error) for sampleRate
// <= 0 or an unrecognized type.
func New(sampleRateMax, sampleRate float64, t Type) (Model, error) {
	var (
		m   Model
		err error
	)
	switch t {
	case TypeFreeverb:
		m, err = NewFreeverb(sampleRate)
	case TypeLexverb:
		m, err = NewLexverb(sampleRate)
	case TypeFDN:
		m, err = NewDattorro(sampleRate)
	default:
		return nil, ErrUnknownType
	}
	if err != nil {
		return nil, err
	}
	return &guarded{inner: m}, nil
}

// guarded wraps a Model so that a panic inside any call is logged and
// turned into a no-op (or FAIL, for SampleRateChange) instead of
// unwinding across the audio-thread boundary (spec §4.8, §7).
type guarded struct {
	inner Model
}

func (g *guarded) ProcessMix(in, left, right []float32) {
	defer recoverInto("ProcessMix")
	g.inner.ProcessMix(in, left, right)
}

func (g *guarded) ProcessReplace(in, left, right []float32) {
	defer recoverInto("ProcessReplace")
	g.inner.ProcessReplace(in, left, right)
}

func (g *guarded) Reset() {
	defer recoverInto("Reset")
	g.inner.Reset()
}

func (g *guarded) SetParams(mask uint32, roomsize, damping, width, level float64) {
	defer recoverInto("SetParams")
	g.inner.SetParams(mask, roomsize, damping, width, level)
}

func (g *guarded) SampleRateChange(sampleRate float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("reverb: panic in SampleRateChange: %v", r)
			err = ErrInternal
		}
	}()
	return g.inner.SampleRateChange(sampleRate)
}

func recoverInto(op string) {
	if r := recover(); r != nil {
		log.Error("reverb: panic in %s: %v", op, r)
	}
}
