package reverb

import "github.com/justyntemme/reverbcore/pkg/dsp/filter"

// Freeverb tuning constants, scaled for 44.1kHz (spec §4.5).
const (
	freeverbNumCombs     = 8
	freeverbNumAllpasses = 4
	freeverbStereoSpread = 23
	freeverbFixedGain    = 0.015
	freeverbScaleRoom    = 0.28
	freeverbOffsetRoom   = 0.7
	freeverbAllpassFB    = 0.5

	// dcOffset avoids denormal ramp-up in the comb/allpass feedback
	// loops; it is added on the way in and subtracted on the way out,
	// and it is what Reset seeds buffers with instead of silence.
	dcOffset = 1e-8

	// Freeze mode substitutes these for roomsize/damp while active.
	freeverbFreezeRoom = 1.0
	freeverbFreezeDamp = 0.0
)

var freeverbCombTuning = [freeverbNumCombs]int{
	1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617,
}

var freeverbAllpassTuning = [freeverbNumAllpasses]int{
	556, 441, 341, 225,
}

// Freeverb implements the classic Freeverb algorithm: 8 parallel combs
// followed by 4 series allpasses, per channel, mono-in/stereo-out.
type Freeverb struct {
	params
	combL    [freeverbNumCombs]*filter.Comb
	combR    [freeverbNumCombs]*filter.Comb
	allpassL [freeverbNumAllpasses]*filter.Allpass
	allpassR [freeverbNumAllpasses]*filter.Allpass

	sampleRate float64
	freeze     bool
}

// NewFreeverb constructs a Freeverb instance for the given sample rate.
// Construction fails atomically (returning a nil model) for a
// non-positive sample rate.
func NewFreeverb(sampleRate float64) (*Freeverb, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	f := &Freeverb{params: newParams(), sampleRate: sampleRate}
	f.allocate(sampleRate)
	f.update()
	return f, nil
}

func (f *Freeverb) allocate(sampleRate float64) {
	scale := sampleRate / 44100.0
	for i := 0; i < freeverbNumCombs; i++ {
		dl := int(float64(freeverbCombTuning[i]) * scale)
		dr := int(float64(freeverbCombTuning[i]+freeverbStereoSpread) * scale)
		f.combL[i] = filter.NewComb(dl)
		f.combR[i] = filter.NewComb(dr)
	}
	for i := 0; i < freeverbNumAllpasses; i++ {
		dl := int(float64(freeverbAllpassTuning[i]) * scale)
		dr := int(float64(freeverbAllpassTuning[i]+freeverbStereoSpread) * scale)
		f.allpassL[i] = filter.NewAllpass(dl, filter.ModeFreeverb, freeverbAllpassFB)
		f.allpassR[i] = filter.NewAllpass(dr, filter.ModeFreeverb, freeverbAllpassFB)
	}
}

// SetFreezeMode enables or disables freeze mode, in which roomsize 1 and
// damping 0 are substituted for the stored controls: the combs run at the
// largest feedback the room mapping yields (0.98) with no damping, so the
// tail decays very slowly but does not sustain indefinitely, and input is
// still fed into the combs while frozen (FluidSynth/Freeverb supplemented
// behavior, see SPEC_FULL.md §12).
func (f *Freeverb) SetFreezeMode(freeze bool) {
	f.freeze = freeze
	f.update()
}

// SetParams implements Model.
func (f *Freeverb) SetParams(mask uint32, roomsize, damping, width, level float64) {
	f.params.apply(mask, roomsize, damping, width, level)
	f.update()
}

func (f *Freeverb) update() {
	roomSize, damping := f.roomSize, f.damping
	if f.freeze {
		roomSize, damping = freeverbFreezeRoom, freeverbFreezeDamp
	}

	feedback := roomSize*freeverbScaleRoom + freeverbOffsetRoom
	for i := 0; i < freeverbNumCombs; i++ {
		f.combL[i].Feedback = feedback
		f.combR[i].Feedback = feedback
		f.combL[i].SetDamp(damping)
		f.combR[i].SetDamp(damping)
	}

	widthFrac := f.width / 100
	wet := (f.level * 3.0) / (1 + widthFrac*0.2)
	f.wet1, f.wet2 = spreadWet(wet, widthFrac)
}

// ProcessReplace implements Model.
func (f *Freeverb) ProcessReplace(in, left, right []float32) {
	for i, x := range in {
		left[i], right[i] = f.processSample(x)
	}
}

// ProcessMix implements Model.
func (f *Freeverb) ProcessMix(in, left, right []float32) {
	for i, x := range in {
		l, r := f.processSample(x)
		left[i] += l
		right[i] += r
	}
}

func (f *Freeverb) processSample(x float32) (float32, float32) {
	input := (2*x + dcOffset) * float32(freeverbFixedGain)

	var outL, outR float32
	for i := 0; i < freeverbNumCombs; i++ {
		outL += f.combL[i].Process(input)
		outR += f.combR[i].Process(input)
	}
	for i := 0; i < freeverbNumAllpasses; i++ {
		outL = f.allpassL[i].Process(outL)
		outR = f.allpassR[i].Process(outR)
	}

	outL -= dcOffset
	outR -= dcOffset

	mixL := outL*float32(f.wet1) + outR*float32(f.wet2)
	mixR := outR*float32(f.wet1) + outL*float32(f.wet2)
	return mixL, mixR
}

// Reset implements Model. Buffers are seeded with dcOffset rather than
// zero, matching Freeverb's own denormal-avoidance behavior.
func (f *Freeverb) Reset() {
	for i := 0; i < freeverbNumCombs; i++ {
		f.combL[i].ResetTo(dcOffset)
		f.combR[i].ResetTo(dcOffset)
	}
	for i := 0; i < freeverbNumAllpasses; i++ {
		f.allpassL[i].ResetTo(dcOffset)
		f.allpassR[i].ResetTo(dcOffset)
	}
}

// SampleRateChange implements Model. Freeverb supports it by
// reallocating every comb/allpass buffer and recomputing coefficients.
func (f *Freeverb) SampleRateChange(sampleRate float64) error {
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	f.sampleRate = sampleRate
	scale := sampleRate / 44100.0
	for i := 0; i < freeverbNumCombs; i++ {
		f.combL[i].SetBuffer(int(float64(freeverbCombTuning[i]) * scale))
		f.combR[i].SetBuffer(int(float64(freeverbCombTuning[i]+freeverbStereoSpread) * scale))
	}
	for i := 0; i < freeverbNumAllpasses; i++ {
		f.allpassL[i].SetBuffer(int(float64(freeverbAllpassTuning[i]) * scale))
		f.allpassR[i].SetBuffer(int(float64(freeverbAllpassTuning[i]+freeverbStereoSpread) * scale))
	}
	f.update()
	return nil
}

// Preset convenience methods, layered over SetParams (spec §12).

// SetPresetSmallRoom configures a small room sound.
func (f *Freeverb) SetPresetSmallRoom() {
	f.SetParams(SetAll, 0.3, 0.75, 50, 0.25)
}

// SetPresetMediumHall configures a medium hall sound.
func (f *Freeverb) SetPresetMediumHall() {
	f.SetParams(SetAll, 0.6, 0.5, 75, 0.35)
}

// SetPresetLargeHall configures a large hall sound.
func (f *Freeverb) SetPresetLargeHall() {
	f.SetParams(SetAll, 0.85, 0.3, 100, 0.4)
}

// SetPresetCathedral configures a cathedral sound.
func (f *Freeverb) SetPresetCathedral() {
	f.SetParams(SetAll, 0.95, 0.1, 100, 0.5)
}
