package reverb

import (
	"math"

	"github.com/justyntemme/reverbcore/pkg/dsp/delay"
	"github.com/justyntemme/reverbcore/pkg/dsp/filter"
)

const (
	dattorroTrim        = 0.6
	dattorroPredelaySec = 0.004
	dattorroBandwidth   = 0.9999 // initial input-LPF coefficient (spec §4.7)
	dattorroDecayBase   = 0.2
	dattorroDecayRange  = 0.78
)

var dattorroInputDiffusionFB = [4]float64{0.75, 0.75, 0.625, 0.625}
var dattorroInputDiffusionSec = [4]float64{0.004771, 0.003595, 0.012735, 0.009307}

var dattorroTankAllpassFB = [4]float64{0.7, 0.5, 0.7, 0.5}

// Tank element lengths in the order the spec's table gives them:
// tank_ap[0], tank_delay[0], tank_ap[1], tank_delay[1],
// tank_ap[2], tank_delay[2], tank_ap[3], tank_delay[3].
var dattorroTankApSec = [4]float64{0.022580, 0.060482, 0.030510, 0.089244}
var dattorroTankDelaySec = [4]float64{0.149625, 0.124996, 0.141696, 0.106280}

var dattorroTapLeftSec = [7]float64{0.008938, 0.099929, 0.064279, 0.067068, 0.066866, 0.006283, 0.035819}
var dattorroTapRightSec = [7]float64{0.011861, 0.121871, 0.041262, 0.089816, 0.070932, 0.011256, 0.004066}

func dattorroBufLen(sec, sampleRate float64) int {
	n := int(math.Round(sec * sampleRate))
	if n < 1 {
		n = 1
	}
	return n
}

func dattorroTapLen(sec, sampleRate float64) int {
	return int(math.Round(sec * sampleRate))
}

// Dattorro implements a Dattorro-style plate reverb: predelay +
// bandwidth LPF + 4 input-diffusion allpasses + two cross-coupled tanks
// (allpass, delay, damping LPF, allpass, delay each) with 14 tap
// readouts (spec §4.7).
type Dattorro struct {
	params

	predelay *delay.Line
	bw       *filter.OnePole

	inputAP [4]*filter.Allpass

	tankAP    [4]*filter.Allpass
	tankDelay [4]*delay.Line
	dampL     *filter.OnePole
	dampR     *filter.OnePole

	tapLeft  [7]int
	tapRight [7]int

	decay float64

	sampleRate float64
}

// NewDattorro constructs a Dattorro plate instance for the given sample
// rate.
func NewDattorro(sampleRate float64) (*Dattorro, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	d := &Dattorro{params: newParams(), sampleRate: sampleRate}
	d.allocate(sampleRate)
	d.update()
	return d, nil
}

func (d *Dattorro) allocate(sampleRate float64) {
	d.predelay = delay.NewLine(dattorroBufLen(dattorroPredelaySec, sampleRate))
	d.bw = filter.NewOnePole(dattorroBandwidth)

	for i := 0; i < 4; i++ {
		d.inputAP[i] = filter.NewAllpass(dattorroBufLen(dattorroInputDiffusionSec[i], sampleRate), filter.ModeSchroeder, dattorroInputDiffusionFB[i])
	}

	for i := 0; i < 4; i++ {
		d.tankAP[i] = filter.NewAllpass(dattorroBufLen(dattorroTankApSec[i], sampleRate), filter.ModeSchroeder, dattorroTankAllpassFB[i])
		d.tankDelay[i] = delay.NewLine(dattorroBufLen(dattorroTankDelaySec[i], sampleRate))
	}
	d.dampL = filter.NewOnePole(1)
	d.dampR = filter.NewOnePole(1)

	for i := 0; i < 7; i++ {
		d.tapLeft[i] = dattorroTapLen(dattorroTapLeftSec[i], sampleRate)
		d.tapRight[i] = dattorroTapLen(dattorroTapRightSec[i], sampleRate)
	}
}

// SetParams implements Model.
func (d *Dattorro) SetParams(mask uint32, roomsize, damping, width, level float64) {
	d.params.apply(mask, roomsize, damping, width, level)
	d.update()
}

func (d *Dattorro) update() {
	d.decay = dattorroDecayBase + d.roomSize*dattorroDecayRange

	b0 := 1 - d.damping
	d.dampL.SetB0(b0)
	d.dampR.SetB0(b0)

	widthFrac := d.width / 100
	wet := d.level / (1 + widthFrac*0.2)
	d.wet1, d.wet2 = spreadWet(wet, widthFrac)
}

// ProcessReplace implements Model.
func (d *Dattorro) ProcessReplace(in, left, right []float32) {
	for i, x := range in {
		left[i], right[i] = d.processSample(x)
	}
}

// ProcessMix implements Model.
func (d *Dattorro) ProcessMix(in, left, right []float32) {
	for i, x := range in {
		wl, wr := d.processSample(x)
		left[i] += wl
		right[i] += wr
	}
}

func (d *Dattorro) processSample(x float32) (float32, float32) {
	in := x * dattorroTrim
	p := d.predelay.Process(in)
	b := d.bw.Process(p)

	s := b
	for i := 0; i < 4; i++ {
		s = d.inputAP[i].Process(s)
	}

	decay := float32(d.decay)

	td0, td1, td2, td3 := d.tankDelay[0], d.tankDelay[1], d.tankDelay[2], d.tankDelay[3]
	tap1, tap3 := d.tankAP[1], d.tankAP[3]

	L := s + decay*td3.LastOutput()
	L = d.tankAP[0].Process(L)
	L = td0.Process(L)
	dampedL := d.dampL.Process(L)
	L = tap1.Process(decay * dampedL)
	L = td1.Process(L)

	R := s + decay*td1.LastOutput()
	R = d.tankAP[2].Process(R)
	R = td2.Process(R)
	dampedR := d.dampR.Process(R)
	R = tap3.Process(decay * dampedR)
	R = td3.Process(R)

	outLeft := td2.ReadTap(d.tapLeft[0]) + td2.ReadTap(d.tapLeft[1]) -
		tap3.ReadTap(d.tapLeft[2]) + td3.ReadTap(d.tapLeft[3]) -
		td0.ReadTap(d.tapLeft[4]) - tap1.ReadTap(d.tapLeft[5]) -
		td1.ReadTap(d.tapLeft[6])

	outRight := td0.ReadTap(d.tapRight[0]) + td0.ReadTap(d.tapRight[1]) -
		tap1.ReadTap(d.tapRight[2]) + td1.ReadTap(d.tapRight[3]) -
		td2.ReadTap(d.tapRight[4]) - tap3.ReadTap(d.tapRight[5]) -
		td3.ReadTap(d.tapRight[6])

	mixL := outLeft*float32(d.wet1) + outRight*float32(d.wet2)
	mixR := outRight*float32(d.wet1) + outLeft*float32(d.wet2)
	return mixL, mixR
}

// Reset implements Model: zeros every buffer and damping state and
// repositions all cursors to 0.
func (d *Dattorro) Reset() {
	d.predelay.Reset()
	d.bw.Reset()
	for i := 0; i < 4; i++ {
		d.inputAP[i].Reset()
	}
	for i := 0; i < 4; i++ {
		d.tankAP[i].Reset()
		d.tankDelay[i].Reset()
	}
	d.dampL.Reset()
	d.dampR.Reset()
}

// SampleRateChange implements Model: Dattorro accepts any positive rate,
// reconfiguring buffer lengths and clearing state.
func (d *Dattorro) SampleRateChange(sampleRate float64) error {
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	d.sampleRate = sampleRate
	d.allocate(sampleRate)
	d.update()
	return nil
}
