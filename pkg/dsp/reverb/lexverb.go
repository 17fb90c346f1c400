package reverb

import (
	"math"

	"github.com/justyntemme/reverbcore/pkg/dsp/delay"
	"github.com/justyntemme/reverbcore/pkg/dsp/filter"
)

// lexTrim attenuates the input feeding each of Lexverb's two allpass
// cascades (spec §4.6).
const lexTrim = 0.7

// lexStage describes one cascade stage's fixed tuning.
type lexStage struct {
	ms   float64
	coef float64
}

// Ten cascade allpasses (AP0..AP9) followed by the two cross-delays
// (dl0, dl1), in the order spec §4.6's table lists them.
var lexStages = [12]lexStage{
	{50.00, 0.750}, // AP0
	{44.50, 0.720}, // AP1
	{37.37, 0.691}, // AP2
	{24.85, 0.649}, // AP3
	{19.31, 0.662}, // AP4
	{49.60, 0.750}, // AP5
	{45.13, 0.720}, // AP6
	{35.25, 0.691}, // AP7
	{28.17, 0.649}, // AP8
	{15.59, 0.646}, // AP9
	{8.71, 0.646},  // dl0
	{12.05, 0.666}, // dl1
}

func lexBufferLen(ms, sampleRate float64) int {
	n := int(math.Round(ms * sampleRate / 1000))
	if n < 1 {
		n = 1
	}
	return n
}

// Lexverb implements a Lexicon-style cascade reverb: two 5-stage
// Schroeder allpass chains cross-coupled by two delay lines, feeding a
// shared one-pole damping tail.
type Lexverb struct {
	params
	ap  [10]*filter.Allpass
	dl0 *delay.Line
	dl1 *delay.Line

	dampStateL, dampStateR float32

	sampleRate float64
}

// NewLexverb constructs a Lexverb instance for the given sample rate.
func NewLexverb(sampleRate float64) (*Lexverb, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	l := &Lexverb{params: newParams(), sampleRate: sampleRate}
	l.allocate(sampleRate)
	l.update()
	return l, nil
}

func (l *Lexverb) allocate(sampleRate float64) {
	for i := 0; i < 10; i++ {
		n := lexBufferLen(lexStages[i].ms, sampleRate)
		l.ap[i] = filter.NewAllpass(n, filter.ModeSchroeder, lexStages[i].coef)
	}
	l.dl0 = delay.NewLine(lexBufferLen(lexStages[10].ms, sampleRate))
	l.dl0.Coefficient = lexStages[10].coef
	l.dl1 = delay.NewLine(lexBufferLen(lexStages[11].ms, sampleRate))
	l.dl1.Coefficient = lexStages[11].coef
}

// SetParams implements Model.
func (l *Lexverb) SetParams(mask uint32, roomsize, damping, width, level float64) {
	l.params.apply(mask, roomsize, damping, width, level)
	l.update()
}

func (l *Lexverb) update() {
	roomscale := 0.5 + 0.5*l.roomSize
	widthFrac := l.width / 100
	wet := l.level * roomscale / (1 + widthFrac*0.2)
	l.wet1, l.wet2 = spreadWet(wet, widthFrac)
}

// ProcessReplace implements Model.
func (l *Lexverb) ProcessReplace(in, left, right []float32) {
	for i, x := range in {
		left[i], right[i] = l.processSample(x)
	}
}

// ProcessMix implements Model.
func (l *Lexverb) ProcessMix(in, left, right []float32) {
	for i, x := range in {
		wl, wr := l.processSample(x)
		left[i] += wl
		right[i] += wr
	}
}

func (l *Lexverb) processSample(x float32) (float32, float32) {
	in := x * lexTrim

	L := l.ap[0].Process(in)
	L = l.ap[1].Process(L)
	dl1Out := l.dl1.Process(l.ap[9].LastOutput()) * float32(l.dl1.Coefficient)
	L = l.ap[2].Process(L + dl1Out)
	L = l.ap[3].Process(L)
	L = l.ap[4].Process(L)

	R := l.ap[5].Process(in)
	R = l.ap[6].Process(R)
	dl0Out := l.dl0.Process(l.ap[4].LastOutput()) * float32(l.dl0.Coefficient)
	R = l.ap[7].Process(R + dl0Out)
	R = l.ap[8].Process(R)
	R = l.ap[9].Process(R)

	if l.damping > 0 {
		damp := float32(l.damping)
		L = L*(1-damp) + l.dampStateL*damp
		l.dampStateL = L
		R = R*(1-damp) + l.dampStateR*damp
		l.dampStateR = R
	}

	mixL := L*float32(l.wet1) + R*float32(l.wet2)
	mixR := R*float32(l.wet1) + L*float32(l.wet2)
	return mixL, mixR
}

// Reset implements Model.
func (l *Lexverb) Reset() {
	for i := 0; i < 10; i++ {
		l.ap[i].Reset()
	}
	l.dl0.Reset()
	l.dl1.Reset()
	l.dampStateL = 0
	l.dampStateR = 0
}

// SampleRateChange implements Model. Lexverb cannot reconfigure its
// cascade in place, so it reports ErrUnsupported (spec §4.6, Open
// Questions).
func (l *Lexverb) SampleRateChange(sampleRate float64) error {
	return ErrUnsupported
}
