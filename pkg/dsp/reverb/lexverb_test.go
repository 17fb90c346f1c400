package reverb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLexverbRejectsBadSampleRate(t *testing.T) {
	m, err := NewLexverb(0)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrInvalidSampleRate)
}

func TestLexverbSampleRateChangeUnsupported(t *testing.T) {
	l, err := NewLexverb(44100)
	require.NoError(t, err)

	err = l.SampleRateChange(48000)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLexverbSilenceInSilenceOut(t *testing.T) {
	l, err := NewLexverb(44100)
	require.NoError(t, err)

	in := make([]float32, 256)
	left := make([]float32, 256)
	right := make([]float32, 256)
	l.ProcessReplace(in, left, right)

	for i := range left {
		assert.Equal(t, float32(0), left[i])
		assert.Equal(t, float32(0), right[i])
	}
}

func TestLexverbImpulseProducesTail(t *testing.T) {
	l, err := NewLexverb(44100)
	require.NoError(t, err)
	l.SetParams(SetAll, 0.8, 0.3, 100, 1.0)

	in := make([]float32, 4096)
	in[0] = 1
	left := make([]float32, len(in))
	right := make([]float32, len(in))
	l.ProcessReplace(in, left, right)

	var energy float64
	for i := 500; i < len(left); i++ {
		energy += float64(left[i]) * float64(left[i])
	}
	assert.Greater(t, energy, 0.0)
}

func TestLexverbResetConvergesToSilence(t *testing.T) {
	l, err := NewLexverb(44100)
	require.NoError(t, err)
	l.SetParams(SetAll, 0.9, 0.2, 100, 1.0)

	in := make([]float32, 1024)
	in[0] = 1
	left := make([]float32, len(in))
	right := make([]float32, len(in))
	l.ProcessReplace(in, left, right)

	l.Reset()

	silence := make([]float32, 256)
	outL := make([]float32, len(silence))
	outR := make([]float32, len(silence))
	l.ProcessReplace(silence, outL, outR)

	for i := range outL {
		assert.Equal(t, float32(0), outL[i])
		assert.Equal(t, float32(0), outR[i])
	}
}

func TestLexverbMaskZeroIsNoOp(t *testing.T) {
	l, err := NewLexverb(44100)
	require.NoError(t, err)
	l.SetParams(SetAll, 0.5, 0.5, 100, 0.5)
	before := l.params

	l.SetParams(0, 0.99, 0.01, 1, 0.01)

	assert.Equal(t, before, l.params)
}

func TestLexverbProcessMixAddsToExisting(t *testing.T) {
	a, err := NewLexverb(44100)
	require.NoError(t, err)
	b, err := NewLexverb(44100)
	require.NoError(t, err)

	in := make([]float32, 512)
	in[0] = 1

	replL := make([]float32, len(in))
	replR := make([]float32, len(in))
	a.ProcessReplace(in, replL, replR)

	mixL := make([]float32, len(in))
	mixR := make([]float32, len(in))
	mixL[0], mixL[1] = 1, 2
	wantL := make([]float32, len(in))
	wantR := make([]float32, len(in))
	copy(wantL, mixL)
	copy(wantR, mixR)
	b.ProcessMix(in, mixL, mixR)

	for i := range replL {
		assert.InDelta(t, float64(wantL[i]+replL[i]), float64(mixL[i]), 1e-5)
		assert.InDelta(t, float64(wantR[i]+replR[i]), float64(mixR[i]), 1e-5)
	}
}
