package reverb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestWetCoefficientsStayNonNegative covers invariant 2 (spec §8): for any
// width in its declared [0, 100] range and any non-negative wet level,
// wet1 and wet2 must both stay non-negative.
func TestWetCoefficientsStayNonNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		wet := rapid.Float64Range(0, 10).Draw(t, "wet")
		width := rapid.Float64Range(0, 100).Draw(t, "width")

		wet1, wet2 := spreadWet(wet, width/100)

		assert.GreaterOrEqual(t, wet1, 0.0)
		assert.GreaterOrEqual(t, wet2, 0.0)
	})
}

// TestSetParamsClampsAnyInput covers invariant 8: SetParams clamps every
// field to its declared range regardless of what is passed in, for all
// three algorithms.
func TestSetParamsClampsAnyInput(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		roomsize := rapid.Float64Range(-100, 100).Draw(t, "roomsize")
		damping := rapid.Float64Range(-100, 100).Draw(t, "damping")
		width := rapid.Float64Range(-1000, 1000).Draw(t, "width")
		level := rapid.Float64Range(-100, 100).Draw(t, "level")

		for _, newModel := range []func() (Model, error){
			func() (Model, error) { return NewFreeverb(44100) },
			func() (Model, error) { return NewLexverb(44100) },
			func() (Model, error) { return NewDattorro(44100) },
		} {
			m, err := newModel()
			require.NoError(t, err)
			m.SetParams(SetAll, roomsize, damping, width, level)

			var p *params
			switch v := m.(type) {
			case *Freeverb:
				p = &v.params
			case *Lexverb:
				p = &v.params
			case *Dattorro:
				p = &v.params
			}
			assert.GreaterOrEqual(t, p.roomSize, 0.0)
			assert.LessOrEqual(t, p.roomSize, 1.0)
			assert.GreaterOrEqual(t, p.damping, 0.0)
			assert.LessOrEqual(t, p.damping, 1.0)
			assert.GreaterOrEqual(t, p.width, 0.0)
			assert.LessOrEqual(t, p.width, 100.0)
			assert.GreaterOrEqual(t, p.level, 0.0)
			assert.LessOrEqual(t, p.level, 1.0)
		}
	})
}

// TestProcessMixEqualsProcessReplacePlusExisting covers invariant 6: for
// any pre-existing buffer content, ProcessMix(in, l, r) must equal
// l/r += ProcessReplace(in, ...) applied to a zeroed buffer, sample for
// sample, for every algorithm.
func TestProcessMixEqualsProcessReplacePlusExisting(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 128).Draw(t, "n")
		in := rapid.SliceOfN(rapid.Float32Range(-1, 1), n, n).Draw(t, "in")
		existingL := rapid.SliceOfN(rapid.Float32Range(-1, 1), n, n).Draw(t, "existingL")
		existingR := rapid.SliceOfN(rapid.Float32Range(-1, 1), n, n).Draw(t, "existingR")

		for _, newModel := range []func() (Model, error){
			func() (Model, error) { return NewFreeverb(44100) },
			func() (Model, error) { return NewLexverb(44100) },
			func() (Model, error) { return NewDattorro(44100) },
		} {
			replaceModel, err := newModel()
			require.NoError(t, err)
			replL := make([]float32, n)
			replR := make([]float32, n)
			replaceModel.ProcessReplace(in, replL, replR)

			mixModel, err := newModel()
			require.NoError(t, err)
			mixL := append([]float32(nil), existingL...)
			mixR := append([]float32(nil), existingR...)
			mixModel.ProcessMix(in, mixL, mixR)

			for i := 0; i < n; i++ {
				assert.InDeltaf(t, float64(existingL[i]+replL[i]), float64(mixL[i]), 1e-4, "left[%d]", i)
				assert.InDeltaf(t, float64(existingR[i]+replR[i]), float64(mixR[i]), 1e-4, "right[%d]", i)
			}
		}
	})
}

// TestZeroMaskNeverChangesParams covers invariant 7: a SetParams call with
// mask == 0 must leave every stored control untouched. It is exercised on
// Freeverb here; Lexverb and Dattorro have their own mask-zero tests.
func TestZeroMaskNeverChangesParams(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		roomsize := rapid.Float64Range(0, 1).Draw(t, "roomsize")
		damping := rapid.Float64Range(0, 1).Draw(t, "damping")
		width := rapid.Float64Range(0, 100).Draw(t, "width")
		level := rapid.Float64Range(0, 1).Draw(t, "level")
		junkRoomsize := rapid.Float64Range(0, 1).Draw(t, "junkRoomsize")
		junkDamping := rapid.Float64Range(0, 1).Draw(t, "junkDamping")
		junkWidth := rapid.Float64Range(0, 100).Draw(t, "junkWidth")
		junkLevel := rapid.Float64Range(0, 1).Draw(t, "junkLevel")

		f, err := NewFreeverb(44100)
		require.NoError(t, err)
		f.SetParams(SetAll, roomsize, damping, width, level)
		before := f.params

		f.SetParams(0, junkRoomsize, junkDamping, junkWidth, junkLevel)

		assert.Equal(t, before, f.params)
	})
}
