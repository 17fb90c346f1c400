package reverb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "freeverb", TypeFreeverb.String())
	assert.Equal(t, "lexverb", TypeLexverb.String())
	assert.Equal(t, "fdn", TypeFDN.String())
	assert.Equal(t, "reverb.Type(99)", Type(99).String())
}

func TestSetAllCombinesEveryMask(t *testing.T) {
	assert.Equal(t, SetRoomSize|SetDamping|SetWidth|SetLevel, uint32(SetAll))
}

func TestClampHelpers(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-1, 0, 1))
	assert.Equal(t, 1.0, clamp(2, 0, 1))
	assert.Equal(t, 0.5, clamp(0.5, 0, 1))
	assert.Equal(t, 0.0, clamp01(-5))
	assert.Equal(t, 1.0, clamp01(5))
}

func TestSpreadWetZeroWidthIsMonoEquivalent(t *testing.T) {
	wet1, wet2 := spreadWet(1.0, 0.0)
	assert.InDelta(t, 0.5, wet1, 1e-9)
	assert.InDelta(t, 0.5, wet2, 1e-9)
}

func TestSpreadWetFullWidthMaximizesSeparation(t *testing.T) {
	wet1, wet2 := spreadWet(1.0, 1.0)
	assert.InDelta(t, 1.0, wet1, 1e-9)
	assert.InDelta(t, 0.0, wet2, 1e-9)
}

func TestParamsApplyHonorsMask(t *testing.T) {
	p := newParams()
	p.apply(SetRoomSize|SetLevel, 0.9, 0.1, 10, 0.2)

	assert.Equal(t, 0.9, p.roomSize)
	assert.Equal(t, 0.2, p.level)
	assert.Equal(t, 0.5, p.damping)
	assert.Equal(t, 100.0, p.width)
}
