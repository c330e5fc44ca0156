package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomIntervalsShapeAndValidity(t *testing.T) {
	ivs, err := RandomIntervals(RandGenOpts{N: 500, Seed: 42, MaxSpan: 1000, MaxLower: 10000})
	assert.NoError(t, err)
	assert.Len(t, ivs, 500)
	for i, iv := range ivs {
		assert.Equal(t, i, iv.Id)
		assert.True(t, iv.Lower <= iv.Upper, "interval %d: lower %d > upper %d", i, iv.Lower, iv.Upper)
	}
}

func TestRandomIntervalsDeterministicPerSeed(t *testing.T) {
	a, err := RandomIntervals(RandGenOpts{N: 50, Seed: 7, MaxSpan: 20, MaxLower: 500})
	assert.NoError(t, err)
	b, err := RandomIntervals(RandGenOpts{N: 50, Seed: 7, MaxSpan: 20, MaxLower: 500})
	assert.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := RandomIntervals(RandGenOpts{N: 50, Seed: 8, MaxSpan: 20, MaxLower: 500})
	assert.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestRandomIntervalsRejectsNegativeN(t *testing.T) {
	_, err := RandomIntervals(RandGenOpts{N: -1})
	assert.Error(t, err)
}

func TestRandomIntervalsRejectsOversizeN(t *testing.T) {
	_, err := RandomIntervals(RandGenOpts{N: maxRandN + 1})
	assert.Error(t, err)
}

func TestRandomIntervalsZero(t *testing.T) {
	ivs, err := RandomIntervals(RandGenOpts{N: 0})
	assert.NoError(t, err)
	assert.Empty(t, ivs)
}
