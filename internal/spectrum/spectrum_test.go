package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplatAndBlack(t *testing.T) {
	assert.True(t, Spectrum{}.IsBlack())
	assert.False(t, Splat(0.5).IsBlack())
	assert.InDelta(t, 0.5*float64(Size), Splat(0.5).Sum(), 1e-12)
}

func TestPointwiseArithmetic(t *testing.T) {
	a := Splat(0.25)
	b := Splat(0.5)

	assert.Equal(t, Splat(0.75), a.Add(b))
	assert.Equal(t, Splat(-0.25), a.Sub(b))
	assert.Equal(t, Splat(0.125), a.Mul(b))
	assert.Equal(t, Splat(0.5), a.Div(b))
	assert.Equal(t, Splat(0.5), a.Scale(2))
	assert.Equal(t, Splat(-0.25), a.Neg())
}

func TestClamped(t *testing.T) {
	var s Spectrum
	s[0] = 0
	s[1] = 0.5
	s[2] = 1

	c := s.Clamped(0.25, 0.75)
	assert.Equal(t, 0.25, c[0])
	assert.Equal(t, 0.5, c[1])
	assert.Equal(t, 0.75, c[2])
}

func TestLerped(t *testing.T) {
	a := Splat(0)
	b := Splat(1)
	assert.True(t, a.Lerped(b, 0.25).ApproxEq(Splat(0.25)))
}

func TestSqrt(t *testing.T) {
	assert.True(t, Splat(0.25).Sqrt().ApproxEq(Splat(0.5)))
}

func TestMinMaxValue(t *testing.T) {
	s := Splat(0.5)
	s[0] = 0.1
	s[Size-1] = 0.9

	assert.Equal(t, 0.1, s.MinValue())
	assert.Equal(t, 0.9, s.MaxValue())
}

func TestLambdaGrid(t *testing.T) {
	assert.InDelta(t, LambdaStart, Lambda(0), 1e-12)
	assert.InDelta(t, LambdaEnd, Lambda(Size-1), 1e-12)

	wave := Splat(0.5).AsLightWave(0)
	assert.InDelta(t, LambdaStart, wave.Lambda, 1e-12)
	assert.Equal(t, 0.5, wave.Intensity)
}

func TestAsLightWaves(t *testing.T) {
	waves := Splat(1).AsLightWaves()
	assert.Equal(t, Size, len(waves))
	for i, w := range waves {
		assert.InDelta(t, Lambda(i), w.Lambda, 1e-12)
		assert.Equal(t, 1.0, w.Intensity)
	}
}
