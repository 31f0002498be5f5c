package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spectral-renderer/internal/spectrum"
)

func TestProgressiveMean(t *testing.T) {
	var px Pixel

	for _, v := range []float64{1, 3, 5} {
		px.AddLambda(v, 0)
	}

	assert.InDelta(t, 3, px.Average[0], 1e-12)
	assert.Equal(t, uint32(3), px.Samples[0])
}

func TestAddFullSpectrum(t *testing.T) {
	var px Pixel

	px.Add(spectrum.Splat(2))
	px.Add(spectrum.Splat(4))

	for i := 0; i < spectrum.Size; i++ {
		assert.InDelta(t, 3, px.Average[i], 1e-12)
		assert.Equal(t, uint32(2), px.Samples[i])
	}
}

func TestAddNoneKeepsMeanWeighted(t *testing.T) {
	var px Pixel

	px.AddLambda(6, 0)
	px.AddNoneLambda(0)
	px.AddNoneLambda(0)

	assert.InDelta(t, 2, px.Average[0], 1e-12)
	assert.Equal(t, uint32(3), px.Samples[0])
}

func TestAddPacket(t *testing.T) {
	var px Pixel

	var values [spectrum.PacketSize]float64
	var indices [spectrum.PacketSize]int
	for i := range values {
		values[i] = float64(i + 1)
		indices[i] = i
	}

	px.AddPacket(values, indices)

	for i := 0; i < spectrum.PacketSize; i++ {
		assert.InDelta(t, float64(i+1), px.Average[i], 1e-12)
		assert.Equal(t, uint32(1), px.Samples[i])
	}
}

func TestPixelReset(t *testing.T) {
	var px Pixel
	px.Add(spectrum.Splat(1))
	px.Reset()

	assert.True(t, px.Average.IsBlack())
	assert.Equal(t, uint32(0), px.Samples[0])
}

func TestSensorTiling(t *testing.T) {
	s := New(64, 32)

	assert.Equal(t, (64/TileWidth)*(32/TileWidth), s.NumTiles())

	// every pixel coordinate appears exactly once
	seen := map[[2]int]bool{}
	for _, tile := range s.Tiles {
		for i := range tile.Pixels {
			px := &tile.Pixels[i]
			key := [2]int{px.X, px.Y}
			assert.False(t, seen[key], "duplicate pixel %v", key)
			seen[key] = true

			assert.GreaterOrEqual(t, px.X, 0)
			assert.Less(t, px.X, 64)
			assert.GreaterOrEqual(t, px.Y, 0)
			assert.Less(t, px.Y, 32)
		}
	}
	assert.Equal(t, 64*32, len(seen))
}

func TestSensorPanicsOnBadResolution(t *testing.T) {
	assert.Panics(t, func() { New(65, 32) })
	assert.Panics(t, func() { New(64, 33) })
}
