// Package sampler provides the random number sources of the renderer.
// Samplers are plain configuration values; the random generator is passed in
// explicitly so every worker can carry its own deterministically seeded
// source instead of relying on ambient state.
package sampler

import (
	"math"
	"math/rand"

	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/spectrum"
)

// NewRand creates a deterministically seeded generator for one worker.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Sample bundles one float and one 2D sample.
type Sample struct {
	Float float64
	Vec2  mathutil.Vec2
}

// FloatSampler draws floats in [0, 1): either random or a fixed constant.
type FloatSampler struct {
	Constant bool
	Value    float64
}

// RandomFloats returns the random float sampler.
func RandomFloats() FloatSampler {
	return FloatSampler{}
}

// ConstantFloats returns a sampler that always yields value.
func ConstantFloats(value float64) FloatSampler {
	return FloatSampler{Constant: true, Value: value}
}

func (s FloatSampler) Float(rng *rand.Rand) float64 {
	if s.Constant {
		return s.Value
	}
	return rng.Float64()
}

func (s FloatSampler) Vec2(rng *rand.Rand) mathutil.Vec2 {
	if s.Constant {
		return mathutil.Vec2{s.Value, s.Value}
	}
	return mathutil.Vec2{rng.Float64(), rng.Float64()}
}

func (s FloatSampler) Sample(rng *rand.Rand) Sample {
	return Sample{Float: s.Float(rng), Vec2: s.Vec2(rng)}
}

// CameraSampler draws the sub-pixel offset of primary rays.
type CameraSampler struct {
	Constant bool
	Value    mathutil.Vec2
}

// RandomOffsets returns the random camera sampler.
func RandomOffsets() CameraSampler {
	return CameraSampler{}
}

// ConstantOffsets returns a camera sampler with a fixed sub-pixel offset.
func ConstantOffsets(x, y float64) CameraSampler {
	return CameraSampler{Constant: true, Value: mathutil.Vec2{x, y}}
}

func (s CameraSampler) Sample(rng *rand.Rand) mathutil.Vec2 {
	if s.Constant {
		return s.Value
	}
	return mathutil.Vec2{rng.Float64(), rng.Float64()}
}

// SpectralStrategy selects how wavelength packets are assembled.
type SpectralStrategy int

const (
	// SpectralRandom draws fully randomized indices.
	SpectralRandom SpectralStrategy = iota
	// SpectralHero draws one hero index and spreads the rest equally over
	// the spectrum.
	SpectralHero
)

// SpectralSampler creates wavelength index packets.
type SpectralSampler struct {
	Strategy SpectralStrategy
}

// Indices fills a fresh wavelength packet.
func (s SpectralSampler) Indices(rng *rand.Rand) [spectrum.PacketSize]int {
	var indices [spectrum.PacketSize]int

	switch s.Strategy {
	case SpectralRandom:
		for i := range indices {
			indices[i] = rng.Intn(spectrum.Size)
		}
	case SpectralHero:
		if spectrum.PacketSize == spectrum.Size {
			for i := range indices {
				indices[i] = i
			}
			break
		}
		hero := rng.Intn(spectrum.Size)
		for j := range indices {
			indices[j] = heroRotation(j, hero)
		}
	}

	return indices
}

// heroRotation implements equation 5 of
// "Hero Wavelength Spectral Sampling" (Wilkie et al., 2014).
func heroRotation(j, hero int) int {
	percentage := float64(j) / float64(spectrum.PacketSize)
	spread := percentage * float64(spectrum.Size)

	return (hero + int(math.Round(spread))) % spectrum.Size
}
