package bxdf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/sampler"
	"spectral-renderer/internal/spectrum"
)

func TestRotationInvolution(t *testing.T) {
	normals := []mathutil.Vec3{
		{0, 1, 0},
		{0, -1, 0},
		mathutil.Vec3{1, 2, 3}.Normalize(),
		mathutil.Vec3{-0.5, 0.1, 0.8}.Normalize(),
	}
	v := mathutil.Vec3{0.3, -0.7, 0.2}

	for _, n := range normals {
		toLocal := WorldToBxdf(n)
		toWorld := BxdfToWorld(n)

		back := toWorld.Apply(toLocal.Apply(v))
		for i := 0; i < 3; i++ {
			assert.InDelta(t, v[i], back[i], 1e-9)
		}
	}
}

func TestWorldToBxdfMapsNormalToUp(t *testing.T) {
	n := mathutil.Vec3{0.2, 0.5, -0.3}.Normalize()
	local := WorldToBxdf(n).Apply(n)

	assert.InDelta(t, 0, local[0], 1e-12)
	assert.InDelta(t, 1, local[1], 1e-12)
	assert.InDelta(t, 0, local[2], 1e-12)
}

func TestRotationReversedIsInverse(t *testing.T) {
	n := mathutil.Vec3{0.4, 0.8, -0.2}.Normalize()
	r := WorldToBxdf(n)

	v := mathutil.Vec3{1, 0.5, -2}
	back := r.Reversed().Apply(r.Apply(v))
	for i := 0; i < 3; i++ {
		assert.InDelta(t, v[i], back[i], 1e-9)
	}
}

func TestBSDFEvaluateSingleLambertian(t *testing.T) {
	rho := spectrum.Splat(0.5)
	bsdf := NewBSDF(NewLambertianReflection(rho))

	normal := mathutil.Vec3{0, 0, 1}
	incident := mathutil.Vec3{0.2, 0.1, 0.9}.Normalize()
	outgoing := mathutil.Vec3{-0.3, 0.2, 0.8}.Normalize()

	f := bsdf.Evaluate(normal, incident, outgoing, 0.5, None)
	want := rho.Scale(1 / math.Pi)
	for i := range f {
		assert.InDelta(t, want[i], f[i], 1e-6)
	}
}

func TestBSDFEvaluateNoMatchIsBlack(t *testing.T) {
	bsdf := NewBSDF(NewLambertianReflection(spectrum.Splat(0.5)))

	normal := mathutil.Vec3{0, 1, 0}
	incident := mathutil.Vec3{0.2, 0.9, 0}.Normalize()
	outgoing := mathutil.Vec3{-0.2, 0.9, 0}.Normalize()

	// requiring specular rules out the lambertian
	f := bsdf.Evaluate(normal, incident, outgoing, 0.5, Specular)
	assert.True(t, f.IsBlack())
}

func TestBSDFEvaluateHemisphereConstraint(t *testing.T) {
	// a same-hemisphere pair clears TRANSMISSION from the query, leaving a
	// REFLECTION query that the lone transmission lobe does not match, so
	// the result is black
	bsdf := NewBSDF(NewLambertianTransmission(spectrum.Splat(0.5)))
	query := Reflection | Transmission

	normal := mathutil.Vec3{0, 1, 0}
	incident := mathutil.Vec3{0.2, 0.9, 0}.Normalize()
	outgoing := mathutil.Vec3{-0.2, 0.9, 0}.Normalize()

	f := bsdf.Evaluate(normal, incident, outgoing, 0.5, query)
	assert.True(t, f.IsBlack())

	// an opposite-hemisphere pair clears REFLECTION instead and reaches it
	below := mathutil.Vec3{0.2, -0.9, 0}.Normalize()
	f = bsdf.Evaluate(normal, below, outgoing, 0.5, query)
	assert.False(t, f.IsBlack())
}

func TestBSDFSampleRotatesBackToWorld(t *testing.T) {
	bsdf := NewBSDF(NewLambertianReflection(spectrum.Splat(0.5)))

	normal := mathutil.Vec3{1, 0, 0}
	outgoing := mathutil.Vec3{0.9, 0.1, 0}.Normalize()

	s := sampler.Sample{Float: 0.3, Vec2: mathutil.Vec2{0.4, 0.6}}
	sample, ok := bsdf.Sample(normal, outgoing, s, None)
	assert.True(t, ok)
	// the incident direction lies in the reflection hemisphere of the
	// world normal
	assert.Greater(t, sample.Incident.Dot(normal), 0.0)
	assert.InDelta(t, 1, sample.Incident.Len(), 1e-9)
}

func TestBSDFEmpty(t *testing.T) {
	bsdf := EmptyBSDF()
	assert.True(t, bsdf.IsEmpty())
	assert.Equal(t, 0, bsdf.Size())

	_, ok := bsdf.Sample(mathutil.UnitY(), mathutil.UnitY(), sampler.Sample{}, None)
	assert.False(t, ok)
}

func TestBSDFSamplePacketSplitsOnDispersion(t *testing.T) {
	air := NewRefractiveType(Air)
	glass := NewRefractiveType(Glass)
	bsdf := NewBSDF(NewSpecularTransmission(spectrum.Splat(1), air, glass))

	normal := mathutil.UnitY()
	outgoing := mathutil.Vec3{0.3, 0.8, 0}.Normalize()

	var indices [spectrum.PacketSize]int
	for i := range indices {
		indices[i] = i * (spectrum.Size / spectrum.PacketSize)
	}

	packet := bsdf.SamplePacket(normal, outgoing, sampler.Sample{Float: 0.1, Vec2: mathutil.Vec2{0.2, 0.3}}, None, indices)
	assert.True(t, packet.IsSplit)

	for _, s := range packet.Split {
		if s == nil {
			continue
		}
		assert.Less(t, s.Incident[1], 0.0)
	}
}
