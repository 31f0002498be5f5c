// Package integrator computes the radiance estimate of each pixel by Monte
// Carlo integration of the light transport equation.
//
// Traced path families, with E the eye, L the light, D/G/S diffuse, glossy
// and specular interactions:
//   - Whitted recursive ray tracing: E[S*](D|G)L
//   - Kajiya path tracing:           E[(D|G|S)+(D|G)]L
package integrator

import (
	"math"
	"math/rand"

	"spectral-renderer/internal/bxdf"
	"spectral-renderer/internal/geometry"
	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/sampler"
	"spectral-renderer/internal/scene"
	"spectral-renderer/internal/sensor"
	"spectral-renderer/internal/spectrum"
)

// Integrator accumulates the radiance estimate of one primary ray into the
// pixel. Implementations must register a "no sample" outcome on miss so the
// running means stay correctly weighted.
type Integrator interface {
	Integrate(sc *scene.Scene, primary geometry.Ray, px *sensor.Pixel, rng *rand.Rand)
}

// DirectIllumination selects the emitter sampling strategy.
type DirectIllumination int

const (
	// All iterates every emitter.
	All DirectIllumination = iota
	// Random picks one emitter uniformly.
	Random
)

// emitterIndices resolves the emitters to sample this event.
func (d DirectIllumination) emitterIndices(sc *scene.Scene, u float64) []uint32 {
	emitters := sc.Emitters()
	if d == All || len(emitters) == 0 {
		return emitters
	}

	chosen := int(u * float64(len(emitters)))
	if chosen >= len(emitters) {
		chosen = len(emitters) - 1
	}
	return emitters[chosen : chosen+1]
}

// Sample estimates the direct illumination arriving at the hit point:
// emitter radiance filtered by the BSDF and the geometric cosine, guarded by
// the occlusion test.
func (d DirectIllumination) Sample(sc *scene.Scene, hit *scene.Intersection, smp sampler.FloatSampler, rng *rand.Rand) spectrum.Spectrum {
	var illum spectrum.Spectrum

	bsdf := hit.Object.BSDF()
	if bsdf.IsEmpty() {
		return illum
	}

	outgoingWorld := hit.Incoming.Neg()

	for _, index := range d.emitterIndices(sc, smp.Float(rng)) {
		emitter := sc.EmitterAt(index)
		if emitter == nil {
			continue
		}

		es := emitter.Sample(hit.Point, smp.Vec2(rng))
		if es.Radiance.IsBlack() || !es.Occlusion.Unoccluded(sc) {
			continue
		}

		f := bsdf.Evaluate(hit.Normal, es.Incident, outgoingWorld, smp.Float(rng), bxdf.None)
		if f.IsBlack() {
			continue
		}

		if cos := es.Incident.Dot(hit.Normal); cos != 0 {
			illum = illum.Add(f.Mul(es.Radiance).Scale(math.Abs(cos)))
		}
	}

	return illum
}

// SampleLambda is Sample for a single wavelength bin.
func (d DirectIllumination) SampleLambda(sc *scene.Scene, hit *scene.Intersection, smp sampler.FloatSampler, rng *rand.Rand, index int) float64 {
	illum := 0.0

	bsdf := hit.Object.BSDF()
	if bsdf.IsEmpty() {
		return illum
	}

	outgoingWorld := hit.Incoming.Neg()

	for _, emitterIndex := range d.emitterIndices(sc, smp.Float(rng)) {
		emitter := sc.EmitterAt(emitterIndex)
		if emitter == nil {
			continue
		}

		es := emitter.SampleLambda(hit.Point, smp.Vec2(rng), index)
		if es.Radiance == 0 || !es.Occlusion.Unoccluded(sc) {
			continue
		}

		f := bsdf.EvaluateLambda(hit.Normal, es.Incident, outgoingWorld, smp.Float(rng), bxdf.None, index)
		if f == 0 {
			continue
		}

		if cos := es.Incident.Dot(hit.Normal); cos != 0 {
			illum += f * es.Radiance * math.Abs(cos)
		}
	}

	return illum
}

// SamplePacket is Sample for a packet of wavelength bins.
func (d DirectIllumination) SamplePacket(sc *scene.Scene, hit *scene.Intersection, smp sampler.FloatSampler, rng *rand.Rand, indices [spectrum.PacketSize]int) [spectrum.PacketSize]float64 {
	var illum [spectrum.PacketSize]float64

	bsdf := hit.Object.BSDF()
	if bsdf.IsEmpty() {
		return illum
	}

	outgoingWorld := hit.Incoming.Neg()

	for _, emitterIndex := range d.emitterIndices(sc, smp.Float(rng)) {
		emitter := sc.EmitterAt(emitterIndex)
		if emitter == nil {
			continue
		}

		es := emitter.SamplePacket(hit.Point, smp.Vec2(rng), indices)
		if packetIsBlack(es.Radiance) || !es.Occlusion.Unoccluded(sc) {
			continue
		}

		f := bsdf.EvaluatePacket(hit.Normal, es.Incident, outgoingWorld, smp.Float(rng), bxdf.None, indices)
		if packetIsBlack(f) {
			continue
		}

		if cos := es.Incident.Dot(hit.Normal); cos != 0 {
			cosAbs := math.Abs(cos)
			for i := range illum {
				illum[i] += f[i] * es.Radiance[i] * cosAbs
			}
		}
	}

	return illum
}

func packetIsBlack(p [spectrum.PacketSize]float64) bool {
	for _, v := range p {
		if v != 0 {
			return false
		}
	}
	return true
}

// specularCos returns the |cos| throughput factor: specular BxDFs omit the
// cosine, matching the delta-distribution convention.
func specularCos(flag bxdf.Flag, incident, normal mathutil.Vec3) float64 {
	if flag.IsSpecular() {
		return 1
	}
	return math.Abs(incident.Dot(normal))
}
