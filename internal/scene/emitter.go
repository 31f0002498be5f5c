package scene

import (
	"spectral-renderer/internal/bxdf"
	"spectral-renderer/internal/geometry"
	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/spectrum"
)

// Emitter is a sampleable geometry with a BSDF and an emission spectrum.
type Emitter struct {
	Shape    Sampleable
	BSDF     *bxdf.BSDF
	Emission spectrum.Spectrum
}

// NewEmitter creates an emitter.
func NewEmitter(shape Sampleable, b *bxdf.BSDF, emission spectrum.Spectrum) *Emitter {
	return &Emitter{Shape: shape, BSDF: b, Emission: emission}
}

// Radiance returns the emission towards incident. Emission is one-sided:
// black when the incident direction faces away from the surface normal.
func (e *Emitter) Radiance(incident, normal mathutil.Vec3) spectrum.Spectrum {
	if incident.Dot(normal) > 0 {
		return e.Emission
	}
	return spectrum.Spectrum{}
}

// RadianceLambda is Radiance for a single wavelength bin.
func (e *Emitter) RadianceLambda(incident, normal mathutil.Vec3, index int) float64 {
	if incident.Dot(normal) > 0 {
		return e.Emission[index]
	}
	return 0
}

// RadiancePacket is Radiance for a packet of wavelength bins.
func (e *Emitter) RadiancePacket(incident, normal mathutil.Vec3, indices [spectrum.PacketSize]int) [spectrum.PacketSize]float64 {
	var radiance [spectrum.PacketSize]float64
	if incident.Dot(normal) > 0 {
		for i, idx := range indices {
			radiance[i] = e.Emission[idx]
		}
	}
	return radiance
}

// EmitterSample carries the emitter radiance towards a shading point, the
// incident direction at that point, and the occlusion test guarding it.
type EmitterSample[T any] struct {
	Radiance  T
	Incident  mathutil.Vec3
	Occlusion OcclusionTester
}

// Sample draws a surface point and bundles the radiance reaching point with
// the occlusion ray to verify visibility.
func (e *Emitter) Sample(point mathutil.Vec3, u mathutil.Vec2) EmitterSample[spectrum.Spectrum] {
	surface := e.Shape.SampleSurface(point, u)
	occlusion := OcclusionBetween(point, surface.Point)
	incident := occlusion.Ray.Direction

	return EmitterSample[spectrum.Spectrum]{
		Radiance:  e.Radiance(incident.Neg(), surface.Normal),
		Incident:  incident,
		Occlusion: occlusion,
	}
}

// SampleLambda is Sample for a single wavelength bin.
func (e *Emitter) SampleLambda(point mathutil.Vec3, u mathutil.Vec2, index int) EmitterSample[float64] {
	surface := e.Shape.SampleSurface(point, u)
	occlusion := OcclusionBetween(point, surface.Point)
	incident := occlusion.Ray.Direction

	return EmitterSample[float64]{
		Radiance:  e.RadianceLambda(incident.Neg(), surface.Normal, index),
		Incident:  incident,
		Occlusion: occlusion,
	}
}

// SamplePacket is Sample for a packet of wavelength bins.
func (e *Emitter) SamplePacket(point mathutil.Vec3, u mathutil.Vec2, indices [spectrum.PacketSize]int) EmitterSample[[spectrum.PacketSize]float64] {
	surface := e.Shape.SampleSurface(point, u)
	occlusion := OcclusionBetween(point, surface.Point)
	incident := occlusion.Ray.Direction

	return EmitterSample[[spectrum.PacketSize]float64]{
		Radiance:  e.RadiancePacket(incident.Neg(), surface.Normal, indices),
		Incident:  incident,
		Occlusion: occlusion,
	}
}

// OcclusionTester probes the visibility between two points.
type OcclusionTester struct {
	Ray geometry.Ray
}

// OcclusionBetween creates an occlusion tester between two points. The ray
// interval is clamped to [ε, distance-ε] to sidestep self-intersection at
// either end.
func OcclusionBetween(origin, target mathutil.Vec3) OcclusionTester {
	direction := target.Sub(origin)
	distance := direction.Len()

	ray := geometry.NewRayBounded(
		origin,
		direction.Scale(1/distance),
		mathutil.Epsilon,
		distance-mathutil.Epsilon,
	)
	return OcclusionTester{Ray: ray}
}

// Unoccluded reports whether nothing in the scene blocks the ray.
func (o OcclusionTester) Unoccluded(s *Scene) bool {
	return !s.Intersects(o.Ray)
}
