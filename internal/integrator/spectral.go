package integrator

import (
	"math/rand"

	"spectral-renderer/internal/bxdf"
	"spectral-renderer/internal/geometry"
	"spectral-renderer/internal/sampler"
	"spectral-renderer/internal/scene"
	"spectral-renderer/internal/sensor"
	"spectral-renderer/internal/spectrum"
)

// SpectralPath traces a hero-wavelength packet: the bundle shares one path
// until a chromatic event (wavelength-dependent specular sample) splits it
// into independent single-wavelength paths.
type SpectralPath struct {
	MaxDepth    int
	Sampler     sampler.FloatSampler
	Spectral    sampler.SpectralSampler
	DirectIllum DirectIllumination
}

// NewSpectralPath creates a spectral path tracer.
func NewSpectralPath(maxDepth int, smp sampler.FloatSampler, spectral sampler.SpectralSampler, direct DirectIllumination) *SpectralPath {
	return &SpectralPath{MaxDepth: maxDepth, Sampler: smp, Spectral: spectral, DirectIllum: direct}
}

func (s *SpectralPath) Integrate(sc *scene.Scene, primary geometry.Ray, px *sensor.Pixel, rng *rand.Rand) {
	hit, ok := sc.IntersectObject(primary)
	if !ok {
		px.AddNone()
		return
	}

	indices := s.Spectral.Indices(rng)
	var illumination [spectrum.PacketSize]float64
	throughput := [spectrum.PacketSize]float64{}
	for i := range throughput {
		throughput[i] = 1
	}

	s.traceBundle(sc, hit, indices, &illumination, &throughput, rng)

	px.AddPacket(illumination, indices)
}

// traceSingle finishes one split-off wavelength path from the current depth.
func (s *SpectralPath) traceSingle(
	sc *scene.Scene,
	hit scene.Intersection,
	index int,
	illumination, throughput *float64,
	currDepth int,
	rng *rand.Rand,
) {
	for depth := currDepth; depth < s.MaxDepth; depth++ {
		outgoing := hit.Incoming.Neg()
		point := hit.Point
		normal := hit.Normal
		bsdf := hit.Object.BSDF()

		if e := hit.Object.Emitter; e != nil {
			*illumination += *throughput * e.RadianceLambda(outgoing, normal, index)
		}

		*illumination += *throughput * s.DirectIllum.SampleLambda(sc, &hit, s.Sampler, rng, index)

		sample, ok := bsdf.SampleLambda(normal, outgoing, s.Sampler.Sample(rng), bxdf.None, index)
		if !ok || sample.Pdf == 0 || sample.Value == 0 {
			break
		}

		cosAbs := specularCos(sample.Flag, sample.Incident, normal)
		*throughput *= sample.Value * (cosAbs / sample.Pdf)

		ray := geometry.OffsetRayTowards(point, normal, sample.Incident)
		hit, ok = sc.IntersectObject(ray)
		if !ok {
			break
		}
	}
}

// traceBundle advances all wavelengths together until the path ends or a
// chromatic sample splits the packet.
func (s *SpectralPath) traceBundle(
	sc *scene.Scene,
	hit scene.Intersection,
	indices [spectrum.PacketSize]int,
	illumination, throughput *[spectrum.PacketSize]float64,
	rng *rand.Rand,
) {
	for currDepth := 0; currDepth < s.MaxDepth; currDepth++ {
		outgoing := hit.Incoming.Neg()
		point := hit.Point
		normal := hit.Normal
		bsdf := hit.Object.BSDF()

		if e := hit.Object.Emitter; e != nil {
			radiance := e.RadiancePacket(outgoing, normal, indices)
			for i := range illumination {
				illumination[i] += throughput[i] * radiance[i]
			}
		}

		direct := s.DirectIllum.SamplePacket(sc, &hit, s.Sampler, rng, indices)
		for i := range illumination {
			illumination[i] += throughput[i] * direct[i]
		}

		packet := bsdf.SamplePacket(normal, outgoing, s.Sampler.Sample(rng), bxdf.None, indices)

		switch {
		case !packet.IsSplit && packet.Bundle != nil:
			sample := packet.Bundle
			if sample.Pdf == 0 || packetIsBlack(sample.Values) {
				return
			}

			cosAbs := specularCos(sample.Flag, sample.Incident, normal)
			for i := range throughput {
				throughput[i] *= sample.Values[i] * (cosAbs / sample.Pdf)
			}

			ray := geometry.OffsetRayTowards(point, normal, sample.Incident)
			next, ok := sc.IntersectObject(ray)
			if !ok {
				return
			}
			hit = next

		case packet.IsSplit:
			// chromatic dispersion: finish every wavelength independently
			for i, sample := range packet.Split {
				if sample == nil || sample.Pdf == 0 || sample.Value == 0 {
					continue
				}

				cosAbs := specularCos(sample.Flag, sample.Incident, normal)
				throughput[i] *= sample.Value * (cosAbs / sample.Pdf)

				ray := geometry.OffsetRayTowards(point, normal, sample.Incident)
				next, ok := sc.IntersectObject(ray)
				if !ok {
					continue
				}

				s.traceSingle(sc, next, indices[i], &illumination[i], &throughput[i], currDepth, rng)
			}
			return

		default:
			return
		}
	}
}

// SpectralSingle traces every packet wavelength as an independent
// single-wavelength path.
type SpectralSingle struct {
	MaxDepth    int
	Sampler     sampler.FloatSampler
	Spectral    sampler.SpectralSampler
	DirectIllum DirectIllumination
}

// NewSpectralSingle creates the per-wavelength spectral tracer.
func NewSpectralSingle(maxDepth int, smp sampler.FloatSampler, spectral sampler.SpectralSampler, direct DirectIllumination) *SpectralSingle {
	return &SpectralSingle{MaxDepth: maxDepth, Sampler: smp, Spectral: spectral, DirectIllum: direct}
}

func (s *SpectralSingle) Integrate(sc *scene.Scene, primary geometry.Ray, px *sensor.Pixel, rng *rand.Rand) {
	first, ok := sc.IntersectObject(primary)
	if !ok {
		px.AddNone()
		return
	}

	for _, index := range s.Spectral.Indices(rng) {
		hit := first
		illumination := 0.0
		throughput := 1.0

		for depth := 0; depth < s.MaxDepth; depth++ {
			outgoing := hit.Incoming.Neg()
			point := hit.Point
			normal := hit.Normal
			bsdf := hit.Object.BSDF()

			if e := hit.Object.Emitter; e != nil {
				illumination += throughput * e.RadianceLambda(outgoing, normal, index)
			}

			illumination += throughput * s.DirectIllum.SampleLambda(sc, &hit, s.Sampler, rng, index)

			sample, sok := bsdf.SampleLambda(normal, outgoing, s.Sampler.Sample(rng), bxdf.None, index)
			if !sok || sample.Pdf == 0 || sample.Value == 0 {
				break
			}

			cosAbs := specularCos(sample.Flag, sample.Incident, normal)
			throughput *= sample.Value * (cosAbs / sample.Pdf)

			ray := geometry.OffsetRayTowards(point, normal, sample.Incident)
			hit, sok = sc.IntersectObject(ray)
			if !sok {
				break
			}
		}

		px.AddLambda(illumination, index)
	}
}
