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

// Path is the Kajiya-style unidirectional path tracer.
type Path struct {
	MaxDepth    int
	Sampler     sampler.FloatSampler
	DirectIllum DirectIllumination
}

// NewPath creates a path tracer bounded to maxDepth bounces.
func NewPath(maxDepth int, smp sampler.FloatSampler, direct DirectIllumination) *Path {
	return &Path{MaxDepth: maxDepth, Sampler: smp, DirectIllum: direct}
}

func (p *Path) Integrate(sc *scene.Scene, primary geometry.Ray, px *sensor.Pixel, rng *rand.Rand) {
	hit, ok := sc.IntersectObject(primary)
	if !ok {
		px.AddNone()
		return
	}

	var illumination spectrum.Spectrum
	throughput := spectrum.Splat(1)

	for depth := 0; depth < p.MaxDepth; depth++ {
		outgoing := hit.Incoming.Neg()
		point := hit.Point
		normal := hit.Normal
		bsdf := hit.Object.BSDF()

		if e := hit.Object.Emitter; e != nil {
			illumination = illumination.Add(throughput.Mul(e.Radiance(outgoing, normal)))
		}

		illumination = illumination.Add(throughput.Mul(p.DirectIllum.Sample(sc, &hit, p.Sampler, rng)))

		sample, ok := bsdf.Sample(normal, outgoing, p.Sampler.Sample(rng), bxdf.None)
		if !ok || sample.Pdf == 0 || sample.Spectrum.IsBlack() {
			break
		}

		cosAbs := specularCos(sample.Flag, sample.Incident, normal)
		throughput = throughput.Mul(sample.Spectrum.Scale(cosAbs / sample.Pdf))

		ray := geometry.OffsetRayTowards(point, normal, sample.Incident)
		hit, ok = sc.IntersectObject(ray)
		if !ok {
			break
		}
	}

	px.Add(illumination)
}
