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

// Whitted is the classic recursive ray tracer: direct light at every hit,
// recursion only into pure specular reflection and transmission.
type Whitted struct {
	MaxDepth    int
	Sampler     sampler.FloatSampler
	DirectIllum DirectIllumination
}

// NewWhitted creates a Whitted integrator bounded to maxDepth recursions.
func NewWhitted(maxDepth int, smp sampler.FloatSampler, direct DirectIllumination) *Whitted {
	return &Whitted{MaxDepth: maxDepth, Sampler: smp, DirectIllum: direct}
}

func (w *Whitted) Integrate(sc *scene.Scene, primary geometry.Ray, px *sensor.Pixel, rng *rand.Rand) {
	hit, ok := sc.IntersectObject(primary)
	if !ok {
		px.AddNone()
		return
	}

	px.Add(w.illumination(sc, &hit, 0, rng))
}

// integrateFlag recurses along the sample of one specular flag combination.
func (w *Whitted) integrateFlag(sc *scene.Scene, hit *scene.Intersection, depth int, flag bxdf.Flag, rng *rand.Rand) spectrum.Spectrum {
	outgoing := hit.Incoming.Neg()
	bsdf := hit.Object.BSDF()
	normal := hit.Normal

	sample, ok := bsdf.Sample(normal, outgoing, w.Sampler.Sample(rng), flag)
	if !ok || sample.Pdf <= 0 || sample.Spectrum.IsBlack() {
		return spectrum.Spectrum{}
	}

	cosAbs := specularCos(sample.Flag, sample.Incident, normal)
	if cosAbs == 0 {
		return spectrum.Spectrum{}
	}

	ray := geometry.OffsetRayTowards(hit.Point, normal, sample.Incident)
	next, ok := sc.IntersectObject(ray)
	if !ok {
		return spectrum.Spectrum{}
	}

	illum := w.illumination(sc, &next, depth, rng)
	return illum.Mul(sample.Spectrum).Scale(cosAbs / sample.Pdf)
}

func (w *Whitted) illumination(sc *scene.Scene, hit *scene.Intersection, depth int, rng *rand.Rand) spectrum.Spectrum {
	var illumination spectrum.Spectrum

	if e := hit.Object.Emitter; e != nil {
		illumination = illumination.Add(e.Radiance(hit.Incoming.Neg(), hit.Normal))
	}

	illumination = illumination.Add(w.DirectIllum.Sample(sc, hit, w.Sampler, rng))

	if newDepth := depth + 1; newDepth < w.MaxDepth {
		reflection := bxdf.Specular | bxdf.Reflection
		transmission := bxdf.Specular | bxdf.Transmission

		illumination = illumination.Add(w.integrateFlag(sc, hit, newDepth, reflection, rng))
		illumination = illumination.Add(w.integrateFlag(sc, hit, newDepth, transmission, rng))
		illumination = illumination.Add(w.integrateFlag(sc, hit, newDepth, reflection|transmission, rng))
	}

	return illumination
}
