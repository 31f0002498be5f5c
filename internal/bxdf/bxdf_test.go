package bxdf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/spectrum"
)

func TestFlagMatches(t *testing.T) {
	lambertian := Reflection | Diffuse

	assert.True(t, lambertian.Matches(Reflection))
	assert.True(t, lambertian.Matches(Diffuse))
	assert.True(t, lambertian.Matches(Reflection|Diffuse))
	assert.True(t, lambertian.Matches(None))
	assert.False(t, lambertian.Matches(Specular))
	assert.False(t, lambertian.Matches(Reflection|Specular))
}

func TestTrigHelpers(t *testing.T) {
	v := mathutil.Vec3{0, 1, 0}
	assert.Equal(t, 1.0, CosTheta(v))
	assert.Equal(t, 0.0, SinTheta(v))

	w := mathutil.Vec3{1, 0, 0}
	assert.Equal(t, 0.0, CosTheta(w))
	assert.Equal(t, 1.0, SinTheta(w))
	assert.True(t, IsParallel(w))

	assert.True(t, SameHemisphere(mathutil.Vec3{0.1, 0.5, 0}, mathutil.Vec3{-0.3, 0.2, 0.4}))
	assert.False(t, SameHemisphere(mathutil.Vec3{0.1, 0.5, 0}, mathutil.Vec3{0.1, -0.5, 0}))
}

func TestMirrorIncident(t *testing.T) {
	v := mathutil.Vec3{0.3, 0.7, -0.2}
	m := MirrorIncident(v)
	assert.Equal(t, mathutil.Vec3{-0.3, 0.7, 0.2}, m)
}

func TestRefractStraightThrough(t *testing.T) {
	v := mathutil.Vec3{0, 1, 0}
	refracted, ok := Refract(v, Normal(), 1.0/1.5)
	assert.True(t, ok)
	assert.InDelta(t, -1, refracted[1], 1e-9)
}

func TestRefractTotalInternalReflection(t *testing.T) {
	// grazing exit from a dense medium
	v := mathutil.Vec3{math.Sqrt(1 - 0.01), 0.1, 0}
	_, ok := Refract(v, Normal(), 1.5168/1.00029)
	assert.False(t, ok)
}

func TestFresnelDielectricNormalIncidence(t *testing.T) {
	f := FresnelDielectricReflectance(1, 1.000289, 1.5168)
	assert.InDelta(t, 0.042, f, 1e-3)
}

func TestFresnelDielectricGrazing(t *testing.T) {
	f := FresnelDielectricReflectance(1e-9, 1.000289, 1.5168)
	assert.InDelta(t, 1, f, 1e-3)
}

func TestFresnelDielectricBelowSurfaceSwapsIndices(t *testing.T) {
	above := FresnelDielectricReflectance(0.8, 1.0, 1.5)
	below := FresnelDielectricReflectance(-0.8, 1.5, 1.0)
	assert.InDelta(t, above, below, 1e-12)
}

func TestRefractiveIndices(t *testing.T) {
	glass := NewRefractiveType(Glass)
	assert.InDelta(t, 1.5168, glass.N(0.5876), 5e-3)

	vacuum := NewRefractiveType(Vacuum)
	assert.Equal(t, 1.0, vacuum.N(0.5))

	linear := NewLinearRefraction(1.4, 1.6)
	assert.InDelta(t, 1.4, linear.N(spectrum.LambdaStart), 1e-9)
	assert.InDelta(t, 1.6, linear.N(spectrum.LambdaEnd), 1e-9)
	assert.InDelta(t, 1.5, linear.NUniform(), 1e-9)

	water := NewRefractiveType(Water)
	assert.InDelta(t, 1.333, water.N(0.55), 5e-3)

	diesel := NewRefractiveType(Diesel)
	assert.InDelta(t, 1.46, diesel.N(0.55), 1e-2)

	_, hasK := vacuum.KUniform()
	assert.False(t, hasK)
	k, hasK := glass.KUniform()
	assert.True(t, hasK)
	assert.Greater(t, k, 0.0)
}

func TestGlassDispersion(t *testing.T) {
	glass := NewRefractiveType(Glass)
	// blue refracts stronger than red
	assert.Greater(t, glass.N(0.4), glass.N(0.7))
}

func TestLambertianEvaluate(t *testing.T) {
	rho := spectrum.Splat(0.5)
	l := NewLambertianReflection(rho)

	incident := mathutil.Vec3{0, 1, 0}
	outgoing := mathutil.Vec3{0.5, 0.5, 0}.Normalize()

	f := l.Evaluate(incident, outgoing)
	assert.True(t, f.ApproxEq(rho.Scale(1/math.Pi)))
	assert.InDelta(t, 0.5/math.Pi, l.EvaluateLambda(incident, outgoing, 0), 1e-12)
}

func TestLambertianSampleAgreesWithEvaluateAndPdf(t *testing.T) {
	l := NewLambertianReflection(spectrum.Splat(0.5))
	outgoing := mathutil.Vec3{0.2, 0.9, 0.1}.Normalize()

	for _, u := range []mathutil.Vec2{{0.1, 0.7}, {0.42, 0.13}, {0.99, 0.5}} {
		s, ok := l.Sample(outgoing, u)
		assert.True(t, ok)
		assert.Greater(t, s.Pdf, 0.0)
		assert.True(t, SameHemisphere(s.Incident, outgoing))

		// non-specular: the sampled spectrum equals the evaluation
		assert.True(t, s.Spectrum.ApproxEq(l.Evaluate(s.Incident, outgoing)))
		assert.InDelta(t, s.Pdf, l.Pdf(s.Incident, outgoing), 1e-12)
	}
}

func TestOrenNayarZeroSigmaIsLambertian(t *testing.T) {
	rho := spectrum.Splat(0.5)
	on := NewOrenNayar(rho, 0)
	l := NewLambertianReflection(rho)

	incident := mathutil.Vec3{0.3, 0.8, 0.1}.Normalize()
	outgoing := mathutil.Vec3{-0.2, 0.6, 0.4}.Normalize()

	assert.True(t, on.Evaluate(incident, outgoing).ApproxEq(l.Evaluate(incident, outgoing)))
}

func TestOrenNayarDegenerateSinesKeepA(t *testing.T) {
	on := NewOrenNayar(spectrum.Splat(1), 20)

	// both directions along the normal: sine terms vanish, A/π remains
	up := mathutil.Vec3{0, 1, 0}
	f := on.EvaluateLambda(up, up, 0)
	assert.InDelta(t, on.A/math.Pi, f, 1e-12)
	assert.Greater(t, f, 0.0)
}

func TestSpecularReflectionSample(t *testing.T) {
	s := NewSpecularReflection(spectrum.Splat(1), FresnelNoOp{})

	outgoing := mathutil.Vec3{0.5, 0.5, 0}.Normalize()
	sample, ok := s.Sample(outgoing, mathutil.Vec2{})
	assert.True(t, ok)
	assert.Equal(t, 1.0, sample.Pdf)
	assert.Equal(t, MirrorIncident(outgoing), sample.Incident)
	assert.True(t, sample.Flag.IsSpecular())

	// delta distribution: evaluation and pdf stay zero
	assert.True(t, s.Evaluate(sample.Incident, outgoing).IsBlack())
	assert.Equal(t, 0.0, s.Pdf(sample.Incident, outgoing))
}

func TestSpecularTransmissionRefracts(t *testing.T) {
	air := NewRefractiveType(Air)
	glass := NewRefractiveType(Glass)
	s := NewSpecularTransmission(spectrum.Splat(1), air, glass)

	outgoing := mathutil.Vec3{0.3, 0.8, 0}.Normalize()
	sample, ok := s.Sample(outgoing, mathutil.Vec2{})
	assert.True(t, ok)
	assert.Equal(t, 1.0, sample.Pdf)
	// transmitted into the lower hemisphere
	assert.Less(t, sample.Incident[1], 0.0)
}

func TestFresnelSpecularBranches(t *testing.T) {
	air := NewRefractiveType(Air)
	glass := NewRefractiveType(Glass)
	fs := NewFresnelSpecular(spectrum.Splat(1), spectrum.Splat(1), air, glass)

	outgoing := mathutil.Vec3{0, 1, 0}

	// u below F selects reflection
	reflect, ok := fs.Sample(outgoing, mathutil.Vec2{0.01, 0})
	assert.True(t, ok)
	assert.True(t, reflect.Flag.Reflective())
	assert.InDelta(t, reflect.Pdf, reflect.Spectrum[0], 1e-9)

	// u above F selects transmission
	refract, ok := fs.Sample(outgoing, mathutil.Vec2{0.9, 0})
	assert.True(t, ok)
	assert.True(t, refract.Flag.Transmissive())
	assert.Less(t, refract.Incident[1], 0.0)
}
