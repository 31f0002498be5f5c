package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVecInDelta(t *testing.T, expected, actual Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], delta)
	}
}

func TestRotationBetweenMapsAOntoB(t *testing.T) {
	cases := [][2]Vec3{
		{{0, 1, 0}, {1, 0, 0}},
		{{0, 1, 0}, {0, 0, 1}},
		{Vec3{1, 2, 3}.Normalize(), Vec3{-2, 0.5, 1}.Normalize()},
	}

	for _, c := range cases {
		r := RotationBetween(c[0], c[1])
		assertVecInDelta(t, c[1], r.MulVec3(c[0]), 1e-12)
	}
}

func TestRotationBetweenAntiParallel(t *testing.T) {
	a := Vec3{0, 1, 0}
	r := RotationBetween(a, a.Neg())
	assertVecInDelta(t, a.Neg(), r.MulVec3(a), 1e-12)
}

func TestRotationBetweenInverseIsTranspose(t *testing.T) {
	a := Vec3{0.3, -0.2, 1.7}.Normalize()
	b := Vec3{1, 1, 0}.Normalize()
	r := RotationBetween(a, b)

	v := Vec3{0.25, -1.5, 0.75}
	back := r.Transpose().MulVec3(r.MulVec3(v))
	assertVecInDelta(t, v, back, 1e-12)
}

func TestRotAxisAngleMatchesAxisRotations(t *testing.T) {
	angle := Deg2Rad(37)

	axes := []struct {
		axis Vec3
		want Mat3
	}{
		{Vec3{1, 0, 0}, RotX(angle)},
		{Vec3{0, 1, 0}, RotY(angle)},
		{Vec3{0, 0, 1}, RotZ(angle)},
	}

	for _, c := range axes {
		got := RotAxisAngle(c.axis, angle)
		for i := range got {
			assert.InDelta(t, c.want[i], got[i], 1e-12)
		}
	}
}

func TestCoordinateSystemFromYOrthonormal(t *testing.T) {
	y := Vec3{0.1, 0.8, -0.3}.Normalize()
	frame := CoordinateSystemFromY(y)

	assert.InDelta(t, 1, frame.X.Len(), 1e-12)
	assert.InDelta(t, 1, frame.Y.Len(), 1e-12)
	assert.InDelta(t, 1, frame.Z.Len(), 1e-12)
	assert.InDelta(t, 0, frame.X.Dot(frame.Y), 1e-12)
	assert.InDelta(t, 0, frame.Y.Dot(frame.Z), 1e-12)
	assert.InDelta(t, 0, frame.Z.Dot(frame.X), 1e-12)
}

func TestSampleUnitHemisphereUpper(t *testing.T) {
	for _, u := range []Vec2{{0.1, 0.3}, {0.9, 0.7}, {0.5, 0.5}, {0.01, 0.99}} {
		v := SampleUnitHemisphere(u)
		assert.GreaterOrEqual(t, v[1], 0.0)
		assert.InDelta(t, 1, v.Len(), 1e-9)
	}
}

func TestSampleUnitSphereIsUnit(t *testing.T) {
	for _, u := range []Vec2{{0.2, 0.4}, {0.8, 0.1}, {0.5, 0.9}} {
		v := SampleUnitSphere(u)
		assert.InDelta(t, 1, v.Len(), 1e-9)
	}
}

func TestUniformConePdf(t *testing.T) {
	cosTheta := 0.5
	assert.InDelta(t, 1/(2*math.Pi*(1-cosTheta)), UniformConePdf(cosTheta), 1e-12)
}
