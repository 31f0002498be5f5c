package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"spectral-renderer/internal/bxdf"
	"spectral-renderer/internal/geometry"
	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/spectrum"
)

func lambertianBSDF(rho float64) *bxdf.BSDF {
	return bxdf.NewBSDF(bxdf.NewLambertianReflection(spectrum.Splat(rho)))
}

func testScene() *Scene {
	sc := New()

	floor := geometry.NewPlane(mathutil.Vec3{0, 0, 0}, mathutil.Vec3{0, 1, 0})
	sc.Add(ReceiverObject(NewReceiver(floor, lambertianBSDF(0.5))))

	light := SampleableSphere{Sphere: geometry.NewSphere(mathutil.Vec3{0, 5, 0}, 0.5)}
	sc.Add(EmitterObject(NewEmitter(light, bxdf.EmptyBSDF(), spectrum.Splat(1))))

	sc.Build()
	return sc
}

func TestSceneEmitterTracking(t *testing.T) {
	sc := testScene()

	assert.Equal(t, 1, sc.NumEmitters())
	assert.Equal(t, []uint32{1}, sc.Emitters())
	assert.NotNil(t, sc.EmitterAt(1))
	assert.Nil(t, sc.EmitterAt(0))
}

func TestSceneIntersectNearest(t *testing.T) {
	sc := testScene()

	// downward ray passes the light sphere before the floor
	ray := geometry.NewRay(mathutil.Vec3{0, 10, 0}, mathutil.Vec3{0, -1, 0})
	hit, ok := sc.IntersectObject(ray)
	assert.True(t, ok)
	assert.True(t, hit.Object.IsEmitter())
	assert.InDelta(t, 4.5, hit.T, 1e-9)

	// offset ray misses the sphere and lands on the floor
	side := geometry.NewRay(mathutil.Vec3{3, 10, 0}, mathutil.Vec3{0, -1, 0})
	hit, ok = sc.IntersectObject(side)
	assert.True(t, ok)
	assert.False(t, hit.Object.IsEmitter())
	assert.InDelta(t, 10, hit.T, 1e-9)
}

func TestSceneMiss(t *testing.T) {
	sc := testScene()

	ray := geometry.NewRay(mathutil.Vec3{0, 10, 0}, mathutil.Vec3{0, 1, 0})
	_, ok := sc.IntersectObject(ray)
	assert.False(t, ok)
	assert.False(t, sc.Intersects(ray))
}

func TestEmitterRadianceIsOneSided(t *testing.T) {
	light := SampleableSphere{Sphere: geometry.NewSphere(mathutil.Vec3{}, 1)}
	e := NewEmitter(light, bxdf.EmptyBSDF(), spectrum.Splat(2))

	normal := mathutil.Vec3{0, 1, 0}

	front := e.Radiance(mathutil.Vec3{0, 1, 0}, normal)
	assert.False(t, front.IsBlack())

	back := e.Radiance(mathutil.Vec3{0, -1, 0}, normal)
	assert.True(t, back.IsBlack())

	assert.Equal(t, 2.0, e.RadianceLambda(mathutil.Vec3{0, 1, 0}, normal, 0))
	assert.Equal(t, 0.0, e.RadianceLambda(mathutil.Vec3{0, -1, 0}, normal, 0))
}

func TestEmitterSampleAimsAtSurface(t *testing.T) {
	light := SampleableSphere{Sphere: geometry.NewSphere(mathutil.Vec3{0, 5, 0}, 0.5)}
	e := NewEmitter(light, bxdf.EmptyBSDF(), spectrum.Splat(1))

	point := mathutil.Vec3{0, 0, 0}
	es := e.Sample(point, mathutil.Vec2{0.3, 0.7})

	// the incident direction points towards the light
	assert.Greater(t, es.Incident[1], 0.0)
	assert.InDelta(t, 1, es.Incident.Len(), 1e-9)
	assert.False(t, es.Radiance.IsBlack())

	// the occlusion interval stops short of both endpoints
	assert.Greater(t, es.Occlusion.Ray.TStart, 0.0)
	assert.Less(t, es.Occlusion.Ray.TEnd, 5.0)
	assert.Greater(t, es.Occlusion.Ray.TEnd, 4.0)
}

func TestOcclusionTester(t *testing.T) {
	sc := testScene()

	// path blocked by the light sphere
	blocked := OcclusionBetween(mathutil.Vec3{0, 3, 0}, mathutil.Vec3{0, 8, 0})
	assert.False(t, blocked.Unoccluded(sc))

	// clear path above the floor, past the sphere
	clear := OcclusionBetween(mathutil.Vec3{3, 1, 0}, mathutil.Vec3{3, 8, 0})
	assert.True(t, clear.Unoccluded(sc))
}

func TestSampleablePoint(t *testing.T) {
	p := SampleablePoint{Point: geometry.NewPoint(mathutil.Vec3{0, 2, 0})}

	assert.Equal(t, 0.0, p.SurfaceArea())

	s := p.SampleSurface(mathutil.Vec3{0, 0, 0}, mathutil.Vec2{})
	assert.Equal(t, mathutil.Vec3{0, 2, 0}, s.Point)
	// normal faces the query origin
	assert.InDelta(t, -1, s.Normal[1], 1e-12)
}

func TestSampleableSphereOutside(t *testing.T) {
	s := SampleableSphere{Sphere: geometry.NewSphere(mathutil.Vec3{}, 1)}

	origin := mathutil.Vec3{0, 5, 0}
	for _, u := range []mathutil.Vec2{{0.1, 0.2}, {0.6, 0.9}, {0.5, 0.5}} {
		sample := s.SampleSurface(origin, u)

		// the sample lies on the sphere
		assert.InDelta(t, 1, sample.Point.Len(), 1e-6)
		assert.InDelta(t, 1, sample.Normal.Len(), 1e-6)

		// cone sampling yields points on the visible side
		assert.Greater(t, sample.Point[1], -1e-6)
	}
}

func TestSampleableSphereInside(t *testing.T) {
	s := SampleableSphere{Sphere: geometry.NewSphere(mathutil.Vec3{}, 2)}

	sample := s.SampleSurface(mathutil.Vec3{0.1, 0, 0}, mathutil.Vec2{0.3, 0.8})
	assert.InDelta(t, 2, sample.Point.Len(), 1e-9)
}

func TestSampleableDiskStaysInPlane(t *testing.T) {
	d := SampleableDisk{Disk: geometry.NewDisk(mathutil.Vec3{1, 2, 3}, mathutil.Vec3{0, 0, 1}, 2)}

	assert.InDelta(t, math.Pi*4, d.SurfaceArea(), 1e-9)

	for _, u := range []mathutil.Vec2{{0.1, 0.9}, {0.7, 0.3}, {0.5, 0.5}} {
		s := d.SampleSurface(mathutil.Vec3{}, u)

		// in the disk plane, within the radius
		assert.InDelta(t, 3, s.Point[2], 1e-9)
		assert.LessOrEqual(t, s.Point.Sub(d.Center).Len(), 2+1e-9)
		assert.Equal(t, d.Normal, s.Normal)
	}
}

func TestSampleablePlaneProjects(t *testing.T) {
	p := SampleablePlane{Plane: geometry.NewPlane(mathutil.Vec3{}, mathutil.Vec3{0, 1, 0})}

	origin := mathutil.Vec3{3, 4, -2}
	s := p.SampleSurface(origin, mathutil.Vec2{})

	assert.Equal(t, mathutil.Vec3{3, 0, -2}, s.Point)
	assert.InDelta(t, 1, s.Normal[1], 1e-12)
	assert.True(t, math.IsInf(p.SurfaceArea(), 1))
}
