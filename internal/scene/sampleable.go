package scene

import (
	"math"

	"spectral-renderer/internal/bxdf"
	"spectral-renderer/internal/geometry"
	"spectral-renderer/internal/mathutil"
)

// SurfaceSample is a point on an emitter surface with its outward normal.
type SurfaceSample struct {
	Point  mathutil.Vec3
	Normal mathutil.Vec3
}

// Sampleable is geometry whose surface can be sampled towards a query point.
type Sampleable interface {
	geometry.Geometry

	// SurfaceArea returns the total surface area.
	SurfaceArea() float64

	// SampleSurface draws a surface point relative to the query origin.
	SampleSurface(origin mathutil.Vec3, u mathutil.Vec2) SurfaceSample
}

// SampleablePoint samples a dimensionless light position.
type SampleablePoint struct {
	geometry.Point
}

func (p SampleablePoint) SurfaceArea() float64 {
	return 0
}

// SampleSurface returns the point itself; the normal faces the query origin.
func (p SampleablePoint) SampleSurface(origin mathutil.Vec3, _ mathutil.Vec2) SurfaceSample {
	normal := origin.Sub(p.Position).Normalize()
	return SurfaceSample{Point: p.Position, Normal: normal}
}

// SampleableSphere samples a spherical light.
type SampleableSphere struct {
	geometry.Sphere
}

func (s SampleableSphere) SurfaceArea() float64 {
	return 4 * math.Pi * s.Radius2()
}

// sampleInside uniformly samples the full sphere surface, used when the
// query point lies inside.
func (s SampleableSphere) sampleInside(u mathutil.Vec2) SurfaceSample {
	normal := mathutil.SampleUnitSphere(u)
	point := s.Center.Add(normal.Scale(s.Radius))
	if s.Inverse {
		normal = normal.Neg()
	}
	return SurfaceSample{Point: point, Normal: normal}
}

// SampleSurface cone-samples the sphere as seen from outside the surface
// (the pbrt derivation), falling back to uniform sampling from inside.
func (s SampleableSphere) SampleSurface(origin mathutil.Vec3, u mathutil.Vec2) SurfaceSample {
	oc := s.Center.Sub(origin)
	distSq := oc.Len2()
	r2 := s.Radius2()

	if distSq < r2 {
		return s.sampleInside(u)
	}

	distance := math.Sqrt(distSq)
	axis := oc.Scale(-1 / distance)
	frame := mathutil.CoordinateSystemFromY(axis)

	sinThetaMax := math.Sqrt(r2 / distSq)
	sinThetaMax2 := sinThetaMax * sinThetaMax
	invSinThetaMax := 1 / sinThetaMax
	invSinThetaMax2 := invSinThetaMax * invSinThetaMax
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax2))

	cosTheta := (cosThetaMax-1)*u[0] + 1
	sinTheta2 := 1 - cosTheta*cosTheta

	if sinTheta2 < 0.00068523 {
		// taylor fallback for very narrow cones
		sinTheta2 = sinThetaMax2 * u[0]
		cosTheta = math.Sqrt(1 - sinTheta2)
	}

	cosAlpha := sinTheta2*invSinThetaMax +
		cosTheta*math.Sqrt(math.Max(0, 1-sinTheta2*invSinThetaMax2))
	sinAlpha := math.Sqrt(math.Max(0, 1-cosAlpha*cosAlpha))
	sinPhi, cosPhi := math.Sincos(u[1] * 2 * math.Pi)

	normal := mathutil.SphericalToCartesianFrameTrig(sinPhi, cosPhi, sinAlpha, cosAlpha, frame)
	if s.Inverse {
		normal = normal.Neg()
	}

	point := s.Center.Add(normal.Scale(s.Radius))
	return SurfaceSample{Point: point, Normal: normal}
}

// SampleableDisk samples a disk light.
type SampleableDisk struct {
	geometry.Disk
}

func (d SampleableDisk) SurfaceArea() float64 {
	return math.Pi * d.Radius * d.Radius
}

// SampleSurface draws a concentric unit-disk sample scaled by the radius and
// rotates it into the disk frame.
func (d SampleableDisk) SampleSurface(_ mathutil.Vec3, u mathutil.Vec2) SurfaceSample {
	uv := mathutil.SampleUnitDiskConcentric(u).Scale(d.Radius)
	// the local frame carries the normal on +y; the disk spans x/z
	local := mathutil.Vec3{uv[0], 0, uv[1]}
	point := d.Center.Add(bxdf.BxdfToWorld(d.Normal).Apply(local))

	return SurfaceSample{Point: point, Normal: d.Normal}
}

// SampleablePlane samples an infinite plane by projecting the query origin.
type SampleablePlane struct {
	geometry.Plane
}

func (p SampleablePlane) SurfaceArea() float64 {
	return math.Inf(1)
}

// SampleSurface returns the closest point on the plane; the normal faces the
// query origin.
func (p SampleablePlane) SampleSurface(origin mathutil.Vec3, _ mathutil.Vec2) SurfaceSample {
	v := origin.Sub(p.Point)
	distance := v.Dot(p.Normal)

	point := origin.Sub(p.Normal.Scale(distance))
	normal := bxdf.FaceForward(v, p.Normal)

	return SurfaceSample{Point: point, Normal: normal}
}
