package geometry

import (
	"spectral-renderer/internal/mathutil"
)

// Sphere is a center/radius sphere. Inverse flips the reported normals,
// turning the sphere into an enclosing shell.
type Sphere struct {
	Center  mathutil.Vec3
	Radius  float64
	Inverse bool
}

// NewSphere creates a sphere.
func NewSphere(center mathutil.Vec3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Radius2 returns the squared radius.
func (s Sphere) Radius2() float64 {
	return s.Radius * s.Radius
}

func (s Sphere) Bounds() Aabb {
	diff := mathutil.Vec3Splat(s.Radius)
	return NewAabb(s.Center.Sub(diff), s.Center.Add(diff))
}

func (s Sphere) Contains(p mathutil.Vec3) (bool, bool) {
	return p.Sub(s.Center).Len2() <= s.Radius2(), true
}

func (s Sphere) Intersect(ray Ray) (Intersection, bool) {
	oc := ray.Origin.Sub(s.Center)

	// distance culling; only valid with the origin outside the sphere
	if dist := oc.Len(); dist > s.Radius && !ray.Contains(dist-s.Radius) {
		return Intersection{}, false
	}

	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius2()

	tMin, tMax, ok := mathutil.SolveQuadratic(a, b, c)
	if !ok {
		return Intersection{}, false
	}

	var t float64
	switch {
	case ray.Contains(tMin):
		t = tMin
	case ray.Contains(tMax):
		t = tMax
	default:
		return Intersection{}, false
	}

	point := ray.At(t)
	normal := point.Sub(s.Center).Normalize()
	if s.Inverse {
		normal = normal.Neg()
	}

	return Intersection{Point: point, Normal: normal, Incoming: ray.Direction, T: t}, true
}

func (s Sphere) Intersects(ray Ray) bool {
	oc := ray.Origin.Sub(s.Center)

	if dist := oc.Len(); dist > s.Radius && !ray.Contains(dist-s.Radius) {
		return false
	}

	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius2()

	tMin, tMax, ok := mathutil.SolveQuadratic(a, b, c)
	return ok && (ray.Contains(tMin) || ray.Contains(tMax))
}
