package geometry

import (
	"math"

	"spectral-renderer/internal/mathutil"
)

// Plane is an infinite plane in point-normal form. The normal is unit length.
type Plane struct {
	Point  mathutil.Vec3
	Normal mathutil.Vec3
}

// NewPlane creates a plane through point with the given unit normal.
func NewPlane(point, normal mathutil.Vec3) Plane {
	return Plane{Point: point, Normal: normal}
}

func (p Plane) Bounds() Aabb {
	return MaxAabb()
}

func (p Plane) Contains(_ mathutil.Vec3) (bool, bool) {
	return false, false
}

func (p Plane) Intersect(ray Ray) (Intersection, bool) {
	denom := p.Normal.Dot(ray.Direction)
	if math.Abs(denom) < mathutil.Epsilon {
		return Intersection{}, false
	}

	t := p.Point.Sub(ray.Origin).Dot(p.Normal) / denom
	if !ray.Contains(t) {
		return Intersection{}, false
	}

	return Intersection{Point: ray.At(t), Normal: p.Normal, Incoming: ray.Direction, T: t}, true
}

func (p Plane) Intersects(ray Ray) bool {
	_, ok := p.Intersect(ray)
	return ok
}
