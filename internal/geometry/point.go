package geometry

import (
	"spectral-renderer/internal/mathutil"
)

// Point is a dimensionless position. It never intersects a ray.
type Point struct {
	Position mathutil.Vec3
}

// NewPoint creates a point.
func NewPoint(position mathutil.Vec3) Point {
	return Point{Position: position}
}

func (p Point) Bounds() Aabb {
	return NewAabb(p.Position, p.Position)
}

func (p Point) Contains(_ mathutil.Vec3) (bool, bool) {
	return false, false
}

func (p Point) Intersect(_ Ray) (Intersection, bool) {
	return Intersection{}, false
}

func (p Point) Intersects(_ Ray) bool {
	return false
}
