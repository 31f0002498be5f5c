package geometry

import (
	"spectral-renderer/internal/mathutil"
)

// Intersection describes a surface hit. The normal is unit length; Incoming
// equals the direction of the ray that produced the hit.
type Intersection struct {
	Point    mathutil.Vec3
	Normal   mathutil.Vec3
	Incoming mathutil.Vec3
	T        float64
}

// Geometry is the capability set every primitive provides.
type Geometry interface {
	// Bounds returns the bounding box.
	Bounds() Aabb

	// Contains reports whether the geometry contains the point. known is
	// false when the primitive has no meaningful containment test.
	Contains(point mathutil.Vec3) (inside, known bool)

	// Intersect intersects a ray with this geometry. ok is false when no
	// intersection happens within the ray interval.
	Intersect(ray Ray) (Intersection, bool)

	// Intersects reports whether a ray intersects this geometry.
	Intersects(ray Ray) bool
}

// OffsetPoint nudges a point along the normal by a small epsilon, choosing
// the normal side that faces the given direction.
func OffsetPoint(point, normal, direction mathutil.Vec3) mathutil.Vec3 {
	offset := normal.Scale(mathutil.BigEpsilon)
	if direction.Dot(normal) < 0 {
		offset = offset.Neg()
	}
	return point.Add(offset)
}

// OffsetRayTowards creates a ray into direction whose origin is offset off
// the surface to avoid immediate self-intersection.
func OffsetRayTowards(point, normal, direction mathutil.Vec3) Ray {
	return NewRay(OffsetPoint(point, normal, direction), direction)
}

// OffsetRayTo creates a ray towards target whose origin is offset off the
// surface, with the interval clamped to the target distance.
func OffsetRayTo(point, normal, target mathutil.Vec3) Ray {
	dir := target.Sub(point)
	origin := OffsetPoint(point, normal, dir)
	toTarget := target.Sub(origin)
	return NewRayBounded(origin, toTarget.Normalize(), 0, toTarget.Len())
}
