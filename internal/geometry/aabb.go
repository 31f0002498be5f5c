package geometry

import (
	"math"

	"spectral-renderer/internal/mathutil"
)

// Aabb is an axis-aligned box spanned by its two corners.
type Aabb struct {
	Min mathutil.Vec3
	Max mathutil.Vec3
}

// NewAabb creates a box from its corners.
func NewAabb(min, max mathutil.Vec3) Aabb {
	return Aabb{Min: min, Max: max}
}

// UnitAabb returns the unit cube at the origin.
func UnitAabb() Aabb {
	return NewAabb(mathutil.Vec3{}, mathutil.Vec3{1, 1, 1})
}

// EmptyAabb returns the identity of the Join monoid: an inverted box that
// any join replaces.
func EmptyAabb() Aabb {
	return NewAabb(
		mathutil.Vec3Splat(math.MaxFloat64),
		mathutil.Vec3Splat(-math.MaxFloat64),
	)
}

// MaxAabb returns the all-containing box.
func MaxAabb() Aabb {
	return NewAabb(
		mathutil.Vec3Splat(-math.MaxFloat64),
		mathutil.Vec3Splat(math.MaxFloat64),
	)
}

// Size returns the extent along all 3 dimensions.
func (a Aabb) Size() mathutil.Vec3 {
	return a.Max.Sub(a.Min)
}

// Volume returns the box volume.
func (a Aabb) Volume() float64 {
	s := a.Size()
	return s[0] * s[1] * s[2]
}

// Center returns the box center.
func (a Aabb) Center() mathutil.Vec3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// Join returns the box spanning both boxes.
func (a Aabb) Join(b Aabb) Aabb {
	return NewAabb(mathutil.Vec3Min(a.Min, b.Min), mathutil.Vec3Max(a.Max, b.Max))
}

// JoinPoint returns the box spanning the box and a point.
func (a Aabb) JoinPoint(p mathutil.Vec3) Aabb {
	return NewAabb(mathutil.Vec3Min(a.Min, p), mathutil.Vec3Max(a.Max, p))
}

func (a Aabb) Bounds() Aabb {
	return a
}

func (a Aabb) Contains(p mathutil.Vec3) (bool, bool) {
	inside := a.Min[0] <= p[0] && p[0] <= a.Max[0] &&
		a.Min[1] <= p[1] && p[1] <= a.Max[1] &&
		a.Min[2] <= p[2] && p[2] <= a.Max[2]
	return inside, true
}

// slabs computes the entry and exit parameters of the slab test.
func (a Aabb) slabs(ray Ray) (tMin, tMax float64) {
	t1 := a.Min.Sub(ray.Origin).ElemDiv(ray.Direction)
	t2 := a.Max.Sub(ray.Origin).ElemDiv(ray.Direction)

	tMin = mathutil.Vec3Min(t1, t2).MaxVal()
	tMax = mathutil.Vec3Max(t1, t2).MinVal()
	return tMin, tMax
}

func (a Aabb) Intersect(ray Ray) (Intersection, bool) {
	tMin, tMax := a.slabs(ray)
	if tMin > tMax {
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
	halfSize := a.Size().Scale(0.5)
	center := a.Min.Add(halfSize)
	direction := point.Sub(center)

	// quantise the offset from the center to the dominant face axis
	const bias = 1.01
	scaled := direction.Scale(bias).ElemDiv(halfSize)
	normal := mathutil.Vec3{
		float64(int64(scaled[0])),
		float64(int64(scaled[1])),
		float64(int64(scaled[2])),
	}.Normalize()

	return Intersection{Point: point, Normal: normal, Incoming: ray.Direction, T: t}, true
}

func (a Aabb) Intersects(ray Ray) bool {
	tMin, tMax := a.slabs(ray)
	return tMin <= tMax && (ray.Contains(tMin) || ray.Contains(tMax))
}
