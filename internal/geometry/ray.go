// Package geometry provides the analytic primitives of the renderer and the
// uniform intersection contract they share.
package geometry

import (
	"math"

	"spectral-renderer/internal/mathutil"
)

// Ray is a half-open line with a restricted parameter interval.
// The direction must be unit length (caller-enforced); TStart <= TEnd.
type Ray struct {
	Origin    mathutil.Vec3
	Direction mathutil.Vec3
	TStart    float64
	TEnd      float64
}

// NewRay creates a ray with an unbounded interval [0, +inf).
func NewRay(origin, direction mathutil.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TStart: 0, TEnd: math.Inf(1)}
}

// NewRayBounded creates a ray with the given parameter interval.
func NewRayBounded(origin, direction mathutil.Vec3, tStart, tEnd float64) Ray {
	return Ray{Origin: origin, Direction: direction, TStart: tStart, TEnd: tEnd}
}

// At returns origin + t·direction.
func (r Ray) At(t float64) mathutil.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Contains reports whether t lies inside [TStart, TEnd].
func (r Ray) Contains(t float64) bool {
	return r.TStart <= t && t <= r.TEnd
}
