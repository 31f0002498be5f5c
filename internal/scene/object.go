// Package scene owns the renderable world: receivers and emitters unified
// under a tagged variant, surface sampling for light sources, and the
// object-level BVH.
package scene

import (
	"spectral-renderer/internal/bxdf"
	"spectral-renderer/internal/geometry"
	"spectral-renderer/internal/mathutil"
)

// Object is the tagged variant of scene content: exactly one of Emitter or
// Receiver is set.
type Object struct {
	Emitter  *Emitter
	Receiver *Receiver
}

// EmitterObject wraps an emitter.
func EmitterObject(e *Emitter) Object {
	return Object{Emitter: e}
}

// ReceiverObject wraps a receiver.
func ReceiverObject(r *Receiver) Object {
	return Object{Receiver: r}
}

// IsEmitter reports the variant.
func (o Object) IsEmitter() bool {
	return o.Emitter != nil
}

// BSDF returns the surface scattering function of either variant.
func (o Object) BSDF() *bxdf.BSDF {
	if o.Emitter != nil {
		return o.Emitter.BSDF
	}
	return o.Receiver.BSDF
}

// Shape returns the geometry of either variant.
func (o Object) Shape() geometry.Geometry {
	if o.Emitter != nil {
		return o.Emitter.Shape
	}
	return o.Receiver.Shape
}

func (o Object) Bounds() geometry.Aabb {
	return o.Shape().Bounds()
}

func (o Object) Contains(p mathutil.Vec3) (bool, bool) {
	return o.Shape().Contains(p)
}

func (o Object) Intersect(ray geometry.Ray) (geometry.Intersection, bool) {
	return o.Shape().Intersect(ray)
}

func (o Object) Intersects(ray geometry.Ray) bool {
	return o.Shape().Intersects(ray)
}

// Receiver is a scene object that scatters but does not emit radiance.
type Receiver struct {
	Shape geometry.Geometry
	BSDF  *bxdf.BSDF
}

// NewReceiver creates a receiver.
func NewReceiver(shape geometry.Geometry, b *bxdf.BSDF) *Receiver {
	return &Receiver{Shape: shape, BSDF: b}
}
