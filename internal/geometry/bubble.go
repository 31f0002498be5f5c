package geometry

import (
	"spectral-renderer/internal/mathutil"
)

// Bubble is the shell between two concentric spheres. Rays hitting the inner
// sphere from inside the shell report an inverted normal.
type Bubble struct {
	inner Sphere
	outer Sphere
}

// NewBubble creates a bubble around center.
func NewBubble(center mathutil.Vec3, innerRadius, outerRadius float64) Bubble {
	return Bubble{
		inner: NewSphere(center, innerRadius),
		outer: NewSphere(center, outerRadius),
	}
}

func (b Bubble) Bounds() Aabb {
	return b.outer.Bounds()
}

func (b Bubble) Contains(p mathutil.Vec3) (bool, bool) {
	m := p.Sub(b.outer.Center).Len2()
	return b.inner.Radius2() <= m && m <= b.outer.Radius2(), true
}

func (b Bubble) Intersect(ray Ray) (Intersection, bool) {
	outer, outerOk := b.outer.Intersect(ray)
	inner, innerOk := b.inner.Intersect(ray)

	switch {
	case outerOk && innerOk:
		if outer.T < inner.T {
			return outer, true
		}
		// the inner sphere is hit from within the shell
		inner.Normal = inner.Normal.Neg()
		return inner, true
	case outerOk:
		return outer, true
	default:
		return inner, innerOk
	}
}

func (b Bubble) Intersects(ray Ray) bool {
	return b.outer.Intersects(ray) || b.inner.Intersects(ray)
}
