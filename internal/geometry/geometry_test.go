package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"spectral-renderer/internal/mathutil"
)

func TestRayAtAndContains(t *testing.T) {
	ray := NewRayBounded(mathutil.Vec3{1, 2, 3}, mathutil.Vec3{0, 0, 1}, 0.5, 4)

	at := ray.At(2)
	assert.Equal(t, mathutil.Vec3{1, 2, 5}, at)

	assert.True(t, ray.Contains(0.5))
	assert.True(t, ray.Contains(2))
	assert.True(t, ray.Contains(4))
	assert.False(t, ray.Contains(0.4))
	assert.False(t, ray.Contains(4.1))
}

func TestSphereHit(t *testing.T) {
	sphere := NewSphere(mathutil.Vec3{}, 1)
	ray := NewRay(mathutil.Vec3{0, 0, -3}, mathutil.Vec3{0, 0, 1})

	i, ok := sphere.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 2, i.T, 1e-9)
	assert.InDelta(t, 0, i.Normal[0], 1e-9)
	assert.InDelta(t, 0, i.Normal[1], 1e-9)
	assert.InDelta(t, -1, i.Normal[2], 1e-9)

	assert.True(t, ray.Contains(i.T))
	assert.InDelta(t, 1, i.Normal.Len(), 1e-9)
	assert.True(t, sphere.Intersects(ray))
}

func TestSphereMiss(t *testing.T) {
	sphere := NewSphere(mathutil.Vec3{}, 1)
	ray := NewRay(mathutil.Vec3{0, 0, -3}, mathutil.Vec3{0, 1, 0})

	_, ok := sphere.Intersect(ray)
	assert.False(t, ok)
	assert.False(t, sphere.Intersects(ray))
}

func TestSphereFromInside(t *testing.T) {
	sphere := NewSphere(mathutil.Vec3{}, 2)
	ray := NewRay(mathutil.Vec3{}, mathutil.Vec3{1, 0, 0})

	i, ok := sphere.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 2, i.T, 1e-9)
}

func TestSphereInverseNormal(t *testing.T) {
	sphere := NewSphere(mathutil.Vec3{}, 1)
	sphere.Inverse = true
	ray := NewRay(mathutil.Vec3{0, 0, -3}, mathutil.Vec3{0, 0, 1})

	i, ok := sphere.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 1, i.Normal[2], 1e-9)
}

func TestAabbSlab(t *testing.T) {
	box := NewAabb(mathutil.Vec3{}, mathutil.Vec3{1, 1, 1})
	ray := NewRay(mathutil.Vec3{0.5, 0.5, -1}, mathutil.Vec3{0, 0, 1})

	i, ok := box.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 1, i.T, 1e-9)
	assert.InDelta(t, -1, i.Normal[2], 1e-6)
	assert.InDelta(t, 1, i.Normal.Len(), 1e-9)
	assert.True(t, box.Intersects(ray))
}

func TestAabbFromInsideHitsExit(t *testing.T) {
	box := NewAabb(mathutil.Vec3{}, mathutil.Vec3{1, 1, 1})
	ray := NewRay(mathutil.Vec3{0.5, 0.5, 0.5}, mathutil.Vec3{0, 0, 1})

	i, ok := box.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, i.T, 1e-9)
}

func TestAabbJoinMonoid(t *testing.T) {
	a := NewAabb(mathutil.Vec3{0, 0, 0}, mathutil.Vec3{1, 1, 1})
	b := NewAabb(mathutil.Vec3{-1, 0.5, 0}, mathutil.Vec3{0.5, 2, 1})
	c := NewAabb(mathutil.Vec3{0, -3, 0}, mathutil.Vec3{4, 0, 0.5})

	// associative and commutative
	assert.Equal(t, a.Join(b).Join(c), a.Join(b.Join(c)))
	assert.Equal(t, a.Join(b), b.Join(a))

	// identity
	assert.Equal(t, a, a.Join(EmptyAabb()))
	assert.Equal(t, a, EmptyAabb().Join(a))
}

func TestAabbContains(t *testing.T) {
	box := NewAabb(mathutil.Vec3{}, mathutil.Vec3{1, 1, 1})

	inside, known := box.Contains(mathutil.Vec3{0.5, 0.5, 0.5})
	assert.True(t, known)
	assert.True(t, inside)

	inside, _ = box.Contains(mathutil.Vec3{1.5, 0.5, 0.5})
	assert.False(t, inside)
}

func TestPlaneIntersect(t *testing.T) {
	plane := NewPlane(mathutil.Vec3{0, 1, 0}, mathutil.Vec3{0, 1, 0})
	ray := NewRay(mathutil.Vec3{0, 3, 0}, mathutil.Vec3{0, -1, 0})

	i, ok := plane.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 2, i.T, 1e-9)

	// parallel ray
	parallel := NewRay(mathutil.Vec3{0, 3, 0}, mathutil.Vec3{1, 0, 0})
	_, ok = plane.Intersect(parallel)
	assert.False(t, ok)
}

func TestDiskIntersect(t *testing.T) {
	disk := NewDisk(mathutil.Vec3{}, mathutil.Vec3{0, 0, -1}, 1)

	hit := NewRay(mathutil.Vec3{0.5, 0, -2}, mathutil.Vec3{0, 0, 1})
	i, ok := disk.Intersect(hit)
	assert.True(t, ok)
	assert.InDelta(t, 2, i.T, 1e-9)

	miss := NewRay(mathutil.Vec3{1.5, 0, -2}, mathutil.Vec3{0, 0, 1})
	_, ok = disk.Intersect(miss)
	assert.False(t, ok)
}

func TestPointNeverIntersects(t *testing.T) {
	point := NewPoint(mathutil.Vec3{1, 2, 3})
	ray := NewRay(mathutil.Vec3{1, 2, 0}, mathutil.Vec3{0, 0, 1})

	_, ok := point.Intersect(ray)
	assert.False(t, ok)
	assert.False(t, point.Intersects(ray))
	assert.Equal(t, point.Position, point.Bounds().Min)
	assert.Equal(t, point.Position, point.Bounds().Max)
}

func TestBubbleInnerHitFlipsNormal(t *testing.T) {
	bubble := NewBubble(mathutil.Vec3{}, 1, 2)

	// start between the shells, aim at the inner sphere
	ray := NewRay(mathutil.Vec3{0, 0, -1.5}, mathutil.Vec3{0, 0, 1})
	i, ok := bubble.Intersect(ray)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, i.T, 1e-9)
	assert.InDelta(t, 1, i.Normal[2], 1e-9)
}

func TestOffsetRayTo(t *testing.T) {
	point := mathutil.Vec3{0, 0, 0}
	normal := mathutil.Vec3{0, 1, 0}
	target := mathutil.Vec3{0, 3, 0}

	ray := OffsetRayTo(point, normal, target)
	assert.InDelta(t, 1, ray.Direction.Len(), 1e-12)
	assert.True(t, ray.Origin[1] > 0)
	assert.InDelta(t, 3, ray.TEnd, 1e-9)
	assert.False(t, math.IsInf(ray.TEnd, 1))
}
