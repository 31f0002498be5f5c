package geometry

import (
	"spectral-renderer/internal/mathutil"
)

// Disk is a flat circular surface.
type Disk struct {
	Center mathutil.Vec3
	Normal mathutil.Vec3
	Radius float64
}

// NewDisk creates a disk around center facing the unit normal.
func NewDisk(center, normal mathutil.Vec3, radius float64) Disk {
	return Disk{Center: center, Normal: normal, Radius: radius}
}

func (d Disk) Bounds() Aabb {
	return NewSphere(d.Center, d.Radius).Bounds()
}

func (d Disk) Contains(_ mathutil.Vec3) (bool, bool) {
	return false, false
}

func (d Disk) Intersect(ray Ray) (Intersection, bool) {
	i, ok := NewPlane(d.Center, d.Normal).Intersect(ray)
	if !ok || i.Point.Sub(d.Center).Len2() > d.Radius*d.Radius {
		return Intersection{}, false
	}
	return i, true
}

func (d Disk) Intersects(ray Ray) bool {
	_, ok := d.Intersect(ray)
	return ok
}
