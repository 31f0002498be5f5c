package camera

import (
	"math/rand"

	"spectral-renderer/internal/geometry"
	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/sampler"
)

// Orthographic shoots parallel rays: every primary ray shares the view
// direction with the origin offset on the image plane.
type Orthographic struct {
	topLeft mathutil.Vec3
	xDir    mathutil.Vec3
	yDir    mathutil.Vec3
	zDir    mathutil.Vec3
	width   int
	height  int
	sampler sampler.CameraSampler
}

// NewOrthographic derives the image plane from position, target, up vector
// and the world-space extents of the view volume.
func NewOrthographic(position, target, up mathutil.Vec3, fovX, fovY float64, width, height int, smp sampler.CameraSampler) *Orthographic {
	zDir := target.Sub(position).Normalize()
	xUnit := zDir.Cross(up).Normalize()
	yUnit := zDir.Cross(xUnit).Normalize()

	topLeft := position.Sub(xUnit.Scale(0.5 * fovX).Add(yUnit.Scale(0.5 * fovY)))

	return &Orthographic{
		topLeft: topLeft,
		xDir:    xUnit.Scale(fovX / float64(width)),
		yDir:    yUnit.Scale(fovY / float64(height)),
		zDir:    zDir,
		width:   width,
		height:  height,
		sampler: smp,
	}
}

func (o *Orthographic) Resolution() (int, int) {
	return o.width, o.height
}

func (o *Orthographic) PrimaryRay(x, y int, rng *rand.Rand) geometry.Ray {
	sample := o.sampler.Sample(rng)

	right := o.xDir.Scale(sample[0] + float64(x))
	down := o.yDir.Scale(sample[1] + float64(y))
	origin := o.topLeft.Add(right).Add(down)

	return geometry.NewRay(origin, o.zDir)
}
