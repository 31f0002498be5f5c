package camera

import (
	"math"
	"math/rand"

	"spectral-renderer/internal/geometry"
	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/sampler"
)

// Perspective projects through a pinhole at the eye onto an image plane
// spanned at the target distance.
type Perspective struct {
	eye       mathutil.Vec3
	xDir      mathutil.Vec3
	yDir      mathutil.Vec3
	lowerLeft mathutil.Vec3
	width     int
	height    int
	sampler   sampler.CameraSampler
}

// NewPerspective derives the image plane from eye, target, up vector and the
// vertical field of view in degrees.
func NewPerspective(eye, target, up mathutil.Vec3, fov float64, width, height int, smp sampler.CameraSampler) *Perspective {
	view := target.Sub(eye).Normalize()
	axisRight := view.Cross(up).Normalize()
	axisUp := axisRight.Cross(view) // normalized by construction
	distance := target.Sub(eye).Len()

	w := float64(width)
	h := float64(height)
	imageHeight := 2 * distance * math.Tan(mathutil.Deg2Rad(0.5*fov))
	imageWidth := w / h * imageHeight

	xDir := axisRight.Scale(imageWidth / w)
	yDir := axisUp.Neg().Scale(imageHeight / h)

	lowerLeft := target.Sub(xDir.Scale(0.5 * w)).Sub(yDir.Scale(0.5 * h))

	return &Perspective{
		eye:       eye,
		xDir:      xDir,
		yDir:      yDir,
		lowerLeft: lowerLeft,
		width:     width,
		height:    height,
		sampler:   smp,
	}
}

func (p *Perspective) Resolution() (int, int) {
	return p.width, p.height
}

func (p *Perspective) PrimaryRay(x, y int, rng *rand.Rand) geometry.Ray {
	sample := p.sampler.Sample(rng)

	direction := p.lowerLeft.
		Add(p.xDir.Scale(float64(x) + sample[0])).
		Add(p.yDir.Scale(float64(y) + sample[1])).
		Sub(p.eye).
		Normalize()

	return geometry.NewRay(p.eye, direction)
}
