// Package camera emits the primary rays of the renderer.
package camera

import (
	"math/rand"

	"spectral-renderer/internal/geometry"
)

// Camera creates primary rays for sensor pixels.
type Camera interface {
	// Resolution returns the image dimensions in pixels.
	Resolution() (width, height int)

	// PrimaryRay creates the camera ray through the given pixel. The rng
	// feeds the sub-pixel sampler.
	PrimaryRay(x, y int, rng *rand.Rand) geometry.Ray
}
