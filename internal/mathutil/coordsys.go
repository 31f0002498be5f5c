package mathutil

import "math"

// CoordinateSystem represents 3 orthogonal axes in 3D space.
type CoordinateSystem struct {
	X, Y, Z Vec3
}

// DefaultCoordinateSystem returns the canonical axes.
func DefaultCoordinateSystem() CoordinateSystem {
	return CoordinateSystem{X: UnitX(), Y: UnitY(), Z: UnitZ()}
}

// CoordinateSystemFromY builds an orthonormal frame around the given y axis.
// yAxis should be normalized.
func CoordinateSystemFromY(yAxis Vec3) CoordinateSystem {
	var s Vec3
	if math.Abs(yAxis[0]) > math.Abs(yAxis[1]) {
		l := math.Sqrt(yAxis[0]*yAxis[0] + yAxis[2]*yAxis[2])
		s = Vec3{-yAxis[2] / l, 0, yAxis[0] / l}
	} else {
		l := math.Sqrt(yAxis[1]*yAxis[1] + yAxis[2]*yAxis[2])
		s = Vec3{0, yAxis[2] / l, -yAxis[1] / l}
	}
	return CoordinateSystem{X: s, Y: yAxis, Z: yAxis.Cross(s)}
}

// SphericalToCartesianFrameTrig converts spherical coordinates, given as the
// sine/cosine of theta (around the frame y axis) and phi (from the y axis),
// into the cartesian vector inside the given frame.
func SphericalToCartesianFrameTrig(sinTheta, cosTheta, sinPhi, cosPhi float64, frame CoordinateSystem) Vec3 {
	x := frame.X.Scale(sinPhi * sinTheta)
	y := frame.Y.Scale(cosPhi)
	z := frame.Z.Scale(sinPhi * cosTheta)

	return x.Add(y).Add(z)
}

// SphericalToCartesianTrig converts spherical coordinates into the canonical
// frame (x right, y up, z towards the viewer).
func SphericalToCartesianTrig(sinTheta, cosTheta, sinPhi, cosPhi float64) Vec3 {
	return Vec3{sinPhi * sinTheta, cosPhi, sinPhi * cosTheta}
}

// SphericalToCartesian converts the angles theta and phi into a cartesian vector.
func SphericalToCartesian(theta, phi float64) Vec3 {
	sinTheta, cosTheta := math.Sincos(theta)
	sinPhi, cosPhi := math.Sincos(phi)
	return SphericalToCartesianTrig(sinTheta, cosTheta, sinPhi, cosPhi)
}
