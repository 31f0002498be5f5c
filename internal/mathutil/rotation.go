package mathutil

import "math"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// RotAxisAngle returns the rotation around an arbitrary unit axis
// (Rodrigues formula). Angle in radians.
func RotAxisAngle(axis Vec3, a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	t := 1 - c
	x, y, z := axis[0], axis[1], axis[2]
	return Mat3{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c,
	}
}

// RotationBetween returns the rotation mapping unit vector a onto unit
// vector b. For anti-parallel vectors it rotates π around an arbitrary
// perpendicular axis.
func RotationBetween(a, b Vec3) Mat3 {
	c := a.Dot(b)
	if c >= 1-1e-12 {
		return Mat3Identity()
	}
	if c <= -1+1e-12 {
		// pick any axis perpendicular to a
		perp := a.Cross(UnitX())
		if perp.Len2() < 1e-12 {
			perp = a.Cross(UnitZ())
		}
		return RotAxisAngle(perp.Normalize(), math.Pi)
	}

	v := a.Cross(b)
	// skew-symmetric cross-product matrix K; R = I + K + K²/(1+c)
	k := Mat3{
		0, -v[2], v[1],
		v[2], 0, -v[0],
		-v[1], v[0], 0,
	}
	k2 := Mat3Mul(k, k)
	r := Mat3Identity()
	inv := 1 / (1 + c)
	for i := range r {
		r[i] += k[i] + k2[i]*inv
	}
	return r
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
