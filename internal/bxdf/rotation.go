package bxdf

import (
	"spectral-renderer/internal/mathutil"
)

type rotationKind uint8

const (
	rotationNone rotationKind = iota
	rotationFlip
	rotationMat
)

// Rotation maps directions between the world frame and the local tangent
// frame. The trivial cases (normal already +y or -y) avoid the matrix.
type Rotation struct {
	kind rotationKind
	mat  mathutil.Mat3
}

// WorldToBxdf returns the rotation mapping the world normal onto the local
// +y axis.
func WorldToBxdf(normal mathutil.Vec3) Rotation {
	switch normal {
	case mathutil.UnitY():
		return Rotation{kind: rotationNone}
	case mathutil.UnitY().Neg():
		return Rotation{kind: rotationFlip}
	default:
		return Rotation{kind: rotationMat, mat: mathutil.RotationBetween(normal, Normal())}
	}
}

// BxdfToWorld returns the rotation mapping the local +y axis onto the world
// normal.
func BxdfToWorld(normal mathutil.Vec3) Rotation {
	switch normal {
	case mathutil.UnitY():
		return Rotation{kind: rotationNone}
	case mathutil.UnitY().Neg():
		return Rotation{kind: rotationFlip}
	default:
		return Rotation{kind: rotationMat, mat: mathutil.RotationBetween(Normal(), normal)}
	}
}

// Apply rotates a vector.
func (r Rotation) Apply(v mathutil.Vec3) mathutil.Vec3 {
	switch r.kind {
	case rotationNone:
		return v
	case rotationFlip:
		return Flip(v)
	default:
		return r.mat.MulVec3(v)
	}
}

// Reversed inverts the rotation.
func (r Rotation) Reversed() Rotation {
	if r.kind != rotationMat {
		return r
	}
	return Rotation{kind: rotationMat, mat: r.mat.Transpose()}
}
