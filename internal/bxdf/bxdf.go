// Package bxdf implements the scattering layer: single scattering functions
// (BxDFs) working in a local tangent frame where the surface normal is the
// +y axis, and the BSDF composing them at a surface point.
package bxdf

import (
	"math"

	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/spectrum"
)

// Flag is the 5-bit taxonomy of scattering behaviour.
type Flag uint8

const (
	Reflection Flag = 1 << iota
	Transmission
	Diffuse
	Glossy
	Specular

	None Flag = 0
	All       = Reflection | Transmission | Diffuse | Glossy | Specular
)

// Matches reports whether the flag set is a superset of query.
func (f Flag) Matches(query Flag) bool {
	return f&query == query
}

func (f Flag) Reflective() bool   { return f&Reflection != 0 }
func (f Flag) Transmissive() bool { return f&Transmission != 0 }
func (f Flag) IsDiffuse() bool    { return f&Diffuse != 0 }
func (f Flag) IsGlossy() bool     { return f&Glossy != 0 }
func (f Flag) IsSpecular() bool   { return f&Specular != 0 }

// Sample is a drawn scattering direction with the full spectral weight.
type Sample struct {
	Spectrum spectrum.Spectrum
	Incident mathutil.Vec3
	Pdf      float64
	Flag     Flag
}

// LambdaSample is a drawn scattering direction for a single wavelength bin.
type LambdaSample struct {
	Value    float64
	Incident mathutil.Vec3
	Pdf      float64
	Flag     Flag
}

// PacketSample is a drawn scattering direction shared by a wavelength packet.
type PacketSample struct {
	Values   [spectrum.PacketSize]float64
	Incident mathutil.Vec3
	Pdf      float64
	Flag     Flag
}

// SamplePacket is the result of sampling a BxDF with a wavelength packet.
// Either the whole bundle continues along one direction, or a chromatic
// event split it into per-wavelength samples.
type SamplePacket struct {
	IsSplit bool
	Bundle  *PacketSample
	Split   [spectrum.PacketSize]*LambdaSample
}

// BundlePacket wraps a shared-direction result.
func BundlePacket(s *PacketSample) SamplePacket {
	return SamplePacket{Bundle: s}
}

// SplitPacket wraps a per-wavelength result.
func SplitPacket(split [spectrum.PacketSize]*LambdaSample) SamplePacket {
	return SamplePacket{IsSplit: true, Split: split}
}

// BxDF is a single scattering mechanism. All directions are in the local
// tangent frame.
type BxDF interface {
	Flag() Flag

	Evaluate(incident, outgoing mathutil.Vec3) spectrum.Spectrum
	EvaluateLambda(incident, outgoing mathutil.Vec3, index int) float64
	EvaluatePacket(incident, outgoing mathutil.Vec3, indices [spectrum.PacketSize]int) [spectrum.PacketSize]float64

	Sample(outgoing mathutil.Vec3, u mathutil.Vec2) (Sample, bool)
	SampleLambda(outgoing mathutil.Vec3, u mathutil.Vec2, index int) (LambdaSample, bool)
	SamplePacket(outgoing mathutil.Vec3, u mathutil.Vec2, indices [spectrum.PacketSize]int) SamplePacket

	Pdf(incident, outgoing mathutil.Vec3) float64
}

// Normal returns the local frame surface normal (+y).
func Normal() mathutil.Vec3 {
	return mathutil.UnitY()
}

// MirrorIncident mirrors a direction at the local normal.
func MirrorIncident(v mathutil.Vec3) mathutil.Vec3 {
	return mathutil.Vec3{-v[0], v[1], -v[2]}
}

func IsNeg(v mathutil.Vec3) bool {
	return v[1] < 0
}

// FlipIfNeg mirrors v into the upper hemisphere.
func FlipIfNeg(v mathutil.Vec3) mathutil.Vec3 {
	if IsNeg(v) {
		v[1] = -v[1]
	}
	return v
}

// Flip mirrors v at the tangent plane.
func Flip(v mathutil.Vec3) mathutil.Vec3 {
	v[1] = -v[1]
	return v
}

// IsParallel reports whether v lies in the tangent plane.
func IsParallel(v mathutil.Vec3) bool {
	return v[1] == 0
}

func CosTheta(v mathutil.Vec3) float64 {
	return v[1]
}

func Cos2Theta(v mathutil.Vec3) float64 {
	return v[1] * v[1]
}

func Sin2Theta(v mathutil.Vec3) float64 {
	return math.Max(0, 1-Cos2Theta(v))
}

func SinTheta(v mathutil.Vec3) float64 {
	return math.Sqrt(Sin2Theta(v))
}

func TanTheta(v mathutil.Vec3) float64 {
	return SinTheta(v) / CosTheta(v)
}

func Tan2Theta(v mathutil.Vec3) float64 {
	return Sin2Theta(v) / Cos2Theta(v)
}

func CosPhi(v mathutil.Vec3) float64 {
	sinTheta := SinTheta(v)
	if sinTheta == 0 {
		return 0
	}
	return mathutil.Clamp(v[0]/sinTheta, -1, 1)
}

func SinPhi(v mathutil.Vec3) float64 {
	sinTheta := SinTheta(v)
	if sinTheta == 0 {
		return 0
	}
	return mathutil.Clamp(v[2]/sinTheta, -1, 1)
}

// CosDPhi returns the cosine of the azimuth difference of two directions.
func CosDPhi(a, b mathutil.Vec3) float64 {
	abxz := a[0]*b[0] + a[2]*b[2]
	axz := a[0]*a[0] + a[2]*a[2]
	bxz := b[0]*b[0] + b[2]*b[2]

	return mathutil.Clamp(abxz/math.Sqrt(axz*bxz), -1, 1)
}

// Refract bends v through a surface with the given normal and relative index
// of refraction eta = etaI/etaT. ok is false on total internal reflection.
func Refract(v, n mathutil.Vec3, eta float64) (mathutil.Vec3, bool) {
	cosI := n.Dot(v)
	sinT2 := eta * eta * math.Max(0, 1-cosI*cosI)

	if sinT2 > 1 {
		return mathutil.Vec3{}, false
	}

	cosT := math.Sqrt(1 - sinT2)
	return v.Neg().Scale(eta).Add(n.Scale(eta*cosI - cosT)), true
}

// FaceForward flips v so it lies in the hemisphere of n.
func FaceForward(v, n mathutil.Vec3) mathutil.Vec3 {
	if n.Dot(v) > 0 {
		return v
	}
	return v.Neg()
}

// SameHemisphere reports whether both directions lie on the same side of the
// tangent plane.
func SameHemisphere(a, b mathutil.Vec3) bool {
	return a[1]*b[1] > 0
}

// diffuseSample draws a cosine-weighted incident direction in the hemisphere
// of outgoing and evaluates the BxDF for it. Shared default for diffuse
// scattering functions.
func diffuseSample(b BxDF, outgoing mathutil.Vec3, u mathutil.Vec2) (Sample, bool) {
	incident := mathutil.SampleUnitHemisphere(u)
	if IsNeg(outgoing) {
		incident = Flip(incident)
	}

	pdf := diffusePdf(incident, outgoing)
	if pdf == 0 {
		return Sample{}, false
	}

	return Sample{
		Spectrum: b.Evaluate(incident, outgoing),
		Incident: incident,
		Pdf:      pdf,
		Flag:     b.Flag(),
	}, true
}

func diffuseSampleLambda(b BxDF, outgoing mathutil.Vec3, u mathutil.Vec2, index int) (LambdaSample, bool) {
	incident := mathutil.SampleUnitHemisphere(u)
	if IsNeg(outgoing) {
		incident = Flip(incident)
	}

	pdf := diffusePdf(incident, outgoing)
	if pdf == 0 {
		return LambdaSample{}, false
	}

	return LambdaSample{
		Value:    b.EvaluateLambda(incident, outgoing, index),
		Incident: incident,
		Pdf:      pdf,
		Flag:     b.Flag(),
	}, true
}

func diffuseSamplePacket(b BxDF, outgoing mathutil.Vec3, u mathutil.Vec2, indices [spectrum.PacketSize]int) SamplePacket {
	incident := mathutil.SampleUnitHemisphere(u)
	if IsNeg(outgoing) {
		incident = Flip(incident)
	}

	pdf := diffusePdf(incident, outgoing)
	if pdf == 0 {
		return BundlePacket(nil)
	}

	return BundlePacket(&PacketSample{
		Values:   b.EvaluatePacket(incident, outgoing, indices),
		Incident: incident,
		Pdf:      pdf,
		Flag:     b.Flag(),
	})
}

// diffusePdf is the cosine-weighted hemisphere density.
func diffusePdf(incident, outgoing mathutil.Vec3) float64 {
	if !SameHemisphere(incident, outgoing) {
		return 0
	}
	return math.Abs(CosTheta(incident)) / math.Pi
}
