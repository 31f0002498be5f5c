package bxdf

import (
	"math"

	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/spectrum"
)

// OrenNayar models rough opaque diffuse surfaces where each facet is
// lambertian.
type OrenNayar struct {
	R spectrum.Spectrum
	A float64
	B float64
}

// NewOrenNayar creates an Oren-Nayar reflection. sigma is the roughness
// (gradient of the surface elevation) in degrees, in [0, inf).
func NewOrenNayar(r spectrum.Spectrum, sigma float64) *OrenNayar {
	sigma = mathutil.Deg2Rad(sigma)
	sigma2 := sigma * sigma

	return &OrenNayar{
		R: r,
		A: 1 - sigma2/(2*(sigma2+0.33)),
		B: 0.45 * sigma2 / (sigma2 + 0.09),
	}
}

func (o *OrenNayar) Flag() Flag {
	return Diffuse | Reflection
}

// calcParam evaluates (A + B·maxCos·sinAlpha·tanBeta) / π. Degenerate sine
// terms still yield A/π, keeping grazing angles non-black.
func (o *OrenNayar) calcParam(incident, outgoing mathutil.Vec3) float64 {
	sinThetaI := SinTheta(incident)
	sinThetaO := SinTheta(outgoing)

	maxCos := 0.0
	if sinThetaI > mathutil.Epsilon && sinThetaO > mathutil.Epsilon {
		dCos := CosPhi(incident)*CosPhi(outgoing) + SinPhi(incident)*SinPhi(outgoing)
		maxCos = math.Max(0, dCos)
	}

	cosThetaIAbs := math.Abs(CosTheta(incident))
	cosThetaOAbs := math.Abs(CosTheta(outgoing))

	var sinAlpha, tanBeta float64
	if cosThetaIAbs > cosThetaOAbs {
		sinAlpha = sinThetaO
		tanBeta = sinThetaI / cosThetaIAbs
	} else {
		sinAlpha = sinThetaI
		tanBeta = sinThetaO / cosThetaOAbs
	}

	return (o.A + o.B*maxCos*sinAlpha*tanBeta) / math.Pi
}

func (o *OrenNayar) Evaluate(incident, outgoing mathutil.Vec3) spectrum.Spectrum {
	return o.R.Scale(o.calcParam(incident, outgoing))
}

func (o *OrenNayar) EvaluateLambda(incident, outgoing mathutil.Vec3, index int) float64 {
	return o.R[index] * o.calcParam(incident, outgoing)
}

func (o *OrenNayar) EvaluatePacket(incident, outgoing mathutil.Vec3, indices [spectrum.PacketSize]int) [spectrum.PacketSize]float64 {
	param := o.calcParam(incident, outgoing)

	var out [spectrum.PacketSize]float64
	for i, idx := range indices {
		out[i] = o.R[idx] * param
	}
	return out
}

func (o *OrenNayar) Sample(outgoing mathutil.Vec3, u mathutil.Vec2) (Sample, bool) {
	return diffuseSample(o, outgoing, u)
}

func (o *OrenNayar) SampleLambda(outgoing mathutil.Vec3, u mathutil.Vec2, index int) (LambdaSample, bool) {
	return diffuseSampleLambda(o, outgoing, u, index)
}

func (o *OrenNayar) SamplePacket(outgoing mathutil.Vec3, u mathutil.Vec2, indices [spectrum.PacketSize]int) SamplePacket {
	return diffuseSamplePacket(o, outgoing, u, indices)
}

func (o *OrenNayar) Pdf(incident, outgoing mathutil.Vec3) float64 {
	return diffusePdf(incident, outgoing)
}
