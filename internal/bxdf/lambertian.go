package bxdf

import (
	"math"

	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/spectrum"
)

// LambertianReflection reflects equally into all directions of the
// hemisphere.
type LambertianReflection struct {
	R spectrum.Spectrum
}

// NewLambertianReflection creates a lambertian reflection with the given
// reflective filter spectrum.
func NewLambertianReflection(r spectrum.Spectrum) *LambertianReflection {
	return &LambertianReflection{R: r}
}

func (l *LambertianReflection) Flag() Flag {
	return Reflection | Diffuse
}

func (l *LambertianReflection) Evaluate(_, _ mathutil.Vec3) spectrum.Spectrum {
	return l.R.Scale(1 / math.Pi)
}

func (l *LambertianReflection) EvaluateLambda(_, _ mathutil.Vec3, index int) float64 {
	return l.R[index] / math.Pi
}

func (l *LambertianReflection) EvaluatePacket(_, _ mathutil.Vec3, indices [spectrum.PacketSize]int) [spectrum.PacketSize]float64 {
	var out [spectrum.PacketSize]float64
	for i, idx := range indices {
		out[i] = l.R[idx] / math.Pi
	}
	return out
}

func (l *LambertianReflection) Sample(outgoing mathutil.Vec3, u mathutil.Vec2) (Sample, bool) {
	return diffuseSample(l, outgoing, u)
}

func (l *LambertianReflection) SampleLambda(outgoing mathutil.Vec3, u mathutil.Vec2, index int) (LambdaSample, bool) {
	return diffuseSampleLambda(l, outgoing, u, index)
}

func (l *LambertianReflection) SamplePacket(outgoing mathutil.Vec3, u mathutil.Vec2, indices [spectrum.PacketSize]int) SamplePacket {
	return diffuseSamplePacket(l, outgoing, u, indices)
}

func (l *LambertianReflection) Pdf(incident, outgoing mathutil.Vec3) float64 {
	return diffusePdf(incident, outgoing)
}

// LambertianTransmission transmits equally into all directions of the
// opposite hemisphere.
type LambertianTransmission struct {
	T spectrum.Spectrum
}

// NewLambertianTransmission creates a lambertian transmission with the given
// transmissive filter spectrum.
func NewLambertianTransmission(t spectrum.Spectrum) *LambertianTransmission {
	return &LambertianTransmission{T: t}
}

func (l *LambertianTransmission) Flag() Flag {
	return Diffuse | Transmission
}

func (l *LambertianTransmission) Evaluate(_, _ mathutil.Vec3) spectrum.Spectrum {
	return l.T.Scale(1 / math.Pi)
}

func (l *LambertianTransmission) EvaluateLambda(_, _ mathutil.Vec3, index int) float64 {
	return l.T[index] / math.Pi
}

func (l *LambertianTransmission) EvaluatePacket(_, _ mathutil.Vec3, indices [spectrum.PacketSize]int) [spectrum.PacketSize]float64 {
	var out [spectrum.PacketSize]float64
	for i, idx := range indices {
		out[i] = l.T[idx] / math.Pi
	}
	return out
}

func (l *LambertianTransmission) Sample(outgoing mathutil.Vec3, u mathutil.Vec2) (Sample, bool) {
	s, ok := diffuseSample(l, outgoing, u)
	if !ok {
		return Sample{}, false
	}
	// transmit into the opposite hemisphere
	s.Incident = Flip(s.Incident)
	return s, true
}

func (l *LambertianTransmission) SampleLambda(outgoing mathutil.Vec3, u mathutil.Vec2, index int) (LambdaSample, bool) {
	s, ok := diffuseSampleLambda(l, outgoing, u, index)
	if !ok {
		return LambdaSample{}, false
	}
	s.Incident = Flip(s.Incident)
	return s, true
}

func (l *LambertianTransmission) SamplePacket(outgoing mathutil.Vec3, u mathutil.Vec2, indices [spectrum.PacketSize]int) SamplePacket {
	p := diffuseSamplePacket(l, outgoing, u, indices)
	if p.Bundle != nil {
		p.Bundle.Incident = Flip(p.Bundle.Incident)
	}
	return p
}

func (l *LambertianTransmission) Pdf(incident, outgoing mathutil.Vec3) float64 {
	if SameHemisphere(incident, outgoing) {
		return 0
	}
	return math.Abs(CosTheta(incident)) / math.Pi
}
