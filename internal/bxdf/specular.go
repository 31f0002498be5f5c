package bxdf

import (
	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/spectrum"
)

// etas orients a dielectric boundary for the outgoing direction: when the
// direction leaves the surface from below, the indices swap and the normal
// flips.
func etas(etaI, etaT RefractiveType, outgoing mathutil.Vec3) (RefractiveType, RefractiveType, mathutil.Vec3) {
	if CosTheta(outgoing) > 0 {
		return etaI, etaT, Normal()
	}
	return etaT, etaI, Normal().Neg()
}

// SpecularReflection mirrors at the surface normal; a delta distribution
// with zero evaluation and pdf.
type SpecularReflection struct {
	R       spectrum.Spectrum
	Fresnel Fresnel
}

// NewSpecularReflection creates a specular reflection.
func NewSpecularReflection(r spectrum.Spectrum, fresnel Fresnel) *SpecularReflection {
	return &SpecularReflection{R: r, Fresnel: fresnel}
}

func (s *SpecularReflection) Flag() Flag {
	return Reflection | Specular
}

func (s *SpecularReflection) Evaluate(_, _ mathutil.Vec3) spectrum.Spectrum {
	return spectrum.Spectrum{}
}

func (s *SpecularReflection) EvaluateLambda(_, _ mathutil.Vec3, _ int) float64 {
	return 0
}

func (s *SpecularReflection) EvaluatePacket(_, _ mathutil.Vec3, _ [spectrum.PacketSize]int) [spectrum.PacketSize]float64 {
	return [spectrum.PacketSize]float64{}
}

func (s *SpecularReflection) Sample(outgoing mathutil.Vec3, _ mathutil.Vec2) (Sample, bool) {
	incident := MirrorIncident(outgoing)
	cosI := CosTheta(incident)

	return Sample{
		Spectrum: s.Fresnel.Evaluate(cosI).Mul(s.R),
		Incident: incident,
		Pdf:      1,
		Flag:     s.Flag(),
	}, true
}

func (s *SpecularReflection) SampleLambda(outgoing mathutil.Vec3, _ mathutil.Vec2, index int) (LambdaSample, bool) {
	incident := MirrorIncident(outgoing)
	cosI := CosTheta(incident)
	wave := s.R.AsLightWave(index)

	return LambdaSample{
		Value:    s.Fresnel.EvaluateLambda(cosI, wave.Lambda) * wave.Intensity,
		Incident: incident,
		Pdf:      1,
		Flag:     s.Flag(),
	}, true
}

func (s *SpecularReflection) SamplePacket(outgoing mathutil.Vec3, _ mathutil.Vec2, indices [spectrum.PacketSize]int) SamplePacket {
	incident := MirrorIncident(outgoing)
	cosI := CosTheta(incident)

	var lambdas [spectrum.PacketSize]float64
	for i, idx := range indices {
		lambdas[i] = spectrum.Lambda(idx)
	}
	fresnel := s.Fresnel.EvaluatePacket(cosI, lambdas)

	var values [spectrum.PacketSize]float64
	for i, idx := range indices {
		values[i] = s.R[idx] * fresnel[i]
	}

	return BundlePacket(&PacketSample{
		Values:   values,
		Incident: incident,
		Pdf:      1,
		Flag:     s.Flag(),
	})
}

// Pdf is zero: delta distributions never scatter to a queried pair.
func (s *SpecularReflection) Pdf(_, _ mathutil.Vec3) float64 {
	return 0
}

// SpecularTransmission refracts through a dielectric boundary; a delta
// distribution with zero evaluation and pdf.
type SpecularTransmission struct {
	T       spectrum.Spectrum
	Fresnel FresnelDielectric
}

// NewSpecularTransmission creates a specular transmission between the
// incident medium etaI and the transmission medium etaT.
func NewSpecularTransmission(t spectrum.Spectrum, etaI, etaT RefractiveType) *SpecularTransmission {
	return &SpecularTransmission{T: t, Fresnel: NewFresnelDielectric(etaI, etaT)}
}

func (s *SpecularTransmission) Flag() Flag {
	return Specular | Transmission
}

func (s *SpecularTransmission) Evaluate(_, _ mathutil.Vec3) spectrum.Spectrum {
	return spectrum.Spectrum{}
}

func (s *SpecularTransmission) EvaluateLambda(_, _ mathutil.Vec3, _ int) float64 {
	return 0
}

func (s *SpecularTransmission) EvaluatePacket(_, _ mathutil.Vec3, _ [spectrum.PacketSize]int) [spectrum.PacketSize]float64 {
	return [spectrum.PacketSize]float64{}
}

func (s *SpecularTransmission) Sample(outgoing mathutil.Vec3, _ mathutil.Vec2) (Sample, bool) {
	etaI, etaT, normal := etas(s.Fresnel.EtaI, s.Fresnel.EtaT, outgoing)

	incident, ok := Refract(outgoing, normal, etaI.NUniform()/etaT.NUniform())
	if !ok {
		return Sample{}, false
	}

	cosI := CosTheta(incident)
	weight := spectrum.Splat(1).Sub(s.Fresnel.Evaluate(cosI))

	return Sample{
		Spectrum: s.T.Mul(weight),
		Incident: incident,
		Pdf:      1,
		Flag:     s.Flag(),
	}, true
}

func (s *SpecularTransmission) SampleLambda(outgoing mathutil.Vec3, _ mathutil.Vec2, index int) (LambdaSample, bool) {
	etaI, etaT, normal := etas(s.Fresnel.EtaI, s.Fresnel.EtaT, outgoing)

	lambda := spectrum.Lambda(index)
	incident, ok := Refract(outgoing, normal, etaI.N(lambda)/etaT.N(lambda))
	if !ok {
		return LambdaSample{}, false
	}

	cosI := CosTheta(incident)

	return LambdaSample{
		Value:    s.T[index] * (1 - s.Fresnel.EvaluateLambda(cosI, lambda)),
		Incident: incident,
		Pdf:      1,
		Flag:     s.Flag(),
	}, true
}

// SamplePacket always splits the bundle: the refraction direction depends on
// the wavelength.
func (s *SpecularTransmission) SamplePacket(outgoing mathutil.Vec3, _ mathutil.Vec2, indices [spectrum.PacketSize]int) SamplePacket {
	etaI, etaT, normal := etas(s.Fresnel.EtaI, s.Fresnel.EtaT, outgoing)

	var split [spectrum.PacketSize]*LambdaSample
	for i, idx := range indices {
		lambda := spectrum.Lambda(idx)

		incident, ok := Refract(outgoing, normal, etaI.N(lambda)/etaT.N(lambda))
		if !ok {
			continue
		}

		cosI := CosTheta(incident)
		split[i] = &LambdaSample{
			Value:    s.T[idx] * (1 - s.Fresnel.EvaluateLambda(cosI, lambda)),
			Incident: incident,
			Pdf:      1,
			Flag:     s.Flag(),
		}
	}

	return SplitPacket(split)
}

func (s *SpecularTransmission) Pdf(_, _ mathutil.Vec3) float64 {
	return 0
}

// FresnelSpecular combines specular reflection and transmission, choosing
// between them with the Fresnel reflectance as probability.
type FresnelSpecular struct {
	R       spectrum.Spectrum
	T       spectrum.Spectrum
	Fresnel FresnelDielectric
}

// NewFresnelSpecular creates the combined specular scattering function.
func NewFresnelSpecular(r, t spectrum.Spectrum, etaI, etaT RefractiveType) *FresnelSpecular {
	return &FresnelSpecular{R: r, T: t, Fresnel: NewFresnelDielectric(etaI, etaT)}
}

func (s *FresnelSpecular) Flag() Flag {
	return Reflection | Specular | Transmission
}

func (s *FresnelSpecular) Evaluate(_, _ mathutil.Vec3) spectrum.Spectrum {
	return spectrum.Spectrum{}
}

func (s *FresnelSpecular) EvaluateLambda(_, _ mathutil.Vec3, _ int) float64 {
	return 0
}

func (s *FresnelSpecular) EvaluatePacket(_, _ mathutil.Vec3, _ [spectrum.PacketSize]int) [spectrum.PacketSize]float64 {
	return [spectrum.PacketSize]float64{}
}

func (s *FresnelSpecular) Sample(outgoing mathutil.Vec3, u mathutil.Vec2) (Sample, bool) {
	cosOutgoing := CosTheta(outgoing)

	etaIOrig := s.Fresnel.EtaI.NUniform()
	etaTOrig := s.Fresnel.EtaT.NUniform()
	f := FresnelDielectricReflectance(cosOutgoing, etaIOrig, etaTOrig)

	if u[0] < f {
		// specular reflection
		return Sample{
			Spectrum: s.R.Scale(f),
			Incident: MirrorIncident(outgoing),
			Pdf:      f,
			Flag:     Specular | Reflection,
		}, true
	}

	// specular transmission
	etaI, etaT := etaIOrig, etaTOrig
	normal := Normal()
	if cosOutgoing <= 0 {
		etaI, etaT = etaT, etaI
		normal = normal.Neg()
	}

	incident, ok := Refract(outgoing, normal, etaI/etaT)
	if !ok {
		return Sample{}, false
	}

	pdf := 1 - f
	return Sample{
		Spectrum: s.T.Scale(pdf),
		Incident: incident,
		Pdf:      pdf,
		Flag:     Specular | Transmission,
	}, true
}

func (s *FresnelSpecular) SampleLambda(outgoing mathutil.Vec3, u mathutil.Vec2, index int) (LambdaSample, bool) {
	cosOutgoing := CosTheta(outgoing)

	lambda := spectrum.Lambda(index)
	etaIOrig := s.Fresnel.EtaI.N(lambda)
	etaTOrig := s.Fresnel.EtaT.N(lambda)
	f := FresnelDielectricReflectance(cosOutgoing, etaIOrig, etaTOrig)

	if u[0] < f {
		return LambdaSample{
			Value:    s.R[index] * f,
			Incident: MirrorIncident(outgoing),
			Pdf:      f,
			Flag:     Specular | Reflection,
		}, true
	}

	etaI, etaT := etaIOrig, etaTOrig
	normal := Normal()
	if cosOutgoing <= 0 {
		etaI, etaT = etaT, etaI
		normal = normal.Neg()
	}

	incident, ok := Refract(outgoing, normal, etaI/etaT)
	if !ok {
		return LambdaSample{}, false
	}

	pdf := 1 - f
	return LambdaSample{
		Value:    s.T[index] * pdf,
		Incident: incident,
		Pdf:      pdf,
		Flag:     Specular | Transmission,
	}, true
}

// SamplePacket always splits: both the Fresnel probability and the
// refraction direction depend on the wavelength.
func (s *FresnelSpecular) SamplePacket(outgoing mathutil.Vec3, u mathutil.Vec2, indices [spectrum.PacketSize]int) SamplePacket {
	var split [spectrum.PacketSize]*LambdaSample
	for i, idx := range indices {
		if sample, ok := s.SampleLambda(outgoing, u, idx); ok {
			split[i] = &sample
		}
	}
	return SplitPacket(split)
}

func (s *FresnelSpecular) Pdf(_, _ mathutil.Vec3) float64 {
	return 0
}
