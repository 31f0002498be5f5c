package bxdf

import (
	"spectral-renderer/internal/mathutil"
	"spectral-renderer/internal/sampler"
	"spectral-renderer/internal/spectrum"
)

// BSDF is an ordered bag of BxDFs behaving as one scattering function at a
// surface point. Operations pick one BxDF uniformly at random among those
// matching a flag mask, rotating between world and local frames.
type BSDF struct {
	bxdfs []BxDF
}

// NewBSDF composes the given BxDFs.
func NewBSDF(bxdfs ...BxDF) *BSDF {
	return &BSDF{bxdfs: bxdfs}
}

// EmptyBSDF returns a BSDF that scatters nothing.
func EmptyBSDF() *BSDF {
	return &BSDF{}
}

// Size returns the number of composed BxDFs.
func (b *BSDF) Size() int {
	return len(b.bxdfs)
}

// IsEmpty reports whether no BxDF is present.
func (b *BSDF) IsEmpty() bool {
	return len(b.bxdfs) == 0
}

// BxDFs exposes the composed scattering functions.
func (b *BSDF) BxDFs() []BxDF {
	return b.bxdfs
}

func (b *BSDF) numMatching(flags Flag) int {
	count := 0
	for _, bxdf := range b.bxdfs {
		if bxdf.Flag().Matches(flags) {
			count++
		}
	}
	return count
}

// randomMatching picks the ⌊u·count⌋-th BxDF matching the flags.
func (b *BSDF) randomMatching(flags Flag, u float64) BxDF {
	count := b.numMatching(flags)
	if count == 0 {
		return nil
	}

	index := int(u * float64(count))
	if index >= count {
		index = count - 1
	}

	for _, bxdf := range b.bxdfs {
		if !bxdf.Flag().Matches(flags) {
			continue
		}
		if index == 0 {
			return bxdf
		}
		index--
	}
	return nil
}

// constrain removes the scattering type that the geometric configuration of
// the two directions rules out.
func constrain(flags Flag, incident, outgoing mathutil.Vec3) Flag {
	if SameHemisphere(incident, outgoing) {
		return flags &^ Transmission
	}
	return flags &^ Reflection
}

// Evaluate rotates both world directions into the local frame and evaluates
// a randomly chosen matching BxDF.
func (b *BSDF) Evaluate(normal, incidentWorld, outgoingWorld mathutil.Vec3, u float64, flags Flag) spectrum.Spectrum {
	rotation := WorldToBxdf(normal)
	incident := rotation.Apply(incidentWorld)
	outgoing := rotation.Apply(outgoingWorld)

	bxdf := b.randomMatching(constrain(flags, incident, outgoing), u)
	if bxdf == nil {
		return spectrum.Spectrum{}
	}
	return bxdf.Evaluate(incident, outgoing)
}

// EvaluateLambda is Evaluate for a single wavelength bin.
func (b *BSDF) EvaluateLambda(normal, incidentWorld, outgoingWorld mathutil.Vec3, u float64, flags Flag, index int) float64 {
	rotation := WorldToBxdf(normal)
	incident := rotation.Apply(incidentWorld)
	outgoing := rotation.Apply(outgoingWorld)

	bxdf := b.randomMatching(constrain(flags, incident, outgoing), u)
	if bxdf == nil {
		return 0
	}
	return bxdf.EvaluateLambda(incident, outgoing, index)
}

// EvaluatePacket is Evaluate for a packet of wavelength bins.
func (b *BSDF) EvaluatePacket(normal, incidentWorld, outgoingWorld mathutil.Vec3, u float64, flags Flag, indices [spectrum.PacketSize]int) [spectrum.PacketSize]float64 {
	rotation := WorldToBxdf(normal)
	incident := rotation.Apply(incidentWorld)
	outgoing := rotation.Apply(outgoingWorld)

	bxdf := b.randomMatching(constrain(flags, incident, outgoing), u)
	if bxdf == nil {
		return [spectrum.PacketSize]float64{}
	}
	return bxdf.EvaluatePacket(incident, outgoing, indices)
}

// Sample draws an incident direction from a randomly chosen matching BxDF
// and rotates it back into world coordinates.
func (b *BSDF) Sample(normal, outgoingWorld mathutil.Vec3, s sampler.Sample, flags Flag) (Sample, bool) {
	rotation := WorldToBxdf(normal)
	outgoing := rotation.Apply(outgoingWorld)

	bxdf := b.randomMatching(flags, s.Float)
	if bxdf == nil {
		return Sample{}, false
	}

	sample, ok := bxdf.Sample(outgoing, s.Vec2)
	if !ok {
		return Sample{}, false
	}

	sample.Incident = rotation.Reversed().Apply(sample.Incident)
	return sample, true
}

// SampleLambda is Sample for a single wavelength bin.
func (b *BSDF) SampleLambda(normal, outgoingWorld mathutil.Vec3, s sampler.Sample, flags Flag, index int) (LambdaSample, bool) {
	rotation := WorldToBxdf(normal)
	outgoing := rotation.Apply(outgoingWorld)

	bxdf := b.randomMatching(flags, s.Float)
	if bxdf == nil {
		return LambdaSample{}, false
	}

	sample, ok := bxdf.SampleLambda(outgoing, s.Vec2, index)
	if !ok {
		return LambdaSample{}, false
	}

	sample.Incident = rotation.Reversed().Apply(sample.Incident)
	return sample, true
}

// SamplePacket is Sample for a packet of wavelength bins. The packet may
// come back split when the chosen BxDF scatters chromatically.
func (b *BSDF) SamplePacket(normal, outgoingWorld mathutil.Vec3, s sampler.Sample, flags Flag, indices [spectrum.PacketSize]int) SamplePacket {
	rotation := WorldToBxdf(normal)
	outgoing := rotation.Apply(outgoingWorld)

	bxdf := b.randomMatching(flags, s.Float)
	if bxdf == nil {
		return BundlePacket(nil)
	}

	packet := bxdf.SamplePacket(outgoing, s.Vec2, indices)
	back := rotation.Reversed()

	if packet.Bundle != nil {
		packet.Bundle.Incident = back.Apply(packet.Bundle.Incident)
	}
	for _, sample := range packet.Split {
		if sample != nil {
			sample.Incident = back.Apply(sample.Incident)
		}
	}

	return packet
}
