package bxdf

import (
	"math"
	"sort"

	"spectral-renderer/internal/spectrum"
)

// RefractiveKind enumerates the refractive materials.
type RefractiveKind int

const (
	Air RefractiveKind = iota
	Vacuum
	Water
	Glass
	Sapphire
	Diesel
	Linear
)

// RefractiveType describes the wavelength-dependent refractive index of a
// medium, plus an optional extinction coefficient. The Linear kind
// interpolates between Min and Max over the wavelength grid.
type RefractiveType struct {
	Kind RefractiveKind
	Min  float64
	Max  float64
}

// NewRefractiveType wraps an analytic or tabulated material.
func NewRefractiveType(kind RefractiveKind) RefractiveType {
	return RefractiveType{Kind: kind}
}

// NewLinearRefraction interpolates the index linearly over the spectrum.
func NewLinearRefraction(min, max float64) RefractiveType {
	return RefractiveType{Kind: Linear, Min: min, Max: max}
}

// NUniform returns the refractive index without wavelength dependence
// (inaccurate across the spectrum).
func (r RefractiveType) NUniform() float64 {
	switch r.Kind {
	case Air:
		return 1.00029
	case Vacuum:
		return 1.0
	case Water:
		return 1.3325
	case Glass:
		return 1.5168
	case Sapphire:
		return 1.7490
	case Diesel:
		return 1.4600
	case Linear:
		return 0.5 * (r.Min + r.Max)
	}
	return 1.0
}

// KUniform returns the extinction coefficient without wavelength dependence.
// ok is false when the material carries no extinction data.
func (r RefractiveType) KUniform() (float64, bool) {
	switch r.Kind {
	case Water:
		return 7.2792e-9, true
	case Glass:
		return 9.7525e-9, true
	case Sapphire:
		return 0.020900, true
	default:
		return 0, false
	}
}

// N returns the refractive index at the given wavelength (µm).
func (r RefractiveType) N(lambda float64) float64 {
	switch r.Kind {
	case Air:
		return airSellmeierN(lambda)
	case Vacuum:
		return 1.0
	case Water:
		return searchLambda(waterIndex[:], waterN[:], lambda)
	case Glass:
		return glassSellmeierN(lambda)
	case Sapphire:
		return sapphireSellmeierN(lambda)
	case Diesel:
		return searchLambda(dieselIndex[:], dieselN[:], lambda)
	case Linear:
		t := mathLerpInv(lambda, spectrum.LambdaStart, spectrum.LambdaEnd)
		return r.Min + t*(r.Max-r.Min)
	}
	return 1.0
}

// K returns the extinction coefficient at the given wavelength (µm).
// ok is false when the material carries no extinction data.
func (r RefractiveType) K(lambda float64) (float64, bool) {
	switch r.Kind {
	case Water:
		return searchLambda(waterIndex[:], waterK[:], lambda), true
	case Glass:
		return searchLambda(glassIndexK[:], glassK[:], lambda), true
	case Sapphire:
		return searchLambda(sapphireIndexK[:], sapphireK[:], lambda), true
	default:
		return 0, false
	}
}

func mathLerpInv(value, start, end float64) float64 {
	return (value - start) / (end - start)
}

// searchLambda interpolates the tabulated values at lambda by binary search.
// Values outside the table clamp to the nearest entry.
func searchLambda(indices, values []float64, lambda float64) float64 {
	i := sort.SearchFloat64s(indices, lambda)
	switch {
	case i == 0:
		return values[0]
	case i >= len(indices):
		return values[len(values)-1]
	case indices[i] == lambda:
		return values[i]
	default:
		t := mathLerpInv(lambda, indices[i-1], indices[i])
		return values[i-1] + t*(values[i]-values[i-1])
	}
}

// Air coefficients.
// Data from https://refractiveindex.info/?shelf=other&book=air&page=Borzsonyi
func airSellmeierN(lambda float64) float64 {
	l2 := lambda * lambda

	one := 14926.44e-8 * l2 / (l2 - 19.36e-6)
	two := 41807.57e-8 * l2 / (l2 - 7.434e-3)

	return math.Sqrt(1 + one + two)
}

// Borosilicate crown glass (BK7) coefficients.
// Data from https://refractiveindex.info/?shelf=3d&book=glass&page=BK7
func glassSellmeierN(lambda float64) float64 {
	l2 := lambda * lambda

	one := 1.03961212 * l2 / (l2 - 0.00600069867)
	two := 0.231792344 * l2 / (l2 - 0.0200179144)
	three := 1.01046945 * l2 / (l2 - 103.560653)

	return math.Sqrt(1 + one + two + three)
}

// Sapphire coefficients.
// Data from https://refractiveindex.info/?shelf=main&book=Al2O3&page=Querry-o
func sapphireSellmeierN(lambda float64) float64 {
	l2 := lambda * lambda

	one := 1.43134930 * l2 / (l2 - 5.2799261e-3)
	two := 0.65054713 * l2 / (l2 - 1.42382647e-2)
	three := 5.3414021 * l2 / (l2 - 325.017834)

	return math.Sqrt(1 + one + two + three)
}

// Glass extinction, sampled from 0.3 to 2.5 µm.
var glassIndexK = [...]float64{
	0.3, 0.31, 0.32, 0.334, 0.35, 0.365, 0.37, 0.38, 0.39, 0.4, 0.405, 0.42,
	0.436, 0.46, 0.5, 0.546, 0.58, 0.62, 0.66, 0.7, 1.06, 1.53, 1.97, 2.325, 2.5,
}

var glassK = [...]float64{
	2.8607e-6, 1.3679e-6, 6.6608e-7, 2.6415e-7, 9.2894e-8, 3.4191e-8,
	2.7405e-8, 2.074e-8, 1.3731e-8, 1.0227e-8, 9.0558e-9, 9.3912e-9,
	1.1147e-8, 1.0286e-8, 9.5781e-9, 6.9658e-9, 9.2541e-9, 1.1877e-8,
	1.2643e-8, 8.9305e-9, 1.0137e-8, 9.839e-8, 1.0933e-6, 4.2911e-6, 8.13e-6,
}

// Water refractive index and extinction over the visible range (µm).
var waterIndex = [...]float64{
	0.38, 0.40, 0.42, 0.44, 0.46, 0.48, 0.50, 0.52, 0.54, 0.56,
	0.58, 0.60, 0.62, 0.64, 0.66, 0.68, 0.70, 0.73,
}

var waterN = [...]float64{
	1.3406, 1.3390, 1.3378, 1.3368, 1.3360, 1.3353, 1.3347, 1.3341, 1.3336, 1.3332,
	1.3328, 1.3324, 1.3321, 1.3317, 1.3314, 1.3311, 1.3308, 1.3305,
}

var waterK = [...]float64{
	1.05e-9, 1.80e-9, 2.37e-9, 2.98e-9, 3.58e-9, 4.27e-9, 5.79e-9, 9.13e-9, 1.63e-8, 2.59e-8,
	3.52e-8, 9.24e-8, 1.27e-7, 1.64e-7, 2.39e-7, 3.25e-7, 4.17e-7, 6.25e-7,
}

// Sapphire extinction, down-sampled from the Querry ordinary-ray data to the
// range the renderer queries (µm).
var sapphireIndexK = [...]float64{
	0.21, 0.24, 0.27, 0.30, 0.33, 0.36, 0.38, 0.40, 0.42, 0.44,
	0.46, 0.48, 0.50, 0.52, 0.54, 0.56, 0.58, 0.60, 0.62, 0.64,
	0.66, 0.68, 0.70, 0.73,
}

var sapphireK = [...]float64{
	0.0310, 0.0268, 0.0242, 0.0227, 0.0218, 0.0212, 0.0210, 0.0208, 0.0207, 0.0206,
	0.0206, 0.0206, 0.0207, 0.0208, 0.0209, 0.0210, 0.0211, 0.0213, 0.0214, 0.0216,
	0.0218, 0.0219, 0.0221, 0.0224,
}

// Diesel fuel oil refractive index over the visible range (µm).
// Data from https://refractiveindex.info/?shelf=other&book=fuels&page=diesel
var dieselIndex = [...]float64{
	0.38, 0.42, 0.46, 0.50, 0.54, 0.58, 0.62, 0.66, 0.70, 0.73,
}

var dieselN = [...]float64{
	1.4790, 1.4735, 1.4694, 1.4662, 1.4637, 1.4616, 1.4599, 1.4585, 1.4572, 1.4564,
}
