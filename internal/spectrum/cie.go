package spectrum

import "math"

// Data from https://en.wikipedia.org/wiki/CIE_1931_color_space#Analytical_approximation

// CIEYIntegral is the integral of the CIE Y matching curve over the grid.
const CIEYIntegral = 0.106856895

// LambdaToXYZ evaluates the analytic piecewise-Gaussian fit of the CIE 1931
// observer at the given wavelength (µm).
func LambdaToXYZ(lambda float64) [3]float64 {
	l := micrometerToAngstrom(lambda)
	return [3]float64{xBar(l), yBar(l), zBar(l)}
}

// gaussian is a piecewise-Gaussian with separate falloffs below and above mu.
func gaussian(lambda, alpha, mu, sigma1, sigma2 float64) float64 {
	sigma := sigma1
	if lambda >= mu {
		sigma = sigma2
	}
	t := (lambda - mu) / sigma
	return alpha * math.Exp(-(t*t)/2)
}

func xBar(lambda float64) float64 {
	return gaussian(lambda, 1.056, 5998, 379, 310) +
		gaussian(lambda, 0.362, 4420, 160, 267) +
		gaussian(lambda, -0.065, 5011, 204, 262)
}

func yBar(lambda float64) float64 {
	return gaussian(lambda, 0.821, 5688, 469, 405) +
		gaussian(lambda, 0.286, 5309, 163, 311)
}

func zBar(lambda float64) float64 {
	return gaussian(lambda, 1.217, 4370, 118, 360) +
		gaussian(lambda, 0.681, 4590, 260, 138)
}

func micrometerToAngstrom(lambda float64) float64 {
	return 10_000 * lambda
}

// D65 sRGB matrices, row-major. See
// https://entropymine.com/imageworsener/srgbformula/ for the companding
// thresholds.

var rgbToXYZ = [3][3]float64{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

var xyzToRGB = [3][3]float64{
	{3.240454836021409, -1.5371388501025753, -0.498531546868481},
	{-0.9692663898756538, 1.8760109288424913, 0.041556082346673524},
	{0.05564341960421366, -0.20402585426769815, 1.0572251624579287},
}

// XYZToSRGBTriple converts an XYZ triple to companded sRGB.
func XYZToSRGBTriple(xyz [3]float64) [3]float64 {
	var rgb [3]float64
	for r := 0; r < 3; r++ {
		rgb[r] = compand(xyzToRGB[r][0]*xyz[0] + xyzToRGB[r][1]*xyz[1] + xyzToRGB[r][2]*xyz[2])
	}
	return rgb
}

// SRGBToXYZTriple converts companded sRGB to an XYZ triple.
func SRGBToXYZTriple(srgb [3]float64) [3]float64 {
	lin := [3]float64{uncompand(srgb[0]), uncompand(srgb[1]), uncompand(srgb[2])}
	var xyz [3]float64
	for r := 0; r < 3; r++ {
		xyz[r] = rgbToXYZ[r][0]*lin[0] + rgbToXYZ[r][1]*lin[1] + rgbToXYZ[r][2]*lin[2]
	}
	return xyz
}

// spectralScale normalises the observer-fit sum: the grid range over the bin
// count, divided by the Y integral; a unit reflectance maps to Y ≈ 0.97.
const spectralScale = LambdaRange / (CIEYIntegral * SpectralSize)

// SpectralToXYZTriple converts a raw 36-bin spectral distribution to XYZ.
// The palette tables are derived through this exact pipeline.
func SpectralToXYZTriple(data [SpectralSize]float64) [3]float64 {
	var xyz [3]float64
	for i := 0; i < SpectralSize; i++ {
		t := float64(i) / float64(SpectralSize-1)
		lambda := LambdaStart + t*LambdaRange
		bar := LambdaToXYZ(lambda)
		xyz[0] += bar[0] * data[i]
		xyz[1] += bar[1] * data[i]
		xyz[2] += bar[2] * data[i]
	}
	xyz[0] *= spectralScale
	xyz[1] *= spectralScale
	xyz[2] *= spectralScale
	return xyz
}

func compand(val float64) float64 {
	if val <= 0.00313066844250063 {
		return val * 12.92
	}
	return 1.055*math.Pow(val, 1/2.4) - 0.055
}

func uncompand(val float64) float64 {
	if val <= 0.0404482362771082 {
		return val / 12.92
	}
	return math.Pow((val+0.055)/1.055, 2.4)
}
