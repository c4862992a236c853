// Package mathutil provides the special functions behind the sinc kernel
// windows.
package mathutil

import (
	"math"
)

// BesselI0 returns the modified Bessel function of the first kind, order
// zero. The Kaiser window is normalized by it. Relative error is below
// 2e-7 over the whole real line.
func BesselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < besselSplit {
		t := ax / besselSplit
		return horner(besselSeries[:], t*t)
	}
	return math.Exp(ax) / math.Sqrt(ax) * horner(besselAsymptotic[:], besselSplit/ax)
}

// horner evaluates the polynomial with coefficients c (lowest power
// first) at t.
func horner(c []float64, t float64) float64 {
	var y float64
	for i := len(c) - 1; i >= 0; i-- {
		y = y*t + c[i]
	}
	return y
}

// KaiserBeta returns the Kaiser β giving roughly the requested sidelobe
// attenuation in dB. Below 21 dB the window is rectangular and β is 0.
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserStrongAtt:
		return kaiserStrongSlope * (attenuation - kaiserStrongBase)
	case attenuation >= kaiserWeakAtt:
		d := attenuation - kaiserWeakAtt
		return kaiserWeakScale*math.Pow(d, kaiserWeakExponent) + kaiserWeakSlope*d
	default:
		return 0
	}
}

// NormalizedSinc returns sin(πx)/(πx), with 1 at zero.
func NormalizedSinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
