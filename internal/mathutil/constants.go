package mathutil

// besselSplit separates the series and asymptotic forms of I₀.
const besselSplit = 3.75

// Abramowitz & Stegun 9.8.1, in powers of (x/3.75)², lowest first.
var besselSeries = [...]float64{
	1.0, 3.5156229, 3.0899424, 1.2067492, 0.2659732, 0.0360768, 0.0045813,
}

// Abramowitz & Stegun 9.8.2, in powers of 3.75/x, lowest first.
// The sum is scaled by e^x/√x.
var besselAsymptotic = [...]float64{
	0.39894228, 0.01328592, 0.00225319, -0.00157565, 0.00916281,
	-0.02057706, 0.02635537, -0.01647633, 0.00392377,
}

// Kaiser & Schafer β fit
const (
	kaiserStrongAtt = 50.0 // dB, linear fit above
	kaiserWeakAtt   = 21.0 // dB, rectangular below

	kaiserStrongSlope = 0.1102
	kaiserStrongBase  = 8.7

	kaiserWeakScale    = 0.5842
	kaiserWeakExponent = 0.4
	kaiserWeakSlope    = 0.07886
)
