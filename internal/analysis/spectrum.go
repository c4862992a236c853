// Package analysis measures rendered audio: peak frequency, level and
// spectrum, using gonum's FFT.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/go-cut-creator/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
)

// minFFTLen is the shortest signal that is analyzed.
const minFFTLen = 4

// Spectrum returns the magnitude of each positive frequency bin of samples.
// Bin k corresponds to k*sampleRate/len(samples) Hz.
func Spectrum(samples []float64) []float64 {
	if len(samples) < minFFTLen {
		return nil
	}
	fft := fourier.NewFFT(len(samples))
	coeffs := fft.Coefficients(nil, samples)
	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}
	return mags
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC
// bin, refined by parabolic interpolation over its neighbours.
// It returns 0 for signals too short or silent to measure.
func DominantFrequency(samples []float64, sampleRate float64) float64 {
	mags := Spectrum(samples)
	if len(mags) < minFFTLen/2 {
		return 0
	}

	peak := 1
	for i := 2; i < len(mags); i++ {
		if mags[i] > mags[peak] {
			peak = i
		}
	}
	if mags[peak] == 0 {
		return 0
	}

	offset := 0.0
	if peak+1 < len(mags) {
		a, b, c := mags[peak-1], mags[peak], mags[peak+1]
		if den := a - 2*b + c; den != 0 {
			offset = 0.5 * (a - c) / den
		}
	}

	binHz := sampleRate / float64(len(samples))
	return (float64(peak) + offset) * binHz
}

// RMS returns the root mean square level of samples.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sq := make([]float64, len(samples))
	for i, v := range samples {
		sq[i] = v * v
	}
	return math.Sqrt(simdops.For[float64]().Sum(sq) / float64(len(samples)))
}

// Peak returns the largest absolute sample value.
func Peak(samples []float64) float64 {
	p := 0.0
	for _, v := range samples {
		p = max(p, math.Abs(v))
	}
	return p
}

// DBFS converts a linear level to decibels relative to full scale.
// Silence maps to -Inf.
func DBFS(level float64) float64 {
	if level <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(level)
}

// Deinterleave splits interleaved stereo frames into float64 channels.
func Deinterleave(frames []float32) (left, right []float64) {
	n := len(frames) / 2
	left = make([]float64, n)
	right = make([]float64, n)
	for i := range n {
		left[i] = float64(frames[2*i])
		right[i] = float64(frames[2*i+1])
	}
	return left, right
}
