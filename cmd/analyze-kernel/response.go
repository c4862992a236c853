package main

import (
	"math"

	"github.com/tphakala/go-cut-creator/internal/analysis"
	"github.com/tphakala/go-cut-creator/internal/sinc"
)

// dcGains returns the sum of the tap weights at n evenly spaced read
// positions in [0, 1).
func dcGains(cfg sinc.Config, n int) ([]float64, error) {
	gains := make([]float64, n)
	for i := range gains {
		w, err := sinc.Weights(cfg, float64(i)/float64(n))
		if err != nil {
			return nil, err
		}
		var sum float64
		for _, v := range w {
			sum += float64(v)
		}
		gains[i] = sum
	}
	return gains, nil
}

// response is a magnitude response normalized to DC, with bins spaced
// binWidth cycles per input sample.
type response struct {
	mags     []float64
	binWidth float64
}

// kernelResponse samples the continuous kernel oversample times per input
// sample and returns its magnitude response.
func kernelResponse(cfg sinc.Config, oversample, zeroPad int) (response, error) {
	size := cfg.Taps + 1
	impulse := make([]float64, size*oversample*zeroPad)
	for p := range oversample {
		w, err := sinc.Weights(cfg, float64(p)/float64(oversample))
		if err != nil {
			return response{}, err
		}
		// weight j sits at j - half - p/oversample input samples
		for j, v := range w {
			impulse[j*oversample-p+oversample-1] = float64(v)
		}
	}

	mags := analysis.Spectrum(impulse)
	if len(mags) > 0 && mags[0] > 0 {
		dc := mags[0]
		for i := range mags {
			mags[i] /= dc
		}
	}
	return response{
		mags:     mags,
		binWidth: float64(oversample) / float64(len(impulse)),
	}, nil
}

// at returns the response in dB at f cycles per input sample.
func (r response) at(f float64) float64 {
	i := int(math.Round(f / r.binWidth))
	if i < 0 || i >= len(r.mags) {
		return math.Inf(-1)
	}
	return analysis.DBFS(r.mags[i])
}

// peakAbove returns the largest response in dB above f cycles per input
// sample.
func (r response) peakAbove(f float64) float64 {
	start := int(math.Ceil(f / r.binWidth))
	peak := 0.0
	for i := start; i < len(r.mags); i++ {
		peak = max(peak, r.mags[i])
	}
	return analysis.DBFS(peak)
}

func minMax(s []float64) (lo, hi float64) {
	if len(s) == 0 {
		return 0, 0
	}
	lo, hi = s[0], s[0]
	for _, v := range s[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	return lo, hi
}

func dbRatio(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	return 20 * math.Log10(a/b)
}
