// Command analyze-kernel prints the DC gain and frequency response of the
// sinc kernel behind each quality preset.
//
// A truncated sinc does not sum to exactly one at fractional read
// positions, so the level of a render wobbles with the playback position.
// This tool shows by how much, and how much energy each kernel lets
// through above the input Nyquist frequency.
package main

import (
	"flag"
	"fmt"
	"log"

	cutcreator "github.com/tphakala/go-cut-creator"
)

const (
	// Kernel sampling
	defaultFractions  = 8  // read positions between two input samples
	defaultOversample = 64 // kernel samples per input sample for the response
	zeroPadFactor     = 8  // FFT zero padding for a smoother response

	// Response measurement points, in cycles per input sample
	passbandPoint = 0.25
	stopbandEdge  = 0.6
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	fractions := flag.Int("fractions", defaultFractions, "Read positions per input sample for the DC gain table")
	oversample := flag.Int("oversample", defaultOversample, "Kernel oversampling for the frequency response")
	flag.Parse()

	if *fractions < 1 || *oversample < 2 {
		return fmt.Errorf("fractions must be >= 1 and oversample >= 2")
	}

	for _, q := range []cutcreator.QualityPreset{
		cutcreator.QualityDraft,
		cutcreator.QualityStandard,
		cutcreator.QualityHigh,
		cutcreator.QualityVeryHigh,
	} {
		cfg := cutcreator.DefaultRenderConfig()
		cfg.Quality = q
		sc := cfg.SincConfig()

		fmt.Printf("=== %s: %d taps, %s window ===\n", q, sc.Taps+1, sc.Window)

		gains, err := dcGains(sc, *fractions)
		if err != nil {
			return err
		}
		for i, g := range gains {
			fmt.Printf("  frac %.3f: DC gain %.6f\n", float64(i)/float64(*fractions), g)
		}
		lo, hi := minMax(gains)
		fmt.Printf("  DC ripple: %.6f (%.2f dB)\n", hi-lo, dbRatio(hi, lo))

		resp, err := kernelResponse(sc, *oversample, zeroPadFactor)
		if err != nil {
			return err
		}
		fmt.Printf("  Response at %.2f fs: %.2f dB\n", passbandPoint, resp.at(passbandPoint))
		fmt.Printf("  Stopband peak above %.2f fs: %.2f dB\n\n", stopbandEdge, resp.peakAbove(stopbandEdge))
	}
	return nil
}
