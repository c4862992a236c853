package sinc

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by Render.
var (
	ErrInvalidConfig = errors.New("invalid render configuration")
	ErrInvalidSource = errors.New("invalid source")
)

// Config holds render parameters.
type Config struct {
	// OutputRate is the output sample rate in Hz.
	OutputRate int

	// BPM is the tempo used to convert bars into seconds, assuming 4/4.
	BPM float64

	// Taps is the kernel width K. K+1 taps centred on the read position
	// are evaluated. Must be even.
	Taps int

	// Window selects the apodization applied to the sinc kernel.
	// WindowNone gives the plain truncated sinc.
	Window Window

	// KaiserBeta is the shape parameter for WindowKaiser.
	KaiserBeta float64

	// ApplyGate multiplies each frame by the fader gate.
	ApplyGate bool

	// Parallel spreads frame chunks over Workers goroutines.
	Parallel bool

	// Workers is the number of goroutines used when Parallel is set.
	// Zero means GOMAXPROCS.
	Workers int
}

// DefaultConfig returns 48 kHz output at 120 bpm with the plain 10 tap kernel.
func DefaultConfig() Config {
	return Config{
		OutputRate: DefaultOutputRate,
		BPM:        DefaultBPM,
		Taps:       DefaultTaps,
		Window:     WindowNone,
		KaiserBeta: DefaultKaiserBeta,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.OutputRate <= 0 || c.OutputRate > maxOutputRate {
		return fmt.Errorf("%w: output rate must be in (0, %d], got %d", ErrInvalidConfig, maxOutputRate, c.OutputRate)
	}
	if math.IsNaN(c.BPM) || c.BPM <= 0 || c.BPM > maxBPM {
		return fmt.Errorf("%w: bpm must be in (0, %g], got %g", ErrInvalidConfig, maxBPM, c.BPM)
	}
	if c.Taps < minTaps || c.Taps > maxTaps || c.Taps%2 != 0 {
		return fmt.Errorf("%w: taps must be even and in [%d, %d], got %d", ErrInvalidConfig, minTaps, maxTaps, c.Taps)
	}
	if c.Window < WindowNone || c.Window > WindowKaiser {
		return fmt.Errorf("%w: unknown window %d", ErrInvalidConfig, c.Window)
	}
	if c.Window == WindowKaiser && (math.IsNaN(c.KaiserBeta) || c.KaiserBeta < 0) {
		return fmt.Errorf("%w: kaiser beta must be non-negative, got %g", ErrInvalidConfig, c.KaiserBeta)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// FrameCount returns the number of output frames for a cut of the given
// length: floor(rate * bars * 4 * 60 / bpm). It returns 0 for
// non-positive input and -1 when the count is not finite or exceeds the
// renderable maximum.
func FrameCount(rate int, bars float32, bpm float64) int {
	if !(bars > 0) || !(bpm > 0) || rate <= 0 {
		return 0
	}
	n := math.Floor(float64(rate) * float64(bars) * beatsPerBar * secondsPerMinute / bpm)
	if math.IsInf(n, 0) || n > maxFrames {
		return -1
	}
	return int(n)
}
