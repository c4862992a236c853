package sinc

import (
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/go-cut-creator/internal/mathutil"
)

// Window is an apodization function applied to the sinc kernel.
type Window int

const (
	WindowNone Window = iota
	WindowHann
	WindowBlackman
	WindowLanczos
	WindowKaiser
)

// Blackman coefficients
const (
	blackmanA0 = 0.42
	blackmanA1 = 0.5
	blackmanA2 = 0.08
)

var windowNames = [...]string{
	WindowNone:     "none",
	WindowHann:     "hann",
	WindowBlackman: "blackman",
	WindowLanczos:  "lanczos",
	WindowKaiser:   "kaiser",
}

// String returns the window name.
func (w Window) String() string {
	if w < 0 || int(w) >= len(windowNames) {
		return "unknown"
	}
	return windowNames[w]
}

// ParseWindow parses a window name as printed by String.
func ParseWindow(s string) (Window, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range windowNames {
		if n == name {
			return Window(i), nil
		}
	}
	return WindowNone, fmt.Errorf("%w: unknown window %q", ErrInvalidConfig, s)
}

// Sinc returns the normalized sinc sin(πx)/(πx), with Sinc(0) == 1.
func Sinc(x float64) float64 {
	return mathutil.NormalizedSinc(x)
}

// kernel evaluates tap weights for one read position.
type kernel struct {
	taps   int
	half   int
	window Window
	width  float64
	beta   float64
	i0Beta float64
}

func newKernel(cfg *Config) kernel {
	k := kernel{
		taps:   cfg.Taps,
		half:   cfg.Taps / 2,
		window: cfg.Window,
		width:  float64(cfg.Taps/2) + windowMargin,
		beta:   cfg.KaiserBeta,
	}
	if k.window == WindowKaiser {
		k.i0Beta = mathutil.BesselI0(k.beta)
	}
	return k
}

// size returns the number of evaluated taps, K+1.
func (k *kernel) size() int {
	return k.taps + 1
}

// weights fills dst with the tap weights for a read position frac samples
// past the left neighbour. dst must have length size().
func (k *kernel) weights(dst []float32, frac float64) {
	for j := range dst {
		d := float64(j-k.half) - frac
		dst[j] = float32(Sinc(d) * k.apodize(d))
	}
}

// apodize returns the window value at offset d from the centre.
func (k *kernel) apodize(d float64) float64 {
	x := d / k.width
	if math.Abs(x) >= 1 {
		if k.window == WindowNone {
			return 1
		}
		return 0
	}
	switch k.window {
	case WindowHann:
		return 0.5 + 0.5*math.Cos(math.Pi*x)
	case WindowBlackman:
		return blackmanA0 + blackmanA1*math.Cos(math.Pi*x) + blackmanA2*math.Cos(2*math.Pi*x)
	case WindowLanczos:
		return Sinc(x)
	case WindowKaiser:
		return mathutil.BesselI0(k.beta*math.Sqrt(1-x*x)) / k.i0Beta
	default:
		return 1
	}
}

// Weights returns the K+1 tap weights cfg uses for a read position frac
// samples past the left neighbour.
func Weights(cfg Config, frac float64) ([]float32, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	k := newKernel(&cfg)
	w := make([]float32, k.size())
	k.weights(w, frac)
	return w, nil
}
