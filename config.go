package cutcreator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-cut-creator/internal/mathutil"
	"github.com/tphakala/go-cut-creator/internal/sinc"
)

// Common errors returned by the editor.
var (
	// ErrInvalidConfig indicates invalid render settings.
	ErrInvalidConfig = errors.New("invalid render configuration")

	// ErrLoad indicates a sample or record that could not be loaded.
	ErrLoad = errors.New("load failed")

	// ErrSave indicates a record that could not be written. The editor
	// state is unchanged.
	ErrSave = errors.New("save failed")

	// ErrNoSample indicates a render without a loaded sample.
	ErrNoSample = errors.New("no sample loaded")
)

// QualityPreset selects the sinc kernel used for rendering.
type QualityPreset int

const (
	// QualityDraft uses a 4 tap Hann-windowed sinc. Fastest, audibly soft.
	QualityDraft QualityPreset = iota

	// QualityStandard uses the plain 10 tap truncated sinc.
	QualityStandard

	// QualityHigh uses a 32 tap Kaiser-windowed sinc.
	QualityHigh

	// QualityVeryHigh uses a 64 tap Kaiser-windowed sinc.
	QualityVeryHigh

	// QualityCustom uses Taps, Window and KaiserBeta as given.
	QualityCustom
)

var qualityNames = [...]string{
	QualityDraft:    "draft",
	QualityStandard: "standard",
	QualityHigh:     "high",
	QualityVeryHigh: "veryhigh",
	QualityCustom:   "custom",
}

// String returns the preset name.
func (q QualityPreset) String() string {
	if q < 0 || int(q) >= len(qualityNames) {
		return "unknown"
	}
	return qualityNames[q]
}

// ParseQuality parses a preset name as printed by String.
func ParseQuality(s string) (QualityPreset, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range qualityNames {
		if n == name {
			return QualityPreset(i), nil
		}
	}
	return QualityStandard, fmt.Errorf("%w: unknown quality %q", ErrInvalidConfig, s)
}

// RenderConfig holds render settings.
type RenderConfig struct {
	// OutputRate is the output sample rate in Hz.
	OutputRate int

	// BPM is the tempo in 4/4.
	BPM float64

	// Quality selects the kernel. Taps, Window and KaiserBeta are only
	// read for QualityCustom.
	Quality    QualityPreset
	Taps       int
	Window     sinc.Window
	KaiserBeta float64

	// ApplyGate multiplies the output by the fader.
	ApplyGate bool

	// Parallel renders frame chunks concurrently on Workers goroutines
	// (zero means GOMAXPROCS).
	Parallel bool
	Workers  int
}

// DefaultRenderConfig returns 48 kHz output at 120 bpm with the standard kernel.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		OutputRate: sinc.DefaultOutputRate,
		BPM:        sinc.DefaultBPM,
		Quality:    QualityStandard,
		Taps:       sinc.DefaultTaps,
		Window:     sinc.WindowNone,
		KaiserBeta: sinc.DefaultKaiserBeta,
	}
}

// Validate checks the configuration for errors.
func (c *RenderConfig) Validate() error {
	if c.Quality < QualityDraft || c.Quality > QualityCustom {
		return fmt.Errorf("%w: unknown quality %d", ErrInvalidConfig, c.Quality)
	}
	cfg := c.SincConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// SincConfig resolves the preset into resampler parameters.
func (c *RenderConfig) SincConfig() sinc.Config {
	cfg := sinc.Config{
		OutputRate: c.OutputRate,
		BPM:        c.BPM,
		ApplyGate:  c.ApplyGate,
		Parallel:   c.Parallel,
		Workers:    c.Workers,
	}

	switch c.Quality {
	case QualityDraft:
		cfg.Taps, cfg.Window = draftTaps, sinc.WindowHann
	case QualityStandard:
		cfg.Taps, cfg.Window = standardTaps, sinc.WindowNone
	case QualityHigh:
		cfg.Taps, cfg.Window = highTaps, sinc.WindowKaiser
		cfg.KaiserBeta = mathutil.KaiserBeta(highAttenuation)
	case QualityVeryHigh:
		cfg.Taps, cfg.Window = veryHighTaps, sinc.WindowKaiser
		cfg.KaiserBeta = mathutil.KaiserBeta(veryHighAttenuation)
	default:
		cfg.Taps, cfg.Window, cfg.KaiserBeta = c.Taps, c.Window, c.KaiserBeta
	}
	return cfg
}
