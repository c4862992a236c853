package cutcreator

import "github.com/tphakala/go-cut-creator/internal/checkpoint"

// Quality preset parameters
const (
	// Draft: short Hann-windowed kernel for quick previews
	draftTaps = 4

	// Standard: the plain 10 tap truncated sinc
	standardTaps = 10

	// High: Kaiser window tuned for ~80 dB sidelobes
	highTaps        = 32
	highAttenuation = 80.0

	// Very high: Kaiser window tuned for ~120 dB sidelobes
	veryHighTaps        = 64
	veryHighAttenuation = 120.0
)

// Editor defaults
const (
	// DefaultHistoryLimit bounds the number of undo groups.
	DefaultHistoryLimit = checkpoint.DefaultLimit

	// DefaultOutputPath is where RunResample writes when given no path.
	DefaultOutputPath = "audio/re_sample.wav"
)
