package sinc

// Musical time
const (
	beatsPerBar      = 4.0
	secondsPerMinute = 60.0
)

// Defaults: 48 kHz output at 120 bpm with a 10 tap truncated sinc.
const (
	DefaultOutputRate = 48000
	DefaultBPM        = 120.0
	DefaultTaps       = 10
	DefaultKaiserBeta = 8.6
)

// Validation bounds
const (
	minTaps       = 2
	maxTaps       = 512
	maxOutputRate = 768000
	maxBPM        = 1000.0

	// maxFrames caps the output length per channel.
	maxFrames = 1 << 30
)

// chunkFrames is the number of output frames rendered between
// cancellation checks, and the unit of work handed to parallel workers.
const chunkFrames = 4096

// windowMargin widens the window beyond the outermost tap so that no
// tap sits on a window zero.
const windowMargin = 1.0
