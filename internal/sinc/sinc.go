// Package sinc renders a cut curve into audio with a windowed-sinc
// interpolator.
//
// Each output frame asks the curve where in the source it should read,
// then reconstructs the band-limited signal at that fractional position
// from the K+1 surrounding source frames. Positions outside the source are
// treated as silence, so the first and last frames need no special case.
package sinc

// Curve is the read-only view of a cut needed for rendering.
// Implementations must be safe for concurrent reads.
type Curve interface {
	// Sample returns the relative source position in [0, 1] at bar time t,
	// or false outside the cut.
	Sample(t float32) (float32, bool)

	// Gate returns the fader weight at bar time t, or false outside the fader.
	Gate(t float32) (float32, bool)

	// GateDomain returns the range over which Gate succeeds.
	GateDomain() (start, end float32)

	// Bars returns the rendered length in bars.
	Bars() float32
}

// Source provides stereo PCM. Both channels must have the same length.
type Source interface {
	Channels() (left, right []float32)
}

// Result is a rendered stereo buffer.
type Result struct {
	// Frames holds interleaved left/right samples.
	Frames []float32

	// SampleRate is the output rate in Hz.
	SampleRate int

	// FrameCount is the number of stereo frames, len(Frames)/2.
	FrameCount int

	// Silent counts frames that fell outside the cut and were left silent.
	Silent int
}
