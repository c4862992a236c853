package curve

// Defaults for a fresh cut
const (
	// DefaultQuantization snaps knots to sixteenth notes.
	DefaultQuantization = 16

	// DefaultBars is the length of a fresh cut.
	DefaultBars = 2.0

	// sentinelOffset is the distance of the outer sentinels from the
	// editable region, in bars.
	sentinelOffset = 0.25
)
