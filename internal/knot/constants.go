package knot

// Sentinel layout constants
const (
	cutSentinels       = 2 // fixed knots at each end of a cut sequence
	cutMinLen          = 4 // Catmull-Rom needs two knots around each segment
	faderTailSentinels = 1 // the last fader knot is fixed
	faderMinLen        = 2 // a linear segment needs two keys
)
