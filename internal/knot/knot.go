// Package knot implements ordered, time-sorted control point sequences
// with selection state and quantized time mutation.
package knot

import (
	"math"
)

// Knot is a single control point.
// Time is measured in bars, Value is nominally in [0, 1].
type Knot struct {
	Time     float32
	Value    float32
	Selected bool
}

// Layout describes how many knots at each end of a sequence are sentinels.
// Sentinel times are immovable and sentinels cannot be deleted.
type Layout struct {
	Head   int // leading sentinels
	Tail   int // trailing sentinels
	MinLen int // minimum number of knots
}

// Predefined layouts.
var (
	// CutLayout protects the first two and last two knots.
	CutLayout = Layout{Head: cutSentinels, Tail: cutSentinels, MinLen: cutMinLen}

	// FaderLayout protects only the last knot.
	FaderLayout = Layout{Head: 0, Tail: faderTailSentinels, MinLen: faderMinLen}
)

// Quantize snaps raw to the nearest 1/q grid point.
// A zero q disables snapping.
func Quantize(raw float32, q uint32) float32 {
	if q == 0 {
		return raw
	}
	fq := float32(q)
	return float32(math.Round(float64(raw*fq))) / fq
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
