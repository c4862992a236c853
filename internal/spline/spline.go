// Package spline samples piecewise curves over an ordered key set.
package spline

import "math"

// Kind selects the interpolation used between keys.
type Kind int

const (
	// CatmullRom interpolates with cubic Hermite segments whose tangents are
	// taken from the neighbouring keys. C1 continuous, needs 4 keys.
	CatmullRom Kind = iota

	// Linear joins keys with straight segments. Needs 2 keys.
	Linear
)

// Minimum key counts per kind
const (
	catmullRomMinKeys = 4
	linearMinKeys     = 2
)

// Hermite basis constants
const (
	hermiteTwo   = 2.0
	hermiteThree = 3.0
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case CatmullRom:
		return "catmull-rom"
	case Linear:
		return "linear"
	default:
		return "unknown"
	}
}

// Key is a control point of the curve. Keys must be sorted by T with no
// duplicates.
type Key struct {
	T float32
	V float32
}

// Spline is an immutable evaluator over a key set.
type Spline struct {
	kind Kind
	keys []Key
}

// New creates a spline over a copy of keys.
func New(kind Kind, keys []Key) Spline {
	k := make([]Key, len(keys))
	copy(k, keys)
	return Spline{kind: kind, keys: k}
}

// Kind returns the interpolation kind.
func (s Spline) Kind() Kind {
	return s.kind
}

// Len returns the number of keys.
func (s Spline) Len() int {
	return len(s.keys)
}

// Domain returns the closed range of t for which Sample succeeds.
// ok is false when there are too few keys.
func (s Spline) Domain() (start, end float32, ok bool) {
	n := len(s.keys)
	switch s.kind {
	case CatmullRom:
		if n < catmullRomMinKeys {
			return 0, 0, false
		}
		return s.keys[1].T, s.keys[n-2].T, true
	case Linear:
		if n < linearMinKeys {
			return 0, 0, false
		}
		return s.keys[0].T, s.keys[n-1].T, true
	default:
		return 0, 0, false
	}
}

// Sample evaluates the curve at t. It fails outside Domain.
func (s Spline) Sample(t float32) (float32, bool) {
	start, end, ok := s.Domain()
	if !ok || math.IsNaN(float64(t)) || t < start || t > end {
		return 0, false
	}

	i := s.segment(t)
	a, b := s.keys[i], s.keys[i+1]
	x := (t - a.T) / (b.T - a.T)

	switch s.kind {
	case CatmullRom:
		return hermite(s.keys[i-1], a, b, s.keys[i+2], x), true
	case Linear:
		return a.V + (b.V-a.V)*x, true
	default:
		return 0, false
	}
}

// segment returns the index i of the segment [keys[i], keys[i+1]] that
// contains t. The end of the domain belongs to the last valid segment.
func (s Spline) segment(t float32) int {
	lo, hi := 0, len(s.keys)-1
	if s.kind == CatmullRom {
		lo, hi = 1, len(s.keys)-2
	}
	// binary search for the last key with T <= t among keys[lo:hi]
	i, j := lo, hi
	for j-i > 1 {
		m := int(uint(i+j) >> 1)
		if s.keys[m].T <= t {
			i = m
		} else {
			j = m
		}
	}
	return i
}

// hermite evaluates the Catmull-Rom segment between a and b at the
// normalized position x in [0, 1]. Tangents are finite differences over
// the neighbouring keys, scaled to the segment length so that unevenly
// spaced keys stay C1.
func hermite(p0, a, b, p3 Key, x float32) float32 {
	span := b.T - a.T
	m0 := (b.V - p0.V) / (b.T - p0.T) * span
	m1 := (p3.V - a.V) / (p3.T - a.T) * span

	x2 := x * x
	x3 := x2 * x

	h00 := hermiteTwo*x3 - hermiteThree*x2 + 1
	h10 := x3 - hermiteTwo*x2 + x
	h01 := hermiteThree*x2 - hermiteTwo*x3
	h11 := x3 - x2

	return h00*a.V + h10*m0 + h01*b.V + h11*m1
}
