package knot

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrInvalidSequence indicates knots that violate ordering or length rules.
var ErrInvalidSequence = errors.New("invalid knot sequence")

// Sequence is an ordered list of knots with strictly increasing times.
//
// The zero value is not usable; create sequences with New.
type Sequence struct {
	knots        []Knot
	layout       Layout
	quantization uint32
}

// New creates a sequence from knots, which must already satisfy the
// ordering and minimum length rules of layout. The knots are copied.
func New(layout Layout, quantization uint32, knots []Knot) (Sequence, error) {
	s := Sequence{
		knots:        slices.Clone(knots),
		layout:       layout,
		quantization: quantization,
	}
	if err := s.Validate(); err != nil {
		return Sequence{}, err
	}
	return s, nil
}

// Validate checks the length and ordering invariants.
func (s *Sequence) Validate() error {
	if len(s.knots) < s.layout.MinLen {
		return fmt.Errorf("%w: %d knots, need at least %d", ErrInvalidSequence, len(s.knots), s.layout.MinLen)
	}
	for i, k := range s.knots {
		if !finite(k.Time) {
			return fmt.Errorf("%w: knot %d has non-finite time", ErrInvalidSequence, i)
		}
		if i > 0 && k.Time <= s.knots[i-1].Time {
			return fmt.Errorf("%w: knot %d at %v does not follow %v", ErrInvalidSequence, i, k.Time, s.knots[i-1].Time)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (s *Sequence) Clone() Sequence {
	return Sequence{
		knots:        slices.Clone(s.knots),
		layout:       s.layout,
		quantization: s.quantization,
	}
}

// Len returns the number of knots.
func (s *Sequence) Len() int {
	return len(s.knots)
}

// At returns the knot at index i.
func (s *Sequence) At(i int) Knot {
	return s.knots[i]
}

// Knots returns a copy of the knots.
func (s *Sequence) Knots() []Knot {
	return slices.Clone(s.knots)
}

// Layout returns the sentinel layout.
func (s *Sequence) Layout() Layout {
	return s.layout
}

// Quantization returns the grid divisions per bar.
func (s *Sequence) Quantization() uint32 {
	return s.quantization
}

// SetQuantization changes the grid used by later mutations.
// Existing knots are not snapped.
func (s *Sequence) SetQuantization(q uint32) {
	s.quantization = q
}

// Quantize snaps raw to the sequence grid.
func (s *Sequence) Quantize(raw float32) float32 {
	return Quantize(raw, s.quantization)
}

// IsSentinel reports whether index i is a fixed boundary knot.
func (s *Sequence) IsSentinel(i int) bool {
	return i < s.layout.Head || i >= len(s.knots)-s.layout.Tail
}

// SetValue sets the value of knot i without touching its time.
// Used for sentinel alignment; the value is not clamped.
func (s *Sequence) SetValue(i int, v float32) {
	if i < 0 || i >= len(s.knots) {
		return
	}
	s.knots[i].Value = v
}

// EditableDomain returns the time range inserts are clamped to.
func (s *Sequence) EditableDomain() (start, end float32) {
	lo := max(s.layout.Head-1, 0)
	hi := len(s.knots) - max(s.layout.Tail, 1)
	return s.knots[lo].Time, s.knots[hi].Time
}

// Insert adds a knot at the quantized time, or overwrites the value of a
// knot already at exactly that time. Time is clamped into the editable
// domain and value into [0, 1]. Returns the index of the affected knot,
// or -1 when t or v is not finite.
func (s *Sequence) Insert(t, v float32) int {
	if !finite(t) || !finite(v) {
		return -1
	}
	start, end := s.EditableDomain()
	t = min(max(s.Quantize(t), start), end)
	v = clamp01(v)

	i, found := slices.BinarySearchFunc(s.knots, t, func(k Knot, t float32) int {
		switch {
		case k.Time < t:
			return -1
		case k.Time > t:
			return 1
		default:
			return 0
		}
	})
	if found {
		s.knots[i].Value = v
		return i
	}

	s.knots = slices.Insert(s.knots, i, Knot{Time: t, Value: v})
	return i
}

// Move sets the value of knot i (clamped to [0, 1]) and, unless i is a
// sentinel, its quantized time clamped strictly between its neighbours.
// If no legal time exists the time is left unchanged. Non-finite input
// is ignored.
func (s *Sequence) Move(i int, t, v float32) {
	if i < 0 || i >= len(s.knots) || !finite(t) || !finite(v) {
		return
	}
	s.knots[i].Value = clamp01(v)
	if s.IsSentinel(i) {
		return
	}

	lo, hi := s.timeBounds(i)
	if lo > hi {
		return
	}
	s.knots[i].Time = min(max(s.Quantize(t), lo), hi)
}

// timeBounds returns the inclusive range of legal times for knot i.
func (s *Sequence) timeBounds(i int) (lo, hi float32) {
	lo = 0
	if i > 0 {
		lo = s.after(s.knots[i-1].Time)
	}
	hi = float32(math.Inf(1))
	if i < len(s.knots)-1 {
		hi = s.before(s.knots[i+1].Time)
	}
	return lo, hi
}

// after returns the closest legal time strictly greater than t.
func (s *Sequence) after(t float32) float32 {
	if s.quantization > 0 {
		if next := t + 1/float32(s.quantization); next > t {
			return next
		}
	}
	return math.Nextafter32(t, float32(math.Inf(1)))
}

// before returns the closest legal time strictly less than t.
func (s *Sequence) before(t float32) float32 {
	if s.quantization > 0 {
		if prev := t - 1/float32(s.quantization); prev < t {
			return prev
		}
	}
	return math.Nextafter32(t, float32(math.Inf(-1)))
}

// Delete removes knot i. Sentinels, out of range indices and deletions
// that would shrink the sequence below its minimum length are refused.
func (s *Sequence) Delete(i int) bool {
	if i < 0 || i >= len(s.knots) || s.IsSentinel(i) || len(s.knots) <= s.layout.MinLen {
		return false
	}
	s.knots = slices.Delete(s.knots, i, i+1)
	return true
}

// DeleteSelected removes every selected non-sentinel knot, stopping once
// the minimum length is reached. Returns the number of removed knots.
func (s *Sequence) DeleteSelected() int {
	kept := make([]Knot, 0, len(s.knots))
	budget := len(s.knots) - s.layout.MinLen
	removed := 0
	for i, k := range s.knots {
		if k.Selected && !s.IsSentinel(i) && removed < budget {
			removed++
			continue
		}
		kept = append(kept, k)
	}
	s.knots = kept
	return removed
}

// ToggleSelect flips the selection of knot i.
func (s *Sequence) ToggleSelect(i int) {
	if i < 0 || i >= len(s.knots) {
		return
	}
	s.knots[i].Selected = !s.knots[i].Selected
}

// Deselect clears every selection flag and reports whether any was set.
func (s *Sequence) Deselect() bool {
	changed := false
	for i := range s.knots {
		if s.knots[i].Selected {
			s.knots[i].Selected = false
			changed = true
		}
	}
	return changed
}

// Selected returns the indices of selected knots.
func (s *Sequence) Selected() []int {
	var idx []int
	for i, k := range s.knots {
		if k.Selected {
			idx = append(idx, i)
		}
	}
	return idx
}

// SelectRange toggles the selection of every knot inside the rectangle
// spanned by (t0, v0) and (t1, v1), borders included.
// Returns the number of toggled knots.
func (s *Sequence) SelectRange(t0, t1, v0, v1 float32) int {
	tMin, tMax := min(t0, t1), max(t0, t1)
	vMin, vMax := min(v0, v1), max(v0, v1)
	n := 0
	for i, k := range s.knots {
		if k.Time >= tMin && k.Time <= tMax && k.Value >= vMin && k.Value <= vMax {
			s.knots[i].Selected = !k.Selected
			n++
		}
	}
	return n
}

// ShiftSelected moves every selected knot by (dt, dv) relative to the
// positions in start, captured when the drag began. Time moves are
// quantized and refused per knot unless the result lies strictly between
// its current neighbours; knots are visited in the drag direction so a
// selected block moves together. Values are clamped to [0, 1].
// A start slice of a different length is ignored.
func (s *Sequence) ShiftSelected(start []Knot, dt, dv float32) {
	if len(start) != len(s.knots) {
		return
	}

	first, last := s.layout.Head, len(s.knots)-s.layout.Tail-1
	shift := func(i int) {
		if !s.knots[i].Selected {
			return
		}
		t := s.Quantize(start[i].Time + dt)
		lo, hi := s.timeBounds(i)
		if t >= lo && t <= hi {
			s.knots[i].Time = t
		}
	}

	switch {
	case dt > 0:
		for i := last; i >= first; i-- {
			shift(i)
		}
	case dt < 0:
		for i := first; i <= last; i++ {
			shift(i)
		}
	}

	for i := range s.knots {
		if s.knots[i].Selected {
			s.knots[i].Value = clamp01(start[i].Value + dv)
		}
	}
}

// Replace overwrites knot i. It restores a previously recorded knot and
// does not clamp or reorder.
func (s *Sequence) Replace(i int, k Knot) bool {
	if i < 0 || i >= len(s.knots) {
		return false
	}
	s.knots[i] = k
	return true
}

// SetKnots replaces all knots with a copy of knots.
func (s *Sequence) SetKnots(knots []Knot) {
	s.knots = slices.Clone(knots)
}
