// Package curve implements the cut curve: a Catmull-Rom curve mapping bar
// time onto a relative sample position, paired with a linear fader curve
// used as a gate.
//
// The first two and last two knots of the cut are sentinels. The inner
// pair marks the start (S) and end (E) of the editable region and the
// outer pair only supplies tangent context for the spline. Looping forces
// the end value onto the start value so the cut repeats without a jump.
package curve

import (
	"github.com/tphakala/go-cut-creator/internal/knot"
	"github.com/tphakala/go-cut-creator/internal/spline"
)

// Curve owns the cut and fader sequences and their evaluators.
type Curve struct {
	cut   knot.Sequence
	fader knot.Sequence

	cutSpline   spline.Spline
	faderSpline spline.Spline

	looping      bool
	warping      bool
	quantization uint32
	bars         float32
}

// New returns the default curve: a two bar ramp through the whole sample.
func New() *Curve {
	c, err := FromKnots(DefaultCutKnots(), DefaultFaderKnots(DefaultBars), DefaultQuantization, DefaultBars)
	if err != nil {
		panic("curve: invalid default knots: " + err.Error())
	}
	return c
}

// DefaultCutKnots returns the knots of a fresh cut.
func DefaultCutKnots() []knot.Knot {
	return []knot.Knot{
		{Time: -sentinelOffset, Value: 0},
		{Time: 0, Value: 0},
		{Time: 1, Value: 0.5},
		{Time: DefaultBars, Value: 1},
		{Time: DefaultBars + sentinelOffset, Value: 1},
	}
}

// DefaultFaderKnots returns a fully open gate over bars.
func DefaultFaderKnots(bars float32) []knot.Knot {
	return []knot.Knot{
		{Time: 0, Value: 1},
		{Time: bars, Value: 1},
	}
}

// FromKnots builds a curve from explicit knots and runs both updates.
func FromKnots(cut, fader []knot.Knot, quantization uint32, bars float32) (*Curve, error) {
	cs, err := knot.New(knot.CutLayout, quantization, cut)
	if err != nil {
		return nil, err
	}
	fs, err := knot.New(knot.FaderLayout, quantization, fader)
	if err != nil {
		return nil, err
	}
	c := &Curve{
		cut:          cs,
		fader:        fs,
		quantization: quantization,
		bars:         bars,
	}
	c.Update()
	return c, nil
}

// Clone returns a deep copy that shares nothing with c.
func (c *Curve) Clone() *Curve {
	cp := *c
	cp.cut = c.cut.Clone()
	cp.fader = c.fader.Clone()
	cp.UpdateCut()
	cp.UpdateFader()
	return &cp
}

// Cut returns the cut sequence for mutation. Call UpdateCut afterwards.
func (c *Curve) Cut() *knot.Sequence {
	return &c.cut
}

// Fader returns the fader sequence for mutation. Call UpdateFader afterwards.
func (c *Curve) Fader() *knot.Sequence {
	return &c.fader
}

// Update rebuilds both evaluators.
func (c *Curve) Update() {
	c.UpdateCut()
	c.UpdateFader()
}

// UpdateCut aligns the sentinel values and rebuilds the cut spline.
//
// The outer sentinels take the value of their inner neighbour. When
// looping, both end knots take the start value so the spline enters and
// leaves the seam with matching tangents.
func (c *Curve) UpdateCut() {
	n := c.cut.Len()
	start := c.cut.At(1).Value
	c.cut.SetValue(0, start)

	if c.looping {
		c.cut.SetValue(n-2, start)
		c.cut.SetValue(n-1, start)
	} else {
		c.cut.SetValue(n-1, c.cut.At(n-2).Value)
	}

	c.cutSpline = spline.New(spline.CatmullRom, keys(&c.cut))
}

// UpdateFader rebuilds the fader spline. The fader is linear so a gate
// edge never overshoots.
func (c *Curve) UpdateFader() {
	c.faderSpline = spline.New(spline.Linear, keys(&c.fader))
}

func keys(s *knot.Sequence) []spline.Key {
	out := make([]spline.Key, s.Len())
	for i := range out {
		k := s.At(i)
		out[i] = spline.Key{T: k.Time, V: k.Value}
	}
	return out
}

// Sample returns the relative sample position at bar time t.
// Outside [cut[1].Time, cut[n-2].Time] it returns false. With warping,
// values past either end wrap around by one; otherwise they are clamped
// to [0, 1].
func (c *Curve) Sample(t float32) (float32, bool) {
	y, ok := c.cutSpline.Sample(t)
	if !ok {
		return 0, false
	}
	if c.warping {
		return wrap(y), true
	}
	return clamp01(y), true
}

// Gate returns the fader weight at bar time t in [0, 1].
// Outside the fader knots it returns false. Warping does not apply.
func (c *Curve) Gate(t float32) (float32, bool) {
	y, ok := c.faderSpline.Sample(t)
	if !ok {
		return 0, false
	}
	return clamp01(y), true
}

// GateDomain returns the time range over which Gate succeeds.
func (c *Curve) GateDomain() (start, end float32) {
	return c.fader.At(0).Time, c.fader.At(c.fader.Len() - 1).Time
}

// Domain returns the time range over which Sample succeeds.
func (c *Curve) Domain() (start, end float32) {
	return c.cut.At(1).Time, c.cut.At(c.cut.Len() - 2).Time
}

// Bars returns the length of the cut in bars.
func (c *Curve) Bars() float32 {
	return c.bars
}

// SetBars changes the rendered length.
func (c *Curve) SetBars(bars float32) {
	c.bars = bars
}

// Looping reports whether the end of the cut is tied to its start.
func (c *Curve) Looping() bool {
	return c.looping
}

// SetLooping toggles looping and realigns the cut.
func (c *Curve) SetLooping(on bool) {
	c.looping = on
	c.UpdateCut()
}

// Warping reports whether samples wrap across the sample boundaries.
func (c *Curve) Warping() bool {
	return c.warping
}

// SetWarping toggles warping.
func (c *Curve) SetWarping(on bool) {
	c.warping = on
}

// Quantization returns the grid divisions per bar.
func (c *Curve) Quantization() uint32 {
	return c.quantization
}

// SetQuantization changes the grid for both sequences.
func (c *Curve) SetQuantization(q uint32) {
	c.quantization = q
	c.cut.SetQuantization(q)
	c.fader.SetQuantization(q)
}

func wrap(y float32) float32 {
	switch {
	case y > 1:
		return y - 1
	case y < 0:
		return y + 1
	default:
		return y
	}
}

func clamp01(y float32) float32 {
	return min(max(y, 0), 1)
}
