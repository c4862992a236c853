package cutcreator

import (
	"github.com/tphakala/go-cut-creator/internal/checkpoint"
	"github.com/tphakala/go-cut-creator/internal/pcm"
)

// Region returns the sample window the cut plays.
func (e *Editor) Region() pcm.Region {
	return e.region
}

// ShiftRegion moves the window by delta frames, wrapping around the sample.
func (e *Editor) ShiftRegion(delta int) bool {
	if e.sample == nil {
		return false
	}
	return e.setRegion(e.region.Shift(delta, e.sample.Len()))
}

// ResizeRegion sets the window length in frames.
func (e *Editor) ResizeRegion(n int) bool {
	if e.sample == nil {
		return false
	}
	return e.setRegion(e.region.Resize(n, e.sample.Len()))
}

// ResetRegion selects the whole sample.
func (e *Editor) ResetRegion() bool {
	if e.sample == nil {
		return false
	}
	return e.setRegion(pcm.FullRegion(e.sample.Len()))
}

func (e *Editor) setRegion(r pcm.Region) bool {
	e.EndDrag()
	if r == e.region {
		return false
	}
	e.history.Push(checkpoint.RegionState(e.region.Offset, e.region.Len))
	e.region = r
	e.logf("region offset=%d len=%d", r.Offset, r.Len)
	return true
}
