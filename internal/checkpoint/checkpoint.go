// Package checkpoint records edit gestures as groups of restorable
// checkpoints and replays them for undo and redo.
package checkpoint

import (
	"slices"

	"github.com/tphakala/go-cut-creator/internal/knot"
)

// Kind tags the variant held by a Checkpoint.
type Kind int

const (
	// CutSnapshot holds the full cut knot list.
	CutSnapshot Kind = iota
	// FaderSnapshot holds the full fader knot list.
	FaderSnapshot
	// CutKnot holds one cut knot and its index.
	CutKnot
	// FaderKnot holds one fader knot and its index.
	FaderKnot
	// RegionSnapshot holds the sample region.
	RegionSnapshot
)

// String returns the kind name used in log lines.
func (k Kind) String() string {
	switch k {
	case CutSnapshot:
		return "cut-snapshot"
	case FaderSnapshot:
		return "fader-snapshot"
	case CutKnot:
		return "cut-knot"
	case FaderKnot:
		return "fader-knot"
	case RegionSnapshot:
		return "region-snapshot"
	default:
		return "unknown"
	}
}

// Region is the sample window stored by a RegionSnapshot.
type Region struct {
	Offset int
	Len    int
}

// Checkpoint is a state fragment sufficient to restore one part of the
// editor. Only the fields belonging to Kind are meaningful.
type Checkpoint struct {
	Kind Kind

	// Knots is set for CutSnapshot and FaderSnapshot.
	Knots []knot.Knot

	// Index and Knot are set for CutKnot and FaderKnot.
	Index int
	Knot  knot.Knot

	// Region is set for RegionSnapshot.
	Region Region
}

// Snapshot records a whole knot list. kind must be CutSnapshot or
// FaderSnapshot. The knots are copied.
func Snapshot(kind Kind, knots []knot.Knot) Checkpoint {
	return Checkpoint{Kind: kind, Knots: slices.Clone(knots)}
}

// Delta records a single knot at index i. kind must be CutKnot or FaderKnot.
func Delta(kind Kind, i int, k knot.Knot) Checkpoint {
	return Checkpoint{Kind: kind, Index: i, Knot: k}
}

// RegionState records a sample region.
func RegionState(offset, length int) Checkpoint {
	return Checkpoint{Kind: RegionSnapshot, Region: Region{Offset: offset, Len: length}}
}

// Restorer applies a checkpoint to live state and returns the checkpoint
// that undoes the application, captured before the state was overwritten.
type Restorer interface {
	Restore(c Checkpoint) Checkpoint
}
