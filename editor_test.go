package cutcreator

import (
	"bytes"
	"log"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-cut-creator/internal/checkpoint"
	"github.com/tphakala/go-cut-creator/internal/curve"
	"github.com/tphakala/go-cut-creator/internal/knot"
	"github.com/tphakala/go-cut-creator/internal/pcm"
	"github.com/tphakala/go-cut-creator/internal/testutil"
)

func TestEditor_InsertUndoRedo(t *testing.T) {
	ed := NewEditor()

	i := ed.Insert(LaneCut, 1.5, 0.25)
	assert.Equal(t, 3, i)
	require.Len(t, ed.Knots(LaneCut), 6)
	assert.Equal(t, 1, ed.UndoLen())
	assert.True(t, ed.NeedsSave())

	require.True(t, ed.Undo())
	assert.Equal(t, curve.DefaultCutKnots(), ed.Knots(LaneCut))
	assert.Equal(t, 0, ed.UndoLen())
	assert.Equal(t, 1, ed.RedoLen())
	assert.False(t, ed.NeedsSave())

	require.True(t, ed.Redo())
	require.Len(t, ed.Knots(LaneCut), 6)
	assert.Equal(t, knot.Knot{Time: 1.5, Value: 0.25}, ed.Knots(LaneCut)[3])
	assert.Equal(t, 1, ed.UndoLen())
	assert.Equal(t, 0, ed.RedoLen())
}

func TestEditor_EmptyHistory(t *testing.T) {
	ed := NewEditor()
	assert.False(t, ed.Undo())
	assert.False(t, ed.Redo())
	assert.Equal(t, curve.DefaultCutKnots(), ed.Knots(LaneCut))
}

func TestEditor_DeleteRefusals(t *testing.T) {
	ed := NewEditor()

	assert.False(t, ed.Delete(LaneCut, 0), "outer sentinel")
	assert.False(t, ed.Delete(LaneCut, 1), "start sentinel")
	assert.False(t, ed.Delete(LaneCut, 3), "end sentinel")
	assert.False(t, ed.Delete(LaneCut, 9), "out of range")
	assert.Equal(t, 0, ed.UndoLen(), "refused deletes are not recorded")

	require.True(t, ed.Delete(LaneCut, 2))
	assert.Len(t, ed.Knots(LaneCut), 4)
	assert.Equal(t, 1, ed.UndoLen())

	for i := range 4 {
		assert.False(t, ed.Delete(LaneCut, i), "minimum length at %d", i)
	}

	assert.False(t, ed.Delete(LaneFader, 1), "fader end sentinel")
}

func TestEditor_DeleteSelected(t *testing.T) {
	ed := NewEditor()
	ed.Insert(LaneCut, 0.5, 0.1)
	ed.Insert(LaneCut, 1.5, 0.9)
	require.Len(t, ed.Knots(LaneCut), 7)

	n := ed.SelectRect(LaneCut, -1, 3, -1, 2)
	assert.Equal(t, 7, n)

	removed := ed.DeleteSelected(LaneCut)
	assert.Equal(t, 3, removed)
	assert.Len(t, ed.Knots(LaneCut), 4)

	require.True(t, ed.Undo())
	assert.Len(t, ed.Knots(LaneCut), 7)
	assert.Len(t, ed.Selected(LaneCut), 7)
}

func TestEditor_SingleKnotDrag(t *testing.T) {
	ed := NewEditor()

	require.True(t, ed.BeginKnotDrag(LaneCut, 2))
	assert.True(t, ed.Dragging())
	ed.DragKnot(0.5, 0.2)
	ed.DragKnot(0.75, 0.3)
	ed.EndDrag()
	assert.False(t, ed.Dragging())

	assert.Equal(t, 1, ed.UndoLen(), "a drag is one step")
	k := ed.Knots(LaneCut)[2]
	assert.Equal(t, float32(0.75), k.Time)
	assert.Equal(t, float32(0.3), k.Value)

	require.True(t, ed.Undo())
	k = ed.Knots(LaneCut)[2]
	assert.Equal(t, float32(1), k.Time)
	assert.Equal(t, float32(0.5), k.Value)

	require.True(t, ed.Redo())
	k = ed.Knots(LaneCut)[2]
	assert.Equal(t, float32(0.75), k.Time)
	assert.Equal(t, float32(0.3), k.Value)
}

func TestEditor_DragWithoutChange(t *testing.T) {
	ed := NewEditor()
	require.True(t, ed.BeginKnotDrag(LaneCut, 2))
	ed.EndDrag()
	assert.Equal(t, 0, ed.UndoLen())

	assert.False(t, ed.BeginKnotDrag(LaneCut, 5))
	ed.DragKnot(0.5, 0.5)
	ed.EndDrag()
	assert.Equal(t, curve.DefaultCutKnots(), ed.Knots(LaneCut))
}

func TestEditor_SentinelDragKeepsTime(t *testing.T) {
	ed := NewEditor()
	require.True(t, ed.BeginKnotDrag(LaneCut, 1))
	ed.DragKnot(0.5, 0.25)
	ed.EndDrag()

	knots := ed.Knots(LaneCut)
	assert.Equal(t, float32(0), knots[1].Time)
	assert.Equal(t, float32(0.25), knots[1].Value)
	assert.Equal(t, float32(0.25), knots[0].Value, "outer sentinel follows")

	require.True(t, ed.Undo())
	assert.Equal(t, curve.DefaultCutKnots(), ed.Knots(LaneCut))
}

func TestEditor_MultiDrag(t *testing.T) {
	ed := NewEditor()
	assert.False(t, ed.BeginDrag(LaneCut), "nothing selected")

	require.Equal(t, 1, ed.SelectRect(LaneCut, 0.5, 1.5, 0, 1))
	assert.Equal(t, []int{2}, ed.Selected(LaneCut))
	require.Equal(t, 1, ed.UndoLen())

	require.True(t, ed.BeginDrag(LaneCut))
	ed.DragSelected(0.125, 0.05)
	ed.DragSelected(0.25, 0.1)
	ed.EndDrag()

	require.Equal(t, 2, ed.UndoLen())
	k := ed.Knots(LaneCut)[2]
	assert.Equal(t, float32(1.25), k.Time)
	assert.InDelta(t, 0.6, k.Value, 1e-6)

	require.True(t, ed.Undo())
	k = ed.Knots(LaneCut)[2]
	assert.Equal(t, float32(1), k.Time)
	assert.Equal(t, float32(0.5), k.Value)
	assert.True(t, k.Selected)
}

func TestEditor_Deselect(t *testing.T) {
	ed := NewEditor()
	assert.False(t, ed.Deselect(LaneCut))
	assert.Equal(t, 0, ed.UndoLen())

	ed.ToggleSelect(LaneCut, 2)
	assert.Equal(t, 0, ed.UndoLen(), "clicking a knot is not recorded")

	require.True(t, ed.Deselect(LaneCut))
	assert.Empty(t, ed.Selected(LaneCut))
	assert.Equal(t, 1, ed.UndoLen())

	require.True(t, ed.Undo())
	assert.Equal(t, []int{2}, ed.Selected(LaneCut))
}

func TestEditor_Move(t *testing.T) {
	ed := NewEditor()
	ed.Move(LaneCut, 2, 0.5, 0.25)
	assert.Equal(t, 1, ed.UndoLen())

	v, ok := ed.Sample(0.5)
	require.True(t, ok)
	assert.InDelta(t, 0.25, v, 1e-6)

	ed.Move(LaneCut, 2, 0.5, 0.25)
	assert.Equal(t, 1, ed.UndoLen(), "no-op move is not recorded")

	ed.Move(LaneCut, 7, 0.5, 0.25)
	assert.Equal(t, 1, ed.UndoLen())

	require.True(t, ed.Undo())
	v, ok = ed.Sample(1)
	require.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-6)
}

func TestEditor_FaderLane(t *testing.T) {
	ed := NewEditor()
	ed.Insert(LaneFader, 1, 0)

	g, ok := ed.Gate(0.5)
	require.True(t, ok)
	assert.InDelta(t, 0.5, g, 1e-6)

	require.True(t, ed.Undo())
	g, ok = ed.Gate(0.5)
	require.True(t, ok)
	assert.InDelta(t, 1.0, g, 1e-6)
	assert.Equal(t, curve.DefaultCutKnots(), ed.Knots(LaneCut), "cut untouched")
}

func TestEditor_FaderKnotDragUndoRedo(t *testing.T) {
	ed := NewEditor()
	ed.Insert(LaneFader, 1, 0.5)
	inserted := ed.Knots(LaneFader)

	require.True(t, ed.BeginKnotDrag(LaneFader, 1))
	ed.DragKnot(1.5, 0.25)
	ed.EndDrag()
	dragged := ed.Knots(LaneFader)
	assert.Equal(t, knot.Knot{Time: 1.5, Value: 0.25}, dragged[1])
	assert.Equal(t, 2, ed.UndoLen())

	require.True(t, ed.Undo())
	assert.Equal(t, inserted, ed.Knots(LaneFader))
	assert.Equal(t, curve.DefaultCutKnots(), ed.Knots(LaneCut), "cut untouched")

	require.True(t, ed.Redo())
	assert.Equal(t, dragged, ed.Knots(LaneFader))
	assert.Equal(t, curve.DefaultCutKnots(), ed.Knots(LaneCut), "redo stays on the fader")

	g, ok := ed.Gate(1.5)
	require.True(t, ok)
	assert.InDelta(t, 0.25, g, 1e-6)

	require.True(t, ed.Undo())
	require.True(t, ed.Undo())
	assert.Equal(t, curve.DefaultFaderKnots(2), ed.Knots(LaneFader))
}

func TestRestorer_DeltaInverseKeepsLane(t *testing.T) {
	ed := NewEditor()
	ed.Insert(LaneFader, 1, 0.5)
	r := (*restorer)(ed)

	inv := r.Restore(checkpoint.Delta(checkpoint.FaderKnot, 1, knot.Knot{Time: 1.25, Value: 0.1}))
	assert.Equal(t, checkpoint.FaderKnot, inv.Kind)
	assert.Equal(t, knot.Knot{Time: 1, Value: 0.5}, inv.Knot)
	assert.Equal(t, knot.Knot{Time: 1.25, Value: 0.1}, ed.Knots(LaneFader)[1])
	assert.Equal(t, curve.DefaultCutKnots(), ed.Knots(LaneCut))

	inv = r.Restore(inv)
	assert.Equal(t, checkpoint.FaderKnot, inv.Kind)
	assert.Equal(t, knot.Knot{Time: 1, Value: 0.5}, ed.Knots(LaneFader)[1])
}

func TestEditor_KnotAt(t *testing.T) {
	ed := NewEditor()
	assert.Equal(t, 2, ed.KnotAt(LaneCut, 1.02, 0.48, 0.05, 0.05))
	assert.Equal(t, -1, ed.KnotAt(LaneCut, 1.5, 0.48, 0.05, 0.05))
	assert.Equal(t, 1, ed.KnotAt(LaneFader, 2, 1, 0.1, 0.1))
}

func TestEditor_SettingsAreNotRecorded(t *testing.T) {
	ed := NewEditor()
	ed.Move(LaneCut, 1, 0, 0.25)
	require.Equal(t, 1, ed.UndoLen())

	ed.SetLooping(true)
	ed.SetWarping(true)
	ed.SetQuantization(4)
	require.NoError(t, ed.SetBars(4))
	assert.Equal(t, 1, ed.UndoLen())

	knots := ed.Knots(LaneCut)
	assert.Equal(t, float32(0.25), knots[len(knots)-2].Value, "looping ties the end to the start")
	assert.Equal(t, float32(4), ed.Curve().Bars())
	assert.True(t, ed.Curve().Warping())

	i := ed.Insert(LaneCut, 0.3, 0.5)
	assert.Equal(t, float32(0.25), ed.Knots(LaneCut)[i].Time)
}

func TestEditor_SetBarsRejects(t *testing.T) {
	ed := NewEditor()
	require.ErrorIs(t, ed.SetBars(0), ErrInvalidConfig)
	require.ErrorIs(t, ed.SetBars(-1), ErrInvalidConfig)
	require.ErrorIs(t, ed.SetBars(float32(math.Inf(1))), ErrInvalidConfig)
	require.ErrorIs(t, ed.SetBars(float32(math.NaN())), ErrInvalidConfig)
	assert.Equal(t, float32(2), ed.Curve().Bars())
}

func TestDefaultHistoryLimit(t *testing.T) {
	assert.Equal(t, checkpoint.DefaultLimit, DefaultHistoryLimit)

	ed := NewEditor()
	for i := range DefaultHistoryLimit + 5 {
		ed.Move(LaneCut, 2, 1, float32(i%2)*0.5+0.25)
	}
	assert.Equal(t, DefaultHistoryLimit, ed.UndoLen())
}

func TestEditor_HistoryLimit(t *testing.T) {
	ed := NewEditor(WithHistoryLimit(2))
	ed.Insert(LaneCut, 0.25, 0.1)
	ed.Insert(LaneCut, 0.5, 0.2)
	ed.Insert(LaneCut, 0.75, 0.3)
	assert.Equal(t, 2, ed.UndoLen())

	require.True(t, ed.Undo())
	require.True(t, ed.Undo())
	assert.False(t, ed.Undo())
	assert.Len(t, ed.Knots(LaneCut), 6, "the oldest insert can no longer be undone")
}

func TestEditor_UndoRoundTrip(t *testing.T) {
	ed := NewEditor()
	states := [][]knot.Knot{ed.Knots(LaneCut)}

	for k := 1; k <= 20; k++ {
		if k%2 == 0 {
			ed.Insert(LaneCut, float32(k%7+1)*0.25, float32(k)*0.045)
		} else {
			ed.Move(LaneCut, 1, 0, float32(k)*0.04)
		}
		if cur := ed.Knots(LaneCut); !assert.ObjectsAreEqual(states[len(states)-1], cur) {
			states = append(states, cur)
		}
	}
	require.Equal(t, len(states)-1, ed.UndoLen())

	for i := len(states) - 2; i >= 0; i-- {
		require.True(t, ed.Undo())
		require.Equal(t, states[i], ed.Knots(LaneCut), "undo to state %d", i)
	}
	assert.False(t, ed.Undo())

	for i := 1; i < len(states); i++ {
		require.True(t, ed.Redo())
		require.Equal(t, states[i], ed.Knots(LaneCut), "redo to state %d", i)
	}
	assert.False(t, ed.Redo())
}

func TestEditor_NewEditClearsRedo(t *testing.T) {
	ed := NewEditor()
	ed.Insert(LaneCut, 0.5, 0.1)
	ed.Insert(LaneCut, 1.5, 0.9)
	require.True(t, ed.Undo())
	require.Equal(t, 1, ed.RedoLen())

	ed.Insert(LaneCut, 0.25, 0.3)
	assert.Equal(t, 0, ed.RedoLen())
	assert.False(t, ed.Redo())
}

func TestEditor_UndoCancelsDrag(t *testing.T) {
	ed := NewEditor()
	ed.Insert(LaneCut, 0.5, 0.1)

	require.True(t, ed.BeginKnotDrag(LaneCut, 2))
	ed.DragKnot(0.75, 0.2)
	require.True(t, ed.Undo())
	assert.False(t, ed.Dragging())

	ed.EndDrag()
	assert.Equal(t, 0, ed.UndoLen())
}

func TestEditor_EditDuringDragCommitsDrag(t *testing.T) {
	ed := NewEditor()
	ed.Insert(LaneCut, 0.5, 0.1)
	ed.Insert(LaneCut, 1.5, 0.7)
	require.Len(t, ed.Knots(LaneCut), 7)
	before := ed.Knots(LaneCut)

	require.True(t, ed.BeginKnotDrag(LaneCut, 4))
	require.True(t, ed.Delete(LaneCut, 2))
	assert.False(t, ed.Dragging(), "the delete ends the drag")

	// the drag no longer owns an index; these must not touch the tail
	ed.DragKnot(1.6, 0.8)
	ed.EndDrag()
	knots := ed.Knots(LaneCut)
	testutil.AssertStrictlyIncreasing(t, knotTimes(knots))
	assert.Equal(t, float32(2), knots[len(knots)-2].Time)

	require.True(t, ed.Undo())
	knots = ed.Knots(LaneCut)
	assert.Equal(t, before, knots)
	testutil.AssertStrictlyIncreasing(t, knotTimes(knots))
	assert.Equal(t, float32(2), knots[len(knots)-2].Time, "tail sentinel keeps its time")
}

func TestEditor_EditDuringDragRecordsBoth(t *testing.T) {
	ed := NewEditor()

	require.True(t, ed.BeginKnotDrag(LaneCut, 2))
	ed.DragKnot(0.75, 0.3)
	ed.Insert(LaneCut, 1.5, 0.9)
	assert.False(t, ed.Dragging())
	assert.Equal(t, 2, ed.UndoLen(), "the drag is committed before the insert")

	require.True(t, ed.Undo())
	assert.Equal(t, knot.Knot{Time: 0.75, Value: 0.3}, ed.Knots(LaneCut)[2])
	require.True(t, ed.Undo())
	assert.Equal(t, curve.DefaultCutKnots(), ed.Knots(LaneCut))
}

func TestEditor_StaleDragIsNotRecorded(t *testing.T) {
	ed := NewEditor()
	ed.Insert(LaneCut, 0.5, 0.1)

	require.True(t, ed.BeginKnotDrag(LaneCut, 2))
	ed.DragKnot(0.75, 0.2)
	// shift the knots under the drag without going through a gesture
	ed.Curve().Cut().Insert(0.25, 0.4)
	ed.DragKnot(0.8, 0.9)
	ed.EndDrag()

	assert.Equal(t, 1, ed.UndoLen(), "only the insert is recorded")
	knots := ed.Knots(LaneCut)
	testutil.AssertStrictlyIncreasing(t, knotTimes(knots))
	assert.Equal(t, knot.Knot{Time: 0.25, Value: 0.4}, knots[2])
}

func TestEditor_NonFiniteInputIgnored(t *testing.T) {
	ed := NewEditor()
	nan := float32(math.NaN())

	assert.Equal(t, -1, ed.Insert(LaneCut, nan, 0.5))
	ed.Move(LaneCut, 2, nan, 0.5)
	ed.Move(LaneCut, 2, float32(math.Inf(1)), 0.5)
	assert.Equal(t, 0, ed.UndoLen())
	assert.Equal(t, curve.DefaultCutKnots(), ed.Knots(LaneCut))
}

func knotTimes(knots []knot.Knot) []float32 {
	out := make([]float32, len(knots))
	for i, k := range knots {
		out[i] = k.Time
	}
	return out
}

func TestEditor_Region(t *testing.T) {
	ed := NewEditor()
	assert.False(t, ed.ShiftRegion(10), "no sample")

	left, right := make([]float32, 20000), make([]float32, 20000)
	ed.SetSample(&pcm.Buffer{Left: left, Right: right, SampleRate: 48000})
	assert.Equal(t, pcm.Region{Offset: 0, Len: 20000}, ed.Region())

	require.True(t, ed.ShiftRegion(5000))
	require.True(t, ed.ResizeRegion(100))
	assert.Equal(t, pcm.Region{Offset: 5000, Len: pcm.MinRegionLen}, ed.Region())
	assert.False(t, ed.ShiftRegion(0))
	assert.Equal(t, 2, ed.UndoLen())

	require.True(t, ed.ShiftRegion(-6000))
	assert.Equal(t, 19000, ed.Region().Offset, "offset wraps")

	require.True(t, ed.Undo())
	require.True(t, ed.Undo())
	assert.Equal(t, pcm.Region{Offset: 5000, Len: 20000}, ed.Region())
	require.True(t, ed.Undo())
	assert.Equal(t, pcm.Region{Offset: 0, Len: 20000}, ed.Region())

	require.True(t, ed.Redo())
	assert.Equal(t, 5000, ed.Region().Offset)

	require.True(t, ed.ResetRegion())
	assert.Equal(t, pcm.Region{Offset: 0, Len: 20000}, ed.Region())
}

func TestEditor_Logging(t *testing.T) {
	var buf bytes.Buffer
	ed := NewEditor(WithLogger(log.New(&buf, "", 0)))

	ed.Insert(LaneCut, 0.5, 0.1)
	ed.Undo()
	assert.Contains(t, buf.String(), "insert cut knot 2")
	assert.Contains(t, buf.String(), "undo (0 left)")

	silent := NewEditor()
	silent.Insert(LaneCut, 0.5, 0.1)
}

func TestLaneString(t *testing.T) {
	assert.Equal(t, "cut", LaneCut.String())
	assert.Equal(t, "fader", LaneFader.String())
	assert.Equal(t, "unknown", Lane(5).String())
}
