package cutcreator

import (
	"fmt"
	"log"
	"math"
	"slices"

	"github.com/tphakala/go-cut-creator/internal/checkpoint"
	"github.com/tphakala/go-cut-creator/internal/curve"
	"github.com/tphakala/go-cut-creator/internal/knot"
	"github.com/tphakala/go-cut-creator/internal/pcm"
	"github.com/tphakala/go-cut-creator/internal/sinc"
)

// Lane selects which of the two knot sequences a gesture edits.
type Lane int

const (
	// LaneCut edits the cut curve.
	LaneCut Lane = iota

	// LaneFader edits the gate.
	LaneFader
)

// String returns the lane name.
func (l Lane) String() string {
	switch l {
	case LaneCut:
		return "cut"
	case LaneFader:
		return "fader"
	default:
		return "unknown"
	}
}

// Editor is one editing session: a curve with its undo history and the
// sample it is rendered against. An Editor is not safe for concurrent use;
// background renders work on copies taken at submission.
type Editor struct {
	curve   *curve.Curve
	history *checkpoint.Store

	sample     *pcm.Buffer
	samplePath string
	region     pcm.Region

	render RenderConfig
	logger *log.Logger

	drag drag
	job  *sinc.Job
}

// drag holds the state of a gesture between its begin and end.
type drag struct {
	active bool
	lane   Lane

	// single knot drag
	index  int
	before knot.Knot
	at     float32 // time the knot was last placed at

	// multi-select drag
	multi bool
	start []knot.Knot
}

// Option configures an Editor.
type Option func(*editorOptions)

type editorOptions struct {
	logger       *log.Logger
	render       RenderConfig
	historyLimit int
}

// WithLogger makes the editor log gestures, history moves and renders.
func WithLogger(l *log.Logger) Option {
	return func(o *editorOptions) { o.logger = l }
}

// WithRenderConfig sets the settings used by Render, Submit and RunResample.
func WithRenderConfig(cfg RenderConfig) Option {
	return func(o *editorOptions) { o.render = cfg }
}

// WithHistoryLimit bounds the undo stack. Zero or less keeps every step.
func WithHistoryLimit(n int) Option {
	return func(o *editorOptions) { o.historyLimit = n }
}

// NewEditor returns an editor holding the default curve and no sample.
func NewEditor(opts ...Option) *Editor {
	return newEditor(curve.New(), opts...)
}

func newEditor(c *curve.Curve, opts ...Option) *Editor {
	o := editorOptions{
		render:       DefaultRenderConfig(),
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Editor{
		curve:   c,
		history: checkpoint.NewStore(checkpoint.WithLimit(o.historyLimit)),
		render:  o.render,
		logger:  o.logger,
	}
}

func (e *Editor) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}

// Curve returns the live curve. Mutating it directly bypasses the history.
func (e *Editor) Curve() *curve.Curve {
	return e.curve
}

// Knots returns a copy of the knots of a lane.
func (e *Editor) Knots(lane Lane) []knot.Knot {
	return e.seq(lane).Knots()
}

func (e *Editor) seq(lane Lane) *knot.Sequence {
	if lane == LaneFader {
		return e.curve.Fader()
	}
	return e.curve.Cut()
}

func (e *Editor) update(lane Lane) {
	if lane == LaneFader {
		e.curve.UpdateFader()
		return
	}
	e.curve.UpdateCut()
}

func snapshotKind(lane Lane) checkpoint.Kind {
	if lane == LaneFader {
		return checkpoint.FaderSnapshot
	}
	return checkpoint.CutSnapshot
}

func deltaKind(lane Lane) checkpoint.Kind {
	if lane == LaneFader {
		return checkpoint.FaderKnot
	}
	return checkpoint.CutKnot
}

// edit runs fn on a lane and records a snapshot of the previous knots
// when anything changed. A drag in progress is committed first.
func (e *Editor) edit(lane Lane, fn func(s *knot.Sequence)) bool {
	e.EndDrag()
	s := e.seq(lane)
	before := s.Knots()
	fn(s)
	e.update(lane)
	if slices.Equal(before, s.Knots()) {
		return false
	}
	e.history.Push(checkpoint.Snapshot(snapshotKind(lane), before))
	return true
}

// KnotAt returns the index of the knot closest to (t, v) within the given
// tolerances, or -1. It is used to turn a click position into an index.
func (e *Editor) KnotAt(lane Lane, t, v, tolT, tolV float32) int {
	s := e.seq(lane)
	best, bestDist := -1, float32(0)
	for i := range s.Len() {
		k := s.At(i)
		dt, dv := abs32(k.Time-t), abs32(k.Value-v)
		if dt > tolT || dv > tolV {
			continue
		}
		if d := dt*dt + dv*dv; best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Insert adds a knot at (t, v) and returns its index, or -1 when t or v
// is not finite.
func (e *Editor) Insert(lane Lane, t, v float32) int {
	var i int
	e.edit(lane, func(s *knot.Sequence) { i = s.Insert(t, v) })
	if i >= 0 {
		e.logf("insert %s knot %d at (%.4f, %.4f)", lane, i, t, v)
	}
	return i
}

// Move moves knot i to (t, v) as a single undoable step.
func (e *Editor) Move(lane Lane, i int, t, v float32) {
	e.EndDrag()
	s := e.seq(lane)
	if i < 0 || i >= s.Len() {
		return
	}
	before := s.At(i)
	s.Move(i, t, v)
	e.update(lane)
	if s.At(i) != before {
		e.history.Push(checkpoint.Delta(deltaKind(lane), i, before))
	}
}

// Delete removes knot i. Sentinels and deletions below the minimum length
// are refused.
func (e *Editor) Delete(lane Lane, i int) bool {
	ok := e.edit(lane, func(s *knot.Sequence) { s.Delete(i) })
	if ok {
		e.logf("delete %s knot %d", lane, i)
	}
	return ok
}

// DeleteSelected removes every selected knot it may and returns the count.
func (e *Editor) DeleteSelected(lane Lane) int {
	var n int
	e.edit(lane, func(s *knot.Sequence) { n = s.DeleteSelected() })
	if n > 0 {
		e.logf("delete %d selected %s knots", n, lane)
	}
	return n
}

// ToggleSelect flips the selection of knot i. Clicking a knot is not an
// undoable step.
func (e *Editor) ToggleSelect(lane Lane, i int) {
	e.seq(lane).ToggleSelect(i)
}

// SelectRect toggles every knot inside the rectangle and returns the count.
func (e *Editor) SelectRect(lane Lane, t0, t1, v0, v1 float32) int {
	var n int
	e.edit(lane, func(s *knot.Sequence) { n = s.SelectRange(t0, t1, v0, v1) })
	return n
}

// Deselect clears the selection of a lane and reports whether any knot
// was selected.
func (e *Editor) Deselect(lane Lane) bool {
	return e.edit(lane, func(s *knot.Sequence) { s.Deselect() })
}

// Selected returns the indices of selected knots.
func (e *Editor) Selected(lane Lane) []int {
	return e.seq(lane).Selected()
}

// BeginKnotDrag starts dragging knot i. It returns false for an index out
// of range.
func (e *Editor) BeginKnotDrag(lane Lane, i int) bool {
	s := e.seq(lane)
	if i < 0 || i >= s.Len() {
		return false
	}
	e.EndDrag()
	e.drag = drag{active: true, lane: lane, index: i, before: s.At(i), at: s.At(i).Time}
	return true
}

// DragKnot moves the dragged knot to (t, v). The move is live but not
// recorded until EndDrag.
func (e *Editor) DragKnot(t, v float32) {
	if !e.drag.active || e.drag.multi {
		return
	}
	s := e.seq(e.drag.lane)
	if e.drag.index >= s.Len() || s.At(e.drag.index).Time != e.drag.at {
		return
	}
	s.Move(e.drag.index, t, v)
	e.drag.at = s.At(e.drag.index).Time
	e.update(e.drag.lane)
}

// BeginDrag starts moving the selection of a lane. It returns false when
// nothing is selected.
func (e *Editor) BeginDrag(lane Lane) bool {
	e.EndDrag()
	s := e.seq(lane)
	if len(s.Selected()) == 0 {
		return false
	}
	e.drag = drag{active: true, lane: lane, multi: true, start: s.Knots()}
	return true
}

// DragSelected offsets the selection by (dt, dv) from where it was when
// the drag began.
func (e *Editor) DragSelected(dt, dv float32) {
	if !e.drag.active || !e.drag.multi || e.seq(e.drag.lane).Len() != len(e.drag.start) {
		return
	}
	e.seq(e.drag.lane).ShiftSelected(e.drag.start, dt, dv)
	e.update(e.drag.lane)
}

// EndDrag finishes a drag and records it as one undoable step when the
// knots moved. Nothing is recorded when the dragged knot is no longer at
// the index the drag started on.
func (e *Editor) EndDrag() {
	d := e.drag
	e.drag = drag{}
	if !d.active {
		return
	}

	s := e.seq(d.lane)
	if d.multi {
		if s.Len() == len(d.start) && !slices.Equal(d.start, s.Knots()) {
			e.history.Push(checkpoint.Snapshot(snapshotKind(d.lane), d.start))
			e.logf("drag %d %s knots", len(s.Selected()), d.lane)
		}
		return
	}
	if d.index >= s.Len() || s.At(d.index).Time != d.at {
		e.logf("drag %s knot %d went stale, not recorded", d.lane, d.index)
		return
	}
	if s.At(d.index) != d.before {
		e.history.Push(checkpoint.Delta(deltaKind(d.lane), d.index, d.before))
		e.logf("drag %s knot %d", d.lane, d.index)
	}
}

// Dragging reports whether a drag is in progress.
func (e *Editor) Dragging() bool {
	return e.drag.active
}

// SetLooping ties the end of the cut to its start.
func (e *Editor) SetLooping(on bool) {
	e.curve.SetLooping(on)
}

// SetWarping lets the cut wrap across the sample boundaries.
func (e *Editor) SetWarping(on bool) {
	e.curve.SetWarping(on)
}

// SetQuantization changes the grid used by later edits.
func (e *Editor) SetQuantization(q uint32) {
	e.curve.SetQuantization(q)
}

// SetBars changes the rendered length.
func (e *Editor) SetBars(bars float32) error {
	if !(bars > 0) || math.IsInf(float64(bars), 0) {
		return fmt.Errorf("%w: bars must be positive and finite, got %v", ErrInvalidConfig, bars)
	}
	e.curve.SetBars(bars)
	return nil
}

// Sample returns the relative sample position at bar time t.
func (e *Editor) Sample(t float32) (float32, bool) {
	return e.curve.Sample(t)
}

// Gate returns the fader weight at bar time t.
func (e *Editor) Gate(t float32) (float32, bool) {
	return e.curve.Gate(t)
}

// Undo reverts the latest step. It cancels a drag in progress.
func (e *Editor) Undo() bool {
	e.drag = drag{}
	ok := e.history.Undo((*restorer)(e))
	if ok {
		e.logf("undo (%d left)", e.history.UndoLen())
	}
	return ok
}

// Redo reapplies the latest undone step. It cancels a drag in progress.
func (e *Editor) Redo() bool {
	e.drag = drag{}
	ok := e.history.Redo((*restorer)(e))
	if ok {
		e.logf("redo (%d left)", e.history.RedoLen())
	}
	return ok
}

// UndoLen returns the number of undoable steps.
func (e *Editor) UndoLen() int { return e.history.UndoLen() }

// RedoLen returns the number of redoable steps.
func (e *Editor) RedoLen() int { return e.history.RedoLen() }

// NeedsSave reports whether there are edits since the last save or load.
func (e *Editor) NeedsSave() bool { return e.history.NeedsSave() }

// restorer applies checkpoints to the editor without exposing Restore
// on the public type.
type restorer Editor

func (r *restorer) Restore(c checkpoint.Checkpoint) checkpoint.Checkpoint {
	e := (*Editor)(r)
	switch c.Kind {
	case checkpoint.CutSnapshot, checkpoint.FaderSnapshot:
		lane := LaneCut
		if c.Kind == checkpoint.FaderSnapshot {
			lane = LaneFader
		}
		s := e.seq(lane)
		inverse := checkpoint.Snapshot(c.Kind, s.Knots())
		s.SetKnots(c.Knots)
		e.update(lane)
		return inverse

	case checkpoint.CutKnot, checkpoint.FaderKnot:
		lane := LaneCut
		if c.Kind == checkpoint.FaderKnot {
			lane = LaneFader
		}
		s := e.seq(lane)
		if c.Index < 0 || c.Index >= s.Len() {
			return c
		}
		inverse := checkpoint.Delta(c.Kind, c.Index, s.At(c.Index))
		s.Replace(c.Index, c.Knot)
		e.update(lane)
		return inverse

	case checkpoint.RegionSnapshot:
		inverse := checkpoint.RegionState(e.region.Offset, e.region.Len)
		e.region = pcm.Region{Offset: c.Region.Offset, Len: c.Region.Len}
		if e.sample != nil {
			e.region = e.region.Fit(e.sample.Len())
		}
		return inverse

	default:
		return c
	}
}
