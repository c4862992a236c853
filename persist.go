package cutcreator

import (
	"fmt"
	"path/filepath"

	"github.com/tphakala/go-cut-creator/internal/curve"
	"github.com/tphakala/go-cut-creator/internal/knot"
	"github.com/tphakala/go-cut-creator/internal/pcm"
	"github.com/tphakala/go-cut-creator/internal/record"
)

// LoadSample loads a stereo WAV file and selects all of it.
// On failure the editor keeps its previous sample.
func (e *Editor) LoadSample(path string) error {
	buf, err := pcm.Load(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	e.setSample(buf, path)
	e.logf("loaded %s: %d frames at %d Hz", path, buf.Len(), buf.SampleRate)
	return nil
}

// SetSample uses an in-memory buffer as the sample.
func (e *Editor) SetSample(buf *pcm.Buffer) {
	e.setSample(buf, "")
}

func (e *Editor) setSample(buf *pcm.Buffer, path string) {
	e.sample = buf
	e.samplePath = path
	e.region = pcm.FullRegion(buf.Len())
}

// SampleBuffer returns the loaded sample or nil.
func (e *Editor) SampleBuffer() *pcm.Buffer {
	return e.sample
}

// SamplePath returns the path the sample was loaded from, if any.
func (e *Editor) SamplePath() string {
	return e.samplePath
}

// Save writes the cut to path as YAML, or JSON for a .json extension.
// A drag in progress is committed first. On success the history is
// cleared so NeedsSave reports false.
func (e *Editor) Save(path string) error {
	e.EndDrag()
	if err := record.WriteFile(path, e.toRecord()); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	e.history.Clear()
	e.logf("saved %s", path)
	return nil
}

// Open loads a record and, when it names one, its sample. A relative
// sample path is resolved against the directory of the record.
func Open(path string, opts ...Option) (*Editor, error) {
	r, err := record.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	c, err := curve.FromKnots(fromPoints(r.CutKnots), fromPoints(r.FaderKnots), r.Quantization, r.Bars)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	c.SetLooping(r.Looping)
	c.SetWarping(r.Warping)

	e := newEditor(c, opts...)
	if r.SamplePath != nil && *r.SamplePath != "" {
		samplePath := *r.SamplePath
		if !filepath.IsAbs(samplePath) {
			samplePath = filepath.Join(filepath.Dir(path), samplePath)
		}
		if err := e.LoadSample(samplePath); err != nil {
			return nil, err
		}
		if r.Region != nil {
			e.region = pcm.Region{Offset: r.Region.Offset, Len: r.Region.Len}.Fit(e.sample.Len())
		}
	}

	e.logf("opened %s", path)
	return e, nil
}

func (e *Editor) toRecord() *record.Record {
	r := &record.Record{
		CutKnots:     toPoints(e.curve.Cut().Knots()),
		FaderKnots:   toPoints(e.curve.Fader().Knots()),
		Quantization: e.curve.Quantization(),
		Bars:         e.curve.Bars(),
		Looping:      e.curve.Looping(),
		Warping:      e.curve.Warping(),
	}
	if e.samplePath != "" {
		p := e.samplePath
		r.SamplePath = &p
		r.Region = &record.Region{Offset: e.region.Offset, Len: e.region.Len}
	}
	return r
}

func toPoints(knots []knot.Knot) []record.Point {
	pts := make([]record.Point, len(knots))
	for i, k := range knots {
		pts[i] = record.Point{Time: k.Time, Value: k.Value}
	}
	return pts
}

func fromPoints(pts []record.Point) []knot.Knot {
	knots := make([]knot.Knot, len(pts))
	for i, p := range pts {
		knots[i] = knot.Knot{Time: p.Time, Value: p.Value}
	}
	return knots
}
