package cutcreator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-cut-creator/internal/pcm"
	"github.com/tphakala/go-cut-creator/internal/record"
	"github.com/tphakala/go-cut-creator/internal/testutil"
)

// writeSample writes a stereo float WAV of n frames into dir.
func writeSample(t *testing.T, dir string, n int) string {
	t.Helper()
	left, right := testutil.SineStereo(n, 440, 48000, 0.5)
	frames := make([]float32, 0, 2*n)
	for i := range n {
		frames = append(frames, left[i], right[i])
	}
	path := filepath.Join(dir, "sample.wav")
	require.NoError(t, pcm.WriteFloat32(path, frames, 48000))
	return path
}

func TestSave_Open_RoundTrip(t *testing.T) {
	for _, name := range []string{"cut.yaml", "cut.json"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			samplePath := writeSample(t, dir, 24000)

			ed := NewEditor()
			require.NoError(t, ed.LoadSample(samplePath))
			ed.Insert(LaneCut, 1.5, 0.25)
			ed.Insert(LaneFader, 1, 0.5)
			ed.SetWarping(true)
			ed.SetQuantization(8)
			require.NoError(t, ed.SetBars(2))
			require.True(t, ed.ShiftRegion(3000))
			require.True(t, ed.NeedsSave())

			path := filepath.Join(dir, name)
			require.NoError(t, ed.Save(path))
			assert.False(t, ed.NeedsSave(), "save clears the history")
			assert.Equal(t, 0, ed.UndoLen())

			got, err := Open(path)
			require.NoError(t, err)
			assert.Equal(t, ed.Knots(LaneCut), got.Knots(LaneCut))
			assert.Equal(t, ed.Knots(LaneFader), got.Knots(LaneFader))
			assert.Equal(t, uint32(8), got.Curve().Quantization())
			assert.Equal(t, float32(2), got.Curve().Bars())
			assert.True(t, got.Curve().Warping())
			assert.False(t, got.Curve().Looping())
			assert.Equal(t, pcm.Region{Offset: 3000, Len: 24000}, got.Region())
			require.NotNil(t, got.SampleBuffer())
			assert.Equal(t, 24000, got.SampleBuffer().Len())
			assert.False(t, got.NeedsSave())
		})
	}
}

func TestOpen_RelativeSamplePath(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, 12000)

	rel := "sample.wav"
	r := &record.Record{
		CutKnots:     []record.Point{{Time: -0.25}, {Time: 0}, {Time: 1, Value: 1}, {Time: 1.25, Value: 1}},
		FaderKnots:   []record.Point{{Time: 0, Value: 1}, {Time: 1, Value: 1}},
		Quantization: 16,
		Bars:         1,
		Looping:      true,
		SamplePath:   &rel,
		Region:       &record.Region{Offset: 15000, Len: 50},
	}
	path := filepath.Join(dir, "cut.yaml")
	require.NoError(t, record.WriteFile(path, r))

	ed, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, rel), ed.SamplePath())
	assert.Equal(t, pcm.Region{Offset: 3000, Len: pcm.MinRegionLen}, ed.Region(), "region is fitted to the sample")

	knots := ed.Knots(LaneCut)
	assert.Equal(t, float32(0), knots[len(knots)-2].Value, "looping is reapplied on load")
}

func TestOpen_WithoutSample(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cut.yaml")
	require.NoError(t, NewEditor().Save(path))

	ed, err := Open(path)
	require.NoError(t, err)
	assert.Nil(t, ed.SampleBuffer())
	assert.Empty(t, ed.SamplePath())
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, ErrLoad)
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("cut_knots: [1, 2"), 0o600))
	_, err = Open(bad)
	require.ErrorIs(t, err, ErrLoad)
	require.ErrorIs(t, err, record.ErrInvalidRecord)

	missing := "gone.wav"
	r := &record.Record{
		CutKnots:     []record.Point{{Time: -0.25}, {Time: 0}, {Time: 1, Value: 1}, {Time: 1.25, Value: 1}},
		FaderKnots:   []record.Point{{Time: 0, Value: 1}, {Time: 1, Value: 1}},
		Quantization: 16,
		Bars:         1,
		SamplePath:   &missing,
	}
	path := filepath.Join(dir, "cut.yaml")
	require.NoError(t, record.WriteFile(path, r))
	_, err = Open(path)
	require.ErrorIs(t, err, ErrLoad)
}

func TestLoadSample_Errors(t *testing.T) {
	ed := NewEditor()
	dir := t.TempDir()

	err := ed.LoadSample(filepath.Join(dir, "missing.wav"))
	require.ErrorIs(t, err, ErrLoad)
	assert.Nil(t, ed.SampleBuffer())

	junk := filepath.Join(dir, "junk.wav")
	require.NoError(t, os.WriteFile(junk, []byte("not a wav file at all"), 0o600))
	err = ed.LoadSample(junk)
	require.ErrorIs(t, err, ErrLoad)
	require.ErrorIs(t, err, pcm.ErrInvalidWAV)
}

func TestSave_FailureKeepsState(t *testing.T) {
	ed := NewEditor()
	ed.Insert(LaneCut, 0.5, 0.1)

	err := ed.Save(filepath.Join(t.TempDir(), "no", "such", "dir", "cut.yaml"))
	require.ErrorIs(t, err, ErrSave)
	assert.True(t, ed.NeedsSave())
	assert.Equal(t, 1, ed.UndoLen())
	assert.Len(t, ed.Knots(LaneCut), 6)
}
