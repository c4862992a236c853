package record

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Record {
	path := "loops/break.wav"
	return &Record{
		CutKnots:     []Point{{-0.25, 0}, {0, 0}, {1, 0.5}, {2, 1}, {2.25, 1}},
		FaderKnots:   []Point{{0, 1}, {1.5, 0.25}, {2, 1}},
		Quantization: 16,
		Bars:         2,
		Looping:      true,
		SamplePath:   &path,
		Region:       &Region{Offset: 1200, Len: 30000},
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("cut.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("CUT.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("cut.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("cut"))
	assert.Equal(t, "json", FormatJSON.String())
}

func TestWriteReadFile(t *testing.T) {
	for _, name := range []string{"cut.yaml", "cut.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := sample()
			require.NoError(t, WriteFile(path, want))

			got, err := ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temp files left behind")
		})
	}
}

func TestMarshal_FieldNames(t *testing.T) {
	r := sample()
	r.SamplePath = nil
	r.Region = nil

	y, err := Marshal(r, FormatYAML)
	require.NoError(t, err)
	for _, key := range []string{"cut_knots:", "fader_knots:", "quantization: 16", "bars: 2", "looping: true", "warping: false"} {
		assert.Contains(t, string(y), key)
	}
	assert.NotContains(t, string(y), "sample_path")
	assert.NotContains(t, string(y), "selected")

	j, err := Marshal(r, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(j), `"cut_knots"`)
	assert.NotContains(t, string(j), "region")
}

func TestUnmarshal_YAMLDocument(t *testing.T) {
	doc := `
cut_knots:
  - {time: -0.25, value: 0.1}
  - {time: 0, value: 0.1}
  - {time: 4, value: 0.9}
  - {time: 4.25, value: 0.9}
fader_knots:
  - {time: 0, value: 1}
  - {time: 4, value: 0}
quantization: 8
bars: 4
looping: false
warping: true
sample_path: /tmp/a.wav
`
	r, err := Unmarshal([]byte(doc), FormatYAML)
	require.NoError(t, err)
	assert.Len(t, r.CutKnots, 4)
	assert.Equal(t, float32(0.9), r.CutKnots[2].Value)
	assert.Equal(t, uint32(8), r.Quantization)
	assert.True(t, r.Warping)
	require.NotNil(t, r.SamplePath)
	assert.Equal(t, "/tmp/a.wav", *r.SamplePath)
	assert.Nil(t, r.Region)
}

func TestUnmarshal_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Record)
	}{
		{"short cut", func(r *Record) { r.CutKnots = r.CutKnots[:3] }},
		{"short fader", func(r *Record) { r.FaderKnots = r.FaderKnots[:1] }},
		{"unsorted", func(r *Record) { r.CutKnots[2].Time = 3 }},
		{"duplicate time", func(r *Record) { r.FaderKnots[1].Time = 0 }},
		{"zero bars", func(r *Record) { r.Bars = 0 }},
		{"negative region", func(r *Record) { r.Region.Offset = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sample()
			tt.modify(r)
			data, err := Marshal(r, FormatJSON)
			require.NoError(t, err)
			_, err = Unmarshal(data, FormatJSON)
			require.ErrorIs(t, err, ErrInvalidRecord)
		})
	}

	_, err := Unmarshal([]byte("{not json"), FormatJSON)
	require.ErrorIs(t, err, ErrInvalidRecord)
	_, err = Unmarshal([]byte("cut_knots: [1, 2"), FormatYAML)
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestFileErrors(t *testing.T) {
	dir := t.TempDir()
	require.Error(t, WriteFile(filepath.Join(dir, "missing-dir", "cut.yaml"), sample()))

	_, err := ReadFile(filepath.Join(dir, "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cut.yaml")
	require.NoError(t, WriteFile(path, sample()))

	r := sample()
	r.Bars = 3
	require.NoError(t, WriteFile(path, r))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, float32(3), got.Bars)
}
