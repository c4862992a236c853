// Package record persists the editable state of a cut as YAML or JSON.
//
// Only the persistent fields are stored. Selection flags, evaluators and
// history are rebuilt by the loader.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRecord indicates a record whose content cannot form a cut.
var ErrInvalidRecord = errors.New("invalid record")

// Minimum knot counts
const (
	minCutKnots   = 4
	minFaderKnots = 2
)

// Point is a persisted knot.
type Point struct {
	Time  float32 `yaml:"time" json:"time"`
	Value float32 `yaml:"value" json:"value"`
}

// Region is the persisted sample window.
type Region struct {
	Offset int `yaml:"offset" json:"offset"`
	Len    int `yaml:"len" json:"len"`
}

// Record is the persisted form of a cut.
type Record struct {
	CutKnots     []Point `yaml:"cut_knots" json:"cut_knots"`
	FaderKnots   []Point `yaml:"fader_knots" json:"fader_knots"`
	Quantization uint32  `yaml:"quantization" json:"quantization"`
	Bars         float32 `yaml:"bars" json:"bars"`
	Looping      bool    `yaml:"looping" json:"looping"`
	Warping      bool    `yaml:"warping" json:"warping"`
	SamplePath   *string `yaml:"sample_path,omitempty" json:"sample_path,omitempty"`
	Region       *Region `yaml:"region,omitempty" json:"region,omitempty"`
}

// Format selects the text encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// FormatFromPath picks JSON for .json files and YAML otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Validate checks that the knot lists can form a cut.
func (r *Record) Validate() error {
	if err := validatePoints("cut_knots", r.CutKnots, minCutKnots); err != nil {
		return err
	}
	if err := validatePoints("fader_knots", r.FaderKnots, minFaderKnots); err != nil {
		return err
	}
	if !(r.Bars > 0) || math.IsInf(float64(r.Bars), 0) {
		return fmt.Errorf("%w: bars must be positive, got %v", ErrInvalidRecord, r.Bars)
	}
	if r.Region != nil && (r.Region.Offset < 0 || r.Region.Len < 0) {
		return fmt.Errorf("%w: negative region %+v", ErrInvalidRecord, *r.Region)
	}
	return nil
}

func validatePoints(field string, pts []Point, minLen int) error {
	if len(pts) < minLen {
		return fmt.Errorf("%w: %s has %d knots, need at least %d", ErrInvalidRecord, field, len(pts), minLen)
	}
	for i, p := range pts {
		if math.IsNaN(float64(p.Time)) || math.IsInf(float64(p.Time), 0) || math.IsNaN(float64(p.Value)) {
			return fmt.Errorf("%w: %s[%d] is not finite", ErrInvalidRecord, field, i)
		}
		if i > 0 && p.Time <= pts[i-1].Time {
			return fmt.Errorf("%w: %s[%d] time %v does not follow %v", ErrInvalidRecord, field, i, p.Time, pts[i-1].Time)
		}
	}
	return nil
}

// Marshal encodes r.
func Marshal(r *Record, f Format) ([]byte, error) {
	if f == FormatJSON {
		return json.MarshalIndent(r, "", "  ")
	}
	return yaml.Marshal(r)
}

// Unmarshal decodes and validates a record.
func Unmarshal(data []byte, f Format) (*Record, error) {
	var r Record
	var err error
	if f == FormatJSON {
		err = json.Unmarshal(data, &r)
	} else {
		err = yaml.Unmarshal(data, &r)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// ReadFile loads a record, choosing the format from the extension.
func ReadFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, FormatFromPath(path))
}

// WriteFile saves r next to path and renames it into place, so a failed
// write never truncates an existing record.
func WriteFile(path string, r *Record) (err error) {
	data, err := Marshal(r, FormatFromPath(path))
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
