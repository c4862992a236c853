package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"

	cutcreator "github.com/tphakala/go-cut-creator"
	"github.com/tphakala/go-cut-creator/internal/analysis"
	"github.com/tphakala/go-cut-creator/internal/sinc"
)

// renderFlags holds the raw render options from the command line.
type renderFlags struct {
	rateKHz  float64
	bpm      float64
	quality  string
	taps     int
	window   string
	gate     bool
	parallel bool
}

// buildRenderConfig maps command line options onto a validated config.
func buildRenderConfig(f renderFlags) (cutcreator.RenderConfig, error) {
	cfg := cutcreator.DefaultRenderConfig()
	cfg.OutputRate = int(math.Round(f.rateKHz * kHzToHz))
	cfg.BPM = f.bpm
	cfg.ApplyGate = f.gate
	cfg.Parallel = f.parallel

	q, err := cutcreator.ParseQuality(f.quality)
	if err != nil {
		return cfg, err
	}
	cfg.Quality = q

	if q == cutcreator.QualityCustom {
		w, err := sinc.ParseWindow(f.window)
		if err != nil {
			return cfg, err
		}
		cfg.Window = w
		if f.taps > 0 {
			cfg.Taps = f.taps
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openEditor opens a record and, when samplePath is set, replaces its sample.
func openEditor(path, samplePath string, cfg cutcreator.RenderConfig, verbose bool) (*cutcreator.Editor, error) {
	opts := []cutcreator.Option{cutcreator.WithRenderConfig(cfg)}
	if verbose {
		opts = append(opts, cutcreator.WithLogger(log.Default()))
	}

	ed, err := cutcreator.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	if samplePath != "" {
		if err := ed.LoadSample(samplePath); err != nil {
			return nil, err
		}
	}
	if ed.SampleBuffer() == nil {
		return nil, fmt.Errorf("%w: %s names no sample, use -sample", cutcreator.ErrNoSample, path)
	}
	return ed, nil
}

// writeDefaultRecord saves the default cut to path, refusing to overwrite.
func writeDefaultRecord(path, samplePath string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	ed := cutcreator.NewEditor()
	if samplePath != "" {
		if err := ed.LoadSample(samplePath); err != nil {
			return err
		}
	}
	return ed.Save(path)
}

// printAnalysis reports the level and dominant pitch of each channel.
func printAnalysis(w io.Writer, res *sinc.Result) {
	left, right := analysis.Deinterleave(res.Frames)
	for _, ch := range []struct {
		name    string
		samples []float64
	}{
		{"left", left},
		{"right", right},
	} {
		fmt.Fprintf(w, "  %-5s peak %6.1f dBFS, rms %6.1f dBFS, dominant %.1f Hz\n",
			ch.name,
			analysis.DBFS(analysis.Peak(ch.samples)),
			analysis.DBFS(analysis.RMS(ch.samples)),
			analysis.DominantFrequency(ch.samples, float64(res.SampleRate)))
	}
}
