package cutcreator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tphakala/go-cut-creator/internal/pcm"
	"github.com/tphakala/go-cut-creator/internal/sinc"
)

// RenderConfig returns the render settings.
func (e *Editor) RenderConfig() RenderConfig {
	return e.render
}

// SetRenderConfig replaces the render settings after validating them.
func (e *Editor) SetRenderConfig(cfg RenderConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.render = cfg
	return nil
}

// Render resamples the sample region through the cut and returns
// interleaved stereo frames at the configured output rate.
func (e *Editor) Render(ctx context.Context) (*sinc.Result, error) {
	if e.sample == nil {
		return nil, ErrNoSample
	}
	if err := e.render.Validate(); err != nil {
		return nil, err
	}

	res, err := sinc.Render(ctx, e.curve, e.region.Source(e.sample), e.render.SincConfig())
	if errors.Is(err, sinc.ErrInvalidConfig) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err != nil {
		return nil, err
	}
	e.logf("rendered %d frames (%d silent) at %d Hz, quality %s",
		res.FrameCount, res.Silent, res.SampleRate, e.render.Quality)
	return res, nil
}

// Submit starts a render in the background on copies of the curve and the
// sample region, so editing may continue. A job submitted earlier is
// cancelled.
func (e *Editor) Submit(ctx context.Context) (*sinc.Job, error) {
	if e.sample == nil {
		return nil, ErrNoSample
	}
	if err := e.render.Validate(); err != nil {
		return nil, err
	}

	if e.job != nil {
		e.job.Cancel()
	}
	e.job = sinc.Submit(ctx, e.curve.Clone(), e.region.Source(e.sample), e.render.SincConfig())
	return e.job, nil
}

// RunResample renders the cut and writes it to outPath as a 32-bit float
// WAV. It returns a message for the user; failures are reported in the
// message rather than as an error.
func (e *Editor) RunResample(ctx context.Context, outPath string) string {
	if outPath == "" {
		outPath = DefaultOutputPath
	}

	res, err := e.Render(ctx)
	if err != nil {
		e.logf("resample failed: %v", err)
		return fmt.Sprintf("Resample failed: %v", err)
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Sprintf("Resample failed: %v", err)
		}
	}
	if err := pcm.WriteFloat32(outPath, res.Frames, res.SampleRate); err != nil {
		e.logf("write failed: %v", err)
		return fmt.Sprintf("Resample failed: %v", err)
	}

	return fmt.Sprintf("Wrote %d frames (%.2fs at %d Hz) to %s",
		res.FrameCount, float64(res.FrameCount)/float64(res.SampleRate), res.SampleRate, outPath)
}
