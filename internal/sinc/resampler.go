package sinc

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/tphakala/go-cut-creator/internal/simdops"
)

// Render resamples src through c into interleaved stereo frames.
//
// For output frame i of N = FrameCount(...), bar time t = bars*i/N is
// mapped through c.Sample to a source position p*L. The K+1 source frames
// around it are weighted by the windowed sinc of their distance from p*L.
// Frames for which c.Sample fails are silent. With ApplyGate each frame
// is scaled by c.Gate(t); outside the gate domain the nearest endpoint
// value is used.
//
// Render checks ctx between chunks of frames and returns ctx.Err() when
// it is cancelled.
func Render(ctx context.Context, c Curve, src Source, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	left, right := src.Channels()
	if len(left) != len(right) {
		return nil, fmt.Errorf("%w: channel lengths differ (%d != %d)", ErrInvalidSource, len(left), len(right))
	}

	n := FrameCount(cfg.OutputRate, c.Bars(), cfg.BPM)
	if n < 0 {
		return nil, fmt.Errorf("%w: %v bars at %g bpm exceeds %d frames", ErrInvalidConfig, c.Bars(), cfg.BPM, maxFrames)
	}
	r := &render{
		curve:  c,
		left:   left,
		right:  right,
		outL:   make([]float32, n),
		outR:   make([]float32, n),
		frames: n,
		bars:   float64(c.Bars()),
		kernel: newKernel(&cfg),
		gate:   cfg.ApplyGate,
		ops:    simdops.Float32Ops(),
	}

	var err error
	if cfg.Parallel && n > chunkFrames {
		workers := cfg.Workers
		if workers == 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		err = r.runParallel(ctx, workers)
	} else {
		err = r.runSequential(ctx)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Frames:     r.ops.Interleave(r.outL, r.outR),
		SampleRate: cfg.OutputRate,
		FrameCount: n,
		Silent:     int(r.silent.Load()),
	}, nil
}

// render holds the shared state of one Render call. Workers write
// disjoint ranges of outL and outR.
type render struct {
	curve       Curve
	left, right []float32
	outL, outR  []float32
	frames      int
	bars        float64
	kernel      kernel
	gate        bool
	ops         *simdops.Ops[float32]
	silent      atomic.Int64
}

func (r *render) runSequential(ctx context.Context) error {
	s := r.newScratch()
	for lo := 0; lo < r.frames; lo += chunkFrames {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.renderRange(s, lo, min(lo+chunkFrames, r.frames))
	}
	return ctx.Err()
}

func (r *render) runParallel(ctx context.Context, workers int) error {
	chunks := make(chan int)
	go func() {
		defer close(chunks)
		for lo := 0; lo < r.frames; lo += chunkFrames {
			select {
			case chunks <- lo:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := r.newScratch()
			for lo := range chunks {
				if ctx.Err() != nil {
					continue
				}
				r.renderRange(s, lo, min(lo+chunkFrames, r.frames))
			}
		}()
	}
	wg.Wait()

	return ctx.Err()
}

// scratch is per-worker tap storage.
type scratch struct {
	weights []float32
	padL    []float32
	padR    []float32
}

func (r *render) newScratch() *scratch {
	size := r.kernel.size()
	return &scratch{
		weights: make([]float32, size),
		padL:    make([]float32, size),
		padR:    make([]float32, size),
	}
}

// renderRange renders output frames [lo, hi).
func (r *render) renderRange(s *scratch, lo, hi int) {
	silent := 0
	for i := lo; i < hi; i++ {
		t := float32(r.bars * float64(i) / float64(r.frames))
		pos, ok := r.curve.Sample(t)
		if !ok {
			silent++
			continue
		}

		l, rt := r.interpolate(s, float64(pos)*float64(len(r.left)))
		if r.gate {
			g := r.gateAt(t)
			l *= g
			rt *= g
		}
		r.outL[i] = l
		r.outR[i] = rt
	}
	if silent > 0 {
		r.silent.Add(int64(silent))
	}
}

// interpolate reconstructs both channels at source position p.
func (r *render) interpolate(s *scratch, p float64) (l, rt float32) {
	base := math.Floor(p)
	r.kernel.weights(s.weights, p-base)

	size := r.kernel.size()
	first := int(base) - r.kernel.half
	length := len(r.left)

	if first >= 0 && first+size <= length {
		return r.ops.DotProductUnsafe(s.weights, r.left[first:first+size]),
			r.ops.DotProductUnsafe(s.weights, r.right[first:first+size])
	}

	// zero padding outside [0, length)
	for j := range size {
		idx := first + j
		if idx >= 0 && idx < length {
			s.padL[j] = r.left[idx]
			s.padR[j] = r.right[idx]
		} else {
			s.padL[j] = 0
			s.padR[j] = 0
		}
	}
	return r.ops.Dot(s.weights, s.padL), r.ops.Dot(s.weights, s.padR)
}

// gateAt returns the gate at t, holding the nearest endpoint value
// outside the gate domain.
func (r *render) gateAt(t float32) float32 {
	if g, ok := r.curve.Gate(t); ok {
		return g
	}
	start, end := r.curve.GateDomain()
	edge := end
	if t < start {
		edge = start
	}
	g, ok := r.curve.Gate(edge)
	if !ok {
		return 1
	}
	return g
}
