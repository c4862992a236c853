package sinc

import "context"

// Job is a render running on its own goroutine.
type Job struct {
	cancel context.CancelFunc
	done   chan struct{}
	result *Result
	err    error
}

// Submit starts Render in the background. The caller hands over c and
// src: neither may be mutated until the job is done, so editors pass
// clones.
func Submit(ctx context.Context, c Curve, src Source, cfg Config) *Job {
	ctx, cancel := context.WithCancel(ctx)
	j := &Job{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(j.done)
		defer cancel()
		j.result, j.err = Render(ctx, c, src, cfg)
	}()
	return j
}

// Wait blocks until the job finishes and returns its outcome.
func (j *Job) Wait() (*Result, error) {
	<-j.done
	return j.result, j.err
}

// Cancel stops the job. Wait then returns context.Canceled unless the
// render had already completed.
func (j *Job) Cancel() {
	j.cancel()
}

// Done is closed when the job finishes.
func (j *Job) Done() <-chan struct{} {
	return j.done
}
