// Package pcm holds stereo sample data: WAV loading, the playable region
// of a sample and 32-bit float WAV output.
package pcm

import (
	"slices"
	"time"
)

// Buffer is a stereo sample normalized to [-1, 1].
type Buffer struct {
	Left       []float32
	Right      []float32
	SampleRate int
}

// Len returns the number of frames.
func (b *Buffer) Len() int {
	return len(b.Left)
}

// Channels returns both channels.
func (b *Buffer) Channels() (left, right []float32) {
	return b.Left, b.Right
}

// Frame returns frame i, or silence outside the buffer.
func (b *Buffer) Frame(i int) (left, right float32) {
	if i < 0 || i >= len(b.Left) {
		return 0, 0
	}
	return b.Left[i], b.Right[i]
}

// Duration returns the playing time at SampleRate.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.Len()) / float64(b.SampleRate) * float64(time.Second))
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		Left:       slices.Clone(b.Left),
		Right:      slices.Clone(b.Right),
		SampleRate: b.SampleRate,
	}
}
