package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/go-cut-creator/internal/simdops"
)

// Errors returned by Load and Decode.
var (
	ErrInvalidWAV          = errors.New("invalid WAV file")
	ErrUnsupportedChannels = errors.New("unsupported channel count")
	ErrUnsupportedFormat   = errors.New("unsupported sample format")
)

// Load reads a stereo WAV file.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample: %w", err)
	}
	defer func() { _ = f.Close() }()

	buf, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}

// Decode reads a stereo WAV stream. Integer PCM is normalized by its bit
// depth; 32-bit IEEE float data is taken as is.
func Decode(r io.ReadSeeker) (*Buffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	format := dec.Format()
	if format.NumChannels != stereoChannels {
		return nil, fmt.Errorf("%w: %d (only stereo files are supported)", ErrUnsupportedChannels, format.NumChannels)
	}

	switch dec.WavAudioFormat {
	case wavFormatFloat:
		return decodeFloat(dec, format)
	case wavFormatPCM:
		return decodeInt(dec, format)
	default:
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}
}

func decodeInt(dec *wav.Decoder, format *audio.Format) (*Buffer, error) {
	maxVal, err := maxValue(int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	ib, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
	}

	frames := ib.NumFrames()
	buf := &Buffer{
		Left:       make([]float32, frames),
		Right:      make([]float32, frames),
		SampleRate: format.SampleRate,
	}

	unsigned := dec.BitDepth == bitsPerSample8
	for i := range frames {
		l, r := ib.Data[i*stereoChannels], ib.Data[i*stereoChannels+1]
		if unsigned {
			l -= 128
			r -= 128
		}
		buf.Left[i] = float32(l)
		buf.Right[i] = float32(r)
	}

	ops := simdops.Float32Ops()
	scale := float32(1 / maxVal)
	ops.Scale(buf.Left, buf.Left, scale)
	ops.Scale(buf.Right, buf.Right, scale)
	return buf, nil
}

func decodeFloat(dec *wav.Decoder, format *audio.Format) (*Buffer, error) {
	if dec.BitDepth != bitsPerSample32 {
		return nil, fmt.Errorf("%w: %d-bit float", ErrUnsupportedFormat, dec.BitDepth)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
	}

	raw := make([]byte, dec.PCMLen())
	n, err := io.ReadFull(dec.PCMChunk, raw)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
	}

	frames := n / (stereoChannels * bytesPerFloat32)
	buf := &Buffer{
		Left:       make([]float32, frames),
		Right:      make([]float32, frames),
		SampleRate: format.SampleRate,
	}
	for i := range frames {
		off := i * stereoChannels * bytesPerFloat32
		buf.Left[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[off:]))
		buf.Right[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[off+bytesPerFloat32:]))
	}
	return buf, nil
}

// maxValue returns the full scale value for an integer bit depth.
func maxValue(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample8:
		return maxInt8, nil
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	case bitsPerSample32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, bitDepth)
	}
}
