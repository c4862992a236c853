package pcm

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// WriteFloat32 writes interleaved stereo frames as a 32-bit IEEE float WAV.
func WriteFloat32(path string, interleaved []float32, sampleRate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	w, err := newFloatWAVWriter(f, sampleRate, stereoChannels)
	if err != nil {
		return fmt.Errorf("failed to create WAV writer: %w", err)
	}
	if err := w.WriteSamples(interleaved); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return w.Close()
}

// floatWAVWriter writes float32 samples directly without per-sample
// allocations and patches the RIFF sizes on Close.
type floatWAVWriter struct {
	w          *bufio.Writer
	f          io.WriteSeeker
	sampleRate int
	channels   int
	dataSize   uint32
	byteBuf    []byte
}

func newFloatWAVWriter(f io.WriteSeeker, sampleRate, channels int) (*floatWAVWriter, error) {
	w := &floatWAVWriter{
		w:          bufio.NewWriterSize(f, wavWriterBufferSize),
		f:          f,
		sampleRate: sampleRate,
		channels:   channels,
		byteBuf:    make([]byte, encodeChunkSamples*bytesPerFloat32),
	}

	// sizes are placeholders until Close
	if err := w.writeHeader(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *floatWAVWriter) writeHeader() error {
	byteRate := w.sampleRate * w.channels * bytesPerFloat32
	blockAlign := w.channels * bytesPerFloat32

	header := make([]byte, wavHeaderSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 0)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], wavFmtSubchunkSize)
	binary.LittleEndian.PutUint16(header[20:22], wavFormatFloat)
	binary.LittleEndian.PutUint16(header[22:24], uint16(w.channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample32)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], 0)

	_, err := w.w.Write(header)
	return err
}

// WriteSamples appends interleaved samples.
func (w *floatWAVWriter) WriteSamples(samples []float32) error {
	for len(samples) > 0 {
		n := min(len(samples), encodeChunkSamples)
		buf := w.byteBuf[:n*bytesPerFloat32]
		for i, s := range samples[:n] {
			binary.LittleEndian.PutUint32(buf[i*bytesPerFloat32:], math.Float32bits(s))
		}
		written, err := w.w.Write(buf)
		w.dataSize += uint32(written)
		if err != nil {
			return err
		}
		samples = samples[n:]
	}
	return nil
}

// Close flushes the buffer and updates the header with the final sizes.
func (w *floatWAVWriter) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}

	sizeBytes := make([]byte, uint32Size)

	if _, err := w.f.Seek(wavFileSizeOffset, io.SeekStart); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, wavRiffHeaderSize+w.dataSize)
	if _, err := w.f.Write(sizeBytes); err != nil {
		return err
	}

	if _, err := w.f.Seek(wavDataSizeOffset, io.SeekStart); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, w.dataSize)
	_, err := w.f.Write(sizeBytes)
	return err
}
