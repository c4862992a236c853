package pcm

const (
	stereoChannels = 2

	// Sample format constants
	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Normalization constants
	maxInt8  = 127.0
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// WAV format tags
	wavFormatPCM   = 1
	wavFormatFloat = 3

	// WAV header layout
	wavHeaderSize      = 44 // Total WAV header size in bytes
	wavRiffHeaderSize  = 36 // file size - 8 = riffHeaderSize + dataSize
	wavFmtSubchunkSize = 16 // fmt subchunk size without extension
	wavFileSizeOffset  = 4  // Byte offset for file size field in header
	wavDataSizeOffset  = 40 // Byte offset for data size field in header
	bytesPerFloat32    = 4
	uint32Size         = 4

	// I/O buffer sizes
	wavWriterBufferSize = 256 * 1024 // 256KB write buffer
	encodeChunkSamples  = 65536

	// MinRegionLen is the shortest region the length handle allows, in frames.
	MinRegionLen = 10000
)
